package rest_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypass-labs/ticketd/internal/api/middleware"
	"github.com/citypass-labs/ticketd/internal/api/rest"
	"github.com/citypass-labs/ticketd/internal/claims"
	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/escrow"
	"github.com/citypass-labs/ticketd/internal/logger"
	mockspkg "github.com/citypass-labs/ticketd/internal/mocks"
	"github.com/citypass-labs/ticketd/internal/store/schema"
)

const (
	testWallet = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testAPIKey = "test-api-key"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

// testHandlerMocks contains the mocks and router wiring for handler tests
type testHandlerMocks struct {
	ctrl       *gomock.Controller
	store      *mockspkg.MockStore
	claims     *mockspkg.MockClaimsService
	escrow     *mockspkg.MockEscrowService
	publisher  *mockspkg.MockPublisher
	router     *gin.Engine
	privateKey *rsa.PrivateKey
}

// setupTestHandler creates the mocks and a router with real auth middleware
func setupTestHandler(t *testing.T) *testHandlerMocks {
	ctrl := gomock.NewController(t)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pubDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	tm := &testHandlerMocks{
		ctrl:       ctrl,
		store:      mockspkg.NewMockStore(ctrl),
		claims:     mockspkg.NewMockClaimsService(ctrl),
		escrow:     mockspkg.NewMockEscrowService(ctrl),
		publisher:  mockspkg.NewMockPublisher(ctrl),
		privateKey: privateKey,
	}

	handler := rest.NewHandler(tm.store, tm.claims, tm.escrow, tm.publisher)

	router := gin.New()
	rest.SetupRoutes(router, handler, middleware.AuthConfig{
		JWTPublicKey: string(pubPEM),
		APIKeys:      []string{testAPIKey},
	})
	tm.router = router

	return tm
}

// tearDownTestHandler cleans up the test mocks
func tearDownTestHandler(tm *testHandlerMocks) {
	tm.ctrl.Finish()
}

// walletToken signs a JWT whose subject is the test wallet
func walletToken(t *testing.T, tm *testHandlerMocks, subject string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(tm.privateKey)
	require.NoError(t, err)
	return signed
}

// doRequest performs a request against the test router
func doRequest(tm *testHandlerMocks, method, path, authHeader string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := doRequest(tm, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestListTickets(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	maxSupply := uint(100)
	tm.store.EXPECT().ListTemplates(gomock.Any()).Return([]schema.TicketTemplate{
		{ID: 1, Name: "General Admission", TicketType: schema.TicketTypeAdmission, MaxSupply: &maxSupply, CurrentSupply: 100},
		{ID: 2, Name: "Souvenir", TicketType: schema.TicketTypeSouvenir},
	}, nil)

	w := doRequest(tm, http.MethodGet, "/api/v1/tickets", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Templates []struct {
			ID      int64 `json:"id"`
			SoldOut bool  `json:"sold_out"`
		} `json:"templates"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.True(t, resp.Templates[0].SoldOut)
	assert.False(t, resp.Templates[1].SoldOut)
}

func TestGetTicket(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().GetTemplate(gomock.Any(), int64(5)).
		Return(&schema.TicketTemplate{ID: 5, Name: "VIP Pass", TicketType: schema.TicketTypeAdmission}, nil)

	w := doRequest(tm, http.MethodGet, "/api/v1/tickets/5", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"VIP Pass"`)
}

func TestGetTicketNotFound(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().GetTemplate(gomock.Any(), int64(99)).
		Return(nil, domain.ErrTemplateNotFound)

	w := doRequest(tm, http.MethodGet, "/api/v1/tickets/99", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTicketInvalidID(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := doRequest(tm, http.MethodGet, "/api/v1/tickets/abc", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimTicketSuccess(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	txHash := "0xdeadbeef"
	tm.claims.EXPECT().
		Claim(gomock.Any(), int64(5), testWallet, domain.SourceManual).
		Return(&claims.Outcome{
			Claim:   &schema.ClaimRecord{TemplateID: 5, WalletAddress: testWallet},
			MintLog: &schema.MintLogEntry{Status: schema.MintStatusSuccess, TxHash: &txHash},
		}, nil)

	auth := "Bearer " + walletToken(t, tm, testWallet)
	w := doRequest(tm, http.MethodPost, "/api/v1/tickets/5/claim", auth, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tx_hash":"0xdeadbeef"`)
}

func TestClaimTicketWithSource(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.claims.EXPECT().
		Claim(gomock.Any(), int64(5), testWallet, domain.SourceAirdrop).
		Return(&claims.Outcome{Claim: &schema.ClaimRecord{TemplateID: 5}}, nil)

	auth := "Bearer " + walletToken(t, tm, testWallet)
	w := doRequest(tm, http.MethodPost, "/api/v1/tickets/5/claim", auth, map[string]string{"source": "airdrop"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClaimTicketInvalidSource(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	auth := "Bearer " + walletToken(t, tm, testWallet)
	w := doRequest(tm, http.MethodPost, "/api/v1/tickets/5/claim", auth, map[string]string{"source": "purchase"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimTicketRequiresWalletAuth(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := doRequest(tm, http.MethodPost, "/api/v1/tickets/5/claim", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// API keys do not carry a wallet identity
	w = doRequest(tm, http.MethodPost, "/api/v1/tickets/5/claim", "APIKey "+testAPIKey, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClaimTicketErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"template not found", domain.ErrTemplateNotFound, http.StatusNotFound},
		{"already claimed", fmt.Errorf("%w: template 5", domain.ErrAlreadyClaimed), http.StatusConflict},
		{"out of stock", domain.ErrOutOfStock, http.StatusGone},
		{"mint engine failure", fmt.Errorf("%w: relayer 503", domain.ErrMintEngine), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestHandler(t)
			defer tearDownTestHandler(tm)

			tm.claims.EXPECT().
				Claim(gomock.Any(), int64(5), testWallet, domain.SourceManual).
				Return(nil, tt.serviceErr)

			auth := "Bearer " + walletToken(t, tm, testWallet)
			w := doRequest(tm, http.MethodPost, "/api/v1/tickets/5/claim", auth, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCreateTransferSuccess(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	expiresAt := time.Now().Add(7 * 24 * time.Hour)
	tm.escrow.EXPECT().
		CreateLink(gomock.Any(), testWallet, int64(5), "17").
		Return(&schema.TransferLink{Token: "abc123", ExpiresAt: expiresAt}, nil)

	auth := "Bearer " + walletToken(t, tm, testWallet)
	w := doRequest(tm, http.MethodPost, "/api/v1/transfers", auth, map[string]any{
		"template_id": 5,
		"token_id":    "17",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"abc123"`)
}

func TestCreateTransferValidation(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	auth := "Bearer " + walletToken(t, tm, testWallet)
	w := doRequest(tm, http.MethodPost, "/api/v1/transfers", auth, map[string]any{
		"token_id": "17",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTransferErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"template not found", domain.ErrTemplateNotFound, http.StatusNotFound},
		{"not transferable", fmt.Errorf("%w: template 5", domain.ErrNotTransferable), http.StatusBadRequest},
		{"ticket not held", domain.ErrLinkNotOwned, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestHandler(t)
			defer tearDownTestHandler(tm)

			tm.escrow.EXPECT().
				CreateLink(gomock.Any(), testWallet, int64(5), "17").
				Return(nil, tt.serviceErr)

			auth := "Bearer " + walletToken(t, tm, testWallet)
			w := doRequest(tm, http.MethodPost, "/api/v1/transfers", auth, map[string]any{
				"template_id": 5,
				"token_id":    "17",
			})

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRedeemTransferSuccess(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.escrow.EXPECT().
		Redeem(gomock.Any(), "abc123", testWallet).
		Return(&escrow.RedeemResult{TokenID: "42", TxHash: "0xfeed"}, nil)

	auth := "Bearer " + walletToken(t, tm, testWallet)
	w := doRequest(tm, http.MethodPost, "/api/v1/transfers/claim", auth, map[string]string{"token": "abc123"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token_id":"42"`)
}

func TestRedeemTransferErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"link not found", domain.ErrLinkNotFound, http.StatusNotFound},
		{"link expired", fmt.Errorf("%w: token abc123", domain.ErrLinkExpired), http.StatusBadRequest},
		{"self claim", domain.ErrSelfClaim, http.StatusBadRequest},
		{"already finalized", domain.ErrLinkFinalized, http.StatusConflict},
		{"mint engine failure", fmt.Errorf("%w: relayer 503", domain.ErrMintEngine), http.StatusInternalServerError},
		{"reconciliation required", domain.ErrLinkReconciliation, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestHandler(t)
			defer tearDownTestHandler(tm)

			tm.escrow.EXPECT().
				Redeem(gomock.Any(), "abc123", testWallet).
				Return(nil, tt.serviceErr)

			auth := "Bearer " + walletToken(t, tm, testWallet)
			w := doRequest(tm, http.MethodPost, "/api/v1/transfers/claim", auth, map[string]string{"token": "abc123"})

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCancelTransferSuccess(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.escrow.EXPECT().
		Cancel(gomock.Any(), "abc123", testWallet).
		Return(nil)

	auth := "Bearer " + walletToken(t, tm, testWallet)
	w := doRequest(tm, http.MethodPost, "/api/v1/transfers/cancel", auth, map[string]string{"token": "abc123"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCancelTransferNotOwned(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.escrow.EXPECT().
		Cancel(gomock.Any(), "abc123", testWallet).
		Return(domain.ErrLinkNotOwned)

	auth := "Bearer " + walletToken(t, tm, testWallet)
	w := doRequest(tm, http.MethodPost, "/api/v1/transfers/cancel", auth, map[string]string{"token": "abc123"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReceiveOrderWebhookSuccess(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.publisher.EXPECT().
		PublishOrderPaid(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, event *domain.OrderPaidEvent) error {
			assert.Equal(t, "order-001", event.OrderRef)
			assert.NotEmpty(t, event.EventID)
			assert.Len(t, event.LineItems, 1)
			return nil
		})

	w := doRequest(tm, http.MethodPost, "/api/v1/webhooks/orders", "APIKey "+testAPIKey, map[string]any{
		"order_ref":   "order-001",
		"buyer_email": "buyer@example.com",
		"line_items":  []map[string]any{{"product_ref": "prod-1", "quantity": 1}},
		"paid_at":     time.Now().UTC(),
	})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"event_id"`)
}

func TestReceiveOrderWebhookValidation(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	// No buyer identity at all
	w := doRequest(tm, http.MethodPost, "/api/v1/webhooks/orders", "APIKey "+testAPIKey, map[string]any{
		"order_ref":  "order-001",
		"line_items": []map[string]any{{"product_ref": "prod-1", "quantity": 1}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceiveOrderWebhookRequiresAPIKey(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := doRequest(tm, http.MethodPost, "/api/v1/webhooks/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wallet JWTs cannot reach the webhook surface
	auth := "Bearer " + walletToken(t, tm, testWallet)
	w = doRequest(tm, http.MethodPost, "/api/v1/webhooks/orders", auth, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListFailedMints(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	errMsg := "relayer timeout"
	tm.store.EXPECT().
		ListFailedMints(gomock.Any(), 100).
		Return([]schema.MintLogEntry{
			{ID: 7, WalletAddress: testWallet, Status: schema.MintStatusError, ErrorMessage: &errMsg},
		}, nil)

	w := doRequest(tm, http.MethodGet, "/api/v1/mints/failed", "APIKey "+testAPIKey, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"error_message":"relayer timeout"`)
}

func TestListFailedMintsCustomLimit(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().
		ListFailedMints(gomock.Any(), 25).
		Return([]schema.MintLogEntry{}, nil)

	w := doRequest(tm, http.MethodGet, "/api/v1/mints/failed?limit=25", "APIKey "+testAPIKey, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListFailedMintsInvalidLimit(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := doRequest(tm, http.MethodGet, "/api/v1/mints/failed?limit=0", "APIKey "+testAPIKey, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRetryMintSuccess(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	txHash := "0xretry"
	tm.claims.EXPECT().
		RetryMint(gomock.Any(), int64(7)).
		Return(&schema.MintLogEntry{ID: 8, Status: schema.MintStatusSuccess, TxHash: &txHash}, nil)

	w := doRequest(tm, http.MethodPost, "/api/v1/mints/7/retry", "APIKey "+testAPIKey, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tx_hash":"0xretry"`)
}

func TestRetryMintErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"entry not found", fmt.Errorf("%w: id 7", domain.ErrMintLogNotFound), http.StatusNotFound},
		{"not retryable", fmt.Errorf("%w: id 7 has status success", domain.ErrMintNotRetryable), http.StatusConflict},
		{"mint engine failure", fmt.Errorf("%w: relayer 503", domain.ErrMintEngine), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestHandler(t)
			defer tearDownTestHandler(tm)

			tm.claims.EXPECT().
				RetryMint(gomock.Any(), int64(7)).
				Return(nil, tt.serviceErr)

			w := doRequest(tm, http.MethodPost, "/api/v1/mints/7/retry", "APIKey "+testAPIKey, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestListWalletMints(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().
		ListMintsByWallet(gomock.Any(), testWallet, 100).
		Return([]schema.MintLogEntry{
			{ID: 1, WalletAddress: testWallet, Status: schema.MintStatusSuccess},
		}, nil)

	auth := "Bearer " + walletToken(t, tm, testWallet)
	w := doRequest(tm, http.MethodGet, "/api/v1/wallets/"+testWallet+"/mints", auth, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestListWalletMintsInvalidAddress(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	auth := "Bearer " + walletToken(t, tm, testWallet)
	w := doRequest(tm, http.MethodGet, "/api/v1/wallets/not-an-address/mints", auth, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
