package claims_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypass-labs/ticketd/internal/claims"
	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/logger"
	"github.com/citypass-labs/ticketd/internal/metadata"
	"github.com/citypass-labs/ticketd/internal/minter"
	"github.com/citypass-labs/ticketd/internal/mocks"
	"github.com/citypass-labs/ticketd/internal/store"
	"github.com/citypass-labs/ticketd/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testServiceMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	engine  *mocks.MockMintEngine
	service claims.Service
}

func setupTestService(t *testing.T) *testServiceMocks {
	ctrl := gomock.NewController(t)

	tm := &testServiceMocks{
		ctrl:   ctrl,
		store:  mocks.NewMockStore(ctrl),
		engine: mocks.NewMockMintEngine(ctrl),
	}
	tm.service = claims.NewService(tm.store, tm.engine, metadata.NewBuilder())

	t.Cleanup(ctrl.Finish)
	return tm
}

const testWallet = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func testTemplate() *schema.TicketTemplate {
	maxSupply := uint(100)
	return &schema.TicketTemplate{
		ID:              1,
		Name:            "General Admission",
		TicketType:      schema.TicketTypeAdmission,
		MaxSupply:       &maxSupply,
		ContractAddress: "0x00000000000000000000000000000000000000FF",
	}
}

func TestClaimSuccess(t *testing.T) {
	tm := setupTestService(t)
	ctx := context.Background()

	template := testTemplate()
	tm.store.EXPECT().GetTemplate(ctx, int64(1)).Return(template, nil)
	tm.store.EXPECT().ClaimTicket(ctx, store.ClaimTicketInput{
		TemplateID:    1,
		WalletAddress: testWallet,
		Source:        domain.SourceAirdrop,
	}).Return(&schema.ClaimRecord{ID: 10, TemplateID: 1, WalletAddress: testWallet, Source: domain.SourceAirdrop}, nil)
	tm.engine.EXPECT().Mint(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req minter.MintRequest) (*minter.TxHandle, error) {
			assert.Equal(t, testWallet, req.To)
			assert.Equal(t, template.ContractAddress, req.ContractAddress)
			assert.Contains(t, req.Metadata, `"Airdrop"`)
			return &minter.TxHandle{TokenID: "42", TxHash: "0xabc"}, nil
		})
	tm.store.EXPECT().AppendMintLog(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, input store.CreateMintLogInput) (*schema.MintLogEntry, error) {
			assert.Equal(t, schema.MintStatusSuccess, input.Status)
			require.NotNil(t, input.TxHash)
			assert.Equal(t, "0xabc", *input.TxHash)
			return &schema.MintLogEntry{ID: 20, Status: input.Status}, nil
		})

	outcome, err := tm.service.Claim(ctx, 1, testWallet, domain.SourceAirdrop)
	require.NoError(t, err)
	assert.Equal(t, int64(10), outcome.Claim.ID)
	assert.Equal(t, schema.MintStatusSuccess, outcome.MintLog.Status)
}

func TestClaimMintFailureKeepsClaim(t *testing.T) {
	tm := setupTestService(t)
	ctx := context.Background()

	tm.store.EXPECT().GetTemplate(ctx, int64(1)).Return(testTemplate(), nil)
	tm.store.EXPECT().ClaimTicket(ctx, gomock.Any()).
		Return(&schema.ClaimRecord{ID: 10}, nil)
	tm.engine.EXPECT().Mint(ctx, gomock.Any()).
		Return(nil, domain.ErrMintEngine)
	tm.store.EXPECT().AppendMintLog(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, input store.CreateMintLogInput) (*schema.MintLogEntry, error) {
			assert.Equal(t, schema.MintStatusError, input.Status)
			require.NotNil(t, input.ErrorMessage)
			return &schema.MintLogEntry{ID: 21, Status: input.Status}, nil
		})

	outcome, err := tm.service.Claim(ctx, 1, testWallet, domain.SourcePurchase)
	require.ErrorIs(t, err, domain.ErrMintEngine)
	// The claim record is returned even though the mint failed
	require.NotNil(t, outcome)
	assert.Equal(t, int64(10), outcome.Claim.ID)
	assert.Equal(t, schema.MintStatusError, outcome.MintLog.Status)
}

func TestClaimAlreadyClaimed(t *testing.T) {
	tm := setupTestService(t)
	ctx := context.Background()

	tm.store.EXPECT().GetTemplate(ctx, int64(1)).Return(testTemplate(), nil)
	tm.store.EXPECT().ClaimTicket(ctx, gomock.Any()).
		Return(nil, domain.ErrAlreadyClaimed)

	_, err := tm.service.Claim(ctx, 1, testWallet, domain.SourceAirdrop)
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
}

func TestClaimOutOfStock(t *testing.T) {
	tm := setupTestService(t)
	ctx := context.Background()

	tm.store.EXPECT().GetTemplate(ctx, int64(1)).Return(testTemplate(), nil)
	tm.store.EXPECT().ClaimTicket(ctx, gomock.Any()).
		Return(nil, domain.ErrOutOfStock)

	_, err := tm.service.Claim(ctx, 1, testWallet, domain.SourceAirdrop)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestClaimTemplateNotFound(t *testing.T) {
	tm := setupTestService(t)
	ctx := context.Background()

	tm.store.EXPECT().GetTemplate(ctx, int64(404)).Return(nil, domain.ErrTemplateNotFound)

	_, err := tm.service.Claim(ctx, 404, testWallet, domain.SourceAirdrop)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestClaimInvalidAddress(t *testing.T) {
	tm := setupTestService(t)
	ctx := context.Background()

	_, err := tm.service.Claim(ctx, 1, "not-an-address", domain.SourceAirdrop)
	assert.Error(t, err)
}

func TestRetryMintSuccess(t *testing.T) {
	tm := setupTestService(t)
	ctx := context.Background()

	templateID := int64(1)
	orderRef := "order-7"
	productRef := "prod-7"
	errMsg := "relayer timeout"
	failed := &schema.MintLogEntry{
		ID:              30,
		WalletAddress:   testWallet,
		ContractAddress: "0x00000000000000000000000000000000000000FF",
		TemplateID:      &templateID,
		OrderRef:        &orderRef,
		ProductRef:      &productRef,
		Status:          schema.MintStatusError,
		ErrorMessage:    &errMsg,
		Metadata:        []byte(`{"name":"General Admission"}`),
	}

	tm.store.EXPECT().GetMintLogByID(ctx, int64(30)).Return(failed, nil)
	// Retry re-mints only; no ClaimTicket expectation means no new claim
	tm.engine.EXPECT().Mint(ctx, minter.MintRequest{
		To:              testWallet,
		ContractAddress: failed.ContractAddress,
		Metadata:        `{"name":"General Admission"}`,
	}).Return(&minter.TxHandle{TokenID: "43", TxHash: "0xdef"}, nil)
	tm.store.EXPECT().AppendMintLog(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, input store.CreateMintLogInput) (*schema.MintLogEntry, error) {
			assert.Equal(t, schema.MintStatusSuccess, input.Status)
			assert.Equal(t, &orderRef, input.OrderRef)
			return &schema.MintLogEntry{ID: 31, Status: input.Status}, nil
		})

	entry, err := tm.service.RetryMint(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, schema.MintStatusSuccess, entry.Status)
}

func TestRetryMintRejectsSucceededEntry(t *testing.T) {
	tm := setupTestService(t)
	ctx := context.Background()

	tm.store.EXPECT().GetMintLogByID(ctx, int64(31)).
		Return(&schema.MintLogEntry{ID: 31, Status: schema.MintStatusSuccess}, nil)

	_, err := tm.service.RetryMint(ctx, 31)
	assert.Error(t, err)
}

func TestRetryMintNotFound(t *testing.T) {
	tm := setupTestService(t)
	ctx := context.Background()

	tm.store.EXPECT().GetMintLogByID(ctx, int64(404)).Return(nil, nil)

	_, err := tm.service.RetryMint(ctx, 404)
	assert.Error(t, err)
}

func TestMintForClaimLogAppendFailure(t *testing.T) {
	tm := setupTestService(t)
	ctx := context.Background()

	tm.engine.EXPECT().Mint(ctx, gomock.Any()).
		Return(&minter.TxHandle{TokenID: "1", TxHash: "0x1"}, nil)
	tm.store.EXPECT().AppendMintLog(ctx, gomock.Any()).
		Return(nil, errors.New("db down"))

	_, err := tm.service.MintForClaim(ctx, testTemplate(), testWallet, domain.SourceManual, nil, nil)
	assert.Error(t, err)
}
