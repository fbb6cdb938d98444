package escrow_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/escrow"
	"github.com/citypass-labs/ticketd/internal/logger"
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

const (
	giverAddress   = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	claimerAddress = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	linkToken      = "aabbccddeeff00112233445566778899"
)

type testEscrowMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	claims  *mocks.MockClaimsService
	tokens  *mocks.MockTokenSource
	clock   *mocks.MockClock
	service escrow.Service
}

func setupTestEscrow(t *testing.T) *testEscrowMocks {
	ctrl := gomock.NewController(t)

	tm := &testEscrowMocks{
		ctrl:   ctrl,
		store:  mocks.NewMockStore(ctrl),
		claims: mocks.NewMockClaimsService(ctrl),
		tokens: mocks.NewMockTokenSource(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}
	tm.service = escrow.NewService(tm.store, tm.claims, tm.tokens, tm.clock)

	t.Cleanup(ctrl.Finish)
	return tm
}

func transferableTemplate() *schema.TicketTemplate {
	return &schema.TicketTemplate{
		ID:              5,
		Name:            "Transferable Pass",
		TicketType:      schema.TicketTypeAdmission,
		IsTransferable:  true,
		ContractAddress: "0x00000000000000000000000000000000000000FF",
	}
}

func activeLink(now time.Time) *schema.TransferLink {
	return &schema.TransferLink{
		ID:           1,
		Token:        linkToken,
		GiverAddress: giverAddress,
		TemplateID:   5,
		TokenID:      "5",
		Status:       schema.TransferLinkStatusActive,
		ExpiresAt:    now.Add(24 * time.Hour),
	}
}

func TestCreateLink(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()
	now := time.Now()

	tm.store.EXPECT().GetTemplate(ctx, int64(5)).Return(transferableTemplate(), nil)
	tm.store.EXPECT().GetClaim(ctx, int64(5), giverAddress).
		Return(&schema.ClaimRecord{ID: 1, Source: domain.SourceAirdrop}, nil)
	tm.tokens.EXPECT().Token(escrow.TokenBytes).Return(linkToken, nil)
	tm.clock.EXPECT().Now().Return(now)
	tm.store.EXPECT().CreateTransferLink(ctx, store.CreateTransferLinkInput{
		Token:        linkToken,
		GiverAddress: giverAddress,
		TemplateID:   5,
		TokenID:      "5",
		ExpiresAt:    now.Add(escrow.LinkTTL),
	}).Return(&schema.TransferLink{Token: linkToken, Status: schema.TransferLinkStatusActive}, nil)

	link, err := tm.service.CreateLink(ctx, giverAddress, 5, "5")
	require.NoError(t, err)
	assert.Equal(t, linkToken, link.Token)
}

func TestCreateLinkRequiresOwnership(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()

	tm.store.EXPECT().GetTemplate(ctx, int64(5)).Return(transferableTemplate(), nil)
	tm.store.EXPECT().GetClaim(ctx, int64(5), giverAddress).Return(nil, nil)

	_, err := tm.service.CreateLink(ctx, giverAddress, 5, "5")
	assert.ErrorIs(t, err, domain.ErrLinkNotOwned)
}

func TestCreateLinkRejectsNonTransferable(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()

	template := transferableTemplate()
	template.IsTransferable = false
	tm.store.EXPECT().GetTemplate(ctx, int64(5)).Return(template, nil)

	_, err := tm.service.CreateLink(ctx, giverAddress, 5, "5")
	assert.ErrorIs(t, err, domain.ErrNotTransferable)
}

func TestRedeemSuccess(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()
	now := time.Now()

	template := transferableTemplate()
	tm.store.EXPECT().GetTransferLinkByToken(ctx, linkToken).Return(activeLink(now), nil)
	tm.clock.EXPECT().Now().Return(now)
	tm.store.EXPECT().GetTemplate(ctx, int64(5)).Return(template, nil)
	tm.store.EXPECT().GetClaim(ctx, int64(5), giverAddress).
		Return(&schema.ClaimRecord{Source: domain.SourcePurchase}, nil)
	txHash := "0xfresh"
	tm.claims.EXPECT().MintForClaim(ctx, template, claimerAddress, domain.SourcePurchase, gomock.Nil(), gomock.Nil()).
		Return(&schema.MintLogEntry{Status: schema.MintStatusSuccess, TxHash: &txHash}, nil)
	tm.store.EXPECT().MarkTransferLinkClaimed(ctx, linkToken, claimerAddress, txHash).Return(nil)

	result, err := tm.service.Redeem(ctx, linkToken, claimerAddress)
	require.NoError(t, err)
	assert.Equal(t, "5", result.TokenID)
	assert.Equal(t, txHash, result.TxHash)
}

func TestRedeemSelfClaim(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()
	now := time.Now()

	tm.store.EXPECT().GetTransferLinkByToken(ctx, linkToken).Return(activeLink(now), nil)
	tm.clock.EXPECT().Now().Return(now)

	// No mint expectation: self-claim never mints
	_, err := tm.service.Redeem(ctx, linkToken, giverAddress)
	assert.ErrorIs(t, err, domain.ErrSelfClaim)
}

func TestRedeemExpiredLazyWriteback(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()
	now := time.Now()

	link := activeLink(now)
	link.ExpiresAt = now.Add(-time.Minute)
	tm.store.EXPECT().GetTransferLinkByToken(ctx, linkToken).Return(link, nil)
	tm.clock.EXPECT().Now().Return(now)
	tm.store.EXPECT().MarkTransferLinkExpired(ctx, linkToken).Return(nil)

	_, err := tm.service.Redeem(ctx, linkToken, claimerAddress)
	assert.ErrorIs(t, err, domain.ErrLinkExpired)
}

func TestRedeemFinalizedLink(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()
	now := time.Now()

	for _, status := range []schema.TransferLinkStatus{
		schema.TransferLinkStatusClaimed,
		schema.TransferLinkStatusCancelled,
	} {
		link := activeLink(now)
		link.Status = status
		tm.store.EXPECT().GetTransferLinkByToken(ctx, linkToken).Return(link, nil)

		_, err := tm.service.Redeem(ctx, linkToken, claimerAddress)
		assert.ErrorIs(t, err, domain.ErrLinkFinalized)
	}
}

func TestRedeemUnknownToken(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()

	tm.store.EXPECT().GetTransferLinkByToken(ctx, "missing").
		Return(nil, domain.ErrLinkNotFound)

	_, err := tm.service.Redeem(ctx, "missing", claimerAddress)
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}

func TestRedeemMintFailureLeavesLinkActive(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()
	now := time.Now()

	template := transferableTemplate()
	tm.store.EXPECT().GetTransferLinkByToken(ctx, linkToken).Return(activeLink(now), nil)
	tm.clock.EXPECT().Now().Return(now)
	tm.store.EXPECT().GetTemplate(ctx, int64(5)).Return(template, nil)
	tm.store.EXPECT().GetClaim(ctx, int64(5), giverAddress).
		Return(&schema.ClaimRecord{Source: domain.SourceAirdrop}, nil)
	tm.claims.EXPECT().MintForClaim(ctx, template, claimerAddress, domain.SourceAirdrop, gomock.Nil(), gomock.Nil()).
		Return(nil, domain.ErrMintEngine)

	// No MarkTransferLinkClaimed expectation: the link must stay ACTIVE
	_, err := tm.service.Redeem(ctx, linkToken, claimerAddress)
	assert.ErrorIs(t, err, domain.ErrMintEngine)
}

func TestRedeemReconciliationOnFinalizeFailure(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()
	now := time.Now()

	template := transferableTemplate()
	tm.store.EXPECT().GetTransferLinkByToken(ctx, linkToken).Return(activeLink(now), nil)
	tm.clock.EXPECT().Now().Return(now)
	tm.store.EXPECT().GetTemplate(ctx, int64(5)).Return(template, nil)
	tm.store.EXPECT().GetClaim(ctx, int64(5), giverAddress).
		Return(&schema.ClaimRecord{Source: domain.SourceAirdrop}, nil)
	txHash := "0xfresh"
	tm.claims.EXPECT().MintForClaim(ctx, template, claimerAddress, domain.SourceAirdrop, gomock.Nil(), gomock.Nil()).
		Return(&schema.MintLogEntry{Status: schema.MintStatusSuccess, TxHash: &txHash}, nil)
	tm.store.EXPECT().MarkTransferLinkClaimed(ctx, linkToken, claimerAddress, txHash).
		Return(errors.New("connection reset"))

	_, err := tm.service.Redeem(ctx, linkToken, claimerAddress)
	assert.ErrorIs(t, err, domain.ErrLinkReconciliation)
}

func TestCancel(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()
	now := time.Now()

	tm.store.EXPECT().GetTransferLinkByToken(ctx, linkToken).Return(activeLink(now), nil)
	tm.store.EXPECT().MarkTransferLinkCancelled(ctx, linkToken).Return(nil)

	require.NoError(t, tm.service.Cancel(ctx, linkToken, giverAddress))
}

func TestCancelOnlyGiver(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()
	now := time.Now()

	tm.store.EXPECT().GetTransferLinkByToken(ctx, linkToken).Return(activeLink(now), nil)

	err := tm.service.Cancel(ctx, linkToken, claimerAddress)
	assert.ErrorIs(t, err, domain.ErrLinkNotOwned)
}

func TestCancelFinalized(t *testing.T) {
	tm := setupTestEscrow(t)
	ctx := context.Background()
	now := time.Now()

	link := activeLink(now)
	link.Status = schema.TransferLinkStatusClaimed
	tm.store.EXPECT().GetTransferLinkByToken(ctx, linkToken).Return(link, nil)

	err := tm.service.Cancel(ctx, linkToken, giverAddress)
	assert.ErrorIs(t, err, domain.ErrLinkFinalized)
}
