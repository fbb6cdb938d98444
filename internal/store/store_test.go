package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestTemplate creates a test ticket template
func buildTestTemplate(name string, maxSupply *uint) *schema.TicketTemplate {
	return &schema.TicketTemplate{
		Name:            name,
		Description:     "test template",
		ImageURL:        "https://cdn.example.com/art.png",
		TicketType:      schema.TicketTypeAdmission,
		MaxSupply:       maxSupply,
		IsTransferable:  true,
		ContractAddress: "0x00000000000000000000000000000000000000FF",
	}
}

func uintPtr(v uint) *uint {
	return &v
}

func stringPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}

// =============================================================================
// Templates
// =============================================================================

func testTemplates(t *testing.T, store Store) {
	ctx := context.Background()

	template := buildTestTemplate("General Admission", uintPtr(100))
	template.ProductRef = stringPtr("prod_ga_001")
	require.NoError(t, store.CreateTemplate(ctx, template))
	require.NotZero(t, template.ID)

	got, err := store.GetTemplate(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, "General Admission", got.Name)
	assert.Equal(t, uint(0), got.CurrentSupply)
	assert.False(t, got.SoldOut())

	byRef, err := store.GetTemplateByProductRef(ctx, "prod_ga_001")
	require.NoError(t, err)
	assert.Equal(t, template.ID, byRef.ID)

	_, err = store.GetTemplate(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	_, err = store.GetTemplateByProductRef(ctx, "prod_nonexistent")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	all, err := store.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// =============================================================================
// Claims
// =============================================================================

func testClaimTicket(t *testing.T, store Store) {
	ctx := context.Background()

	template := buildTestTemplate("Limited Pass", uintPtr(2))
	require.NoError(t, store.CreateTemplate(ctx, template))

	walletA := "0x1000000000000000000000000000000000000001"
	walletB := "0x1000000000000000000000000000000000000002"
	walletC := "0x1000000000000000000000000000000000000003"

	// First claim succeeds and bumps supply
	record, err := store.ClaimTicket(ctx, ClaimTicketInput{
		TemplateID:    template.ID,
		WalletAddress: walletA,
		Source:        domain.SourceAirdrop,
	})
	require.NoError(t, err)
	assert.Equal(t, walletA, record.WalletAddress)
	assert.Equal(t, domain.SourceAirdrop, record.Source)

	updated, err := store.GetTemplate(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), updated.CurrentSupply)

	// Same wallet again is rejected, supply unchanged
	_, err = store.ClaimTicket(ctx, ClaimTicketInput{
		TemplateID:    template.ID,
		WalletAddress: walletA,
		Source:        domain.SourcePurchase,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)

	updated, err = store.GetTemplate(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), updated.CurrentSupply)

	// Second wallet takes the last slot
	_, err = store.ClaimTicket(ctx, ClaimTicketInput{
		TemplateID:    template.ID,
		WalletAddress: walletB,
		Source:        domain.SourceLINE,
	})
	require.NoError(t, err)

	// Third wallet finds the supply exhausted
	_, err = store.ClaimTicket(ctx, ClaimTicketInput{
		TemplateID:    template.ID,
		WalletAddress: walletC,
		Source:        domain.SourceAirdrop,
	})
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	// Unknown template
	_, err = store.ClaimTicket(ctx, ClaimTicketInput{
		TemplateID:    999999,
		WalletAddress: walletA,
		Source:        domain.SourceAirdrop,
	})
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	has, err := store.HasClaim(ctx, template.ID, walletA)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = store.HasClaim(ctx, template.ID, walletC)
	require.NoError(t, err)
	assert.False(t, has)

	claims, err := store.ListClaimsByWallet(ctx, walletA)
	require.NoError(t, err)
	assert.Len(t, claims, 1)
}

func testClaimTicketUnlimitedSupply(t *testing.T, store Store) {
	ctx := context.Background()

	// nil max_supply means uncapped
	template := buildTestTemplate("Open Edition", nil)
	require.NoError(t, store.CreateTemplate(ctx, template))

	for i := 0; i < 5; i++ {
		_, err := store.ClaimTicket(ctx, ClaimTicketInput{
			TemplateID:    template.ID,
			WalletAddress: fmt.Sprintf("0x3%039d", i),
			Source:        domain.SourceManual,
		})
		require.NoError(t, err)
	}

	updated, err := store.GetTemplate(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(5), updated.CurrentSupply)
	assert.False(t, updated.SoldOut())
}

// =============================================================================
// Mint log
// =============================================================================

func testMintLog(t *testing.T, store Store) {
	ctx := context.Background()

	wallet := "0x4000000000000000000000000000000000000001"
	contract := "0x00000000000000000000000000000000000000FF"

	// An error entry does not satisfy the idempotency predicate
	_, err := store.AppendMintLog(ctx, CreateMintLogInput{
		WalletAddress:   wallet,
		ContractAddress: contract,
		OrderRef:        stringPtr("order-100"),
		ProductRef:      stringPtr("prod-1"),
		Status:          schema.MintStatusError,
		ErrorMessage:    stringPtr("relayer timeout"),
	})
	require.NoError(t, err)

	done, err := store.HasSuccessfulMintForOrder(ctx, "order-100", "prod-1")
	require.NoError(t, err)
	assert.False(t, done)

	entry, err := store.AppendMintLog(ctx, CreateMintLogInput{
		WalletAddress:   wallet,
		ContractAddress: contract,
		TokenID:         stringPtr("4321"),
		TemplateID:      int64Ptr(1),
		OrderRef:        stringPtr("order-100"),
		ProductRef:      stringPtr("prod-1"),
		Status:          schema.MintStatusSuccess,
		TxHash:          stringPtr("0xabc"),
		Metadata:        datatypes.JSON([]byte(`{"name":"Ticket"}`)),
	})
	require.NoError(t, err)
	require.NotZero(t, entry.ID)

	done, err = store.HasSuccessfulMintForOrder(ctx, "order-100", "prod-1")
	require.NoError(t, err)
	assert.True(t, done)

	// Same order, different product line is still open
	done, err = store.HasSuccessfulMintForOrder(ctx, "order-100", "prod-2")
	require.NoError(t, err)
	assert.False(t, done)

	got, err := store.GetMintLogByID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, schema.MintStatusSuccess, got.Status)

	missing, err := store.GetMintLogByID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	failed, err := store.ListFailedMints(ctx, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, schema.MintStatusError, failed[0].Status)

	byWallet, err := store.ListMintsByWallet(ctx, wallet, 10)
	require.NoError(t, err)
	assert.Len(t, byWallet, 2)
}

// =============================================================================
// Transfer links
// =============================================================================

func buildTestTransferLink(t *testing.T, store Store, token string, expiresAt time.Time) *schema.TransferLink {
	ctx := context.Background()

	template := buildTestTemplate("Transferable Pass "+token, nil)
	require.NoError(t, store.CreateTemplate(ctx, template))

	link, err := store.CreateTransferLink(ctx, CreateTransferLinkInput{
		Token:        token,
		GiverAddress: "0x5000000000000000000000000000000000000001",
		TemplateID:   template.ID,
		TokenID:      "777",
		ExpiresAt:    expiresAt,
	})
	require.NoError(t, err)
	return link
}

func testTransferLinkLifecycle(t *testing.T, store Store) {
	ctx := context.Background()

	link := buildTestTransferLink(t, store, "aabbccddeeff00112233445566778899", time.Now().Add(7*24*time.Hour))
	assert.Equal(t, schema.TransferLinkStatusActive, link.Status)

	got, err := store.GetTransferLinkByToken(ctx, link.Token)
	require.NoError(t, err)
	assert.Equal(t, link.ID, got.ID)

	_, err = store.GetTransferLinkByToken(ctx, "deadbeefdeadbeefdeadbeefdeadbeef")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)

	claimer := "0x6000000000000000000000000000000000000001"
	require.NoError(t, store.MarkTransferLinkClaimed(ctx, link.Token, claimer, "0xtx1"))

	got, err = store.GetTransferLinkByToken(ctx, link.Token)
	require.NoError(t, err)
	assert.Equal(t, schema.TransferLinkStatusClaimed, got.Status)
	require.NotNil(t, got.ClaimerAddress)
	assert.Equal(t, claimer, *got.ClaimerAddress)
	require.NotNil(t, got.TxHash)
	assert.Equal(t, "0xtx1", *got.TxHash)

	// Every further transition is rejected: terminal states are final
	err = store.MarkTransferLinkClaimed(ctx, link.Token, claimer, "0xtx2")
	assert.ErrorIs(t, err, domain.ErrLinkFinalized)
	err = store.MarkTransferLinkCancelled(ctx, link.Token)
	assert.ErrorIs(t, err, domain.ErrLinkFinalized)
	err = store.MarkTransferLinkExpired(ctx, link.Token)
	assert.ErrorIs(t, err, domain.ErrLinkFinalized)

	err = store.MarkTransferLinkCancelled(ctx, "deadbeefdeadbeefdeadbeefdeadbeef")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}

func testTransferLinkCancel(t *testing.T, store Store) {
	ctx := context.Background()

	link := buildTestTransferLink(t, store, "00112233445566778899aabbccddeeff", time.Now().Add(7*24*time.Hour))

	require.NoError(t, store.MarkTransferLinkCancelled(ctx, link.Token))

	got, err := store.GetTransferLinkByToken(ctx, link.Token)
	require.NoError(t, err)
	assert.Equal(t, schema.TransferLinkStatusCancelled, got.Status)

	err = store.MarkTransferLinkClaimed(ctx, link.Token, "0x6000000000000000000000000000000000000002", "0xtx")
	assert.ErrorIs(t, err, domain.ErrLinkFinalized)
}

func testExpireTransferLinks(t *testing.T, store Store) {
	ctx := context.Background()

	stale := buildTestTransferLink(t, store, "11111111111111111111111111111111", time.Now().Add(-time.Hour))
	fresh := buildTestTransferLink(t, store, "22222222222222222222222222222222", time.Now().Add(time.Hour))

	links, err := store.ListExpiredActiveLinks(ctx, time.Now(), 100)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, stale.Token, links[0].Token)

	require.NoError(t, store.MarkTransferLinkExpired(ctx, links[0].Token))

	got, err := store.GetTransferLinkByToken(ctx, stale.Token)
	require.NoError(t, err)
	assert.Equal(t, schema.TransferLinkStatusExpired, got.Status)

	got, err = store.GetTransferLinkByToken(ctx, fresh.Token)
	require.NoError(t, err)
	assert.Equal(t, schema.TransferLinkStatusActive, got.Status)

	// Second sweep finds nothing
	links, err = store.ListExpiredActiveLinks(ctx, time.Now(), 100)
	require.NoError(t, err)
	assert.Empty(t, links)
}

// =============================================================================
// Wallets
// =============================================================================

func testWallets(t *testing.T, store Store) {
	ctx := context.Background()

	err := store.UpsertWallet(ctx, &schema.Wallet{
		Email:       "Buyer@Example.COM",
		Address:     "0x7000000000000000000000000000000000000001",
		Provisioned: true,
	})
	require.NoError(t, err)

	// Lookup is case-insensitive on email
	wallet, err := store.GetWalletByEmail(ctx, "buyer@example.com")
	require.NoError(t, err)
	require.NotNil(t, wallet)
	assert.Equal(t, "0x7000000000000000000000000000000000000001", wallet.Address)
	assert.True(t, wallet.Provisioned)

	// Conflicting upsert keeps the first mapping
	err = store.UpsertWallet(ctx, &schema.Wallet{
		Email:   "buyer@example.com",
		Address: "0x7000000000000000000000000000000000000002",
	})
	require.NoError(t, err)

	wallet, err = store.GetWalletByEmail(ctx, "buyer@example.com")
	require.NoError(t, err)
	require.NotNil(t, wallet)
	assert.Equal(t, "0x7000000000000000000000000000000000000001", wallet.Address)

	missing, err := store.GetWalletByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// RunStoreTests runs the shared store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Templates", testTemplates},
		{"ClaimTicket", testClaimTicket},
		{"ClaimTicketUnlimitedSupply", testClaimTicketUnlimitedSupply},
		{"MintLog", testMintLog},
		{"TransferLinkLifecycle", testTransferLinkLifecycle},
		{"TransferLinkCancel", testTransferLinkCancel},
		{"ExpireTransferLinks", testExpireTransferLinks},
		{"Wallets", testWallets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
