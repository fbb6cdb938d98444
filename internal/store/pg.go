package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// GetTemplate retrieves a ticket template by ID
func (s *pgStore) GetTemplate(ctx context.Context, id int64) (*schema.TicketTemplate, error) {
	var template schema.TicketTemplate
	err := retryOnce(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("id = ?", id).
			First(&template).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &template, nil
}

// GetTemplateByProductRef retrieves the template mapped to a shop product
func (s *pgStore) GetTemplateByProductRef(ctx context.Context, productRef string) (*schema.TicketTemplate, error) {
	var template schema.TicketTemplate
	err := retryOnce(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("product_ref = ?", productRef).
			First(&template).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template by product ref: %w", err)
	}
	return &template, nil
}

// ListTemplates retrieves all ticket templates ordered by ID
func (s *pgStore) ListTemplates(ctx context.Context) ([]schema.TicketTemplate, error) {
	var templates []schema.TicketTemplate
	err := retryOnce(ctx, func() error {
		templates = templates[:0]
		return s.db.WithContext(ctx).
			Order("id ASC").
			Find(&templates).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// CreateTemplate inserts a new ticket template
func (s *pgStore) CreateTemplate(ctx context.Context, template *schema.TicketTemplate) error {
	if err := s.db.WithContext(ctx).Create(template).Error; err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// ClaimTicket atomically records a claim against a template.
//
// The whole check-and-reserve runs in one transaction:
//  1. Lock the template row with SELECT ... FOR UPDATE so concurrent claims
//     on the same template serialize.
//  2. Reject if the wallet already holds a claim (one per wallet per template).
//  3. Reject if the supply cap is reached.
//  4. Increment current_supply and insert the claim record.
//
// The unique index on (template_id, wallet_address) is a backstop only; the
// row lock makes the existence check authoritative.
//
// The transaction rolls back as a unit, so a transient failure (deadlock,
// dropped connection) is retried once before surfacing. Business outcomes are
// never retried.
func (s *pgStore) ClaimTicket(ctx context.Context, input ClaimTicketInput) (*schema.ClaimRecord, error) {
	var record schema.ClaimRecord
	err := retryOnce(ctx, func() error {
		return s.claimTicketTx(ctx, input, &record)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *pgStore) claimTicketTx(ctx context.Context, input ClaimTicketInput, record *schema.ClaimRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var template schema.TicketTemplate
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.TemplateID).
			First(&template).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTemplateNotFound
			}
			return fmt.Errorf("failed to lock template: %w", err)
		}

		var existing int64
		err = tx.Model(&schema.ClaimRecord{}).
			Where("template_id = ? AND wallet_address = ?", input.TemplateID, input.WalletAddress).
			Count(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to check prior claim: %w", err)
		}
		if existing > 0 {
			return domain.ErrAlreadyClaimed
		}

		if template.SoldOut() {
			return domain.ErrOutOfStock
		}

		err = tx.Model(&schema.TicketTemplate{}).
			Where("id = ?", input.TemplateID).
			Update("current_supply", gorm.Expr("current_supply + 1")).Error
		if err != nil {
			return fmt.Errorf("failed to increment supply: %w", err)
		}

		*record = schema.ClaimRecord{
			TemplateID:    input.TemplateID,
			WalletAddress: input.WalletAddress,
			Source:        input.Source,
		}
		if err := tx.Create(record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyClaimed
			}
			return fmt.Errorf("failed to insert claim record: %w", err)
		}

		return nil
	})
}

// HasClaim checks whether a wallet already holds a claim on a template
func (s *pgStore) HasClaim(ctx context.Context, templateID int64, walletAddress string) (bool, error) {
	var count int64
	err := retryOnce(ctx, func() error {
		return s.db.WithContext(ctx).Model(&schema.ClaimRecord{}).
			Where("template_id = ? AND wallet_address = ?", templateID, walletAddress).
			Count(&count).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to check claim: %w", err)
	}
	return count > 0, nil
}

// GetClaim retrieves the claim a wallet holds on a template, or nil
func (s *pgStore) GetClaim(ctx context.Context, templateID int64, walletAddress string) (*schema.ClaimRecord, error) {
	var record schema.ClaimRecord
	err := retryOnce(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("template_id = ? AND wallet_address = ?", templateID, walletAddress).
			First(&record).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return &record, nil
}

// ListClaimsByWallet retrieves all claims held by a wallet
func (s *pgStore) ListClaimsByWallet(ctx context.Context, walletAddress string) ([]schema.ClaimRecord, error) {
	var records []schema.ClaimRecord
	err := retryOnce(ctx, func() error {
		records = records[:0]
		return s.db.WithContext(ctx).
			Where("wallet_address = ?", walletAddress).
			Order("created_at DESC").
			Find(&records).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list claims by wallet: %w", err)
	}
	return records, nil
}

// AppendMintLog appends an immutable mint attempt record
func (s *pgStore) AppendMintLog(ctx context.Context, input CreateMintLogInput) (*schema.MintLogEntry, error) {
	entry := schema.MintLogEntry{
		WalletAddress:   input.WalletAddress,
		ContractAddress: input.ContractAddress,
		TokenID:         input.TokenID,
		TemplateID:      input.TemplateID,
		OrderRef:        input.OrderRef,
		ProductRef:      input.ProductRef,
		Status:          input.Status,
		TxHash:          input.TxHash,
		ErrorMessage:    input.ErrorMessage,
		Metadata:        input.Metadata,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to append mint log: %w", err)
	}
	return &entry, nil
}

// HasSuccessfulMintForOrder checks whether a success row exists for the
// (order, product) pair
func (s *pgStore) HasSuccessfulMintForOrder(ctx context.Context, orderRef, productRef string) (bool, error) {
	var count int64
	err := retryOnce(ctx, func() error {
		return s.db.WithContext(ctx).Model(&schema.MintLogEntry{}).
			Where("order_ref = ? AND product_ref = ? AND status = ?", orderRef, productRef, schema.MintStatusSuccess).
			Count(&count).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to check mint log for order: %w", err)
	}
	return count > 0, nil
}

// GetMintLogByID retrieves a single mint log entry
func (s *pgStore) GetMintLogByID(ctx context.Context, id int64) (*schema.MintLogEntry, error) {
	var entry schema.MintLogEntry
	err := retryOnce(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("id = ?", id).
			First(&entry).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mint log entry: %w", err)
	}
	return &entry, nil
}

// ListFailedMints retrieves error entries newest first
func (s *pgStore) ListFailedMints(ctx context.Context, limit int) ([]schema.MintLogEntry, error) {
	var entries []schema.MintLogEntry
	err := retryOnce(ctx, func() error {
		entries = entries[:0]
		return s.db.WithContext(ctx).
			Where("status = ?", schema.MintStatusError).
			Order("created_at DESC").
			Limit(limit).
			Find(&entries).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list failed mints: %w", err)
	}
	return entries, nil
}

// ListMintsByWallet retrieves mint log entries for a wallet newest first
func (s *pgStore) ListMintsByWallet(ctx context.Context, walletAddress string, limit int) ([]schema.MintLogEntry, error) {
	var entries []schema.MintLogEntry
	err := retryOnce(ctx, func() error {
		entries = entries[:0]
		return s.db.WithContext(ctx).
			Where("wallet_address = ?", walletAddress).
			Order("created_at DESC").
			Limit(limit).
			Find(&entries).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list mints by wallet: %w", err)
	}
	return entries, nil
}

// CreateTransferLink inserts a new active transfer link
func (s *pgStore) CreateTransferLink(ctx context.Context, input CreateTransferLinkInput) (*schema.TransferLink, error) {
	link := schema.TransferLink{
		Token:        input.Token,
		GiverAddress: input.GiverAddress,
		TemplateID:   input.TemplateID,
		TokenID:      input.TokenID,
		Status:       schema.TransferLinkStatusActive,
		ExpiresAt:    input.ExpiresAt,
	}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to create transfer link: %w", err)
	}
	return &link, nil
}

// GetTransferLinkByToken retrieves a transfer link by its capability token
func (s *pgStore) GetTransferLinkByToken(ctx context.Context, token string) (*schema.TransferLink, error) {
	var link schema.TransferLink
	err := retryOnce(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("token = ?", token).
			First(&link).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get transfer link: %w", err)
	}
	return &link, nil
}

// transitionTransferLink performs a compare-and-swap status update conditioned
// on the link still being active. Zero rows affected means the link was
// finalized by a concurrent transition, or never existed.
func (s *pgStore) transitionTransferLink(ctx context.Context, token string, to schema.TransferLinkStatus, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to
	updates["updated_at"] = gorm.Expr("now()")

	result := s.db.WithContext(ctx).Model(&schema.TransferLink{}).
		Where("token = ? AND status = ?", token, schema.TransferLinkStatusActive).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to transition transfer link to %s: %w", to, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&schema.TransferLink{}).
			Where("token = ?", token).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check transfer link existence: %w", err)
		}
		if count == 0 {
			return domain.ErrLinkNotFound
		}
		return domain.ErrLinkFinalized
	}
	return nil
}

// MarkTransferLinkClaimed transitions an active link to claimed
func (s *pgStore) MarkTransferLinkClaimed(ctx context.Context, token, claimerAddress, txHash string) error {
	return s.transitionTransferLink(ctx, token, schema.TransferLinkStatusClaimed, map[string]interface{}{
		"claimer_address": claimerAddress,
		"tx_hash":         txHash,
	})
}

// MarkTransferLinkExpired transitions an active link to expired
func (s *pgStore) MarkTransferLinkExpired(ctx context.Context, token string) error {
	return s.transitionTransferLink(ctx, token, schema.TransferLinkStatusExpired, nil)
}

// MarkTransferLinkCancelled transitions an active link to cancelled
func (s *pgStore) MarkTransferLinkCancelled(ctx context.Context, token string) error {
	return s.transitionTransferLink(ctx, token, schema.TransferLinkStatusCancelled, nil)
}

// ListExpiredActiveLinks returns up to limit active links whose deadline
// passed, oldest first
func (s *pgStore) ListExpiredActiveLinks(ctx context.Context, deadline time.Time, limit int) ([]schema.TransferLink, error) {
	var links []schema.TransferLink
	err := retryOnce(ctx, func() error {
		links = links[:0]
		return s.db.WithContext(ctx).
			Where("status = ? AND expires_at <= ?", schema.TransferLinkStatusActive, deadline).
			Order("expires_at ASC").
			Limit(limit).
			Find(&links).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expired transfer links: %w", err)
	}
	return links, nil
}

// UpsertWallet inserts an email to address mapping, keeping the existing row
// when the email is already mapped
func (s *pgStore) UpsertWallet(ctx context.Context, wallet *schema.Wallet) error {
	wallet.Email = strings.ToLower(wallet.Email)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(wallet).Error
	if err != nil {
		return fmt.Errorf("failed to upsert wallet: %w", err)
	}
	return nil
}

// GetWalletByEmail retrieves the wallet mapped to a buyer email
func (s *pgStore) GetWalletByEmail(ctx context.Context, email string) (*schema.Wallet, error) {
	var wallet schema.Wallet
	err := retryOnce(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("email = ?", strings.ToLower(email)).
			First(&wallet).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wallet by email: %w", err)
	}
	return &wallet, nil
}
