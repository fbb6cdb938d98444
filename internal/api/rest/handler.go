package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/citypass-labs/ticketd/internal/api/middleware"
	"github.com/citypass-labs/ticketd/internal/api/shared/dto"
	"github.com/citypass-labs/ticketd/internal/claims"
	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/escrow"
	"github.com/citypass-labs/ticketd/internal/logger"
	"github.com/citypass-labs/ticketd/internal/messaging"
	"github.com/citypass-labs/ticketd/internal/store"
)

// DEFAULT_LIST_LIMIT caps list endpoints when no limit is given
const DEFAULT_LIST_LIMIT = 100

// Handler defines the interface for REST API handlers
type Handler interface {
	// ListTickets lists all ticket templates
	// GET /api/v1/tickets
	ListTickets(c *gin.Context)

	// GetTicket retrieves a single ticket template
	// GET /api/v1/tickets/:id
	GetTicket(c *gin.Context)

	// ClaimTicket claims a ticket for the authenticated wallet and mints it
	// POST /api/v1/tickets/:id/claim
	ClaimTicket(c *gin.Context)

	// CreateTransfer creates a transfer link for a ticket the caller holds
	// POST /api/v1/transfers
	CreateTransfer(c *gin.Context)

	// RedeemTransfer redeems a transfer link for the authenticated wallet
	// POST /api/v1/transfers/claim
	RedeemTransfer(c *gin.Context)

	// CancelTransfer cancels an active transfer link; giver only
	// POST /api/v1/transfers/cancel
	CancelTransfer(c *gin.Context)

	// ReceiveOrderWebhook accepts an order-paid event, queues it, and
	// acknowledges immediately
	// POST /api/v1/webhooks/orders
	ReceiveOrderWebhook(c *gin.Context)

	// ListFailedMints lists error mint-log rows for the staff retry surface
	// GET /api/v1/mints/failed?limit=<limit>
	ListFailedMints(c *gin.Context)

	// RetryMint re-submits the mint of a failed log entry
	// POST /api/v1/mints/:id/retry
	RetryMint(c *gin.Context)

	// ListWalletMints lists mint-log rows for a wallet, newest first
	// GET /api/v1/wallets/:address/mints?limit=<limit>
	ListWalletMints(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store     store.Store
	claims    claims.Service
	escrow    escrow.Service
	publisher messaging.Publisher
}

// NewHandler creates a new REST API handler
func NewHandler(st store.Store, claimsSvc claims.Service, escrowSvc escrow.Service, publisher messaging.Publisher) Handler {
	return &handler{
		store:     st,
		claims:    claimsSvc,
		escrow:    escrowSvc,
		publisher: publisher,
	}
}

// ListTickets lists all ticket templates
func (h *handler) ListTickets(c *gin.Context) {
	templates, err := h.store.ListTemplates(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list tickets")
		return
	}

	c.JSON(http.StatusOK, dto.NewTicketTemplateListResponse(templates))
}

// GetTicket retrieves a single ticket template
func (h *handler) GetTicket(c *gin.Context) {
	templateID, ok := parseIDParam(c)
	if !ok {
		return
	}

	template, err := h.store.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		if errors.Is(err, domain.ErrTemplateNotFound) {
			respondNotFound(c, "Ticket not found")
			return
		}
		respondInternalError(c, err, "Failed to get ticket")
		return
	}

	c.JSON(http.StatusOK, dto.NewTicketTemplateResponse(template))
}

// ClaimTicket claims a ticket for the authenticated wallet and mints it
func (h *handler) ClaimTicket(c *gin.Context) {
	wallet, ok := middleware.CallerWallet(c)
	if !ok {
		respondInternalError(c, errors.New("wallet missing from authenticated context"), "Failed to claim ticket")
		return
	}

	templateID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ClaimTicketRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	outcome, err := h.claims.Claim(c.Request.Context(), templateID, wallet, req.SourceOrDefault())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTemplateNotFound):
			respondNotFound(c, "Ticket not found")
		case errors.Is(err, domain.ErrAlreadyClaimed):
			respondConflict(c, "Ticket already claimed")
		case errors.Is(err, domain.ErrOutOfStock):
			respondExhausted(c, "Ticket out of stock")
		case errors.Is(err, domain.ErrMintEngine):
			// The claim record stands; the failure is in the mint log for
			// staff retry
			respondUpstreamError(c, err, "Failed to mint ticket")
		default:
			respondInternalError(c, err, "Failed to claim ticket")
		}
		return
	}

	response := dto.ClaimTicketResponse{OK: true}
	if outcome.MintLog != nil && outcome.MintLog.TxHash != nil {
		response.TxHash = *outcome.MintLog.TxHash
	}

	c.JSON(http.StatusOK, response)
}

// CreateTransfer creates a transfer link for a ticket the caller holds
func (h *handler) CreateTransfer(c *gin.Context) {
	wallet, ok := middleware.CallerWallet(c)
	if !ok {
		respondInternalError(c, errors.New("wallet missing from authenticated context"), "Failed to create transfer link")
		return
	}

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	link, err := h.escrow.CreateLink(c.Request.Context(), wallet, req.TemplateID, req.TokenID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTemplateNotFound):
			respondNotFound(c, "Ticket not found")
		case errors.Is(err, domain.ErrNotTransferable):
			respondBadRequest(c, "Ticket is not transferable")
		case errors.Is(err, domain.ErrLinkNotOwned):
			respondForbidden(c, "Ticket not held by caller")
		default:
			respondInternalError(c, err, "Failed to create transfer link")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.TransferLinkResponse{
		Token:     link.Token,
		ExpiresAt: link.ExpiresAt,
	})
}

// RedeemTransfer redeems a transfer link for the authenticated wallet
func (h *handler) RedeemTransfer(c *gin.Context) {
	wallet, ok := middleware.CallerWallet(c)
	if !ok {
		respondInternalError(c, errors.New("wallet missing from authenticated context"), "Failed to redeem transfer link")
		return
	}

	var req dto.RedeemTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.escrow.Redeem(c.Request.Context(), req.Token, wallet)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLinkNotFound):
			respondNotFound(c, "Transfer link not found")
		case errors.Is(err, domain.ErrLinkExpired):
			respondBadRequest(c, "Transfer link expired")
		case errors.Is(err, domain.ErrSelfClaim):
			respondBadRequest(c, "Cannot claim own transfer link")
		case errors.Is(err, domain.ErrLinkFinalized):
			respondConflict(c, "Transfer link already finalized")
		case errors.Is(err, domain.ErrMintEngine):
			respondUpstreamError(c, err, "Failed to mint ticket")
		default:
			respondInternalError(c, err, "Failed to redeem transfer link")
		}
		return
	}

	c.JSON(http.StatusOK, dto.RedeemTransferResponse{
		OK:      true,
		TokenID: result.TokenID,
	})
}

// CancelTransfer cancels an active transfer link; giver only
func (h *handler) CancelTransfer(c *gin.Context) {
	wallet, ok := middleware.CallerWallet(c)
	if !ok {
		respondInternalError(c, errors.New("wallet missing from authenticated context"), "Failed to cancel transfer link")
		return
	}

	var req dto.CancelTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	err := h.escrow.Cancel(c.Request.Context(), req.Token, wallet)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLinkNotFound):
			respondNotFound(c, "Transfer link not found")
		case errors.Is(err, domain.ErrLinkNotOwned):
			respondForbidden(c, "Transfer link belongs to another wallet")
		case errors.Is(err, domain.ErrLinkFinalized):
			respondConflict(c, "Transfer link already finalized")
		default:
			respondInternalError(c, err, "Failed to cancel transfer link")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ReceiveOrderWebhook accepts an order-paid event, queues it, and
// acknowledges immediately. Processing happens asynchronously behind the
// queue; redelivery of the same order is made safe by the mint log.
func (h *handler) ReceiveOrderWebhook(c *gin.Context) {
	var req dto.OrderPaidWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	event := req.Event(ulid.Make().String())

	if err := h.publisher.PublishOrderPaid(c.Request.Context(), event); err != nil {
		respondInternalError(c, err, "Failed to queue order event")
		return
	}

	logger.InfoCtx(c.Request.Context(), "Order event queued",
		zap.String("event_id", event.EventID),
		zap.String("order_ref", event.OrderRef),
		zap.Int("line_items", len(event.LineItems)),
	)

	c.JSON(http.StatusAccepted, dto.WebhookAcceptedResponse{
		OK:      true,
		EventID: event.EventID,
	})
}

// ListFailedMints lists error mint-log rows for the staff retry surface
func (h *handler) ListFailedMints(c *gin.Context) {
	limit, ok := parseLimitQuery(c)
	if !ok {
		return
	}

	entries, err := h.store.ListFailedMints(c.Request.Context(), limit)
	if err != nil {
		respondInternalError(c, err, "Failed to list failed mints")
		return
	}

	c.JSON(http.StatusOK, dto.NewMintLogListResponse(entries))
}

// RetryMint re-submits the mint of a failed log entry. The claim ledger and
// supply are untouched; only a fresh mint-log row is appended.
func (h *handler) RetryMint(c *gin.Context) {
	mintLogID, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := h.claims.RetryMint(c.Request.Context(), mintLogID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMintLogNotFound):
			respondNotFound(c, "Mint log entry not found")
		case errors.Is(err, domain.ErrMintNotRetryable):
			respondConflict(c, "Mint log entry is not a failed mint")
		case errors.Is(err, domain.ErrMintEngine):
			// The retry itself failed; a fresh error row was appended
			respondUpstreamError(c, err, "Mint retry failed")
		default:
			respondInternalError(c, err, "Failed to retry mint")
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewMintLogEntryResponse(entry))
}

// ListWalletMints lists mint-log rows for a wallet, newest first
func (h *handler) ListWalletMints(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidAddress(address) {
		respondBadRequest(c, "Invalid wallet address")
		return
	}

	limit, ok := parseLimitQuery(c)
	if !ok {
		return
	}

	entries, err := h.store.ListMintsByWallet(c.Request.Context(), domain.NormalizeAddress(address), limit)
	if err != nil {
		respondInternalError(c, err, "Failed to list wallet mints")
		return
	}

	c.JSON(http.StatusOK, dto.NewMintLogListResponse(entries))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "ticketd-api",
	})
}

// parseIDParam parses the numeric :id path parameter, responding on failure
func parseIDParam(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, fmt.Sprintf("Invalid id: %s", raw))
		return 0, false
	}
	return id, true
}

// parseLimitQuery parses the optional limit query parameter, responding on failure
func parseLimitQuery(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("limit", strconv.Itoa(DEFAULT_LIST_LIMIT))
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 1000 {
		respondBadRequest(c, fmt.Sprintf("Invalid limit: %s", raw))
		return 0, false
	}
	return limit, true
}
