package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/citypass-labs/ticketd/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Ticket catalog (public read access)
		v1.GET("/tickets", handler.ListTickets)
		v1.GET("/tickets/:id", handler.GetTicket)

		// Claiming (requires wallet authentication)
		v1.POST("/tickets/:id/claim", middleware.WalletAuth(authCfg), handler.ClaimTicket)

		// Transfer links (requires wallet authentication)
		v1.POST("/transfers", middleware.WalletAuth(authCfg), handler.CreateTransfer)
		v1.POST("/transfers/claim", middleware.WalletAuth(authCfg), handler.RedeemTransfer)
		v1.POST("/transfers/cancel", middleware.WalletAuth(authCfg), handler.CancelTransfer)

		// Wallet mint history (requires wallet authentication)
		v1.GET("/wallets/:address/mints", middleware.WalletAuth(authCfg), handler.ListWalletMints)

		// Commerce webhook (requires API key authentication only)
		v1.POST("/webhooks/orders", middleware.APIKeyAuth(authCfg), handler.ReceiveOrderWebhook)

		// Staff retry surface (requires API key authentication only)
		v1.GET("/mints/failed", middleware.APIKeyAuth(authCfg), handler.ListFailedMints)
		v1.POST("/mints/:id/retry", middleware.APIKeyAuth(authCfg), handler.RetryMint)
	}
}
