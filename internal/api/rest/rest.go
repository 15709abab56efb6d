package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes.
// auth guards every state-changing route; reads are public.
func SetupRoutes(router *gin.Engine, handler Handler, auth gin.HandlerFunc) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Tokens
		v1.GET("/tokens/:id", handler.GetToken)
		v1.GET("/owners/:address/tokens", handler.GetOwnerTokens)
		v1.POST("/tokens/:id/transfer", auth, handler.TransferToken)
		v1.POST("/tokens/:id/burn", auth, handler.BurnToken)

		// Level upgrades and burn recipes
		v1.GET("/tokens/:id/upgrade/quote", handler.QuoteUpgrade)
		v1.POST("/tokens/:id/upgrade", auth, handler.UpgradeToken)
		v1.POST("/burn-upgrades", auth, handler.BurnForUpgrade)

		// Cases
		v1.GET("/cases", handler.GetCases)
		v1.POST("/cases/purchases", auth, handler.BuyCase)
		v1.GET("/cases/purchases/:id", handler.GetPurchase)
		v1.POST("/cases/purchases/:id/open", auth, handler.OpenCase)

		// Accounts
		v1.GET("/accounts/:address", handler.GetAccount)
		v1.GET("/accounts/:address/purchases", handler.GetAccountPurchases)

		// Marketplace
		v1.GET("/marketplace/listings", handler.ListListings)
		v1.GET("/marketplace/listings/:id", handler.GetListing)
		v1.POST("/marketplace/listings", auth, handler.CreateListing)
		v1.POST("/marketplace/listings/:id/buy", auth, handler.BuyListing)
		v1.DELETE("/marketplace/listings/:id", auth, handler.CancelListing)

		// Administration; the ledger rejects callers other than the administrator
		v1.GET("/admin/minters", handler.GetMinters)
		v1.PUT("/admin/minters/:address", auth, handler.SetMinter)
		v1.POST("/admin/deposits", auth, handler.Deposit)
		v1.POST("/admin/withdrawals", auth, handler.Withdraw)
	}
}
