package walletRoutes

import (
	walletController "mediary/controllers/wallet"
	"mediary/middleware"
	walletValidator "mediary/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App) {
	walletGroup := app.Group("/wallet")

	// User routes
	walletGroup.Get("/balance", middleware.JWTMiddleware, walletController.GetWalletBalance)
	walletGroup.Get("/ledger", middleware.JWTMiddleware, walletController.GetWalletLedger)
	walletGroup.Post("/payout", walletValidator.Payout(), middleware.JWTMiddleware, walletController.InitiatePayout)
	walletGroup.Get("/payouts", middleware.JWTMiddleware, walletController.GetPayoutHistory)

	// Admin routes
	adminGroup := walletGroup.Group("/admin")
	adminGroup.Get("/summary", middleware.JWTMiddleware, walletController.GetAllWalletsSummary)
	adminGroup.Get("/user-wallet", middleware.JWTMiddleware, walletController.GetUserWallet)
	adminGroup.Get("/user-ledger", middleware.JWTMiddleware, walletController.GetUserWalletLedger)
	adminGroup.Post("/adjustment", walletValidator.ManualAdjustment(), middleware.JWTMiddleware, walletController.ManualAdjustment)
	adminGroup.Post("/payout", walletValidator.AdminPayout(), middleware.JWTMiddleware, walletController.AdminInitiatePayout)
	adminGroup.Post("/reconcile", middleware.JWTMiddleware, walletController.ReconcileWallet)
}
