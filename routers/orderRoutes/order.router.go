package orderRoutes

import (
	orderController "mediary/controllers/order"
	webhookController "mediary/controllers/webhook"
	"mediary/middleware"
	orderValidator "mediary/validators/order"

	"github.com/gofiber/fiber/v2"
)

func SetupOrderRoutes(app *fiber.App) {
	orderGroup := app.Group("/orders")

	orderGroup.Post("/", orderValidator.CreateOrder(), middleware.JWTMiddleware, orderController.CreateDiaryOrder)
	orderGroup.Get("/:id", middleware.JWTMiddleware, orderController.GetDiaryOrder)

	// Gateway callbacks; signature verification happens upstream
	webhookGroup := app.Group("/webhook")
	webhookGroup.Post("/payment", webhookController.HandlePaymentWebhook)
	webhookGroup.Post("/payout", webhookController.HandlePayoutWebhook)
}
