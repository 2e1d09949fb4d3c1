package webhookController

import (
	"errors"
	"log"
	"mediary/database"
	"mediary/middleware"
	"mediary/models"
	"mediary/services/settlementService"
	"mediary/services/walletService"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// HandlePaymentWebhook processes payment-gateway callbacks for diary orders.
// Gateways redeliver webhooks aggressively; SettleOrder is idempotent, so a
// replay acknowledges 200 without crediting anyone twice.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	payload := new(struct {
		OrderID uint   `json:"orderId"`
		Event   string `json:"event"`
	})
	if err := c.BodyParser(payload); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
	}
	if payload.OrderID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "orderId is required!", nil)
	}

	if payload.Event != "PAYMENT_SUCCESS" {
		log.Printf("[WEBHOOK] ignoring event %q for order %d", payload.Event, payload.OrderID)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event ignored.", nil)
	}

	result, err := settlementService.SettleOrder(database.Database.Db, payload.OrderID)
	if err != nil {
		if errors.Is(err, settlementService.ErrOrderNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
		}
		log.Printf("[WEBHOOK] settlement for order %d failed: %v", payload.OrderID, err)
		// Non-2xx makes the gateway redeliver; the order is still PENDING.
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Settlement failed!", nil)
	}

	if result.AlreadySettled {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Order already settled.", result)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order settled!", result)
}

// HandlePayoutWebhook processes Cashfree transfer status callbacks
func HandlePayoutWebhook(c *fiber.Ctx) error {
	payload := new(struct {
		Event      string `json:"event"` // TRANSFER_SUCCESS, TRANSFER_FAILED, TRANSFER_REVERSED
		TransferID string `json:"transferId"`
		Reason     string `json:"reason"`
	})
	if err := c.BodyParser(payload); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
	}
	// Payouts awaiting dispatch still have an empty transfer id; a blank
	// lookup would match one of those.
	if payload.TransferID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "transferId is required!", nil)
	}

	db := database.Database.Db

	var payout models.Payout
	if err := db.Where("cashfree_transfer_id = ?", payload.TransferID).First(&payout).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown transferId!", nil)
	}

	switch payload.Event {
	case "TRANSFER_SUCCESS":
		if err := walletService.MarkPayoutSuccess(db, payout.ID); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payout!", nil)
		}
	case "TRANSFER_FAILED", "TRANSFER_REVERSED":
		reason := payload.Reason
		if reason == "" {
			reason = strings.ToLower(strings.TrimPrefix(payload.Event, "TRANSFER_"))
		}
		if err := walletService.MarkPayoutFailed(db, payout.ID, reason); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payout!", nil)
		}
	default:
		log.Printf("[WEBHOOK] ignoring payout event %q for transfer %s", payload.Event, payload.TransferID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook processed.", nil)
}
