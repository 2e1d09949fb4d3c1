package walletController

import (
	"log"
	"mediary/database"
	"mediary/middleware"
	"mediary/models"
	"mediary/services/walletService"
	"mediary/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// dispatchTransfer hands a freshly created payout to Cashfree. A rejected
// transfer fails the payout, which refunds the debit.
func dispatchTransfer(payout *models.Payout) {
	db := database.Database.Db

	transferId, err := utils.RequestCashfreeTransfer(payout.ID, payout.UserID, payout.Amount)
	if err != nil {
		log.Printf("[PAYOUT] transfer for payout %d failed: %v", payout.ID, err)
		if err := walletService.MarkPayoutFailed(db, payout.ID, err.Error()); err != nil {
			log.Printf("[PAYOUT] failed to mark payout %d failed: %v", payout.ID, err)
		}
		notifyPayoutResult(payout, false, err.Error())
		return
	}

	if err := walletService.MarkPayoutProcessing(db, payout.ID, transferId); err != nil {
		log.Printf("[PAYOUT] failed to mark payout %d processing: %v", payout.ID, err)
	}
}

// notifyPayoutResult emails the wallet owner about a settled payout
func notifyPayoutResult(payout *models.Payout, success bool, reason string) {
	var user models.User
	if err := database.Database.Db.First(&user, payout.UserID).Error; err != nil {
		log.Printf("[PAYOUT] cannot load user %d for notification: %v", payout.UserID, err)
		return
	}
	if err := utils.SendPayoutResultEmail(user.Email, user.Name, payout.ID, payout.Amount, success, reason); err != nil {
		log.Printf("[PAYOUT] notification email failed for payout %d: %v", payout.ID, err)
	}
}

// InitiatePayout lets a vendor or doctor withdraw from their own wallet
func InitiatePayout(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedPayout").(*struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	payout, err := walletService.InitiatePayout(database.Database.Db, userId,
		decimal.NewFromFloat(reqData.Amount), userId)
	if err != nil {
		return middleware.JsonResponse(c, walletErrorStatus(err), false, err.Error(), nil)
	}

	dispatchTransfer(payout)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payout initiated!", fiber.Map{
		"payoutId": payout.ID,
		"amount":   payout.Amount.StringFixed(2),
		"status":   payout.Status,
	})
}

// AdminInitiatePayout initiates a payout for any user (Admin only)
func AdminInitiatePayout(c *fiber.Ctx) error {
	admin, err := findAdmin(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	reqData, ok := c.Locals("validatedAdminPayout").(*struct {
		UserID uint    `json:"userId" validate:"required"`
		Amount float64 `json:"amount" validate:"required,gt=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	payout, err := walletService.InitiatePayout(database.Database.Db, reqData.UserID,
		decimal.NewFromFloat(reqData.Amount), admin.ID)
	if err != nil {
		return middleware.JsonResponse(c, walletErrorStatus(err), false, err.Error(), nil)
	}

	dispatchTransfer(payout)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payout initiated!", fiber.Map{
		"payoutId":    payout.ID,
		"userId":      reqData.UserID,
		"amount":      payout.Amount.StringFixed(2),
		"status":      payout.Status,
		"initiatedBy": admin.Name,
	})
}

// GetPayoutHistory returns the caller's payout history
func GetPayoutHistory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	payouts, total, err := walletService.GetPayouts(database.Database.Db, userId, page, limit)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payouts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payout history fetched!", fiber.Map{
		"payouts": payouts,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
