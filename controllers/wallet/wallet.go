package walletController

import (
	"errors"
	"log"
	"mediary/config"
	"mediary/database"
	"mediary/middleware"
	"mediary/models"
	"mediary/services/walletService"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// findAdmin loads the requesting user if they hold an admin role
func findAdmin(c *fiber.Ctx) (*models.User, error) {
	userId := c.Locals("userId").(uint)

	var admin models.User
	err := database.Database.Db.
		Where("id = ? AND is_deleted = false AND role IN ?", userId, []string{"ADMIN", "SUPER-ADMIN"}).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// walletErrorStatus maps wallet engine errors to HTTP status codes
func walletErrorStatus(err error) int {
	switch {
	case errors.Is(err, walletService.ErrWalletNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, walletService.ErrInsufficientBalance),
		errors.Is(err, walletService.ErrInvalidAmount),
		errors.Is(err, walletService.ErrWalletInactive):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// GetWalletBalance returns the caller's current wallet balance
func GetWalletBalance(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	wallet, err := walletService.GetWallet(database.Database.Db, userId)
	if err != nil {
		if errors.Is(err, walletService.ErrWalletNotFound) {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet balance fetched!", fiber.Map{
				"balance":  "0.00",
				"currency": config.AppConfig.WalletCurrency,
			})
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch wallet!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet balance fetched!", fiber.Map{
		"balance":       wallet.Balance.StringFixed(2),
		"totalCredited": wallet.TotalCredited.StringFixed(2),
		"totalDebited":  wallet.TotalDebited.StringFixed(2),
		"currency":      wallet.Currency,
		"isActive":      wallet.IsActive,
	})
}

// parseLedgerFilter builds a ledger filter from query params
func parseLedgerFilter(c *fiber.Ctx) walletService.LedgerFilter {
	filter := walletService.LedgerFilter{
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
		Category: models.TransactionCategory(c.Query("category")),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.Add(24*time.Hour - time.Second)
			filter.To = &end
		}
	}
	return filter
}

// GetWalletLedger returns one page of the caller's ledger
func GetWalletLedger(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	filter := parseLedgerFilter(c)

	transactions, total, err := walletService.GetLedger(database.Database.Db, userId, filter)
	if err != nil {
		return middleware.JsonResponse(c, walletErrorStatus(err), false, "Failed to fetch ledger!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet ledger fetched!", fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"total": total,
			"page":  filter.Page,
			"limit": filter.Limit,
		},
	})
}

// GetUserWalletLedger returns any user's ledger (Admin only)
func GetUserWalletLedger(c *fiber.Ctx) error {
	if _, err := findAdmin(c); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	targetUserId := c.QueryInt("userId", 0)
	if targetUserId == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "userId is required!", nil)
	}

	filter := parseLedgerFilter(c)
	transactions, total, err := walletService.GetLedger(database.Database.Db, uint(targetUserId), filter)
	if err != nil {
		return middleware.JsonResponse(c, walletErrorStatus(err), false, "Failed to fetch ledger!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User wallet ledger fetched!", fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"total": total,
			"page":  filter.Page,
			"limit": filter.Limit,
		},
	})
}

// GetUserWallet returns any user's wallet (Admin only)
func GetUserWallet(c *fiber.Ctx) error {
	if _, err := findAdmin(c); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	targetUserId := c.QueryInt("userId", 0)
	if targetUserId == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "userId is required!", nil)
	}

	wallet, err := walletService.GetWallet(database.Database.Db, uint(targetUserId))
	if err != nil {
		return middleware.JsonResponse(c, walletErrorStatus(err), false, "Failed to fetch wallet!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User wallet fetched!", wallet)
}

// GetAllWalletsSummary returns every wallet with platform totals (Admin only)
func GetAllWalletsSummary(c *fiber.Ctx) error {
	if _, err := findAdmin(c); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	summary, err := walletService.GetAllWalletsSummary(database.Database.Db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch summary!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallets summary fetched!", summary)
}

// ManualAdjustment credits or debits a wallet manually (Admin only)
func ManualAdjustment(c *fiber.Ctx) error {
	admin, err := findAdmin(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	reqData, ok := c.Locals("validatedAdjustment").(*struct {
		UserID      uint    `json:"userId" validate:"required"`
		Type        string  `json:"type" validate:"required,oneof=CREDIT DEBIT"`
		Amount      float64 `json:"amount" validate:"required,gt=0"`
		Description string  `json:"description" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var targetUser models.User
	if err := db.Where("id = ? AND is_deleted = false", reqData.UserID).First(&targetUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	walletType := models.WalletTypeVendor
	if targetUser.Role == "DOCTOR" {
		walletType = models.WalletTypeDoctor
	}
	if _, err := walletService.GetOrCreateWallet(db, reqData.UserID, walletType); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load wallet!", nil)
	}

	result, err := walletService.ManualAdjustment(db, reqData.UserID,
		models.TransactionType(reqData.Type), decimal.NewFromFloat(reqData.Amount),
		reqData.Description, admin.ID)
	if err != nil {
		return middleware.JsonResponse(c, walletErrorStatus(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Adjustment applied!", fiber.Map{
		"transactionId": result.Transaction.ID,
		"userId":        reqData.UserID,
		"type":          reqData.Type,
		"amount":        result.Transaction.Amount.StringFixed(2),
		"balanceAfter":  result.Transaction.BalanceAfter.StringFixed(2),
		"performedBy":   admin.Name,
	})
}

// ReconcileWallet recomputes a wallet's balance from its ledger (Admin only)
func ReconcileWallet(c *fiber.Ctx) error {
	if _, err := findAdmin(c); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	targetUserId := c.QueryInt("userId", 0)
	if targetUserId == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "userId is required!", nil)
	}

	result, err := walletService.Reconcile(database.Database.Db, uint(targetUserId))
	if err != nil {
		return middleware.JsonResponse(c, walletErrorStatus(err), false, "Reconciliation failed!", nil)
	}

	message := "Wallet already reconciled."
	if result.Corrected {
		message = "Wallet balance corrected!"
		log.Printf("[WALLET] admin reconciliation corrected wallet %d", result.WalletID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"walletId":        result.WalletID,
		"oldBalance":      result.OldBalance.StringFixed(2),
		"expectedBalance": result.ExpectedBalance.StringFixed(2),
		"totalCredit":     result.TotalCredit.StringFixed(2),
		"totalDebit":      result.TotalDebit.StringFixed(2),
		"corrected":       result.Corrected,
	})
}
