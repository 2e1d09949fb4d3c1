package webhookController

import (
	"mediary/database"
	"mediary/models"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.Payout{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/webhook/payout", HandlePayoutWebhook)
	return app
}

func TestPayoutWebhookRejectsEmptyTransferID(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	// A payout whose dispatch has not completed yet: transfer id still "".
	payout := models.Payout{
		WalletID: 1,
		UserID:   7,
		Amount:   decimal.RequireFromString("200.00"),
		Status:   models.PayoutStatusPending,
	}
	require.NoError(t, db.Create(&payout).Error)

	req := httptest.NewRequest("POST", "/webhook/payout",
		strings.NewReader(`{"event":"TRANSFER_FAILED","transferId":"","reason":"bad callback"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// The blank lookup must not have touched the pending payout.
	var untouched models.Payout
	require.NoError(t, db.First(&untouched, payout.ID).Error)
	assert.Equal(t, models.PayoutStatusPending, untouched.Status)
	assert.Empty(t, untouched.FailureReason)
}
