package settlementService

import (
	"mediary/config"
	"mediary/models"
	"mediary/services/splitService"
	"mediary/services/walletService"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	vendorID = uint(10)
	doctorID = uint(20)
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setupTestDb(t *testing.T) *gorm.DB {
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SplitConfiguration{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.SplitTransaction{},
		&models.DiaryOrder{},
	))
	return db
}

func activateConfig(t *testing.T, db *gorm.DB, vendorPct, doctorPct string) {
	require.NoError(t, splitService.ActivateConfig(db, &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d(vendorPct),
		DoctorValue: d(doctorPct),
	}))
}

func createOrder(t *testing.T, db *gorm.DB, total string) *models.DiaryOrder {
	order := models.DiaryOrder{
		VendorID:      vendorID,
		DoctorID:      doctorID,
		TotalAmount:   d(total),
		PaymentStatus: models.OrderPaymentPending,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func walletBalance(t *testing.T, db *gorm.DB, userID uint) string {
	wallet, err := walletService.GetWallet(db, userID)
	require.NoError(t, err)
	return wallet.Balance.StringFixed(2)
}

func TestCreateSplitTransactionSnapshotsActiveConfig(t *testing.T) {
	db := setupTestDb(t)
	activateConfig(t, db, "30", "10")
	order := createOrder(t, db, "1000")

	splitTxn, err := CreateSplitTransaction(db, order)
	require.NoError(t, err)

	assert.Equal(t, "300.00", splitTxn.VendorAmount.StringFixed(2))
	assert.Equal(t, "100.00", splitTxn.DoctorAmount.StringFixed(2))
	assert.Equal(t, "600.00", splitTxn.PlatformAmount.StringFixed(2))
	assert.Equal(t, models.TransferStatusPending, splitTxn.TransferStatus)
	assert.NotEmpty(t, splitTxn.IdempotencyKey)
}

func TestCreateSplitTransactionNoActiveConfig(t *testing.T) {
	db := setupTestDb(t)
	order := createOrder(t, db, "1000")

	_, err := CreateSplitTransaction(db, order)
	assert.ErrorIs(t, err, splitService.ErrNoActiveConfig)
}

func TestSettleOrderCreditsThreeWallets(t *testing.T) {
	db := setupTestDb(t)
	activateConfig(t, db, "30", "10")
	order := createOrder(t, db, "1000")
	_, err := CreateSplitTransaction(db, order)
	require.NoError(t, err)

	result, err := SettleOrder(db, order.ID)
	require.NoError(t, err)
	assert.False(t, result.AlreadySettled)

	assert.Equal(t, "300.00", walletBalance(t, db, vendorID))
	assert.Equal(t, "100.00", walletBalance(t, db, doctorID))
	assert.Equal(t, "600.00", walletBalance(t, db, config.AppConfig.PlatformUserID))

	var updatedOrder models.DiaryOrder
	require.NoError(t, db.First(&updatedOrder, order.ID).Error)
	assert.Equal(t, models.OrderPaymentPaid, updatedOrder.PaymentStatus)
	assert.NotNil(t, updatedOrder.PaidAt)

	var splitTxn models.SplitTransaction
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&splitTxn).Error)
	assert.Equal(t, models.TransferStatusSuccess, splitTxn.TransferStatus)
	assert.NotNil(t, splitTxn.ProcessedAt)

	// One CREDIT ledger row per wallet.
	var rows int64
	db.Model(&models.WalletTransaction{}).
		Where("reference_type = ? AND reference_id = ?", models.ReferenceTypeOrder, "1").
		Count(&rows)
	assert.Equal(t, int64(3), rows)
}

func TestSettleOrderWebhookReplayIsNoOp(t *testing.T) {
	db := setupTestDb(t)
	activateConfig(t, db, "30", "10")
	order := createOrder(t, db, "1000")
	_, err := CreateSplitTransaction(db, order)
	require.NoError(t, err)

	_, err = SettleOrder(db, order.ID)
	require.NoError(t, err)

	replay, err := SettleOrder(db, order.ID)
	require.NoError(t, err)
	assert.True(t, replay.AlreadySettled)

	// Balances reflect exactly one settlement.
	assert.Equal(t, "300.00", walletBalance(t, db, vendorID))
	assert.Equal(t, "100.00", walletBalance(t, db, doctorID))
	assert.Equal(t, "600.00", walletBalance(t, db, config.AppConfig.PlatformUserID))

	var rows int64
	db.Model(&models.WalletTransaction{}).
		Where("reference_type = ?", models.ReferenceTypeOrder).
		Count(&rows)
	assert.Equal(t, int64(3), rows)
}

func TestCreditWalletsOnSaleRetryIdempotent(t *testing.T) {
	db := setupTestDb(t)

	// Direct retry of the credit fan-out, bypassing the order-level PAID
	// check: the ledger guard alone must prevent double credits.
	for i := 0; i < 2; i++ {
		_, _, _, err := CreditWalletsOnSale(db, 55, vendorID, doctorID,
			config.AppConfig.PlatformUserID, d("300"), d("100"), d("600"))
		require.NoError(t, err)
	}

	assert.Equal(t, "300.00", walletBalance(t, db, vendorID))
	assert.Equal(t, "100.00", walletBalance(t, db, doctorID))
	assert.Equal(t, "600.00", walletBalance(t, db, config.AppConfig.PlatformUserID))
}

func TestSettleOrderMissingSplit(t *testing.T) {
	db := setupTestDb(t)
	order := createOrder(t, db, "1000")

	_, err := SettleOrder(db, order.ID)
	assert.ErrorIs(t, err, ErrSplitNotFound)

	// The order stays re-processable.
	var updated models.DiaryOrder
	require.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderPaymentPending, updated.PaymentStatus)
}

func TestSettleOrderUnknownOrder(t *testing.T) {
	db := setupTestDb(t)

	_, err := SettleOrder(db, 4242)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSettleOrderZeroPlatformShare(t *testing.T) {
	db := setupTestDb(t)
	require.NoError(t, splitService.ActivateConfig(db, &models.SplitConfiguration{
		SplitType:   models.SplitTypeFixed,
		VendorValue: d("800"),
		DoctorValue: d("200"),
	}))
	order := createOrder(t, db, "1000")
	_, err := CreateSplitTransaction(db, order)
	require.NoError(t, err)

	result, err := SettleOrder(db, order.ID)
	require.NoError(t, err)
	assert.Nil(t, result.PlatformTxn)

	assert.Equal(t, "800.00", walletBalance(t, db, vendorID))
	assert.Equal(t, "200.00", walletBalance(t, db, doctorID))

	// No platform wallet is created for a zero share.
	_, err = walletService.GetWallet(db, config.AppConfig.PlatformUserID)
	assert.ErrorIs(t, err, walletService.ErrWalletNotFound)
}
