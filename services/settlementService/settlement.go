package settlementService

import (
	"errors"
	"fmt"
	"log"
	"mediary/config"
	"mediary/models"
	"mediary/services/splitService"
	"mediary/services/walletService"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrSplitNotFound = errors.New("no split transaction for order")
)

// CreateSplitTransaction snapshots the active configuration's split for a
// freshly created order. Settlement later credits these exact amounts, so a
// configuration change between order and payment never shifts the split.
// Fails hard when no configuration is active; there is no default split.
func CreateSplitTransaction(db *gorm.DB, order *models.DiaryOrder) (*models.SplitTransaction, error) {
	activeConfig, err := splitService.GetActiveConfig(db)
	if err != nil {
		return nil, err
	}

	if result := splitService.ValidateSplitConfig(activeConfig, &order.TotalAmount); !result.IsValid {
		return nil, fmt.Errorf("%w: %v", splitService.ErrInvalidConfig, result.Errors)
	}

	split, err := splitService.CalculateSplit(order.TotalAmount, activeConfig)
	if err != nil {
		return nil, err
	}

	splitTxn := models.SplitTransaction{
		OrderID:        order.ID,
		TotalAmount:    order.TotalAmount,
		VendorAmount:   split.VendorAmount,
		DoctorAmount:   split.DoctorAmount,
		PlatformAmount: split.PlatformAmount,
		SplitType:      activeConfig.SplitType,
		TransferStatus: models.TransferStatusPending,
		IdempotencyKey: uuid.NewString(),
	}
	if err := db.Create(&splitTxn).Error; err != nil {
		return nil, err
	}
	return &splitTxn, nil
}

// SettlementResult reports one settlement run
type SettlementResult struct {
	OrderID        uint                      `json:"orderId"`
	AlreadySettled bool                      `json:"alreadySettled"`
	VendorTxn      *models.WalletTransaction `json:"vendorTxn,omitempty"`
	DoctorTxn      *models.WalletTransaction `json:"doctorTxn,omitempty"`
	PlatformTxn    *models.WalletTransaction `json:"platformTxn,omitempty"`
}

// SettleOrder processes "payment succeeded" for an order: lock the order
// row, no-op if it is already PAID, otherwise mark it PAID and credit the
// three wallets with the snapshotted split, all in one transaction. A crash
// before commit leaves the order PENDING and re-processable; a webhook
// replay after commit hits the PAID short-circuit, and even a replay that
// races it is stopped by the per-wallet ledger idempotency guard.
func SettleOrder(db *gorm.DB, orderID uint) (*SettlementResult, error) {
	var result SettlementResult
	err := db.Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() != "sqlite" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var order models.DiaryOrder
		if err := q.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		result.OrderID = order.ID
		if order.PaymentStatus == models.OrderPaymentPaid {
			result.AlreadySettled = true
			return nil
		}

		var splitTxn models.SplitTransaction
		if err := tx.Where("order_id = ?", order.ID).First(&splitTxn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSplitNotFound
			}
			return err
		}

		platformUserID := config.AppConfig.PlatformUserID
		vendorTxn, doctorTxn, platformTxn, err := CreditWalletsOnSale(tx,
			order.ID, order.VendorID, order.DoctorID, platformUserID,
			splitTxn.VendorAmount, splitTxn.DoctorAmount, splitTxn.PlatformAmount)
		if err != nil {
			return err
		}
		result.VendorTxn = vendorTxn
		result.DoctorTxn = doctorTxn
		result.PlatformTxn = platformTxn

		now := time.Now()
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"payment_status": models.OrderPaymentPaid,
			"paid_at":        &now,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&splitTxn).Updates(map[string]interface{}{
			"transfer_status": models.TransferStatusSuccess,
			"processed_at":    &now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadySettled {
		log.Printf("[SETTLEMENT] order %d already settled, skipping", orderID)
	} else {
		log.Printf("[SETTLEMENT] order %d settled", orderID)
	}
	return &result, nil
}

// CreditWalletsOnSale credits the vendor, doctor and platform wallets for a
// paid order. Each credit is keyed on (ORDER, orderId), so calling this
// again for the same order returns the original ledger rows instead of
// crediting twice. Wallets are created lazily on first settlement.
func CreditWalletsOnSale(db *gorm.DB, orderID, vendorID, doctorID, platformUserID uint,
	vendorAmount, doctorAmount, platformAmount decimal.Decimal) (vendorTxn, doctorTxn, platformTxn *models.WalletTransaction, err error) {

	orderRef := fmt.Sprintf("%d", orderID)

	credit := func(userID uint, walletType models.WalletType, amount decimal.Decimal,
		category models.TransactionCategory, description string) (*models.WalletTransaction, error) {
		// A zero share is valid (e.g. a FIXED split consuming the full
		// total); there is just nothing to credit.
		if amount.IsZero() {
			return nil, nil
		}
		if _, err := walletService.GetOrCreateWallet(db, userID, walletType); err != nil {
			return nil, err
		}
		res, err := walletService.Credit(db, walletService.MutationParams{
			UserID:        userID,
			Amount:        amount,
			Category:      category,
			Description:   description,
			ReferenceType: models.ReferenceTypeOrder,
			ReferenceID:   orderRef,
		})
		if err != nil {
			return nil, err
		}
		return res.Transaction, nil
	}

	vendorTxn, err = credit(vendorID, models.WalletTypeVendor, vendorAmount,
		models.CategoryDiarySale, fmt.Sprintf("Diary sale for order #%d", orderID))
	if err != nil {
		return nil, nil, nil, err
	}
	doctorTxn, err = credit(doctorID, models.WalletTypeDoctor, doctorAmount,
		models.CategoryDiarySale, fmt.Sprintf("Doctor share for order #%d", orderID))
	if err != nil {
		return nil, nil, nil, err
	}
	platformTxn, err = credit(platformUserID, models.WalletTypePlatform, platformAmount,
		models.CategoryCommission, fmt.Sprintf("Platform commission for order #%d", orderID))
	if err != nil {
		return nil, nil, nil, err
	}
	return vendorTxn, doctorTxn, platformTxn, nil
}
