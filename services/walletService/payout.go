package walletService

import (
	"fmt"
	"mediary/models"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InitiatePayout creates a payout record and debits the wallet for it inside
// one transaction. If the debit fails (insufficient balance, inactive wallet)
// the payout row rolls back with it: no payout survives without a matching
// debit and no debit survives without its payout.
func InitiatePayout(db *gorm.DB, userID uint, amount decimal.Decimal, requestedBy uint) (*models.Payout, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount.String())
	}

	var payout models.Payout
	err := db.Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, userID)
		if err != nil {
			return err
		}

		payout = models.Payout{
			WalletID:    wallet.ID,
			UserID:      userID,
			Amount:      amount,
			Status:      models.PayoutStatusPending,
			RequestedBy: requestedBy,
		}
		if err := tx.Create(&payout).Error; err != nil {
			return err
		}

		_, err = Debit(tx, MutationParams{
			UserID:        userID,
			Amount:        amount,
			Category:      models.CategoryPayout,
			Description:   fmt.Sprintf("Payout #%d", payout.ID),
			ReferenceType: models.ReferenceTypePayout,
			ReferenceID:   fmt.Sprintf("%d", payout.ID),
			PerformedBy:   requestedBy,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

// MarkPayoutProcessing records the external transfer id once the transfer
// has been handed to Cashfree
func MarkPayoutProcessing(db *gorm.DB, payoutID uint, transferID string) error {
	return db.Model(&models.Payout{}).Where("id = ? AND status = ?", payoutID, models.PayoutStatusPending).
		Updates(map[string]interface{}{
			"status":               models.PayoutStatusProcessing,
			"cashfree_transfer_id": transferID,
		}).Error
}

// MarkPayoutSuccess finalizes a settled transfer. Only an in-flight payout
// can settle: a stale or reordered callback arriving after the payout was
// failed (and its debit refunded) matches zero rows and is a no-op.
func MarkPayoutSuccess(db *gorm.DB, payoutID uint) error {
	now := time.Now()
	return db.Model(&models.Payout{}).
		Where("id = ? AND status IN ?", payoutID,
			[]models.PayoutStatus{models.PayoutStatusPending, models.PayoutStatusProcessing}).
		Updates(map[string]interface{}{
			"status":       models.PayoutStatusSuccess,
			"processed_at": &now,
		}).Error
}

// MarkPayoutFailed records the failure and refunds the debited amount. The
// refund credit shares the payout's reference id, so a repeated failure
// callback cannot refund twice.
func MarkPayoutFailed(db *gorm.DB, payoutID uint, reason string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var payout models.Payout
		if err := tx.First(&payout, payoutID).Error; err != nil {
			return err
		}

		// A settled payout's money has left the platform; a stale failure
		// callback must not flip it back and refund anyway.
		if payout.Status == models.PayoutStatusSuccess {
			return nil
		}

		now := time.Now()
		if err := tx.Model(&payout).Updates(map[string]interface{}{
			"status":         models.PayoutStatusFailed,
			"processed_at":   &now,
			"failure_reason": reason,
		}).Error; err != nil {
			return err
		}

		_, err := Credit(tx, MutationParams{
			UserID:        payout.UserID,
			Amount:        payout.Amount,
			Category:      models.CategoryRefund,
			Description:   fmt.Sprintf("Refund for failed payout #%d", payout.ID),
			ReferenceType: models.ReferenceTypePayout,
			ReferenceID:   fmt.Sprintf("%d", payout.ID),
		})
		return err
	})
}

// GetPayouts returns a user's payout history, newest first
func GetPayouts(db *gorm.DB, userID uint, page, limit int) ([]models.Payout, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := db.Model(&models.Payout{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var payouts []models.Payout
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&payouts).Error; err != nil {
		return nil, 0, err
	}
	return payouts, total, nil
}
