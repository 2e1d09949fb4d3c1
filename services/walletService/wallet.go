package walletService

import (
	"errors"
	"fmt"
	"log"
	"mediary/config"
	"mediary/models"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrWalletInactive      = errors.New("wallet is inactive")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

// MutationParams describes one credit or debit against a wallet. The triple
// (ReferenceType, ReferenceID) together with the direction forms the
// idempotency key; retries with the same key return the original ledger row.
type MutationParams struct {
	UserID        uint
	Amount        decimal.Decimal
	Category      models.TransactionCategory
	Description   string
	ReferenceType models.ReferenceType
	ReferenceID   string
	PerformedBy   uint
	Metadata      datatypes.JSON
}

// MutationResult returns the wallet after the mutation and the ledger row
// that recorded it. AlreadyProcessed is true when the idempotency guard
// short-circuited a retry; the returned Transaction is then the original row.
type MutationResult struct {
	Wallet           *models.Wallet
	Transaction      *models.WalletTransaction
	AlreadyProcessed bool
}

// lockWallet loads a wallet row under a FOR UPDATE lock so concurrent
// mutations on the same wallet serialize. sqlite (the test driver) has no
// FOR UPDATE; its single-writer lock serializes instead.
func lockWallet(tx *gorm.DB, userID uint) (*models.Wallet, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var wallet models.Wallet
	if err := q.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

// GetOrCreateWallet returns the party's wallet, creating a zero-balance one
// on first use. Idempotent: a second call returns the existing row.
func GetOrCreateWallet(db *gorm.DB, userID uint, walletType models.WalletType) (*models.Wallet, error) {
	wallet := models.Wallet{
		UserID:        userID,
		WalletType:    walletType,
		Balance:       decimal.Zero,
		TotalCredited: decimal.Zero,
		TotalDebited:  decimal.Zero,
		Currency:      config.AppConfig.WalletCurrency,
		IsActive:      true,
	}
	if err := db.Where("user_id = ?", userID).FirstOrCreate(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetWallet returns a wallet by owner, without creating one
func GetWallet(db *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

// Credit adds money to a wallet and appends the matching ledger row, all
// inside one transaction holding the wallet row lock. If a ledger row already
// exists for the same idempotency key the call is a no-op retry and the
// original row is returned. Safe to call inside an outer transaction; gorm
// nests via savepoints.
func Credit(db *gorm.DB, params MutationParams) (*MutationResult, error) {
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, params.Amount.String())
	}

	var result MutationResult
	err := db.Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, params.UserID)
		if err != nil {
			return err
		}
		if !wallet.IsActive {
			return fmt.Errorf("%w: wallet %d", ErrWalletInactive, wallet.ID)
		}

		// Idempotency guard: the unique index on (wallet, type, reference)
		// backs this check, the pre-check keeps retries from erroring out.
		var existing models.WalletTransaction
		err = tx.Where("wallet_id = ? AND type = ? AND reference_type = ? AND reference_id = ?",
			wallet.ID, models.TransactionTypeCredit, params.ReferenceType, params.ReferenceID).
			First(&existing).Error
		if err == nil {
			result = MutationResult{Wallet: wallet, Transaction: &existing, AlreadyProcessed: true}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		newBalance := wallet.Balance.Add(params.Amount)
		if err := tx.Model(wallet).Updates(map[string]interface{}{
			"balance":        newBalance,
			"total_credited": wallet.TotalCredited.Add(params.Amount),
		}).Error; err != nil {
			return err
		}

		transaction := models.WalletTransaction{
			WalletID:        wallet.ID,
			Type:            models.TransactionTypeCredit,
			Amount:          params.Amount,
			BalanceAfter:    newBalance,
			Category:        params.Category,
			Description:     params.Description,
			ReferenceType:   params.ReferenceType,
			ReferenceID:     params.ReferenceID,
			PerformedBy:     params.PerformedBy,
			Metadata:        params.Metadata,
			TransactionDate: time.Now(),
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		result = MutationResult{Wallet: wallet, Transaction: &transaction}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Debit removes money from a wallet under the same lock discipline as
// Credit. The balance can never go negative; a debit past the balance fails
// with ErrInsufficientBalance and changes nothing.
func Debit(db *gorm.DB, params MutationParams) (*MutationResult, error) {
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, params.Amount.String())
	}

	var result MutationResult
	err := db.Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, params.UserID)
		if err != nil {
			return err
		}
		if !wallet.IsActive {
			return fmt.Errorf("%w: wallet %d", ErrWalletInactive, wallet.ID)
		}

		var existing models.WalletTransaction
		err = tx.Where("wallet_id = ? AND type = ? AND reference_type = ? AND reference_id = ?",
			wallet.ID, models.TransactionTypeDebit, params.ReferenceType, params.ReferenceID).
			First(&existing).Error
		if err == nil {
			result = MutationResult{Wallet: wallet, Transaction: &existing, AlreadyProcessed: true}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if params.Amount.GreaterThan(wallet.Balance) {
			return fmt.Errorf("%w: balance=%s requested=%s",
				ErrInsufficientBalance, wallet.Balance.StringFixed(2), params.Amount.StringFixed(2))
		}

		newBalance := wallet.Balance.Sub(params.Amount)
		if err := tx.Model(wallet).Updates(map[string]interface{}{
			"balance":       newBalance,
			"total_debited": wallet.TotalDebited.Add(params.Amount),
		}).Error; err != nil {
			return err
		}

		transaction := models.WalletTransaction{
			WalletID:        wallet.ID,
			Type:            models.TransactionTypeDebit,
			Amount:          params.Amount,
			BalanceAfter:    newBalance,
			Category:        params.Category,
			Description:     params.Description,
			ReferenceType:   params.ReferenceType,
			ReferenceID:     params.ReferenceID,
			PerformedBy:     params.PerformedBy,
			Metadata:        params.Metadata,
			TransactionDate: time.Now(),
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		result = MutationResult{Wallet: wallet, Transaction: &transaction}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ManualAdjustment routes an admin correction to Credit or Debit. A
// description and acting admin are mandatory so every manual movement is
// attributable in the ledger.
func ManualAdjustment(db *gorm.DB, userID uint, adjType models.TransactionType, amount decimal.Decimal, description string, performedBy uint) (*MutationResult, error) {
	if description == "" {
		return nil, errors.New("manual adjustment requires a description")
	}
	if performedBy == 0 {
		return nil, errors.New("manual adjustment requires a performing admin")
	}

	params := MutationParams{
		UserID:        userID,
		Amount:        amount,
		Description:   description,
		ReferenceType: models.ReferenceTypeManual,
		ReferenceID:   uuid.NewString(),
		PerformedBy:   performedBy,
	}

	switch adjType {
	case models.TransactionTypeCredit:
		params.Category = models.CategoryManualCredit
		return Credit(db, params)
	case models.TransactionTypeDebit:
		params.Category = models.CategoryManualDebit
		return Debit(db, params)
	default:
		return nil, fmt.Errorf("invalid adjustment type %q", adjType)
	}
}

// ReconcileResult reports a reconciliation run for one wallet
type ReconcileResult struct {
	WalletID        uint            `json:"walletId"`
	UserID          uint            `json:"userId"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	OldBalance      decimal.Decimal `json:"oldBalance"`
	ExpectedBalance decimal.Decimal `json:"expectedBalance"`
	Corrected       bool            `json:"corrected"`
}

// Reconcile recomputes a wallet's balance from its ledger and repairs drift.
// The ledger, not the cached balance column, is ground truth. Sums are taken
// in decimal on the application side so no floating point ever touches them.
func Reconcile(db *gorm.DB, userID uint) (*ReconcileResult, error) {
	var result ReconcileResult
	err := db.Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, userID)
		if err != nil {
			return err
		}

		var entries []models.WalletTransaction
		if err := tx.Select("type", "amount").
			Where("wallet_id = ?", wallet.ID).
			Find(&entries).Error; err != nil {
			return err
		}

		totalCredit, totalDebit := decimal.Zero, decimal.Zero
		for _, entry := range entries {
			if entry.Type == models.TransactionTypeCredit {
				totalCredit = totalCredit.Add(entry.Amount)
			} else {
				totalDebit = totalDebit.Add(entry.Amount)
			}
		}

		expected := totalCredit.Sub(totalDebit)
		result = ReconcileResult{
			WalletID:        wallet.ID,
			UserID:          userID,
			TotalCredit:     totalCredit,
			TotalDebit:      totalDebit,
			OldBalance:      wallet.Balance,
			ExpectedBalance: expected,
		}

		if wallet.Balance.Equal(expected) && wallet.TotalCredited.Equal(totalCredit) && wallet.TotalDebited.Equal(totalDebit) {
			return nil
		}

		result.Corrected = true
		log.Printf("[RECONCILE] wallet %d drift: balance %s -> %s",
			wallet.ID, wallet.Balance.StringFixed(2), expected.StringFixed(2))

		return tx.Model(wallet).Updates(map[string]interface{}{
			"balance":        expected,
			"total_credited": totalCredit,
			"total_debited":  totalDebit,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
