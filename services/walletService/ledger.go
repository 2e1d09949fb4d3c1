package walletService

import (
	"mediary/models"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerFilter narrows a ledger page. Zero values mean "no filter".
type LedgerFilter struct {
	Page     int
	Limit    int
	Category models.TransactionCategory
	From     *time.Time
	To       *time.Time
}

// GetLedger returns one page of a wallet's ledger, newest first
func GetLedger(db *gorm.DB, userID uint, filter LedgerFilter) ([]models.WalletTransaction, int64, error) {
	wallet, err := GetWallet(db, userID)
	if err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	offset := (filter.Page - 1) * filter.Limit

	query := db.Model(&models.WalletTransaction{}).Where("wallet_id = ?", wallet.ID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.From != nil {
		query = query.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("transaction_date <= ?", *filter.To)
	}

	var total int64
	query.Count(&total)

	var transactions []models.WalletTransaction
	if err := query.
		Order("transaction_date DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// WalletsSummary aggregates every wallet for the admin dashboard
type WalletsSummary struct {
	Wallets           []models.Wallet `json:"wallets"`
	TotalBalance      decimal.Decimal `json:"totalBalance"`
	TotalCredited     decimal.Decimal `json:"totalCredited"`
	TotalDebited      decimal.Decimal `json:"totalDebited"`
	ActiveWalletCount int             `json:"activeWalletCount"`
	TotalWalletCount  int             `json:"totalWalletCount"`
}

// GetAllWalletsSummary lists every wallet with platform-wide totals
func GetAllWalletsSummary(db *gorm.DB) (*WalletsSummary, error) {
	var wallets []models.Wallet
	if err := db.Order("balance desc").Find(&wallets).Error; err != nil {
		return nil, err
	}

	summary := WalletsSummary{
		Wallets:       wallets,
		TotalBalance:  decimal.Zero,
		TotalCredited: decimal.Zero,
		TotalDebited:  decimal.Zero,
	}
	for _, wallet := range wallets {
		summary.TotalBalance = summary.TotalBalance.Add(wallet.Balance)
		summary.TotalCredited = summary.TotalCredited.Add(wallet.TotalCredited)
		summary.TotalDebited = summary.TotalDebited.Add(wallet.TotalDebited)
		if wallet.IsActive {
			summary.ActiveWalletCount++
		}
	}
	summary.TotalWalletCount = len(wallets)

	return &summary, nil
}
