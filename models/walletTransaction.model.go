package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TransactionType defines the direction of a ledger entry
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

// TransactionCategory defines what a ledger entry was for
type TransactionCategory string

const (
	CategoryDiarySale      TransactionCategory = "DIARY_SALE"
	CategoryPayout         TransactionCategory = "PAYOUT"
	CategoryManualCredit   TransactionCategory = "MANUAL_CREDIT"
	CategoryManualDebit    TransactionCategory = "MANUAL_DEBIT"
	CategoryRefund         TransactionCategory = "REFUND"
	CategoryCommission     TransactionCategory = "COMMISSION"
	CategoryAdvancePayment TransactionCategory = "ADVANCE_PAYMENT"
)

// ReferenceType ties a ledger entry back to the record that caused it
type ReferenceType string

const (
	ReferenceTypeOrder  ReferenceType = "ORDER"
	ReferenceTypePayout ReferenceType = "PAYOUT"
	ReferenceTypeManual ReferenceType = "MANUAL"
	ReferenceTypeRefund ReferenceType = "REFUND"
)

// WalletTransaction is one immutable ledger entry. Rows are never updated or
// deleted. The composite index idx_wallet_reference enforces the idempotency
// guard: at most one CREDIT per (wallet, ORDER, orderId).
type WalletTransaction struct {
	gorm.Model
	WalletID     uint                `gorm:"not null;index;uniqueIndex:idx_wallet_reference" json:"walletId"`
	Type         TransactionType     `gorm:"type:varchar(10);not null;uniqueIndex:idx_wallet_reference" json:"type"`
	Amount       decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"amount"`
	BalanceAfter decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"balanceAfter"`
	Category     TransactionCategory `gorm:"type:varchar(30);not null;index" json:"category"`
	Description  string              `gorm:"type:text" json:"description"`

	ReferenceType ReferenceType `gorm:"type:varchar(20);not null;uniqueIndex:idx_wallet_reference" json:"referenceType"`
	ReferenceID   string        `gorm:"type:varchar(100);not null;uniqueIndex:idx_wallet_reference" json:"referenceId"`

	PerformedBy     uint           `gorm:"default:0" json:"performedBy"`
	Metadata        datatypes.JSON `json:"metadata"`
	TransactionDate time.Time      `gorm:"not null" json:"transactionDate"`

	Wallet Wallet `gorm:"foreignKey:WalletID" json:"-"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
