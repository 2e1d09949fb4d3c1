package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletType identifies which party a wallet belongs to
type WalletType string

const (
	WalletTypeVendor   WalletType = "VENDOR"
	WalletTypeDoctor   WalletType = "DOCTOR"
	WalletTypePlatform WalletType = "PLATFORM"
)

// Wallet holds the running ledger balance for one party. The balance column
// is a cache: the wallet_transactions ledger is ground truth, and
// Balance = TotalCredited - TotalDebited must hold at all times.
type Wallet struct {
	gorm.Model
	UserID        uint            `gorm:"not null;uniqueIndex" json:"userId"`
	WalletType    WalletType      `gorm:"type:varchar(20);not null" json:"walletType"`
	Balance       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance"`
	TotalCredited decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalCredited"`
	TotalDebited  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalDebited"`
	Currency      string          `gorm:"type:varchar(5);default:'INR'" json:"currency"`
	IsActive      bool            `gorm:"default:true" json:"isActive"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Wallet) TableName() string {
	return "wallets"
}
