package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayoutStatus defines the lifecycle of a payout
type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "PENDING"
	PayoutStatusProcessing PayoutStatus = "PROCESSING"
	PayoutStatusSuccess    PayoutStatus = "SUCCESS"
	PayoutStatusFailed     PayoutStatus = "FAILED"
)

// Payout records one withdrawal from a wallet to the party's bank account.
// Amount is immutable after creation; only Status, CashfreeTransferID,
// ProcessedAt and FailureReason change as the external transfer settles.
type Payout struct {
	gorm.Model
	WalletID uint            `gorm:"not null;index" json:"walletId"`
	UserID   uint            `gorm:"not null;index" json:"userId"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status   PayoutStatus    `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`

	CashfreeTransferID string     `gorm:"type:varchar(100)" json:"cashfreeTransferId"`
	ProcessedAt        *time.Time `json:"processedAt"`
	FailureReason      string     `gorm:"type:text" json:"failureReason"`
	RequestedBy        uint       `gorm:"default:0" json:"requestedBy"`

	Wallet Wallet `gorm:"foreignKey:WalletID" json:"-"`
}

func (Payout) TableName() string {
	return "payouts"
}
