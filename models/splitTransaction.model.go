package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransferStatus defines the settlement state of an order's split
type TransferStatus string

const (
	TransferStatusPending TransferStatus = "PENDING"
	TransferStatusSuccess TransferStatus = "SUCCESS"
	TransferStatusFailed  TransferStatus = "FAILED"
)

// SplitTransaction snapshots the split computed for one order at order
// creation time, so later configuration changes never affect settled orders.
type SplitTransaction struct {
	gorm.Model
	OrderID        uint            `gorm:"not null;uniqueIndex" json:"orderId"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	VendorAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vendorAmount"`
	DoctorAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"doctorAmount"`
	PlatformAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"platformAmount"`
	SplitType      SplitType       `gorm:"type:varchar(20);not null" json:"splitType"`
	TransferStatus TransferStatus  `gorm:"type:varchar(20);default:'PENDING';index" json:"transferStatus"`
	IdempotencyKey string          `gorm:"type:varchar(100);uniqueIndex" json:"idempotencyKey"`
	ProcessedAt    *time.Time      `json:"processedAt"`

	Order DiaryOrder `gorm:"foreignKey:OrderID" json:"-"`
}

func (SplitTransaction) TableName() string {
	return "split_transactions"
}
