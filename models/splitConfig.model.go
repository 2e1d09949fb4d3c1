package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SplitType defines how an order total is divided between vendor and doctor
type SplitType string

const (
	SplitTypePercentage SplitType = "PERCENTAGE"
	SplitTypeFixed      SplitType = "FIXED"
)

// SplitConfiguration defines the active commission split for diary sales.
// At most one row has IsActive = true at any time; rows are never deleted
// so old configurations stay available for audit.
type SplitConfiguration struct {
	gorm.Model
	SplitType   SplitType       `gorm:"type:varchar(20);not null" json:"splitType"`
	VendorValue decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vendorValue"`
	DoctorValue decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"doctorValue"`
	IsActive    bool            `gorm:"default:false;index" json:"isActive"`
	CreatedBy   uint            `gorm:"default:0" json:"createdBy"`
	Notes       string          `gorm:"type:text" json:"notes"`
}

func (SplitConfiguration) TableName() string {
	return "split_configurations"
}
