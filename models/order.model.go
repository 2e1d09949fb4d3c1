package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderPaymentStatus defines the payment state of a diary order
type OrderPaymentStatus string

const (
	OrderPaymentPending OrderPaymentStatus = "PENDING"
	OrderPaymentPaid    OrderPaymentStatus = "PAID"
	OrderPaymentFailed  OrderPaymentStatus = "FAILED"
)

// DiaryOrder is the minimal order record the settlement engine needs: who
// gets paid and whether the order has already been settled. Order creation
// and payment-gateway handling live with the order service; settlement only
// locks this row to flip PENDING -> PAID exactly once.
type DiaryOrder struct {
	gorm.Model
	VendorID      uint               `gorm:"not null;index" json:"vendorId"`
	DoctorID      uint               `gorm:"not null;index" json:"doctorId"`
	TotalAmount   decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	PaymentStatus OrderPaymentStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"paymentStatus"`
	PaymentRef    string             `gorm:"type:varchar(100)" json:"paymentRef"` // gateway order id
	PaidAt        *time.Time         `json:"paidAt"`
}

func (DiaryOrder) TableName() string {
	return "diary_orders"
}
