package orderController

import (
	"errors"
	"mediary/database"
	"mediary/middleware"
	"mediary/models"
	"mediary/services/settlementService"
	"mediary/services/splitService"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateDiaryOrder records a diary-sale order and snapshots the active split
// for it in the same transaction. Settlement later credits the snapshotted
// amounts, so a configuration change in between cannot shift the split.
// Order creation is refused outright when no split configuration is active.
func CreateDiaryOrder(c *fiber.Ctx) error {
	vendorId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedOrder").(*struct {
		DoctorID    uint    `json:"doctorId"`
		TotalAmount float64 `json:"totalAmount"`
		PaymentRef  string  `json:"paymentRef"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	order := models.DiaryOrder{
		VendorID:      vendorId,
		DoctorID:      reqData.DoctorID,
		TotalAmount:   decimal.NewFromFloat(reqData.TotalAmount),
		PaymentStatus: models.OrderPaymentPending,
		PaymentRef:    reqData.PaymentRef,
	}

	var splitTxn *models.SplitTransaction
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		var err error
		splitTxn, err = settlementService.CreateSplitTransaction(tx, &order)
		return err
	})
	if err != nil {
		if errors.Is(err, splitService.ErrNoActiveConfig) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "No active split configuration; cannot accept orders!", nil)
		}
		if errors.Is(err, splitService.ErrSplitCalculation) || errors.Is(err, splitService.ErrInvalidConfig) {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order created!", fiber.Map{
		"orderId":        order.ID,
		"totalAmount":    order.TotalAmount.StringFixed(2),
		"vendorAmount":   splitTxn.VendorAmount.StringFixed(2),
		"doctorAmount":   splitTxn.DoctorAmount.StringFixed(2),
		"platformAmount": splitTxn.PlatformAmount.StringFixed(2),
		"splitType":      splitTxn.SplitType,
		"status":         order.PaymentStatus,
	})
}

// GetDiaryOrder returns one order with its split snapshot
func GetDiaryOrder(c *fiber.Ctx) error {
	orderId, err := c.ParamsInt("id")
	if err != nil || orderId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid order id!", nil)
	}

	db := database.Database.Db

	var order models.DiaryOrder
	if err := db.First(&order, orderId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	var splitTxn models.SplitTransaction
	if err := db.Where("order_id = ?", order.ID).First(&splitTxn).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Split record missing for order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order fetched!", fiber.Map{
		"order": order,
		"split": splitTxn,
	})
}
