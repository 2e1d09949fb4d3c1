package orderValidator

import (
	"mediary/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateOrder validates a diary-sale order request
func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			DoctorID    uint    `json:"doctorId"`
			TotalAmount float64 `json:"totalAmount"`
			PaymentRef  string  `json:"paymentRef"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.DoctorID == 0 {
			errors["doctorId"] = "Doctor ID is required!"
		}
		if reqData.TotalAmount <= 0 {
			errors["totalAmount"] = "Total amount must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOrder", reqData)
		return c.Next()
	}
}
