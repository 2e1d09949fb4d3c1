package walletValidator

import (
	"mediary/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ManualAdjustment validates an admin manual credit/debit request
func ManualAdjustment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID      uint    `json:"userId" validate:"required"`
			Type        string  `json:"type" validate:"required,oneof=CREDIT DEBIT"`
			Amount      float64 `json:"amount" validate:"required,gt=0"`
			Description string  `json:"description" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "UserID":
					errors["userId"] = "User ID is required!"
				case "Type":
					errors["type"] = "Type must be CREDIT or DEBIT!"
				case "Amount":
					errors["amount"] = "Amount must be greater than 0!"
				case "Description":
					errors["description"] = "Description is required for manual adjustments!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdjustment", reqData)
		return c.Next()
	}
}

// Payout validates a self-service withdrawal request
func Payout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount float64 `json:"amount" validate:"required,gt=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"amount": "Amount must be greater than 0!",
			})
		}

		c.Locals("validatedPayout", reqData)
		return c.Next()
	}
}

// AdminPayout validates an admin-initiated payout request
func AdminPayout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID uint    `json:"userId" validate:"required"`
			Amount float64 `json:"amount" validate:"required,gt=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "UserID":
					errors["userId"] = "User ID is required!"
				case "Amount":
					errors["amount"] = "Amount must be greater than 0!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdminPayout", reqData)
		return c.Next()
	}
}
