package splitValidator

import (
	"mediary/middleware"

	"github.com/gofiber/fiber/v2"
)

// SplitConfig validates a split configuration create/update request. The
// deeper decimal checks (share totals) live in the split service; this only
// rejects obviously malformed bodies.
func SplitConfig() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SplitType   string  `json:"splitType"`
			VendorValue float64 `json:"vendorValue"`
			DoctorValue float64 `json:"doctorValue"`
			Notes       string  `json:"notes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SplitType != "PERCENTAGE" && reqData.SplitType != "FIXED" {
			errors["splitType"] = "Split type must be PERCENTAGE or FIXED!"
		}
		if reqData.VendorValue < 0 {
			errors["vendorValue"] = "Vendor value cannot be negative!"
		}
		if reqData.DoctorValue < 0 {
			errors["doctorValue"] = "Doctor value cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSplitConfig", reqData)
		return c.Next()
	}
}
