package splitController

import (
	"errors"
	"mediary/database"
	"mediary/middleware"
	"mediary/models"
	"mediary/services/splitService"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// findAdmin loads the requesting user if they hold an admin role
func findAdmin(c *fiber.Ctx) (*models.User, error) {
	userId := c.Locals("userId").(uint)

	var admin models.User
	err := database.Database.Db.
		Where("id = ? AND is_deleted = false AND role IN ?", userId, []string{"ADMIN", "SUPER-ADMIN"}).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// ActivateSplitConfig creates and activates a new split configuration,
// deactivating the previous one in the same step (Admin only)
func ActivateSplitConfig(c *fiber.Ctx) error {
	admin, err := findAdmin(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	reqData, ok := c.Locals("validatedSplitConfig").(*struct {
		SplitType   string  `json:"splitType"`
		VendorValue float64 `json:"vendorValue"`
		DoctorValue float64 `json:"doctorValue"`
		Notes       string  `json:"notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	config := models.SplitConfiguration{
		SplitType:   models.SplitType(reqData.SplitType),
		VendorValue: decimal.NewFromFloat(reqData.VendorValue),
		DoctorValue: decimal.NewFromFloat(reqData.DoctorValue),
		CreatedBy:   admin.ID,
		Notes:       reqData.Notes,
	}

	if err := splitService.ActivateConfig(database.Database.Db, &config); err != nil {
		if errors.Is(err, splitService.ErrInvalidConfig) {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate configuration!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Split configuration activated!", config)
}

// GetActiveSplitConfig returns the single active configuration
func GetActiveSplitConfig(c *fiber.Ctx) error {
	config, err := splitService.GetActiveConfig(database.Database.Db)
	if err != nil {
		if errors.Is(err, splitService.ErrNoActiveConfig) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active split configuration!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch configuration!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Active split configuration fetched!", config)
}

// UpdateSplitConfig edits a configuration after re-validation (Admin only).
// Settled orders are unaffected: their splits are snapshotted.
func UpdateSplitConfig(c *fiber.Ctx) error {
	if _, err := findAdmin(c); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	configId, err := c.ParamsInt("id")
	if err != nil || configId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid configuration id!", nil)
	}

	reqData, ok := c.Locals("validatedSplitConfig").(*struct {
		SplitType   string  `json:"splitType"`
		VendorValue float64 `json:"vendorValue"`
		DoctorValue float64 `json:"doctorValue"`
		Notes       string  `json:"notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	fields := models.SplitConfiguration{
		SplitType:   models.SplitType(reqData.SplitType),
		VendorValue: decimal.NewFromFloat(reqData.VendorValue),
		DoctorValue: decimal.NewFromFloat(reqData.DoctorValue),
		Notes:       reqData.Notes,
	}

	config, err := splitService.UpdateConfig(database.Database.Db, uint(configId), &fields)
	if err != nil {
		if errors.Is(err, splitService.ErrInvalidConfig) {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update configuration!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Split configuration updated!", config)
}

// ListSplitConfigs returns every configuration for audit (Admin only)
func ListSplitConfigs(c *fiber.Ctx) error {
	if _, err := findAdmin(c); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	configs, err := splitService.ListConfigs(database.Database.Db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch configurations!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Split configurations fetched!", configs)
}
