package splitService

import (
	"errors"
	"fmt"
	"mediary/models"

	"gorm.io/gorm"
)

// ActivateConfig validates, saves and activates a new split configuration.
// Deactivating every currently-active row and inserting the new active row
// happen inside one transaction, so a concurrent reader never sees zero or
// two active configurations.
func ActivateConfig(db *gorm.DB, config *models.SplitConfiguration) error {
	if result := ValidateSplitConfig(config, nil); !result.IsValid {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, result.Errors)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SplitConfiguration{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		config.IsActive = true
		return tx.Create(config).Error
	})
}

// GetActiveConfig returns the single active configuration. Callers must
// treat ErrNoActiveConfig as a hard stop for new orders; there is no
// default split.
func GetActiveConfig(db *gorm.DB) (*models.SplitConfiguration, error) {
	var config models.SplitConfiguration
	if err := db.Where("is_active = ?", true).First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveConfig
		}
		return nil, err
	}
	return &config, nil
}

// UpdateConfig edits a configuration's split values and notes after
// re-validation. Historical (inactive) rows may be edited for record-keeping;
// settled orders are unaffected because split transactions snapshot the
// values used.
func UpdateConfig(db *gorm.DB, id uint, fields *models.SplitConfiguration) (*models.SplitConfiguration, error) {
	var config models.SplitConfiguration
	if err := db.First(&config, id).Error; err != nil {
		return nil, err
	}

	config.SplitType = fields.SplitType
	config.VendorValue = fields.VendorValue
	config.DoctorValue = fields.DoctorValue
	config.Notes = fields.Notes

	if result := ValidateSplitConfig(&config, nil); !result.IsValid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, result.Errors)
	}

	if err := db.Save(&config).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

// ListConfigs returns all configurations, newest first, for the admin audit view
func ListConfigs(db *gorm.DB) ([]models.SplitConfiguration, error) {
	var configs []models.SplitConfiguration
	if err := db.Order("created_at desc").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}
