package splitService

import (
	"mediary/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SplitConfiguration{}))
	return db
}

func TestGetActiveConfigNone(t *testing.T) {
	db := setupTestDb(t)

	_, err := GetActiveConfig(db)
	assert.ErrorIs(t, err, ErrNoActiveConfig)
}

func TestActivateConfig(t *testing.T) {
	db := setupTestDb(t)

	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("30"),
		DoctorValue: d("10"),
		CreatedBy:   1,
	}
	require.NoError(t, ActivateConfig(db, config))

	active, err := GetActiveConfig(db)
	require.NoError(t, err)
	assert.Equal(t, config.ID, active.ID)
	assert.True(t, active.IsActive)
}

func TestActivateConfigRejectsInvalid(t *testing.T) {
	db := setupTestDb(t)

	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("60"),
		DoctorValue: d("50"),
	}
	err := ActivateConfig(db, config)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = GetActiveConfig(db)
	assert.ErrorIs(t, err, ErrNoActiveConfig)
}

func TestActivateConfigSingleActiveInvariant(t *testing.T) {
	db := setupTestDb(t)

	first := &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("30"),
		DoctorValue: d("10"),
	}
	require.NoError(t, ActivateConfig(db, first))

	second := &models.SplitConfiguration{
		SplitType:   models.SplitTypeFixed,
		VendorValue: d("100"),
		DoctorValue: d("25"),
	}
	require.NoError(t, ActivateConfig(db, second))

	var activeCount int64
	db.Model(&models.SplitConfiguration{}).Where("is_active = ?", true).Count(&activeCount)
	assert.Equal(t, int64(1), activeCount)

	active, err := GetActiveConfig(db)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	// The old row survives for audit, just deactivated.
	var total int64
	db.Model(&models.SplitConfiguration{}).Count(&total)
	assert.Equal(t, int64(2), total)
}

func TestUpdateConfigRevalidates(t *testing.T) {
	db := setupTestDb(t)

	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("30"),
		DoctorValue: d("10"),
	}
	require.NoError(t, ActivateConfig(db, config))

	_, err := UpdateConfig(db, config.ID, &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("80"),
		DoctorValue: d("30"),
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUpdateHistoricalConfigKeepsActiveUntouched(t *testing.T) {
	db := setupTestDb(t)

	old := &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("30"),
		DoctorValue: d("10"),
	}
	require.NoError(t, ActivateConfig(db, old))

	current := &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("40"),
		DoctorValue: d("15"),
	}
	require.NoError(t, ActivateConfig(db, current))

	updated, err := UpdateConfig(db, old.ID, &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("25"),
		DoctorValue: d("5"),
		Notes:       "corrected for audit",
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := GetActiveConfig(db)
	require.NoError(t, err)
	assert.Equal(t, current.ID, active.ID)
}

func TestListConfigs(t *testing.T) {
	db := setupTestDb(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, ActivateConfig(db, &models.SplitConfiguration{
			SplitType:   models.SplitTypePercentage,
			VendorValue: d("30"),
			DoctorValue: d("10"),
		}))
	}

	configs, err := ListConfigs(db)
	require.NoError(t, err)
	assert.Len(t, configs, 3)
}
