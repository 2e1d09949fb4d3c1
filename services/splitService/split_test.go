package splitService

import (
	"mediary/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateSplitPercentage(t *testing.T) {
	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("30"),
		DoctorValue: d("10"),
	}

	result, err := CalculateSplit(d("1000"), config)
	require.NoError(t, err)

	assert.Equal(t, "300.00", result.VendorAmount.StringFixed(2))
	assert.Equal(t, "100.00", result.DoctorAmount.StringFixed(2))
	assert.Equal(t, "600.00", result.PlatformAmount.StringFixed(2))
}

func TestCalculateSplitFixed(t *testing.T) {
	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypeFixed,
		VendorValue: d("120.50"),
		DoctorValue: d("30.25"),
	}

	result, err := CalculateSplit(d("200"), config)
	require.NoError(t, err)

	assert.Equal(t, "120.50", result.VendorAmount.StringFixed(2))
	assert.Equal(t, "30.25", result.DoctorAmount.StringFixed(2))
	assert.Equal(t, "49.25", result.PlatformAmount.StringFixed(2))
}

func TestCalculateSplitZeroPlatformShare(t *testing.T) {
	// Fixed shares consuming the full total are valid: platform gets 0.
	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypeFixed,
		VendorValue: d("150"),
		DoctorValue: d("50"),
	}

	result, err := CalculateSplit(d("200"), config)
	require.NoError(t, err)
	assert.True(t, result.PlatformAmount.IsZero())
}

func TestCalculateSplitNegativePlatformShare(t *testing.T) {
	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypeFixed,
		VendorValue: d("150"),
		DoctorValue: d("100"),
	}

	_, err := CalculateSplit(d("200"), config)
	assert.ErrorIs(t, err, ErrSplitCalculation)
}

func TestCalculateSplitConservation(t *testing.T) {
	// The platform share is the remainder, so the three amounts must sum to
	// the total exactly no matter how the first two round.
	totals := []string{"0.01", "1", "99.99", "100.01", "123.45", "999.99", "1000", "54321.67"}
	configs := []*models.SplitConfiguration{
		{SplitType: models.SplitTypePercentage, VendorValue: d("33"), DoctorValue: d("33")},
		{SplitType: models.SplitTypePercentage, VendorValue: d("12.5"), DoctorValue: d("7.3")},
		{SplitType: models.SplitTypePercentage, VendorValue: d("66.67"), DoctorValue: d("33.33")},
		{SplitType: models.SplitTypePercentage, VendorValue: d("0"), DoctorValue: d("0")},
	}

	for _, total := range totals {
		for _, config := range configs {
			result, err := CalculateSplit(d(total), config)
			require.NoError(t, err, "total=%s vendor=%s doctor=%s", total, config.VendorValue, config.DoctorValue)

			sum := result.VendorAmount.Add(result.DoctorAmount).Add(result.PlatformAmount)
			assert.True(t, sum.Equal(d(total)),
				"conservation broken: total=%s got sum=%s", total, sum.String())
			assert.False(t, result.PlatformAmount.IsNegative())
		}
	}
}

func TestCalculateSplitRoundingAmbiguity(t *testing.T) {
	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("33"),
		DoctorValue: d("33"),
	}

	// 99.99 * 33% = 32.9967, rounds half-up to 33.00 for both shares.
	result, err := CalculateSplit(d("99.99"), config)
	require.NoError(t, err)

	assert.Equal(t, "33.00", result.VendorAmount.StringFixed(2))
	assert.Equal(t, "33.00", result.DoctorAmount.StringFixed(2))
	assert.Equal(t, "33.99", result.PlatformAmount.StringFixed(2))
}

func TestValidateSplitConfigPercentageOverflow(t *testing.T) {
	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("60"),
		DoctorValue: d("50"),
	}

	result := ValidateSplitConfig(config, nil)
	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateSplitConfigNegativeValues(t *testing.T) {
	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("-5"),
		DoctorValue: d("10"),
	}

	result := ValidateSplitConfig(config, nil)
	assert.False(t, result.IsValid)
}

func TestValidateSplitConfigFixedAgainstOrderAmount(t *testing.T) {
	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypeFixed,
		VendorValue: d("150"),
		DoctorValue: d("100"),
	}

	orderAmount := d("200")
	result := ValidateSplitConfig(config, &orderAmount)
	assert.False(t, result.IsValid)

	// Exactly consuming the total is allowed.
	exact := d("250")
	result = ValidateSplitConfig(config, &exact)
	assert.True(t, result.IsValid)
}

func TestValidateSplitConfigValid(t *testing.T) {
	config := &models.SplitConfiguration{
		SplitType:   models.SplitTypePercentage,
		VendorValue: d("30"),
		DoctorValue: d("10"),
	}

	result := ValidateSplitConfig(config, nil)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}
