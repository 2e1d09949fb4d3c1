package splitService

import (
	"errors"
	"fmt"
	"mediary/models"

	"github.com/shopspring/decimal"
)

var (
	ErrNoActiveConfig   = errors.New("no active split configuration")
	ErrSplitCalculation = errors.New("vendor and doctor shares exceed order total")
	ErrInvalidConfig    = errors.New("invalid split configuration")
)

var hundred = decimal.NewFromInt(100)

// SplitResult holds the three shares of an order total. The platform share is
// always the remainder, so the three amounts sum to the total exactly.
type SplitResult struct {
	VendorAmount   decimal.Decimal `json:"vendorAmount"`
	DoctorAmount   decimal.Decimal `json:"doctorAmount"`
	PlatformAmount decimal.Decimal `json:"platformAmount"`
}

// ValidationResult carries the outcome of a configuration check
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// CalculateSplit computes vendor/doctor/platform amounts for an order total.
// Vendor and doctor shares are rounded to 2 decimal places (half up); the
// platform share is the exact remainder and is never computed independently.
// A negative remainder is an error, never clamped.
func CalculateSplit(totalAmount decimal.Decimal, config *models.SplitConfiguration) (*SplitResult, error) {
	var vendorAmount, doctorAmount decimal.Decimal

	switch config.SplitType {
	case models.SplitTypePercentage:
		vendorAmount = totalAmount.Mul(config.VendorValue).Div(hundred).Round(2)
		doctorAmount = totalAmount.Mul(config.DoctorValue).Div(hundred).Round(2)
	case models.SplitTypeFixed:
		vendorAmount = config.VendorValue.Round(2)
		doctorAmount = config.DoctorValue.Round(2)
	default:
		return nil, fmt.Errorf("%w: unknown split type %q", ErrInvalidConfig, config.SplitType)
	}

	platformAmount := totalAmount.Sub(vendorAmount).Sub(doctorAmount)
	if platformAmount.IsNegative() {
		return nil, fmt.Errorf("%w: total=%s vendor=%s doctor=%s",
			ErrSplitCalculation, totalAmount.StringFixed(2), vendorAmount.StringFixed(2), doctorAmount.StringFixed(2))
	}

	return &SplitResult{
		VendorAmount:   vendorAmount,
		DoctorAmount:   doctorAmount,
		PlatformAmount: platformAmount,
	}, nil
}

// ValidateSplitConfig checks a configuration before it is saved or used.
// orderAmount is optional; when given it tightens the FIXED check so the
// fixed shares cannot exceed that specific order's total.
func ValidateSplitConfig(config *models.SplitConfiguration, orderAmount *decimal.Decimal) ValidationResult {
	var errs []string

	if config.SplitType != models.SplitTypePercentage && config.SplitType != models.SplitTypeFixed {
		errs = append(errs, fmt.Sprintf("splitType must be PERCENTAGE or FIXED, got %q", config.SplitType))
	}
	if config.VendorValue.IsNegative() {
		errs = append(errs, "vendorValue cannot be negative")
	}
	if config.DoctorValue.IsNegative() {
		errs = append(errs, "doctorValue cannot be negative")
	}

	sum := config.VendorValue.Add(config.DoctorValue)
	if config.SplitType == models.SplitTypePercentage && sum.GreaterThan(hundred) {
		errs = append(errs, fmt.Sprintf("vendorValue + doctorValue cannot exceed 100%%, got %s%%", sum.String()))
	}
	// A fixed split that consumes the full order total (platform gets 0) is allowed.
	if config.SplitType == models.SplitTypeFixed && orderAmount != nil && sum.GreaterThan(*orderAmount) {
		errs = append(errs, fmt.Sprintf("vendorValue + doctorValue (%s) cannot exceed order amount (%s)",
			sum.StringFixed(2), orderAmount.StringFixed(2)))
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
