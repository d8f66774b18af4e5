package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationResult carries the non-fatal findings of input validation.
// Warnings are logged and surfaced; processing continues regardless.
type ValidationResult struct {
	Warnings []string
}

// OK reports whether validation produced no warnings.
func (r ValidationResult) OK() bool {
	return len(r.Warnings) == 0
}

// ValidateCoordinate checks latitude and longitude against the WGS-84 ranges.
func ValidateCoordinate(c Coordinate) ValidationResult {
	var res ValidationResult
	if err := validate.Var(c.Lat, "gte=-90,lte=90"); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("invalid latitude %v: must be between -90 and 90", c.Lat))
	}
	if err := validate.Var(c.Lon, "gte=-180,lte=180"); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("invalid longitude %v: must be between -180 and 180", c.Lon))
	}
	return res
}

// NormalizeState uppercases a state code and checks it is exactly two letters.
// The normalized value is returned even when validation warns.
func NormalizeState(s string) (string, ValidationResult) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	var res ValidationResult
	if err := validate.Var(norm, "len=2,alpha"); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("invalid state code %q: expected a two-letter code such as CA or NY", s))
	}
	return norm, res
}
