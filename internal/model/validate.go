package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Physical bounds for metric readings.
const (
	GravityMin = 0.980
	GravityMax = 1.200
	PHMin      = 0.0
	PHMax      = 14.0
	// Plausible fermentation temperature range, in celsius.
	TempMin = -10.0
	TempMax = 45.0
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// RangeError indicates a numeric field outside its physical bounds.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	if math.IsInf(e.Max, 1) {
		return fmt.Sprintf("%s: %g must be at least %g", e.Field, e.Value, e.Min)
	}
	return fmt.Sprintf("%s: %g outside range [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

// ValidateGravity checks a specific-gravity reading against the global bounds.
func ValidateGravity(x float64) error {
	if x < GravityMin || x > GravityMax {
		return &RangeError{Field: "gravity", Value: x, Min: GravityMin, Max: GravityMax}
	}
	return nil
}

// ParseGravity parses a decimal gravity string ("1.050", "1.03") and
// validates it. Gravity is parsed once at the boundary and handled as a
// float everywhere inside the core.
func ParseGravity(s string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ValidationError{Errors: []FieldError{{
			Field:   "gravity",
			Message: fmt.Sprintf("invalid decimal %q", s),
		}}}
	}
	if err := ValidateGravity(x); err != nil {
		return 0, err
	}
	return x, nil
}

// ValidateVolume checks that a volume is non-negative.
func ValidateVolume(x float64) error {
	if x < 0 {
		return &RangeError{Field: "volume", Value: x, Min: 0, Max: math.Inf(1)}
	}
	return nil
}

// ValidateTransferLoss checks a transfer loss against the source volume:
// non-negative and never more than what is in the vessel.
func ValidateTransferLoss(loss, volume float64) error {
	if loss < 0 {
		return &ValidationError{Errors: []FieldError{{
			Field:   "volume_loss",
			Message: fmt.Sprintf("must be non-negative, got %g", loss),
		}}}
	}
	if loss > volume {
		return &ValidationError{Errors: []FieldError{{
			Field:   "volume_loss",
			Message: fmt.Sprintf("loss %gL exceeds current volume %gL", loss, volume),
		}}}
	}
	return nil
}

// ValidatePH checks a pH reading.
func ValidatePH(x float64) error {
	if x < PHMin || x > PHMax {
		return &RangeError{Field: "ph", Value: x, Min: PHMin, Max: PHMax}
	}
	return nil
}

// ValidateTemp checks a temperature reading against the plausible
// fermentation range.
func ValidateTemp(x float64) error {
	if x < TempMin || x > TempMax {
		return &RangeError{Field: "temp", Value: x, Min: TempMin, Max: TempMax}
	}
	return nil
}

// ValidateBrew checks a Brew for constraint violations against the given
// config. It returns a *ValidationError if any rules fail, or nil.
func ValidateBrew(cfg *BrewConfig, b *Brew) error {
	var ve ValidationError

	if strings.TrimSpace(b.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	}

	if !cfg.HasCategory(b.Category) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "category",
			Message: fmt.Sprintf("unknown category %q", b.Category),
		})
	}
	if !cfg.HasStage(b.Stage) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "stage",
			Message: fmt.Sprintf("unknown stage %q", b.Stage),
		})
	}

	if err := ValidateGravity(b.OG); err != nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "og", Message: rangeMessage(err)})
	}
	if b.FG != nil {
		if err := ValidateGravity(*b.FG); err != nil {
			ve.Errors = append(ve.Errors, FieldError{Field: "fg", Message: rangeMessage(err)})
		}
	}
	if err := ValidateVolume(b.Volume); err != nil {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "volume",
			Message: fmt.Sprintf("must be non-negative, got %g", b.Volume),
		})
	}
	if b.PH != nil {
		if err := ValidatePH(*b.PH); err != nil {
			ve.Errors = append(ve.Errors, FieldError{Field: "ph", Message: rangeMessage(err)})
		}
	}
	if b.Temp != nil {
		if err := ValidateTemp(*b.Temp); err != nil {
			ve.Errors = append(ve.Errors, FieldError{Field: "temp", Message: rangeMessage(err)})
		}
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// rangeMessage strips the field prefix from a RangeError for embedding in a
// FieldError keyed by the struct field name.
func rangeMessage(err error) string {
	if re, ok := err.(*RangeError); ok {
		return fmt.Sprintf("%g outside range [%g, %g]", re.Value, re.Min, re.Max)
	}
	return err.Error()
}
