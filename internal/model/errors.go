package model

import "strconv"

// NotFoundError indicates an operation referenced a slot, event, or archive
// record that does not exist.
type NotFoundError struct {
	Kind string // "slot", "brew", "event", "archive record"
	ID   string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " " + e.ID + " not found"
}

// CalculationError indicates a derived-metric formula is undefined for the
// given inputs (e.g. attenuation with OG exactly 1.0).
type CalculationError struct {
	Op     string
	Reason string
}

func (e *CalculationError) Error() string {
	return e.Op + ": " + e.Reason
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
