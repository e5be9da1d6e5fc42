package model

import (
	"fmt"
	"slices"
	"strings"
)

// BrewConfig holds the configuration-driven enumerations and the local
// timezone identifier. It is loaded once at startup and treated as
// read-only for the lifetime of a run; the core never mutates it. Tests
// substitute fixtures by passing their own instance.
type BrewConfig struct {
	Categories    []string `json:"CATEGORIES"`
	Stages        []string `json:"STAGES"`
	EventTypes    []string `json:"EVENT_TYPES"`
	LocalTimezone string   `json:"LOCAL_TIMEZONE"`
}

// DefaultBrewConfig returns the built-in enumerations used when no config
// file exists.
func DefaultBrewConfig() *BrewConfig {
	return &BrewConfig{
		Categories: []string{"Beer", "Wine", "Mead", "Cider", "Kombucha", "Seltzer"},
		Stages:     []string{"Primary", "Secondary", "Aging", "Cold Crash", "Bottled", "Kegged"},
		EventTypes: []string{
			"General",
			"Gravity Reading",
			"Nutrient Addition",
			"pH Reading",
			"Temp Check",
			"Aeration",
			"Dry Hop",
			"Fruit Addition",
			"Fruit Removal",
			"Brew Stage Change",
		},
		LocalTimezone: "America/New_York",
	}
}

// Validate checks the config for empty enumerations or blank members.
func (c *BrewConfig) Validate() error {
	var ve ValidationError
	checkSet := func(field string, values []string) {
		if len(values) == 0 {
			ve.Errors = append(ve.Errors, FieldError{Field: field, Message: "must not be empty"})
			return
		}
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				ve.Errors = append(ve.Errors, FieldError{Field: field, Message: "contains a blank entry"})
				return
			}
		}
	}
	checkSet("CATEGORIES", c.Categories)
	checkSet("STAGES", c.Stages)
	checkSet("EVENT_TYPES", c.EventTypes)
	if strings.TrimSpace(c.LocalTimezone) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "LOCAL_TIMEZONE", Message: "is required"})
	}
	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// HasCategory reports whether the category is a configured member.
func (c *BrewConfig) HasCategory(v string) bool {
	return slices.Contains(c.Categories, v)
}

// HasStage reports whether the stage is a configured member.
func (c *BrewConfig) HasStage(v string) bool {
	return slices.Contains(c.Stages, v)
}

// HasEventType reports whether the event type is a configured member.
// System-generated lifecycle and transfer entries are always accepted.
func (c *BrewConfig) HasEventType(t EventType) bool {
	if t == EventLifecycle || t == EventTransfer {
		return true
	}
	return slices.Contains(c.EventTypes, string(t))
}

// DefaultCategory returns the first configured category.
func (c *BrewConfig) DefaultCategory() string {
	if len(c.Categories) == 0 {
		return ""
	}
	return c.Categories[0]
}

// DefaultStage returns the first configured stage, assigned to new brews.
func (c *BrewConfig) DefaultStage() string {
	if len(c.Stages) == 0 {
		return ""
	}
	return c.Stages[0]
}

// ValidateEventType returns a *ValidationError when t is not a configured
// event type.
func (c *BrewConfig) ValidateEventType(t EventType) error {
	if !c.HasEventType(t) {
		return &ValidationError{Errors: []FieldError{{
			Field:   "event_type",
			Message: fmt.Sprintf("unknown event type %q", t),
		}}}
	}
	return nil
}
