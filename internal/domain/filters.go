// Package domain contains the domain model for name generation.
package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxCustomFilterLength caps the length of a free-text filter value, in characters.
const MaxCustomFilterLength = 15

// FilterKind tells whether a filter holds a preset option or free text.
type FilterKind string

const (
	FilterPreset FilterKind = "preset"
	FilterCustom FilterKind = "custom"
)

// SpecialRequirement is an extra constraint on generated names.
type SpecialRequirement string

const (
	RequirementAlliteration SpecialRequirement = "Alliteration"
	RequirementRhyming      SpecialRequirement = "Rhyming"
)

// Preset option sets, in display order.
var (
	PurposeOptions  = []string{"Company", "Brand", "Username", "Character", "Fantasy", "Pet"}
	StyleOptions    = []string{"Modern", "Classic", "Playful", "Professional", "Unique"}
	LengthOptions   = []string{"Short", "Medium", "Long"}
	LanguageOptions = []string{"English", "Spanish", "French", "Made-up"}

	SpecialRequirementOptions = []SpecialRequirement{RequirementAlliteration, RequirementRhyming}
)

// ErrInvalidFilter is returned when a filter value is outside its allowed set.
var ErrInvalidFilter = errors.New("invalid filter")

// FilterValue is either a preset option or a custom string. The zero value is
// an empty preset.
type FilterValue struct {
	Kind  FilterKind `json:"type"`
	Value string     `json:"value"`
}

// Preset returns a preset FilterValue.
func Preset(v string) FilterValue { return FilterValue{Kind: FilterPreset, Value: v} }

// Custom returns a custom FilterValue.
func Custom(v string) FilterValue { return FilterValue{Kind: FilterCustom, Value: v} }

// IsCustom reports whether the value was typed by the user.
func (f FilterValue) IsCustom() bool { return f.Kind == FilterCustom }

// Effective is the text sent to the generator.
func (f FilterValue) Effective() string { return f.Value }

// IsEmpty reports whether the filter carries no value.
func (f FilterValue) IsEmpty() bool { return f.Value == "" }

func (f FilterValue) validate(field string, options []string) error {
	switch f.Kind {
	case FilterPreset, "":
		if f.Value == "" {
			return nil
		}
		for _, o := range options {
			if o == f.Value {
				return nil
			}
		}
		return fmt.Errorf("%w: %s %q is not a preset option", ErrInvalidFilter, field, f.Value)
	case FilterCustom:
		if utf8.RuneCountInString(f.Value) > MaxCustomFilterLength {
			return fmt.Errorf("%w: custom %s exceeds %d characters", ErrInvalidFilter, field, MaxCustomFilterLength)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s has unknown type %q", ErrInvalidFilter, field, f.Kind)
	}
}

// FilterSelection holds every stylistic filter chosen in the UI.
type FilterSelection struct {
	Purpose             FilterValue          `json:"purpose"`
	Style               FilterValue          `json:"style"`
	Length              FilterValue          `json:"length"`
	Language            FilterValue          `json:"language"`
	SpecialRequirements []SpecialRequirement `json:"specialRequirements"`
}

// DefaultFilters is the selection the UI starts with: all empty presets.
func DefaultFilters() FilterSelection {
	return FilterSelection{
		Purpose:             Preset(""),
		Style:               Preset(""),
		Length:              Preset(""),
		Language:            Preset(""),
		SpecialRequirements: []SpecialRequirement{},
	}
}

// Validate checks every filter against its option set.
func (s FilterSelection) Validate() error {
	checks := []struct {
		field   string
		value   FilterValue
		options []string
	}{
		{"purpose", s.Purpose, PurposeOptions},
		{"style", s.Style, StyleOptions},
		{"length", s.Length, LengthOptions},
		{"language", s.Language, LanguageOptions},
	}
	for _, c := range checks {
		if err := c.value.validate(c.field, c.options); err != nil {
			return err
		}
	}
	for _, r := range s.SpecialRequirements {
		if !knownRequirement(r) {
			return fmt.Errorf("%w: unknown special requirement %q", ErrInvalidFilter, r)
		}
	}
	return nil
}

// Requirements returns the special requirements without duplicates, in
// selection order.
func (s FilterSelection) Requirements() []SpecialRequirement {
	seen := make(map[SpecialRequirement]bool, len(s.SpecialRequirements))
	out := make([]SpecialRequirement, 0, len(s.SpecialRequirements))
	for _, r := range s.SpecialRequirements {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

func knownRequirement(r SpecialRequirement) bool {
	for _, o := range SpecialRequirementOptions {
		if o == r {
			return true
		}
	}
	return false
}
