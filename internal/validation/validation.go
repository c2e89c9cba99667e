// Package validation rejects malformed habit input at the boundary; nothing
// deeper in the engine raises user-visible errors.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/carbonquest/carbonquest/internal/constants"
	"github.com/carbonquest/carbonquest/internal/models"
)

var (
	// ErrEmptyTitle is returned when a habit has no title.
	ErrEmptyTitle = errors.New("habit title cannot be empty")
	// ErrZeroQuantity is returned when a habit quantity is zero; a zero
	// quantity would make every impact zero.
	ErrZeroQuantity = errors.New("habit quantity cannot be zero")
)

// ValidateHabit checks user-provided habit fields. It returns the first
// problem found; no state is mutated on failure.
func ValidateHabit(h models.Habit) error {
	if strings.TrimSpace(h.Title) == "" {
		return ErrEmptyTitle
	}
	if h.Quantity == 0 {
		return ErrZeroQuantity
	}
	if !validFrequency(h.Frequency) {
		return fmt.Errorf("invalid frequency %q (expected daily, weekly, or monthly)", h.Frequency)
	}
	if !validCategory(h.Category) {
		return fmt.Errorf("invalid category %q", h.Category)
	}
	return nil
}

func validFrequency(f constants.Frequency) bool {
	for _, known := range constants.Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

func validCategory(c constants.Category) bool {
	for _, known := range constants.Categories {
		if c == known {
			return true
		}
	}
	return false
}
