package models

import (
	"time"

	"github.com/carbonquest/carbonquest/internal/constants"
	"github.com/carbonquest/carbonquest/internal/emission"
)

// Habit is a recurring loggable action. Quantity is signed: the author picks
// magnitude and sign to represent the green direction (e.g. -5 km of driving
// avoided, +1 kg recycled).
type Habit struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Kind        emission.Activity   `json:"kind"`
	Quantity    float64             `json:"quantity"`
	Frequency   constants.Frequency `json:"frequency"`
	Completed   bool                `json:"completed"`
	Description string              `json:"description,omitempty"`
	Category    constants.Category  `json:"category"`
	Stats       HabitStatistics     `json:"stats"`
	CreatedAt   time.Time           `json:"created_at"`
}

// HabitStatistics is the per-habit rolling record. It is updated only on the
// incomplete→complete transition; marking a habit incomplete does not rewind it.
type HabitStatistics struct {
	CompletionCount   int         `json:"completion_count"`
	LastCompleted     *time.Time  `json:"last_completed,omitempty"`
	Streak            int         `json:"streak"`
	CompletionHistory []time.Time `json:"completion_history,omitempty"`
	TotalCO2Saved     float64     `json:"total_co2_saved"`
}

// Impact returns the signed kg CO₂ for one completion of the habit.
func (h Habit) Impact() float64 {
	return emission.Impact(h.Kind, h.Quantity)
}

// IsDaily reports whether the habit participates in the daily streak.
func (h Habit) IsDaily() bool {
	return h.Frequency == constants.FrequencyDaily
}
