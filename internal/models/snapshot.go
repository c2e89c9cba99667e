package models

// Snapshot is the full serializable state tree: everything needed to resume
// the process-wide state exactly.
type Snapshot struct {
	Habits        []Habit            `json:"habits"`
	Achievements  []Achievement      `json:"achievements"`
	Streak        Streak             `json:"streak"`
	History       []AchievementEvent `json:"history,omitempty"`
	TotalCO2Saved float64            `json:"total_co2_saved"`
}
