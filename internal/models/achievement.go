package models

import "time"

// Achievement is a leveled goal keyed by its title. Progress accrues in whole
// units of the associated activity; when it reaches Requirement the achievement
// levels up (requirement doubles, excess progress carries over).
type Achievement struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Icon               string     `json:"icon"`
	InitialRequirement int        `json:"initial_requirement"`
	Requirement        int        `json:"requirement"`
	Progress           int        `json:"progress"`
	Unit               string     `json:"unit"`
	Locked             bool       `json:"locked"`
	UnlockedAt         *time.Time `json:"unlocked_at,omitempty"`
	Level              int        `json:"level"`
}

// Completed reports whether the current level's requirement has been met.
func (a Achievement) Completed() bool {
	return a.Progress >= a.Requirement
}

// DisplayProgress clamps the accrued progress to [0, Requirement]. The raw
// value may exceed the requirement transiently before a level-up runs.
func (a Achievement) DisplayProgress() int {
	if a.Progress < 0 {
		return 0
	}
	if a.Progress > a.Requirement {
		return a.Requirement
	}
	return a.Progress
}

// Percent returns completion as a fraction in [0, 1].
func (a Achievement) Percent() float64 {
	if a.Requirement <= 0 {
		return 0
	}
	p := float64(a.Progress) / float64(a.Requirement)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// AchievementEvent is an append-only history entry recorded at the moment an
// achievement completes a level.
type AchievementEvent struct {
	Achievement Achievement `json:"achievement"` // snapshot before leveling
	CompletedAt time.Time   `json:"completed_at"`
	Level       int         `json:"level"`
	CO2Impact   float64     `json:"co2_impact"` // impact of the requirement quantity
}
