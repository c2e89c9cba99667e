package models

// Streak is the global daily-completion streak. Days are YYYY-MM-DD strings.
// CompletedTasks holds the habit IDs completed during the current day and is
// cleared exactly once per calendar-day rollover.
type Streak struct {
	Count           int      `json:"count"`
	LastUpdated     string   `json:"last_updated"`
	LastIncremented string   `json:"last_incremented,omitempty"`
	CompletedTasks  []string `json:"completed_tasks,omitempty"`
}

// Contains reports whether the habit ID is in the current day's completed set.
func (s Streak) Contains(habitID string) bool {
	for _, id := range s.CompletedTasks {
		if id == habitID {
			return true
		}
	}
	return false
}
