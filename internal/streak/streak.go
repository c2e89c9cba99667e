// Package streak implements the global daily-completion streak state machine:
// within-day accumulation, calendar-day rollover with reset-on-miss, and the
// once-per-day increment rule.
package streak

import (
	"time"

	"github.com/carbonquest/carbonquest/internal/models"
	"github.com/carbonquest/carbonquest/internal/utils"
)

// dailyIDs returns the identity set of daily-frequency habits.
func dailyIDs(habits []models.Habit) map[string]bool {
	ids := make(map[string]bool)
	for _, h := range habits {
		if h.IsDaily() {
			ids[h.ID] = true
		}
	}
	return ids
}

// covers reports whether the completed set includes every daily habit.
// An empty daily set is never considered covered: with no daily habits there
// is nothing to earn a streak with.
func covers(s models.Streak, daily map[string]bool) bool {
	if len(daily) == 0 {
		return false
	}
	for id := range daily {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

// Rollover advances the streak across a calendar-day boundary. If now is still
// the same day as LastUpdated it does nothing. Otherwise the count survives
// only when LastUpdated was exactly yesterday and yesterday's completed set
// covered every daily habit; the completed set is always cleared and
// LastUpdated moved to the current day.
func Rollover(s *models.Streak, now time.Time, habits []models.Habit) {
	if s.LastUpdated == "" {
		s.LastUpdated = utils.Day(now)
		return
	}
	if utils.SameDay(s.LastUpdated, now) {
		return
	}

	keep := s.LastUpdated == utils.Yesterday(now) && covers(*s, dailyIDs(habits))
	if !keep {
		s.Count = 0
	}
	s.CompletedTasks = nil
	s.LastUpdated = utils.Day(now)
}

// RecordCompletion adds a completed habit to the current day's set and
// increments the count the first time the daily set becomes fully covered on a
// new day. Callers must run Rollover first so the set belongs to today.
func RecordCompletion(s *models.Streak, habitID string, now time.Time, habits []models.Habit) {
	if !s.Contains(habitID) {
		s.CompletedTasks = append(s.CompletedTasks, habitID)
	}
	s.LastUpdated = utils.Day(now)

	if !covers(*s, dailyIDs(habits)) {
		return
	}
	// Guard against double-increment from repeat completions on a day that
	// already qualified.
	if s.LastIncremented == utils.Day(now) {
		return
	}
	s.Count++
	s.LastIncremented = utils.Day(now)
}

// RemoveCompletion retracts a habit from the current day's completed set, as
// happens when a completed habit is deleted. If that was the day's last
// completed task the count resets to 0 and the day becomes eligible to earn an
// increment again.
func RemoveCompletion(s *models.Streak, habitID string) {
	kept := s.CompletedTasks[:0]
	for _, id := range s.CompletedTasks {
		if id != habitID {
			kept = append(kept, id)
		}
	}
	s.CompletedTasks = kept
	if len(s.CompletedTasks) == 0 {
		s.CompletedTasks = nil
		s.Count = 0
		s.LastIncremented = ""
	}
}
