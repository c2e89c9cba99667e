package streak

import (
	"testing"
	"time"

	"github.com/carbonquest/carbonquest/internal/constants"
	"github.com/carbonquest/carbonquest/internal/models"
	"github.com/carbonquest/carbonquest/internal/utils"
)

func daily(id string) models.Habit {
	return models.Habit{ID: id, Frequency: constants.FrequencyDaily}
}

func weekly(id string) models.Habit {
	return models.Habit{ID: id, Frequency: constants.FrequencyWeekly}
}

var (
	day1 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 = day1.AddDate(0, 0, 1)
	day3 = day1.AddDate(0, 0, 2)
)

func TestRollover_SameDayNoop(t *testing.T) {
	s := models.Streak{Count: 3, LastUpdated: utils.Day(day1), CompletedTasks: []string{"a"}}
	Rollover(&s, day1.Add(6*time.Hour), []models.Habit{daily("a")})

	if s.Count != 3 {
		t.Errorf("Count = %d, want 3 (same-day rollover must not touch the count)", s.Count)
	}
	if len(s.CompletedTasks) != 1 {
		t.Errorf("CompletedTasks = %v, want preserved", s.CompletedTasks)
	}
}

func TestRollover_NextDayWithFullCoveragePreservesCount(t *testing.T) {
	habits := []models.Habit{daily("a"), daily("b"), weekly("w")}
	s := models.Streak{
		Count:          4,
		LastUpdated:    utils.Day(day1),
		CompletedTasks: []string{"a", "b"}, // weekly "w" not required
	}

	Rollover(&s, day2, habits)

	if s.Count != 4 {
		t.Errorf("Count = %d, want 4 preserved across a covered day", s.Count)
	}
	if len(s.CompletedTasks) != 0 {
		t.Errorf("CompletedTasks = %v, want cleared for the new day", s.CompletedTasks)
	}
	if s.LastUpdated != utils.Day(day2) {
		t.Errorf("LastUpdated = %s, want %s", s.LastUpdated, utils.Day(day2))
	}
}

func TestRollover_MissedDailyResetsCount(t *testing.T) {
	habits := []models.Habit{daily("a"), daily("b")}
	s := models.Streak{Count: 4, LastUpdated: utils.Day(day1), CompletedTasks: []string{"a"}}

	Rollover(&s, day2, habits)

	if s.Count != 0 {
		t.Errorf("Count = %d, want 0 after an uncovered day", s.Count)
	}
}

func TestRollover_SkippedDayResetsCount(t *testing.T) {
	habits := []models.Habit{daily("a")}
	s := models.Streak{Count: 4, LastUpdated: utils.Day(day1), CompletedTasks: []string{"a"}}

	// Two days pass: even a fully covered day1 cannot bridge the gap.
	Rollover(&s, day3, habits)

	if s.Count != 0 {
		t.Errorf("Count = %d, want 0 after a skipped day", s.Count)
	}
	if s.LastUpdated != utils.Day(day3) {
		t.Errorf("LastUpdated = %s, want %s", s.LastUpdated, utils.Day(day3))
	}
}

func TestRollover_EmptyDailySetNeverPreserves(t *testing.T) {
	habits := []models.Habit{weekly("w")}
	s := models.Streak{Count: 2, LastUpdated: utils.Day(day1)}

	Rollover(&s, day2, habits)

	if s.Count != 0 {
		t.Errorf("Count = %d, want 0 (no daily habits means nothing to earn a streak with)", s.Count)
	}
}

func TestRollover_EmptyLastUpdatedInitializes(t *testing.T) {
	s := models.Streak{}
	Rollover(&s, day1, nil)

	if s.LastUpdated != utils.Day(day1) {
		t.Errorf("LastUpdated = %q, want %s", s.LastUpdated, utils.Day(day1))
	}
	if s.Count != 0 {
		t.Errorf("Count = %d, want 0", s.Count)
	}
}

func TestRecordCompletion_IncrementsOnceWhenCovered(t *testing.T) {
	habits := []models.Habit{daily("a"), daily("b")}
	s := models.Streak{LastUpdated: utils.Day(day1)}

	RecordCompletion(&s, "a", day1, habits)
	if s.Count != 0 {
		t.Errorf("Count = %d after partial coverage, want 0", s.Count)
	}

	RecordCompletion(&s, "b", day1, habits)
	if s.Count != 1 {
		t.Errorf("Count = %d after full coverage, want 1", s.Count)
	}
	if s.LastIncremented != utils.Day(day1) {
		t.Errorf("LastIncremented = %q, want %s", s.LastIncremented, utils.Day(day1))
	}
}

func TestRecordCompletion_NoDoubleIncrementSameDay(t *testing.T) {
	habits := []models.Habit{daily("a")}
	s := models.Streak{LastUpdated: utils.Day(day1)}

	RecordCompletion(&s, "a", day1, habits)
	// Toggle off, toggle on again the same day.
	RemoveCompletion(&s, "a")
	RecordCompletion(&s, "a", day1, habits)

	// RemoveCompletion emptied the set, which resets both the count and the
	// eligibility guard, so the day earns its increment back exactly once.
	if s.Count != 1 {
		t.Errorf("Count = %d, want 1", s.Count)
	}

	RecordCompletion(&s, "a", day1, habits)
	if s.Count != 1 {
		t.Errorf("Count = %d after repeat completion, want 1 (once per day)", s.Count)
	}
}

func TestRecordCompletion_DuplicateIDNotAppended(t *testing.T) {
	habits := []models.Habit{daily("a"), daily("b")}
	s := models.Streak{LastUpdated: utils.Day(day1)}

	RecordCompletion(&s, "a", day1, habits)
	RecordCompletion(&s, "a", day1, habits)

	if len(s.CompletedTasks) != 1 {
		t.Errorf("CompletedTasks = %v, want one entry per habit", s.CompletedTasks)
	}
}

func TestRecordCompletion_AcrossDays(t *testing.T) {
	habits := []models.Habit{daily("a")}
	s := models.Streak{LastUpdated: utils.Day(day1)}

	RecordCompletion(&s, "a", day1, habits)
	Rollover(&s, day2, habits)
	RecordCompletion(&s, "a", day2, habits)

	if s.Count != 2 {
		t.Errorf("Count = %d after two covered days, want 2", s.Count)
	}
}

func TestRemoveCompletion_PartialSetKeepsCount(t *testing.T) {
	s := models.Streak{
		Count:          3,
		LastUpdated:    utils.Day(day1),
		CompletedTasks: []string{"a", "b"},
	}

	RemoveCompletion(&s, "a")

	if s.Count != 3 {
		t.Errorf("Count = %d, want 3 while other completions remain", s.Count)
	}
	if len(s.CompletedTasks) != 1 || s.CompletedTasks[0] != "b" {
		t.Errorf("CompletedTasks = %v, want [b]", s.CompletedTasks)
	}
}

func TestRemoveCompletion_LastTaskResetsCount(t *testing.T) {
	s := models.Streak{
		Count:           3,
		LastUpdated:     utils.Day(day1),
		LastIncremented: utils.Day(day1),
		CompletedTasks:  []string{"a"},
	}

	RemoveCompletion(&s, "a")

	if s.Count != 0 {
		t.Errorf("Count = %d, want 0 once the day's last completion is retracted", s.Count)
	}
	if s.LastIncremented != "" {
		t.Errorf("LastIncremented = %q, want cleared so the day can qualify again", s.LastIncremented)
	}
}
