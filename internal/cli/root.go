package cli

import (
	"fmt"
	"strings"

	"github.com/carbonquest/carbonquest/internal/models"
	"github.com/carbonquest/carbonquest/internal/progress"
	"github.com/carbonquest/carbonquest/internal/storage"
)

// Context carries the storage provider and the progress tracker to every
// command's Run method.
type Context struct {
	Store   storage.Provider
	Tracker *progress.Tracker
}

// FindHabit resolves a habit by exact title first, then by ID prefix.
func FindHabit(snap models.Snapshot, ref string) (models.Habit, error) {
	for _, h := range snap.Habits {
		if h.Title == ref {
			return h, nil
		}
	}
	var match models.Habit
	found := 0
	for _, h := range snap.Habits {
		if strings.HasPrefix(h.ID, ref) {
			match = h
			found++
		}
	}
	switch found {
	case 1:
		return match, nil
	case 0:
		return models.Habit{}, fmt.Errorf("habit %q not found", ref)
	default:
		return models.Habit{}, fmt.Errorf("habit reference %q is ambiguous", ref)
	}
}

// FormatCompleted renders the completion checkbox used in list output.
func FormatCompleted(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
