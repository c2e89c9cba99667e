// Package progress ties the engine together. The Tracker owns the
// authoritative state tree (habits, achievements, streak, history, totals);
// every mutation runs end to end under one lock so the full-rescan recompute
// never interleaves with another toggle.
package progress

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carbonquest/carbonquest/internal/achievements"
	"github.com/carbonquest/carbonquest/internal/constants"
	"github.com/carbonquest/carbonquest/internal/logger"
	"github.com/carbonquest/carbonquest/internal/models"
	"github.com/carbonquest/carbonquest/internal/streak"
	"github.com/carbonquest/carbonquest/internal/utils"
	"github.com/carbonquest/carbonquest/internal/validation"
)

// Persister saves the state tree after each mutation. Storage providers
// implement it; a nil persister keeps the tracker memory-only.
type Persister interface {
	SaveSnapshot(models.Snapshot) error
}

// UnlockFunc observes achievement level-ups for celebratory UI.
type UnlockFunc func(models.AchievementEvent)

type Tracker struct {
	mu        sync.Mutex
	habits    []models.Habit
	achs      []models.Achievement
	streak    models.Streak
	history   []models.AchievementEvent
	totalCO2  float64
	persister Persister
	onUnlock  []UnlockFunc

	// now is a seam for tests
	now func() time.Time
}

// New restores a tracker from a snapshot. Use Seed for a fresh install.
func New(snap models.Snapshot, p Persister) *Tracker {
	return &Tracker{
		habits:    snap.Habits,
		achs:      snap.Achievements,
		streak:    snap.Streak,
		history:   snap.History,
		totalCO2:  snap.TotalCO2Saved,
		persister: p,
		now:       time.Now,
	}
}

// Subscribe registers an observer for achievement unlock events. Observers run
// after the mutation settles, outside the state lock.
func (t *Tracker) Subscribe(fn UnlockFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onUnlock = append(t.onUnlock, fn)
}

// AddHabit validates and appends a new habit with a fresh identity.
func (t *Tracker) AddHabit(h models.Habit) (models.Habit, error) {
	if err := validation.ValidateHabit(h); err != nil {
		return models.Habit{}, err
	}

	t.mu.Lock()
	h.ID = uuid.New().String()
	h.Completed = false
	h.Stats = models.HabitStatistics{}
	h.CreatedAt = t.now()
	t.habits = append(t.habits, h)
	events := t.recomputeLocked()
	t.persistLocked()
	t.mu.Unlock()

	t.notify(events)
	return h, nil
}

// UpdateHabit replaces a habit in place, preserving its identity, statistics,
// and completion flag. A missing ID is a no-op.
func (t *Tracker) UpdateHabit(id string, h models.Habit) error {
	if err := validation.ValidateHabit(h); err != nil {
		return err
	}

	t.mu.Lock()
	i := t.indexLocked(id)
	if i < 0 {
		t.mu.Unlock()
		return nil
	}
	old := t.habits[i]
	h.ID = old.ID
	h.Completed = old.Completed
	h.Stats = old.Stats
	h.CreatedAt = old.CreatedAt
	t.habits[i] = h
	events := t.recomputeLocked()
	t.persistLocked()
	t.mu.Unlock()

	t.notify(events)
	return nil
}

// DeleteHabit removes a habit. A completed habit's CO₂ credit and streak
// membership are retracted; if it was the day's last completed task the
// streak count resets to 0.
func (t *Tracker) DeleteHabit(id string) error {
	t.mu.Lock()
	i := t.indexLocked(id)
	if i < 0 {
		t.mu.Unlock()
		return nil
	}
	wasCompleted := t.habits[i].Completed
	t.habits = append(t.habits[:i], t.habits[i+1:]...)
	if wasCompleted {
		streak.RemoveCompletion(&t.streak, id)
	}
	events := t.recomputeLocked()
	t.persistLocked()
	t.mu.Unlock()

	t.notify(events)
	return nil
}

// ToggleHabit flips a habit's completed-for-period flag. Completing updates
// statistics and the streak; un-completing does not roll them back (totals and
// achievement progress still correct themselves through the full recompute).
// A missing ID is a no-op. Returned events are one per level-up.
func (t *Tracker) ToggleHabit(id string) []models.AchievementEvent {
	t.mu.Lock()
	now := t.now()
	streak.Rollover(&t.streak, now, t.habits)

	i := t.indexLocked(id)
	if i < 0 {
		t.mu.Unlock()
		return nil
	}

	t.habits[i].Completed = !t.habits[i].Completed
	if t.habits[i].Completed {
		t.recordCompletionLocked(i, now)
	}
	events := t.recomputeLocked()
	t.persistLocked()
	t.mu.Unlock()

	t.notify(events)
	return events
}

// Recompute re-derives totals and achievement progress from current state and
// persists the result. Mutating entry points already do this; it exists for
// callers restoring or repairing external state.
func (t *Tracker) Recompute() []models.AchievementEvent {
	t.mu.Lock()
	events := t.recomputeLocked()
	t.persistLocked()
	t.mu.Unlock()

	t.notify(events)
	return events
}

// CheckDailyRollover runs the day-boundary check. Invoke at least once per
// app foreground; repeat calls within a day are no-ops.
func (t *Tracker) CheckDailyRollover() {
	t.mu.Lock()
	before := t.streak.LastUpdated
	streak.Rollover(&t.streak, t.now(), t.habits)
	if t.streak.LastUpdated != before {
		t.resetPeriodsLocked(before)
		t.recomputeLocked()
		t.persistLocked()
	}
	t.mu.Unlock()
}

// Snapshot returns a copy of the state tree for display or persistence.
func (t *Tracker) Snapshot() models.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() models.Snapshot {
	snap := models.Snapshot{
		Habits:        make([]models.Habit, len(t.habits)),
		Achievements:  make([]models.Achievement, len(t.achs)),
		History:       make([]models.AchievementEvent, len(t.history)),
		Streak:        t.streak,
		TotalCO2Saved: t.totalCO2,
	}
	copy(snap.Habits, t.habits)
	copy(snap.Achievements, t.achs)
	copy(snap.History, t.history)
	snap.Streak.CompletedTasks = append([]string(nil), t.streak.CompletedTasks...)
	return snap
}

// resetPeriodsLocked clears completed-for-period flags after a day boundary.
// Daily habits reset every day; weekly and monthly habits reset when the ISO
// week or the month changed.
func (t *Tracker) resetPeriodsLocked(previousDay string) {
	prev, err := time.Parse(constants.DateFormat, previousDay)
	if err != nil {
		prev = time.Time{}
	}
	now := t.now()
	prevYear, prevWeek := prev.ISOWeek()
	nowYear, nowWeek := now.ISOWeek()
	weekChanged := prevYear != nowYear || prevWeek != nowWeek
	monthChanged := prev.Year() != now.Year() || prev.Month() != now.Month()

	for i := range t.habits {
		switch t.habits[i].Frequency {
		case constants.FrequencyDaily:
			t.habits[i].Completed = false
		case constants.FrequencyWeekly:
			if weekChanged {
				t.habits[i].Completed = false
			}
		case constants.FrequencyMonthly:
			if monthChanged {
				t.habits[i].Completed = false
			}
		}
	}
}

func (t *Tracker) indexLocked(id string) int {
	for i := range t.habits {
		if t.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) recordCompletionLocked(i int, now time.Time) {
	h := &t.habits[i]
	streak.RecordCompletion(&t.streak, h.ID, now, t.habits)

	stats := &h.Stats
	if stats.LastCompleted != nil {
		switch utils.Day(*stats.LastCompleted) {
		case utils.Day(now):
			// repeat completion same day, streak unchanged
		case utils.Yesterday(now):
			stats.Streak++
		default:
			stats.Streak = 1
		}
	} else {
		stats.Streak = 1
	}
	completedAt := now
	stats.LastCompleted = &completedAt
	stats.CompletionCount++
	stats.CompletionHistory = append(stats.CompletionHistory, now)
	stats.TotalCO2Saved += math.Abs(h.Impact())
}

// recomputeLocked re-derives total saved CO₂ and achievement progress from the
// full completed-habit set, then levels up any completed achievements.
func (t *Tracker) recomputeLocked() []models.AchievementEvent {
	total := 0.0
	for _, h := range t.habits {
		if h.Completed {
			total += math.Abs(h.Impact())
		}
	}
	t.totalCO2 = total

	achievements.Recompute(t.achs, t.habits)
	events := achievements.LevelUps(t.achs, t.now())
	t.history = append(t.history, events...)
	return events
}

func (t *Tracker) persistLocked() {
	if t.persister == nil {
		return
	}
	if err := t.persister.SaveSnapshot(t.snapshotLocked()); err != nil {
		logger.Warn("Failed to persist progress snapshot", "error", err)
	}
}

func (t *Tracker) notify(events []models.AchievementEvent) {
	if len(events) == 0 {
		return
	}
	t.mu.Lock()
	observers := append([]UnlockFunc(nil), t.onUnlock...)
	t.mu.Unlock()
	for _, ev := range events {
		for _, fn := range observers {
			fn(ev)
		}
	}
}
