package cli

import (
	"fmt"
	"time"

	"github.com/carbonquest/carbonquest/internal/models"
	"github.com/carbonquest/carbonquest/internal/progress"
	"github.com/carbonquest/carbonquest/internal/utils"
	"github.com/carbonquest/carbonquest/internal/validation"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(progress.Seed(time.Now())); err != nil {
		return err
	}
	fmt.Printf("Initialized storage at %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Seeded starter habits and the achievement catalog. Run 'carbonquest today' to begin.")
	return nil
}

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	check := func(name string, err error) {
		if err != nil {
			fmt.Printf("❌ %s: FAIL\n   Error: %v\n", name, err)
			hasError = true
		} else {
			fmt.Printf("✓ %s: OK\n", name)
		}
	}

	if err := ctx.Store.Load(); err != nil {
		check("Storage reachable", err)
		return fmt.Errorf("diagnostics failed")
	}
	check("Storage reachable", nil)

	snap, err := ctx.Store.LoadSnapshot()
	check("Snapshot loads", err)
	if err == nil {
		check("Habit integrity", checkHabits(snap))
		check("Achievement integrity", checkAchievements(snap))
		check("Streak integrity", checkStreak(snap))
	}
	check("Clock/timezone", checkClock())

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkHabits(snap models.Snapshot) error {
	ids := make(map[string]bool)
	for _, h := range snap.Habits {
		if err := validation.ValidateHabit(h); err != nil {
			return fmt.Errorf("habit %q: %w", h.Title, err)
		}
		if ids[h.ID] {
			return fmt.Errorf("duplicate habit ID %s", h.ID)
		}
		ids[h.ID] = true
	}
	return nil
}

func checkAchievements(snap models.Snapshot) error {
	titles := make(map[string]bool)
	for _, a := range snap.Achievements {
		if a.Requirement <= 0 {
			return fmt.Errorf("achievement %q has non-positive requirement %d", a.Title, a.Requirement)
		}
		if a.Level < 1 {
			return fmt.Errorf("achievement %q has invalid level %d", a.Title, a.Level)
		}
		if titles[a.Title] {
			return fmt.Errorf("duplicate achievement title %q", a.Title)
		}
		titles[a.Title] = true
	}
	return nil
}

func checkStreak(snap models.Snapshot) error {
	if snap.Streak.Count < 0 {
		return fmt.Errorf("negative streak count %d", snap.Streak.Count)
	}
	if snap.Streak.LastUpdated != "" && !utils.ValidDay(snap.Streak.LastUpdated) {
		return fmt.Errorf("invalid streak date %q", snap.Streak.LastUpdated)
	}
	known := make(map[string]bool)
	for _, h := range snap.Habits {
		known[h.ID] = true
	}
	for _, id := range snap.Streak.CompletedTasks {
		if !known[id] {
			return fmt.Errorf("streak references unknown habit %s", id)
		}
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %v", now)
	}
	return nil
}
