package cli

import (
	"fmt"

	"github.com/carbonquest/carbonquest/internal/constants"
	"github.com/carbonquest/carbonquest/internal/emission"
	"github.com/carbonquest/carbonquest/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for the current period."`
}

type HabitAddCmd struct {
	Title       string  `arg:"" help:"Habit title."`
	Kind        string  `help:"Activity kind (car, bus, recycling, vegetarian_meal, water, tree_planted, ...)." required:""`
	Quantity    float64 `help:"Signed quantity per completion; sign picks the green direction (e.g. -5 km of driving avoided)." required:""`
	Frequency   string  `help:"daily, weekly, or monthly." default:"daily"`
	Category    string  `help:"transport, food, recycling, energy, water, or other." default:"other"`
	Description string  `help:"Optional free-text description." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.AddHabit(models.Habit{
		Title:       c.Title,
		Kind:        emission.Activity(c.Kind),
		Quantity:    c.Quantity,
		Frequency:   constants.Frequency(c.Frequency),
		Category:    constants.Category(c.Category),
		Description: c.Description,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", habit.Title)
	fmt.Printf("Per completion: %s\n", emission.Describe(habit.Kind, habit.Quantity))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	snap := ctx.Tracker.Snapshot()
	if len(snap.Habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range snap.Habits {
		fmt.Printf("%s %-28s %-10s %-10s %s\n",
			FormatCompleted(h.Completed), h.Title, h.Frequency, h.Category,
			emission.Describe(h.Kind, h.Quantity))
	}
	return nil
}

type HabitEditCmd struct {
	Ref         string   `arg:"" help:"Habit title or ID prefix."`
	Title       *string  `help:"New title."`
	Kind        *string  `help:"New activity kind."`
	Quantity    *float64 `help:"New signed quantity."`
	Frequency   *string  `help:"New frequency."`
	Category    *string  `help:"New category."`
	Description *string  `help:"New description."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := FindHabit(ctx.Tracker.Snapshot(), c.Ref)
	if err != nil {
		return err
	}

	if c.Title != nil {
		habit.Title = *c.Title
	}
	if c.Kind != nil {
		habit.Kind = emission.Activity(*c.Kind)
	}
	if c.Quantity != nil {
		habit.Quantity = *c.Quantity
	}
	if c.Frequency != nil {
		habit.Frequency = constants.Frequency(*c.Frequency)
	}
	if c.Category != nil {
		habit.Category = constants.Category(*c.Category)
	}
	if c.Description != nil {
		habit.Description = *c.Description
	}

	if err := ctx.Tracker.UpdateHabit(habit.ID, habit); err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", habit.Title)
	return nil
}

type HabitDeleteCmd struct {
	Ref string `arg:"" help:"Habit title or ID prefix."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := FindHabit(ctx.Tracker.Snapshot(), c.Ref)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}

type HabitToggleCmd struct {
	Ref string `arg:"" help:"Habit title or ID prefix."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	habit, err := FindHabit(ctx.Tracker.Snapshot(), c.Ref)
	if err != nil {
		return err
	}

	events := ctx.Tracker.ToggleHabit(habit.ID)
	snap := ctx.Tracker.Snapshot()
	updated, err := FindHabit(snap, habit.ID)
	if err != nil {
		return err
	}

	if updated.Completed {
		fmt.Printf("Completed %q: %s\n", updated.Title, emission.Describe(updated.Kind, updated.Quantity))
	} else {
		fmt.Printf("Unmarked %q\n", updated.Title)
	}
	fmt.Printf("Total saved: %.1f kg CO₂ · Streak: %d\n", snap.TotalCO2Saved, snap.Streak.Count)

	for _, ev := range events {
		fmt.Printf("🏆 %s reached level %d!\n", ev.Achievement.Title, ev.Level+1)
	}
	return nil
}
