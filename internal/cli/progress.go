package cli

import (
	"fmt"

	"github.com/carbonquest/carbonquest/internal/emission"
	"github.com/carbonquest/carbonquest/internal/utils"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	snap := ctx.Tracker.Snapshot()

	fmt.Printf("Habits for %s:\n\n", utils.Today())
	done := 0
	daily := 0
	for _, h := range snap.Habits {
		fmt.Printf("%s %s\n", FormatCompleted(h.Completed), h.Title)
		if h.IsDaily() {
			daily++
			if h.Completed {
				done++
			}
		}
	}

	fmt.Printf("\nDaily habits completed: %d/%d\n", done, daily)
	fmt.Printf("Total saved: %.1f kg CO₂\n", snap.TotalCO2Saved)
	fmt.Printf("Streak: %d day(s)\n", snap.Streak.Count)
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *Context) error {
	snap := ctx.Tracker.Snapshot()
	fmt.Printf("Current streak: %d day(s)\n", snap.Streak.Count)
	fmt.Printf("Completed today: %d habit(s)\n", len(snap.Streak.CompletedTasks))
	return nil
}

type HistoryCmd struct{}

func (c *HistoryCmd) Run(ctx *Context) error {
	snap := ctx.Tracker.Snapshot()
	if len(snap.History) == 0 {
		fmt.Println("No achievements completed yet.")
		return nil
	}

	for _, ev := range snap.History {
		fmt.Printf("%s  %s completed level %d  %s\n",
			ev.CompletedAt.Format("2006-01-02 15:04"), ev.Achievement.Title, ev.Level,
			describeImpact(ev.CO2Impact))
	}
	return nil
}

func describeImpact(impact float64) string {
	if impact < 0 {
		return fmt.Sprintf("(saved %.1f kg CO₂)", -impact)
	}
	return fmt.Sprintf("(produced %.1f kg CO₂)", impact)
}

// ImpactCmd is a calculator over the emission model, useful for picking habit
// quantities.
type ImpactCmd struct {
	Kind     string  `arg:"" help:"Activity kind."`
	Quantity float64 `arg:"" help:"Signed quantity."`
}

func (c *ImpactCmd) Run(ctx *Context) error {
	kind := emission.Activity(c.Kind)
	if !emission.Known(kind) {
		fmt.Printf("Unknown activity %q: contributes nothing.\n", c.Kind)
		return nil
	}
	fmt.Println(emission.Describe(kind, c.Quantity))
	return nil
}
