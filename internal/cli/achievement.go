package cli

import (
	"fmt"
	"strings"
)

type AchievementsCmd struct {
	All bool `help:"Include locked achievements."`
}

func (c *AchievementsCmd) Run(ctx *Context) error {
	snap := ctx.Tracker.Snapshot()

	shown := 0
	for _, a := range snap.Achievements {
		if a.Locked && !c.All {
			continue
		}
		shown++

		status := ""
		if a.Locked {
			status = " [LOCKED]"
		}
		fmt.Printf("%s (level %d)%s\n", a.Title, a.Level, status)
		fmt.Printf("  %s\n", a.Description)
		fmt.Printf("  %s %d/%d %s (%.0f%%)\n",
			progressBar(a.Percent(), 20), a.DisplayProgress(), a.Requirement, a.Unit, a.Percent()*100)
	}

	if shown == 0 {
		fmt.Println("No unlocked achievements yet. Use --all to see what's ahead.")
	}
	return nil
}

func progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
