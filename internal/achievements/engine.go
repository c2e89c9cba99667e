// Package achievements implements the leveled achievement engine: seeding,
// the canonical full-rescan progress recompute, and level-up mechanics.
package achievements

import (
	"fmt"
	"math"
	"time"

	"github.com/carbonquest/carbonquest/internal/emission"
	"github.com/carbonquest/carbonquest/internal/models"
)

// Achievement titles are stable keys.
const (
	TitleCyclingChampion = "Cycling Champion"
	TitleWasteWarrior    = "Waste Warrior"
	TitleWaterSaver      = "Water Saver"
	TitleGreenDiet       = "Green Diet"
	TitleTreeGuardian    = "Tree Guardian"
)

// activityByTitle maps each achievement to the activity kind that feeds it.
// Activity kinds with no entry here contribute to no achievement.
var activityByTitle = map[string]emission.Activity{
	TitleCyclingChampion: emission.ActivityCar,
	TitleWasteWarrior:    emission.ActivityRecycling,
	TitleWaterSaver:      emission.ActivityWater,
	TitleGreenDiet:       emission.ActivityVegetarianMeal,
	TitleTreeGuardian:    emission.ActivityTreePlanted,
}

// ActivityFor returns the activity kind feeding the titled achievement.
func ActivityFor(title string) (emission.Activity, bool) {
	a, ok := activityByTitle[title]
	return a, ok
}

func describe(title string, requirement int, unit string) string {
	switch title {
	case TitleCyclingChampion:
		return fmt.Sprintf("Skip the car for %d %s", requirement, unit)
	case TitleWasteWarrior:
		return fmt.Sprintf("Recycle %d %s of waste", requirement, unit)
	case TitleWaterSaver:
		return fmt.Sprintf("Save %d %s of water", requirement, unit)
	case TitleGreenDiet:
		return fmt.Sprintf("Eat %d vegetarian %ss", requirement, unit)
	case TitleTreeGuardian:
		return fmt.Sprintf("Plant %d %ss", requirement, unit)
	default:
		return fmt.Sprintf("Reach %d %s", requirement, unit)
	}
}

func seed(title, icon string, requirement int, locked bool) models.Achievement {
	unit := emission.Unit(activityByTitle[title])
	return models.Achievement{
		Title:              title,
		Description:        describe(title, requirement, unit),
		Icon:               icon,
		InitialRequirement: requirement,
		Requirement:        requirement,
		Unit:               unit,
		Locked:             locked,
		Level:              1,
	}
}

// Seed returns the level-1 achievement catalog. All but the first are locked.
func Seed() []models.Achievement {
	return []models.Achievement{
		seed(TitleCyclingChampion, "bike", 5, false),
		seed(TitleWasteWarrior, "recycle", 10, true),
		seed(TitleWaterSaver, "droplet", 100, true),
		seed(TitleGreenDiet, "leaf", 7, true),
		seed(TitleTreeGuardian, "tree", 3, true),
	}
}

// Recompute resets every achievement's progress and re-derives it from the
// full set of currently completed habits. Deliberately a full rescan, not an
// incremental delta: it stays consistent through edits and deletions without
// tracking per-habit contributions, and it is idempotent. Each completed habit
// adds round(|quantity|) units to the achievement fed by its activity kind.
func Recompute(achievements []models.Achievement, habits []models.Habit) {
	byActivity := make(map[emission.Activity]*models.Achievement)
	for i := range achievements {
		achievements[i].Progress = 0
		if a, ok := activityByTitle[achievements[i].Title]; ok {
			byActivity[a] = &achievements[i]
		}
	}
	for _, h := range habits {
		if !h.Completed {
			continue
		}
		if target, ok := byActivity[h.Kind]; ok {
			target.Progress += int(math.Round(math.Abs(h.Quantity)))
		}
	}
}

// NextLevel returns the achievement replacing a just-completed one: doubled
// requirement, excess progress carried over, incremented level, unlocked.
func NextLevel(a models.Achievement, now time.Time) models.Achievement {
	next := a
	next.Requirement = a.Requirement * 2
	next.Progress = a.Progress - a.Requirement
	if next.Progress < 0 {
		next.Progress = 0
	}
	next.Level = a.Level + 1
	next.Locked = false
	next.UnlockedAt = &now
	next.Description = describe(a.Title, next.Requirement, a.Unit)
	return next
}

// LevelUps walks the achievement list and levels up every completed one,
// returning the history events recorded. The event's CO₂ impact is the
// emission-model impact of the requirement quantity, not the accrued progress.
// A single recompute can push an achievement through several levels at once.
func LevelUps(achievements []models.Achievement, now time.Time) []models.AchievementEvent {
	var events []models.AchievementEvent
	for i := range achievements {
		for achievements[i].Completed() {
			a := achievements[i]
			// Requirement units accrue in the green direction, so the impact
			// attributable to reaching them is always a saving regardless of
			// the factor's sign (5 avoided km of driving is factor(car)×(-5)).
			impact := 0.0
			if kind, ok := activityByTitle[a.Title]; ok {
				impact = -math.Abs(emission.Factor(kind)) * float64(a.Requirement)
			}
			events = append(events, models.AchievementEvent{
				Achievement: a,
				CompletedAt: now,
				Level:       a.Level,
				CO2Impact:   impact,
			})
			achievements[i] = NextLevel(a, now)
		}
	}
	return events
}
