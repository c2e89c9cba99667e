package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/carbonquest/carbonquest/internal/achievements"
	"github.com/carbonquest/carbonquest/internal/constants"
	"github.com/carbonquest/carbonquest/internal/emission"
	"github.com/carbonquest/carbonquest/internal/models"
	"github.com/carbonquest/carbonquest/internal/utils"
)

// Seed builds the fresh-install snapshot: the starter habit set and the
// level-1 achievement catalog.
func Seed(now time.Time) models.Snapshot {
	mk := func(title string, kind emission.Activity, qty float64, freq constants.Frequency, cat constants.Category, desc string) models.Habit {
		return models.Habit{
			ID:          uuid.New().String(),
			Title:       title,
			Kind:        kind,
			Quantity:    qty,
			Frequency:   freq,
			Category:    cat,
			Description: desc,
			CreatedAt:   now,
		}
	}

	return models.Snapshot{
		Habits: []models.Habit{
			mk("Bike to work", emission.ActivityCar, -5, constants.FrequencyDaily, constants.CategoryTransport,
				"Cycle instead of driving 5 km"),
			mk("Vegetarian lunch", emission.ActivityVegetarianMeal, 1, constants.FrequencyDaily, constants.CategoryFood,
				"Choose a plant-based meal"),
			mk("Recycle paper and plastic", emission.ActivityRecycling, 1, constants.FrequencyDaily, constants.CategoryRecycling,
				"Sort 1 kg of household waste"),
			mk("Short shower", emission.ActivityWater, 50, constants.FrequencyDaily, constants.CategoryWater,
				"Save 50 liters of water"),
			mk("Plant a tree", emission.ActivityTreePlanted, 1, constants.FrequencyMonthly, constants.CategoryOther,
				"Plant one tree in your neighborhood"),
		},
		Achievements: achievements.Seed(),
		Streak:       models.Streak{LastUpdated: utils.Day(now)},
	}
}
