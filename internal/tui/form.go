package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/carbonquest/carbonquest/internal/constants"
	"github.com/carbonquest/carbonquest/internal/emission"
	"github.com/carbonquest/carbonquest/internal/models"
)

// NewHabitForm builds the add-habit form bound to the given form model.
func NewHabitForm(f *HabitFormModel) *huh.Form {
	kindOptions := make([]huh.Option[string], 0)
	for _, a := range emission.Activities() {
		kindOptions = append(kindOptions, huh.NewOption(emission.Name(a), string(a)))
	}

	freqOptions := make([]huh.Option[string], 0)
	for _, freq := range constants.Frequencies {
		freqOptions = append(freqOptions, huh.NewOption(string(freq), string(freq)))
	}

	catOptions := make([]huh.Option[string], 0)
	for _, cat := range constants.Categories {
		catOptions = append(catOptions, huh.NewOption(string(cat), string(cat)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&f.Title),
			huh.NewSelect[string]().
				Title("Activity").
				Options(kindOptions...).
				Value(&f.Kind),
			huh.NewInput().
				Title("Quantity").
				Description("Signed quantity per completion; sign picks the green direction (e.g. -5 for 5 km of driving avoided)").
				Value(&f.Quantity),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(freqOptions...).
				Value(&f.Frequency),
			huh.NewSelect[string]().
				Title("Category").
				Options(catOptions...).
				Value(&f.Category),
			huh.NewInput().
				Title("Description").
				Value(&f.Description),
		),
	)
}

// ParseHabitForm converts form values into a habit. Quantity parsing failures
// surface as a zero quantity, which validation rejects.
func ParseHabitForm(f *HabitFormModel) models.Habit {
	qty, _ := strconv.ParseFloat(strings.TrimSpace(f.Quantity), 64)
	return models.Habit{
		Title:       strings.TrimSpace(f.Title),
		Kind:        emission.Activity(f.Kind),
		Quantity:    qty,
		Frequency:   constants.Frequency(f.Frequency),
		Category:    constants.Category(f.Category),
		Description: strings.TrimSpace(f.Description),
	}
}
