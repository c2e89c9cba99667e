package emission

import (
	"fmt"
	"math"
)

// Activity identifies a kind of loggable action with a known CO₂ factor.
type Activity string

const (
	ActivityCar            Activity = "car"
	ActivityBus            Activity = "bus"
	ActivityTrain          Activity = "train"
	ActivityElectricity    Activity = "electricity"
	ActivityRecycling      Activity = "recycling"
	ActivityBeef           Activity = "beef"
	ActivityPork           Activity = "pork"
	ActivityChicken        Activity = "chicken"
	ActivityVegetarianMeal Activity = "vegetarian_meal"
	ActivityWater          Activity = "water"
	ActivityTreePlanted    Activity = "tree_planted"
	ActivityComposting     Activity = "composting"
)

type factorInfo struct {
	// Factor is kg CO₂ per unit. Saving activities carry a negative factor;
	// no caller applies abs() to a factor.
	Factor float64
	Unit   string
	Name   string
}

// Illustrative emission factors, not a scientific model.
var factors = map[Activity]factorInfo{
	ActivityCar:            {0.21, "km", "Driving"},
	ActivityBus:            {0.089, "km", "Bus ride"},
	ActivityTrain:          {0.041, "km", "Train ride"},
	ActivityElectricity:    {0.475, "kWh", "Electricity"},
	ActivityRecycling:      {-0.7, "kg", "Recycling"},
	ActivityBeef:           {27.0, "kg", "Beef"},
	ActivityPork:           {12.1, "kg", "Pork"},
	ActivityChicken:        {6.9, "kg", "Chicken"},
	ActivityVegetarianMeal: {-1.5, "meal", "Vegetarian meal"},
	ActivityWater:          {-0.001, "L", "Water saved"},
	ActivityTreePlanted:    {-21.0, "tree", "Tree planted"},
	ActivityComposting:     {-0.26, "kg", "Composting"},
}

// Activities returns all known activity kinds in a stable order.
func Activities() []Activity {
	return []Activity{
		ActivityCar, ActivityBus, ActivityTrain, ActivityElectricity,
		ActivityRecycling, ActivityBeef, ActivityPork, ActivityChicken,
		ActivityVegetarianMeal, ActivityWater, ActivityTreePlanted,
		ActivityComposting,
	}
}

// Known reports whether the activity has a registered factor.
func Known(a Activity) bool {
	_, ok := factors[a]
	return ok
}

// Factor returns the signed kg CO₂ per unit for the activity.
// Unknown activities are a neutral zero contribution, never an error.
func Factor(a Activity) float64 {
	return factors[a].Factor
}

// Unit returns the unit label for the activity ("km", "kg", ...).
func Unit(a Activity) string {
	return factors[a].Unit
}

// Name returns the display name for the activity, falling back to the raw tag.
func Name(a Activity) string {
	if info, ok := factors[a]; ok {
		return info.Name
	}
	return string(a)
}

// Impact returns the signed kg CO₂ for quantity units of the activity.
// Negative is "saved", positive is "produced".
func Impact(a Activity, quantity float64) float64 {
	return Factor(a) * quantity
}

// Describe renders a human-readable impact line with one decimal place,
// e.g. "Driving saved 1.1 kg CO₂" or "Beef produced 27.0 kg CO₂".
func Describe(a Activity, quantity float64) string {
	impact := Impact(a, quantity)
	if impact < 0 {
		return fmt.Sprintf("%s saved %.1f kg CO₂", Name(a), math.Abs(impact))
	}
	return fmt.Sprintf("%s produced %.1f kg CO₂", Name(a), impact)
}
