package emission

import (
	"math"
	"testing"
)

func TestImpact_SignConvention(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		quantity float64
		want     float64
	}{
		{"driving produces", ActivityCar, 10, 2.1},
		{"avoided driving saves", ActivityCar, -5, -1.05},
		{"recycling saves", ActivityRecycling, 2, -1.4},
		{"un-recycling produces", ActivityRecycling, -2, 1.4},
		{"vegetarian meal saves", ActivityVegetarianMeal, 1, -1.5},
		{"tree planted saves", ActivityTreePlanted, 1, -21.0},
		{"zero quantity is neutral", ActivityBeef, 0, 0},
		{"unknown activity is neutral", Activity("bottled_air"), 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Impact(tt.activity, tt.quantity)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Impact(%s, %v) = %v, want %v", tt.activity, tt.quantity, got, tt.want)
			}
		})
	}
}

func TestFactor_SavingActivitiesAreNegative(t *testing.T) {
	saving := []Activity{
		ActivityRecycling, ActivityVegetarianMeal, ActivityWater,
		ActivityTreePlanted, ActivityComposting,
	}
	for _, a := range saving {
		if Factor(a) >= 0 {
			t.Errorf("Factor(%s) = %v, expected a negative (saving) factor", a, Factor(a))
		}
	}

	producing := []Activity{
		ActivityCar, ActivityBus, ActivityTrain, ActivityElectricity,
		ActivityBeef, ActivityPork, ActivityChicken,
	}
	for _, a := range producing {
		if Factor(a) <= 0 {
			t.Errorf("Factor(%s) = %v, expected a positive (producing) factor", a, Factor(a))
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		quantity float64
		want     string
	}{
		{"saving impact", ActivityCar, -5, "Driving saved 1.1 kg CO₂"},
		{"producing impact", ActivityBeef, 1, "Beef produced 27.0 kg CO₂"},
		{"zero reads as produced", ActivityCar, 0, "Driving produced 0.0 kg CO₂"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.activity, tt.quantity); got != tt.want {
				t.Errorf("Describe(%s, %v) = %q, want %q", tt.activity, tt.quantity, got, tt.want)
			}
		})
	}
}

func TestActivities_AllHaveFactors(t *testing.T) {
	for _, a := range Activities() {
		if !Known(a) {
			t.Errorf("activity %s listed but has no factor entry", a)
		}
		if Unit(a) == "" {
			t.Errorf("activity %s has no unit", a)
		}
		if Name(a) == "" {
			t.Errorf("activity %s has no display name", a)
		}
	}
}

func TestName_UnknownFallsBackToTag(t *testing.T) {
	if got := Name(Activity("jetpack")); got != "jetpack" {
		t.Errorf("Name(jetpack) = %q, want raw tag", got)
	}
}
