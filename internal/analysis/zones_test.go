package analysis

import (
	"errors"
	"strings"
	"testing"
)

func TestCalculateZones(t *testing.T) {
	tests := []struct {
		name          string
		age           int
		restingHR     int
		maxHR         int
		recommendedHR int
		ranges        [ZoneCount]string
	}{
		{
			name:          "age 30 resting 70",
			age:           30,
			restingHR:     70,
			maxHR:         190,
			recommendedHR: 130,
			ranges:        [ZoneCount]string{"70 ~ 114", "114 ~ 133", "133 ~ 152", "152 ~ 171", "171 ~ 190"},
		},
		{
			name:          "age 40 - 180*0.7 truncates to 125",
			age:           40,
			restingHR:     60,
			maxHR:         180,
			recommendedHR: 120,
			ranges:        [ZoneCount]string{"60 ~ 108", "108 ~ 125", "125 ~ 144", "144 ~ 162", "162 ~ 180"},
		},
		{
			name:          "age 25 - half values truncated",
			age:           25,
			restingHR:     55,
			maxHR:         195,
			recommendedHR: 125,
			ranges:        [ZoneCount]string{"55 ~ 117", "117 ~ 136", "136 ~ 156", "156 ~ 175", "175 ~ 195"},
		},
		{
			name:          "odd sum truncates recommended",
			age:           45,
			restingHR:     64,
			maxHR:         175,
			recommendedHR: 119, // 239/2
			ranges:        [ZoneCount]string{"64 ~ 105", "105 ~ 122", "122 ~ 140", "140 ~ 157", "157 ~ 175"},
		},
		{
			name:          "age 1",
			age:           1,
			restingHR:     100,
			maxHR:         219,
			recommendedHR: 159,
			ranges:        [ZoneCount]string{"100 ~ 131", "131 ~ 153", "153 ~ 175", "175 ~ 197", "197 ~ 219"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateZones(tt.age, tt.restingHR)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.MaxHR != tt.maxHR {
				t.Errorf("MaxHR = %d, want %d", result.MaxHR, tt.maxHR)
			}
			if result.RecommendedHR != tt.recommendedHR {
				t.Errorf("RecommendedHR = %d, want %d", result.RecommendedHR, tt.recommendedHR)
			}
			for i, z := range result.Zones {
				if z.Number != i+1 {
					t.Errorf("Zones[%d].Number = %d, want %d", i, z.Number, i+1)
				}
				if z.Range() != tt.ranges[i] {
					t.Errorf("%s = %q, want %q", z.Label(), z.Range(), tt.ranges[i])
				}
			}
		})
	}
}

func TestCalculateZonesRecommendedFormula(t *testing.T) {
	for age := 1; age <= 120; age++ {
		for restingHR := 1; restingHR <= 220; restingHR++ {
			result, err := CalculateZones(age, restingHR)
			if err != nil {
				t.Fatalf("CalculateZones(%d, %d): %v", age, restingHR, err)
			}
			want := ((220 - age) + restingHR) / 2
			if result.RecommendedHR != want {
				t.Fatalf("CalculateZones(%d, %d).RecommendedHR = %d, want %d", age, restingHR, result.RecommendedHR, want)
			}
			again, _ := CalculateZones(age, restingHR)
			if again != result {
				t.Fatalf("CalculateZones(%d, %d) not deterministic", age, restingHR)
			}
		}
	}
}

func TestCalculateZonesBoundsShared(t *testing.T) {
	result, err := CalculateZones(35, 58)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Zones[0].Low != 58 {
		t.Errorf("Zone 1 low = %d, want resting HR 58", result.Zones[0].Low)
	}
	if result.Zones[ZoneCount-1].High != result.MaxHR {
		t.Errorf("Zone 5 high = %d, want max HR %d", result.Zones[ZoneCount-1].High, result.MaxHR)
	}
	for i := 1; i < ZoneCount; i++ {
		if result.Zones[i].Low != result.Zones[i-1].High {
			t.Errorf("Zone %d low %d != Zone %d high %d", i+1, result.Zones[i].Low, i, result.Zones[i-1].High)
		}
	}
}

func TestMonotonic(t *testing.T) {
	// Typical inputs (resting below 60% of max) must be monotonic
	for age := 1; age <= 120; age++ {
		maxHR := MaxHeartRate(age)
		for restingHR := 30; restingHR <= int(float64(maxHR)*0.6); restingHR++ {
			result, _ := CalculateZones(age, restingHR)
			if !result.Monotonic() {
				t.Fatalf("CalculateZones(%d, %d) boundaries not monotonic: %v", age, restingHR, result.Boundaries())
			}
		}
	}

	// Resting above the 60% boundary breaks Zone 1
	result, err := CalculateZones(30, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Monotonic() {
		t.Errorf("expected non-monotonic boundaries for resting 150, got %v", result.Boundaries())
	}
}

func TestCalculateZonesInvalid(t *testing.T) {
	tests := []struct {
		name      string
		age       int
		restingHR int
	}{
		{"zero age", 0, 70},
		{"negative age", -5, 70},
		{"zero resting", 30, 0},
		{"negative resting", 30, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateZones(tt.age, tt.restingHR)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		ageText       string
		restingText   string
		expectError   bool
		errContains   string
		recommendedHR int
	}{
		{name: "valid", ageText: "30", restingText: "70", recommendedHR: 130},
		{name: "explicit plus sign", ageText: "+30", restingText: "70", recommendedHR: 130},
		{name: "non-numeric age", ageText: "abc", restingText: "70", expectError: true, errContains: "age"},
		{name: "non-numeric resting", ageText: "30", restingText: "seventy", expectError: true, errContains: "resting"},
		{name: "empty age", ageText: "", restingText: "70", expectError: true, errContains: "age"},
		{name: "decimal resting", ageText: "30", restingText: "70.5", expectError: true, errContains: "resting"},
		{name: "surrounding whitespace", ageText: " 30", restingText: "70", expectError: true, errContains: "age"},
		{name: "zero age", ageText: "0", restingText: "70", expectError: true, errContains: "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Calculate(tt.ageText, tt.restingText)
			if tt.expectError {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("err = %v, want ErrInvalidInput", err)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				if result != (ZoneResult{}) {
					t.Errorf("expected zero result on error, got %+v", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.RecommendedHR != tt.recommendedHR {
				t.Errorf("RecommendedHR = %d, want %d", result.RecommendedHR, tt.recommendedHR)
			}
		})
	}
}

func TestSortedZonesAndTable(t *testing.T) {
	result, err := CalculateZones(30, 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Zone 1", "Zone 2", "Zone 3", "Zone 4", "Zone 5"}
	sorted := result.SortedZones()
	if len(sorted) != len(want) {
		t.Fatalf("len(SortedZones()) = %d, want %d", len(sorted), len(want))
	}
	for i, z := range sorted {
		if z.Label() != want[i] {
			t.Errorf("SortedZones()[%d] = %q, want %q", i, z.Label(), want[i])
		}
	}

	table := result.Table()
	if len(table) != ZoneCount {
		t.Fatalf("len(Table()) = %d, want %d", len(table), ZoneCount)
	}
	if table["Zone 3"] != "133 ~ 152" {
		t.Errorf("Table()[\"Zone 3\"] = %q, want %q", table["Zone 3"], "133 ~ 152")
	}
}

func TestBoundaries(t *testing.T) {
	result, _ := CalculateZones(30, 70)
	want := []float64{70, 114, 133, 152, 171, 190}
	got := result.Boundaries()
	if len(got) != len(want) {
		t.Fatalf("len(Boundaries()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Boundaries()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRecalculateReplacesResult(t *testing.T) {
	first, _ := CalculateZones(30, 70)
	second, _ := CalculateZones(60, 50)
	if second.MaxHR != 160 || second.RecommendedHR != 105 {
		t.Errorf("second = %+v, want MaxHR 160 RecommendedHR 105", second)
	}
	if second.Zones[0].Low != 50 || second.Zones[4].High != 160 {
		t.Errorf("second zones leaked state from first (%+v): %+v", first.Zones, second.Zones)
	}
}

func TestBoundaryWarning(t *testing.T) {
	tests := []struct {
		name        string
		age         int
		restingHR   int
		errContains string
	}{
		{name: "typical inputs", age: 30, restingHR: 70},
		{name: "resting above zone 2 floor", age: 30, restingHR: 150, errContains: "resting heart rate"},
		{name: "age 220 leaves zero max", age: 220, restingHR: 60, errContains: "max heart rate"},
		{name: "age over 220", age: 230, restingHR: 60, errContains: "max heart rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateZones(tt.age, tt.restingHR)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			warning := result.BoundaryWarning()
			if tt.errContains == "" {
				if warning != "" {
					t.Errorf("BoundaryWarning() = %q, want none", warning)
				}
				return
			}
			if !strings.Contains(warning, tt.errContains) {
				t.Errorf("BoundaryWarning() = %q, should contain %q", warning, tt.errContains)
			}
		})
	}
}
