package analysis

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrInvalidInput is returned when age or resting heart rate is not a positive integer
var ErrInvalidInput = errors.New("invalid input")

// ZoneCount is the number of training zones
const ZoneCount = 5

// zoneThresholds are the max HR fractions separating zones 1-5
var zoneThresholds = [ZoneCount - 1]float64{0.6, 0.7, 0.8, 0.9}

// Zone is a single heart rate training band
type Zone struct {
	Number int
	Low    int
	High   int
}

// Label returns the display label, e.g. "Zone 1"
func (z Zone) Label() string {
	return fmt.Sprintf("Zone %d", z.Number)
}

// Range returns the display range, e.g. "70 ~ 114"
func (z Zone) Range() string {
	return fmt.Sprintf("%d ~ %d", z.Low, z.High)
}

// ZoneResult is the outcome of a zone calculation
type ZoneResult struct {
	Age           int
	RestingHR     int
	MaxHR         int
	RecommendedHR int
	Zones         [ZoneCount]Zone // ascending zone order
}

// MaxHeartRate returns the age-predicted maximum heart rate
func MaxHeartRate(age int) int {
	return 220 - age
}

// CalculateZones computes the recommended heart rate and five training zones.
// Each boundary is truncated independently, so adjacent zones can disagree
// with exact arithmetic (180*0.7 truncates to 125).
func CalculateZones(age, restingHR int) (ZoneResult, error) {
	if age <= 0 {
		return ZoneResult{}, fmt.Errorf("age %d: %w", age, ErrInvalidInput)
	}
	if restingHR <= 0 {
		return ZoneResult{}, fmt.Errorf("resting heart rate %d: %w", restingHR, ErrInvalidInput)
	}

	maxHR := MaxHeartRate(age)
	result := ZoneResult{
		Age:           age,
		RestingHR:     restingHR,
		MaxHR:         maxHR,
		RecommendedHR: (maxHR + restingHR) / 2,
	}

	// bounds[0] = resting, bounds[1..4] = thresholds, bounds[5] = max
	var bounds [ZoneCount + 1]int
	bounds[0] = restingHR
	for i, p := range zoneThresholds {
		bounds[i+1] = int(float64(maxHR) * p)
	}
	bounds[ZoneCount] = maxHR

	for i := range result.Zones {
		result.Zones[i] = Zone{
			Number: i + 1,
			Low:    bounds[i],
			High:   bounds[i+1],
		}
	}

	return result, nil
}

// ParseInput parses the free-text age and resting heart rate fields
func ParseInput(ageText, restingHRText string) (age, restingHR int, err error) {
	age, err = strconv.Atoi(ageText)
	if err != nil {
		return 0, 0, fmt.Errorf("age %q: %w", ageText, ErrInvalidInput)
	}
	restingHR, err = strconv.Atoi(restingHRText)
	if err != nil {
		return 0, 0, fmt.Errorf("resting heart rate %q: %w", restingHRText, ErrInvalidInput)
	}
	return age, restingHR, nil
}

// Calculate parses both fields and computes zones
func Calculate(ageText, restingHRText string) (ZoneResult, error) {
	age, restingHR, err := ParseInput(ageText, restingHRText)
	if err != nil {
		return ZoneResult{}, err
	}
	return CalculateZones(age, restingHR)
}

// Boundaries returns the six zone boundaries from resting HR to max HR
func (r ZoneResult) Boundaries() []float64 {
	bounds := make([]float64, 0, ZoneCount+1)
	bounds = append(bounds, float64(r.Zones[0].Low))
	for _, z := range r.Zones {
		bounds = append(bounds, float64(z.High))
	}
	return bounds
}

// Monotonic reports whether zone boundaries never decrease from Zone 1 to Zone 5.
// A resting HR above 60% of max HR is the usual way to break it.
func (r ZoneResult) Monotonic() bool {
	prev := r.Zones[0].Low
	for _, z := range r.Zones {
		if z.Low < prev || z.High < z.Low {
			return false
		}
		prev = z.High
	}
	return true
}

// BoundaryWarning explains why the boundaries are not monotonic, or returns
// "" when they are
func (r ZoneResult) BoundaryWarning() string {
	switch {
	case r.Monotonic():
		return ""
	case r.MaxHR <= 0:
		return fmt.Sprintf("age %d leaves no positive max heart rate; zone boundaries are meaningless", r.Age)
	default:
		return "resting heart rate is above the Zone 2 floor; zone boundaries overlap"
	}
}

// Table returns the zones keyed by label
func (r ZoneResult) Table() map[string]string {
	table := make(map[string]string, ZoneCount)
	for _, z := range r.Zones {
		table[z.Label()] = z.Range()
	}
	return table
}

// SortedZones returns the zones ordered by label
func (r ZoneResult) SortedZones() []Zone {
	zones := make([]Zone, len(r.Zones))
	copy(zones, r.Zones[:])
	sort.Slice(zones, func(i, j int) bool {
		return zones[i].Label() < zones[j].Label()
	})
	return zones
}
