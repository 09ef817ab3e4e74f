package model

import "fmt"

// BloomLevel classifies the cognitive demand of a task on Bloom's
// six-point taxonomy (1 = remember … 6 = create).
type BloomLevel int

const (
	BloomRemember BloomLevel = iota + 1
	BloomUnderstand
	BloomApply
	BloomAnalyze
	BloomEvaluate
	BloomCreate
)

var bloomNames = map[BloomLevel]string{
	BloomRemember:   "REMEMBER",
	BloomUnderstand: "UNDERSTAND",
	BloomApply:      "APPLY",
	BloomAnalyze:    "ANALYZE",
	BloomEvaluate:   "EVALUATE",
	BloomCreate:     "CREATE",
}

// String returns the stored name of the level, or "UNKNOWN" for values
// outside the taxonomy.
func (b BloomLevel) String() string {
	if name, ok := bloomNames[b]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether b is within the fixed taxonomy.
func (b BloomLevel) Valid() bool {
	return b >= BloomRemember && b <= BloomCreate
}

// ParseBloomLevel converts a stored level name back into a BloomLevel.
func ParseBloomLevel(name string) (BloomLevel, error) {
	for level, n := range bloomNames {
		if n == name {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown bloom level %q", name)
}
