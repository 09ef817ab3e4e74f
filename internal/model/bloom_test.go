package model

import "testing"

func TestBloomLevelRoundTrip(t *testing.T) {
	for level := BloomRemember; level <= BloomCreate; level++ {
		name := level.String()
		parsed, err := ParseBloomLevel(name)
		if err != nil {
			t.Fatalf("ParseBloomLevel(%q): %v", name, err)
		}
		if parsed != level {
			t.Errorf("round trip %d -> %q -> %d", level, name, parsed)
		}
	}
}

func TestBloomLevelBounds(t *testing.T) {
	if BloomLevel(0).Valid() || BloomLevel(7).Valid() {
		t.Error("levels outside 1..6 must be invalid")
	}
	if got := BloomLevel(9).String(); got != "UNKNOWN" {
		t.Errorf("String() = %q, want UNKNOWN", got)
	}
	if _, err := ParseBloomLevel("MEMORIZE"); err == nil {
		t.Error("expected error for unknown level name")
	}
}
