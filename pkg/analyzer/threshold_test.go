package analyzer

import (
	"testing"
)

func TestClassifierBoundaries(t *testing.T) {
	c := Classifier{
		Thresholds: []Threshold{
			{Cutoff: 5, Label: "critical"},
			{Cutoff: 10, Label: "low"},
			{Cutoff: 25, Label: "warning"},
		},
		Terminal: "healthy",
	}

	tests := []struct {
		value float64
		want  string
	}{
		{0, "critical"},
		{5, "critical"},
		{5.1, "low"},
		{10, "low"},
		{10.1, "warning"},
		{25, "warning"},
		{25.1, "healthy"},
		{100, "healthy"},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.value); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestClassifierMonotonic(t *testing.T) {
	c := classifier("diskFreePercent")
	if len(c.Thresholds) == 0 {
		t.Fatal("expected embedded diskFreePercent classifier")
	}

	// labels must only move forward as the value grows
	rank := map[string]int{}
	order := 0
	last := -1
	for v := 0.0; v <= 100; v += 0.5 {
		label := c.Classify(v)
		if _, ok := rank[label]; !ok {
			rank[label] = order
			order++
		}
		if rank[label] < last {
			t.Fatalf("classification regressed at %v: %q", v, label)
		}
		last = rank[label]
	}
}

func TestClassifierUnknownName(t *testing.T) {
	c := classifier("noSuchClassifier")
	if got := c.Classify(42); got != "unknown" {
		t.Errorf("Classify on unknown classifier = %q, want unknown", got)
	}
}
