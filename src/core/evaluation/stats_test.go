package evaluation_test

import (
	"math"
	"testing"

	"hydrorag/src/core/evaluation"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single", values: []float64{0.6}, want: 0.6},
		{name: "several", values: []float64{1, 2, 3, 4}, want: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluation.Mean(tt.values); !almostEqual(got, tt.want) {
				t.Errorf("Mean(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := evaluation.StdDev(values); !almostEqual(got, 2) {
		t.Errorf("StdDev(%v) = %v, want 2", values, got)
	}
	if got := evaluation.StdDev([]float64{5}); got != 0 {
		t.Errorf("StdDev of one value = %v, want 0", got)
	}
	if got := evaluation.StdDev([]float64{3, 3, 3}); got != 0 {
		t.Errorf("StdDev of constant values = %v, want 0", got)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := evaluation.CoefficientOfVariation(values); !almostEqual(got, 0.4) {
		t.Errorf("CoefficientOfVariation(%v) = %v, want 0.4", values, got)
	}
	if got := evaluation.CoefficientOfVariation([]float64{0, 0}); got != 0 {
		t.Errorf("CoefficientOfVariation at zero mean = %v, want 0", got)
	}
}

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "the water balance", b: "the water balance", want: 1},
		{name: "disjoint", a: "alpha beta", b: "gamma delta", want: 0},
		{name: "half overlap", a: "a b c", b: "b c d", want: 0.5},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "something", b: "", want: 0},
		{name: "case and punctuation ignored", a: "Water, balance!", b: "water balance", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluation.JaccardSimilarity(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("JaccardSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 0, 2}, b: []float32{1, 0, 2}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "length mismatch", a: []float32{1, 0}, b: []float32{1}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluation.CosineSimilarity(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("CosineSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
