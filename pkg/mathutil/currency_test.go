package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Nearly two cents", 0.019, 0.02},
		{"Monthly mortgage", 1438.9161, 1438.92},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{79.1, 79},
		{79.5, 80},
		{79.49, 79},
		{0, 0},
		{-0.5, 0},
		{100, 100},
	}

	for _, tt := range tests {
		if got := RoundHalfUp(tt.input); got != tt.expected {
			t.Errorf("RoundHalfUp(%v) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, expected 0", got)
	}
	if got := Mean([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("Mean() = %v, expected 2.5", got)
	}
}

func TestApplyPercentage(t *testing.T) {
	if got := ApplyPercentage(300000, 1.2); !WithinTolerance(got, 3600, 1e-9) {
		t.Errorf("ApplyPercentage(300000, 1.2) = %v, expected 3600", got)
	}
	if got := ApplyPercentage(2000, 0); got != 0 {
		t.Errorf("ApplyPercentage(2000, 0) = %v, expected 0", got)
	}
}
