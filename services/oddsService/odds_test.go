package oddsService

import (
	"math"
	"testing"
)

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		american int
		expected float64
	}{
		{"even money", 100, 2.0},
		{"plus 150", 150, 2.5},
		{"plus 200", 200, 3.0},
		{"minus 110", -110, 1.0 + 100.0/110.0},
		{"minus 150", -150, 1.0 + 100.0/150.0},
		{"minus 200", -200, 1.5},
		{"long shot", 10000, 101.0},
		{"heavy favorite", -10000, 1.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDecimal(tt.american)
			if err != nil {
				t.Fatalf("unexpected error for %d: %v", tt.american, err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ToDecimal(%d): expected %v, got %v", tt.american, tt.expected, got)
			}
		})
	}
}

func TestToDecimalRejectsShortOdds(t *testing.T) {
	for _, odds := range []int{0, 1, -1, 50, -50, 99, -99} {
		_, err := ToDecimal(odds)
		assertEqual(t, ErrInvalidOdds, err, "odds inside (-100, 100) must be rejected")
	}

	// Boundary values are valid.
	for _, odds := range []int{100, -100} {
		if _, err := ToDecimal(odds); err != nil {
			t.Errorf("ToDecimal(%d): unexpected error %v", odds, err)
		}
	}
}

func TestToAmericanRejectsInvalidPrice(t *testing.T) {
	for _, price := range []float64{1.0, 0.5, 0.0, -2.0} {
		_, err := ToAmerican(price)
		assertEqual(t, ErrInvalidPrice, err, "price <= 1.0 must be rejected")
	}
}

// Round trip over every quotable odds value: conversion there and back
// must land within 1 of the original. -100 is excluded: it is the same
// price as +100 (decimal 2.0) and normalizes to the positive form.
func TestRoundTrip(t *testing.T) {
	for odds := 100; odds <= 10000; odds++ {
		candidates := []int{odds, -odds}
		if odds == 100 {
			candidates = []int{odds}
		}
		for _, o := range candidates {
			price, err := ToDecimal(o)
			if err != nil {
				t.Fatalf("ToDecimal(%d): %v", o, err)
			}
			back, err := ToAmerican(price)
			if err != nil {
				t.Fatalf("ToAmerican(%v) for odds %d: %v", price, o, err)
			}
			if diff := back - o; diff > 1 || diff < -1 {
				t.Fatalf("round trip %d -> %v -> %d drifted by %d", o, price, back, diff)
			}
		}
	}
}

func TestCombineLegs(t *testing.T) {
	_, err := CombineLegs(nil)
	assertEqual(t, ErrEmptyLegSet, err, "empty leg set must be rejected")

	single, err := CombineLegs([]float64{2.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertEqual(t, 2.5, single, "single leg combines to itself")
}

func TestCombineLegsOrderIndependent(t *testing.T) {
	legs := []float64{1.5, 2.0, 1.9091, 3.25}
	permutations := [][]float64{
		{1.5, 2.0, 1.9091, 3.25},
		{3.25, 1.9091, 2.0, 1.5},
		{2.0, 3.25, 1.5, 1.9091},
	}

	want, err := CombineLegs(legs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, perm := range permutations {
		got, err := CombineLegs(perm)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("combination is order dependent: %v vs %v", got, want)
		}
	}

	// Associativity: combining a partial combination with the rest
	// matches combining everything at once.
	left, _ := CombineLegs(legs[:2])
	both, _ := CombineLegs([]float64{left, legs[2], legs[3]})
	if math.Abs(both-want) > 1e-9 {
		t.Errorf("combination is not associative: %v vs %v", both, want)
	}
}

// The worked example from the slip format docs: -150 and +200 legs
// combine to decimal 5.0, displayed as +400.
func TestParlayScenario(t *testing.T) {
	p1, err := ToDecimal(-150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p1-1.6667) > 0.0001 {
		t.Errorf("expected -150 to convert to ~1.6667, got %v", p1)
	}

	combined, err := CombineAmerican([]int{-150, 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(combined-5.0) > 1e-9 {
		t.Errorf("expected combined price 5.0, got %v", combined)
	}

	american, err := ToAmerican(combined)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertEqual(t, 400, american, "combined price renders as +400")
	assertEqual(t, "+400", FormatAmerican(american), "formatted with explicit sign")
}

func TestCombineAmericanRejectsBadLeg(t *testing.T) {
	_, err := CombineAmerican([]int{-150, 50})
	assertEqual(t, ErrInvalidOdds, err, "a malformed leg fails the whole combination")

	_, err = CombineAmerican(nil)
	assertEqual(t, ErrEmptyLegSet, err, "empty input rejected")
}
