package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "", want: 0},
		{in: "   ", want: 0},
		{in: "14", want: 14},
		{in: " 9.50 ", want: 9.5},
		{in: "-3.25", want: -3.25},
		{in: "12,5", want: 0},
		{in: "abc", want: 0},
		{in: "NaN", want: 0},
		{in: "Inf", want: 0},
		{in: "15000.00", want: 15000},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumeric(tt.in))
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name        string
		part, whole int
		want        int
	}{
		{name: "zero whole", part: 3, whole: 0, want: 0},
		{name: "negative whole", part: 3, whole: -1, want: 0},
		{name: "zero part", part: 0, whole: 30, want: 0},
		{name: "rounded down", part: 1, whole: 30, want: 3},
		{name: "rounded up", part: 2, whole: 30, want: 7},
		{name: "half", part: 15, whole: 30, want: 50},
		{name: "full", part: 30, whole: 30, want: 100},
		{name: "capped", part: 60, whole: 30, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.part, tt.whole))
		})
	}
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0, ClampPercent(math.NaN()))
	assert.Equal(t, 0, ClampPercent(-12))
	assert.Equal(t, 43, ClampPercent(42.5))
	assert.Equal(t, 100, ClampPercent(250))
}

func TestSameKey(t *testing.T) {
	assert.True(t, SameKey(" L2 Informatique ", "l2 informatique"))
	assert.True(t, SameKey("G1", "g1\t"))
	assert.False(t, SameKey("G1", "G 1"))
}
