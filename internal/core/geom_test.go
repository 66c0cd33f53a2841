package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right inside", 29, 29, true},
		{"right edge (exclusive)", 30, 15, false},
		{"bottom edge (exclusive)", 15, 30, false},
		{"outside left", 5, 15, false},
		{"outside top", 15, 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 4, 5, 6)
	if r.Right() != 8 {
		t.Errorf("Right() = %d, expected 8", r.Right())
	}
	if r.Bottom() != 10 {
		t.Errorf("Bottom() = %d, expected 10", r.Bottom())
	}
	if r.Empty() {
		t.Error("5x6 rect should not be empty")
	}
	if !NewRect(0, 0, 0, 3).Empty() {
		t.Error("zero-width rect should be empty")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %v, expected 1", got)
	}
	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %v, expected 0", got)
	}
	if got := ClampF(0.25, 0, 1); got != 0.25 {
		t.Errorf("ClampF(0.25, 0, 1) = %v, expected 0.25", got)
	}
}
