package funnel

import "testing"

func TestCalculateWidth(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		offset        float64
		want          float64
	}{
		{"height bound", 800, 600, 0, 545},
		{"width bound", 300, 600, 0, 300},
		{"offset shrinks", 600, 600, 100, 500},
		{"lower bound", 100, 600, 80, 40},
		{"tiny area", 10, 10, 0, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateWidth(tt.width, tt.height, tt.offset); got != tt.want {
				t.Errorf("CalculateWidth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateHeight(t *testing.T) {
	tests := []struct {
		name         string
		width, slope float64
		want         float64
	}{
		{"aspect bound", 545, 0.3, 599.5},
		{"apex bound", 100, 0.45, 55.0 / 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateHeight(tt.width, tt.slope); !almostEq(got, tt.want, tol) {
				t.Errorf("CalculateHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateCenter(t *testing.T) {
	if got := CalculateCenter(545, 127.5); got != 400 {
		t.Errorf("CalculateCenter() = %v, want 400", got)
	}
}

func TestNaturalSideMargin(t *testing.T) {
	if got := NaturalSideMargin(800, 600); got != 127.5 {
		t.Errorf("NaturalSideMargin(800, 600) = %v, want 127.5", got)
	}
	if got := NaturalSideMargin(300, 600); got != 0 {
		t.Errorf("NaturalSideMargin(300, 600) = %v, want 0", got)
	}
}
