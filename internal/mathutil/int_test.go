package mathutil

import (
	"math"
	"testing"
)

func TestIntHelpers(t *testing.T) {
	if IntMin(3, -2) != -2 || IntMax(3, -2) != 3 {
		t.Error("IntMin/IntMax")
	}
	if IntAbs(-7) != 7 || IntAbs(7) != 7 {
		t.Error("IntAbs")
	}
	if IntClamp(-5, 0, 10) != 0 || IntClamp(15, 0, 10) != 10 || IntClamp(4, 0, 10) != 4 {
		t.Error("IntClamp")
	}
}

func TestRoundInt(t *testing.T) {
	cases := map[float64]int{0.4: 0, 0.5: 1, -0.5: -1, 159.999: 160}
	for in, want := range cases {
		if got := RoundInt(in); got != want {
			t.Errorf("RoundInt(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestClampFloat(t *testing.T) {
	if got := ClampFloat(math.NaN(), -1, 1); got != -1 {
		t.Errorf("NaN clamps to %v, want -1", got)
	}
	if got := ClampFloat(2, -1, 1); got != 1 {
		t.Errorf("ClampFloat(2) = %v", got)
	}
}
