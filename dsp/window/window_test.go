package window

import (
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range Types() {
		t.Run(Info(typ).Name, func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if v < -1e-12 || v > 1+1e-12 {
					t.Fatalf("coefficient[%d]=%v outside [0,1]", i, v)
				}
			}
		})
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
	if _, err := Hann(-1); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestSymmetricHannEndpoints(t *testing.T) {
	w := Generate(TypeHann, 9)
	if math.Abs(w[0]) > 1e-12 || math.Abs(w[8]) > 1e-12 {
		t.Fatalf("endpoints not zero: %v %v", w[0], w[8])
	}
	if math.Abs(w[4]-1) > 1e-12 {
		t.Fatalf("centre = %v, want 1", w[4])
	}
}

func TestPeriodicHannMatchesLongerSymmetric(t *testing.T) {
	periodic := Generate(TypeHann, 8, WithPeriodic())
	symmetric := Generate(TypeHann, 9)

	for i := range periodic {
		if math.Abs(periodic[i]-symmetric[i]) > 1e-12 {
			t.Fatalf("index %d: periodic=%v symmetric=%v", i, periodic[i], symmetric[i])
		}
	}
}

func TestMeasureENBWMatchesMetadata(t *testing.T) {
	for _, typ := range Types() {
		g, err := Measure(Generate(typ, 4096, WithPeriodic()))
		if err != nil {
			t.Fatalf("%s: Measure error: %v", typ, err)
		}
		want := Info(typ).ENBW
		if math.Abs(g.ENBW-want) > 1e-3 {
			t.Fatalf("%s: ENBW=%v, want %v", typ, g.ENBW, want)
		}
	}
}

func TestMeasureEmpty(t *testing.T) {
	if _, err := Measure(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{in: "hann", want: TypeHann},
		{in: " Hanning ", want: TypeHann},
		{in: "boxcar", want: TypeRectangular},
		{in: "", want: TypeRectangular},
		{in: "BLACKMAN", want: TypeBlackman},
		{in: "hamming", want: TypeHamming},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := Parse("kaiser"); err == nil {
		t.Fatal("expected error for unsupported window")
	}
}
