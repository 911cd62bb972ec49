package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 2)

	n := CopyInto(dst, []float64{1, 2, 3})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("unexpected dst: %#v", dst)
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		in   []float64
		want []float64
	}{
		{in: nil, want: nil},
		{in: []float64{1}, want: []float64{1}},
		{in: []float64{1, 2}, want: []float64{2, 1}},
		{in: []float64{1, 2, 3, 4, 5}, want: []float64{5, 4, 3, 2, 1}},
	}

	for _, tt := range tests {
		Reverse(tt.in)
		for i := range tt.want {
			if tt.in[i] != tt.want[i] {
				t.Fatalf("Reverse() = %v, want %v", tt.in, tt.want)
			}
		}
	}
}
