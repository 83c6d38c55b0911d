package scale

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestLinearApplyInvert(t *testing.T) {
	s := NewLinear(0, 13500, 0, 1000)
	if got := s.Apply(100); !approx(got, 7.407407407, 1e-6) {
		t.Fatalf("apply(100) = %v", got)
	}
	if got := s.Apply(13500); got != 1000 {
		t.Fatalf("apply(max) = %v", got)
	}
	if got := s.Invert(500); !approx(got, 6750, eps) {
		t.Fatalf("invert(500) = %v", got)
	}
}

func TestLinearDegenerateDomain(t *testing.T) {
	s := NewLinear(5, 5, 0, 200)
	if got := s.Apply(42); got != 100 {
		t.Fatalf("expected range midpoint, got %v", got)
	}
}

func TestLinearInvertIsLeftInverse(t *testing.T) {
	for _, width := range []float64{137, 1000, 1340} {
		s := NewLinear(0, 13500, 0, width)
		for v := 0; v <= 13500; v++ {
			if got := Round(s.Invert(s.Apply(float64(v)))); got != float64(v) {
				t.Fatalf("width %v: round(invert(apply(%d))) = %v", width, v, got)
			}
		}
	}
}

func TestWithDomainLeavesReceiver(t *testing.T) {
	base := NewLinear(0, 100, 0, 10)
	derived := base.WithDomain(10, 20)
	if base.Domain != [2]float64{0, 100} {
		t.Fatalf("base domain changed: %v", base.Domain)
	}
	if derived.Range != base.Range || derived.Domain != [2]float64{10, 20} {
		t.Fatalf("unexpected derived scale %+v", derived)
	}
}

func TestTicks(t *testing.T) {
	cases := []struct {
		name        string
		start, stop float64
		count       int
		want        []float64
	}{
		{"default domain", 0, 13500, 10, []float64{0, 1000, 2000, 3000, 4000, 5000, 6000, 7000, 8000, 9000, 10000, 11000, 12000, 13000}},
		{"unit", 0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"offset", 1250, 1675, 10, []float64{1250, 1300, 1350, 1400, 1450, 1500, 1550, 1600, 1650}},
		{"reversed", 10, 0, 5, []float64{10, 8, 6, 4, 2, 0}},
		{"single", 7, 7, 10, []float64{7}},
		{"no count", 0, 10, 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Ticks(tc.start, tc.stop, tc.count)
			if len(got) != len(tc.want) {
				t.Fatalf("ticks = %v, want %v", got, tc.want)
			}
			for i := range got {
				if !approx(got[i], tc.want[i], 1e-9) {
					t.Fatalf("ticks = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestFormatInt(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		13000:   "13000",
		1234567: "1234567",
		12.5:    "13",
		-0.2:    "0",
		-3.5:    "-3",
	}
	for in, want := range cases {
		if got := FormatInt(in); got != want {
			t.Fatalf("FormatInt(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestBandGeometry(t *testing.T) {
	b := NewBand([]string{"A", "B"}, 0, 100, DefaultBandPadding)
	step := 100 / 2.1
	if !approx(b.Step(), step, eps) {
		t.Fatalf("step = %v, want %v", b.Step(), step)
	}
	if !approx(b.Bandwidth(), step*0.9, eps) {
		t.Fatalf("bandwidth = %v", b.Bandwidth())
	}
	a, _ := b.Position("A")
	bb, _ := b.Position("B")
	if !approx(a, step*0.1, eps) || !approx(bb-a, step, eps) {
		t.Fatalf("positions A=%v B=%v", a, bb)
	}
	if !approx(bb+b.Bandwidth()+step*0.1, 100, eps) {
		t.Fatalf("outer padding not symmetric: last band ends at %v", bb+b.Bandwidth())
	}
}

func TestBandDuplicatesCollapse(t *testing.T) {
	b := NewBand([]string{"x", "y", "x", "z"}, 0, 30, 0)
	if b.Len() != 3 {
		t.Fatalf("len = %d", b.Len())
	}
	x, _ := b.Position("x")
	z, _ := b.Position("z")
	if !approx(z-x, 2*b.Step(), 1e-9) {
		t.Fatalf("z should sit two steps below x: x=%v z=%v", x, z)
	}
	if _, ok := b.Position("missing"); ok {
		t.Fatalf("expected missing key")
	}
}
