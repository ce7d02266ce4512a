package boids

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestCreate_ExactRecord(t *testing.T) {
	// Setup: one agent from canned draws. x and y interpolate the box, the
	// third draw is the heading fraction (0 means due east), the fourth the
	// speed fraction.
	src := &fixedSource{vals: []float64{0.5, 0.25, 0.0, 0.75}}

	got := Create(1, 100, 300, 200, 400, 4.0, src)
	want := []float32{200, 250, 3, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("out[%d] = %v; want %v", i, got[i], want[i])
		}
	}
	if src.n != 4 {
		t.Errorf("consumed %d draws; want 4", src.n)
	}
}

func TestCreate_EmptyForNonPositiveCount(t *testing.T) {
	src := &fixedSource{vals: []float64{0.5}}
	if got := Create(0, 0, 100, 0, 100, 4, src); len(got) != 0 {
		t.Errorf("Create(0) returned %d floats; want 0", len(got))
	}
	if got := Create(-3, 0, 100, 0, 100, 4, src); len(got) != 0 {
		t.Errorf("Create(-3) returned %d floats; want 0", len(got))
	}
	if src.n != 0 {
		t.Errorf("consumed %d draws; want 0", src.n)
	}
}

func TestCreate_StaysInsideBoundsWithCappedSpeed(t *testing.T) {
	const (
		minX, maxX = 150.0, 850.0
		minY, maxY = 150.0, 650.0
		maxSpeed   = 4.0
	)
	rng := rand.New(rand.NewPCG(42, 43))

	frame := Create(100, minX, maxX, minY, maxY, maxSpeed, rng)
	if len(frame) != 100*InStride {
		t.Fatalf("len = %d; want %d", len(frame), 100*InStride)
	}
	for i := 0; i < 100; i++ {
		rec := frame[i*InStride:]
		x, y := float64(rec[0]), float64(rec[1])
		if x < minX || x > maxX || y < minY || y > maxY {
			t.Errorf("agent %d spawned at (%v, %v); want inside [%v,%v]x[%v,%v]",
				i, x, y, minX, maxX, minY, maxY)
		}
		speed := math.Hypot(float64(rec[2]), float64(rec[3]))
		if speed > maxSpeed*(1+1e-6) {
			t.Errorf("agent %d has speed %v; want <= %v", i, speed, maxSpeed)
		}
	}
}

func TestCreate_ThenUpdate_StaysFinite(t *testing.T) {
	// Spawn inside the interior and run a handful of frames. Nothing should
	// blow up to NaN or Inf.
	cfg := DefaultConfig()
	rng := rand.New(rand.NewPCG(8, 9))
	frame := Create(50, 150, 850, 150, 650, cfg.MaxSpeed, rng)

	var out []float32
	for step := 0; step < 10; step++ {
		out = Update(frame, cfg, rng)
		frame = StripFlags(out)
	}
	if len(out) != 50*OutStride {
		t.Fatalf("len = %d; want %d", len(out), 50*OutStride)
	}
	for i, v := range out {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("out[%d] = %v after 10 frames", i, v)
		}
	}
}
