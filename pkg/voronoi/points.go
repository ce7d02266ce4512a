package voronoi

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-kernel/pkg/xrand"
)

// CreatePoints builds a seeded cloud of count moving points inside a
// width x height viewport, in the flat [x, y, vx, vy] layout. Four pinned
// corner points with zero velocity are appended after the moving ones so the
// triangulation always covers the whole viewport. Speeds land between
// 0.2*speed and speed.
func CreatePoints(count int, width, height float32, seed uint32, speed float32) []float32 {
	s := seed
	if s == 0 {
		s = 1
	}
	out := make([]float32, 0, (max(count, 0)+4)*Stride)
	for i := 0; i < count; i++ {
		x := xrand.Unit(&s) * width
		y := xrand.Unit(&s) * height
		ang := float64(xrand.Unit(&s)) * 2 * math.Pi
		spd := (0.2 + 0.8*xrand.Unit(&s)) * speed
		out = append(out, x, y,
			float32(math.Cos(ang))*spd,
			float32(math.Sin(ang))*spd)

		// Decorrelate consecutive points while keeping the stream seeded.
		s ^= uint32(i) * 0x9E3779B9
	}
	for _, c := range corners(width, height) {
		out = append(out, c[0], c[1], 0, 0)
	}
	return out
}

// StepPoints advances every moving point by one Euler step and returns a new
// buffer. A point that leaves the viewport respawns at a position and
// velocity derived deterministically from its escaping state, so replays
// stay bit-identical. The last four records are treated as the pinned
// corners and are rewritten for the current viewport size, which also covers
// resizes between steps.
func StepPoints(points []float32, width, height, dt float32) []float32 {
	out := make([]float32, len(points))
	copy(out, points)
	n := len(points) / Stride

	moving := n
	if n >= 4 {
		moving = n - 4
	}
	for i := 0; i < moving; i++ {
		ix := i * Stride
		x := points[ix] + points[ix+2]*dt
		y := points[ix+1] + points[ix+3]*dt
		vx := points[ix+2]
		vy := points[ix+3]
		if x < 0 || x > width || y < 0 || y > height {
			s := xrand.Hash32(math.Float32bits(x) ^ math.Float32bits(y) ^
				math.Float32bits(vx) ^ math.Float32bits(vy) ^
				uint32(i)*0x85EBCA6B)
			x = xrand.Unit(&s) * width
			y = xrand.Unit(&s) * height
			ang := float64(xrand.Unit(&s)) * 2 * math.Pi
			spd := 10 + 40*xrand.Unit(&s)
			vx = float32(math.Cos(ang)) * spd
			vy = float32(math.Sin(ang)) * spd
		}
		out[ix], out[ix+1], out[ix+2], out[ix+3] = x, y, vx, vy
	}
	if n >= 4 {
		base := (n - 4) * Stride
		for k, c := range corners(width, height) {
			ix := base + k*Stride
			out[ix], out[ix+1], out[ix+2], out[ix+3] = c[0], c[1], 0, 0
		}
	}
	return out
}

func corners(width, height float32) [4][2]float32 {
	return [4][2]float32{{0, 0}, {width, 0}, {0, height}, {width, height}}
}
