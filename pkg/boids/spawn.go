package boids

import "math"

// Create samples count agents into a packed stride-4 buffer ready for Update:
// positions uniform over [minX, maxX) x [minY, maxY), headings uniform around
// the circle, speeds uniform in [0, maxSpeed). Feed it a box inset from the
// walls to avoid spending the first frames on margin recovery. Draw order per
// agent is x, y, angle, speed; a non-positive count yields an empty buffer.
func Create(count int, minX, maxX, minY, maxY, maxSpeed float64, rng Source) []float32 {
	out := make([]float32, 0, max(count, 0)*InStride)
	for i := 0; i < count; i++ {
		x := minX + rng.Float64()*(maxX-minX)
		y := minY + rng.Float64()*(maxY-minY)

		angle := rng.Float64() * 2 * math.Pi
		speed := rng.Float64() * maxSpeed

		out = append(out,
			float32(x),
			float32(y),
			float32(math.Cos(angle)*speed),
			float32(math.Sin(angle)*speed),
		)
	}
	return out
}
