package geometry

import "math"

// CircleContact describes how two circles relate to each other.
// Delta points from the first center to the second.
type CircleContact struct {
	Intersects  bool     `json:"intersects"`
	Delta       Vector2D `json:"delta"`
	Distance    float64  `json:"distance"`
	Penetration float64  `json:"penetration"`
}

// CircleCircle tests two circles for overlap. Touching circles count as
// intersecting. Coincident centers report a distance of exactly zero rather
// than sqrt noise, so the caller can detect the fully degenerate case.
func CircleCircle(c1 Vector2D, r1 float64, c2 Vector2D, r2 float64) CircleContact {
	delta := c2.Sub(c1)
	distSq := delta.LenSqr()

	distance := 0.0
	if distSq > 0 {
		distance = math.Sqrt(distSq)
	}

	rSum := r1 + r2
	contact := CircleContact{
		Delta:    delta,
		Distance: distance,
	}
	if distance <= rSum {
		contact.Intersects = true
		contact.Penetration = rSum - distance
	}
	return contact
}
