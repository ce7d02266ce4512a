package geometry

// shortSegmentSqr is the squared length under which a segment collapses to a
// point for the closest-point query.
const shortSegmentSqr = 1e-6

// SegmentContact is the result of projecting a point onto a segment.
// Side is the raw cross product (b-a) x (p-a): positive when the point lies to
// the left of the a->b direction, negative to the right, zero on the line.
type SegmentContact struct {
	Distance  float64  `json:"distance"`
	Closest   Vector2D `json:"closest"`
	OnSegment bool     `json:"onSegment"`
	Side      float64  `json:"side"`
}

// PointSegment finds the point on segment ab closest to p.
// OnSegment reports whether the unclamped projection parameter lies in [0, 1];
// the returned Closest point is always clamped to the segment. Segments whose
// squared length is under 1e-6 collapse to the point a: the query degrades to
// a point distance with OnSegment true and Side zero.
func PointSegment(p, a, b Vector2D) SegmentContact {
	seg := b.Sub(a)
	lenSq := seg.LenSqr()

	if lenSq < shortSegmentSqr {
		return SegmentContact{
			Distance:  p.DistanceTo(a),
			Closest:   a,
			OnSegment: true,
			Side:      0,
		}
	}

	toP := p.Sub(a)
	t := toP.Dot(seg) / lenSq

	tc := t
	if tc < 0 {
		tc = 0
	} else if tc > 1 {
		tc = 1
	}

	closest := a.Add(seg.Mul(tc))
	return SegmentContact{
		Distance:  p.DistanceTo(closest),
		Closest:   closest,
		OnSegment: t >= 0 && t <= 1,
		Side:      seg.Cross(toP),
	}
}
