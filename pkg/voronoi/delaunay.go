// Package voronoi triangulates small moving point clouds and extracts the
// Voronoi dual, using the same flat float32 buffers as the flocking kernel.
// Points travel on the wire as float32 while the geometric predicates run in
// float64.
package voronoi

import (
	"math"
	"sort"
)

// Stride is the per-point float count in the wire layout [x, y, vx, vy].
const Stride = 4

// collinearEps rejects triples whose doubled signed area is too small to
// yield a stable circumcenter.
const collinearEps = 1e-6

type point struct{ x, y float64 }

func (p point) sub(o point) point { return point{p.x - o.x, p.y - o.y} }
func (p point) len2() float64     { return p.x*p.x + p.y*p.y }

// edge is an undirected index pair, stored low index first.
type edge struct{ a, b int }

func newEdge(i, j int) edge {
	if i < j {
		return edge{i, j}
	}
	return edge{j, i}
}

type triangle struct{ a, b, c int }

func (t triangle) edges() [3]edge {
	return [3]edge{newEdge(t.a, t.b), newEdge(t.b, t.c), newEdge(t.c, t.a)}
}

// circumcircle returns the center and squared radius of the circle through
// a, b and c. ok is false for a near-collinear triple.
func circumcircle(a, b, c point) (center point, r2 float64, ok bool) {
	d := 2 * (a.x*(b.y-c.y) + b.x*(c.y-a.y) + c.x*(a.y-b.y))
	if math.Abs(d) < collinearEps {
		return point{}, 0, false
	}
	a2 := a.x*a.x + a.y*a.y
	b2 := b.x*b.x + b.y*b.y
	c2 := c.x*c.x + c.y*c.y
	center = point{
		x: (a2*(b.y-c.y) + b2*(c.y-a.y) + c2*(a.y-b.y)) / d,
		y: (a2*(c.x-b.x) + b2*(a.x-c.x) + c2*(b.x-a.x)) / d,
	}
	return center, center.sub(a).len2(), true
}

// inCircumcircle reports whether p lies inside or on the circle through the
// triple. Near-collinear triples contain nothing.
func inCircumcircle(p, a, b, c point) bool {
	center, r2, ok := circumcircle(a, b, c)
	if !ok {
		return false
	}
	return p.sub(center).len2() <= r2
}

// bowyerWatson triangulates pts incrementally. Indices in the result refer
// to pts; triangles touching the synthetic super triangle are stripped.
func bowyerWatson(pts []point) []triangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.x)
		minY = math.Min(minY, p.y)
		maxX = math.Max(maxX, p.x)
		maxY = math.Max(maxY, p.y)
	}
	delta := (math.Max(maxX-minX, maxY-minY) + 1) * 10
	midX := (minX + maxX) / 2
	midY := (minY + maxY) / 2

	// Super triangle vertices live past the real indices.
	iA, iB, iC := len(pts), len(pts)+1, len(pts)+2
	all := make([]point, len(pts), len(pts)+3)
	copy(all, pts)
	all = append(all,
		point{midX - 2*delta, midY - delta},
		point{midX, midY + 2*delta},
		point{midX + 2*delta, midY - delta},
	)

	tris := []triangle{{iA, iB, iC}}
	for pi, p := range pts {
		// Tear out every triangle whose circumcircle swallows p, then fan
		// the cavity boundary around p. Boundary edges are the ones seen
		// exactly once across the torn triangles.
		bad := make([]triangle, 0, 4)
		keep := make([]triangle, 0, len(tris))
		for _, t := range tris {
			if inCircumcircle(p, all[t.a], all[t.b], all[t.c]) {
				bad = append(bad, t)
			} else {
				keep = append(keep, t)
			}
		}

		edgeCount := make(map[edge]int, 3*len(bad))
		for _, t := range bad {
			for _, e := range t.edges() {
				edgeCount[e]++
			}
		}
		boundary := make([]edge, 0, len(edgeCount))
		for e, c := range edgeCount {
			if c == 1 {
				boundary = append(boundary, e)
			}
		}
		// Map order is random; sort so identical input yields identical
		// output.
		sort.Slice(boundary, func(i, j int) bool {
			if boundary[i].a != boundary[j].a {
				return boundary[i].a < boundary[j].a
			}
			return boundary[i].b < boundary[j].b
		})

		tris = keep
		for _, e := range boundary {
			tris = append(tris, triangle{e.a, e.b, pi})
		}
	}

	out := tris[:0]
	for _, t := range tris {
		if t.a < iA && t.b < iA && t.c < iA {
			out = append(out, t)
		}
	}
	return out
}

// parsePoints lifts the x,y lanes of a flat stride-4 buffer into float64
// points. A trailing partial record still counts when both its coordinate
// lanes are present; a lone dangling float is dropped.
func parsePoints(flat []float32) []point {
	pts := make([]point, 0, len(flat)/Stride+1)
	for i := 0; i+1 < len(flat); i += Stride {
		pts = append(pts, point{float64(flat[i]), float64(flat[i+1])})
	}
	return pts
}

// DelaunayIndices triangulates the points of a flat buffer and returns the
// triangle corners as index triplets into that buffer. Fewer than three
// points triangulate to nothing.
func DelaunayIndices(points []float32) []uint32 {
	pts := parsePoints(points)
	if len(pts) < 3 {
		return nil
	}
	tris := bowyerWatson(pts)
	out := make([]uint32, 0, len(tris)*3)
	for _, t := range tris {
		out = append(out, uint32(t.a), uint32(t.b), uint32(t.c))
	}
	return out
}

// VoronoiEdges returns the Voronoi diagram of the points of a flat buffer as
// line segments flattened to [x1, y1, x2, y2, ...]. Each segment connects
// the circumcenters of two triangles sharing an edge; a degenerate triangle
// contributes its centroid instead.
func VoronoiEdges(points []float32) []float32 {
	pts := parsePoints(points)
	if len(pts) < 3 {
		return nil
	}
	tris := bowyerWatson(pts)

	centers := make([]point, len(tris))
	for i, t := range tris {
		if c, _, ok := circumcircle(pts[t.a], pts[t.b], pts[t.c]); ok {
			centers[i] = c
		} else {
			centers[i] = point{
				x: (pts[t.a].x + pts[t.b].x + pts[t.c].x) / 3,
				y: (pts[t.a].y + pts[t.b].y + pts[t.c].y) / 3,
			}
		}
	}

	seen := make(map[edge]int, 2*len(tris))
	out := make([]float32, 0, len(tris)*4)
	for ti, t := range tris {
		for _, e := range t.edges() {
			if prev, ok := seen[e]; ok {
				out = append(out,
					float32(centers[ti].x), float32(centers[ti].y),
					float32(centers[prev].x), float32(centers[prev].y))
			}
			seen[e] = ti
		}
	}
	return out
}
