package boids

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-kernel/pkg/geometry"
)

// The three flocking rules below share one membership test: a neighbor counts
// when its squared distance to the agent is strictly between zero and the
// squared radius. The agent itself is skipped by index, and agents sitting at
// exactly the same point are skipped by the distance test, which keeps every
// division below safe. All three scan the full frame-t slice; with zero
// neighbors they return a zero vector.

// Separation steers agent i away from close neighbors. Each neighbor
// contributes the unit vector pointing away from it, weighted by the inverse
// of its distance, and the accumulated force is averaged over the count.
func Separation(i int, agents []Agent, radius float64) geometry.Vector2D {
	boid := &agents[i]
	radiusSq := radius * radius

	var steer geometry.Vector2D
	count := 0
	for j := range agents {
		if i == j {
			continue
		}
		away := boid.Pos.Sub(agents[j].Pos)
		distSq := away.LenSqr()
		if distSq > 0 && distSq < radiusSq {
			dist := math.Sqrt(distSq)
			unit := away.Mul(1 / dist)
			steer = steer.Add(unit.Mul(1 / dist)) // closer neighbors push harder
			count++
		}
	}
	if count > 0 {
		steer = steer.Mul(1 / float64(count))
	}
	return steer
}

// Alignment steers agent i toward the average velocity of its neighbors.
func Alignment(i int, agents []Agent, radius float64) geometry.Vector2D {
	boid := &agents[i]
	radiusSq := radius * radius

	var avgVel geometry.Vector2D
	count := 0
	for j := range agents {
		if i == j {
			continue
		}
		distSq := boid.Pos.DistanceSquaredTo(agents[j].Pos)
		if distSq > 0 && distSq < radiusSq {
			avgVel = avgVel.Add(agents[j].Vel)
			count++
		}
	}
	if count == 0 {
		return geometry.Vector2D{}
	}
	return avgVel.Mul(1 / float64(count)).Sub(boid.Vel)
}

// Cohesion steers agent i toward the average position of its neighbors: a
// unit vector pointing at the group center minus the agent's own velocity.
// When the center coincides with the agent there is no direction to steer in
// and the force is zero.
func Cohesion(i int, agents []Agent, radius float64) geometry.Vector2D {
	boid := &agents[i]
	radiusSq := radius * radius

	var avgPos geometry.Vector2D
	count := 0
	for j := range agents {
		if i == j {
			continue
		}
		distSq := boid.Pos.DistanceSquaredTo(agents[j].Pos)
		if distSq > 0 && distSq < radiusSq {
			avgPos = avgPos.Add(agents[j].Pos)
			count++
		}
	}
	if count == 0 {
		return geometry.Vector2D{}
	}

	desired := avgPos.Mul(1 / float64(count)).Sub(boid.Pos)
	dist := desired.Len()
	if dist == 0 {
		return geometry.Vector2D{}
	}
	return desired.Mul(1 / dist).Sub(boid.Vel)
}
