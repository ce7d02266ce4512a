package boids

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-kernel/pkg/geometry"
)

// Progressive speed clamp blend factors: each frame closes 10% of the gap to
// the violated bound instead of snapping, which reads as acceleration rather
// than teleporting speeds.
const (
	accelBlend = 0.1
	decelBlend = 0.1
	// speedFloor guards the division when rescaling a near-zero velocity up
	// to MinSpeed.
	speedFloor = 1e-6
)

// Source supplies the uniform random draws in [0, 1) the kernel consumes.
// *rand.Rand from math/rand/v2 satisfies it, as does xrand.XorShift32; tests
// substitute fixed sequences. Update draws in a fixed order per agent: one
// value for the bounce kick, then one for the jitter angle when the agent
// follows the normal flocking path. Reproducing a frame therefore needs an
// identically positioned source, not just an equal seed.
type Source interface {
	Float64() float64
}

// Update advances one frame: it decodes the packed input, updates every agent
// against the unmodified frame-t snapshot, and encodes the packed output.
// The input buffer is stride 4 (x, y, vx, vy), the output stride 5 with a
// flags lane appended; record order and count are preserved. A partial record
// at the tail of the input is dropped, an empty input yields an empty output.
// Update is a pure function of its arguments and never mutates frame or cfg.
func Update(frame []float32, cfg *Config, rng Source) []float32 {
	agents := Decode(frame)
	next := make([]Agent, len(agents))
	for i := range agents {
		next[i] = updateAgent(i, agents, cfg, rng)
	}
	return Encode(next)
}

// updateAgent computes the frame-t+1 state of agent i from the frame-t
// snapshot. Exactly one regime applies per frame: bounce, margin override, or
// normal flocking.
func updateAgent(i int, agents []Agent, cfg *Config, rng Source) Agent {
	boid := agents[i]
	bounceRand := rng.Float64()

	action := BoundaryDecision(boid, cfg, bounceRand)

	// An agent past a hard wall is snapped back before any other rule runs,
	// margin override included.
	if b, ok := action.(Bounce); ok {
		return Agent{Pos: b.Pos, Vel: b.Vel}
	}

	// Inside the edge band flocking is suspended for the frame.
	if inMargin(boid.Pos, cfg) {
		return marginOverride(boid, cfg)
	}

	force := Separation(i, agents, cfg.SeparationRadius).Mul(cfg.SeparationStrength)
	force = force.Add(Alignment(i, agents, cfg.AlignmentRadius).Mul(cfg.AlignmentStrength))
	force = force.Add(Cohesion(i, agents, cfg.CohesionRadius).Mul(cfg.CohesionStrength))

	switch act := action.(type) {
	case ApplyForce:
		force = force.Add(act.Force)
	case OverrideVelocity:
		vel := act.Velocity
		return Agent{Pos: boid.Pos.Add(vel.Mul(cfg.Dt)), Vel: vel}
	}

	force = force.Limit(cfg.MaxForce)
	vel := boid.Vel.Add(force.Mul(cfg.Dt))

	// Heading noise keeps a perfectly converged flock from freezing into a
	// straight line. Added after the force so it escapes the force cap, and
	// before the clamp so it cannot push the speed out of range.
	angle := rng.Float64() * 2 * math.Pi
	vel = vel.Add(geometry.NewVectorPolar(cfg.Jitter, angle))

	vel = clampSpeedProgressive(vel, cfg.MinSpeed, cfg.MaxSpeed, accelBlend, decelBlend)
	pos := boid.Pos.Add(vel.Mul(cfg.Dt))

	out := Agent{Pos: pos, Vel: vel}
	if inMargin(pos, cfg) {
		out.Flags |= FlagInMargin
	}
	return out
}

// clampSpeedProgressive blends a velocity toward the [minSpeed, maxSpeed]
// band. A slow vector is blended toward its rescale to minSpeed by accel, a
// fast one toward maxSpeed by decel; a vector already in the band passes
// through unchanged. A zero vector has no direction to grow along and stays
// zero.
func clampSpeedProgressive(v geometry.Vector2D, minSpeed, maxSpeed, accel, decel float64) geometry.Vector2D {
	speed := v.Len()
	if speed < minSpeed {
		scale := minSpeed / math.Max(speed, speedFloor)
		v = v.Mul(1 - accel).Add(v.Mul(scale * accel))
	}
	speed = v.Len()
	if speed > maxSpeed {
		scale := maxSpeed / speed
		v = v.Mul(1 - decel).Add(v.Mul(scale * decel))
	}
	return v
}
