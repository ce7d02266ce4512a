package boids

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-kernel/pkg/geometry"
)

// World-edge tuning shared by every frame.
const (
	// wallMult scales the margin repulsion ramp before the per-wall cap.
	wallMult = 30.0
	// wallCapFactor caps one wall's force at this multiple of BoundaryStrength.
	wallCapFactor = 4.0
	// bounceNudge is the base speed kick added when an agent bounces off a wall.
	bounceNudge = 5.0
)

// BoundaryAction is the decision of the world-edge policy for one agent,
// returned as a plain value so the caller can branch on the concrete type.
// The variants are ApplyForce, OverrideVelocity and Bounce.
type BoundaryAction interface {
	boundaryAction()
}

// ApplyForce folds a steering force into the agent's normal update. Away from
// the walls the force is zero, so this is the common case.
type ApplyForce struct {
	Force geometry.Vector2D
}

// OverrideVelocity replaces the agent's velocity for the frame. The driver
// advances the position with the forced velocity, skips speed clamping and
// clears the flags. The current policy never produces it, but it remains a
// valid decision for containment strategies that steer by velocity.
type OverrideVelocity struct {
	Velocity geometry.Vector2D
}

// Bounce snaps an agent that crossed a hard wall back onto it. Pos and Vel
// are the complete post-bounce state; the driver adopts them unmodified,
// skipping integration, jitter and speed clamping for the frame.
type Bounce struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

func (ApplyForce) boundaryAction()       {}
func (OverrideVelocity) boundaryAction() {}
func (Bounce) boundaryAction()           {}

// BoundaryDecision applies the world-edge policy for one agent. An agent
// strictly outside the world bounces; everyone else receives the additive
// margin force, which is zero away from the walls. bounceRand must be a
// uniform draw in [0, 1); it randomizes the bounce kick so a group crossing a
// wall together does not come back in lockstep.
func BoundaryDecision(a Agent, cfg *Config, bounceRand float64) BoundaryAction {
	if pos, vel, bounced := hardBounce(a, cfg, bounceRand); bounced {
		return Bounce{Pos: pos, Vel: vel}
	}
	return ApplyForce{Force: marginForces(a.Pos, cfg)}
}

// hardBounce clamps out-of-world coordinates back onto the crossed wall and
// points the offending velocity component inward again, magnitude topped up
// by the randomized kick. Both axes are handled independently and share the
// same draw. The second return reports whether any wall was crossed.
func hardBounce(a Agent, cfg *Config, r float64) (geometry.Vector2D, geometry.Vector2D, bool) {
	pos := a.Pos
	vel := a.Vel
	kick := bounceNudge * (0.8 + 0.4*r)
	bounced := false

	if pos.X < 0 {
		pos.X = 0
		vel.X = math.Abs(vel.X) + kick
		bounced = true
	} else if pos.X > cfg.WorldWidth {
		pos.X = cfg.WorldWidth
		vel.X = -math.Abs(vel.X) - kick
		bounced = true
	}
	if pos.Y < 0 {
		pos.Y = 0
		vel.Y = math.Abs(vel.Y) + kick
		bounced = true
	} else if pos.Y > cfg.WorldHeight {
		pos.Y = cfg.WorldHeight
		vel.Y = -math.Abs(vel.Y) - kick
		bounced = true
	}
	return pos, vel, bounced
}

// inMargin reports whether pos sits strictly inside the edge band, within
// BoundaryMargin of any wall.
func inMargin(pos geometry.Vector2D, cfg *Config) bool {
	m := cfg.BoundaryMargin
	return pos.X < m || pos.X > cfg.WorldWidth-m ||
		pos.Y < m || pos.Y > cfg.WorldHeight-m
}

// marginOverride hauls an agent inside the edge band back toward the world
// center, suspending the flock rules for the frame. The pull is ten times the
// normal force cap on purpose and is not limited by it; the velocity still
// goes through the progressive speed clamp. At the exact center there is no
// direction to pull in and the velocity merely gets clamped.
func marginOverride(a Agent, cfg *Config) Agent {
	center := geometry.NewVector(0.5*cfg.WorldWidth, 0.5*cfg.WorldHeight)
	dir := center.Sub(a.Pos).Normalize()
	force := dir.Mul(10 * cfg.MaxForce)

	vel := a.Vel.Add(force.Mul(cfg.Dt))
	vel = clampSpeedProgressive(vel, cfg.MinSpeed, cfg.MaxSpeed, accelBlend, decelBlend)

	return Agent{
		Pos:   a.Pos.Add(vel.Mul(cfg.Dt)),
		Vel:   vel,
		Flags: FlagInMargin,
	}
}

// marginForces sums the containment forces of all walls closer than the
// margin: +x from the left wall, -x from the right, +y from the top, -y from
// the bottom. Opposite walls can overlap in a world narrower than two margins
// and then partially cancel. Outside the band every term is zero.
func marginForces(pos geometry.Vector2D, cfg *Config) geometry.Vector2D {
	width := cfg.WorldWidth
	height := cfg.WorldHeight
	margin := cfg.BoundaryMargin
	strength := cfg.BoundaryStrength

	var force geometry.Vector2D
	if pos.X < margin {
		depth := math.Max(margin-pos.X, 0) / margin
		force.X += wallForce(depth, strength)
	}
	if pos.X > width-margin {
		depth := math.Max(pos.X-(width-margin), 0) / margin
		force.X -= wallForce(depth, strength)
	}
	if pos.Y < margin {
		depth := math.Max(margin-pos.Y, 0) / margin
		force.Y += wallForce(depth, strength)
	}
	if pos.Y > height-margin {
		depth := math.Max(pos.Y-(height-margin), 0) / margin
		force.Y -= wallForce(depth, strength)
	}
	return force
}

// wallForce ramps one wall's repulsion from zero at the band edge up to the
// per-wall cap. depth is the normalized penetration into the band, where 0 is
// the band edge and 1 the wall itself.
func wallForce(depth, strength float64) float64 {
	f := wallMult * 0.3 * strength * steepStep(depth)
	return math.Min(f, wallCapFactor*strength)
}

// steepStep is a sharpened smoothstep: near zero it leaves the band edge
// gently, then ramps much faster than the classic cubic. Input is clamped to
// [0, 1].
func steepStep(t float64) float64 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	t2 := t * t
	return t2 * t2 * (6*t - 15*t2 + 10)
}
