// Package boids implements a flocking update kernel over flat float32 buffers.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// https://en.wikipedia.org/wiki/Boids
//
// The kernel is a pure function: Update maps a frame of agent records plus a
// Config and a random source to the next frame. Agents have no identity beyond
// their record index, and the caller owns both buffers.
package boids

import (
	"github.com/lao-tseu-is-alive/go-flock-kernel/pkg/geometry"
)

// Strides of the flat wire buffers. Input records carry position and velocity;
// output records append a status lane.
const (
	InStride  = 4 // x, y, vx, vy
	OutStride = 5 // x, y, vx, vy, flags
)

// Flag is the per-agent status bit-set carried in the fifth output lane.
type Flag uint32

const (
	// FlagInMargin marks an agent inside the boundary margin band.
	FlagInMargin Flag = 0x1
)

// Agent is the full state of one flock member for one frame.
type Agent struct {
	Pos   geometry.Vector2D
	Vel   geometry.Vector2D
	Flags Flag
}

// Decode unpacks a flat [x, y, vx, vy, ...] buffer into agents. The agent
// count is len(frame)/InStride; trailing floats short of a full record are
// dropped. Input records carry no status lane, so every decoded agent starts
// with zero flags. Values are not validated: NaN in, NaN out.
func Decode(frame []float32) []Agent {
	n := len(frame) / InStride
	agents := make([]Agent, n)
	for i := 0; i < n; i++ {
		rec := frame[i*InStride:]
		agents[i] = Agent{
			Pos: geometry.NewVector(float64(rec[0]), float64(rec[1])),
			Vel: geometry.NewVector(float64(rec[2]), float64(rec[3])),
		}
	}
	return agents
}

// Encode packs agents into a flat [x, y, vx, vy, flags, ...] buffer. The flag
// bits are down-converted to a float32 whole number so the buffer stays
// homogeneous for callers that ship it across a typed-array boundary.
func Encode(agents []Agent) []float32 {
	out := make([]float32, 0, len(agents)*OutStride)
	for _, a := range agents {
		out = append(out,
			float32(a.Pos.X),
			float32(a.Pos.Y),
			float32(a.Vel.X),
			float32(a.Vel.Y),
			float32(a.Flags),
		)
	}
	return out
}

// StripFlags drops the status lane from a stride-5 output buffer, producing
// the stride-4 buffer the next Update call expects. Drivers that loop the
// kernel frame over frame use it to close the cycle.
func StripFlags(frame []float32) []float32 {
	n := len(frame) / OutStride
	out := make([]float32, 0, n*InStride)
	for i := 0; i < n; i++ {
		rec := frame[i*OutStride:]
		out = append(out, rec[0], rec[1], rec[2], rec[3])
	}
	return out
}
