// Package xrand provides the tiny xorshift32 generator used wherever the
// simulation needs reproducible randomness without the weight of math/rand.
// The raw helpers (Hash32, Unit) operate on a bare state word so that derived
// streams can be seeded from arbitrary bit patterns; XorShift32 wraps the same
// permutation behind a generator type.
package xrand

// Hash32 applies one xorshift32 round to x. It is both the generator step and
// a cheap integer scrambler for seed derivation.
func Hash32(x uint32) uint32 {
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

// Unit advances state by one round and returns a uniform float32 in [0, 1)
// built from the 24 high-value bits, so every float in the range is exactly
// representable.
func Unit(state *uint32) float32 {
	*state = Hash32(*state)
	return float32(*state&0xFFFFFF) / (1 << 24)
}

// XorShift32 is a deterministic pseudo-random generator over the xorshift32
// permutation. The zero value is not usable; construct it with New.
type XorShift32 struct {
	state uint32
}

// New returns a generator seeded with seed. A zero seed is remapped to 1
// because the xorshift permutation fixes zero forever.
func New(seed uint32) *XorShift32 {
	if seed == 0 {
		seed = 1
	}
	return &XorShift32{state: seed}
}

// Mix folds v into the generator state, decorrelating streams that share a
// base seed. Mixing a value equal to the current state zeroes the generator,
// so callers deriving per-item streams should mix distinct odd constants.
func (x *XorShift32) Mix(v uint32) {
	x.state ^= v
}

// Uint32 returns the next raw word of the sequence.
func (x *XorShift32) Uint32() uint32 {
	x.state = Hash32(x.state)
	return x.state
}

// Float32 returns a uniform value in [0, 1) with 24 bits of precision.
func (x *XorShift32) Float32() float32 {
	return float32(x.Uint32()&0xFFFFFF) / (1 << 24)
}

// Float64 returns a uniform value in [0, 1) with 24 bits of precision. It
// satisfies the random source the boids kernel consumes.
func (x *XorShift32) Float64() float64 {
	return float64(x.Uint32()&0xFFFFFF) / (1 << 24)
}
