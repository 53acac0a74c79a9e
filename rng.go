package tracer

import "math"

// PCG32 is a minimal permuted congruential generator: 64 bits of state, 64
// bits of increment, 32-bit output. Chosen for its
// small state, speed, and the property that it is trivially seedable from a
// pixel coordinate, which is what makes per-pixel renders reproducible
// regardless of scheduling.
type PCG32 struct {
	state uint64
	inc   uint64
}

const pcgMultiplier = 6364136223846793005

// NewPCG32ForPixel seeds a generator deterministically from raster
// coordinates (x, y): pack seed = (x<<32)|y, set state=0,
// inc=(seed<<1)|1, advance once, add seed to state, advance once.
func NewPCG32ForPixel(x, y int) *PCG32 {
	seed := (uint64(uint32(x)) << 32) | uint64(uint32(y))
	g := &PCG32{state: 0, inc: (seed << 1) | 1}
	g.next()
	g.state += seed
	g.next()
	return g
}

// next advances the generator and returns the next 32-bit output word.
func (g *PCG32) next() uint32 {
	old := g.state
	g.state = old*pcgMultiplier + g.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Uniform returns a uniformly distributed float64 in [0, 1), built by
// setting the 23 mantissa bits of a float32 with exponent field 127
// (i.e. in [1, 2)) and subtracting 1.0.
func (g *PCG32) Uniform() float64 {
	bits := (uint32(127) << 23) | (g.next() >> 9)
	return float64(math.Float32frombits(bits) - 1.0)
}
