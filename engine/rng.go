package engine

// RandNum is the native integer type produced by RandomGen, matching the
// original's `typedef long int RandNum`.
type RandNum int64

// Park-Miller minimal standard LCG constants.
const (
	rngA RandNum = 16807
	rngM RandNum = 2147483647
	rngQ RandNum = 127773 // M div A
	rngR RandNum = 2836   // M mod A
)

// RandomGen is a Park-Miller linear congruential generator:
//
//	x' = A*(x mod Q) - R*(x div Q)  (mod M)
//
// It is deliberately not safe for concurrent use: the engine is single
// threaded end to end, and a mutex here would just be dead weight.
type RandomGen struct {
	seed RandNum
	xn   RandNum
}

// NewRandomGen creates a generator seeded with s.
func NewRandomGen(s RandNum) *RandomGen {
	return &RandomGen{seed: s, xn: s}
}

// Init resets both the stored seed and the current state to s.
func (g *RandomGen) Init(s RandNum) {
	g.seed = s
	g.xn = s
}

// Sample advances the generator and returns the next value in [1, M-1].
func (g *RandomGen) Sample() RandNum {
	xq := g.xn / rngQ
	xr := g.xn % rngQ

	g.xn = rngA*xr - rngR*xq
	if g.xn < 0 {
		g.xn += rngM
	}
	return g.xn
}

// CurrSeed returns the current sequence number (not the original seed).
func (g *RandomGen) CurrSeed() RandNum { return g.xn }

// Module returns the generator's modulus M, used by RandomVar
// implementations to scale a raw sample into [0,1).
func (g *RandomGen) Module() RandNum { return rngM }
