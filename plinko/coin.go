package plinko

import (
	"math/rand/v2"
)

// Coin decides the deflection of a ball at a peg.
type Coin interface {
	// Flip reports true when the ball deflects left.
	Flip() bool
}

// RandomCoin is a fair coin backed by a seeded PCG generator.
type RandomCoin struct {
	rng *rand.Rand
}

// NewRandomCoin returns a fair coin seeded with seed.
func NewRandomCoin(seed uint64) *RandomCoin {
	return &RandomCoin{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Flip implements Coin.
func (c *RandomCoin) Flip() bool {
	return c.rng.Uint64()&1 == 1
}

// Deflection is one scripted coin outcome.
type Deflection bool

const (
	Right Deflection = false
	Left  Deflection = true
)

func (d Deflection) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// ScriptedCoin replays a fixed sequence of deflections. Once the script is
// exhausted every further flip deflects right.
type ScriptedCoin struct {
	Script []Deflection
	Drawn  int
}

// Flip implements Coin.
func (c *ScriptedCoin) Flip() bool {
	if c.Drawn >= len(c.Script) {
		c.Drawn++
		return bool(Right)
	}
	d := c.Script[c.Drawn]
	c.Drawn++
	return bool(d)
}

// CoinFunc adapts a function to the Coin interface.
type CoinFunc func() bool

// Flip implements Coin.
func (f CoinFunc) Flip() bool { return f() }
