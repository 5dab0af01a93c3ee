// Package engine implements the rules of a simulated life: aging, health,
// money, college, work and the casino. Every operation mutates a
// models.PlayerState in place and never blocks; hosts decide when to call
// the next stage of a multi-step interaction.
package engine

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/tatianab/lifesim/internal/models"
)

// Random is the engine's source of chance. *rand.Rand satisfies it.
type Random interface {
	// Float64 returns a uniform value in [0,1).
	Float64() float64
	// IntN returns a uniform value in [0,n).
	IntN(n int) int
}

// NewRandom returns a PCG generator. A zero seed picks one at random.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed>>16|7))
}

type Engine struct {
	rng    Random
	logger *log.Logger
}

// NewEngine builds an engine drawing from rng. A nil logger discards output.
func NewEngine(rng Random, logger *log.Logger) *Engine {
	if rng == nil {
		rng = NewRandom(0)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{rng: rng, logger: logger}
}

func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

func shuffle[T any](rng Random, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func checkAlive(p *models.PlayerState) error {
	if p.GameOver || p.Health <= 0 {
		return ErrGameOver
	}
	return nil
}
