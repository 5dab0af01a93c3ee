package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tatianab/lifesim/internal/models"
)

// scriptedRandom replays fixed draws. Once a script runs out it returns 0.
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (s *scriptedRandom) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRandom) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func newTestEngine(floats []float64, ints ...int) *Engine {
	return NewEngine(&scriptedRandom{floats: floats, ints: ints}, nil)
}

func newTestPlayer(t *testing.T) *models.PlayerState {
	t.Helper()
	p, err := NewCharacter("Jane", models.GenderFemale, 8, 6, 4)
	require.NoError(t, err)
	return &p
}

// deckIndex maps a card to its position in Deck for scripting draws.
func deckIndex(r Rank, s Suit) int {
	return int(s)*13 + int(r) - 1
}
