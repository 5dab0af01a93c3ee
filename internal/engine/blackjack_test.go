package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(ranks ...Rank) []Card {
	hand := make([]Card, len(ranks))
	for i, r := range ranks {
		hand[i] = Card{Rank: r, Suit: Spades}
	}
	return hand
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		hand []Card
		want int
	}{
		{cards(Ace, King), 21},
		{cards(Ace, Ace, 9), 21},
		{cards(Ace, Ace), 12},
		{cards(Ace, 6, 10), 17},
		{cards(King, Queen, 2), 22},
		{cards(Ace, Ace, Ace, Ace), 14},
		{nil, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HandValue(tt.hand), "%v", tt.hand)
	}
}

// bestTotal tries every ace as 1 or 11 and keeps the highest total that does
// not bust, or the lowest total when every choice busts.
func bestTotal(hand []Card) int {
	totals := []int{0}
	for _, c := range hand {
		var next []int
		for _, t := range totals {
			next = append(next, t+c.Rank.Value())
			if c.Rank == Ace {
				next = append(next, t+11)
			}
		}
		totals = next
	}
	best, lowest := -1, totals[0]
	for _, t := range totals {
		if t <= 21 && t > best {
			best = t
		}
		lowest = min(lowest, t)
	}
	if best < 0 {
		return lowest
	}
	return best
}

func TestHandValueAllThreeCardHands(t *testing.T) {
	for a := Ace; a <= King; a++ {
		for b := Ace; b <= King; b++ {
			for c := Ace; c <= King; c++ {
				hand := cards(a, b, c)
				require.Equal(t, bestTotal(hand), HandValue(hand), "%v", hand)
			}
		}
	}
}

func TestDeck(t *testing.T) {
	require.Len(t, Deck, 52)
	assert.Equal(t, Card{Rank: Ace, Suit: Hearts}, Deck[deckIndex(Ace, Hearts)])
	assert.Equal(t, Card{Rank: King, Suit: Spades}, Deck[deckIndex(King, Spades)])
	assert.Equal(t, "Q of clubs", Deck[deckIndex(Queen, Clubs)].String())
}

func TestNewRound(t *testing.T) {
	p := newTestPlayer(t)

	_, err := NewRound(p, -5)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = NewRound(p, 1001)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	r, err := NewRound(p, 0)
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, r.Phase)
}

func TestRoundNaturalPush(t *testing.T) {
	e := newTestEngine(nil,
		deckIndex(Ace, Hearts), deckIndex(King, Hearts), // player
		deckIndex(6, Hearts), deckIndex(10, Hearts), // dealer
		deckIndex(5, Hearts), // dealer hit
	)
	p := newTestPlayer(t)
	r, err := NewRound(p, 100)
	require.NoError(t, err)

	require.NoError(t, e.Deal(r))
	assert.Equal(t, 21, r.PlayerTotal())
	assert.Equal(t, PhaseDealerTurn, r.Phase, "21 ends the player's turn")
	assert.True(t, r.HoleHidden())
	assert.Equal(t, 6, r.VisibleDealerTotal())

	_, err = e.Hit(r)
	assert.ErrorIs(t, err, ErrInvalidPhase)

	stage, err := e.DealerStep(r)
	require.NoError(t, err)
	assert.Equal(t, DealerRevealed, stage)
	assert.False(t, r.HoleHidden())
	assert.Equal(t, 16, r.VisibleDealerTotal())

	stage, err = e.DealerStep(r)
	require.NoError(t, err)
	assert.Equal(t, DealerHit, stage)
	assert.Equal(t, 21, r.DealerTotal())

	stage, err = e.DealerStep(r)
	require.NoError(t, err)
	assert.Equal(t, DealerStood, stage)
	assert.Equal(t, PhaseResolved, r.Phase)
	assert.Equal(t, OutcomePush, r.Outcome)

	delta, err := e.Settle(p, r)
	require.NoError(t, err)
	assert.Zero(t, delta)
	assert.Equal(t, 1000.0, p.Balance)
}

func TestRoundPlayerBust(t *testing.T) {
	e := newTestEngine(nil,
		deckIndex(King, Clubs), deckIndex(Queen, Clubs),
		deckIndex(10, Spades), deckIndex(9, Spades),
		deckIndex(King, Hearts),
	)
	p := newTestPlayer(t)
	r, err := NewRound(p, 200)
	require.NoError(t, err)
	require.NoError(t, e.Deal(r))
	require.Equal(t, PhasePlayerTurn, r.Phase)

	c, err := e.Hit(r)
	require.NoError(t, err)
	assert.Equal(t, King, c.Rank)
	assert.Equal(t, 30, r.PlayerTotal())
	assert.Equal(t, PhaseDealerTurn, r.Phase)

	require.NoError(t, e.PlayDealer(r))
	assert.Equal(t, OutcomePlayerBust, r.Outcome)

	delta, err := e.Settle(p, r)
	require.NoError(t, err)
	assert.Equal(t, -200.0, delta)
	assert.Equal(t, 800.0, p.Balance)

	delta, err = e.Settle(p, r)
	require.NoError(t, err)
	assert.Zero(t, delta, "a round pays out once")
	assert.Equal(t, 800.0, p.Balance)
}

func TestRoundDealerBust(t *testing.T) {
	e := newTestEngine(nil,
		deckIndex(10, Diamonds), deckIndex(8, Diamonds),
		deckIndex(10, Clubs), deckIndex(6, Clubs),
		deckIndex(10, Hearts),
	)
	p := newTestPlayer(t)
	r, err := NewRound(p, 50)
	require.NoError(t, err)
	require.NoError(t, e.Deal(r))

	require.NoError(t, r.Stand())
	assert.ErrorIs(t, r.Stand(), ErrInvalidPhase)

	_, err = e.Settle(p, r)
	assert.ErrorIs(t, err, ErrInvalidPhase, "cannot settle before the dealer plays")

	require.NoError(t, e.PlayDealer(r))
	assert.Equal(t, 26, r.DealerTotal())
	assert.Equal(t, OutcomeDealerBust, r.Outcome)

	delta, err := e.Settle(p, r)
	require.NoError(t, err)
	assert.Equal(t, 50.0, delta)
	assert.Equal(t, 1050.0, p.Balance)
}

func TestRoundDrawsWithReplacement(t *testing.T) {
	ace := deckIndex(Ace, Spades)
	e := newTestEngine(nil, ace, ace, ace, ace)
	p := newTestPlayer(t)
	r, err := NewRound(p, 10)
	require.NoError(t, err)
	require.NoError(t, e.Deal(r))

	assert.Equal(t, r.Player[0], r.Player[1])
	assert.Equal(t, r.Dealer[0], r.Dealer[1])
	assert.Equal(t, 12, r.PlayerTotal())
}

func TestRoundClear(t *testing.T) {
	e := NewEngine(NewRandom(7), nil)
	p := newTestPlayer(t)
	r, err := NewRound(p, 10)
	require.NoError(t, err)
	require.NoError(t, e.Deal(r))
	if r.Phase == PhasePlayerTurn {
		require.NoError(t, r.Stand())
	}
	require.NoError(t, e.PlayDealer(r))
	_, err = e.Settle(p, r)
	require.NoError(t, err)

	r.Clear()
	assert.Equal(t, PhaseIdle, r.Phase)
	assert.Equal(t, OutcomePending, r.Outcome)
	assert.Empty(t, r.Player)
	assert.Empty(t, r.Dealer)
	require.NoError(t, e.Deal(r), "a cleared round can be dealt again")

	_, err = e.DealerStep(&BlackjackRound{})
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestOutcomeDelta(t *testing.T) {
	assert.Equal(t, 10.0, OutcomePlayerWins.Delta(10))
	assert.Equal(t, 10.0, OutcomeDealerBust.Delta(10))
	assert.Equal(t, -10.0, OutcomeDealerWins.Delta(10))
	assert.Equal(t, -10.0, OutcomePlayerBust.Delta(10))
	assert.Zero(t, OutcomePush.Delta(10))
}
