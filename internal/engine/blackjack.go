package engine

import (
	"fmt"
	"strconv"

	"github.com/tatianab/lifesim/internal/models"
)

type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var suitNames = [...]string{"hearts", "diamonds", "clubs", "spades"}

func (s Suit) String() string { return suitNames[s] }

// Rank runs from Ace (1) to King (13).
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return strconv.Itoa(int(r))
}

// Value is the card's hard value: aces count 1, faces count 10.
func (r Rank) Value() int {
	if r >= 10 {
		return 10
	}
	return int(r)
}

type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string { return c.Rank.String() + " of " + c.Suit.String() }

// Deck is the full 52-card set every draw samples from.
var Deck = func() []Card {
	cards := make([]Card, 0, 52)
	for s := Hearts; s <= Spades; s++ {
		for r := Ace; r <= King; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return cards
}()

// HandValue counts aces as 1, then upgrades each to 11 while that keeps the
// hand at 21 or under.
func HandValue(cards []Card) int {
	sum, aces := 0, 0
	for _, c := range cards {
		if c.Rank == Ace {
			aces++
		}
		sum += c.Rank.Value()
	}
	for ; aces > 0; aces-- {
		if sum+10 <= 21 {
			sum += 10
		}
	}
	return sum
}

// Cards are drawn with replacement: the table never runs a depleting shoe.
func (e *Engine) drawCard() Card {
	return Deck[e.rng.IntN(len(Deck))]
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "player turn"
	case PhaseDealerTurn:
		return "dealer turn"
	case PhaseResolved:
		return "resolved"
	}
	return "idle"
}

type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomePlayerBust
	OutcomeDealerBust
	OutcomePlayerWins
	OutcomeDealerWins
	OutcomePush
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayerBust:
		return "Player busts. Dealer wins!"
	case OutcomeDealerBust:
		return "Dealer busts. You win!"
	case OutcomePlayerWins:
		return "You win!"
	case OutcomeDealerWins:
		return "Dealer wins."
	case OutcomePush:
		return "Push."
	}
	return "In play"
}

// Delta is the balance change for a bet with this outcome.
func (o Outcome) Delta(bet int) float64 {
	switch o {
	case OutcomeDealerBust, OutcomePlayerWins:
		return float64(bet)
	case OutcomePlayerBust, OutcomeDealerWins:
		return -float64(bet)
	}
	return 0
}

// DealerStage names what a single DealerStep did.
type DealerStage int

const (
	DealerRevealed DealerStage = iota
	DealerHit
	DealerStood
)

// BlackjackRound is one hand at the table. It only touches the player's
// balance in Settle.
type BlackjackRound struct {
	Bet     int
	Player  []Card
	Dealer  []Card // Dealer[1] is the hole card
	Phase   Phase
	Outcome Outcome

	holeHidden bool
	settled    bool
}

// NewRound validates a bet against the player's balance.
func NewRound(p *models.PlayerState, bet int) (*BlackjackRound, error) {
	if err := checkAlive(p); err != nil {
		return nil, err
	}
	if bet < 0 {
		return nil, invalid("bet", "cannot be negative")
	}
	if float64(bet) > p.Balance {
		return nil, ErrInsufficientFunds
	}
	return &BlackjackRound{Bet: bet}, nil
}

// HoleHidden reports whether the dealer's second card is still face down.
func (r *BlackjackRound) HoleHidden() bool { return r.holeHidden }

// PlayerTotal is the player's hand value.
func (r *BlackjackRound) PlayerTotal() int { return HandValue(r.Player) }

// DealerTotal is the dealer's full hand value once revealed.
func (r *BlackjackRound) DealerTotal() int { return HandValue(r.Dealer) }

// VisibleDealerTotal counts only the face-up dealer cards.
func (r *BlackjackRound) VisibleDealerTotal() int {
	if r.holeHidden && len(r.Dealer) > 1 {
		return HandValue(r.Dealer[:1])
	}
	return HandValue(r.Dealer)
}

// Deal starts the hand: two cards for the player, one up and one down for
// the dealer.
func (e *Engine) Deal(r *BlackjackRound) error {
	if r.Phase != PhaseIdle {
		return fmt.Errorf("deal: %w", ErrInvalidPhase)
	}
	r.Player = append(r.Player, e.drawCard(), e.drawCard())
	r.Dealer = append(r.Dealer, e.drawCard(), e.drawCard())
	r.holeHidden = true
	r.Phase = PhasePlayerTurn
	r.forceStand()
	return nil
}

// Hit gives the player one more card. Reaching 21 or more ends the turn.
func (e *Engine) Hit(r *BlackjackRound) (Card, error) {
	if r.Phase != PhasePlayerTurn {
		return Card{}, fmt.Errorf("hit: %w", ErrInvalidPhase)
	}
	c := e.drawCard()
	r.Player = append(r.Player, c)
	r.forceStand()
	return c, nil
}

func (r *BlackjackRound) forceStand() {
	if r.PlayerTotal() >= 21 {
		r.Phase = PhaseDealerTurn
	}
}

// Stand ends the player's turn.
func (r *BlackjackRound) Stand() error {
	if r.Phase != PhasePlayerTurn {
		return fmt.Errorf("stand: %w", ErrInvalidPhase)
	}
	r.Phase = PhaseDealerTurn
	return nil
}

// DealerStep plays one stage of the dealer's turn: the reveal, one hit, or
// the final stand that resolves the hand. Hosts call it on a timer.
func (e *Engine) DealerStep(r *BlackjackRound) (DealerStage, error) {
	if r.Phase != PhaseDealerTurn {
		return 0, fmt.Errorf("dealer step: %w", ErrInvalidPhase)
	}
	if r.holeHidden {
		r.holeHidden = false
		return DealerRevealed, nil
	}
	if r.DealerTotal() < 17 {
		r.Dealer = append(r.Dealer, e.drawCard())
		return DealerHit, nil
	}
	r.Outcome = resolveHand(r.PlayerTotal(), r.DealerTotal())
	r.Phase = PhaseResolved
	return DealerStood, nil
}

// PlayDealer runs every remaining dealer stage at once.
func (e *Engine) PlayDealer(r *BlackjackRound) error {
	for r.Phase == PhaseDealerTurn {
		if _, err := e.DealerStep(r); err != nil {
			return err
		}
	}
	return nil
}

func resolveHand(player, dealer int) Outcome {
	switch {
	case player > 21:
		return OutcomePlayerBust
	case dealer > 21:
		return OutcomeDealerBust
	case player > dealer:
		return OutcomePlayerWins
	case dealer > player:
		return OutcomeDealerWins
	default:
		return OutcomePush
	}
}

// Settle pays out a resolved hand. It applies at most once per round.
func (e *Engine) Settle(p *models.PlayerState, r *BlackjackRound) (float64, error) {
	if r.Phase != PhaseResolved {
		return 0, fmt.Errorf("settle: %w", ErrInvalidPhase)
	}
	if r.settled {
		return 0, nil
	}
	delta := r.Outcome.Delta(r.Bet)
	p.Balance += delta
	r.settled = true

	e.logger.Info("blackjack settled",
		"player", p.Name, "bet", r.Bet, "outcome", r.Outcome.String(),
		"player_total", r.PlayerTotal(), "dealer_total", r.DealerTotal(),
	)
	return delta, nil
}

// Clear empties the table and returns the round to PhaseIdle.
func (r *BlackjackRound) Clear() {
	r.Player = nil
	r.Dealer = nil
	r.Phase = PhaseIdle
	r.Outcome = OutcomePending
	r.holeHidden = false
	r.settled = false
}
