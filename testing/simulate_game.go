package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"slices"

	charmlog "github.com/charmbracelet/log"
	"github.com/tatianab/lifesim/internal/config"
	"github.com/tatianab/lifesim/internal/engine"
	"github.com/tatianab/lifesim/internal/models"
	"github.com/tatianab/lifesim/internal/narrator"
)

const (
	maxTurns = 400
	tableBet = 50
)

// agent is the autoplayer's policy. It draws from its own source so the
// engine's sequence is the same one a human would see for a given seed.
type agent struct {
	rng *rand.Rand
	eng *engine.Engine
	nar narrator.Narrator
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "sim", Level: charmlog.WarnLevel})
	a := agent{
		rng: engine.NewRandom(seed + 1),
		eng: engine.NewEngine(engine.NewRandom(seed), logger),
		nar: narrator.Plain{},
	}
	if cfg.Narrated() {
		g, err := narrator.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			log.Fatalf("Failed to create narrator: %v", err)
		}
		defer g.Close()
		a.nar = g
	}

	p, err := engine.NewCharacter("Sim", models.GenderFemale, 8, 5, 5)
	if err != nil {
		log.Fatalf("Failed to create character: %v", err)
	}
	session := models.NewGameSession("simulation", p)
	fmt.Printf("--- %s begins at %d with $%.0f (seed %d) ---\n\n", p.Name, p.Age, p.Balance, seed)

	for turn := 1; turn <= maxTurns && !session.Player.GameOver; turn++ {
		res, err := a.turn(&session.Player)
		if err != nil && !isRecoverable(err) {
			fmt.Printf("Turn %d stopped: %v\n", turn, err)
			break
		}
		for _, rep := range res.Years {
			text, err := a.nar.Recap(ctx, &session.Player, rep)
			if err != nil {
				text = fmt.Sprintf("(no recap: %v)", err)
			}
			session.History.Append(models.HistoryEntry{
				Age: rep.Age, Events: rep.Events(), Narrative: text,
				Health: rep.Health.Health, Balance: session.Player.Balance,
			})
			fmt.Printf("Age %d: %s\n", rep.Age, text)
		}
	}

	final := session.Player
	fmt.Printf("\n--- Ended at age %d, health %.1f, net worth $%.2f ---\n", final.Age, final.Health, final.NetWorth())
	if final.IsGraduate {
		fmt.Printf("Graduated in %s, working as %s.\n", final.CollegeMajor, final.JobTitle)
	}
}

func isRecoverable(err error) bool {
	var verr *engine.ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, engine.ErrInsufficientFunds) ||
		errors.Is(err, engine.ErrNothingOwed) ||
		errors.Is(err, engine.ErrNoStock)
}

// turn resolves any year-end test first, then picks one action.
func (a agent) turn(p *models.PlayerState) (engine.TimeResult, error) {
	if p.IsTestTime {
		if p.IsEnrolled {
			return a.finalExam(p)
		}
		res, err := a.eng.PerformanceReview(p)
		return res.Time, err
	}

	switch {
	case !p.IsEnrolled && !p.IsGraduate && p.Age < 25 && p.Time < engine.TurnLength:
		if err := a.entranceExam(p); err != nil {
			return engine.TimeResult{}, err
		}
		return a.eng.AdvanceTime(p, engine.TurnLength)
	case p.IsGraduate && !a.hasDegreeJob(p):
		for _, j := range engine.Jobs {
			if j.Degree == p.CollegeMajor {
				_, err := a.eng.TakeJob(p, j.Title)
				return engine.TimeResult{}, err
			}
		}
	case !p.IsEmployed && !p.IsEnrolled:
		_, err := a.eng.TakeJob(p, "Barista")
		return engine.TimeResult{}, err
	case p.CollegeDebt > 0 && p.Balance >= engine.TuitionPayment+2000:
		_, err := a.eng.PayTuition(p)
		return engine.TimeResult{}, err
	case p.Stress > 75 && p.Balance > engine.VacationCost:
		v, err := a.eng.TakeVacation(p)
		return v.Time, err
	case p.Health < 50 && p.Balance > 100:
		c, err := a.eng.VisitDoctor(p)
		return c.Time, err
	case p.Balance > 5000 && p.StockBalance < p.Balance:
		return engine.TimeResult{}, a.eng.BuyStock(p, p.Balance*0.2)
	case p.Balance > tableBet*4 && a.rng.IntN(6) == 0:
		return engine.TimeResult{}, a.blackjack(p)
	}
	return a.eng.AdvanceTime(p, engine.TurnLength)
}

func (a agent) hasDegreeJob(p *models.PlayerState) bool {
	job, ok := engine.FindJob(p.JobTitle)
	return p.IsEmployed && ok && job.Degree == p.CollegeMajor
}

// answer picks the right choice with a chance that grows with intelligence.
func (a agent) answer(p *models.PlayerState, s *engine.ExamSession) {
	for !s.Done() {
		q, _ := s.Current()
		choice := q.Choices[a.rng.IntN(len(q.Choices))]
		if a.rng.Float64() < float64(p.Intelligence)/10 {
			choice = q.Correct
		}
		if _, err := s.Answer(choice); err != nil {
			log.Fatalf("Failed to answer: %v", err)
		}
	}
}

func (a agent) entranceExam(p *models.PlayerState) error {
	major := models.Majors[a.rng.IntN(len(models.Majors))]
	s, err := a.eng.StartEntranceExam(p, major)
	if err != nil {
		return err
	}
	a.answer(p, s)
	res, err := a.eng.ResolveEntranceExam(p, s)
	if err == nil {
		fmt.Printf("Entrance exam for %s: %d/%d. %s\n", major, res.Score, res.Total, res.Message)
	}
	return err
}

func (a agent) finalExam(p *models.PlayerState) (engine.TimeResult, error) {
	s, err := a.eng.StartFinalExam(p)
	if err != nil {
		return engine.TimeResult{}, err
	}
	a.answer(p, s)
	res, err := a.eng.ResolveFinalExam(p, s)
	if err == nil {
		fmt.Printf("Final exam: %d/%d. %s\n", res.Score, res.Total, res.Message)
	}
	return res.Time, err
}

// blackjack hits below 17 like the dealer does.
func (a agent) blackjack(p *models.PlayerState) error {
	r, err := engine.NewRound(p, tableBet)
	if err != nil {
		return err
	}
	if err := a.eng.Deal(r); err != nil {
		return err
	}
	for r.Phase == engine.PhasePlayerTurn && r.PlayerTotal() < 17 {
		if _, err := a.eng.Hit(r); err != nil {
			return err
		}
	}
	if r.Phase == engine.PhasePlayerTurn {
		if err := r.Stand(); err != nil {
			return err
		}
	}
	if err := a.eng.PlayDealer(r); err != nil {
		return err
	}
	delta, err := a.eng.Settle(p, r)
	if err == nil && slices.Contains([]engine.Outcome{engine.OutcomePlayerWins, engine.OutcomeDealerBust}, r.Outcome) {
		fmt.Printf("Won $%.0f at blackjack (%d vs %d).\n", delta, r.PlayerTotal(), r.DealerTotal())
	}
	return err
}
