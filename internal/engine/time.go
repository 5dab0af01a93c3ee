package engine

import (
	"fmt"

	"github.com/tatianab/lifesim/internal/models"
)

const (
	// YearLength is the amount of in-game time in one year.
	YearLength = 100
	// TurnLength is the time spent by simply living for a while.
	TurnLength = 25
)

// Gate is a year-end test that must be resolved before the year can close.
type Gate int

const (
	GateNone Gate = iota
	GateFinalExam
	GateReview
)

func (g Gate) String() string {
	switch g {
	case GateFinalExam:
		return "final exam"
	case GateReview:
		return "performance review"
	}
	return "none"
}

// YearReport lists what happened when a year closed.
type YearReport struct {
	Age      int // age after the year closed
	Salary   float64
	Interest float64
	Stock    *StockOutcome
	Health   HealthReport
	GameOver bool
}

// Events renders the report as short history lines.
func (r YearReport) Events() []string {
	var events []string
	if r.Salary > 0 {
		events = append(events, fmt.Sprintf("Earned $%.0f in salary", r.Salary))
	}
	if r.Interest > 0 {
		events = append(events, fmt.Sprintf("Loan interest added $%.2f", r.Interest))
	}
	if r.Stock != nil {
		verb := "fell"
		if r.Stock.Gain {
			verb = "rose"
		}
		events = append(events, fmt.Sprintf("Stocks %s %.1f%% to $%.2f", verb, r.Stock.Percent*100, r.Stock.After))
	}
	if r.Health.DebtStress > 0 {
		events = append(events, fmt.Sprintf("Debt added %.0f stress", r.Health.DebtStress))
	}
	events = append(events, fmt.Sprintf("Lost %.2f health, now %.1f", r.Health.Decrease, r.Health.Health))
	if r.GameOver {
		events = append(events, "Your health gave out")
	}
	return events
}

// TimeResult is the outcome of spending time.
type TimeResult struct {
	Years   []YearReport
	Pending Gate
}

// AdvanceTime spends delta units of time, closing as many years as the
// clock allows. It stops early at a year-end gate or at game over.
func (e *Engine) AdvanceTime(p *models.PlayerState, delta int) (TimeResult, error) {
	if err := checkAlive(p); err != nil {
		return TimeResult{}, err
	}
	if delta < 0 {
		return TimeResult{}, invalid("time", "cannot move backwards (%d)", delta)
	}
	if p.IsTestTime {
		return TimeResult{}, ErrTestPending
	}
	p.Time += delta
	return e.progress(p)
}

func (e *Engine) progress(p *models.PlayerState) (TimeResult, error) {
	var res TimeResult
	for p.Time >= YearLength {
		if !p.TestTaken {
			if p.IsEnrolled {
				p.IsTestTime = true
				res.Pending = GateFinalExam
				break
			}
			if p.IsEmployed {
				p.IsTestTime = true
				res.Pending = GateReview
				break
			}
		}

		rep, err := e.closeYear(p)
		if err != nil {
			return res, err
		}
		res.Years = append(res.Years, rep)
		if rep.GameOver {
			break
		}
	}
	if res.Pending != GateNone {
		e.logger.Info("year-end test pending", "player", p.Name, "gate", res.Pending)
	}
	return res, nil
}

func (e *Engine) closeYear(p *models.PlayerState) (YearReport, error) {
	p.IsTestTime = false
	p.Time -= YearLength

	var rep YearReport
	if p.IsEmployed && p.Salary > 0 {
		p.Balance += p.Salary
		rep.Salary = p.Salary
	}
	if p.HasLoan && p.Debt > 0 && p.LoanInterest > 0 {
		rep.Interest = p.Debt * p.LoanInterest
		p.Debt += rep.Interest
	}
	if p.StockBalance > 0 {
		out := e.DetermineStock(p)
		rep.Stock = &out
	}

	health, err := ApplyHealthDecay(p)
	if err != nil {
		return rep, err
	}
	p.TestTaken = false

	rep.Health = health
	rep.Age = p.Age
	rep.GameOver = health.GameOver

	e.logger.Info("year closed",
		"player", p.Name, "age", p.Age,
		"health", fmt.Sprintf("%.2f", p.Health), "balance", fmt.Sprintf("%.2f", p.Balance),
	)
	if rep.GameOver {
		e.logger.Warn("game over", "player", p.Name, "age", p.Age)
	}
	return rep, nil
}
