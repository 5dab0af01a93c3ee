package engine

import (
	"math"

	"github.com/tatianab/lifesim/internal/models"
)

// TuitionPayment is the fixed amount paid toward college debt per action.
const TuitionPayment = 10000

// LoanOffer is what the bank will lend at the player's current balance.
type LoanOffer struct {
	Amount float64
	Rate   float64
}

// QualifyLoan tiers the offer by balance.
func QualifyLoan(balance float64) LoanOffer {
	switch {
	case balance < 1000:
		return LoanOffer{Amount: 500, Rate: 0.12}
	case balance < 5000:
		return LoanOffer{Amount: balance * 3, Rate: 0.10}
	case balance < 20000:
		return LoanOffer{Amount: balance * 2.5, Rate: 0.08}
	case balance < 50000:
		return LoanOffer{Amount: balance * 2, Rate: 0.07}
	default:
		return LoanOffer{Amount: balance * 1.5, Rate: 0.06}
	}
}

// AcceptLoan takes out the loan the player currently qualifies for.
func (e *Engine) AcceptLoan(p *models.PlayerState) (LoanOffer, error) {
	if err := checkAlive(p); err != nil {
		return LoanOffer{}, err
	}
	if p.HasLoan {
		return LoanOffer{}, ErrLoanActive
	}

	offer := QualifyLoan(p.Balance)
	p.HasLoan = true
	p.Debt += offer.Amount
	p.Balance += offer.Amount
	p.LoanInterest = offer.Rate

	e.logger.Info("loan accepted", "player", p.Name, "amount", offer.Amount, "rate", offer.Rate)
	return offer, nil
}

// RepayLoan pays the whole loan off, or nothing at all.
func (e *Engine) RepayLoan(p *models.PlayerState) (float64, error) {
	if err := checkAlive(p); err != nil {
		return 0, err
	}
	if !p.HasLoan {
		return 0, ErrNoLoan
	}
	if p.Balance < p.Debt {
		return 0, ErrInsufficientFunds
	}

	paid := p.Debt
	p.Balance -= paid
	p.Debt = 0
	p.LoanInterest = 0
	p.HasLoan = false

	e.logger.Info("loan repaid", "player", p.Name, "amount", paid)
	return paid, nil
}

// PayTuition pays TuitionPayment toward college debt. Only what is owed is
// charged when the remaining debt is smaller than a full payment.
func (e *Engine) PayTuition(p *models.PlayerState) (float64, error) {
	if err := checkAlive(p); err != nil {
		return 0, err
	}
	if p.CollegeDebt <= 0 {
		return 0, ErrNothingOwed
	}
	if p.Balance < TuitionPayment {
		return 0, ErrInsufficientFunds
	}

	paid := math.Min(TuitionPayment, p.CollegeDebt)
	p.Balance -= paid
	p.CollegeDebt = math.Max(p.CollegeDebt-paid, 0)
	return paid, nil
}

// StockOutcome records one year of stock performance.
type StockOutcome struct {
	SuccessRate float64
	Gain        bool
	Percent     float64 // in [0.01, 0.10]
	Before      float64
	After       float64
}

// StockSuccessRate is the chance that stocks gain, by intelligence.
func StockSuccessRate(intelligence int) float64 {
	switch {
	case intelligence == 10:
		return 0.90
	case intelligence >= 7 && intelligence <= 9:
		return 0.80
	case intelligence >= 4 && intelligence <= 6:
		return 0.70
	case intelligence >= 1 && intelligence <= 3:
		return 0.45
	default:
		return 0
	}
}

// DetermineStock applies one year of gains or losses to the stock balance.
func (e *Engine) DetermineStock(p *models.PlayerState) StockOutcome {
	out := StockOutcome{
		SuccessRate: StockSuccessRate(p.Intelligence),
		Before:      p.StockBalance,
	}
	out.Gain = e.rng.Float64() < out.SuccessRate
	out.Percent = e.uniform(0.01, 0.10)

	if out.Gain {
		p.StockBalance *= 1 + out.Percent
	} else {
		p.StockBalance *= 1 - out.Percent
	}
	out.After = p.StockBalance

	e.logger.Debug("stock performance", "player", p.Name, "gain", out.Gain, "percent", out.Percent)
	return out
}

// BuyStock moves amount from balance into stocks.
func (e *Engine) BuyStock(p *models.PlayerState, amount float64) error {
	if err := checkAlive(p); err != nil {
		return err
	}
	if amount <= 0 || math.IsNaN(amount) {
		return invalid("amount", "must be positive")
	}
	if amount > p.Balance {
		return ErrInsufficientFunds
	}
	p.Balance -= amount
	p.StockBalance += amount
	p.HasStock = true
	return nil
}

// SellStock cashes out every share.
func (e *Engine) SellStock(p *models.PlayerState) (float64, error) {
	if err := checkAlive(p); err != nil {
		return 0, err
	}
	if !p.HasStock && p.StockBalance == 0 {
		return 0, ErrNoStock
	}
	amount := p.StockBalance
	p.Balance += amount
	p.StockBalance = 0
	p.HasStock = false
	return amount, nil
}
