package engine

import (
	"math"

	"github.com/tatianab/lifesim/internal/models"
)

const (
	VacationCost   = 150
	VacationRelief = 50

	DoctorTime   = 5
	VacationTime = 20
)

var vacationDestinations = []string{
	"You went to the Bahamas",
	"You went to the Beach",
	"You went on a Cruise",
}

// Consultation is the doctor's verdict.
type Consultation struct {
	Fee    float64
	Advice string
	Time   TimeResult
}

// ConsultationFee prices a checkup by how healthy the player is.
func ConsultationFee(health float64) (float64, string) {
	switch {
	case health > 90:
		return 10, "You're healthy!"
	case health > 50:
		return 20, "You may need to eat better!"
	default:
		return 30, "You may need to eat better and go to the gym."
	}
}

// VisitDoctor charges the consultation fee and spends DoctorTime.
func (e *Engine) VisitDoctor(p *models.PlayerState) (Consultation, error) {
	if err := checkAlive(p); err != nil {
		return Consultation{}, err
	}
	if p.IsTestTime {
		return Consultation{}, ErrTestPending
	}
	fee, advice := ConsultationFee(p.Health)
	if p.Balance < fee {
		return Consultation{}, ErrInsufficientFunds
	}
	p.Balance -= fee

	tr, err := e.AdvanceTime(p, DoctorTime)
	return Consultation{Fee: fee, Advice: advice, Time: tr}, err
}

// Vacation is a trip's outcome.
type Vacation struct {
	Destination string
	Relief      float64
	Time        TimeResult
}

// TakeVacation spends VacationCost to shed stress.
func (e *Engine) TakeVacation(p *models.PlayerState) (Vacation, error) {
	if err := checkAlive(p); err != nil {
		return Vacation{}, err
	}
	if p.IsTestTime {
		return Vacation{}, ErrTestPending
	}
	if p.Balance < VacationCost {
		return Vacation{}, ErrInsufficientFunds
	}
	p.Balance -= VacationCost
	before := p.Stress
	p.Stress = math.Max(p.Stress-VacationRelief, 0)

	v := Vacation{
		Destination: vacationDestinations[e.rng.IntN(len(vacationDestinations))],
		Relief:      before - p.Stress,
	}
	tr, err := e.AdvanceTime(p, VacationTime)
	v.Time = tr
	return v, err
}
