package engine

import (
	"fmt"
	"math"

	"github.com/tatianab/lifesim/internal/models"
)

const (
	debtStressStep   = 100000 // every full step of combined debt...
	debtStressAmount = 125    // ...adds this much stress per year
	healthScale      = 0.5
)

// HealthReport describes one application of yearly health decay.
type HealthReport struct {
	DebtStress float64
	Multiplier float64
	Decrease   float64
	Health     float64
	GameOver   bool
}

// StressMultiplier maps a stress level onto how hard it hits health.
func StressMultiplier(stress float64) float64 {
	switch {
	case stress >= 125:
		return 3.0
	case stress >= 75:
		return 2.0
	case stress >= 25:
		return 1.0
	default:
		return 0.5
	}
}

// HealthDecrease is the health lost in a year at the given age and stress.
func HealthDecrease(age int, stress float64) (float64, error) {
	if age <= 0 {
		return 0, fmt.Errorf("health decrease: age must be positive, got %d", age)
	}
	return math.Log(float64(age)) * StressMultiplier(stress) * healthScale, nil
}

// ApplyHealthDecay adds debt stress, takes the year's health loss and ages
// the player by one year. It is the only place age increases.
func ApplyHealthDecay(p *models.PlayerState) (HealthReport, error) {
	if p.Age <= 0 {
		return HealthReport{}, fmt.Errorf("health decay: age must be positive, got %d", p.Age)
	}

	debtStress := math.Floor((p.CollegeDebt+p.Debt)/debtStressStep) * debtStressAmount
	p.Stress += debtStress

	decrease, err := HealthDecrease(p.Age, p.Stress)
	if err != nil {
		return HealthReport{}, err
	}

	p.Health = math.Min(p.Health-decrease, StartingHealth)
	if p.Health < 0 {
		p.Health = 0
	}
	p.Age++

	rep := HealthReport{
		DebtStress: debtStress,
		Multiplier: StressMultiplier(p.Stress),
		Decrease:   decrease,
		Health:     p.Health,
	}
	if p.Health == 0 {
		p.GameOver = true
		rep.GameOver = true
	}
	return rep, nil
}
