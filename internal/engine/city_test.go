package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsultationFee(t *testing.T) {
	fee, _ := ConsultationFee(95)
	assert.Equal(t, 10.0, fee)
	fee, _ = ConsultationFee(90)
	assert.Equal(t, 20.0, fee)
	fee, _ = ConsultationFee(51)
	assert.Equal(t, 20.0, fee)
	fee, advice := ConsultationFee(50)
	assert.Equal(t, 30.0, fee)
	assert.Contains(t, advice, "gym")
}

func TestVisitDoctor(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)
	p.Health = 40

	c, err := e.VisitDoctor(p)
	require.NoError(t, err)
	assert.Equal(t, 30.0, c.Fee)
	assert.Equal(t, 970.0, p.Balance)
	assert.Equal(t, DoctorTime, p.Time)

	p.Balance = 5
	_, err = e.VisitDoctor(p)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, DoctorTime, p.Time, "no time passes on a refused visit")
}

func TestTakeVacation(t *testing.T) {
	e := newTestEngine(nil, 1)
	p := newTestPlayer(t)
	p.Stress = 30

	v, err := e.TakeVacation(p)
	require.NoError(t, err)
	assert.Equal(t, "You went to the Beach", v.Destination)
	assert.Equal(t, 30.0, v.Relief)
	assert.Zero(t, p.Stress, "stress never goes negative")
	assert.Equal(t, 850.0, p.Balance)
	assert.Equal(t, VacationTime, p.Time)

	p.Balance = 100
	_, err = e.TakeVacation(p)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestCityBlockedByPendingTest(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)
	p.IsTestTime = true

	_, err := e.VisitDoctor(p)
	assert.ErrorIs(t, err, ErrTestPending)
	_, err = e.TakeVacation(p)
	assert.ErrorIs(t, err, ErrTestPending)
	assert.Equal(t, 1000.0, p.Balance)
}
