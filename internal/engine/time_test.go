package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceTimeWithinYear(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)

	res, err := e.AdvanceTime(p, TurnLength)
	require.NoError(t, err)

	assert.Empty(t, res.Years)
	assert.Equal(t, GateNone, res.Pending)
	assert.Equal(t, 25, p.Time)
	assert.Equal(t, 21, p.Age)
}

func TestAdvanceTimeClosesFreeYear(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)
	p.Time = 90

	res, err := e.AdvanceTime(p, 20)
	require.NoError(t, err)

	require.Len(t, res.Years, 1)
	assert.Equal(t, 10, p.Time, "excess time carries over")
	assert.Equal(t, 22, p.Age, "age increases exactly once")
	assert.Equal(t, 22, res.Years[0].Age)
	assert.InDelta(t, 100-math.Log(21)*0.25, p.Health, 1e-9)
	assert.False(t, p.IsTestTime)
	assert.False(t, p.TestTaken)
}

func TestAdvanceTimeClosesSeveralYears(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)

	res, err := e.AdvanceTime(p, 250)
	require.NoError(t, err)

	assert.Len(t, res.Years, 2)
	assert.Equal(t, 50, p.Time)
	assert.Equal(t, 23, p.Age)
}

func TestAdvanceTimeGatesEnrolledStudent(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)
	p.IsEnrolled = true
	p.Time = 90

	res, err := e.AdvanceTime(p, 20)
	require.NoError(t, err)

	assert.Equal(t, GateFinalExam, res.Pending)
	assert.Empty(t, res.Years)
	assert.True(t, p.IsTestTime)
	assert.Equal(t, 110, p.Time, "time is not reset until the exam is resolved")
	assert.Equal(t, 21, p.Age)

	_, err = e.AdvanceTime(p, 5)
	assert.ErrorIs(t, err, ErrTestPending)
	assert.Equal(t, 110, p.Time)
}

func TestAdvanceTimeGatesEmployedPlayer(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)
	_, err := e.TakeJob(p, "Barista")
	require.NoError(t, err)
	p.Time = 99

	res, err := e.AdvanceTime(p, 1)
	require.NoError(t, err)
	assert.Equal(t, GateReview, res.Pending)
	assert.True(t, p.IsTestTime)
}

func TestCloseYearPaysSalaryAndInterest(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)
	p.IsEmployed = true
	p.Salary = 30000
	p.TestTaken = true
	p.HasLoan = true
	p.Debt = 500
	p.LoanInterest = 0.12
	p.Time = 100

	res, err := e.AdvanceTime(p, 0)
	require.NoError(t, err)

	require.Len(t, res.Years, 1)
	rep := res.Years[0]
	assert.Equal(t, 30000.0, rep.Salary)
	assert.InDelta(t, 60, rep.Interest, 1e-9)
	assert.Equal(t, 31000.0, p.Balance)
	assert.InDelta(t, 560, p.Debt, 1e-9)
	assert.False(t, p.TestTaken, "the next year needs its own review")
	assert.NotEmpty(t, rep.Events())
}

func TestCloseYearAppliesStock(t *testing.T) {
	e := newTestEngine([]float64{0.1, 1.0 / 9})
	p := newTestPlayer(t)
	p.StockBalance = 1000
	p.Time = 100

	res, err := e.AdvanceTime(p, 0)
	require.NoError(t, err)

	require.Len(t, res.Years, 1)
	require.NotNil(t, res.Years[0].Stock)
	assert.True(t, res.Years[0].Stock.Gain)
	assert.InDelta(t, 1020, p.StockBalance, 1e-9)
}

func TestAdvanceTimeRejectsNegative(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)

	_, err := e.AdvanceTime(p, -1)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAdvanceTimeGameOver(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)
	p.Health = 0.1
	p.Stress = 200

	res, err := e.AdvanceTime(p, 300)
	require.NoError(t, err)

	require.Len(t, res.Years, 1, "nothing happens after death")
	assert.True(t, res.Years[0].GameOver)
	assert.True(t, p.GameOver)
	assert.Equal(t, 0.0, p.Health)

	_, err = e.AdvanceTime(p, 1)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = e.AcceptLoan(p)
	assert.ErrorIs(t, err, ErrGameOver)
}
