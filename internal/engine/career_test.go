package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/lifesim/internal/models"
)

func employedAtYearEnd(t *testing.T, e *Engine) *models.PlayerState {
	t.Helper()
	p := newTestPlayer(t)
	_, err := e.TakeJob(p, "Barista")
	require.NoError(t, err)
	res, err := e.AdvanceTime(p, YearLength)
	require.NoError(t, err)
	require.Equal(t, GateReview, res.Pending)
	return p
}

func TestReviewSuccessRate(t *testing.T) {
	assert.InDelta(t, 0.64, ReviewSuccessRate(6, 4), 1e-9)
	assert.InDelta(t, 0.41, ReviewSuccessRate(1, 1), 1e-9)
	assert.InDelta(t, 0.82, ReviewSuccessRate(8, 7), 1e-9)
	assert.Equal(t, 1.0, ReviewSuccessRate(10, 10))
}

func TestPerformanceReviewRaise(t *testing.T) {
	e := newTestEngine([]float64{0.0, 0.5})
	p := employedAtYearEnd(t, e)

	res, err := e.PerformanceReview(p)
	require.NoError(t, err)

	assert.True(t, res.Raised)
	assert.InDelta(t, 0.065, res.Percent, 1e-9)
	assert.InDelta(t, 29820, p.Salary, 1e-9)
	require.Len(t, res.Time.Years, 1)
	assert.InDelta(t, 30820, p.Balance, 1e-9, "the raised salary is paid at year close")
	assert.False(t, p.IsTestTime)
}

func TestPerformanceReviewNoRaise(t *testing.T) {
	e := newTestEngine([]float64{0.99})
	p := employedAtYearEnd(t, e)

	res, err := e.PerformanceReview(p)
	require.NoError(t, err)

	assert.False(t, res.Raised)
	assert.Equal(t, 28000.0, p.Salary)
	assert.Equal(t, float64(ReviewFailStress), p.Stress)
	assert.Equal(t, 29000.0, p.Balance)

	_, err = e.PerformanceReview(p)
	assert.ErrorIs(t, err, ErrNoTestPending)
}

func TestTakeJob(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)

	_, err := e.TakeJob(p, "Astronaut")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = e.TakeJob(p, "Software Engineer")
	assert.ErrorAs(t, err, &verr, "needs a degree")
	assert.False(t, p.IsEmployed)

	p.IsGraduate = true
	p.CollegeMajor = models.MajorCompSci
	job, err := e.TakeJob(p, "Software Engineer")
	require.NoError(t, err)
	assert.Equal(t, job.Salary, p.Salary)
	assert.Equal(t, "Software Engineer", p.JobTitle)

	require.NoError(t, e.QuitJob(p))
	assert.False(t, p.IsEmployed)
	assert.Zero(t, p.Salary)
	assert.Error(t, e.QuitJob(p))
}

func TestTakeJobWhileGated(t *testing.T) {
	e := newTestEngine(nil)
	p := employedAtYearEnd(t, e)

	_, err := e.TakeJob(p, "Office Clerk")
	assert.ErrorIs(t, err, ErrTestPending)
	assert.ErrorIs(t, e.QuitJob(p), ErrTestPending)
}
