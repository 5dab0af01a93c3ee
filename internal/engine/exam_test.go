package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/lifesim/internal/models"
)

func wrongChoice(t *testing.T, q ExamQuestion) string {
	t.Helper()
	for _, c := range q.Choices {
		if c != q.Correct {
			return c
		}
	}
	t.Fatalf("question %q has no wrong choice", q.Prompt)
	return ""
}

// answerAll answers the remaining questions, correctly where right[i] is true.
func answerAll(t *testing.T, s *ExamSession, right ...bool) {
	t.Helper()
	for _, ok := range right {
		q, more := s.Current()
		require.True(t, more)
		choice := q.Correct
		if !ok {
			choice = wrongChoice(t, q)
		}
		got, err := s.Answer(choice)
		require.NoError(t, err)
		require.Equal(t, ok, got)
	}
	require.True(t, s.Done())
}

func TestChoiceCount(t *testing.T) {
	assert.Equal(t, 4, ChoiceCount(1))
	assert.Equal(t, 4, ChoiceCount(6))
	assert.Equal(t, 3, ChoiceCount(7))
	assert.Equal(t, 3, ChoiceCount(9))
	assert.Equal(t, 2, ChoiceCount(10))
}

func TestEntranceExamPass(t *testing.T) {
	e := NewEngine(NewRandom(3), nil)
	p := newTestPlayer(t)

	s, err := e.StartEntranceExam(p, models.MajorBiology)
	require.NoError(t, err)
	require.Len(t, s.Questions, EntranceQuestionCount)
	for _, q := range s.Questions {
		assert.Len(t, q.Choices, 4)
		assert.Contains(t, q.Choices, q.Correct)
	}

	answerAll(t, s, true, true, false)
	res, err := e.ResolveEntranceExam(p, s)
	require.NoError(t, err)

	assert.True(t, res.Passed)
	assert.Equal(t, 2, res.Score)
	assert.True(t, p.IsEnrolled)
	assert.Equal(t, models.MajorBiology, p.CollegeMajor)
	assert.Equal(t, 1, p.CollegeYear)
	assert.Equal(t, 20000.0, p.CollegeDebt)
}

func TestEntranceExamFail(t *testing.T) {
	e := NewEngine(NewRandom(3), nil)
	p := newTestPlayer(t)

	s, err := e.StartEntranceExam(p, models.MajorHistory)
	require.NoError(t, err)
	answerAll(t, s, false, true, false)

	res, err := e.ResolveEntranceExam(p, s)
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.False(t, p.IsEnrolled)
	assert.Zero(t, p.CollegeDebt)
	assert.Zero(t, p.Stress)
}

func TestEntranceExamErrors(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)

	_, err := e.StartEntranceExam(p, "Astrology")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	s, err := e.StartEntranceExam(p, models.MajorCompSci)
	require.NoError(t, err)

	_, err = e.ResolveEntranceExam(p, s)
	assert.ErrorIs(t, err, ErrInvalidPhase, "unfinished exam")

	_, err = s.Answer("not a choice")
	assert.ErrorAs(t, err, &verr)
	assert.Zero(t, s.Index)

	answerAll(t, s, true, true, true)
	_, err = s.Answer(s.Questions[0].Correct)
	assert.ErrorIs(t, err, ErrExamFinished)

	_, err = e.ResolveEntranceExam(p, s)
	require.NoError(t, err)
	_, err = e.ResolveEntranceExam(p, s)
	assert.ErrorIs(t, err, ErrInvalidPhase, "already resolved")

	_, err = e.StartEntranceExam(p, models.MajorBiology)
	assert.ErrorAs(t, err, &verr, "already enrolled")
}

func enrolledAtYearEnd(t *testing.T, e *Engine, year int) *models.PlayerState {
	t.Helper()
	p := newTestPlayer(t)
	p.IsEnrolled = true
	p.CollegeMajor = models.MajorCompSci
	p.CollegeYear = year
	p.Time = 100
	res, err := e.AdvanceTime(p, 0)
	require.NoError(t, err)
	require.Equal(t, GateFinalExam, res.Pending)
	return p
}

func TestFinalExamPass(t *testing.T) {
	e := NewEngine(NewRandom(11), nil)
	p := enrolledAtYearEnd(t, e, 1)

	s, err := e.StartFinalExam(p)
	require.NoError(t, err)
	require.Len(t, s.Questions, 2)
	for _, q := range s.Questions {
		assert.Len(t, q.Choices, ChoiceCount(p.Intelligence))
		assert.Contains(t, q.Choices, q.Correct)
	}

	answerAll(t, s, false, true)
	res, err := e.ResolveFinalExam(p, s)
	require.NoError(t, err)

	assert.True(t, res.Passed)
	assert.Equal(t, 2, p.CollegeYear)
	assert.Equal(t, 20000.0, p.CollegeDebt)
	assert.Len(t, res.Time.Years, 1, "resolving the exam closes the year")
	assert.Equal(t, 22, p.Age)
	assert.Equal(t, 0, p.Time)
	assert.False(t, p.IsTestTime)
}

func TestFinalExamFail(t *testing.T) {
	e := NewEngine(NewRandom(11), nil)
	p := enrolledAtYearEnd(t, e, 2)

	s, err := e.StartFinalExam(p)
	require.NoError(t, err)
	answerAll(t, s, false, false)

	res, err := e.ResolveFinalExam(p, s)
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, 2, p.CollegeYear)
	assert.Equal(t, 80.0, p.Stress)
	assert.Equal(t, 20000.0, p.CollegeDebt)
	assert.True(t, p.IsEnrolled)
	assert.Len(t, res.Time.Years, 1)
}

func TestFinalExamGraduates(t *testing.T) {
	e := NewEngine(NewRandom(5), nil)
	p := enrolledAtYearEnd(t, e, 4)
	p.Intelligence = 10

	s, err := e.StartFinalExam(p)
	require.NoError(t, err)
	assert.Len(t, s.Questions[0].Choices, 2)
	answerAll(t, s, true, true)

	res, err := e.ResolveFinalExam(p, s)
	require.NoError(t, err)
	assert.True(t, res.Graduated)
	assert.True(t, p.IsGraduate)
	assert.False(t, p.IsEnrolled)
	assert.Zero(t, p.CollegeDebt)

	_, err = e.TakeJob(p, "Software Engineer")
	assert.NoError(t, err)
}

func TestFinalExamNotPending(t *testing.T) {
	e := newTestEngine(nil)
	p := newTestPlayer(t)
	p.IsEnrolled = true
	p.CollegeMajor = models.MajorCompSci

	_, err := e.StartFinalExam(p)
	assert.ErrorIs(t, err, ErrNoTestPending)

	entrance, err := e.StartEntranceExam(newTestPlayer(t), models.MajorCompSci)
	require.NoError(t, err)
	_, err = e.ResolveFinalExam(p, entrance)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr, "not a final exam")
}
