package engine

import (
	"fmt"
	"slices"

	"github.com/tatianab/lifesim/internal/models"
)

const (
	EntranceQuestionCount = 3
	EntrancePassScore     = 2
	FinalPassScore        = 1

	TuitionPerYear   = 20000
	FailStressAmount = 80
)

type ExamKind int

const (
	EntranceExam ExamKind = iota
	FinalExam
)

func (k ExamKind) String() string {
	if k == FinalExam {
		return "final exam"
	}
	return "entrance exam"
}

// ExamQuestion is a question as displayed, choices already shuffled.
type ExamQuestion struct {
	Prompt  string
	Correct string
	Choices []string
}

// ExamSession walks through questions one at a time.
type ExamSession struct {
	Kind          ExamKind
	Major         models.Major
	Questions     []ExamQuestion
	Index         int
	Score         int
	PassThreshold int

	resolved bool
}

// Current is the question awaiting an answer.
func (s *ExamSession) Current() (ExamQuestion, bool) {
	if s.Done() {
		return ExamQuestion{}, false
	}
	return s.Questions[s.Index], true
}

func (s *ExamSession) Done() bool { return s.Index >= len(s.Questions) }

func (s *ExamSession) Passed() bool { return s.Done() && s.Score >= s.PassThreshold }

// Answer grades a choice for the current question and moves on.
func (s *ExamSession) Answer(choice string) (bool, error) {
	q, ok := s.Current()
	if !ok {
		return false, ErrExamFinished
	}
	if !slices.Contains(q.Choices, choice) {
		return false, invalid("answer", "%q is not one of the choices", choice)
	}
	correct := choice == q.Correct
	if correct {
		s.Score++
	}
	s.Index++
	return correct, nil
}

// ChoiceCount is how many answers the final exam shows. Brighter students
// see fewer distractors.
func ChoiceCount(intelligence int) int {
	switch {
	case intelligence >= 7 && intelligence <= 9:
		return 3
	case intelligence == 10:
		return 2
	default:
		return 4
	}
}

func (e *Engine) present(q Question, choices int) ExamQuestion {
	wrong := slices.Clone(q.Incorrect)
	shuffle(e.rng, wrong)
	if n := choices - 1; n < len(wrong) {
		wrong = wrong[:n]
	}
	shown := append(wrong, q.Correct)
	shuffle(e.rng, shown)
	return ExamQuestion{Prompt: q.Prompt, Correct: q.Correct, Choices: shown}
}

// ExamResult reports what an exam changed.
type ExamResult struct {
	Passed    bool
	Score     int
	Total     int
	Graduated bool
	Message   string
	Time      TimeResult // years closed by a final exam
}

// StartEntranceExam draws the entrance questions for a chosen major.
func (e *Engine) StartEntranceExam(p *models.PlayerState, major models.Major) (*ExamSession, error) {
	if err := checkAlive(p); err != nil {
		return nil, err
	}
	if !major.Valid() {
		return nil, invalid("major", "choose one of %v", models.Majors)
	}
	if p.IsEnrolled {
		return nil, invalid("enrollment", "already enrolled in %s", p.CollegeMajor)
	}
	if p.IsGraduate {
		return nil, invalid("enrollment", "already graduated in %s", p.CollegeMajor)
	}
	if p.IsTestTime {
		return nil, ErrTestPending
	}

	pool := slices.Clone(entranceQuestions)
	shuffle(e.rng, pool)
	s := &ExamSession{Kind: EntranceExam, Major: major, PassThreshold: EntrancePassScore}
	for _, q := range pool[:EntranceQuestionCount] {
		s.Questions = append(s.Questions, e.present(q, 4))
	}
	return s, nil
}

// ResolveEntranceExam enrolls on a pass. Failing costs nothing.
func (e *Engine) ResolveEntranceExam(p *models.PlayerState, s *ExamSession) (ExamResult, error) {
	if err := checkResolvable(p, s, EntranceExam); err != nil {
		return ExamResult{}, err
	}
	s.resolved = true

	res := ExamResult{Passed: s.Passed(), Score: s.Score, Total: len(s.Questions)}
	if res.Passed {
		p.IsEnrolled = true
		p.CollegeMajor = s.Major
		p.CollegeYear = 1
		p.CollegeDebt += TuitionPerYear
		res.Message = fmt.Sprintf("You passed! You are now in Year 1 of studying %s.", s.Major)
	} else {
		res.Message = "You did not pass the entrance exam."
	}

	e.logger.Info("entrance exam", "player", p.Name, "major", s.Major, "score", s.Score, "passed", res.Passed)
	return res, nil
}

// StartFinalExam builds the year-end exam for an enrolled student.
func (e *Engine) StartFinalExam(p *models.PlayerState) (*ExamSession, error) {
	if err := checkAlive(p); err != nil {
		return nil, err
	}
	if !p.IsEnrolled || !p.IsTestTime || p.TestTaken {
		return nil, ErrNoTestPending
	}
	years, ok := finalQuestions[p.CollegeMajor]
	if !ok {
		return nil, invalid("major", "no exam for %q", p.CollegeMajor)
	}
	if p.CollegeYear < 1 || p.CollegeYear > len(years) {
		return nil, invalid("college year", "must be between 1 and %d, got %d", len(years), p.CollegeYear)
	}

	s := &ExamSession{Kind: FinalExam, Major: p.CollegeMajor, PassThreshold: FinalPassScore}
	n := ChoiceCount(p.Intelligence)
	for _, q := range years[p.CollegeYear-1] {
		s.Questions = append(s.Questions, e.present(q, n))
	}
	return s, nil
}

// ResolveFinalExam advances, graduates or holds back the student, then
// closes the year the exam was gating.
func (e *Engine) ResolveFinalExam(p *models.PlayerState, s *ExamSession) (ExamResult, error) {
	if err := checkResolvable(p, s, FinalExam); err != nil {
		return ExamResult{}, err
	}
	if !p.IsTestTime || p.TestTaken {
		return ExamResult{}, ErrNoTestPending
	}
	s.resolved = true

	res := ExamResult{Passed: s.Passed(), Score: s.Score, Total: len(s.Questions)}
	switch {
	case res.Passed && p.CollegeYear < 4:
		p.CollegeYear++
		p.CollegeDebt += TuitionPerYear
		res.Message = fmt.Sprintf("You are now in Year %d of studying %s.", p.CollegeYear, p.CollegeMajor)
	case res.Passed:
		p.IsGraduate = true
		p.IsEnrolled = false
		res.Graduated = true
		res.Message = fmt.Sprintf("Congratulations! You have Graduated with a Degree in %s!", p.CollegeMajor)
	default:
		p.Stress += FailStressAmount
		p.CollegeDebt += TuitionPerYear
		res.Message = fmt.Sprintf("You are staying back in Year %d of studying %s.", p.CollegeYear, p.CollegeMajor)
	}
	e.logger.Info("final exam", "player", p.Name, "year", p.CollegeYear, "score", s.Score, "passed", res.Passed)

	p.TestTaken = true
	tr, err := e.progress(p)
	res.Time = tr
	return res, err
}

func checkResolvable(p *models.PlayerState, s *ExamSession, kind ExamKind) error {
	if err := checkAlive(p); err != nil {
		return err
	}
	if s == nil || s.Kind != kind {
		return invalid("exam", "not a %s", kind)
	}
	if !s.Done() || s.resolved {
		return fmt.Errorf("resolve %s: %w", kind, ErrInvalidPhase)
	}
	return nil
}
