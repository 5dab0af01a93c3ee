package engine

import (
	"fmt"

	"github.com/tatianab/lifesim/internal/models"
)

// ReviewFailStress is added when a performance review goes badly.
const ReviewFailStress = 25

// Job is a position the player can hold.
type Job struct {
	Title  string
	Salary float64
	Degree models.Major // MajorNone means no degree needed
}

var Jobs = []Job{
	{Title: "Barista", Salary: 28000},
	{Title: "Office Clerk", Salary: 36000},
	{Title: "Software Engineer", Salary: 95000, Degree: models.MajorCompSci},
	{Title: "Archivist", Salary: 55000, Degree: models.MajorHistory},
	{Title: "Lab Technician", Salary: 60000, Degree: models.MajorBiology},
}

// FindJob looks a job up by title.
func FindJob(title string) (Job, bool) {
	for _, j := range Jobs {
		if j.Title == title {
			return j, true
		}
	}
	return Job{}, false
}

// Qualifies reports whether the player holds the degree the job needs.
func (j Job) Qualifies(p *models.PlayerState) bool {
	if j.Degree == models.MajorNone {
		return true
	}
	return p.IsGraduate && p.CollegeMajor == j.Degree
}

// TakeJob hires the player, replacing any current job.
func (e *Engine) TakeJob(p *models.PlayerState, title string) (Job, error) {
	if err := checkAlive(p); err != nil {
		return Job{}, err
	}
	if p.IsTestTime {
		return Job{}, ErrTestPending
	}
	job, ok := FindJob(title)
	if !ok {
		return Job{}, invalid("job", "unknown job %q", title)
	}
	if !job.Qualifies(p) {
		return Job{}, invalid("job", "%s requires a degree in %s", job.Title, job.Degree)
	}
	p.IsEmployed = true
	p.JobTitle = job.Title
	p.Salary = job.Salary

	e.logger.Info("hired", "player", p.Name, "job", job.Title, "salary", job.Salary)
	return job, nil
}

// QuitJob leaves the current job.
func (e *Engine) QuitJob(p *models.PlayerState) error {
	if err := checkAlive(p); err != nil {
		return err
	}
	if !p.IsEmployed {
		return invalid("job", "not employed")
	}
	if p.IsTestTime && !p.IsEnrolled {
		return ErrTestPending
	}
	p.IsEmployed = false
	p.JobTitle = ""
	p.Salary = 0
	return nil
}

// ReviewSuccessRate is the chance of a raise at a given charisma and luck.
func ReviewSuccessRate(charisma, luck int) float64 {
	var rate float64
	switch {
	case charisma >= 10:
		rate = 0.90
	case charisma >= 7:
		rate = 0.75
	case charisma >= 4:
		rate = 0.60
	case charisma >= 1:
		rate = 0.40
	}
	return min(rate+float64(luck)*0.01, 1)
}

// ReviewResult reports a performance review.
type ReviewResult struct {
	Raised  bool
	Percent float64
	Salary  float64
	Message string
	Time    TimeResult
}

// PerformanceReview settles the employed player's year-end gate.
func (e *Engine) PerformanceReview(p *models.PlayerState) (ReviewResult, error) {
	if err := checkAlive(p); err != nil {
		return ReviewResult{}, err
	}
	if !p.IsEmployed || p.IsEnrolled || !p.IsTestTime || p.TestTaken {
		return ReviewResult{}, ErrNoTestPending
	}

	var res ReviewResult
	if e.rng.Float64() < ReviewSuccessRate(p.Charisma, p.Luck) {
		res.Raised = true
		res.Percent = e.uniform(0.03, 0.10)
		p.Salary *= 1 + res.Percent
		res.Message = fmt.Sprintf("Great review! Your salary rose %.1f%%.", res.Percent*100)
	} else {
		p.Stress += ReviewFailStress
		res.Message = "Your review went poorly. No raise this year."
	}
	res.Salary = p.Salary

	e.logger.Info("performance review", "player", p.Name, "raised", res.Raised, "salary", p.Salary)

	p.TestTaken = true
	tr, err := e.progress(p)
	res.Time = tr
	return res, err
}
