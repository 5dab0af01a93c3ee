package models

import (
	"time"

	"github.com/google/uuid"
)

// Gender of the player character.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Major is a college major. The zero value means no major.
type Major string

const (
	MajorNone    Major = ""
	MajorCompSci Major = "Comp Sci"
	MajorHistory Major = "History"
	MajorBiology Major = "Biology"
)

// Majors lists every selectable major in display order.
var Majors = []Major{MajorCompSci, MajorHistory, MajorBiology}

func (m Major) Valid() bool {
	switch m {
	case MajorCompSci, MajorHistory, MajorBiology:
		return true
	}
	return false
}

// PlayerRecord is the durable part of a player's life.
type PlayerRecord struct {
	Name   string `yaml:"name"`
	Gender Gender `yaml:"gender"`
	Age    int    `yaml:"age"`

	Health float64 `yaml:"health"`
	Stress float64 `yaml:"stress"`

	Intelligence int `yaml:"intelligence"`
	Charisma     int `yaml:"charisma"`
	Luck         int `yaml:"luck"`

	Balance      float64 `yaml:"balance"`
	Debt         float64 `yaml:"debt"`          // personal loan principal
	LoanInterest float64 `yaml:"loan_interest"` // yearly rate, e.g. 0.12
	CollegeDebt  float64 `yaml:"college_debt"`  // tuition owed
	StockBalance float64 `yaml:"stock_balance"`
	HasStock     bool    `yaml:"has_stock"`
	HasLoan      bool    `yaml:"has_loan"`

	CollegeMajor Major `yaml:"college_major"`
	CollegeYear  int   `yaml:"college_year"`
	IsEnrolled   bool  `yaml:"is_enrolled"`
	IsGraduate   bool  `yaml:"is_graduate"`

	IsEmployed bool    `yaml:"is_employed"`
	JobTitle   string  `yaml:"job_title,omitempty"`
	Salary     float64 `yaml:"salary,omitempty"`

	// Time accumulates in-game units; a year closes every 100.
	Time int `yaml:"time"`
}

// SessionFlags holds turn-progress markers that are not part of the
// player's life record. They are merged with the record only when saving.
type SessionFlags struct {
	IsTestTime bool `yaml:"is_test_time"`
	TestTaken  bool `yaml:"test_taken"`
	GameOver   bool `yaml:"game_over"`
}

// PlayerState is everything the engine mutates during a turn.
type PlayerState struct {
	PlayerRecord `yaml:",inline"`
	SessionFlags `yaml:",inline"`
}

// NetWorth is what the leaderboard ranks by.
func (p *PlayerState) NetWorth() float64 {
	return p.Balance + p.StockBalance - p.Debt - p.CollegeDebt
}

// HistoryEntry summarizes one closed year.
type HistoryEntry struct {
	Age       int      `yaml:"age"`
	Events    []string `yaml:"events"`
	Narrative string   `yaml:"narrative,omitempty"`
	Health    float64  `yaml:"health"`
	Balance   float64  `yaml:"balance"`
}

// GameHistory contains the closed years of a life, oldest first.
type GameHistory struct {
	Entries []HistoryEntry `yaml:"entries"`
}

// Append adds an entry to the history.
func (h *GameHistory) Append(e HistoryEntry) {
	h.Entries = append(h.Entries, e)
}

// Last returns the most recent entry, if any.
func (h *GameHistory) Last() (HistoryEntry, bool) {
	if len(h.Entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.Entries[len(h.Entries)-1], true
}

// GameSession aggregates all game-related data for one save slot.
type GameSession struct {
	ID      uuid.UUID   `yaml:"id"`
	Slot    string      `yaml:"slot"`
	SavedAt time.Time   `yaml:"saved_at"`
	Player  PlayerState `yaml:"player"`
	History GameHistory `yaml:"history"`
}

// NewGameSession wraps a freshly created player in a session bound to slot.
func NewGameSession(slot string, player PlayerState) *GameSession {
	return &GameSession{
		ID:     uuid.New(),
		Slot:   slot,
		Player: player,
	}
}

// SlotInfo describes a saved game without loading it.
type SlotInfo struct {
	Slot    string
	Name    string
	Age     int
	SavedAt time.Time
}

// LeaderboardEntry is one finished life.
type LeaderboardEntry struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Age      int       `json:"age" yaml:"age"`
	NetWorth float64   `json:"net_worth" yaml:"net_worth"`
	Major    Major     `json:"major,omitempty" yaml:"major,omitempty"`
	EndedAt  time.Time `json:"ended_at" yaml:"ended_at"`
}

// NewLeaderboardEntry builds an entry from a player's final state.
func NewLeaderboardEntry(p *PlayerState, endedAt time.Time) LeaderboardEntry {
	return LeaderboardEntry{
		ID:       uuid.NewString(),
		Name:     p.Name,
		Age:      p.Age,
		NetWorth: p.NetWorth(),
		Major:    p.CollegeMajor,
		EndedAt:  endedAt,
	}
}
