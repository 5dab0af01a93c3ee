package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/tatianab/lifesim/internal/models"
)

const (
	MinNameLength   = 3
	MaxNameLength   = 12
	MinAttribute    = 1
	MaxAttribute    = 10
	AttributePoints = 18

	StartingAge     = 21
	StartingHealth  = 100
	StartingBalance = 1000
)

// ValidateCharacter checks the creation screen's inputs.
func ValidateCharacter(name string, gender models.Gender, intelligence, charisma, luck int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinNameLength || n > MaxNameLength {
		return invalid("name", "must be %d-%d characters, got %d", MinNameLength, MaxNameLength, n)
	}
	if !gender.Valid() {
		return invalid("gender", "choose %s or %s", models.GenderMale, models.GenderFemale)
	}
	for _, a := range []struct {
		field string
		v     int
	}{{"intelligence", intelligence}, {"charisma", charisma}, {"luck", luck}} {
		if a.v < MinAttribute || a.v > MaxAttribute {
			return invalid(a.field, "must be between %d and %d, got %d", MinAttribute, MaxAttribute, a.v)
		}
	}
	if sum := intelligence + charisma + luck; sum != AttributePoints {
		return invalid("attributes", "must total %d, got %d", AttributePoints, sum)
	}
	return nil
}

// ClampAttributes lowers every attribute above the minimum by one until the
// total fits in AttributePoints, the way the creation sliders push back.
func ClampAttributes(intelligence, charisma, luck int) (int, int, int) {
	for intelligence+charisma+luck > AttributePoints {
		changed := false
		for _, a := range []*int{&intelligence, &charisma, &luck} {
			if *a > MinAttribute {
				*a--
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return intelligence, charisma, luck
}

// NewCharacter validates the inputs and returns a fresh 21 year old.
func NewCharacter(name string, gender models.Gender, intelligence, charisma, luck int) (models.PlayerState, error) {
	if err := ValidateCharacter(name, gender, intelligence, charisma, luck); err != nil {
		return models.PlayerState{}, err
	}
	return models.PlayerState{
		PlayerRecord: models.PlayerRecord{
			Name:         strings.TrimSpace(name),
			Gender:       gender,
			Age:          StartingAge,
			Health:       StartingHealth,
			Intelligence: intelligence,
			Charisma:     charisma,
			Luck:         luck,
			Balance:      StartingBalance,
			CollegeYear:  1,
		},
	}, nil
}
