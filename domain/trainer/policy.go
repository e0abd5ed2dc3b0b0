// Package trainer selects a human coach for a generated plan. The roster is
// a fixed closed set; selection is a single weighted-random draw biased
// toward trainers whose specialties match the user's goal.
package trainer

import (
	"math/rand"

	"fitcoach/domain/quiz"
)

// Specialty tags a trainer's coaching focus.
type Specialty string

const (
	SpecialtyWeightLoss   Specialty = "Weight Loss"
	SpecialtyLeanBody     Specialty = "Lean Body"
	SpecialtyBodybuilding Specialty = "Bodybuilding"
)

// Trainer is a read-only roster entry.
type Trainer struct {
	Name        string      `json:"name"`
	Specialties []Specialty `json:"specialties"`
}

// HasSpecialty reports whether the trainer carries the given tag.
func (t Trainer) HasSpecialty(s Specialty) bool {
	for _, spec := range t.Specialties {
		if spec == s {
			return true
		}
	}
	return false
}

// Roster is the fixed set of three trainers.
var Roster = []Trainer{
	{Name: "Athul", Specialties: []Specialty{SpecialtyWeightLoss, SpecialtyBodybuilding}},
	{Name: "Saieel", Specialties: []Specialty{SpecialtyWeightLoss, SpecialtyLeanBody}},
	{Name: "Athithiya", Specialties: []Specialty{SpecialtyBodybuilding}},
}

// Draw weights: a specialist appears five times in the pool for every one
// appearance of a non-specialist, so matching trainers are favored but
// never guaranteed.
const (
	specialistWeight    = 5
	nonSpecialistWeight = 1
)

// goalSpecialties maps quiz goals to the specialty they favor.
var goalSpecialties = map[quiz.Goal]Specialty{
	quiz.GoalLoseWeight:  SpecialtyWeightLoss,
	quiz.GoalGainMuscle:  SpecialtyBodybuilding,
	quiz.GoalGetShredded: SpecialtyLeanBody,
}

// AssignmentPolicy performs the weighted-random trainer draw. The random
// source is injected so tests can seed it deterministically.
type AssignmentPolicy struct {
	roster []Trainer
	rng    *rand.Rand
}

// NewAssignmentPolicy creates a policy over the fixed roster.
func NewAssignmentPolicy(rng *rand.Rand) *AssignmentPolicy {
	return &AssignmentPolicy{roster: Roster, rng: rng}
}

// Pool builds the expanded draw pool for a goal. Exported so tests can
// verify pool construction independently of the draw.
func (p *AssignmentPolicy) Pool(goal quiz.Goal) []Trainer {
	target, ok := goalSpecialties[goal]
	if !ok {
		// Unknown or absent goal: uniform over the roster.
		pool := make([]Trainer, len(p.roster))
		copy(pool, p.roster)
		return pool
	}

	pool := make([]Trainer, 0, len(p.roster)*specialistWeight)
	for _, t := range p.roster {
		weight := nonSpecialistWeight
		if t.HasSpecialty(target) {
			weight = specialistWeight
		}
		for i := 0; i < weight; i++ {
			pool = append(pool, t)
		}
	}
	return pool
}

// Assign draws a single trainer for the goal. Always returns a roster
// member; never an empty value.
func (p *AssignmentPolicy) Assign(goal quiz.Goal) Trainer {
	pool := p.Pool(goal)
	return pool[p.rng.Intn(len(pool))]
}
