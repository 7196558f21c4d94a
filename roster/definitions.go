// Package roster provides definitions for candidates, roster slots and the
// rosters built from them.
package roster

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Candidate is a player that may be selected. Candidates are treated as
// immutable once handed to the search; rosters point back at them.
type Candidate struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Team           string  `json:"team" yaml:"team"`
	Salary         int     `json:"salary" yaml:"salary"`
	ProjectedScore float64 `json:"projectedScore" yaml:"projectedScore"`
	EligibleSlots  SlotSet `json:"eligibleSlots" yaml:"-"`
}

func (c *Candidate) String() string {
	return fmt.Sprintf("%s(%s %s $%d %.2f)", c.ID, c.Name, c.EligibleSlots, c.Salary, c.ProjectedScore)
}

// FieldError names the candidate field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate returns a *FieldError for the first missing or out of range field.
func (c *Candidate) Validate() error {
	switch {
	case strings.TrimSpace(c.ID) == "":
		return &FieldError{"id", "missing"}
	case c.Salary <= 0:
		return &FieldError{"salary", fmt.Sprintf("must be positive, got %d", c.Salary)}
	case math.IsNaN(c.ProjectedScore) || math.IsInf(c.ProjectedScore, 0):
		return &FieldError{"projectedScore", "not a finite number"}
	case c.ProjectedScore < 0:
		return &FieldError{"projectedScore", fmt.Sprintf("must be non-negative, got %v", c.ProjectedScore)}
	case c.EligibleSlots.Empty():
		return &FieldError{"eligibleSlots", "missing"}
	}
	return nil
}

// SalaryPerPoint is the salary paid for each projected point. Zero
// projections return +Inf so they sort after everything else.
func (c *Candidate) SalaryPerPoint() float64 {
	if c.ProjectedScore <= 0 {
		return math.Inf(1)
	}
	return float64(c.Salary) / c.ProjectedScore
}

// Pick assigns one candidate to one slot.
type Pick struct {
	Slot      Slot       `json:"slot"`
	Candidate *Candidate `json:"candidate"`
}

// Roster is a complete assignment of eight distinct candidates to the eight
// slots, in slot order.
type Roster struct {
	Picks       [NumSlots]Pick `json:"picks"`
	TotalSalary int            `json:"totalSalary"`
	TotalScore  float64        `json:"totalScore"`
}

// NewRoster builds a roster from candidates given in slot order and computes
// its totals.
func NewRoster(cands [NumSlots]*Candidate) Roster {
	var r Roster
	for i, c := range cands {
		r.Picks[i] = Pick{Slot: Slots[i], Candidate: c}
		r.TotalSalary += c.Salary
		r.TotalScore += c.ProjectedScore
	}
	return r
}

// IDs returns the set of candidate ids on the roster.
func (r *Roster) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, NumSlots)
	for _, p := range r.Picks {
		ids[p.Candidate.ID] = struct{}{}
	}
	return ids
}

// Key is the canonical player-set key: sorted candidate ids. Two rosters
// holding the same players in different slots share a key.
func (r *Roster) Key() string {
	ids := make([]string, 0, NumSlots)
	for _, p := range r.Picks {
		ids = append(ids, p.Candidate.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

// AssignmentKey identifies the exact slot assignment.
func (r *Roster) AssignmentKey() string {
	parts := make([]string, 0, NumSlots)
	for _, p := range r.Picks {
		parts = append(parts, p.Slot.String()+"="+p.Candidate.ID)
	}
	return strings.Join(parts, ",")
}

func (r *Roster) String() string {
	return fmt.Sprintf("[%s] salary:%d score:%.2f", r.AssignmentKey(), r.TotalSalary, r.TotalScore)
}

// Difference returns the size of the symmetric difference of the two
// rosters' candidate id sets.
func Difference(a, b *Roster) int {
	aIDs := a.IDs()
	shared := 0
	for _, p := range b.Picks {
		if _, ok := aIDs[p.Candidate.ID]; ok {
			shared++
		}
	}
	return len(aIDs) + len(b.IDs()) - 2*shared
}

// Window holds the hard constraints every roster must satisfy.
type Window struct {
	MinSpend           int
	Budget             int
	MinAcceptableScore float64
}

// Contains reports whether the totals satisfy the window.
func (w Window) Contains(salary int, score float64) bool {
	return salary >= w.MinSpend && salary <= w.Budget && score >= w.MinAcceptableScore
}

// Check verifies every roster invariant against w.
func (r *Roster) Check(w Window) error {
	seen := map[string]bool{}
	salary, score := 0, 0.0
	for i, p := range r.Picks {
		if p.Candidate == nil {
			return fmt.Errorf("slot %s is empty", Slots[i])
		}
		if p.Slot != Slots[i] {
			return fmt.Errorf("pick %d holds slot %s, expected %s", i, p.Slot, Slots[i])
		}
		if !p.Candidate.EligibleSlots.Has(p.Slot) {
			return fmt.Errorf("%s is not eligible for %s", p.Candidate.ID, p.Slot)
		}
		if seen[p.Candidate.ID] {
			return fmt.Errorf("%s appears more than once", p.Candidate.ID)
		}
		seen[p.Candidate.ID] = true
		salary += p.Candidate.Salary
		score += p.Candidate.ProjectedScore
	}
	if salary != r.TotalSalary {
		return fmt.Errorf("total salary %d does not match picks %d", r.TotalSalary, salary)
	}
	if math.Abs(score-r.TotalScore) > 1e-6 {
		return fmt.Errorf("total score %v does not match picks %v", r.TotalScore, score)
	}
	if !w.Contains(r.TotalSalary, r.TotalScore) {
		return fmt.Errorf("totals salary:%d score:%.2f outside window [%d, %d] score>=%.2f",
			r.TotalSalary, r.TotalScore, w.MinSpend, w.Budget, w.MinAcceptableScore)
	}
	return nil
}

// ResultSet is the ranked, diversity-filtered shortlist.
type ResultSet []Roster

// CheckDiversity verifies adjacent rosters differ by at least threshold
// candidates and that scores never increase.
func (rs ResultSet) CheckDiversity(threshold int) error {
	for i := 1; i < len(rs); i++ {
		if rs[i].TotalScore > rs[i-1].TotalScore {
			return fmt.Errorf("roster %d scores %.2f above its predecessor %.2f", i, rs[i].TotalScore, rs[i-1].TotalScore)
		}
		if d := Difference(&rs[i-1], &rs[i]); d < threshold {
			return fmt.Errorf("rosters %d and %d differ by %d, need %d", i-1, i, d, threshold)
		}
	}
	return nil
}
