package search

import (
	"math"

	"github.com/twitter/lineup/roster"
)

type pruneReason int

const (
	notPruned pruneReason = iota
	// The cheapest completion goes over budget.
	prunedReserve
	// The best remaining projection cannot reach the score floor.
	prunedScore
	// The most expensive completion stays under the minimum spend.
	prunedSpend
)

// Tolerance for the score bound: the bound adds in a different order than
// the running score, so it may come out a hair lower than an exact
// completion would.
const scoreEps = 1e-9

// bounds holds suffix sums over the per-slot lists: entry i covers slots
// i..7 and entry NumSlots is zero. They ignore that a candidate can only be
// used once, which keeps every check a relaxation of the real problem.
type bounds struct {
	budget        int
	minSpend      int
	minScore      float64
	useScoreBound bool

	reserve   [roster.NumSlots + 1]int
	maxSalary [roster.NumSlots + 1]int
	maxScore  [roster.NumSlots + 1]float64
}

func newBounds(p *Partition, cfg Config) *bounds {
	b := &bounds{
		budget:        cfg.Budget,
		minSpend:      cfg.MinSpend,
		minScore:      cfg.MinAcceptableScore,
		useScoreBound: !cfg.DisableScoreBound,
	}
	for i := roster.NumSlots - 1; i >= 0; i-- {
		minSal, maxSal, maxScore := slotExtremes(p.lists[i])
		if cfg.MinSlotReserve > 0 && cfg.MinSlotReserve < minSal {
			minSal = cfg.MinSlotReserve
		}
		b.reserve[i] = b.reserve[i+1] + minSal
		b.maxSalary[i] = b.maxSalary[i+1] + maxSal
		b.maxScore[i] = b.maxScore[i+1] + maxScore
	}
	return b
}

// slotExtremes returns the smallest salary, largest salary and largest
// score in list. An empty list yields zeros, the search never gets there.
func slotExtremes(list []entry) (minSal, maxSal int, maxScore float64) {
	if len(list) == 0 {
		return 0, 0, 0
	}
	minSal = math.MaxInt32
	for _, e := range list {
		if e.c.Salary < minSal {
			minSal = e.c.Salary
		}
		if e.c.Salary > maxSal {
			maxSal = e.c.Salary
		}
		if e.c.ProjectedScore > maxScore {
			maxScore = e.c.ProjectedScore
		}
	}
	return minSal, maxSal, maxScore
}

// check decides whether a partial assignment with filled slots 0..filled-1
// and the given running totals can still complete into a valid roster.
func (b *bounds) check(filled int, salary int, score float64) pruneReason {
	if salary+b.reserve[filled] > b.budget {
		return prunedReserve
	}
	if salary+b.maxSalary[filled] < b.minSpend {
		return prunedSpend
	}
	if b.useScoreBound && score+b.maxScore[filled] < b.minScore-scoreEps {
		return prunedScore
	}
	return notPruned
}
