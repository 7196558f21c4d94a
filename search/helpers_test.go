package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/twitter/lineup/roster"
)

var naturalPositions = []string{"PG", "SG", "SF", "PF", "C"}

// testPool returns perPos candidates for each natural position with salaries
// in [4000, 8000) and projections in [20, 45), expanded to every slot the
// position may fill.
func testPool(perPos int) []roster.Candidate {
	var out []roster.Candidate
	i := 0
	for _, pos := range naturalPositions {
		for k := 0; k < perPos; k++ {
			slots, err := roster.ParseSlots(pos)
			if err != nil {
				panic(err)
			}
			out = append(out, roster.Candidate{
				ID:             fmt.Sprintf("%s%d", pos, k),
				Name:           fmt.Sprintf("Player %s %d", pos, k),
				Team:           "TST",
				Salary:         4000 + (i*773)%4000,
				ProjectedScore: float64(20 + (i*37)%25),
				EligibleSlots:  slots,
			})
			i++
		}
	}
	return out
}

// starters returns eight candidates each eligible for exactly one slot.
func starters(salary int, score float64) []roster.Candidate {
	out := make([]roster.Candidate, 0, roster.NumSlots)
	for _, s := range roster.Slots {
		out = append(out, roster.Candidate{
			ID:             "only-" + s.String(),
			Name:           s.String() + " starter",
			Salary:         salary,
			ProjectedScore: score,
			EligibleSlots:  roster.NewSlotSet(s),
		})
	}
	return out
}

func testConfig(minSpend, budget int, minScore float64) Config {
	return Config{
		Budget:             budget,
		MinSpend:           minSpend,
		MinAcceptableScore: minScore,
		DiversityThreshold: 2,
		TopK:               5,
	}
}

// bruteForce enumerates every slot assignment straight from the candidate
// slice, without ordering, bounds or filters, and returns the assignment
// keys of the valid ones.
func bruteForce(candidates []roster.Candidate, w roster.Window) map[string]bool {
	var lists [roster.NumSlots][]*roster.Candidate
	for i := range candidates {
		for _, s := range roster.Slots {
			if candidates[i].EligibleSlots.Has(s) {
				lists[s] = append(lists[s], &candidates[i])
			}
		}
	}
	found := map[string]bool{}
	for _, l := range lists {
		if len(l) == 0 {
			return found
		}
	}

	var odometer [roster.NumSlots]int
	for {
		var picks [roster.NumSlots]*roster.Candidate
		distinct := true
		for s, i := range odometer {
			picks[s] = lists[s][i]
			for _, prev := range picks[:s] {
				if prev.ID == picks[s].ID {
					distinct = false
				}
			}
		}
		if distinct {
			r := roster.NewRoster(picks)
			if w.Contains(r.TotalSalary, r.TotalScore) {
				found[r.AssignmentKey()] = true
			}
		}

		s := roster.NumSlots - 1
		for ; s >= 0; s-- {
			odometer[s]++
			if odometer[s] < len(lists[s]) {
				break
			}
			odometer[s] = 0
		}
		if s < 0 {
			return found
		}
	}
}

// searchAll runs the backtracking search over the whole first slot list in
// one shard.
func searchAll(candidates []roster.Candidate, cfg Config) (map[string]bool, ShardStats) {
	part := NewPartition(candidates, PartitionOptions{PoolSize: cfg.PoolSize, MinCandidateScore: cfg.MinCandidateScore})
	found := map[string]bool{}
	st, err := NewShardFunc(part, cfg)(context.Background(),
		Shard{Lo: 0, Hi: part.Len(roster.PG)},
		func(r roster.Roster) { found[r.AssignmentKey()] = true })
	if err != nil {
		panic(err)
	}
	return found, st
}

func keysOf(rosters []roster.Roster) []string {
	keys := make([]string, 0, len(rosters))
	for i := range rosters {
		keys = append(keys, rosters[i].AssignmentKey())
	}
	sort.Strings(keys)
	return keys
}
