package search

import (
	"sort"

	"github.com/twitter/lineup/roster"
)

// SelectDiverse ranks rosters and greedily keeps up to topK of them.
//
// Rosters are sorted by total score descending, then total salary
// ascending, then player-set key, so the outcome does not depend on arrival
// order. Rosters holding the same players as a better ranked one are
// dropped, so even a threshold of 0 keeps one slot assignment per player
// set. When maxRanked > 0 only the first maxRanked remain. The scan
// keeps the first roster and then each roster whose symmetric difference
// with the last kept roster is at least threshold. Only the last kept
// roster is compared, so two kept rosters further apart may still be close.
func SelectDiverse(rosters []roster.Roster, threshold, topK, maxRanked int) roster.ResultSet {
	if topK <= 0 || len(rosters) == 0 {
		return roster.ResultSet{}
	}

	keys := make([]string, len(rosters))
	order := make([]int, len(rosters))
	for i := range rosters {
		keys[i] = rosters[i].Key()
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := &rosters[order[i]], &rosters[order[j]]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.TotalSalary != b.TotalSalary {
			return a.TotalSalary < b.TotalSalary
		}
		if ka, kb := keys[order[i]], keys[order[j]]; ka != kb {
			return ka < kb
		}
		return rosters[order[i]].AssignmentKey() < rosters[order[j]].AssignmentKey()
	})

	ranked := make([]roster.Roster, 0, len(rosters))
	seen := make(map[string]bool, len(rosters))
	for _, i := range order {
		if seen[keys[i]] {
			continue
		}
		seen[keys[i]] = true
		ranked = append(ranked, rosters[i])
		if maxRanked > 0 && len(ranked) == maxRanked {
			break
		}
	}

	selected := make(roster.ResultSet, 0, topK)
	for i := range ranked {
		r := &ranked[i]
		if len(selected) > 0 && roster.Difference(&selected[len(selected)-1], r) < threshold {
			continue
		}
		selected = append(selected, *r)
		if len(selected) == topK {
			break
		}
	}
	return selected
}
