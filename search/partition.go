package search

import (
	"sort"

	"github.com/twitter/lineup/roster"
)

// PartitionOptions are the optional pool filters applied before the
// per-slot lists are built.
type PartitionOptions struct {
	// Keep only the PoolSize cheapest per projected point candidates, 0 keeps all.
	PoolSize int
	// Drop candidates projected below this score.
	MinCandidateScore float64
}

// entry is a candidate in a slot list along with its index into
// Partition.Pool, used to mark it taken during the search.
type entry struct {
	c   *roster.Candidate
	idx int
}

// Partition holds the per-slot candidate lists the search branches over.
// It is read-only once built and shared by every shard.
type Partition struct {
	// Candidates kept by the filters, in list order.
	Pool  []*roster.Candidate
	lists [roster.NumSlots][]entry
}

// NewPartition filters candidates and builds one list per slot ordered by
// ascending salary per projected point, then salary, then id. A candidate
// shows up in every list it is eligible for. The returned lists point into
// candidates, which must not be modified while the partition is in use.
func NewPartition(candidates []roster.Candidate, opts PartitionOptions) *Partition {
	pool := make([]*roster.Candidate, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if c.ProjectedScore < opts.MinCandidateScore {
			continue
		}
		pool = append(pool, c)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return cheaper(pool[i], pool[j])
	})
	if opts.PoolSize > 0 && len(pool) > opts.PoolSize {
		pool = pool[:opts.PoolSize]
	}

	p := &Partition{Pool: pool}
	for idx, c := range pool {
		for _, s := range roster.Slots {
			if c.EligibleSlots.Has(s) {
				p.lists[s] = append(p.lists[s], entry{c: c, idx: idx})
			}
		}
	}
	return p
}

func cheaper(a, b *roster.Candidate) bool {
	if spa, spb := a.SalaryPerPoint(), b.SalaryPerPoint(); spa != spb {
		return spa < spb
	}
	if a.Salary != b.Salary {
		return a.Salary < b.Salary
	}
	return a.ID < b.ID
}

// Candidates returns the ordered list for slot s.
func (p *Partition) Candidates(s roster.Slot) []*roster.Candidate {
	out := make([]*roster.Candidate, 0, len(p.lists[s]))
	for _, e := range p.lists[s] {
		out = append(out, e.c)
	}
	return out
}

// Len returns the number of candidates eligible for slot s.
func (p *Partition) Len(s roster.Slot) int {
	return len(p.lists[s])
}

// EmptySlots returns the slots without any eligible candidate.
func (p *Partition) EmptySlots() []roster.Slot {
	var empty []roster.Slot
	for _, s := range roster.Slots {
		if len(p.lists[s]) == 0 {
			empty = append(empty, s)
		}
	}
	return empty
}
