package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twitter/lineup/roster"
)

func ids(cands []*roster.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.ID)
	}
	return out
}

func Test_Partition_OrderAndMembership(t *testing.T) {
	g := roster.NewSlotSet(roster.PG, roster.G, roster.UTIL)
	pool := []roster.Candidate{
		{ID: "b", Salary: 6000, ProjectedScore: 30, EligibleSlots: g}, // 200/pt
		{ID: "a", Salary: 4000, ProjectedScore: 20, EligibleSlots: g}, // 200/pt, cheaper
		{ID: "z", Salary: 3000, ProjectedScore: 0, EligibleSlots: g},  // no projection
		{ID: "c", Salary: 5000, ProjectedScore: 50, EligibleSlots: roster.NewSlotSet(roster.C, roster.UTIL)},
		{ID: "d", Salary: 5000, ProjectedScore: 50, EligibleSlots: roster.NewSlotSet(roster.SG, roster.G, roster.UTIL)},
	}
	p := NewPartition(pool, PartitionOptions{})

	assert.Equal(t, []string{"a", "b", "z"}, ids(p.Candidates(roster.PG)))
	assert.Equal(t, []string{"d"}, ids(p.Candidates(roster.SG)))
	assert.Equal(t, []string{"d", "a", "b", "z"}, ids(p.Candidates(roster.G)))
	assert.Equal(t, []string{"c", "d", "a", "b", "z"}, ids(p.Candidates(roster.UTIL)))
	assert.Equal(t, []roster.Slot{roster.SF, roster.PF, roster.F}, p.EmptySlots())

	// lists point into the caller's slice
	assert.True(t, p.Candidates(roster.C)[0] == &pool[3])
}

func Test_Partition_Deterministic(t *testing.T) {
	pool := testPool(3)
	a := NewPartition(pool, PartitionOptions{})
	reversed := make([]roster.Candidate, len(pool))
	for i := range pool {
		reversed[len(pool)-1-i] = pool[i]
	}
	b := NewPartition(reversed, PartitionOptions{})
	for _, s := range roster.Slots {
		assert.Equal(t, ids(a.Candidates(s)), ids(b.Candidates(s)), s.String())
	}
}

func Test_Partition_Filters(t *testing.T) {
	pool := testPool(3)

	p := NewPartition(pool, PartitionOptions{MinCandidateScore: 40})
	for _, c := range p.Pool {
		assert.True(t, c.ProjectedScore >= 40, c.ID)
	}
	assert.Len(t, p.Pool, 5)

	p = NewPartition(pool, PartitionOptions{PoolSize: 4})
	assert.Len(t, p.Pool, 4)
	// the cheapest per point candidates overall survive
	assert.Equal(t, []string{"SF0", "PG2", "C0", "PG1"}, ids(p.Pool))

	p = NewPartition(nil, PartitionOptions{})
	assert.Empty(t, p.Pool)
	assert.Len(t, p.EmptySlots(), roster.NumSlots)
}
