package search

import (
	"context"

	"github.com/twitter/lineup/roster"
)

// ShardStats counts the work done by one or more shards.
type ShardStats struct {
	NodesVisited  int64 `json:"nodesVisited"`
	PrunedReserve int64 `json:"prunedReserve"`
	PrunedScore   int64 `json:"prunedScore"`
	PrunedSpend   int64 `json:"prunedSpend"`
	Emitted       int64 `json:"emitted"`
}

func (s *ShardStats) add(o ShardStats) {
	s.NodesVisited += o.NodesVisited
	s.PrunedReserve += o.PrunedReserve
	s.PrunedScore += o.PrunedScore
	s.PrunedSpend += o.PrunedSpend
	s.Emitted += o.Emitted
}

// ShardFunc searches one shard and hands every valid roster to emit.
// It returns the context error if stopped early.
type ShardFunc func(ctx context.Context, shard Shard, emit func(roster.Roster)) (ShardStats, error)

// NewShardFunc returns the backtracking search over p with the bounds and
// window derived from cfg. The returned function is safe to call from
// several goroutines at once; every call owns its own search state.
func NewShardFunc(p *Partition, cfg Config) ShardFunc {
	b := newBounds(p, cfg)
	window := cfg.Window()
	return func(ctx context.Context, shard Shard, emit func(roster.Roster)) (ShardStats, error) {
		s := &searcher{
			part:   p,
			bounds: b,
			window: window,
			used:   make([]bool, len(p.Pool)),
			emit:   emit,
		}
		err := s.run(ctx, shard)
		return s.stats, err
	}
}

// searcher is the state of a single shard: the partial assignment and the
// marks of candidates already on it. It is never shared.
type searcher struct {
	part   *Partition
	bounds *bounds
	window roster.Window
	emit   func(roster.Roster)

	used  []bool
	picks [roster.NumSlots]*roster.Candidate
	// Running totals after each depth, index 0 is the empty assignment.
	// Kept as prefixes so undoing a pick never subtracts floats.
	salary [roster.NumSlots + 1]int
	score  [roster.NumSlots + 1]float64

	stats ShardStats
}

// run explores every assignment whose first slot pick lies in the shard's
// range of the first slot list. The context is only polled between first
// slot picks.
func (s *searcher) run(ctx context.Context, shard Shard) error {
	outer := s.part.lists[0]
	if shard.Hi > len(outer) {
		shard.Hi = len(outer)
	}
	for i := shard.Lo; i < shard.Hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.descend(0, outer[i])
	}
	return nil
}

// descend places e in slot depth, then either emits, prunes or recurses
// into the next slot, and undoes the placement.
func (s *searcher) descend(depth int, e entry) {
	s.stats.NodesVisited++
	s.used[e.idx] = true
	s.picks[depth] = e.c
	salary := s.salary[depth] + e.c.Salary
	score := s.score[depth] + e.c.ProjectedScore
	s.salary[depth+1] = salary
	s.score[depth+1] = score

	switch {
	case depth == roster.NumSlots-1:
		if s.window.Contains(salary, score) {
			s.stats.Emitted++
			s.emit(roster.NewRoster(s.picks))
		}
	default:
		switch s.bounds.check(depth+1, salary, score) {
		case prunedReserve:
			s.stats.PrunedReserve++
		case prunedScore:
			s.stats.PrunedScore++
		case prunedSpend:
			s.stats.PrunedSpend++
		default:
			for _, next := range s.part.lists[depth+1] {
				if !s.used[next.idx] {
					s.descend(depth+1, next)
				}
			}
		}
	}

	s.picks[depth] = nil
	s.used[e.idx] = false
}
