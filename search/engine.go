package search

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/twitter/lineup/common"
	"github.com/twitter/lineup/common/stats"
	"github.com/twitter/lineup/roster"
)

// Status tells whether a run found any acceptable roster.
type Status int

const (
	StatusInfeasible Status = iota
	StatusFeasible
)

func (s Status) String() string {
	switch s {
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Summary describes the work done by a run.
type Summary struct {
	// Candidates left after the pool filters.
	PoolSize int           `json:"poolSize"`
	Workers  int           `json:"workers"`
	Shards   int           `json:"shards"`
	Search   ShardStats    `json:"search"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Result is the outcome of Engine.Run.
type Result struct {
	RunID   string           `json:"runId"`
	Status  Status           `json:"status"`
	Rosters roster.ResultSet `json:"rosters"`
	Summary Summary          `json:"summary"`
}

// Engine validates a candidate pool and runs the sharded search over it.
// An Engine holds no per-run state and may run several pools concurrently.
type Engine struct {
	cfg  Config
	stat stats.StatsReceiver

	// Wraps the search of every shard, tests use it to inject failures.
	wrapShard func(ShardFunc) ShardFunc
}

// NewEngine returns an engine for cfg. A nil stat disables metrics.
func NewEngine(cfg Config, stat stats.StatsReceiver) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Engine{cfg: cfg, stat: stat.Scope("search")}, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Run searches candidates for the best diverse rosters.
//
// An invalid candidate, a duplicate id or a slot nobody is eligible for
// returns an *InputError before any worker starts. Finding no acceptable
// roster is not an error: the result has StatusInfeasible and no rosters.
// When shards fail or the context ends early, Run returns the result built
// from the completed shards together with a *PartialResultError.
func (e *Engine) Run(ctx context.Context, candidates []roster.Candidate) (*Result, error) {
	start := stats.Time.Now()
	e.stat.Counter(stats.SearchRunsCounter).Inc(1)

	res := &Result{RunID: common.GenUUID(), Status: StatusInfeasible, Rosters: roster.ResultSet{}}
	logger := log.WithField("runID", res.RunID)

	if err := ValidateCandidates(candidates); err != nil {
		e.stat.Counter(stats.SearchInputErrorCounter).Inc(1)
		logger.WithError(err).Info("Rejected candidate pool")
		return nil, err
	}

	part := NewPartition(candidates, PartitionOptions{
		PoolSize:          e.cfg.PoolSize,
		MinCandidateScore: e.cfg.MinCandidateScore,
	})
	res.Summary.PoolSize = len(part.Pool)
	e.stat.Gauge(stats.SearchPoolSizeGauge).Update(int64(len(part.Pool)))
	for _, s := range roster.Slots {
		e.stat.Gauge(stats.SearchSlotCandidatesGauge, s.String()).Update(int64(part.Len(s)))
	}

	if empty := part.EmptySlots(); len(empty) > 0 {
		e.finish(res, start)
		logger.WithFields(log.Fields{
			"emptySlots": empty,
			"poolSize":   len(part.Pool),
		}).Info("Pool filters left slots without candidates")
		return res, nil
	}

	if e.cfg.TimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.TimeBudget)
		defer cancel()
	}

	shardFn := NewShardFunc(part, e.cfg)
	if e.wrapShard != nil {
		shardFn = e.wrapShard(shardFn)
	}
	outer := part.Len(roster.Slots[0])
	workers := WorkerCount(e.cfg.WorkerCount, outer)
	shards := ShardRanges(outer, workers)
	res.Summary.Workers = workers
	res.Summary.Shards = len(shards)
	e.stat.Gauge(stats.SearchWorkersGauge).Update(int64(workers))
	logger.WithFields(log.Fields{
		"poolSize": len(part.Pool),
		"workers":  workers,
		"shards":   len(shards),
	}).Debug("Starting search")

	coll, err := NewCoordinator(shards, shardFn, e.stat).Collect(ctx)
	res.Summary.Search = coll.Stats
	e.reportShardStats(coll.Stats)

	res.Rosters = SelectDiverse(coll.Rosters, e.cfg.DiversityThreshold, e.cfg.TopK, e.cfg.MaxRankedRosters)
	if len(res.Rosters) > 0 {
		res.Status = StatusFeasible
		e.stat.GaugeFloat(stats.SearchBestScoreGauge).Update(res.Rosters[0].TotalScore)
	}
	e.stat.Gauge(stats.SearchSelectedRostersGauge).Update(int64(len(res.Rosters)))
	e.finish(res, start)

	fields := log.Fields{
		"status":   res.Status,
		"rosters":  len(res.Rosters),
		"emitted":  coll.Stats.Emitted,
		"nodes":    coll.Stats.NodesVisited,
		"elapsed":  res.Summary.Elapsed,
		"workers":  workers,
		"poolSize": len(part.Pool),
	}
	if err != nil {
		e.stat.Counter(stats.SearchPartialResultCounter).Inc(1)
		logger.WithFields(fields).WithError(err).Warn("Search returned a partial result")
		return res, err
	}
	logger.WithFields(fields).Info("Search finished")
	return res, nil
}

func (e *Engine) finish(res *Result, start time.Time) {
	res.Summary.Elapsed = stats.Time.Since(start)
	e.stat.Precision(time.Millisecond).Latency(stats.SearchLatency_ms).Record(res.Summary.Elapsed)
	if res.Status == StatusInfeasible {
		e.stat.Counter(stats.SearchInfeasibleCounter).Inc(1)
	}
}

func (e *Engine) reportShardStats(s ShardStats) {
	e.stat.Counter(stats.ShardNodesVisitedCounter).Inc(s.NodesVisited)
	e.stat.Counter(stats.ShardPrunedReserveCounter).Inc(s.PrunedReserve)
	e.stat.Counter(stats.ShardPrunedScoreCounter).Inc(s.PrunedScore)
	e.stat.Counter(stats.ShardPrunedSpendCounter).Inc(s.PrunedSpend)
	e.stat.Counter(stats.ShardRostersEmittedCounter).Inc(s.Emitted)
}

// ValidateCandidates checks every candidate and that the pool can fill each
// slot. It returns the first problem found as an *InputError.
func ValidateCandidates(candidates []roster.Candidate) error {
	if len(candidates) == 0 {
		return &InputError{Index: -1, Field: "pool", Reason: "no candidates"}
	}
	seen := make(map[string]int, len(candidates))
	var covered roster.SlotSet
	for i := range candidates {
		c := &candidates[i]
		if err := c.Validate(); err != nil {
			ie := &InputError{Index: i, ID: c.ID, Field: "candidate", Reason: err.Error()}
			if fe, ok := err.(*roster.FieldError); ok {
				ie.Field, ie.Reason = fe.Field, fe.Reason
			}
			return ie
		}
		if prev, ok := seen[c.ID]; ok {
			return &InputError{Index: i, ID: c.ID, Field: "id", Reason: fmt.Sprintf("duplicate of candidate %d", prev)}
		}
		seen[c.ID] = i
		covered |= c.EligibleSlots
	}
	for _, s := range roster.Slots {
		if !covered.Has(s) {
			return &InputError{Index: -1, Field: "eligibleSlots", Reason: fmt.Sprintf("no candidate is eligible for %s", s)}
		}
	}
	return nil
}
