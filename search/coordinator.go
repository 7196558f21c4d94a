package search

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/twitter/lineup/async"
	"github.com/twitter/lineup/common/stats"
	"github.com/twitter/lineup/roster"
)

// Size of the channel workers send rosters on.
const rosterChanSize = 1024

// Coordinator runs one ShardFunc per shard on its own goroutine and gathers
// what they emit. Workers only ever send on the roster channel; every other
// piece of coordinator state is owned by the goroutine calling Collect.
type Coordinator struct {
	shards []Shard
	run    ShardFunc
	stat   stats.StatsReceiver
}

// Collection is what the shards produced, in arrival order.
type Collection struct {
	Rosters   []roster.Roster
	Stats     ShardStats
	Completed int
	Failed    []ShardFailure
}

func NewCoordinator(shards []Shard, run ShardFunc, stat stats.StatsReceiver) *Coordinator {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Coordinator{shards: shards, run: run, stat: stat}
}

// Collect starts every shard and blocks until all of them returned or
// panicked. Shards are never retried. If any shard did not complete, the
// rosters of the others are returned along with a *PartialResultError.
func (c *Coordinator) Collect(ctx context.Context) (*Collection, error) {
	out := make(chan roster.Roster, rosterChanSize)
	emit := func(r roster.Roster) { out <- r }

	coll := &Collection{}
	runner := async.NewRunner()
	for _, shard := range c.shards {
		shard := shard
		var shardStats ShardStats
		var elapsed time.Duration
		c.stat.Counter(stats.ShardStartedCounter).Inc(1)
		runner.RunAsync(func() error {
			start := stats.Time.Now()
			defer func() { elapsed = stats.Time.Since(start) }()
			var err error
			shardStats, err = c.run(ctx, shard, emit)
			return err
		}, func(err error) {
			c.shardDone(coll, shard, shardStats, elapsed, err)
		})
	}

	for runner.NumRunning() > 0 {
		select {
		case r := <-out:
			coll.Rosters = append(coll.Rosters, r)
		case <-runner.Completions():
			runner.ProcessMessages()
		}
	}
	// Every send happened before its worker completed, whatever is left is
	// sitting in the buffer.
	for len(out) > 0 {
		coll.Rosters = append(coll.Rosters, <-out)
	}

	if len(coll.Failed) == 0 {
		return coll, nil
	}
	cause := ctx.Err()
	if cause == nil {
		cause = coll.Failed[0].Err
	}
	return coll, &PartialResultError{
		Failed:    coll.Failed,
		Completed: coll.Completed,
		Total:     len(c.shards),
		Cause:     cause,
	}
}

// shardDone runs on the Collect goroutine once a shard finished.
func (c *Coordinator) shardDone(coll *Collection, shard Shard, st ShardStats, elapsed time.Duration, err error) {
	coll.Stats.add(st)
	c.stat.Precision(time.Millisecond).Latency(stats.ShardLatency_ms).Record(elapsed)
	c.stat.Histogram(stats.ShardRostersEmittedHistogram).Update(st.Emitted)

	if err == nil {
		coll.Completed++
		c.stat.Counter(stats.ShardCompletedCounter).Inc(1)
		log.Debugf("%s completed: visited %d nodes, emitted %d rosters in %s", shard, st.NodesVisited, st.Emitted, elapsed)
		return
	}

	coll.Failed = append(coll.Failed, ShardFailure{Shard: shard, Err: err})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.stat.Counter(stats.ShardCanceledCounter).Inc(1)
		log.WithFields(log.Fields{
			"shard":   shard.Index,
			"lo":      shard.Lo,
			"hi":      shard.Hi,
			"emitted": st.Emitted,
		}).Info("Shard stopped early")
		return
	}
	c.stat.Counter(stats.ShardFailedCounter).Inc(1)
	fields := log.Fields{
		"shard": shard.Index,
		"lo":    shard.Lo,
		"hi":    shard.Hi,
		"err":   err,
	}
	var pe *async.PanicError
	if errors.As(err, &pe) {
		fields["stack"] = string(pe.Stack)
	}
	log.WithFields(fields).Error("Shard failed")
}
