package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twitter/lineup/async"
	"github.com/twitter/lineup/common/stats"
	"github.com/twitter/lineup/roster"
)

// fakeShards emits one roster per index in the shard, tagged by setting its
// salary to the index, then fails or panics as told.
func fakeShards(fail map[int]error, panics map[int]bool) ShardFunc {
	cands := starters(5000, 30)
	var picks [roster.NumSlots]*roster.Candidate
	for i := range cands {
		picks[i] = &cands[i]
	}
	return func(ctx context.Context, shard Shard, emit func(roster.Roster)) (ShardStats, error) {
		st := ShardStats{}
		for i := shard.Lo; i < shard.Hi; i++ {
			r := roster.NewRoster(picks)
			r.TotalSalary = i
			emit(r)
			st.Emitted++
		}
		if panics[shard.Index] {
			panic(fmt.Sprintf("shard %d exploded", shard.Index))
		}
		return st, fail[shard.Index]
	}
}

func salaries(rosters []roster.Roster) map[int]bool {
	out := map[int]bool{}
	for _, r := range rosters {
		out[r.TotalSalary] = true
	}
	return out
}

func Test_Coordinator_CollectsEverything(t *testing.T) {
	reg := stats.NewFinagleStatsRegistry()
	stat := stats.NewCustomStatsReceiver(func() stats.StatsRegistry { return reg })

	// more rosters than the channel buffers
	shards := ShardRanges(3*rosterChanSize, 7)
	coll, err := NewCoordinator(shards, fakeShards(nil, nil), stat).Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, coll.Rosters, 3*rosterChanSize)
	assert.Len(t, salaries(coll.Rosters), 3*rosterChanSize)
	assert.Equal(t, int64(3*rosterChanSize), coll.Stats.Emitted)
	assert.Equal(t, len(shards), coll.Completed)
	assert.Empty(t, coll.Failed)

	stats.VerifyStats("collect", reg, t, map[string]stats.Rule{
		stats.ShardStartedCounter:   {Checker: stats.Int64EqTest, Value: len(shards)},
		stats.ShardCompletedCounter: {Checker: stats.Int64EqTest, Value: len(shards)},
		stats.ShardFailedCounter:    {Checker: stats.DoesNotExistTest},
	})
}

func Test_Coordinator_NoShards(t *testing.T) {
	coll, err := NewCoordinator(nil, fakeShards(nil, nil), nil).Collect(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, coll.Rosters)
}

func Test_Coordinator_SurfacesFailures(t *testing.T) {
	boom := errors.New("boom")
	shards := ShardRanges(20, 4)
	coll, err := NewCoordinator(shards, fakeShards(map[int]error{1: boom}, map[int]bool{3: true}), nil).
		Collect(context.Background())

	var partial *PartialResultError
	require.True(t, errors.As(err, &partial), "got %v", err)
	assert.Equal(t, 4, partial.Total)
	assert.Equal(t, 2, partial.Completed)
	require.Len(t, partial.Failed, 2)

	failed := map[int]error{}
	for _, f := range partial.Failed {
		failed[f.Shard.Index] = f.Err
	}
	assert.Equal(t, boom, failed[1])
	var pe *async.PanicError
	assert.True(t, errors.As(failed[3], &pe))
	assert.Equal(t, "shard 3 exploded", pe.Value)

	// rosters emitted before the failures are still returned
	assert.Len(t, coll.Rosters, 20)
	assert.Equal(t, 2, coll.Completed)
}

func Test_Coordinator_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pool := testPool(3)
	part := NewPartition(pool, PartitionOptions{})
	shards := ShardRanges(part.Len(roster.PG), 2)

	coll, err := NewCoordinator(shards, NewShardFunc(part, testConfig(0, 50000, 0)), nil).Collect(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	var partial *PartialResultError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, 0, partial.Completed)
	assert.Len(t, partial.Failed, len(shards))
	assert.Empty(t, coll.Rosters)
}
