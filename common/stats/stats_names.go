package stats

/*
This file defines all the metrics being collected.   As new metrics are added please follow this pattern.
*/

const (
	/************************* Search engine metrics **************************/
	/*
		number of optimize runs started
	*/
	SearchRunsCounter = "runsCounter"

	/*
		number of runs rejected before any worker started because a candidate or the pool was invalid
	*/
	SearchInputErrorCounter = "inputErrorCounter"

	/*
		number of runs that completed without a single acceptable roster
	*/
	SearchInfeasibleCounter = "infeasibleCounter"

	/*
		number of runs that returned a partial result because a shard failed or was canceled
	*/
	SearchPartialResultCounter = "partialResultCounter"

	/*
		end to end time of a run: validation, partitioning, search and selection
	*/
	SearchLatency_ms = "searchLatency_ms"

	/*
		number of candidates left after the score floor and pool size cap
	*/
	SearchPoolSizeGauge = "poolSizeGauge"

	/*
		number of eligible candidates per slot after partitioning, the slot label is appended to the name
	*/
	SearchSlotCandidatesGauge = "slotCandidatesGauge"

	/*
		number of workers started for the last run
	*/
	SearchWorkersGauge = "workersGauge"

	/*
		number of rosters the diversity selector kept in the last run
	*/
	SearchSelectedRostersGauge = "selectedRostersGauge"

	/*
		projected score of the best roster of the last run
	*/
	SearchBestScoreGauge = "bestScoreGauge"

	/************************* Shard metrics **************************/
	/*
		number of shards started
	*/
	ShardStartedCounter = "shardStartedCounter"

	/*
		number of shards that finished their range
	*/
	ShardCompletedCounter = "shardCompletedCounter"

	/*
		number of shards that panicked or returned an error
	*/
	ShardFailedCounter = "shardFailedCounter"

	/*
		number of shards stopped by context cancellation or the time budget
	*/
	ShardCanceledCounter = "shardCanceledCounter"

	/*
		time spent by a single shard
	*/
	ShardLatency_ms = "shardLatency_ms"

	/*
		partial assignments visited, summed over shards
	*/
	ShardNodesVisitedCounter = "nodesVisitedCounter"

	/*
		branches cut because the remaining slots could not be paid for under the budget
	*/
	ShardPrunedReserveCounter = "prunedReserveCounter"

	/*
		branches cut because the best remaining projection could not reach the score floor
	*/
	ShardPrunedScoreCounter = "prunedScoreCounter"

	/*
		branches cut because even the most expensive completion stays under the minimum spend
	*/
	ShardPrunedSpendCounter = "prunedSpendCounter"

	/*
		complete rosters that passed the terminal checks and were sent to the coordinator
	*/
	ShardRostersEmittedCounter = "rostersEmittedCounter"

	/*
		number of rosters emitted per shard
	*/
	ShardRostersEmittedHistogram = "rostersEmittedHistogram"
)
