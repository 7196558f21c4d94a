// Package search finds salary-capped eight player rosters.
//
// A run partitions the candidate pool into one ordered list per slot,
// splits the first slot's list into contiguous shards, and runs an
// independent depth-first search per shard on its own goroutine. Every
// complete assignment whose totals land inside the salary window and above
// the score floor is sent to a single coordinator, which waits for all
// shards through an async.Runner. The collected rosters are then ranked and
// greedily filtered so that each kept roster differs enough from the one
// kept just before it.
//
// Slots are filled in the fixed order PG, SG, SF, PF, C, G, F, UTIL so the
// narrow slots branch first. Branches are cut by three conservative checks:
// the cheapest completion must fit under the budget, the richest completion
// must reach the minimum spend, and the best remaining projection must reach
// the score floor.
package search
