package search

import (
	"fmt"
	"runtime"
)

// Shard is a contiguous range [Lo, Hi) of the first slot's candidate list.
type Shard struct {
	Index int
	Lo    int
	Hi    int
}

func (s Shard) String() string {
	return fmt.Sprintf("shard %d [%d, %d)", s.Index, s.Lo, s.Hi)
}

// WorkerCount decides how many workers search a first slot list of outer
// candidates. requested <= 0 uses one worker per available CPU. There are
// never more workers than outer candidates, and none for an empty list.
func WorkerCount(requested, outer int) int {
	if outer <= 0 {
		return 0
	}
	n := requested
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > outer {
		n = outer
	}
	return n
}

// ShardRanges splits [0, outer) into contiguous ranges of
// ceil(outer / workers) entries. The last range may be shorter and ranges
// that would be empty are dropped, so fewer than workers shards may come
// back.
func ShardRanges(outer, workers int) []Shard {
	if outer <= 0 || workers <= 0 {
		return nil
	}
	size := (outer + workers - 1) / workers
	shards := make([]Shard, 0, workers)
	for lo := 0; lo < outer; lo += size {
		hi := lo + size
		if hi > outer {
			hi = outer
		}
		shards = append(shards, Shard{Index: len(shards), Lo: lo, Hi: hi})
	}
	return shards
}
