package search

import (
	"fmt"
	"strings"
)

// InputError rejects the candidate pool before any worker starts. Index and
// ID identify the offending candidate, Index is -1 for pool wide problems.
type InputError struct {
	Index  int
	ID     string
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid pool: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid candidate %d (%q): %s: %s", e.Index, e.ID, e.Field, e.Reason)
}

// ConfigError names the setting that failed Config.Validate.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// ShardFailure records a shard that did not run to completion.
type ShardFailure struct {
	Shard Shard
	Err   error
}

func (f ShardFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Shard, f.Err)
}

// PartialResultError is returned alongside a result built from the shards
// that did complete. Cause is the context error when the run was canceled
// or ran out of time, otherwise the first shard error.
type PartialResultError struct {
	Failed    []ShardFailure
	Completed int
	Total     int
	Cause     error
}

func (e *PartialResultError) Error() string {
	failed := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		failed = append(failed, f.String())
	}
	return fmt.Sprintf("partial result: %d of %d shards completed, failed: [%s]",
		e.Completed, e.Total, strings.Join(failed, "; "))
}

func (e *PartialResultError) Unwrap() error {
	return e.Cause
}
