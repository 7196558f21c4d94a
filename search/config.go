package search

import (
	"fmt"
	"math"
	"time"

	"github.com/twitter/lineup/common"
	"github.com/twitter/lineup/roster"
)

// Config holds the constraints and tuning knobs of a search run.
type Config struct {
	// Hard cap on a roster's total salary.
	Budget int `json:"budget"`
	// Floor on a roster's total salary.
	MinSpend int `json:"minSpend"`
	// Floor on a roster's total projected score.
	MinAcceptableScore float64 `json:"minAcceptableScore"`
	// Minimum symmetric difference between consecutive kept rosters.
	DiversityThreshold int `json:"diversityThreshold"`
	// Number of rosters returned.
	TopK int `json:"topK"`
	// Number of parallel workers, 0 picks one per available CPU.
	WorkerCount int `json:"workerCount"`

	// Keep only the PoolSize cheapest per projected point candidates, 0 keeps all.
	PoolSize int `json:"poolSize"`
	// Drop candidates projected below this score before partitioning.
	MinCandidateScore float64 `json:"minCandidateScore"`
	// Uniform per-slot salary reserve for the budget check, 0 uses each
	// slot's cheapest candidate. Values above a slot's cheapest candidate
	// are clamped down to it.
	MinSlotReserve int `json:"minSlotReserve"`
	// Turns off the score upper bound check. Results are identical, only
	// slower; used to verify the bound.
	DisableScoreBound bool `json:"disableScoreBound"`
	// Keep only the best MaxRankedRosters rosters before diversity
	// filtering, 0 keeps all.
	MaxRankedRosters int `json:"maxRankedRosters"`
	// Stop searching after this long and return a partial result, 0 means no limit.
	TimeBudget time.Duration `json:"timeBudget"`
}

// DefaultConfig returns the classic contest settings.
func DefaultConfig() Config {
	return Config{
		Budget:             common.DefaultBudget,
		MinSpend:           common.DefaultMinSpend,
		MinAcceptableScore: common.DefaultMinAcceptableScore,
		DiversityThreshold: common.DefaultDiversityThreshold,
		TopK:               common.DefaultTopK,
		PoolSize:           common.DefaultPoolSize,
		MaxRankedRosters:   common.DefaultMaxRankedRosters,
	}
}

// Window returns the hard roster constraints of c.
func (c Config) Window() roster.Window {
	return roster.Window{
		MinSpend:           c.MinSpend,
		Budget:             c.Budget,
		MinAcceptableScore: c.MinAcceptableScore,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("budget:%d minSpend:%d minScore:%.2f diversity:%d topK:%d workers:%d "+
		"poolSize:%d minCandidateScore:%.2f minSlotReserve:%d scoreBound:%t maxRanked:%d timeBudget:%s",
		c.Budget, c.MinSpend, c.MinAcceptableScore, c.DiversityThreshold, c.TopK, c.WorkerCount,
		c.PoolSize, c.MinCandidateScore, c.MinSlotReserve, !c.DisableScoreBound, c.MaxRankedRosters, c.TimeBudget)
}

// Validate returns a *ConfigError for the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.Budget <= 0:
		return &ConfigError{"budget", fmt.Sprintf("must be positive, got %d", c.Budget)}
	case c.MinSpend < 0:
		return &ConfigError{"minSpend", fmt.Sprintf("must not be negative, got %d", c.MinSpend)}
	case c.MinSpend > c.Budget:
		return &ConfigError{"minSpend", fmt.Sprintf("%d exceeds budget %d", c.MinSpend, c.Budget)}
	case math.IsNaN(c.MinAcceptableScore) || math.IsInf(c.MinAcceptableScore, 0):
		return &ConfigError{"minAcceptableScore", "not a finite number"}
	case c.DiversityThreshold < 0 || c.DiversityThreshold > 2*roster.NumSlots:
		return &ConfigError{"diversityThreshold", fmt.Sprintf("must be in [0, %d], got %d", 2*roster.NumSlots, c.DiversityThreshold)}
	case c.TopK <= 0:
		return &ConfigError{"topK", fmt.Sprintf("must be positive, got %d", c.TopK)}
	case c.WorkerCount < 0:
		return &ConfigError{"workerCount", fmt.Sprintf("must not be negative, got %d", c.WorkerCount)}
	case c.PoolSize < 0:
		return &ConfigError{"poolSize", fmt.Sprintf("must not be negative, got %d", c.PoolSize)}
	case math.IsNaN(c.MinCandidateScore) || math.IsInf(c.MinCandidateScore, 0):
		return &ConfigError{"minCandidateScore", "not a finite number"}
	case c.MinSlotReserve < 0:
		return &ConfigError{"minSlotReserve", fmt.Sprintf("must not be negative, got %d", c.MinSlotReserve)}
	case c.MaxRankedRosters < 0:
		return &ConfigError{"maxRankedRosters", fmt.Sprintf("must not be negative, got %d", c.MaxRankedRosters)}
	case c.TimeBudget < 0:
		return &ConfigError{"timeBudget", fmt.Sprintf("must not be negative, got %s", c.TimeBudget)}
	}
	return nil
}
