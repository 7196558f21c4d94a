package config

import (
	"time"

	"github.com/twitter/lineup/common"
	"github.com/twitter/lineup/search"
)

// SearchConfigs the map of available presets
var SearchConfigs = map[string]search.Config{
	"default":        defaultConfig,
	"dk.nba.classic": dkNBAClassic,
	"dk.nba.wide":    dkNBAWide,
	"local.quick":    localQuick,
}

// defaultConfig the values used for every field a selected config leaves unset
var defaultConfig = search.DefaultConfig()

// dkNBAClassic classic DraftKings NBA contest - !!! make sure this preset is added to SearchConfigs map above !!!
var dkNBAClassic = search.Config{
	Budget:             common.DefaultBudget,
	MinSpend:           common.DefaultMinSpend,
	MinAcceptableScore: common.DefaultMinAcceptableScore,
	DiversityThreshold: common.DefaultDiversityThreshold,
	TopK:               common.DefaultTopK,
	PoolSize:           common.DefaultPoolSize,
	MinCandidateScore:  15,
	MaxRankedRosters:   common.DefaultMaxRankedRosters,
}

// dkNBAWide a larger pool and a longer shortlist for multi-entry contests - !!! make sure this preset is added to SearchConfigs map above !!!
var dkNBAWide = search.Config{
	Budget:             common.DefaultBudget,
	MinSpend:           common.DefaultMinSpend,
	MinAcceptableScore: 240,
	DiversityThreshold: 6,
	TopK:               20,
	PoolSize:           60,
	MinCandidateScore:  10,
	MaxRankedRosters:   50000,
	TimeBudget:         time.Duration(2) * time.Minute,
}

// localQuick small and time boxed, for trying out pool files - !!! make sure this preset is added to SearchConfigs map above !!!
var localQuick = search.Config{
	Budget:             common.DefaultBudget,
	MinSpend:           common.DefaultMinSpend,
	MinAcceptableScore: 200,
	DiversityThreshold: common.DefaultDiversityThreshold,
	TopK:               3,
	PoolSize:           24,
	MaxRankedRosters:   1000,
	TimeBudget:         time.Duration(30) * time.Second,
}
