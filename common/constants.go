package common

// Contest constants of the classic DraftKings NBA format, used by the
// default and dk.nba.classic presets.
const (
	DefaultBudget             = 50000
	DefaultMinSpend           = 45000
	DefaultMinAcceptableScore = 250.0
	DefaultTopK               = 5

	// The original tool kept rosters differing by 4 players; with equal sized
	// rosters that is a symmetric difference of 8 ids.
	DefaultDiversityThreshold = 8

	DefaultPoolSize         = 40
	DefaultMaxRankedRosters = 10000
)
