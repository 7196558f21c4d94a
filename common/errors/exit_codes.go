package errors

type ExitCode int

const (
	// The pool file or one of its candidates is unusable.
	InputErrorExitCode ExitCode = 2

	ConfigErrorExitCode ExitCode = 3

	// Some shards failed or were canceled; the rosters printed are incomplete.
	PartialResultExitCode ExitCode = 4

	// The search finished but no roster satisfied the constraints.
	InfeasibleExitCode ExitCode = 5
)
