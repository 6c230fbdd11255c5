package migrate

// State is a step of the runner's lifecycle:
//
//	Uninitialized -> Checking -> {Applying(v) -> Applied(v)}* -> Ready
//
// Any failure while checking or applying moves the runner to Failed, which
// is terminal.
type State int

const (
	Uninitialized State = iota
	Checking
	Applying
	Applied
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Checking:
		return "checking"
	case Applying:
		return "applying"
	case Applied:
		return "applied"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Transition is reported to an observer each time the runner changes state.
// Version is the migration being applied for Applying/Applied, and the
// store's applied version otherwise.
type Transition struct {
	From    State
	To      State
	Version int64
}
