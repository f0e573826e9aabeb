package crawl

// State is the crawl state machine's position. Transitions:
// Idle -> Running -> (Paginating <-> Running) -> Completed | Halted | Failed.
type State string

const (
	StateIdle       State = "Idle"
	StateRunning    State = "Running"
	StatePaginating State = "Paginating"
	StateCompleted  State = "Completed"
	StateHalted     State = "Halted"
	StateFailed     State = "Failed"
)

// Terminal reports whether the state machine has stopped
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateHalted, StateFailed:
		return true
	default:
		return false
	}
}

// Options carries the start command's configuration. It is re-read from
// the persisted state at the beginning of every page cycle so the UI
// collaborator can mutate it mid-crawl.
type Options struct {
	FilterEnabled   bool
	DetailEnabled   bool
	PageDelay       float64 // seconds
	TargetLocations []string
}
