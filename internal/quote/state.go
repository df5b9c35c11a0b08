package quote

// State is where a quote call is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSessionStarting
	StateNavigating
	StateWaitingForResults
	StateScraping
	StateNormalizing
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:              "idle",
	StateValidating:        "validating",
	StateSessionStarting:   "session_starting",
	StateNavigating:        "navigating",
	StateWaitingForResults: "waiting_for_results",
	StateScraping:          "scraping",
	StateNormalizing:       "normalizing",
	StateDone:              "done",
	StateFailed:            "failed",
}

func (s State) String() string {
	name, ok := stateNames[s]
	if !ok {
		return "unknown"
	}
	return name
}

// failureCategory is what an unexpected failure in this state is reported as.
func (s State) failureCategory() Category {
	switch s {
	case StateValidating:
		return CategoryValidation
	case StateNavigating:
		return CategoryScrapeTargetMissing
	case StateWaitingForResults:
		return CategoryTimeout
	case StateScraping, StateNormalizing:
		return CategoryParse
	}
	return CategoryEnvironment
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
