package viewer

import "mealview/internal/model"

// Phase is the lifecycle position of a viewer.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// State is an immutable snapshot of a viewer.
//
// Recipe is non-nil if and only if Phase is PhaseLoaded. Cycle counts the
// fetches started so far; it is 0 while idle.
type State struct {
	Phase  Phase         `json:"phase"`
	Cycle  uint64        `json:"cycle"`
	Recipe *model.Recipe `json:"recipe,omitempty"`
}

// CanLoadAnother reports whether a new fetch may be started from this state.
func (s State) CanLoadAnother() bool {
	return s.Phase == PhaseLoaded || s.Phase == PhaseFailed
}

// clone returns a copy that shares nothing with s.
func (s State) clone() State {
	if s.Recipe != nil {
		r := *s.Recipe
		s.Recipe = &r
	}
	return s
}
