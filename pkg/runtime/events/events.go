package events

// Event is fired by the selector while it works through its scoped runs
type Event interface {
	IsEvent()
}

// HandlerFunc receives events, returning an error aborts the scoped run that fired the event
type HandlerFunc func(Event) error

// Runtime identifies the runtime an event concerns
type Runtime struct {
	Name         string
	Binary       string
	Version      string
	ActivationID string
}

// ScopeStart is fired once the environment of a scoped run has been set up, right before the build step runs
type ScopeStart struct {
	Runtime Runtime
	// Env holds the variables the scoped run set or changed
	Env map[string]string
}

// ScopeSuccess is fired after a build step returned without error and the environment was restored
type ScopeSuccess struct {
	Runtime Runtime
}

// ScopeFailure is fired after a scoped run failed and the environment was restored
type ScopeFailure struct {
	Runtime Runtime
	Error   error
}

func (ScopeStart) IsEvent()   {}
func (ScopeSuccess) IsEvent() {}
func (ScopeFailure) IsEvent() {}
