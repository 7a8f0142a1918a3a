package selection

import (
	"github.com/ActiveState/rtscope/internal/logging"
	"github.com/ActiveState/rtscope/internal/output"
	"github.com/ActiveState/rtscope/pkg/runtime/events"
)

// NewEventHandler announces every runtime block on out as it starts
func NewEventHandler(out output.Outputer) events.HandlerFunc {
	return func(ev events.Event) error {
		switch e := ev.(type) {
		case events.ScopeStart:
			logging.Debug("Scoped run started for %s, activation: %s", e.Runtime.Binary, e.Runtime.ActivationID)
			out.Notice(output.Heading(Heading(e.Runtime.Binary, e.Runtime.Version)))
		case events.ScopeFailure:
			logging.Debug("Scoped run failed for %s: %v", e.Runtime.Binary, e.Error)
		case events.ScopeSuccess:
			logging.Debug("Scoped run succeeded for %s", e.Runtime.Binary)
		}
		return nil
	}
}
