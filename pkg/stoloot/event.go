package stoloot

import (
	"time"

	"github.com/TigerhawkT3/sto-loot-parser/internal/model"
)

// Event is one recognized loot occurrence.
type Event struct {
	Timestamp   time.Time
	Interaction string
	Winner      string
	GainItem    string
	GainValue   int64
	LossItem    string
	LossValue   int64
}

// String renders the one-line human-readable summary.
func (e Event) String() string {
	return e.internal().String()
}

func (e Event) internal() model.Event {
	return model.Event(e)
}

func fromInternal(ev model.Event) Event {
	return Event(ev)
}
