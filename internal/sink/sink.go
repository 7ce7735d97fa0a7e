package sink

import (
	"context"
	"time"

	"github.com/goliatone/go-fireform/pkg/observation"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used to stamp envelopes. Pass nil to reset
// to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Envelope wraps one accepted observation with delivery metadata.
type Envelope struct {
	ID          string                  `json:"id"`
	SubmittedAt time.Time               `json:"submittedAt"`
	Observation observation.Observation `json:"observation"`
}

// NewEnvelope stamps rec with a fresh ID and the current time in UTC.
func NewEnvelope(rec observation.Observation) Envelope {
	return Envelope{
		ID:          uuid.NewString(),
		SubmittedAt: clock.Now().UTC(),
		Observation: rec,
	}
}

// Sink receives envelopes. Implementations must be safe for concurrent use.
type Sink interface {
	Name() string
	Publish(ctx context.Context, env Envelope) error
	Close() error
}
