// Package events records analytics events to the optional ClickHouse sink
package events

import (
	"context"
	"time"

	"helpdesk/internal/platform/logger"
	"helpdesk/internal/platform/store"
)

// Table is the ClickHouse table events land in
const Table = "helpdesk_events"

// Kind enumerates recorded event kinds
type Kind string

const (
	// KindSubmission is a ticket submission attempt
	KindSubmission Kind = "submission"

	// KindAssistant is an AI assistant exchange
	KindAssistant Kind = "assistant"

	// KindNotify is a push delivery attempt
	KindNotify Kind = "notify"
)

// Event is one analytics row
type Event struct {
	At        time.Time
	Kind      Kind
	TicketID  string
	ClientKey string
	Outcome   string
	Detail    string
}

// Recorder writes events to ClickHouse, dropping them when the sink is disabled
// the zero value and a nil receiver are both safe no-ops
type Recorder struct {
	ch  store.Clickhouse
	log logger.Logger
}

// NewRecorder builds a Recorder over the optional CH seam
func NewRecorder(ch store.Clickhouse, log logger.Logger) *Recorder {
	return &Recorder{ch: ch, log: log}
}

// Record writes one event, best effort
// failures are logged, never propagated; analytics must not break the request path
func (r *Recorder) Record(ctx context.Context, ev Event) {
	if r == nil || r.ch == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := r.ch.Insert(ctx, Table, [][]any{{
		ev.At,
		string(ev.Kind),
		ev.TicketID,
		ev.ClientKey,
		ev.Outcome,
		ev.Detail,
	}})
	if err != nil {
		r.log.Warn().Err(err).Str("kind", string(ev.Kind)).Msg("event record failed")
	}
}
