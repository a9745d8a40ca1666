package repo

import (
	"context"
	"time"

	"newsstand/internal/core/dates"
	"newsstand/internal/modkit/repokit"
	perr "newsstand/internal/platform/errors"
)

// OpenEvent is one accepted open, appended to clickhouse for diagnostics
type OpenEvent struct {
	EventID string
	UserID  string
	ItemID  string
	Tier    string
	Reason  string
	Day     dates.Day

	// DupDropped carries the loader's discarded-duplicate counter at open time
	DupDropped int

	OpenedAt time.Time
}

// openEventColumns matches the reader_open_events table
var openEventColumns = []string{
	"event_id", "user_id", "item_id", "tier", "reason", "day", "dup_dropped", "opened_at",
}

// EventSink appends open events to clickhouse
type EventSink struct {
	ch repokit.Clickhouse
}

// NewEventSink creates a sink over the clickhouse seam
func NewEventSink(ch repokit.Clickhouse) *EventSink {
	return &EventSink{ch: ch}
}

// Record appends one open event; a nil seam is a configured no-op
func (s *EventSink) Record(ctx context.Context, ev OpenEvent) error {
	if s == nil || s.ch == nil {
		return nil
	}
	if ev.EventID == "" {
		return perr.InvalidArgf("open event requires an event id")
	}
	row := []any{
		ev.EventID,
		ev.UserID,
		ev.ItemID,
		ev.Tier,
		ev.Reason,
		dates.FormatDay(ev.Day),
		int32(ev.DupDropped),
		ev.OpenedAt.UTC(),
	}
	return s.ch.Insert(ctx, "reader_open_events", openEventColumns, [][]any{row})
}
