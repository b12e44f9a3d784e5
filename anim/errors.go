package anim

import "fmt"

// SchemaError reports a structurally invalid event log: a missing required
// field, an unrecognized event_type, or a broken lifecycle invariant. It is
// raised before any processing.
type SchemaError struct {
	Row int // 0-based log row, -1 when the error is not row-specific
	Msg string
}

func (e *SchemaError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("event log schema: %s", e.Msg)
	}
	return fmt.Sprintf("event log row %d: %s", e.Row, e.Msg)
}

// UnresolvedLayoutKeyError reports an event name used in the log that has no
// matching layout entry. Fatal unless Config.SkipUnknownEvents is set.
type UnresolvedLayoutKeyError struct {
	Event string
	Row   int
}

func (e *UnresolvedLayoutKeyError) Error() string {
	return fmt.Sprintf("event log row %d: event %q has no layout entry", e.Row, e.Event)
}

// CapacityExceededError is the single fatal runtime condition discovered
// mid-transformation: the number of simultaneously active entities at one
// sampled instant exceeded the configured safety guard. The transform aborts
// rather than emitting an unbounded or truncated table.
type CapacityExceededError struct {
	SampleTime float64
	Active     int
	Limit      int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf(
		"%d entities active at t=%v exceeds the safety guard of %d; "+
			"narrow the time window, shorten the log, or increase resource counts",
		e.Active, e.SampleTime, e.Limit)
}

// DiagnosticKind classifies recoverable data-quality findings.
type DiagnosticKind string

const (
	// DiagMissingDeparture flags an entity that never departs; it stays
	// active through the end of the sample grid.
	DiagMissingDeparture DiagnosticKind = "missing_departure"
	// DiagResourceOverflow flags a resource_id outside the declared
	// capacity range [1, N]; the entity is omitted from the frame.
	DiagResourceOverflow DiagnosticKind = "resource_overflow"
	// DiagDuplicateResource flags two entities occupying the same resource
	// slot at the same instant.
	DiagDuplicateResource DiagnosticKind = "duplicate_resource"
	// DiagQueueOverflow flags ranks past the visible packing region handled
	// by a clip or marker policy.
	DiagQueueOverflow DiagnosticKind = "queue_overflow"
	// DiagUnknownEvent flags a dropped row under SkipUnknownEvents.
	DiagUnknownEvent DiagnosticKind = "unknown_event"
	// DiagGridTruncated flags a sample grid cut short by LimitDuration.
	DiagGridTruncated DiagnosticKind = "grid_truncated"
)

// Diagnostic is one recoverable data-quality finding, accumulated alongside
// best-effort output rather than aborting the run.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	EntityID   string         `json:"entity_id,omitempty"`
	Event      string         `json:"event,omitempty"`
	SampleTime float64        `json:"sample_time,omitempty"`
	Detail     string         `json:"detail,omitempty"`
}

func (d Diagnostic) String() string {
	s := string(d.Kind)
	if d.EntityID != "" {
		s += " entity=" + d.EntityID
	}
	if d.Event != "" {
		s += " event=" + d.Event
	}
	if d.Detail != "" {
		s += ": " + d.Detail
	}
	return s
}
