package anim

import "fmt"

// EventType is the closed set of event categories an event log may contain.
// Anything else is rejected at ingestion.
type EventType string

const (
	// EventArrivalDeparture marks an entity entering or leaving the system.
	// The only event names allowed under it are NameArrival and NameDepart.
	EventArrivalDeparture EventType = "arrival_departure"
	// EventQueue marks an entity starting to wait at a named process step.
	EventQueue EventType = "queue"
	// EventResourceUse marks an entity occupying one unit of a pooled resource.
	EventResourceUse EventType = "resource_use"
	// EventResourceUseEnd marks the end of a resource occupancy.
	EventResourceUseEnd EventType = "resource_use_end"
)

// Reserved event names within EventArrivalDeparture records.
const (
	NameArrival = "arrival"
	NameDepart  = "depart"
	// NameExit is a layout-only convention for an exit anchor. It never
	// appears in a valid log and the transform ignores it if present in a
	// layout config.
	NameExit = "exit"
)

// ParseEventType validates a raw event_type value.
func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case EventArrivalDeparture, EventQueue, EventResourceUse, EventResourceUseEnd:
		return EventType(s), nil
	}
	return "", fmt.Errorf("unrecognized event_type %q", s)
}

// EventRecord is one immutable row of the event log.
//
// ResourceID is meaningful only when HasResource is true, which is required
// for EventResourceUse and EventResourceUseEnd records. Resource ids are
// 1-based: unit ids are minted by the simulation's resource pool starting
// at 1 (see anim/demo.ResourcePool).
type EventRecord struct {
	EntityID    string
	Pathway     string
	Type        EventType
	Event       string
	Time        float64
	ResourceID  int
	HasResource bool

	// seq is the record's insertion position in the original log. It breaks
	// timestamp ties deterministically (last inserted wins) and is assigned
	// during ingestion, so callers never set it.
	seq int
}

// IsArrival reports whether the record is the reserved arrival marker.
func (r EventRecord) IsArrival() bool {
	return r.Type == EventArrivalDeparture && r.Event == NameArrival
}

// IsDepart reports whether the record is the reserved departure marker.
func (r EventRecord) IsDepart() bool {
	return r.Type == EventArrivalDeparture && r.Event == NameDepart
}
