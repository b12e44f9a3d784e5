package anim

// Shared fixtures for the anim package tests: a two-cubicle treatment layout
// and terse event-record constructors.

const testCapacityAttr = "n_cubicles"

// testLayout mirrors the shape of the original treatment-centre pages:
// arrival entry point, a waiting queue above two treatment cubicles, and a
// post-treatment step.
func testLayout() *Layout {
	l, err := NewLayout([]LayoutEntry{
		{Event: NameArrival, X: 50, Y: 300, Label: "Arrival"},
		{Event: "wait", X: 205, Y: 275, Label: "Waiting"},
		{Event: "treat", X: 205, Y: 110, Label: "Being Treated", Resource: testCapacityAttr},
		{Event: "done", X: 270, Y: 110, Label: "Done"},
	})
	if err != nil {
		panic(err)
	}
	return l
}

func testCapacities() MapCapacityProvider {
	return MapCapacityProvider{testCapacityAttr: 2}
}

// testConfig samples every time unit with no wrapping, so positions are easy
// to reason about in assertions.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Interval = 1
	return cfg
}

func arrive(entity string, t float64) EventRecord {
	return EventRecord{EntityID: entity, Type: EventArrivalDeparture, Event: NameArrival, Time: t}
}

func depart(entity string, t float64) EventRecord {
	return EventRecord{EntityID: entity, Type: EventArrivalDeparture, Event: NameDepart, Time: t}
}

func queueAt(entity, event string, t float64) EventRecord {
	return EventRecord{EntityID: entity, Type: EventQueue, Event: event, Time: t}
}

func useResource(entity, event string, t float64, id int) EventRecord {
	return EventRecord{EntityID: entity, Type: EventResourceUse, Event: event, Time: t, ResourceID: id, HasResource: true}
}

func endResource(entity, event string, t float64, id int) EventRecord {
	return EventRecord{EntityID: entity, Type: EventResourceUseEnd, Event: event, Time: t, ResourceID: id, HasResource: true}
}

// rowsAt filters the snapshot table to one sample instant.
func rowsAt(frames []SnapshotRow, t float64) []SnapshotRow {
	var out []SnapshotRow
	for _, row := range frames {
		if row.SampleTime == t {
			out = append(out, row)
		}
	}
	return out
}

// rowFor finds one entity's row at one instant.
func rowFor(frames []SnapshotRow, entity string, t float64) (SnapshotRow, bool) {
	for _, row := range frames {
		if row.SampleTime == t && row.EntityID == entity {
			return row, true
		}
	}
	return SnapshotRow{}, false
}
