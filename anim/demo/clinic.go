// Package demo holds a small self-contained treatment-centre simulation that
// produces a schema-valid event log, so the transform pipeline can be
// exercised end to end without an external simulation model.
//
// Patients arrive with exponential interarrival times, wait in a FIFO queue
// for one of a pool of nurses, are treated for a clamped-gaussian duration,
// and depart. Runs are deterministic per seed.
package demo

import (
	"container/heap"
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/flowviz/flowviz/anim"
)

// Event names emitted into the demo log.
const (
	EventWaitBegins        = "treatment_wait_begins"
	EventTreatmentBegins   = "treatment_begins"
	EventTreatmentComplete = "treatment_complete"
	// CapacityAttr is the scenario attribute naming the nurse pool size.
	CapacityAttr = "n_nurses"
)

// Config groups the demo model parameters.
type Config struct {
	Seed             int64
	Horizon          float64 // arrivals stop after this time
	MeanInterarrival float64
	Nurses           int
	TreatMean        float64
	TreatStd         float64
	TreatMin         float64
	TreatMax         float64
}

// DefaultConfig returns a busy but stable clinic: one arrival every five
// minutes on average against three nurses, roughly 80% utilised over a
// simulated ten-hour day.
func DefaultConfig() Config {
	return Config{
		Seed:             42,
		Horizon:          600,
		MeanInterarrival: 5,
		Nurses:           3,
		TreatMean:        12,
		TreatStd:         4,
		TreatMin:         3,
		TreatMax:         30,
	}
}

// Validate checks the model parameters.
func (c Config) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %v", c.Horizon)
	}
	if c.MeanInterarrival <= 0 {
		return fmt.Errorf("mean interarrival must be positive, got %v", c.MeanInterarrival)
	}
	if c.Nurses <= 0 {
		return fmt.Errorf("nurse count must be positive, got %d", c.Nurses)
	}
	if c.TreatMin <= 0 || c.TreatMax < c.TreatMin {
		return fmt.Errorf("treatment bounds must satisfy 0 < min <= max, got [%v, %v]", c.TreatMin, c.TreatMax)
	}
	return nil
}

// Event is a scheduled occurrence in the demo model. Execute advances model
// state and may schedule further events.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// eventQueue implements heap.Interface, ordering events by timestamp with
// scheduling order breaking ties so replay is deterministic.
type eventQueue []scheduledEvent

type scheduledEvent struct {
	ev  Event
	seq int
}

func (eq eventQueue) Len() int { return len(eq) }
func (eq eventQueue) Less(i, j int) bool {
	if eq[i].ev.Timestamp() != eq[j].ev.Timestamp() {
		return eq[i].ev.Timestamp() < eq[j].ev.Timestamp()
	}
	return eq[i].seq < eq[j].seq
}
func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(scheduledEvent))
}

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

type patient struct {
	id string
}

// Simulator is the demo model's event loop: a clock, a pending-event heap,
// the nurse pool, and the FIFO of waiting patients. The event log grows as a
// side effect of executing events and is the model's only output.
type Simulator struct {
	cfg      Config
	clock    float64
	rng      *rand.Rand
	queue    eventQueue
	seq      int
	nurses   *ResourcePool
	waiting  []*patient
	arrivals int
	log      []anim.EventRecord
}

// NewSimulator creates a demo simulator for the given config.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid demo config: %w", err)
	}
	return &Simulator{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		nurses: NewResourcePool(cfg.Nurses),
	}, nil
}

// Schedule pushes an event onto the pending heap.
func (s *Simulator) Schedule(ev Event) {
	heap.Push(&s.queue, scheduledEvent{ev: ev, seq: s.seq})
	s.seq++
}

// Run executes the model to completion and returns the event log.
func (s *Simulator) Run() []anim.EventRecord {
	s.Schedule(&arrivalEvent{time: s.nextInterarrival()})
	for len(s.queue) > 0 {
		next := heap.Pop(&s.queue).(scheduledEvent)
		s.clock = next.ev.Timestamp()
		next.ev.Execute(s)
	}
	logrus.Infof("demo run complete: %d patients, %d log rows", s.arrivals, len(s.log))
	return s.log
}

// Scenario returns the capacity provider matching the generated log.
func (s *Simulator) Scenario() anim.MapCapacityProvider {
	return anim.MapCapacityProvider{CapacityAttr: s.cfg.Nurses}
}

func (s *Simulator) record(p *patient, typ anim.EventType, event string, unit int, hasUnit bool) {
	s.log = append(s.log, anim.EventRecord{
		EntityID:    p.id,
		Pathway:     "treatment",
		Type:        typ,
		Event:       event,
		Time:        s.clock,
		ResourceID:  unit,
		HasResource: hasUnit,
	})
}

func (s *Simulator) nextInterarrival() float64 {
	return s.clock + s.rng.ExpFloat64()*s.cfg.MeanInterarrival
}

// treatmentDuration samples a clamped gaussian treatment time.
func (s *Simulator) treatmentDuration() float64 {
	if s.cfg.TreatMin == s.cfg.TreatMax {
		return s.cfg.TreatMin
	}
	val := s.rng.NormFloat64()*s.cfg.TreatStd + s.cfg.TreatMean
	val = math.Min(s.cfg.TreatMax, val)
	return math.Max(s.cfg.TreatMin, val)
}

// startTreatments moves waiting patients onto free nurses, head of the queue
// first, until one side runs out.
func (s *Simulator) startTreatments() {
	for len(s.waiting) > 0 {
		unit, ok := s.nurses.Acquire()
		if !ok {
			return
		}
		p := s.waiting[0]
		s.waiting = s.waiting[1:]
		s.record(p, anim.EventResourceUse, EventTreatmentBegins, unit.ID, true)
		s.Schedule(&endTreatmentEvent{
			time:    s.clock + s.treatmentDuration(),
			patient: p,
			unit:    unit,
		})
	}
}

// arrivalEvent brings one new patient into the clinic and schedules the next
// arrival while the horizon allows.
type arrivalEvent struct {
	time float64
}

func (e *arrivalEvent) Timestamp() float64 { return e.time }

func (e *arrivalEvent) Execute(s *Simulator) {
	s.arrivals++
	p := &patient{id: fmt.Sprintf("patient_%d", s.arrivals)}
	logrus.Debugf("<< arrival: %s at %v", p.id, e.time)

	s.record(p, anim.EventArrivalDeparture, anim.NameArrival, 0, false)
	s.record(p, anim.EventQueue, EventWaitBegins, 0, false)
	s.waiting = append(s.waiting, p)
	s.startTreatments()

	if next := s.nextInterarrival(); next <= s.cfg.Horizon {
		s.Schedule(&arrivalEvent{time: next})
	}
}

// endTreatmentEvent completes a patient's treatment, releases the nurse, and
// departs the patient.
type endTreatmentEvent struct {
	time    float64
	patient *patient
	unit    ResourceUnit
}

func (e *endTreatmentEvent) Timestamp() float64 { return e.time }

func (e *endTreatmentEvent) Execute(s *Simulator) {
	logrus.Debugf("<< treatment complete: %s (unit %d) at %v", e.patient.id, e.unit.ID, e.time)

	s.record(e.patient, anim.EventResourceUseEnd, EventTreatmentComplete, e.unit.ID, true)
	s.record(e.patient, anim.EventArrivalDeparture, anim.NameDepart, 0, false)
	if err := s.nurses.Release(e.unit.ID); err != nil {
		// Unreachable unless the model itself is broken.
		panic(err)
	}
	s.startTreatments()
}

// Layout returns anchors matching the demo log's event names, arranged so
// the waiting queue sits above the treatment bays and flows into them.
func Layout() *anim.Layout {
	l, err := anim.NewLayout([]anim.LayoutEntry{
		{Event: anim.NameArrival, X: 50, Y: 300, Label: "Arrival"},
		{Event: EventWaitBegins, X: 205, Y: 275, Label: "Waiting for Treatment"},
		{Event: EventTreatmentBegins, X: 205, Y: 110, Label: "Being Treated", Resource: CapacityAttr},
		{Event: EventTreatmentComplete, X: 270, Y: 110, Label: "Treatment Complete"},
		{Event: anim.NameExit, X: 270, Y: 70, Label: "Exit"},
	})
	if err != nil {
		panic(err) // static layout, cannot fail
	}
	return l
}
