package anim

import "sort"

// activeEventAt resolves an entity's currently-active event at sample
// instant t: the event with the greatest timestamp at or before t, ties
// broken by insertion order (last inserted wins).
//
// The second return is false when the entity is not a member of frame t:
// before its arrival, or from its departure instant onward — membership is
// the half-open window [arrival, depart).
func activeEventAt(tl *entityTimeline, t float64) (EventRecord, bool) {
	if t < tl.arrival {
		return EventRecord{}, false
	}
	if tl.hasDepart && t >= tl.depart {
		return EventRecord{}, false
	}

	// events is sorted by (time, seq); find the first index past t and step
	// back one. SliceStable in buildIndex already put the last-inserted
	// record at the end of any equal-timestamp run.
	i := sort.Search(len(tl.events), func(i int) bool {
		return tl.events[i].Time > t
	})
	if i == 0 {
		return EventRecord{}, false
	}
	return tl.events[i-1], true
}
