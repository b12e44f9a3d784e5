package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(t *testing.T, log []EventRecord) *logIndex {
	t.Helper()
	idx, _, err := buildIndex(log, testLayout(), testConfig())
	require.NoError(t, err)
	return idx
}

func TestActiveEventAt_MembershipWindow(t *testing.T) {
	// GIVEN an entity arriving at 0 and departing at 5
	idx := indexOf(t, []EventRecord{
		arrive("A", 0),
		queueAt("A", "wait", 0),
		depart("A", 5),
	})
	tl := idx.entities[0]

	// THEN the entity is a member for t in [0, 5) and absent at 5 and beyond
	for _, tt := range []float64{0, 1, 2, 3, 4, 4.999} {
		_, ok := activeEventAt(tl, tt)
		assert.Truef(t, ok, "t=%v", tt)
	}
	for _, tt := range []float64{-1, 5, 6, 100} {
		_, ok := activeEventAt(tl, tt)
		assert.Falsef(t, ok, "t=%v", tt)
	}
}

func TestActiveEventAt_LastEventAtOrBefore(t *testing.T) {
	// GIVEN an entity moving arrival -> wait -> treat
	idx := indexOf(t, []EventRecord{
		arrive("A", 0),
		queueAt("A", "wait", 2),
		useResource("A", "treat", 7, 1),
		depart("A", 12),
	})
	tl := idx.entities[0]

	tests := []struct {
		t    float64
		want string
	}{
		{0, NameArrival},
		{1.5, NameArrival},
		{2, "wait"},
		{6.9, "wait"},
		{7, "treat"},
		{11, "treat"},
	}
	for _, tc := range tests {
		rec, ok := activeEventAt(tl, tc.t)
		require.Truef(t, ok, "t=%v", tc.t)
		assert.Equalf(t, tc.want, rec.Event, "t=%v", tc.t)
	}
}

func TestActiveEventAt_EqualTimestampsLastInsertedWins(t *testing.T) {
	// GIVEN two events for one entity at the same timestamp
	idx := indexOf(t, []EventRecord{
		arrive("A", 0),
		queueAt("A", "wait", 3),
		useResource("A", "treat", 3, 1),
	})
	tl := idx.entities[0]

	// WHEN the active event at that instant is resolved
	rec, ok := activeEventAt(tl, 3)

	// THEN the later log row wins the tie
	require.True(t, ok)
	assert.Equal(t, "treat", rec.Event)
}

func TestActiveEventAt_TieBreakIgnoresPreSorting(t *testing.T) {
	// GIVEN the same tied events in the opposite physical order
	idx := indexOf(t, []EventRecord{
		arrive("A", 0),
		useResource("A", "treat", 3, 1),
		queueAt("A", "wait", 3),
	})
	tl := idx.entities[0]

	// THEN resolution still follows insertion order, not event type
	rec, ok := activeEventAt(tl, 3)
	require.True(t, ok)
	assert.Equal(t, "wait", rec.Event)
}
