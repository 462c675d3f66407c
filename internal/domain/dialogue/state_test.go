package dialogue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackerAskLocationBudget(t *testing.T) {
	tracker := NewTracker(2)
	state := NewConversationState()
	tracker.Save(&state, []WeatherType{TypeRain}, PeriodToday)

	require.True(t, tracker.AskLocation(&state))
	require.True(t, tracker.Pending(state))
	require.Equal(t, 1, state.LocationPrompts)

	require.True(t, tracker.AskLocation(&state))
	require.Equal(t, 2, state.LocationPrompts)

	require.False(t, tracker.AskLocation(&state))

	tracker.GiveUp(&state)
	require.False(t, tracker.Pending(state))
	require.Nil(t, state.Saved)
	require.Zero(t, state.LocationPrompts)
}

func TestTrackerResolveReturnsToFresh(t *testing.T) {
	tracker := NewTracker(3)
	state := NewConversationState()
	tracker.Save(&state, []WeatherType{TypeWind}, PeriodWeek)
	require.True(t, tracker.AskLocation(&state))

	tracker.Resolve(&state)
	require.Equal(t, PhaseFresh, state.Phase)
	require.False(t, tracker.Pending(state))
	require.NotNil(t, state.Saved)
}

func TestTrackerPendingRequiresSavedSlots(t *testing.T) {
	tracker := NewTracker(1)
	state := ConversationState{Phase: PhaseAwaitingLocation}
	require.False(t, tracker.Pending(state))
}

func TestTrackerSaveCopiesTypes(t *testing.T) {
	tracker := NewTracker(1)
	state := NewConversationState()
	types := []WeatherType{TypeSnow}
	tracker.Save(&state, types, PeriodTomorrow)
	types[0] = TypeWind

	require.Equal(t, []WeatherType{TypeSnow}, state.Saved.Types)
	require.Equal(t, PeriodTomorrow, state.Saved.Period)
}
