package dialogue

import "time"

// Phase is the dialogue state of a conversation.
type Phase string

const (
	// PhaseFresh means no clarification is pending.
	PhaseFresh Phase = "fresh"
	// PhaseAwaitingLocation means the last response asked for a location.
	PhaseAwaitingLocation Phase = "awaiting_location"
)

// SavedRequest holds the slots remembered across a clarification.
// Types and period live in one value so they are always saved together.
type SavedRequest struct {
	Types  []WeatherType  `json:"types"`
	Period ForecastPeriod `json:"period"`
}

// ConversationState is the per-session dialogue state.
type ConversationState struct {
	Phase           Phase         `json:"phase"`
	Saved           *SavedRequest `json:"saved,omitempty"`
	LastMessage     string        `json:"lastMessage,omitempty"`
	LocationPrompts int           `json:"locationPrompts,omitempty"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// NewConversationState returns the state of a session that has not spoken yet.
func NewConversationState() ConversationState {
	return ConversationState{Phase: PhaseFresh}
}

// AwaitingLocation reports whether a location clarification is pending.
func (s ConversationState) AwaitingLocation() bool {
	return s.Phase == PhaseAwaitingLocation && s.Saved != nil
}

// Tracker decides how an incoming utterance relates to the stored state
// and applies the transitions of the slot-filling state machine.
type Tracker struct {
	maxPrompts int
}

// NewTracker builds a tracker that asks for a location at most maxPrompts times in a row.
func NewTracker(maxPrompts int) Tracker {
	if maxPrompts <= 0 {
		maxPrompts = 1
	}
	return Tracker{maxPrompts: maxPrompts}
}

// Pending reports whether the next utterance answers a clarification.
func (t Tracker) Pending(state ConversationState) bool {
	return state.AwaitingLocation()
}

// Save remembers the slots of a fresh request.
func (t Tracker) Save(state *ConversationState, types []WeatherType, period ForecastPeriod) {
	copied := make([]WeatherType, len(types))
	copy(copied, types)
	state.Saved = &SavedRequest{Types: copied, Period: period}
}

// AskLocation moves the state to AWAITING_LOCATION. It returns false once the
// prompt budget is spent, in which case the caller should give up.
func (t Tracker) AskLocation(state *ConversationState) bool {
	if state.Phase == PhaseAwaitingLocation && state.LocationPrompts >= t.maxPrompts {
		return false
	}
	if state.Phase != PhaseAwaitingLocation {
		state.LocationPrompts = 0
	}
	state.Phase = PhaseAwaitingLocation
	state.LocationPrompts++
	return true
}

// Resolve returns the state to FRESH after a request was answered.
func (t Tracker) Resolve(state *ConversationState) {
	state.Phase = PhaseFresh
	state.LocationPrompts = 0
}

// GiveUp abandons the pending clarification and forgets the saved slots.
func (t Tracker) GiveUp(state *ConversationState) {
	state.Phase = PhaseFresh
	state.LocationPrompts = 0
	state.Saved = nil
}
