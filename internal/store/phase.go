package store

// Phase is the step of a store visit
type Phase int

const (
	Browse Phase = iota
	Dialogue
	Listing
)

func (p Phase) String() string {
	switch p {
	case Dialogue:
		return "dialogue"
	case Listing:
		return "listing"
	default:
		return "browse"
	}
}

// Event is a player action routed to the visit
type Event int

const (
	EventInteract Event = iota
	EventUp
	EventDown
	EventLeave
)

func (e Event) String() string {
	switch e {
	case EventUp:
		return "up"
	case EventDown:
		return "down"
	case EventLeave:
		return "leave"
	default:
		return "interact"
	}
}

// Guards are the conditions a transition may depend on
type Guards struct {
	NearClerk    bool // Player within talk radius of the clerk
	NearExit     bool // Player within the exit door radius
	HasNextLine  bool // Dialogue line index + 1 < script length
	ExitSelected bool // Listing selection is on the synthetic exit row
}

// Effect is the side effect a transition asks the session to perform
type Effect int

const (
	EffectNone Effect = iota
	EffectStartDialogue
	EffectNextLine
	EffectOpenListing
	EffectSelectPrev
	EffectSelectNext
	EffectPurchase
	EffectCloseListing
	EffectLeave
)

func (e Effect) String() string {
	return [...]string{
		"none", "start-dialogue", "next-line", "open-listing",
		"select-prev", "select-next", "purchase", "close-listing", "leave",
	}[e]
}

// Transition is the visit state machine. It is pure: the caller applies the
// returned effect. An explicit leave, or interacting at the exit door, leaves
// from any phase.
func Transition(phase Phase, ev Event, g Guards) (Phase, Effect) {
	if ev == EventLeave || (ev == EventInteract && g.NearExit) {
		return Browse, EffectLeave
	}

	switch phase {
	case Browse:
		if ev == EventInteract && g.NearClerk {
			return Dialogue, EffectStartDialogue
		}

	case Dialogue:
		if ev == EventInteract {
			if g.HasNextLine {
				return Dialogue, EffectNextLine
			}
			return Listing, EffectOpenListing
		}

	case Listing:
		switch ev {
		case EventUp:
			return Listing, EffectSelectPrev
		case EventDown:
			return Listing, EffectSelectNext
		case EventInteract:
			if g.ExitSelected {
				return Browse, EffectCloseListing
			}
			return Listing, EffectPurchase
		}
	}
	return phase, EffectNone
}
