package engine

// EventType tags a PlayerEvent.
type EventType string

const (
	EventPlayerEntered EventType = "player_entered"
	EventPlayerLeft    EventType = "player_left"
	EventPlayerReady   EventType = "player_ready"
	EventPlayerUnready EventType = "player_unready"

	// EventSeatingOrder announces the shuffled seat order and opens bidding.
	EventSeatingOrder EventType = "seating_order"
	// EventHandDealt carries one seat's dealt hand. Private to that seat
	// unless the table plays with public hands.
	EventHandDealt EventType = "hand_dealt"
	// EventDogDealtObservers reveals the freshly dealt dog to observers only
	// (emitted on public-hands tables, excluded from every seat).
	EventDogDealtObservers EventType = "dog_dealt_observers"

	EventBidPlaced      EventType = "bid_placed"
	EventBiddingAborted EventType = "bidding_aborted"
	// EventBiddingWon announces the surviving high bid and bidder.
	EventBiddingWon EventType = "bidding_won"

	EventPartnerCalled EventType = "partner_called"

	// EventDogRevealed flips the dog face up for everyone before the
	// bidder's exchange.
	EventDogRevealed EventType = "dog_revealed"
	// EventDogSet is the bidder's replacement dog, private to the bidder.
	EventDogSet EventType = "dog_set"
	// EventDogSetObservers mirrors EventDogSet to observers on public-hands
	// tables (excluded from every seat).
	EventDogSetObservers EventType = "dog_set_observers"

	EventTrumpShown   EventType = "trump_shown"
	EventSlamDeclared EventType = "slam_declared"

	// EventGameStarted marks the transition into trick play; Player is the
	// seat leading the first trick.
	EventGameStarted EventType = "game_started"

	EventCardPlayed    EventType = "card_played"
	EventTrickWon      EventType = "trick_won"
	EventGameCompleted EventType = "game_completed"
)

// PlayerEvent is one immutable fact about a game. The authoritative log is
// the append-only ordered sequence of every event produced; every other
// representation of a game is rebuilt by folding a visibility-filtered
// subsequence of that log.
//
// Visibility: an event with PrivateTo set is shown only to that recipient;
// an event with Exclude set is shown to everyone not listed. Both default
// to fully public.
type PlayerEvent struct {
	Type EventType `json:"type"`

	// Player is the seat the event is about (actor, recipient of a deal,
	// leader, ...), when meaningful.
	Player *PlayerID `json:"player,omitempty"`
	// Players carries a seat ordering (EventSeatingOrder).
	Players []PlayerID `json:"players,omitempty"`

	Card  *Card  `json:"card,omitempty"`
	Cards []Card `json:"cards,omitempty"`

	Bid *Bid `json:"bid,omitempty"`

	// Trick is set on EventTrickWon.
	Trick *CompletedTrick `json:"trick,omitempty"`

	// Completed is set on EventGameCompleted.
	Completed *CompletedGameState `json:"completed,omitempty"`

	PrivateTo *PlayerID  `json:"privateTo,omitempty"`
	Exclude   []PlayerID `json:"exclude,omitempty"`
}

// VisibleTo reports whether recipient is entitled to see the event.
func (e PlayerEvent) VisibleTo(recipient PlayerID) bool {
	if e.PrivateTo != nil && *e.PrivateTo != recipient {
		return false
	}
	for _, x := range e.Exclude {
		if x == recipient {
			return false
		}
	}
	return true
}

// FilterEvents returns the subsequence of events visible to recipient,
// preserving order.
func FilterEvents(events []PlayerEvent, recipient PlayerID) []PlayerEvent {
	out := make([]PlayerEvent, 0, len(events))
	for _, e := range events {
		if e.VisibleTo(recipient) {
			out = append(out, e)
		}
	}
	return out
}

func ptrID(id PlayerID) *PlayerID { return &id }

func ptrCard(c Card) *Card { return &c }
