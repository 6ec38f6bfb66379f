package engine

// PlayState is a recipient-specific view of a game, rebuilt purely by
// folding the events that recipient was allowed to see. It is never
// authoritative: the server, every client and every bot run the identical
// fold, so a reconnecting client can rebuild from scratch and land on the
// same state.
type PlayState struct {
	Phase Phase `json:"phase"`

	// Lobby.
	Seats []Seat `json:"seats,omitempty"`

	// Deal.
	Players   []PlayerID          `json:"players,omitempty"`
	Hands     map[PlayerID][]Card `json:"hands,omitempty"` // only hands this recipient saw
	HandSizes map[PlayerID]int    `json:"handSizes,omitempty"`
	Dog       []Card              `json:"dog,omitempty"` // only once revealed to this recipient
	DogLen    int                 `json:"dogLen,omitempty"`

	// Auction.
	Bids    []Bid             `json:"bids,omitempty"`
	Passed  map[PlayerID]bool `json:"passed,omitempty"`
	HighBid *Bid              `json:"highBid,omitempty"`
	Bidder  *PlayerID         `json:"bidder,omitempty"`

	// Contract.
	Called       *Card               `json:"called,omitempty"`
	ShownTrump   map[PlayerID][]Card `json:"shownTrump,omitempty"`
	SlamDeclared bool                `json:"slamDeclared,omitempty"`

	// Play.
	Current   *PlayerID        `json:"current,omitempty"` // acting seat, when known
	Trick     Trick            `json:"trick"`
	Past      []CompletedTrick `json:"past,omitempty"`
	AnyPlayed bool             `json:"anyPlayed,omitempty"`

	Completed *CompletedGameState `json:"completed,omitempty"`
}

// NewPlayState returns the empty projection every recipient starts from.
func NewPlayState() *PlayState {
	return &PlayState{
		Phase:      PhaseNewGame,
		Hands:      make(map[PlayerID][]Card),
		HandSizes:  make(map[PlayerID]int),
		Passed:     make(map[PlayerID]bool),
		ShownTrump: make(map[PlayerID][]Card),
	}
}

// Project folds an ordered event sequence into a fresh PlayState. Feeding it
// the same sequence always yields the same result; callers filter the log
// per recipient first (FilterEvents), or pass the full log for the
// elevated-trust administrative view.
func Project(events []PlayerEvent) *PlayState {
	ps := NewPlayState()
	for _, ev := range events {
		ps.Reduce(ev)
	}
	return ps
}

// ProjectFor is shorthand for projecting the subsequence of log visible to
// recipient.
func ProjectFor(log []PlayerEvent, recipient PlayerID) *PlayState {
	return Project(FilterEvents(log, recipient))
}

// Reduce folds one event into the state.
func (ps *PlayState) Reduce(ev PlayerEvent) {
	switch ev.Type {
	case EventPlayerEntered:
		ps.Seats = append(ps.Seats, Seat{Player: *ev.Player})

	case EventPlayerLeft:
		for i, s := range ps.Seats {
			if s.Player == *ev.Player {
				ps.Seats = append(ps.Seats[:i], ps.Seats[i+1:]...)
				break
			}
		}

	case EventPlayerReady, EventPlayerUnready:
		for i := range ps.Seats {
			if ps.Seats[i].Player == *ev.Player {
				ps.Seats[i].Ready = ev.Type == EventPlayerReady
			}
		}

	case EventSeatingOrder:
		n := len(ev.Players)
		ps.Phase = PhaseBidding
		ps.Players = append([]PlayerID(nil), ev.Players...)
		ps.Hands = make(map[PlayerID][]Card)
		ps.HandSizes = make(map[PlayerID]int, n)
		for _, p := range ev.Players {
			ps.HandSizes[p] = HandSize(n)
		}
		ps.Dog = nil
		ps.DogLen = DogSize(n)
		ps.Bids = nil
		ps.Passed = make(map[PlayerID]bool)
		ps.HighBid = nil
		ps.Bidder = nil
		ps.Called = nil
		ps.ShownTrump = make(map[PlayerID][]Card)
		ps.SlamDeclared = false
		ps.Trick = Trick{}
		ps.Past = nil
		ps.AnyPlayed = false
		ps.Current = ptrID(ev.Players[0])

	case EventHandDealt:
		ps.Hands[*ev.Player] = append([]Card(nil), ev.Cards...)

	case EventDogDealtObservers:
		ps.Dog = append([]Card(nil), ev.Cards...)

	case EventBidPlaced:
		ps.Bids = append(ps.Bids, *ev.Bid)
		if ev.Bid.Pass() {
			ps.Passed[ev.Bid.Player] = true
		} else {
			b := *ev.Bid
			ps.HighBid = &b
		}
		ps.Current = ps.nextBidder(*ev.Player)

	case EventBiddingAborted:
		seats := make([]Seat, len(ps.Players))
		for i, p := range ps.Players {
			seats[i] = Seat{Player: p}
		}
		reset := NewPlayState()
		reset.Seats = seats
		*ps = *reset

	case EventBiddingWon:
		ps.Bidder = ev.Player
		b := *ev.Bid
		ps.HighBid = &b
		if len(ps.Players) == MaxSeats {
			ps.Phase = PhasePartnerCall
			ps.Current = ev.Player
		}

	case EventPartnerCalled:
		ps.Called = ev.Card

	case EventDogRevealed:
		ps.Phase = PhaseDogReveal
		ps.Dog = append([]Card(nil), ev.Cards...)
		ps.Current = ps.Bidder

	case EventDogSet, EventDogSetObservers:
		// Recipients who know the bidder's hand (the bidder, observers on a
		// public table, the admin view) can replay the exchange exactly.
		if ev.Player != nil {
			if hand, ok := ps.Hands[*ev.Player]; ok {
				pool := append(append([]Card(nil), hand...), ps.Dog...)
				ps.Hands[*ev.Player] = DiffCards(pool, ev.Cards)
			}
		}
		ps.Dog = append([]Card(nil), ev.Cards...)

	case EventTrumpShown:
		ps.ShownTrump[*ev.Player] = append([]Card(nil), ev.Cards...)

	case EventSlamDeclared:
		ps.SlamDeclared = true

	case EventGameStarted:
		ps.Phase = PhasePlaying
		ps.Current = ev.Player
		ps.Trick = Trick{Index: 0}
		ps.AnyPlayed = false

	case EventCardPlayed:
		ps.Trick.Plays = append(ps.Trick.Plays, PlayedCard{Player: *ev.Player, Card: *ev.Card})
		ps.AnyPlayed = true
		if hand, ok := ps.Hands[*ev.Player]; ok {
			ps.Hands[*ev.Player] = DiffCards(hand, []Card{*ev.Card})
		}
		ps.HandSizes[*ev.Player]--
		ps.Current = ps.nextSeat(*ev.Player)

	case EventTrickWon:
		ps.Past = append(ps.Past, *ev.Trick)
		ps.Trick = Trick{Index: ev.Trick.Index + 1}
		w := ev.Trick.Winner
		ps.Current = ptrID(w)

	case EventGameCompleted:
		ps.Phase = PhaseCompleted
		ps.Completed = ev.Completed
		ps.Current = nil
	}
}

// nextBidder returns the seat to bid after the given one, or nil when the
// auction is about to resolve (one live bidder holding the high bid, or an
// all-pass).
func (ps *PlayState) nextBidder(after PlayerID) *PlayerID {
	unpassed := 0
	var lone PlayerID
	for _, p := range ps.Players {
		if !ps.Passed[p] {
			unpassed++
			lone = p
		}
	}
	if unpassed == 0 {
		return nil
	}
	if unpassed == 1 && ps.HighBid != nil && ps.HighBid.Player == lone {
		return nil
	}
	i := seatIndex(ps.Players, after)
	for {
		i = (i + 1) % len(ps.Players)
		if !ps.Passed[ps.Players[i]] {
			return ptrID(ps.Players[i])
		}
	}
}

// nextSeat returns the seat after the given one in play order.
func (ps *PlayState) nextSeat(after PlayerID) *PlayerID {
	i := seatIndex(ps.Players, after)
	if i < 0 {
		return nil
	}
	return ptrID(ps.Players[(i+1)%len(ps.Players)])
}

// hasPlayed reports whether p has played a card this game.
func (ps *PlayState) hasPlayed(p PlayerID) bool {
	for _, t := range ps.Past {
		for _, pl := range t.Plays {
			if pl.Player == p {
				return true
			}
		}
	}
	for _, pl := range ps.Trick.Plays {
		if pl.Player == p {
			return true
		}
	}
	return false
}

// LegalPlaysFor returns the cards self may play from this view, including
// the called partner's first-lead restriction (which only the partner
// themselves can apply, since only they know they hold the called card).
func (ps *PlayState) LegalPlaysFor(self PlayerID) []Card {
	hand := ps.Hands[self]
	legal := LegalPlays(hand, ps.Trick.Cards(), ps.AnyPlayed, ps.Called)

	if ps.Called != nil && len(ps.Trick.Plays) == 0 && !ps.hasPlayed(self) &&
		ContainsCard(hand, *ps.Called) {
		filtered := legal[:0:0]
		for _, c := range legal {
			if c.Suit != ps.Called.Suit || c == *ps.Called {
				filtered = append(filtered, c)
			}
		}
		return filtered
	}
	return legal
}

// DogPool returns the cards self may compose a replacement dog from.
func (ps *PlayState) DogPool(self PlayerID) []Card {
	return append(append([]Card(nil), ps.Hands[self]...), ps.Dog...)
}
