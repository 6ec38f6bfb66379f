package engine

// apply handles the bidding phase: bids (and passes) from the bidder in
// turn, plus trump shows from any seat.
func (s *BiddingState) apply(act Action) (BoardState, []PlayerEvent, error) {
	switch act.Kind {
	case ActionBid:
		return s.applyBid(act)
	case ActionShowTrump:
		next := s.clone()
		ev, err := showTrump(next.Players, next.Hands, next.ShownTrump, act.Player)
		if err != nil {
			return nil, nil, err
		}
		return next, []PlayerEvent{ev}, nil
	}
	return nil, nil, errStatef("%s not valid during bidding", act.Kind)
}

func (s *BiddingState) applyBid(act Action) (BoardState, []PlayerEvent, error) {
	seat := seatIndex(s.Players, act.Player)
	if seat < 0 {
		return nil, nil, errContentf("player %s is not seated", act.Player)
	}
	if seat != s.Turn {
		return nil, nil, errTurnf("it is %s's turn to bid", s.Players[s.Turn])
	}

	bid := Bid{Player: act.Player, Value: act.Bid, Signal: act.Signal}
	if !bid.Pass() {
		if !ValidBidValue(bid.Value) {
			return nil, nil, errContentf("no such bid value %d", bid.Value)
		}
		if s.High != nil && bid.Value <= s.High.Value {
			return nil, nil, errContentf("bid %d does not beat standing %d", bid.Value, s.High.Value)
		}
	}
	if bid.Signal && bid.Value != BidSignalValue {
		return nil, nil, errContentf("signal call is only legal at %d", BidSignalValue)
	}

	next := s.clone()
	next.Bids = append(next.Bids, bid)
	events := []PlayerEvent{{Type: EventBidPlaced, Player: ptrID(act.Player), Bid: &bid}}

	if bid.Pass() {
		next.Passed[seat] = true
	} else {
		b := bid
		next.High = &b
	}

	unpassed := 0
	last := -1
	for i, p := range next.Passed {
		if !p {
			unpassed++
			last = i
		}
	}

	if unpassed == 0 {
		// Everyone passed: the deal is abandoned and the table returns to
		// the lobby with readiness cleared.
		events = append(events, PlayerEvent{Type: EventBiddingAborted})
		return next.abort(), events, nil
	}

	if unpassed == 1 && next.High != nil && next.High.Player == next.Players[last] {
		state, resolved := next.resolve(last)
		return state, append(events, resolved...), nil
	}

	// Move to the next seat still in the auction.
	t := next.Turn
	for {
		t = (t + 1) % len(next.Players)
		if !next.Passed[t] {
			break
		}
	}
	next.Turn = t
	return next, events, nil
}

// abort rebuilds the lobby after an all-pass auction. Bids and hands are
// discarded; the seats keep their order but lose readiness.
func (s *BiddingState) abort() *NewGameState {
	seats := make([]Seat, len(s.Players))
	for i, p := range s.Players {
		seats[i] = Seat{Player: p}
	}
	return &NewGameState{Seats: seats, PublicHands: s.PublicHands, RNG: s.RNG}
}

// resolve closes the auction with the surviving high bid. Five-seat tables
// proceed to the partner call; smaller tables go straight to the dog
// exchange or to play depending on the bid value.
func (s *BiddingState) resolve(bidder int) (BoardState, []PlayerEvent) {
	high := *s.High
	events := []PlayerEvent{{Type: EventBiddingWon, Player: ptrID(s.Players[bidder]), Bid: &high}}

	if len(s.Players) == MaxSeats {
		return &PartnerCallState{
			Players:     s.Players,
			Hands:       s.Hands,
			Dog:         s.Dog,
			PublicHands: s.PublicHands,
			RNG:         s.RNG,
			Bidder:      bidder,
			Bid:         high,
			ShownTrump:  s.ShownTrump,
		}, events
	}

	state, more := startContract(contract{
		Players:     s.Players,
		Hands:       s.Hands,
		Dog:         s.Dog,
		PublicHands: s.PublicHands,
		RNG:         s.RNG,
		Bidder:      bidder,
		Partner:     bidder,
		Bid:         high,
		ShownTrump:  s.ShownTrump,
	})
	return state, append(events, more...)
}

func (s *BiddingState) clone() *BiddingState {
	next := *s
	next.Hands = cloneHands(s.Hands)
	next.Bids = append([]Bid(nil), s.Bids...)
	next.Passed = cloneBools(s.Passed)
	next.ShownTrump = cloneBools(s.ShownTrump)
	if s.High != nil {
		h := *s.High
		next.High = &h
	}
	return &next
}

// showTrump validates and performs a trump show for player, marking the seat
// in shown (mutated in place) and returning the public reveal event.
func showTrump(players []PlayerID, hands [][]Card, shown []bool, player PlayerID) (PlayerEvent, error) {
	seat := seatIndex(players, player)
	if seat < 0 {
		return PlayerEvent{}, errContentf("player %s is not seated", player)
	}
	if shown[seat] {
		return PlayerEvent{}, errContentf("player %s already showed their trumps", player)
	}
	trumps := trumpsOf(hands[seat])
	if len(trumps) == 0 {
		return PlayerEvent{}, errContentf("player %s holds no trump to show", player)
	}
	shown[seat] = true
	return PlayerEvent{Type: EventTrumpShown, Player: ptrID(player), Cards: trumps}, nil
}

// contract bundles the fields shared by every post-auction phase.
type contract struct {
	Players      []PlayerID
	Hands        [][]Card
	Dog          []Card
	PublicHands  bool
	RNG          uint64
	Bidder       int
	Partner      int
	Bid          Bid
	Called       *Card
	ShownTrump   []bool
	SlamDeclared bool
}

// startContract routes a resolved contract to the dog reveal (bids up to
// BidDogThreshold) or directly into play, emitting the matching transition
// event.
func startContract(c contract) (BoardState, []PlayerEvent) {
	if c.Bid.Value <= BidDogThreshold {
		return &DogRevealState{
			Players:      c.Players,
			Hands:        c.Hands,
			Dog:          c.Dog,
			PublicHands:  c.PublicHands,
			RNG:          c.RNG,
			Bidder:       c.Bidder,
			Partner:      c.Partner,
			Bid:          c.Bid,
			Called:       c.Called,
			ShownTrump:   c.ShownTrump,
			SlamDeclared: c.SlamDeclared,
		}, []PlayerEvent{{Type: EventDogRevealed, Cards: append([]Card(nil), c.Dog...)}}
	}
	return startPlaying(c)
}

// startPlaying enters the trick-play phase with the first seat leading.
func startPlaying(c contract) (BoardState, []PlayerEvent) {
	n := len(c.Players)
	return &PlayingState{
		Players:      c.Players,
		Hands:        c.Hands,
		Dog:          c.Dog,
		PublicHands:  c.PublicHands,
		RNG:          c.RNG,
		Bidder:       c.Bidder,
		Partner:      c.Partner,
		Bid:          c.Bid,
		Called:       c.Called,
		ShownTrump:   c.ShownTrump,
		SlamDeclared: c.SlamDeclared,
		Turn:         0,
		Trick:        Trick{Index: 0},
		HasPlayed:    make([]bool, n),
	}, []PlayerEvent{{Type: EventGameStarted, Player: ptrID(c.Players[0])}}
}
