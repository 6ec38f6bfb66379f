package engine

// apply handles the lobby actions: enter, leave, mark-ready, unmark-ready.
// The deal runs as soon as every seat of a 3–5 player table is ready.
func (s *NewGameState) apply(act Action) (BoardState, []PlayerEvent, error) {
	switch act.Kind {
	case ActionEnter:
		return s.applyEnter(act)
	case ActionLeave:
		return s.applyLeave(act)
	case ActionMarkReady:
		return s.applyReady(act)
	case ActionUnmarkReady:
		return s.applyUnready(act)
	}
	return nil, nil, errStatef("%s not valid while waiting for players", act.Kind)
}

func (s *NewGameState) seat(id PlayerID) int {
	for i, seat := range s.Seats {
		if seat.Player == id {
			return i
		}
	}
	return -1
}

func (s *NewGameState) applyEnter(act Action) (BoardState, []PlayerEvent, error) {
	if s.seat(act.Player) >= 0 {
		return nil, nil, errContentf("player %s already seated", act.Player)
	}
	if len(s.Seats) >= MaxSeats {
		return nil, nil, errContentf("table is full (%d seats)", MaxSeats)
	}
	next := s.clone()
	next.Seats = append(next.Seats, Seat{Player: act.Player})
	return next, []PlayerEvent{{Type: EventPlayerEntered, Player: ptrID(act.Player)}}, nil
}

func (s *NewGameState) applyLeave(act Action) (BoardState, []PlayerEvent, error) {
	i := s.seat(act.Player)
	if i < 0 {
		return nil, nil, errContentf("player %s is not seated", act.Player)
	}
	if s.Seats[i].Ready {
		return nil, nil, errContentf("cannot leave while marked ready")
	}
	next := s.clone()
	next.Seats = append(next.Seats[:i], next.Seats[i+1:]...)
	return next, []PlayerEvent{{Type: EventPlayerLeft, Player: ptrID(act.Player)}}, nil
}

func (s *NewGameState) applyUnready(act Action) (BoardState, []PlayerEvent, error) {
	i := s.seat(act.Player)
	if i < 0 {
		return nil, nil, errContentf("player %s is not seated", act.Player)
	}
	if !s.Seats[i].Ready {
		return nil, nil, errContentf("player %s is not ready", act.Player)
	}
	next := s.clone()
	next.Seats[i].Ready = false
	return next, []PlayerEvent{{Type: EventPlayerUnready, Player: ptrID(act.Player)}}, nil
}

func (s *NewGameState) applyReady(act Action) (BoardState, []PlayerEvent, error) {
	i := s.seat(act.Player)
	if i < 0 {
		return nil, nil, errContentf("player %s is not seated", act.Player)
	}
	if s.Seats[i].Ready {
		return nil, nil, errContentf("player %s is already ready", act.Player)
	}

	next := s.clone()
	next.Seats[i].Ready = true
	events := []PlayerEvent{{Type: EventPlayerReady, Player: ptrID(act.Player)}}

	if len(next.Seats) < MinSeats || !next.allReady() {
		return next, events, nil
	}

	// Last seat readied up: shuffle the seating order, deal, open bidding.
	bidding, dealEvents := next.startBidding()
	return bidding, append(events, dealEvents...), nil
}

func (s *NewGameState) allReady() bool {
	for _, seat := range s.Seats {
		if !seat.Ready {
			return false
		}
	}
	return true
}

// startBidding shuffles seats, deals hands and the dog, and produces the
// seating-order plus hand-dealt events. Hands are private to their seat
// unless the table plays with public hands, in which case the dealt dog is
// additionally revealed to observers.
func (s *NewGameState) startBidding() (*BiddingState, []PlayerEvent) {
	n := len(s.Seats)
	players := make([]PlayerID, n)
	for i, seat := range s.Seats {
		players[i] = seat.Player
	}
	rng := s.RNG
	for i := n - 1; i > 0; i-- {
		var j int
		rng, j = randN(rng, i+1)
		players[i], players[j] = players[j], players[i]
	}

	hands, dog, rng := deal(rng, n)

	events := []PlayerEvent{{Type: EventSeatingOrder, Players: append([]PlayerID(nil), players...)}}
	for i, p := range players {
		ev := PlayerEvent{
			Type:   EventHandDealt,
			Player: ptrID(p),
			Cards:  append([]Card(nil), hands[i]...),
		}
		if !s.PublicHands {
			ev.PrivateTo = ptrID(p)
		}
		events = append(events, ev)
	}
	if s.PublicHands {
		events = append(events, PlayerEvent{
			Type:    EventDogDealtObservers,
			Cards:   append([]Card(nil), dog...),
			Exclude: append([]PlayerID(nil), players...),
		})
	}

	return &BiddingState{
		Players:     players,
		Hands:       hands,
		Dog:         dog,
		PublicHands: s.PublicHands,
		RNG:         rng,
		Turn:        0,
		Passed:      make([]bool, n),
		ShownTrump:  make([]bool, n),
	}, events
}

func (s *NewGameState) clone() *NewGameState {
	return &NewGameState{
		Seats:       append([]Seat(nil), s.Seats...),
		PublicHands: s.PublicHands,
		RNG:         s.RNG,
	}
}
