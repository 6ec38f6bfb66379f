package engine

// apply handles the dog-exchange phase: the bidder composes a replacement
// dog from their hand plus the face-up dog. Trump shows and the slam
// declaration remain available.
func (s *DogRevealState) apply(act Action) (BoardState, []PlayerEvent, error) {
	switch act.Kind {
	case ActionSetDog:
		return s.applySetDog(act)
	case ActionShowTrump:
		next := s.clone()
		ev, err := showTrump(next.Players, next.Hands, next.ShownTrump, act.Player)
		if err != nil {
			return nil, nil, err
		}
		return next, []PlayerEvent{ev}, nil
	case ActionDeclareSlam:
		next := s.clone()
		ev, err := declareSlam(next.Players, next.Bidder, &next.SlamDeclared, act.Player)
		if err != nil {
			return nil, nil, err
		}
		return next, []PlayerEvent{ev}, nil
	}
	return nil, nil, errStatef("%s not valid during dog exchange", act.Kind)
}

func (s *DogRevealState) applySetDog(act Action) (BoardState, []PlayerEvent, error) {
	if act.Player != s.Players[s.Bidder] {
		return nil, nil, errOwnerf("only the bidder may set the dog")
	}
	if !act.Private {
		return nil, nil, errContentf("dog must be submitted privately")
	}
	if len(act.Cards) != len(s.Dog) {
		return nil, nil, errContentf("dog must hold %d cards, got %d", len(s.Dog), len(act.Cards))
	}

	// The new dog must be drawn from the bidder's hand plus the old dog,
	// without duplicates.
	pool := append(append([]Card(nil), s.Hands[s.Bidder]...), s.Dog...)
	seen := make(map[Card]bool, len(act.Cards))
	for _, c := range act.Cards {
		if seen[c] {
			return nil, nil, errContentf("duplicate card %s in dog", c)
		}
		seen[c] = true
		if !ContainsCard(pool, c) {
			return nil, nil, errContentf("card %s is not available for the dog", c)
		}
	}

	newDog := append([]Card(nil), act.Cards...)
	newHand := DiffCards(pool, newDog)

	hands := cloneHands(s.Hands)
	hands[s.Bidder] = newHand

	bidderID := s.Players[s.Bidder]
	events := []PlayerEvent{{
		Type:      EventDogSet,
		Player:    ptrID(bidderID),
		Cards:     append([]Card(nil), newDog...),
		PrivateTo: ptrID(bidderID),
	}}
	if s.PublicHands {
		events = append(events, PlayerEvent{
			Type:    EventDogSetObservers,
			Player:  ptrID(bidderID),
			Cards:   append([]Card(nil), newDog...),
			Exclude: append([]PlayerID(nil), s.Players...),
		})
	}

	state, more := startPlaying(contract{
		Players:      s.Players,
		Hands:        hands,
		Dog:          newDog,
		PublicHands:  s.PublicHands,
		RNG:          s.RNG,
		Bidder:       s.Bidder,
		Partner:      s.Partner,
		Bid:          s.Bid,
		Called:       s.Called,
		ShownTrump:   cloneBools(s.ShownTrump),
		SlamDeclared: s.SlamDeclared,
	})
	return state, append(events, more...), nil
}

func (s *DogRevealState) clone() *DogRevealState {
	next := *s
	next.Hands = cloneHands(s.Hands)
	next.ShownTrump = cloneBools(s.ShownTrump)
	return &next
}
