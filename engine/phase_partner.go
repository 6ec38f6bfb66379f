package engine

// apply handles the partner-call phase: the bidder names a non-trump card
// whose holder becomes their partner. Trump shows and the bidder's slam
// declaration remain available.
func (s *PartnerCallState) apply(act Action) (BoardState, []PlayerEvent, error) {
	switch act.Kind {
	case ActionCallPartner:
		return s.applyCall(act)
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
	return nil, nil, errStatef("%s not valid during partner call", act.Kind)
}

func (s *PartnerCallState) applyCall(act Action) (BoardState, []PlayerEvent, error) {
	if act.Player != s.Players[s.Bidder] {
		return nil, nil, errOwnerf("only the bidder may call a partner")
	}
	if act.Card.IsTrump() {
		return nil, nil, errContentf("called card must not be a trump")
	}

	// The holder of the called card is the partner. If no seat holds it
	// (it sits in the dog), the bidder has called themselves.
	called := act.Card
	partner := s.Bidder
	for i, hand := range s.Hands {
		if ContainsCard(hand, called) {
			partner = i
			break
		}
	}

	events := []PlayerEvent{{Type: EventPartnerCalled, Player: ptrID(act.Player), Card: ptrCard(called)}}
	state, more := startContract(contract{
		Players:      s.Players,
		Hands:        cloneHands(s.Hands),
		Dog:          s.Dog,
		PublicHands:  s.PublicHands,
		RNG:          s.RNG,
		Bidder:       s.Bidder,
		Partner:      partner,
		Bid:          s.Bid,
		Called:       ptrCard(called),
		ShownTrump:   cloneBools(s.ShownTrump),
		SlamDeclared: s.SlamDeclared,
	})
	return state, append(events, more...), nil
}

func (s *PartnerCallState) clone() *PartnerCallState {
	next := *s
	next.Hands = cloneHands(s.Hands)
	next.ShownTrump = cloneBools(s.ShownTrump)
	return &next
}

// declareSlam validates the bidder's slam declaration and flips the declared
// flag (mutated in place), returning the public event.
func declareSlam(players []PlayerID, bidder int, declared *bool, player PlayerID) (PlayerEvent, error) {
	if player != players[bidder] {
		return PlayerEvent{}, errOwnerf("only the bidder may declare a slam")
	}
	if *declared {
		return PlayerEvent{}, errContentf("slam already declared")
	}
	*declared = true
	return PlayerEvent{Type: EventSlamDeclared, Player: ptrID(player)}, nil
}
