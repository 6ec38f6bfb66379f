package engine

// apply handles trick play. Trump shows and the bidder's slam declaration
// stay legal only until the acting seat has played its first card.
func (s *PlayingState) apply(act Action) (BoardState, []PlayerEvent, error) {
	switch act.Kind {
	case ActionPlayCard:
		return s.applyPlay(act)
	case ActionShowTrump:
		seat := seatIndex(s.Players, act.Player)
		if seat >= 0 && s.HasPlayed[seat] {
			return nil, nil, errContentf("trumps can only be shown before the first card")
		}
		next := s.clone()
		ev, err := showTrump(next.Players, next.Hands, next.ShownTrump, act.Player)
		if err != nil {
			return nil, nil, err
		}
		return next, []PlayerEvent{ev}, nil
	case ActionDeclareSlam:
		if seat := seatIndex(s.Players, act.Player); seat >= 0 && s.HasPlayed[seat] {
			return nil, nil, errContentf("slam must be declared before the first card")
		}
		next := s.clone()
		ev, err := declareSlam(next.Players, next.Bidder, &next.SlamDeclared, act.Player)
		if err != nil {
			return nil, nil, err
		}
		return next, []PlayerEvent{ev}, nil
	}
	return nil, nil, errStatef("%s not valid during play", act.Kind)
}

func (s *PlayingState) applyPlay(act Action) (BoardState, []PlayerEvent, error) {
	seat := seatIndex(s.Players, act.Player)
	if seat < 0 {
		return nil, nil, errContentf("player %s is not seated", act.Player)
	}
	if seat != s.Turn {
		return nil, nil, errTurnf("it is %s's turn to play", s.Players[s.Turn])
	}

	hand := s.Hands[seat]
	if !ContainsCard(hand, act.Card) {
		return nil, nil, errContentf("card %s is not in hand", act.Card)
	}

	trickCards := s.Trick.Cards()
	if !ContainsCard(LegalPlays(hand, trickCards, s.AnyPlayed, s.Called), act.Card) {
		return nil, nil, errContentf("card %s is not a legal play", act.Card)
	}

	// The called partner must not give themselves away on their first lead:
	// leading the called suit is forbidden unless it is the called card.
	// The restriction binds only while the called card is actually held, so
	// a self-calling bidder whose card sits in the dog leads freely.
	if s.Called != nil && seat == s.Partner && !s.HasPlayed[seat] && len(trickCards) == 0 &&
		ContainsCard(hand, *s.Called) {
		if act.Card.Suit == s.Called.Suit && act.Card != *s.Called {
			return nil, nil, errContentf("partner may not open with the called suit")
		}
	}

	next := s.clone()
	next.Hands[seat] = DiffCards(hand, []Card{act.Card})
	next.Trick.Plays = append(next.Trick.Plays, PlayedCard{Player: act.Player, Card: act.Card})
	next.HasPlayed[seat] = true
	next.AnyPlayed = true

	events := []PlayerEvent{{Type: EventCardPlayed, Player: ptrID(act.Player), Card: ptrCard(act.Card)}}

	if len(next.Trick.Plays) < len(next.Players) {
		next.Turn = (next.Turn + 1) % len(next.Players)
		return next, events, nil
	}

	// Trick complete.
	winCard, winner := TrickWinner(next.Trick.Plays)
	completed := CompletedTrick{Trick: next.Trick, Winner: winner, WinningCard: winCard}
	next.Past = append(next.Past, completed)
	next.Trick = Trick{Index: completed.Index + 1}

	final := true
	for _, h := range next.Hands {
		if len(h) > 0 {
			final = false
			break
		}
	}

	// A Joker played to a non-final trick is owed back to its player's side
	// at scoring time.
	if !final {
		for _, p := range completed.Plays {
			if p.Card.IsJoker() {
				next.Joker = &JokerExchange{Holder: winner, OwedTo: p.Player}
			}
		}
	}

	ct := completed
	events = append(events, PlayerEvent{Type: EventTrickWon, Trick: &ct})

	if !final {
		next.Turn = seatIndex(next.Players, winner)
		return next, events, nil
	}

	result := next.completeGame()
	events = append(events, PlayerEvent{Type: EventGameCompleted, Completed: &result})
	return &CompletedState{
		Players: next.Players,
		Result:  result,
	}, events, nil
}

// completeGame runs the scoring engine over the finished deal and assembles
// the final game record.
func (s *PlayingState) completeGame() CompletedGameState {
	shown := 0
	calls := make(map[PlayerID][]Call)
	for i, p := range s.Players {
		if s.ShownTrump[i] {
			shown++
			calls[p] = append(calls[p], CallShownTrump)
		}
	}
	bidderID := s.Players[s.Bidder]
	if s.Bid.Signal {
		calls[bidderID] = append(calls[bidderID], CallSignal)
	}
	if s.SlamDeclared {
		calls[bidderID] = append(calls[bidderID], CallSlam)
	}

	score := ComputeScore(ScoreInput{
		Bidder:       bidderID,
		Partner:      s.Players[s.Partner],
		Tricks:       s.Past,
		BidValue:     s.Bid.Value,
		Dog:          s.Dog,
		Joker:        s.Joker,
		SlamDeclared: s.SlamDeclared,
		ShownTrumps:  shown,
	})

	return CompletedGameState{
		Players: append([]PlayerID(nil), s.Players...),
		Bidder:  bidderID,
		Partner: s.Players[s.Partner],
		Bid:     s.Bid,
		Dog:     append([]Card(nil), s.Dog...),
		Calls:   calls,
		Score:   score,
	}
}

func (s *PlayingState) clone() *PlayingState {
	next := *s
	next.Hands = cloneHands(s.Hands)
	next.ShownTrump = cloneBools(s.ShownTrump)
	next.HasPlayed = cloneBools(s.HasPlayed)
	next.Trick = Trick{Index: s.Trick.Index, Plays: append([]PlayedCard(nil), s.Trick.Plays...)}
	next.Past = append([]CompletedTrick(nil), s.Past...)
	if s.Joker != nil {
		j := *s.Joker
		next.Joker = &j
	}
	return &next
}
