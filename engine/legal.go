package engine

// PlayedCard is one (player, card) entry of a trick.
type PlayedCard struct {
	Player PlayerID `json:"player"`
	Card   Card     `json:"card"`
}

// Trick is the ordered sequence of cards played to one trick. A trick is
// complete when it holds one card per seat.
type Trick struct {
	Index int          `json:"index"`
	Plays []PlayedCard `json:"plays"`
}

// Cards returns the cards of the trick in play order.
func (t Trick) Cards() []Card {
	cards := make([]Card, len(t.Plays))
	for i, p := range t.Plays {
		cards[i] = p.Card
	}
	return cards
}

// CompletedTrick is a full trick together with its resolution.
type CompletedTrick struct {
	Trick
	Winner      PlayerID `json:"winner"`
	WinningCard Card     `json:"winningCard"`
}

// leadSuit returns the suit of the first non-Joker card in the trick. ok is
// false while the trick holds no such card (empty, or a lone Joker lead).
func leadSuit(trick []Card) (Suit, bool) {
	for _, c := range trick {
		if !c.IsJoker() {
			return c.Suit, true
		}
	}
	return 0, false
}

// highestTrumpIn returns the rank of the highest non-Joker trump in the
// trick, or -1 if it holds none.
func highestTrumpIn(trick []Card) int {
	best := -1
	for _, c := range trick {
		if c.IsTrump() && !c.IsJoker() && int(c.Rank) > best {
			best = int(c.Rank)
		}
	}
	return best
}

// LegalPlays computes the set of cards in hand that may legally be played.
//
//   - hand: the acting player's current hand.
//   - trick: the cards already played to the active trick, in order.
//   - anyPlayed: whether any card has been played by anyone this game.
//   - called: the partner-suit card announced during bidding, or nil.
//
// The rules, in priority order: the opening lead of the game may not be of
// the called suit unless it is the called card itself; any other lead is
// free; a follower must follow the lead suit, else overtrump if able, else
// play any trump, else anything. The Joker is always playable.
func LegalPlays(hand []Card, trick []Card, anyPlayed bool, called *Card) []Card {
	if len(trick) == 0 {
		if !anyPlayed && called != nil {
			// The very first lead must not reveal the partner suit, except
			// by playing the called card itself.
			legal := make([]Card, 0, len(hand))
			for _, c := range hand {
				if c.Suit != called.Suit || c == *called {
					legal = append(legal, c)
				}
			}
			return legal
		}
		return append([]Card(nil), hand...)
	}

	lead, ok := leadSuit(trick)
	if !ok {
		// Only the Joker has been played; the lead suit is still open.
		return append([]Card(nil), hand...)
	}

	withJoker := func(cards []Card) []Card {
		if ContainsCard(hand, Joker) && !ContainsCard(cards, Joker) {
			cards = append(cards, Joker)
		}
		return cards
	}

	// Follow the lead suit if possible.
	var follow []Card
	for _, c := range hand {
		if c.Suit == lead && !c.IsJoker() {
			follow = append(follow, c)
		}
	}
	if len(follow) > 0 {
		return withJoker(follow)
	}

	// Void in the lead suit: overtrump if able.
	if lead != SuitTrump {
		best := highestTrumpIn(trick)
		var over []Card
		for _, c := range hand {
			if c.IsTrump() && !c.IsJoker() && int(c.Rank) > best {
				over = append(over, c)
			}
		}
		if len(over) > 0 {
			return withJoker(over)
		}
	}

	// No overtrump possible: any trump must still be played.
	var trumps []Card
	for _, c := range hand {
		if c.IsTrump() && !c.IsJoker() {
			trumps = append(trumps, c)
		}
	}
	if len(trumps) > 0 {
		return withJoker(trumps)
	}

	// Void everywhere: anything goes.
	return append([]Card(nil), hand...)
}

// TrickWinner resolves a completed trick, returning the winning card and the
// player who played it. The Joker never wins; among the rest, any trump
// beats any plain card, higher rank wins within a suit, and an off-suit
// plain card can never win.
func TrickWinner(plays []PlayedCard) (Card, PlayerID) {
	cards := make([]Card, len(plays))
	for i, p := range plays {
		cards[i] = p.Card
	}
	lead, ok := leadSuit(cards)
	if !ok {
		// Degenerate trick of Jokers only; the leader keeps it.
		return plays[0].Card, plays[0].Player
	}

	best := -1
	for i, c := range cards {
		if c.IsJoker() {
			continue
		}
		if best == -1 || Compare(c, cards[best], lead) > 0 {
			best = i
		}
	}
	return plays[best].Card, plays[best].Player
}
