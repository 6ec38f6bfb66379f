package bot

import (
	"math/rand"
	"sort"

	"github.com/gillessed/palantarot-sub001/engine"
)

// Basic is the baseline bot: it takes the lowest contract when the auction
// is still open, passes otherwise, discards its cheapest cards to the dog
// and plays a random legal card. It exists to keep tables moving and to
// exercise the engine in tests; real strategy lives elsewhere.
type Basic struct {
	rng *rand.Rand
}

// NewBasic returns a Basic bot seeded for reproducible card choices.
func NewBasic(seed int64) *Basic {
	return &Basic{rng: rand.New(rand.NewSource(seed))}
}

// Bid bids the lowest value if nobody has bid yet, otherwise passes.
func (b *Basic) Bid(view *engine.PlayState, self engine.PlayerID) engine.Action {
	value := engine.BidPass
	if view.HighBid == nil {
		value = engine.BidValues[0]
	}
	return engine.Action{Kind: engine.ActionBid, Player: self, Bid: value}
}

// CallPartner calls the first king the bot does not hold itself, falling
// back to any non-trump card outside its hand.
func (b *Basic) CallPartner(view *engine.PlayState, self engine.PlayerID) engine.Action {
	hand := view.Hands[self]
	var fallback *engine.Card
	for _, c := range engine.Deck() {
		if c.IsTrump() || engine.ContainsCard(hand, c) {
			continue
		}
		if c.Rank == engine.RankKing {
			return engine.Action{Kind: engine.ActionCallPartner, Player: self, Card: c}
		}
		if fallback == nil {
			cc := c
			fallback = &cc
		}
	}
	if fallback != nil {
		return engine.Action{Kind: engine.ActionCallPartner, Player: self, Card: *fallback}
	}
	// Holding every plain card is impossible; call a king anyway.
	return engine.Action{Kind: engine.ActionCallPartner, Player: self,
		Card: engine.Card{Suit: engine.SuitClub, Rank: engine.RankKing}}
}

// SetDog buries the cheapest plain cards, topping up with the lowest trumps
// only when the pool has too few plain cards.
func (b *Basic) SetDog(view *engine.PlayState, self engine.PlayerID) engine.Action {
	pool := view.DogPool(self)
	sort.Slice(pool, func(i, j int) bool {
		pi, pj := pool[i], pool[j]
		if pi.IsTrump() != pj.IsTrump() {
			return !pi.IsTrump()
		}
		if pi.Points() != pj.Points() {
			return pi.Points() < pj.Points()
		}
		return pi.Rank < pj.Rank
	})
	dog := append([]engine.Card(nil), pool[:view.DogLen]...)
	return engine.Action{Kind: engine.ActionSetDog, Player: self, Cards: dog, Private: true}
}

// PlayCard plays a uniformly random legal card.
func (b *Basic) PlayCard(view *engine.PlayState, self engine.PlayerID) engine.Action {
	legal := view.LegalPlaysFor(self)
	card := legal[b.rng.Intn(len(legal))]
	return engine.Action{Kind: engine.ActionPlayCard, Player: self, Card: card}
}
