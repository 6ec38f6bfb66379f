// Package engine implements the rules of a multiplayer French Tarot variant
// for 3 to 5 players plus observers.
//
// The package is pure: board state is advanced exclusively through
// Apply(state, action), which returns a new state plus the ordered list of
// events produced. Clients, bots and the authoritative server all rebuild
// their view of a game by folding those events through Project.
package engine

import "strconv"

// Suit identifies one of the four plain suits or the trump suit.
type Suit uint8

const (
	SuitClub Suit = iota
	SuitDiamond
	SuitHeart
	SuitSpade
	SuitTrump
)

// Rank is a card's rank within its suit.
//
// Plain suits run 1–10 then Jack, Knight, Queen, King in ascending strength.
// Trumps run 1–21. RankJoker (0) is reserved for the unique Joker so that it
// naturally sorts below every other card.
type Rank uint8

const (
	RankJoker    Rank = 0
	RankJack     Rank = 11
	RankKnight   Rank = 12
	RankQueen    Rank = 13
	RankKing     Rank = 14
	RankTrumpMax Rank = 21
)

// Card is a (suit, rank) pair. Cards are value types and compare with ==.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// The three bouts plus the two cards they are built from.
var (
	Joker     = Card{SuitTrump, RankJoker}
	Petit     = Card{SuitTrump, 1}
	TwentyOne = Card{SuitTrump, 21}
)

// IsJoker reports whether c is the Joker.
func (c Card) IsJoker() bool { return c.Suit == SuitTrump && c.Rank == RankJoker }

// IsTrump reports whether c belongs to the trump suit. The Joker counts.
func (c Card) IsTrump() bool { return c.Suit == SuitTrump }

// IsBout reports whether c is one of the three bouts
// (trump 1, trump 21, Joker).
func (c Card) IsBout() bool {
	return c == Petit || c == TwentyOne || c == Joker
}

// Points returns the card's point value. Bouts and Kings are worth 4.5,
// Queens 3.5, Knights 2.5, Jacks 1.5 and everything else 0.5. The full deck
// totals 91.
func (c Card) Points() float64 {
	if c.IsBout() {
		return 4.5
	}
	if c.Suit != SuitTrump {
		switch c.Rank {
		case RankJack:
			return 1.5
		case RankKnight:
			return 2.5
		case RankQueen:
			return 3.5
		case RankKing:
			return 4.5
		}
	}
	return 0.5
}

// String renders a card in short form, e.g. "KH" (King of Hearts),
// "T21" (trump 21), "EX" (Joker).
func (c Card) String() string {
	if c.IsJoker() {
		return "EX"
	}
	if c.Suit == SuitTrump {
		return "T" + strconv.Itoa(int(c.Rank))
	}
	var r string
	switch c.Rank {
	case RankJack:
		r = "J"
	case RankKnight:
		r = "N"
	case RankQueen:
		r = "Q"
	case RankKing:
		r = "K"
	default:
		r = strconv.Itoa(int(c.Rank))
	}
	return r + c.Suit.String()
}

// String returns a one-letter suit code.
func (s Suit) String() string {
	switch s {
	case SuitClub:
		return "C"
	case SuitDiamond:
		return "D"
	case SuitHeart:
		return "H"
	case SuitSpade:
		return "S"
	case SuitTrump:
		return "T"
	}
	return "?"
}

// DeckSize is the number of cards in a full deck.
const DeckSize = 78

// Deck returns the full 78-card deck in a fixed order: the four plain suits
// of 14 cards each, trumps 1–21, then the Joker.
func Deck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := SuitClub; s <= SuitSpade; s++ {
		for r := Rank(1); r <= RankKing; r++ {
			deck = append(deck, Card{s, r})
		}
	}
	for r := Rank(1); r <= RankTrumpMax; r++ {
		deck = append(deck, Card{SuitTrump, r})
	}
	deck = append(deck, Joker)
	return deck
}

// strength ranks a card for trick comparison given the lead suit. Any trump
// beats any plain card, lead-suit cards beat off-suit cards, and the Joker
// sorts below everything.
func strength(c Card, lead Suit) int {
	if c.IsJoker() {
		return -1
	}
	if c.Suit == SuitTrump {
		return 100 + int(c.Rank)
	}
	if c.Suit == lead {
		return int(c.Rank)
	}
	return 0
}

// Compare orders two cards for trick resolution given the lead suit. It
// returns a negative value if a loses to b, positive if a beats b, and zero
// when neither can beat the other (two off-suit cards).
func Compare(a, b Card, lead Suit) int {
	return strength(a, lead) - strength(b, lead)
}

// ContainsCard reports whether cards holds c.
func ContainsCard(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

// DiffCards returns a new slice holding every card of a that does not appear
// in b. Comparison is by equality; cards are unique within a deck.
func DiffCards(a, b []Card) []Card {
	out := make([]Card, 0, len(a))
	for _, c := range a {
		if !ContainsCard(b, c) {
			out = append(out, c)
		}
	}
	return out
}

// sumPoints totals the point values of cards.
func sumPoints(cards []Card) float64 {
	total := 0.0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}

// countBouts returns the number of bouts in cards.
func countBouts(cards []Card) int {
	n := 0
	for _, c := range cards {
		if c.IsBout() {
			n++
		}
	}
	return n
}
