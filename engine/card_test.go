package engine

import "testing"

func TestDeckPartition(t *testing.T) {
	deck := Deck()
	if len(deck) != DeckSize {
		t.Fatalf("deck holds %d cards, want %d", len(deck), DeckSize)
	}
	seen := make(map[Card]bool, len(deck))
	for _, c := range deck {
		if seen[c] {
			t.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}
	if got := sumPoints(deck); got != 91 {
		t.Errorf("deck totals %v points, want 91", got)
	}
	if got := countBouts(deck); got != 3 {
		t.Errorf("deck holds %d bouts, want 3", got)
	}
}

func TestCardPoints(t *testing.T) {
	cases := []struct {
		card Card
		want float64
	}{
		{Joker, 4.5},
		{Petit, 4.5},
		{TwentyOne, 4.5},
		{Card{SuitHeart, RankKing}, 4.5},
		{Card{SuitHeart, RankQueen}, 3.5},
		{Card{SuitHeart, RankKnight}, 2.5},
		{Card{SuitHeart, RankJack}, 1.5},
		{Card{SuitHeart, 10}, 0.5},
		{Card{SuitTrump, 20}, 0.5},
		{Card{SuitClub, 1}, 0.5},
	}
	for _, tc := range cases {
		if got := tc.card.Points(); got != tc.want {
			t.Errorf("%s: got %v points, want %v", tc.card, got, tc.want)
		}
	}
}

func TestCompare(t *testing.T) {
	lead := SuitHeart
	cases := []struct {
		name string
		a, b Card
		sign int // -1, 0, +1
	}{
		{"higher lead rank wins", Card{SuitHeart, RankKing}, Card{SuitHeart, RankQueen}, 1},
		{"trump beats lead king", Card{SuitTrump, 2}, Card{SuitHeart, RankKing}, 1},
		{"higher trump wins", Card{SuitTrump, 15}, Card{SuitTrump, 3}, 1},
		{"off-suit loses to lead", Card{SuitSpade, RankKing}, Card{SuitHeart, 2}, -1},
		{"two off-suit cards tie", Card{SuitSpade, RankKing}, Card{SuitClub, 2}, 0},
		{"joker loses to everything", Joker, Card{SuitSpade, 2}, -1},
	}
	for _, tc := range cases {
		got := Compare(tc.a, tc.b, lead)
		switch {
		case tc.sign > 0 && got <= 0:
			t.Errorf("%s: Compare(%s, %s) = %d, want > 0", tc.name, tc.a, tc.b, got)
		case tc.sign < 0 && got >= 0:
			t.Errorf("%s: Compare(%s, %s) = %d, want < 0", tc.name, tc.a, tc.b, got)
		case tc.sign == 0 && got != 0:
			t.Errorf("%s: Compare(%s, %s) = %d, want 0", tc.name, tc.a, tc.b, got)
		}
	}
}

func TestHandAndDogSizes(t *testing.T) {
	cases := []struct {
		seats, hand, dog int
	}{
		{3, 24, 6},
		{4, 18, 6},
		{5, 15, 3},
	}
	for _, tc := range cases {
		if got := HandSize(tc.seats); got != tc.hand {
			t.Errorf("HandSize(%d) = %d, want %d", tc.seats, got, tc.hand)
		}
		if got := DogSize(tc.seats); got != tc.dog {
			t.Errorf("DogSize(%d) = %d, want %d", tc.seats, got, tc.dog)
		}
		if total := tc.seats*HandSize(tc.seats) + DogSize(tc.seats); total != DeckSize {
			t.Errorf("%d seats: deal covers %d cards, want %d", tc.seats, total, DeckSize)
		}
	}
}

func TestDiffCards(t *testing.T) {
	a := []Card{{SuitHeart, 1}, {SuitHeart, 2}, {SuitSpade, 3}}
	got := DiffCards(a, []Card{{SuitHeart, 2}})
	if len(got) != 2 || got[0] != (Card{SuitHeart, 1}) || got[1] != (Card{SuitSpade, 3}) {
		t.Errorf("DiffCards = %v", got)
	}
}
