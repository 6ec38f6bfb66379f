package engine

import "testing"

func TestLegalPlaysFollowSuit(t *testing.T) {
	hand := []Card{{SuitHeart, 2}, {SuitHeart, RankKing}, {SuitSpade, 5}, {SuitTrump, 3}}
	trick := []Card{{SuitHeart, 7}}
	legal := LegalPlays(hand, trick, true, nil)
	if len(legal) != 2 {
		t.Fatalf("got %v, want the two hearts", legal)
	}
	for _, c := range legal {
		if c.Suit != SuitHeart {
			t.Errorf("%s is not a heart", c)
		}
	}
}

func TestLegalPlaysMustOvertrump(t *testing.T) {
	hand := []Card{{SuitSpade, 5}, {SuitTrump, 3}, {SuitTrump, 12}}
	trick := []Card{{SuitHeart, 7}, {SuitTrump, 8}}
	legal := LegalPlays(hand, trick, true, nil)
	if len(legal) != 1 || legal[0] != (Card{SuitTrump, 12}) {
		t.Fatalf("got %v, want only trump 12", legal)
	}
}

func TestLegalPlaysUndertrumpWhenForced(t *testing.T) {
	// Void in the lead suit and unable to overtrump: any trump must still
	// be played.
	hand := []Card{{SuitSpade, 5}, {SuitTrump, 3}, {SuitTrump, 6}}
	trick := []Card{{SuitHeart, 7}, {SuitTrump, 8}}
	legal := LegalPlays(hand, trick, true, nil)
	if len(legal) != 2 {
		t.Fatalf("got %v, want the two trumps", legal)
	}
	for _, c := range legal {
		if !c.IsTrump() {
			t.Errorf("%s is not a trump", c)
		}
	}
}

func TestLegalPlaysVoidEverywhere(t *testing.T) {
	hand := []Card{{SuitSpade, 5}, {SuitClub, RankQueen}}
	trick := []Card{{SuitHeart, 7}}
	legal := LegalPlays(hand, trick, true, nil)
	if len(legal) != len(hand) {
		t.Fatalf("got %v, want the whole hand", legal)
	}
}

func TestLegalPlaysJokerAlwaysPlayable(t *testing.T) {
	hand := []Card{{SuitHeart, 2}, Joker}
	trick := []Card{{SuitHeart, 7}}
	legal := LegalPlays(hand, trick, true, nil)
	if !ContainsCard(legal, Joker) {
		t.Errorf("joker missing from %v", legal)
	}
	if !ContainsCard(legal, Card{SuitHeart, 2}) {
		t.Errorf("heart 2 missing from %v", legal)
	}
}

func TestLegalPlaysJokerLeadKeepsSuitOpen(t *testing.T) {
	hand := []Card{{SuitHeart, 2}, {SuitSpade, 5}}
	trick := []Card{Joker}
	legal := LegalPlays(hand, trick, true, nil)
	if len(legal) != 2 {
		t.Fatalf("got %v, want the whole hand while the lead suit is open", legal)
	}
}

func TestLegalPlaysOpeningLeadAvoidsCalledSuit(t *testing.T) {
	called := Card{SuitHeart, RankKing}
	hand := []Card{{SuitHeart, 2}, {SuitHeart, RankKing}, {SuitSpade, 5}}
	legal := LegalPlays(hand, nil, false, &called)
	if ContainsCard(legal, Card{SuitHeart, 2}) {
		t.Errorf("plain called-suit card should not open the game: %v", legal)
	}
	if !ContainsCard(legal, called) {
		t.Errorf("the called card itself must stay playable: %v", legal)
	}
	if !ContainsCard(legal, Card{SuitSpade, 5}) {
		t.Errorf("off-suit card should be playable: %v", legal)
	}

	// Once any card has been played the restriction is gone.
	legal = LegalPlays(hand, nil, true, &called)
	if len(legal) != len(hand) {
		t.Errorf("later leads should be free: %v", legal)
	}
}

func TestLegalPlaysNeverEmpty(t *testing.T) {
	hands := [][]Card{
		{{SuitHeart, 2}},
		{Joker},
		{{SuitTrump, 5}},
		{{SuitClub, RankKing}, Joker, {SuitTrump, 1}},
	}
	tricks := [][]Card{
		nil,
		{{SuitHeart, 7}},
		{{SuitSpade, 3}, {SuitTrump, 21}},
		{Joker},
	}
	for _, hand := range hands {
		for _, trick := range tricks {
			if legal := LegalPlays(hand, trick, true, nil); len(legal) == 0 {
				t.Errorf("no legal play for hand %v against trick %v", hand, trick)
			}
		}
	}
}

func TestTrickWinner(t *testing.T) {
	players := testPlayers(3)
	plays := func(cards ...Card) []PlayedCard {
		out := make([]PlayedCard, len(cards))
		for i, c := range cards {
			out[i] = PlayedCard{Player: players[i], Card: c}
		}
		return out
	}

	cases := []struct {
		name     string
		plays    []PlayedCard
		wantCard Card
		wantSeat int
	}{
		{
			"highest lead rank wins",
			plays(Card{SuitHeart, 7}, Card{SuitHeart, RankKing}, Card{SuitHeart, 2}),
			Card{SuitHeart, RankKing}, 1,
		},
		{
			"any trump beats the lead",
			plays(Card{SuitHeart, RankKing}, Card{SuitTrump, 2}, Card{SuitHeart, RankQueen}),
			Card{SuitTrump, 2}, 1,
		},
		{
			"highest trump wins",
			plays(Card{SuitHeart, 5}, Card{SuitTrump, 2}, Card{SuitTrump, 17}),
			Card{SuitTrump, 17}, 2,
		},
		{
			"off-suit cards never win",
			plays(Card{SuitHeart, 2}, Card{SuitSpade, RankKing}, Card{SuitClub, RankKing}),
			Card{SuitHeart, 2}, 0,
		},
		{
			"joker never wins",
			plays(Joker, Card{SuitHeart, 3}, Card{SuitHeart, 2}),
			Card{SuitHeart, 3}, 1,
		},
	}
	for _, tc := range cases {
		card, winner := TrickWinner(tc.plays)
		if card != tc.wantCard || winner != players[tc.wantSeat] {
			t.Errorf("%s: winner %s with %s, want seat %d with %s",
				tc.name, winner, card, tc.wantSeat, tc.wantCard)
		}
	}
}

func TestTrickWinnerLoneJoker(t *testing.T) {
	players := testPlayers(1)
	card, winner := TrickWinner([]PlayedCard{{Player: players[0], Card: Joker}})
	if card != Joker || winner != players[0] {
		t.Errorf("lone joker should stay with its leader, got %s for %s", card, winner)
	}
}
