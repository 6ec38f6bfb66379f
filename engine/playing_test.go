package engine

import (
	"errors"
	"testing"
)

// runFullGame drives a deal from the lobby to completion: the first seat
// takes the lowest dog-exchanging contract, everyone else passes, the
// bidder keeps the dealt dog, and every trick is played with the first
// accepted legal card.
func runFullGame(t *testing.T, n int, seed uint64) (*CompletedState, []PlayerEvent) {
	t.Helper()
	bidding, log := startGame(t, n, seed, false)
	state, log := bidOut(t, bidding, 40, log)

	if call, ok := state.(*PartnerCallState); ok {
		bidder := call.Players[call.Bidder]
		var called Card
		for _, c := range Deck() {
			if !c.IsTrump() && !ContainsCard(call.Hands[call.Bidder], c) {
				called = c
				break
			}
		}
		var events []PlayerEvent
		state, events = mustApply(t, call, Action{Kind: ActionCallPartner, Player: bidder, Card: called})
		log = append(log, events...)
	}

	reveal, ok := state.(*DogRevealState)
	if !ok {
		t.Fatalf("expected dog reveal, got %T", state)
	}
	var events []PlayerEvent
	state, events = mustApply(t, reveal, Action{
		Kind:    ActionSetDog,
		Player:  reveal.Players[reveal.Bidder],
		Cards:   append([]Card(nil), reveal.Dog...),
		Private: true,
	})
	log = append(log, events...)

	return playOut(t, state, log)
}

func TestFullGameCompletes(t *testing.T) {
	for _, n := range []int{3, 4, 5} {
		done, log := runFullGame(t, n, uint64(40+n))
		result := done.Result

		wantTricks := HandSize(n)
		if got := len(log); got == 0 {
			t.Fatalf("%d seats: empty log", n)
		}
		if log[len(log)-1].Type != EventGameCompleted {
			t.Errorf("%d seats: final event %s", n, log[len(log)-1].Type)
		}

		tricks := 0
		var played []Card
		for _, ev := range log {
			switch ev.Type {
			case EventTrickWon:
				tricks++
				inTrick := false
				for _, p := range ev.Trick.Plays {
					if p.Player == ev.Trick.Winner {
						inTrick = true
					}
				}
				if !inTrick {
					t.Errorf("%d seats: trick %d won by a seat that did not play to it", n, ev.Trick.Index)
				}
			case EventCardPlayed:
				played = append(played, *ev.Card)
			}
		}
		if tricks != wantTricks {
			t.Errorf("%d seats: %d tricks, want %d", n, tricks, wantTricks)
		}

		// Every card is accounted for exactly once: played or in the dog.
		all := append(append([]Card(nil), played...), result.Dog...)
		if len(all) != DeckSize {
			t.Errorf("%d seats: %d cards accounted for, want %d", n, len(all), DeckSize)
		}
		if miss := DiffCards(Deck(), all); len(miss) != 0 {
			t.Errorf("%d seats: cards never surfaced: %v", n, miss)
		}

		if len(result.Score.Bouts) > 3 {
			t.Errorf("%d seats: %d bouts counted", n, len(result.Score.Bouts))
		}
		if result.Score.Threshold != WinThreshold(len(result.Score.Bouts)) {
			t.Errorf("%d seats: threshold %v does not match %d bouts",
				n, result.Score.Threshold, len(result.Score.Bouts))
		}
	}
}

func TestPlayRejections(t *testing.T) {
	bidding, log := startGame(t, 3, 51, false)
	state, _ := bidOut(t, bidding, 80, log)
	playing := state.(*PlayingState)

	offTurn := playing.Players[1]
	if _, _, err := Apply(playing, Action{
		Kind: ActionPlayCard, Player: offTurn, Card: playing.Hands[1][0],
	}); !errors.Is(err, ErrTurnOrder) {
		t.Errorf("out-of-turn play: got %v, want ErrTurnOrder", err)
	}

	leader := playing.Players[0]
	notHeld := playing.Hands[1][0]
	if _, _, err := Apply(playing, Action{
		Kind: ActionPlayCard, Player: leader, Card: notHeld,
	}); !errors.Is(err, ErrContent) {
		t.Errorf("card not in hand: got %v, want ErrContent", err)
	}

	if _, _, err := Apply(playing, Action{Kind: ActionBid, Player: leader, Bid: 160}); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("bid during play: got %v, want ErrStateMismatch", err)
	}
}

func TestShowTrumpOnlyBeforeFirstCard(t *testing.T) {
	bidding, log := startGame(t, 3, 52, false)
	state, _ := bidOut(t, bidding, 80, log)
	playing := state.(*PlayingState)
	leader := playing.Players[0]

	legal := LegalPlays(playing.Hands[0], nil, false, nil)
	state, _ = mustApply(t, playing, Action{Kind: ActionPlayCard, Player: leader, Card: legal[0]})

	if _, _, err := Apply(state, Action{Kind: ActionShowTrump, Player: leader}); !errors.Is(err, ErrContent) {
		t.Errorf("show after playing: got %v, want ErrContent", err)
	}
	if _, _, err := Apply(state, Action{Kind: ActionDeclareSlam, Player: leader}); err == nil {
		t.Error("slam declaration accepted after the bidder played")
	}
}

// fixedPlaying builds a hand-crafted playing state for targeted rules.
func fixedPlaying(players []PlayerID, hands [][]Card) *PlayingState {
	n := len(players)
	return &PlayingState{
		Players:    players,
		Hands:      hands,
		Bid:        Bid{Player: players[0], Value: 40},
		ShownTrump: make([]bool, n),
		HasPlayed:  make([]bool, n),
	}
}

func TestJokerExchangeRecorded(t *testing.T) {
	players := testPlayers(3)
	s := fixedPlaying(players, [][]Card{
		{Joker, {SuitHeart, 2}},
		{{SuitHeart, 5}, {SuitHeart, 6}},
		{{SuitHeart, RankKing}, {SuitHeart, 7}},
	})

	var state BoardState = s
	state, _ = mustApply(t, state, Action{Kind: ActionPlayCard, Player: players[0], Card: Joker})
	state, _ = mustApply(t, state, Action{Kind: ActionPlayCard, Player: players[1], Card: Card{SuitHeart, 5}})
	state, events := mustApply(t, state, Action{Kind: ActionPlayCard, Player: players[2], Card: Card{SuitHeart, RankKing}})

	playing := state.(*PlayingState)
	if playing.Joker == nil {
		t.Fatal("joker exchange not recorded")
	}
	if playing.Joker.Holder != players[2] || playing.Joker.OwedTo != players[0] {
		t.Errorf("exchange %+v, want holder seat 2 owing seat 0", playing.Joker)
	}
	if playing.Turn != 2 {
		t.Errorf("trick winner should lead next, turn %d", playing.Turn)
	}
	last := events[len(events)-1]
	if last.Type != EventTrickWon || last.Trick.Winner != players[2] {
		t.Errorf("trick resolution event wrong: %+v", last)
	}
}

func TestJokerKeptInFinalTrick(t *testing.T) {
	players := testPlayers(3)
	s := fixedPlaying(players, [][]Card{
		{Joker},
		{{SuitHeart, 5}},
		{{SuitHeart, RankKing}},
	})

	var state BoardState = s
	state, _ = mustApply(t, state, Action{Kind: ActionPlayCard, Player: players[0], Card: Joker})
	state, _ = mustApply(t, state, Action{Kind: ActionPlayCard, Player: players[1], Card: Card{SuitHeart, 5}})
	state, _ = mustApply(t, state, Action{Kind: ActionPlayCard, Player: players[2], Card: Card{SuitHeart, RankKing}})

	done, ok := state.(*CompletedState)
	if !ok {
		t.Fatalf("expected completion, got %T", state)
	}
	// The joker fell in the last trick, so it stays where it fell and no
	// exchange applies; the winning side keeps its 4.5 points.
	if done.Result.Score.Earned != 0 {
		t.Errorf("bidder earned %v, want 0 after losing the only trick", done.Result.Score.Earned)
	}
}

func TestPartnerFirstLeadRestriction(t *testing.T) {
	players := testPlayers(3)
	called := Card{SuitHeart, RankKing}
	s := fixedPlaying(players, [][]Card{
		{{SuitSpade, 2}, {SuitSpade, 3}},
		{called, {SuitHeart, 2}},
		{{SuitClub, 4}, {SuitClub, 5}},
	})
	s.Partner = 1
	s.Called = &called
	s.Turn = 1
	s.AnyPlayed = true

	if _, _, err := Apply(s, Action{
		Kind: ActionPlayCard, Player: players[1], Card: Card{SuitHeart, 2},
	}); !errors.Is(err, ErrContent) {
		t.Errorf("partner led the called suit: got %v, want ErrContent", err)
	}
	if _, _, err := Apply(s, Action{
		Kind: ActionPlayCard, Player: players[1], Card: called,
	}); err != nil {
		t.Errorf("leading the called card itself rejected: %v", err)
	}

	// Once the called card left the partner's hand (buried by a
	// self-calling bidder), the restriction no longer binds.
	s2 := fixedPlaying(players, [][]Card{
		{{SuitSpade, 2}, {SuitSpade, 3}},
		{{SuitHeart, 2}, {SuitHeart, 3}},
		{{SuitClub, 4}, {SuitClub, 5}},
	})
	s2.Partner = 1
	s2.Called = &called
	s2.Turn = 1
	s2.AnyPlayed = true
	if _, _, err := Apply(s2, Action{
		Kind: ActionPlayCard, Player: players[1], Card: Card{SuitHeart, 2},
	}); err != nil {
		t.Errorf("restriction applied without the called card in hand: %v", err)
	}
}

func TestCompletedStateRejectsEverything(t *testing.T) {
	done, _ := runFullGame(t, 3, 53)
	for _, kind := range []ActionKind{
		ActionEnter, ActionBid, ActionPlayCard, ActionSetDog, ActionMarkReady,
	} {
		if _, _, err := Apply(done, Action{Kind: kind, Player: done.Players[0]}); !errors.Is(err, ErrStateMismatch) {
			t.Errorf("%s on a completed game: got %v, want ErrStateMismatch", kind, err)
		}
	}
}
