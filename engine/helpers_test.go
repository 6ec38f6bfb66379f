package engine

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

// testPlayers returns n fixed player IDs so failures print stable values.
func testPlayers(n int) []PlayerID {
	ids := make([]PlayerID, n)
	for i := range ids {
		ids[i] = uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-0000000000%02d", i+1))
	}
	return ids
}

// mustApply applies an action and fails the test on error.
func mustApply(t *testing.T, state BoardState, act Action) (BoardState, []PlayerEvent) {
	t.Helper()
	next, events, err := Apply(state, act)
	if err != nil {
		t.Fatalf("Apply(%s by %s): %v", act.Kind, act.Player, err)
	}
	return next, events
}

// startGame seats n players on a fresh table and readies them all, returning
// the resulting bidding state and the full event log.
func startGame(t *testing.T, n int, seed uint64, publicHands bool) (*BiddingState, []PlayerEvent) {
	t.Helper()
	players := testPlayers(n)
	var state BoardState = NewGame(seed, publicHands)
	var log []PlayerEvent
	for _, p := range players {
		var events []PlayerEvent
		state, events = mustApply(t, state, Action{Kind: ActionEnter, Player: p})
		log = append(log, events...)
	}
	for _, p := range players {
		var events []PlayerEvent
		state, events = mustApply(t, state, Action{Kind: ActionMarkReady, Player: p})
		log = append(log, events...)
	}
	bidding, ok := state.(*BiddingState)
	if !ok {
		t.Fatalf("expected bidding after %d players readied, got %T", n, state)
	}
	return bidding, log
}

// bidOut drives the auction: the first seat bids value, everyone else
// passes. Returns the post-auction state and the appended log.
func bidOut(t *testing.T, bidding *BiddingState, value int, log []PlayerEvent) (BoardState, []PlayerEvent) {
	t.Helper()
	var state BoardState = bidding
	var events []PlayerEvent
	state, events = mustApply(t, state, Action{
		Kind: ActionBid, Player: bidding.Players[0], Bid: value,
	})
	log = append(log, events...)
	for _, p := range bidding.Players[1:] {
		state, events = mustApply(t, state, Action{Kind: ActionBid, Player: p, Bid: BidPass})
		log = append(log, events...)
	}
	return state, log
}

// playOut drives trick play to completion: each acting seat plays the first
// card the reducer accepts. Returns the terminal state and appended log.
func playOut(t *testing.T, state BoardState, log []PlayerEvent) (*CompletedState, []PlayerEvent) {
	t.Helper()
	for i := 0; i < DeckSize*MaxSeats; i++ {
		playing, ok := state.(*PlayingState)
		if !ok {
			break
		}
		seat := playing.Turn
		legal := LegalPlays(playing.Hands[seat], playing.Trick.Cards(), playing.AnyPlayed, playing.Called)
		if len(legal) == 0 {
			t.Fatalf("no legal plays for seat %d with hand %v", seat, playing.Hands[seat])
		}
		played := false
		for _, c := range legal {
			next, events, err := Apply(state, Action{
				Kind: ActionPlayCard, Player: playing.Players[seat], Card: c,
			})
			if err == nil {
				state = next
				log = append(log, events...)
				played = true
				break
			}
		}
		if !played {
			t.Fatalf("every legal play rejected for seat %d", seat)
		}
	}
	done, ok := state.(*CompletedState)
	if !ok {
		t.Fatalf("game did not complete, stuck in %T", state)
	}
	return done, log
}
