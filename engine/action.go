package engine

import (
	"time"

	"github.com/google/uuid"
)

// PlayerID identifies a player or observer. IDs are opaque and stable; two
// IDs are the same participant iff they are equal.
type PlayerID = uuid.UUID

// ActionKind tags the kind of an Action.
type ActionKind string

const (
	ActionEnter       ActionKind = "enter"
	ActionLeave       ActionKind = "leave"
	ActionMarkReady   ActionKind = "mark_ready"
	ActionUnmarkReady ActionKind = "unmark_ready"
	ActionBid         ActionKind = "bid"
	ActionShowTrump   ActionKind = "show_trump"
	ActionCallPartner ActionKind = "call_partner"
	ActionDeclareSlam ActionKind = "declare_slam"
	ActionSetDog      ActionKind = "set_dog"
	ActionPlayCard    ActionKind = "play_card"
)

// Action is the single input type of the engine: one tagged value per call,
// delivered by the transport layer. Only the fields meaningful for the Kind
// are consulted.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Player PlayerID   `json:"player"`
	At     time.Time  `json:"at"`

	// Bid and Signal accompany ActionBid. Bid 0 is a pass; Signal requests
	// the same-value signal variant, legal only at BidSignalValue.
	Bid    int  `json:"bid,omitempty"`
	Signal bool `json:"signal,omitempty"`

	// Card accompanies ActionCallPartner and ActionPlayCard.
	Card Card `json:"card,omitempty"`

	// Cards accompanies ActionSetDog: the replacement dog.
	Cards []Card `json:"cards,omitempty"`

	// Private must be set on ActionSetDog; a dog submitted without the
	// private flag is rejected rather than silently hidden.
	Private bool `json:"private,omitempty"`
}

// The bid ladder. BidPass abstains; each other value must strictly exceed
// the standing high bid.
const (
	BidPass = 0
	BidMax  = 160

	// BidSignalValue is the only value at which the signal variant of a bid
	// may be announced.
	BidSignalValue = 20

	// BidDogThreshold splits bids into dog-exchanging (≤) and straight-to-
	// play (>) contracts.
	BidDogThreshold = 40

	// BidDogHidden is the contract at which the dog stays hidden from the
	// opposition and is not counted for the bidding team.
	BidDogHidden = 160
)

// BidValues lists the legal non-pass bid values, ascending.
var BidValues = []int{10, 20, 40, 80, 160}

// ValidBidValue reports whether v names a rung of the bid ladder.
func ValidBidValue(v int) bool {
	for _, b := range BidValues {
		if b == v {
			return true
		}
	}
	return false
}

// Bid records one resolved bid (or pass) in the bidding ladder.
type Bid struct {
	Player PlayerID `json:"player"`
	Value  int      `json:"value"`
	Signal bool     `json:"signal,omitempty"`
}

// Pass reports whether the bid is a pass.
func (b Bid) Pass() bool { return b.Value == BidPass }

// Call names a declaration a seat made during the game, echoed in the final
// game record.
type Call string

const (
	CallSignal     Call = "signal"
	CallSlam       Call = "slam"
	CallShownTrump Call = "shown_trump"
)
