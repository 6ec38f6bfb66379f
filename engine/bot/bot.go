// Package bot defines the decision contract for automated seats.
//
// A bot is handed exactly the projection a human client at the same seat
// would see, never the authoritative board state, so it cannot act on
// hidden information and exercises the same legality rules the UI would.
package bot

import (
	"github.com/gillessed/palantarot-sub001/engine"
)

// Bot chooses one action per turn for an automated seat, one method per
// capability. The view passed in is the seat's own event-log projection.
type Bot interface {
	Bid(view *engine.PlayState, self engine.PlayerID) engine.Action
	CallPartner(view *engine.PlayState, self engine.PlayerID) engine.Action
	SetDog(view *engine.PlayState, self engine.PlayerID) engine.Action
	PlayCard(view *engine.PlayState, self engine.PlayerID) engine.Action
}

// Decide routes the view's phase to the matching Bot method. It returns
// false when the phase needs no bot decision.
func Decide(b Bot, view *engine.PlayState, self engine.PlayerID) (engine.Action, bool) {
	switch view.Phase {
	case engine.PhaseBidding:
		return b.Bid(view, self), true
	case engine.PhasePartnerCall:
		return b.CallPartner(view, self), true
	case engine.PhaseDogReveal:
		return b.SetDog(view, self), true
	case engine.PhasePlaying:
		return b.PlayCard(view, self), true
	}
	return engine.Action{}, false
}
