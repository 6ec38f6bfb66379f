package engine

import "math"

// ScoreInput bundles everything the scoring engine needs from a finished
// deal.
type ScoreInput struct {
	Bidder       PlayerID
	Partner      PlayerID // equals Bidder on a self-call or 3–4 seat table
	Tricks       []CompletedTrick
	BidValue     int
	Dog          []Card
	Joker        *JokerExchange
	SlamDeclared bool
	ShownTrumps  int
}

// Score is the outcome breakdown of one deal. Delta is the single signed
// value handed to the payout table (positive: bidding team won); the other
// fields exist so clients can display how it came about.
type Score struct {
	Earned    float64 `json:"earned"`
	Bouts     []Card  `json:"bouts"`
	Threshold float64 `json:"threshold"`
	BidderWon bool    `json:"bidderWon"`
	Base      int     `json:"base"`

	SlamAchieved    bool `json:"slamAchieved"`
	SlamBonus       int  `json:"slamBonus"`
	OneLast         bool `json:"oneLast"`
	OneLastBonus    int  `json:"oneLastBonus"`
	ShownTrumpBonus int  `json:"shownTrumpBonus"`

	Delta int `json:"delta"`
}

// CompletedGameState is the final payload of a game, intended for display
// and for persistence by an external game-record store.
type CompletedGameState struct {
	Players []PlayerID          `json:"players"`
	Bidder  PlayerID            `json:"bidder"`
	Partner PlayerID            `json:"partner"`
	Bid     Bid                 `json:"bid"`
	Dog     []Card              `json:"dog"`
	Calls   map[PlayerID][]Call `json:"calls"`
	Score   Score               `json:"score"`
}

// thresholds maps the bidding team's bout count to the points required to
// win. Bouts make the contract cheaper.
var thresholds = [4]float64{56, 51, 41, 36}

// WinThreshold returns the points the bidding team needs given how many
// bouts it holds.
func WinThreshold(bouts int) float64 {
	if bouts > 3 {
		bouts = 3
	}
	return thresholds[bouts]
}

// roundUp10 rounds x up to the next multiple of 10.
func roundUp10(x float64) int {
	return int(math.Ceil(x/10)) * 10
}

// ComputeScore runs the full scoring pipeline: card buckets, the Joker
// exchange, the dog, the dynamic threshold, the signed base score and the
// slam / one-last / shown-trump modifiers.
func ComputeScore(in ScoreInput) Score {
	onTeam := func(p PlayerID) bool { return p == in.Bidder || p == in.Partner }

	var won, lost []Card
	for _, t := range in.Tricks {
		if onTeam(t.Winner) {
			won = append(won, t.Cards()...)
		} else {
			lost = append(lost, t.Cards()...)
		}
	}

	earned := sumPoints(won)

	// Joker exchange: when the Joker sits in a trick won by the side that
	// did not play it, its 4.5 points travel back to its player's side in
	// exchange for a plain 0.5 card, a net swing of 4. The swap only
	// happens if the receiving side won at least one card to trade with.
	if in.Joker != nil && onTeam(in.Joker.Holder) != onTeam(in.Joker.OwedTo) {
		if onTeam(in.Joker.OwedTo) {
			if len(won) > 0 {
				earned += 4
				won = append(won, Joker)
				lost = DiffCards(lost, []Card{Joker})
			}
		} else {
			if len(lost) > 0 {
				earned -= 4
				won = DiffCards(won, []Card{Joker})
				lost = append(lost, Joker)
			}
		}
	}

	// The dog counts for the bidding team except at the top contract, where
	// it stays hidden from everyone.
	boutCards := append([]Card(nil), won...)
	if in.BidValue != BidDogHidden {
		earned += sumPoints(in.Dog)
		boutCards = append(boutCards, in.Dog...)
	}

	var bouts []Card
	for _, c := range boutCards {
		if c.IsBout() {
			bouts = append(bouts, c)
		}
	}

	threshold := WinThreshold(len(bouts))
	bidderWon := earned >= threshold

	base := in.BidValue + roundUp10(math.Abs(earned-threshold))
	if !bidderWon {
		base = -base
	}

	score := Score{
		Earned:          earned,
		Bouts:           bouts,
		Threshold:       threshold,
		BidderWon:       bidderWon,
		Base:            base,
		ShownTrumpBonus: 10 * in.ShownTrumps,
	}

	// Slam: winning every trick, or losing every trick, is a slam. Only a
	// declared slam pays, and a declared slam that is missed pays the
	// other side, a bet rather than a flag.
	wonAll, wonNone := true, true
	for _, t := range in.Tricks {
		if onTeam(t.Winner) {
			wonNone = false
		} else {
			wonAll = false
		}
	}
	score.SlamAchieved = wonAll || wonNone
	if in.SlamDeclared {
		if wonAll {
			score.SlamBonus = 200
		} else {
			score.SlamBonus = -200
		}
	}

	// One last: trump 1 in the final trick pays its winning side 10.
	if n := len(in.Tricks); n > 0 {
		last := in.Tricks[n-1]
		if ContainsCard(last.Cards(), Petit) {
			score.OneLast = true
			if onTeam(last.Winner) {
				score.OneLastBonus = 10
			} else {
				score.OneLastBonus = -10
			}
		}
	}

	score.Delta = score.Base + score.SlamBonus + score.OneLastBonus + score.ShownTrumpBonus
	return score
}
