package engine

// Phase enumerates the six game phases.
type Phase uint8

const (
	PhaseNewGame Phase = iota
	PhaseBidding
	PhasePartnerCall
	PhaseDogReveal
	PhasePlaying
	PhaseCompleted
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNewGame:
		return "new_game"
	case PhaseBidding:
		return "bidding"
	case PhasePartnerCall:
		return "partner_call"
	case PhaseDogReveal:
		return "dog_reveal"
	case PhasePlaying:
		return "playing"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// Seat and table limits.
const (
	MinSeats = 3
	MaxSeats = 5
)

// DogSize returns the number of dog cards for a table of n seats.
func DogSize(n int) int {
	if n == MaxSeats {
		return 3
	}
	return 6
}

// HandSize returns the per-seat hand size for a table of n seats. The deal
// always partitions the deck: n*HandSize(n) + DogSize(n) == DeckSize.
func HandSize(n int) int {
	return (DeckSize - DogSize(n)) / n
}

// BoardState is the tagged union over the six phases. Exactly one
// authoritative BoardState exists per game, server side; every other copy is
// a projection rebuilt from events.
//
// States are immutable: apply never mutates its receiver, it returns a fresh
// state plus the events produced.
type BoardState interface {
	Phase() Phase
	apply(Action) (BoardState, []PlayerEvent, error)
}

// Apply advances a game by one action. On success it returns the next state
// and the ordered event batch to fan out; on failure the returned error
// wraps one of the Err* sentinels and the state is unchanged; an illegal
// action never partially applies.
func Apply(state BoardState, act Action) (BoardState, []PlayerEvent, error) {
	return state.apply(act)
}

// ActingPlayer returns the seat expected to act next, when there is one.
// During NewGame and after completion there is no single acting seat.
func ActingPlayer(state BoardState) (PlayerID, bool) {
	switch s := state.(type) {
	case *BiddingState:
		return s.Players[s.Turn], true
	case *PartnerCallState:
		return s.Players[s.Bidder], true
	case *DogRevealState:
		return s.Players[s.Bidder], true
	case *PlayingState:
		return s.Players[s.Turn], true
	}
	return PlayerID{}, false
}

// Seat is one chair at a NewGame table.
type Seat struct {
	Player PlayerID `json:"player"`
	Ready  bool     `json:"ready"`
}

// NewGameState is the lobby phase: players take seats and mark ready. When
// the last of 3–5 seats readies up, the deal runs and the game moves to
// Bidding.
type NewGameState struct {
	Seats []Seat
	// PublicHands opens every hand (and the dealt dog) to observers,
	// a table option for commented or teaching games.
	PublicHands bool
	// RNG seeds the deal shuffle; it is threaded through every state so
	// reducers stay pure and replays stay deterministic.
	RNG uint64
}

// NewGame returns the initial board state for a fresh table.
func NewGame(seed uint64, publicHands bool) *NewGameState {
	if seed == 0 {
		seed = 1 // xorshift64 must not start at 0
	}
	return &NewGameState{PublicHands: publicHands, RNG: seed}
}

// Phase implements BoardState.
func (s *NewGameState) Phase() Phase { return PhaseNewGame }

// JokerExchange records that the Joker was played to a non-final trick:
// Holder's side physically holds it in a won trick, while it is owed back to
// OwedTo's side at scoring time.
type JokerExchange struct {
	Holder PlayerID `json:"holder"`
	OwedTo PlayerID `json:"owedTo"`
}

// BiddingState runs the bid ladder.
type BiddingState struct {
	Players     []PlayerID // seating order, fixed for the rest of the deal
	Hands       [][]Card   // same index as Players
	Dog         []Card
	PublicHands bool
	RNG         uint64

	Turn       int   // index into Players of the bidder in turn
	Bids       []Bid // full ladder history, passes included
	Passed     []bool
	High       *Bid
	ShownTrump []bool
}

// Phase implements BoardState.
func (s *BiddingState) Phase() Phase { return PhaseBidding }

// PartnerCallState waits for the winning bidder to call a partner card
// (5-seat tables only).
type PartnerCallState struct {
	Players     []PlayerID
	Hands       [][]Card
	Dog         []Card
	PublicHands bool
	RNG         uint64

	Bidder       int
	Bid          Bid
	ShownTrump   []bool
	SlamDeclared bool
}

// Phase implements BoardState.
func (s *PartnerCallState) Phase() Phase { return PhasePartnerCall }

// DogRevealState waits for the bidder to exchange with the face-up dog.
type DogRevealState struct {
	Players     []PlayerID
	Hands       [][]Card
	Dog         []Card
	PublicHands bool
	RNG         uint64

	Bidder       int
	Partner      int // seat index; equals Bidder on a self-call or 3–4 seats
	Bid          Bid
	Called       *Card
	ShownTrump   []bool
	SlamDeclared bool
}

// Phase implements BoardState.
func (s *DogRevealState) Phase() Phase { return PhaseDogReveal }

// PlayingState runs the tricks.
type PlayingState struct {
	Players     []PlayerID
	Hands       [][]Card
	Dog         []Card // post-exchange (or untouched if the bid skipped it)
	PublicHands bool
	RNG         uint64

	Bidder       int
	Partner      int
	Bid          Bid
	Called       *Card
	ShownTrump   []bool
	SlamDeclared bool

	Turn      int
	Trick     Trick
	Past      []CompletedTrick
	AnyPlayed bool
	HasPlayed []bool // per seat: has played their first card
	Joker     *JokerExchange
}

// Phase implements BoardState.
func (s *PlayingState) Phase() Phase { return PhasePlaying }

// CompletedState is terminal; every action fails with ErrStateMismatch.
type CompletedState struct {
	Players []PlayerID
	Result  CompletedGameState
}

// Phase implements BoardState.
func (s *CompletedState) Phase() Phase { return PhaseCompleted }

func (s *CompletedState) apply(act Action) (BoardState, []PlayerEvent, error) {
	return nil, nil, errStatef("game is completed; %s rejected", act.Kind)
}

// seatIndex returns the seat index of id in players, or -1.
func seatIndex(players []PlayerID, id PlayerID) int {
	for i, p := range players {
		if p == id {
			return i
		}
	}
	return -1
}

// xorshift64 is the deal RNG, small enough to live inside the state.
func xorshift64(x uint64) uint64 {
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	return x
}

// randN draws a value in [0, n) and returns the advanced rng state.
func randN(rng uint64, n int) (uint64, int) {
	rng = xorshift64(rng)
	return rng, int(rng % uint64(n))
}

// petitSec reports whether a hand holds trump 1 as its only trump-suit card
// (Joker included). Such a deal is invalid and must be redealt. Voids in the
// hand grant no exemption; any lone trump 1 forces the redeal.
func petitSec(hand []Card) bool {
	trumps := 0
	for _, c := range hand {
		if c.IsTrump() {
			trumps++
		}
	}
	return trumps == 1 && ContainsCard(hand, Petit)
}

// deal shuffles the deck and splits it into per-seat hands plus the dog,
// redealing until no hand is petit sec. Returns the hands, the dog and the
// advanced rng.
func deal(rng uint64, seats int) ([][]Card, []Card, uint64) {
	for {
		deck := Deck()
		for i := len(deck) - 1; i > 0; i-- {
			var j int
			rng, j = randN(rng, i+1)
			deck[i], deck[j] = deck[j], deck[i]
		}

		dogN := DogSize(seats)
		handN := HandSize(seats)
		dog := append([]Card(nil), deck[:dogN]...)
		hands := make([][]Card, seats)
		valid := true
		for p := 0; p < seats; p++ {
			start := dogN + p*handN
			hands[p] = append([]Card(nil), deck[start:start+handN]...)
			if petitSec(hands[p]) {
				valid = false
			}
		}
		if valid {
			return hands, dog, rng
		}
	}
}

// trumpsOf returns every trump-suit card in hand, Joker included.
func trumpsOf(hand []Card) []Card {
	var out []Card
	for _, c := range hand {
		if c.IsTrump() {
			out = append(out, c)
		}
	}
	return out
}

// cloneHands deep-copies a hands slice.
func cloneHands(hands [][]Card) [][]Card {
	out := make([][]Card, len(hands))
	for i, h := range hands {
		out[i] = append([]Card(nil), h...)
	}
	return out
}

func cloneBools(b []bool) []bool {
	return append([]bool(nil), b...)
}
