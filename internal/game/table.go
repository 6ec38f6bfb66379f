// internal/game/table.go
package game

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gillessed/palantarot-sub001/engine"
	"github.com/gillessed/palantarot-sub001/engine/bot"
	"github.com/gillessed/palantarot-sub001/internal/cache"
	"github.com/gillessed/palantarot-sub001/internal/database"
	"github.com/gillessed/palantarot-sub001/internal/models"
)

// OnCompleteFunc is called once when a table's game finishes, with the final
// record the engine produced.
type OnCompleteFunc func(tableID uuid.UUID, result engine.CompletedGameState)

// outbox is one live connection's ordered delivery queue. The table only
// enqueues, under its lock; the pump goroutine owns the socket writes, so a
// slow recipient backs up its own queue and nobody else's. done closes when
// the pump exits.
type outbox struct {
	ch   chan engine.PlayerEvent
	done chan struct{}
}

// outboxSize comfortably exceeds the event count of a full five-seat game.
const outboxSize = 256

// Table hosts one game: the single authoritative BoardState, the append-only
// event log, and the registered recipients (players, observers, bots).
//
// All writes go through HandleAction, serialized by the table mutex; reducers
// are not safe to apply concurrently to the same state. All reads by
// recipients go through the filtered event log, never the board state
// itself.
type Table struct {
	ID uuid.UUID

	mu    sync.Mutex
	state engine.BoardState
	log   []engine.PlayerEvent

	players  map[uuid.UUID]*models.Player
	bots     map[uuid.UUID]bot.Bot
	outboxes map[uuid.UUID]*outbox

	// BotDelay spaces out consecutive bot moves so humans can follow along.
	// Zero disables the pause (tests).
	BotDelay time.Duration

	// SendFn writes one visible event to one connection, returning the write
	// error so the pump can sever a dead socket. Set by the transport layer
	// before the first Attach.
	SendFn func(p *models.Player, conn *websocket.Conn, ev engine.PlayerEvent) error

	// OnComplete fires after the game-completed event has been fanned out.
	OnComplete OnCompleteFunc

	logger *logrus.Entry
}

// NewTable creates a table around a fresh game seeded for its deal shuffle.
func NewTable(seed uint64, publicHands bool) *Table {
	id, _ := uuid.NewRandom()
	return &Table{
		ID:       id,
		state:    engine.NewGame(seed, publicHands),
		players:  make(map[uuid.UUID]*models.Player),
		bots:     make(map[uuid.UUID]bot.Bot),
		outboxes: make(map[uuid.UUID]*outbox),
		logger:   logrus.WithField("table", id),
	}
}

// AddPlayer registers a recipient (player or observer) for event fan-out.
// Seating still happens through an enter action; observers only receive.
func (t *Table) AddPlayer(p *models.Player) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.players[p.ID] = p
}

// AddBot registers a bot-driven recipient. The bot's seat still enters the
// game through the normal action path.
func (t *Table) AddBot(id uuid.UUID, b bot.Bot, username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.players[id] = &models.Player{
		ID:    id,
		User:  models.User{ID: id, Username: username},
		IsBot: true,
	}
	t.bots[id] = b
}

// Attach binds a live connection to a recipient, registering them first if
// needed, and starts their delivery pump: the filtered backlog goes out
// first, then every later event, in log order. The backlog snapshot and the
// queue registration happen under one lock hold, so no concurrent action can
// interleave its events with the replay. The same call serves first connects
// and reconnects.
func (t *Table) Attach(user models.User, conn *websocket.Conn, observer bool) {
	t.mu.Lock()
	p, ok := t.players[user.ID]
	if !ok {
		p = &models.Player{ID: user.ID, User: user, Observer: observer}
		t.players[user.ID] = p
	}
	if old, ok := t.outboxes[user.ID]; ok {
		// A stale pump from a previous connection drains and exits.
		close(old.ch)
	}
	p.Connected = true
	ob := &outbox{
		ch:   make(chan engine.PlayerEvent, outboxSize),
		done: make(chan struct{}),
	}
	t.outboxes[user.ID] = ob
	backlog := engine.FilterEvents(t.log, user.ID)
	t.mu.Unlock()

	go t.pump(p, conn, backlog, ob)
}

// pump writes one connection's event stream in order: the backlog snapshot,
// then everything fanned out after it. Runs outside the table lock, so a
// wedged socket stalls only its own queue.
func (t *Table) pump(p *models.Player, conn *websocket.Conn, backlog []engine.PlayerEvent, ob *outbox) {
	defer close(ob.done)
	for _, ev := range backlog {
		if !t.write(p, conn, ev) {
			t.dropIfCurrent(p.ID, ob)
			return
		}
	}
	for ev := range ob.ch {
		if !t.write(p, conn, ev) {
			t.dropIfCurrent(p.ID, ob)
			return
		}
	}
}

func (t *Table) write(p *models.Player, conn *websocket.Conn, ev engine.PlayerEvent) bool {
	if t.SendFn == nil {
		return true
	}
	if err := t.SendFn(p, conn, ev); err != nil {
		t.logger.WithField("player", p.ID).WithError(err).Debug("dropping write to dead connection")
		return false
	}
	return true
}

// HandleDisconnect marks a human recipient as gone; their filtered log
// remains available for a reconnect catch-up.
func (t *Table) HandleDisconnect(playerID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.players[playerID]; ok {
		t.dropLocked(playerID)
		t.logger.WithField("player", playerID).Info("player disconnected")
	}
}

// dropLocked severs a recipient's live delivery, leaving the log for a later
// reconnect. Assumes lock is held by caller.
func (t *Table) dropLocked(id uuid.UUID) {
	if p, ok := t.players[id]; ok {
		p.Connected = false
	}
	if ob, ok := t.outboxes[id]; ok {
		close(ob.ch)
		delete(t.outboxes, id)
	}
}

// dropIfCurrent severs delivery only if ob is still the recipient's live
// queue, so a pump failing on a stale socket cannot cut off a reconnect.
func (t *Table) dropIfCurrent(id uuid.UUID, ob *outbox) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.outboxes[id] == ob {
		t.dropLocked(id)
	}
}

// HandleAction applies one action to the authoritative state, fans out the
// produced events, then lets any bot whose turn it now is take over. An
// illegal action is reported only to its originator via the returned error;
// no state changes and no other recipient hears about it.
func (t *Table) HandleAction(act engine.Action) error {
	t.mu.Lock()
	err := t.applyLocked(act)
	t.mu.Unlock()
	if err != nil {
		return err
	}
	t.runBots()
	return nil
}

// applyLocked runs the reducer and distributes the resulting event batch.
// Assumes lock is held by caller.
func (t *Table) applyLocked(act engine.Action) error {
	if act.At.IsZero() {
		act.At = time.Now()
	}

	next, events, err := engine.Apply(t.state, act)
	if err != nil {
		t.logger.WithFields(logrus.Fields{
			"player": act.Player,
			"kind":   act.Kind,
		}).WithError(err).Debug("action rejected")
		return err
	}
	t.state = next

	for _, ev := range events {
		t.log = append(t.log, ev)
		t.publishEvent(len(t.log)-1, ev)
		t.fanOut(ev)
	}

	if done, ok := next.(*engine.CompletedState); ok {
		t.logger.WithField("delta", done.Result.Score.Delta).Info("game completed")
		t.persistResult(done.Result)
		if t.OnComplete != nil {
			t.OnComplete(t.ID, done.Result)
		}
	}
	return nil
}

// fanOut queues one event for every connected recipient entitled to see it.
// Enqueueing never blocks; the per-connection pumps do the socket writes.
// Assumes lock is held by caller.
func (t *Table) fanOut(ev engine.PlayerEvent) {
	for id, p := range t.players {
		if p.IsBot || !p.Connected {
			continue
		}
		ob, ok := t.outboxes[id]
		if !ok || !ev.VisibleTo(id) {
			continue
		}
		select {
		case ob.ch <- ev:
		default:
			// The socket stopped draining long ago; cut it loose rather
			// than stall the table. A reconnect replays the log.
			t.logger.WithField("player", id).Warn("outbox full, dropping connection")
			t.dropLocked(id)
		}
	}
}

// runBots keeps taking turns for bot seats until a human (or nobody) is up.
// A bot's own move can hand the turn to another bot, so the acting seat is
// re-checked after every move.
func (t *Table) runBots() {
	for {
		t.mu.Lock()
		acting, ok := engine.ActingPlayer(t.state)
		if !ok {
			t.mu.Unlock()
			return
		}
		b, isBot := t.bots[acting]
		if !isBot {
			t.mu.Unlock()
			return
		}

		view := engine.ProjectFor(t.log, acting)
		act, ok := bot.Decide(b, view, acting)
		if !ok {
			t.mu.Unlock()
			return
		}
		act.At = time.Now()
		if err := t.applyLocked(act); err != nil {
			// A bot proposing an illegal action is a bug; stop rather than
			// spin on it.
			t.logger.WithField("bot", acting).WithError(err).Error("bot action rejected")
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()

		if t.BotDelay > 0 {
			time.Sleep(t.BotDelay)
		}
	}
}

// CatchUp returns the full filtered log for a recipient, for reconnects:
// replaying it through the projector from scratch rebuilds their exact view.
func (t *Table) CatchUp(recipient uuid.UUID) []engine.PlayerEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return engine.FilterEvents(t.log, recipient)
}

// View projects a recipient's current state from their filtered log.
func (t *Table) View(recipient uuid.UUID) *engine.PlayState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return engine.ProjectFor(t.log, recipient)
}

// AdminView projects the unfiltered log, the elevated-trust view that sees
// every private event. Debugging and administration only.
func (t *Table) AdminView() *engine.PlayState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return engine.Project(t.log)
}

// Phase reports the current phase.
func (t *Table) Phase() engine.Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Phase()
}

// publishEvent queues the event onto the table's history stream.
// Assumes lock is held by caller.
func (t *Table) publishEvent(index int, ev engine.PlayerEvent) {
	if cache.Rdb == nil {
		return
	}
	rec := cache.GameEventRecord{
		TableID:   t.ID,
		Index:     index,
		Type:      string(ev.Type),
		Event:     ev,
		Timestamp: time.Now().UnixMilli(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishGameEvent(ctx, rec); err != nil {
			t.logger.WithError(err).Warn("failed publishing event to history stream")
		}
	}()
}

// persistResult stores the completed game record.
// Assumes lock is held by caller.
func (t *Table) persistResult(result engine.CompletedGameState) {
	if database.DB == nil {
		return
	}
	id := t.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.StoreCompletedGame(ctx, id, result); err != nil {
			t.logger.WithError(err).Error("failed persisting completed game")
		}
	}()
}
