// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gillessed/palantarot-sub001/engine"
	"github.com/gillessed/palantarot-sub001/engine/bot"
	"github.com/gillessed/palantarot-sub001/internal/auth"
	"github.com/gillessed/palantarot-sub001/internal/config"
	"github.com/gillessed/palantarot-sub001/internal/game"
	"github.com/gillessed/palantarot-sub001/internal/models"
)

const writeTimeout = 5 * time.Second

// Server owns the table registry and the HTTP/websocket surface.
type Server struct {
	mu     sync.Mutex
	tables map[uuid.UUID]*game.Table
	logger *logrus.Entry
}

// New creates an empty server.
func New() *Server {
	return &Server{
		tables: make(map[uuid.UUID]*game.Table),
		logger: logrus.WithField("component", "server"),
	}
}

// serverMessage is one frame pushed to a client.
type serverMessage struct {
	Type  string              `json:"type"`
	Event *engine.PlayerEvent `json:"event,omitempty"`
	Error string              `json:"error,omitempty"`
}

// CreateTable registers a new table, seats the requested bots, and readies
// them. Bots never block the lobby: they are ready from the start, so the
// game begins as soon as the humans are.
func (s *Server) CreateTable(seed uint64, publicHands bool, botCount int) *game.Table {
	t := game.NewTable(seed, publicHands)
	t.BotDelay = config.BotDelay()
	t.SendFn = s.sendEvent
	t.OnComplete = func(tableID uuid.UUID, result engine.CompletedGameState) {
		s.logger.WithFields(logrus.Fields{
			"table": tableID,
			"delta": result.Score.Delta,
		}).Info("table finished")
	}

	for i := 0; i < botCount; i++ {
		id, _ := uuid.NewRandom()
		t.AddBot(id, bot.NewBasic(int64(seed)+int64(i)+1), "bot")
		// Errors here would mean the lobby reducer rejected a fresh seat,
		// which cannot happen below the seat cap.
		_ = t.HandleAction(engine.Action{Kind: engine.ActionEnter, Player: id})
		_ = t.HandleAction(engine.Action{Kind: engine.ActionMarkReady, Player: id})
	}

	s.mu.Lock()
	s.tables[t.ID] = t
	s.mu.Unlock()
	s.logger.WithField("table", t.ID).Info("table created")
	return t
}

// Table looks up a registered table.
func (s *Server) Table(id uuid.UUID) (*game.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[id]
	return t, ok
}

func (s *Server) sendEvent(p *models.Player, conn *websocket.Conn, ev engine.PlayerEvent) error {
	if conn == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, serverMessage{Type: "event", Event: &ev}); err != nil {
		s.logger.WithField("player", p.ID).WithError(err).Debug("websocket write failed")
		return err
	}
	return nil
}

// Routes builds the HTTP mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /tables", s.handleCreateTable)
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "username required", http.StatusBadRequest)
		return
	}
	id, _ := uuid.NewRandom()
	token, err := auth.CreateToken(id, req.Username)
	if err != nil {
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"player_id": id.String(), "token": token})
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	if _, _, err := bearerUser(r); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req struct {
		Seed        uint64 `json:"seed"`
		PublicHands bool   `json:"public_hands"`
		Bots        int    `json:"bots"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Bots < 0 || req.Bots >= engine.MaxSeats {
		http.Error(w, "bad bot count", http.StatusBadRequest)
		return
	}
	t := s.CreateTable(req.Seed, req.PublicHands, req.Bots)
	writeJSON(w, map[string]string{"table_id": t.ID.String()})
}

// handleWS upgrades the connection and runs the client's read loop. Every
// action a client sends is stamped with their authenticated identity; the
// engine decides everything else.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	playerID, username, err := queryUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	tableID, err := uuid.Parse(r.URL.Query().Get("table"))
	if err != nil {
		http.Error(w, "bad table id", http.StatusBadRequest)
		return
	}
	t, ok := s.Table(tableID)
	if !ok {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}
	observer := r.URL.Query().Get("observer") == "true"

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Debug("websocket accept failed")
		return
	}
	defer conn.CloseNow()

	log := s.logger.WithFields(logrus.Fields{"table": tableID, "player": playerID})
	log.Info("websocket connected")

	// Attach replays the filtered backlog and then streams live events, all
	// through the table's per-connection pump, so the client always sees a
	// prefix-ordered view of the log.
	t.Attach(models.User{ID: playerID, Username: username}, conn, observer)

	for {
		var act engine.Action
		if err := wsjson.Read(r.Context(), conn, &act); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				log.Info("websocket closed")
			} else if !errors.Is(err, context.Canceled) {
				log.WithError(err).Debug("websocket read failed")
			}
			t.HandleDisconnect(playerID)
			return
		}
		act.Player = playerID
		act.At = time.Now()
		if err := t.HandleAction(act); err != nil {
			// Rejections go only to the offender; nobody else hears about
			// attempts that did not change the game.
			ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
			werr := wsjson.Write(ctx, conn, serverMessage{Type: "error", Error: err.Error()})
			cancel()
			if werr != nil {
				t.HandleDisconnect(playerID)
				return
			}
		}
	}
}

func bearerUser(r *http.Request) (uuid.UUID, string, error) {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) <= len(prefix) || h[:len(prefix)] != prefix {
		return uuid.Nil, "", auth.ErrInvalidToken
	}
	return auth.VerifyToken(h[len(prefix):])
}

func queryUser(r *http.Request) (uuid.UUID, string, error) {
	return auth.VerifyToken(r.URL.Query().Get("token"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
