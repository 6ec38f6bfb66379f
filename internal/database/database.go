// internal/database/database.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/gillessed/palantarot-sub001/engine"
	"github.com/gillessed/palantarot-sub001/internal/config"
)

// DB is the shared connection pool. Nil until Connect succeeds; callers
// treat a nil pool as "persistence disabled".
var DB *pgxpool.Pool

// Connect opens the pool and ensures the schema exists.
func Connect(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, config.PostgresDSN())
	if err != nil {
		return fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("postgres ping: %w", err)
	}
	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return err
	}
	DB = pool
	logrus.Info("connected to postgres")
	return nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS completed_games (
			id           UUID PRIMARY KEY,
			bidder       UUID NOT NULL,
			partner      UUID NOT NULL,
			bid          INT NOT NULL,
			bidder_won   BOOLEAN NOT NULL,
			delta        DOUBLE PRECISION NOT NULL,
			record       JSONB NOT NULL,
			completed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("migrate completed_games: %w", err)
	}
	return nil
}

// StoreCompletedGame writes one finished game, keyed by its table ID. The
// full record goes in as JSON; the scalar columns exist for querying.
func StoreCompletedGame(ctx context.Context, tableID uuid.UUID, result engine.CompletedGameState) error {
	if DB == nil {
		return nil
	}
	record, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal completed game: %w", err)
	}
	_, err = DB.Exec(ctx, `
		INSERT INTO completed_games (id, bidder, partner, bid, bidder_won, delta, record)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		tableID,
		result.Bidder,
		result.Partner,
		result.Bid.Value,
		result.Score.BidderWon,
		result.Score.Delta,
		record,
	)
	if err != nil {
		return fmt.Errorf("store completed game: %w", err)
	}
	return nil
}

// LoadCompletedGame reads back one finished game record.
func LoadCompletedGame(ctx context.Context, tableID uuid.UUID) (*engine.CompletedGameState, error) {
	if DB == nil {
		return nil, nil
	}
	var raw []byte
	err := DB.QueryRow(ctx,
		`SELECT record FROM completed_games WHERE id = $1`, tableID,
	).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("load completed game: %w", err)
	}
	var result engine.CompletedGameState
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode completed game: %w", err)
	}
	return &result, nil
}
