// internal/models/models.go
package models

import "github.com/google/uuid"

// User holds the public identity of an account.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Player is one participant at a table: a seated player, an observer, or a
// bot-driven seat. The transport layer owns the live socket; the table only
// tracks whether one exists.
type Player struct {
	ID        uuid.UUID `json:"id"`
	User      User      `json:"user"`
	Connected bool      `json:"connected"`
	Observer  bool      `json:"observer"`
	IsBot     bool      `json:"isBot"`
}
