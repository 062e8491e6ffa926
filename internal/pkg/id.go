package pkg

import "github.com/google/uuid"

// GenerateSessionID - returns a new identifier for a game session.
func GenerateSessionID() string {
	return uuid.New().String()
}

// GeneratePlayerID - returns a new identifier for a player seat.
func GeneratePlayerID() string {
	return uuid.New().String()
}
