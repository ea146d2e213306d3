package table

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotEnoughPlayers is returned when a match cannot seat two participants
var ErrNotEnoughPlayers = errors.New("not enough players")

// DefaultPollInterval is how often the lobby checks for READY lines
const DefaultPollInterval = 50 * time.Millisecond

// Config holds the match parameters
type Config struct {
	Players       int // network participants to wait for
	Bots          int // heuristic participants added at start
	StartingStack int
	SmallBlind    int
	BigBlind      int
	Dealer        *int // seat of the first hand's dealer; random when nil
	PollInterval  time.Duration
}

// DefaultConfig returns the standard table setup
func DefaultConfig() Config {
	return Config{
		Players:       2,
		StartingStack: 300,
		SmallBlind:    10,
		BigBlind:      20,
		PollInterval:  DefaultPollInterval,
	}
}

// Validate checks the parameters can make a playable match
func (c Config) Validate() error {
	seats := c.Players + c.Bots
	switch {
	case c.Players < 0 || c.Bots < 0:
		return fmt.Errorf("players and bots must not be negative")
	case seats < 2:
		return fmt.Errorf("%w: %d seats", ErrNotEnoughPlayers, seats)
	case seats > 10:
		return fmt.Errorf("%d seats, at most 10 allowed", seats)
	case c.StartingStack <= 0:
		return fmt.Errorf("starting stack must be positive")
	case c.SmallBlind <= 0 || c.BigBlind <= 0:
		return fmt.Errorf("blinds must be positive")
	case c.BigBlind < c.SmallBlind:
		return fmt.Errorf("big blind %d below small blind %d", c.BigBlind, c.SmallBlind)
	}
	return nil
}
