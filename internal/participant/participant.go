// Package participant defines the seat-holders the table drives: network
// clients reached over a Transport, and heuristic bots that decide locally.
// Both expose the same Participant contract.
package participant

import (
	"context"
	"errors"

	"github.com/lox/pokertable/internal/card"
)

// ErrNamed is returned when a name is bound a second time
var ErrNamed = errors.New("participant already named")

// Participant is everything the table needs from a seat-holder. Apart from
// Poll, Wait and Dead, which a Remote serves from its reader goroutine,
// methods are only called from the table's control goroutine.
type Participant interface {
	// Poll returns the next queued inbound line without blocking
	Poll() (string, bool)
	// Wait blocks for the next inbound line. A participant whose
	// connection is gone answers FOLD.
	Wait(ctx context.Context) (string, error)

	Name() string
	Named() bool
	SetName(name string) error

	Stack() int
	SetStack(stack int)
	Wager() int
	SetWager(wager int)
	// Bet raises the street wager to total, moving chips from the stack.
	// A total the stack cannot cover commits the whole stack instead.
	Bet(total int)

	Cards() [2]card.Card
	SetCards(cards [2]card.Card)
	Folded() bool
	SetFolded(folded bool)

	AllIn() bool
	Dead() bool

	// Send delivers one outbound line
	Send(line string)
	Close() error
}

// Seat is the chip and card record shared by every participant kind
type Seat struct {
	name   string
	named  bool
	stack  int
	wager  int
	cards  [2]card.Card
	folded bool
}

func (s *Seat) Name() string { return s.name }
func (s *Seat) Named() bool  { return s.named }

// SetName binds the display name. It can only be done once.
func (s *Seat) SetName(name string) error {
	if s.named {
		return ErrNamed
	}
	s.name = name
	s.named = true
	return nil
}

func (s *Seat) Stack() int          { return s.stack }
func (s *Seat) SetStack(stack int)  { s.stack = stack }
func (s *Seat) Wager() int          { return s.wager }
func (s *Seat) SetWager(wager int)  { s.wager = wager }
func (s *Seat) Cards() [2]card.Card { return s.cards }
func (s *Seat) Folded() bool        { return s.folded }
func (s *Seat) SetFolded(f bool)    { s.folded = f }
func (s *Seat) AllIn() bool         { return s.stack == 0 }

func (s *Seat) SetCards(cards [2]card.Card) { s.cards = cards }

func (s *Seat) Bet(total int) {
	move := total - s.wager
	if move <= 0 {
		return
	}
	if move > s.stack {
		move = s.stack
	}
	s.stack -= move
	s.wager += move
}
