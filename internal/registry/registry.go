// Package registry holds the participants seated at a table behind one
// mutex. The connection acceptor adds to it and the table drives it.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertable/internal/participant"
)

var (
	// ErrStarted is returned by Add once the match has begun
	ErrStarted = errors.New("match already started")
	// ErrFull is returned by Add when every network seat is taken
	ErrFull = errors.New("table full")
)

// Registry is the lock-guarded participant list. Methods other than Add,
// Started, Lock and Unlock expect the caller to hold the lock.
type Registry struct {
	mu           sync.Mutex
	participants []participant.Participant
	capacity     int
	started      bool
	logger       *log.Logger
}

// New returns a registry that admits participants until capacity of them
// have been named. Unnamed connections never hold a seat. A capacity of
// zero or less means unbounded.
func New(capacity int, logger *log.Logger) *Registry {
	return &Registry{
		capacity: capacity,
		logger:   logger.WithPrefix("registry"),
	}
}

// Add admits a participant. It takes the lock itself.
func (r *Registry) Add(p participant.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrStarted
	}
	if r.capacity > 0 && r.named() >= r.capacity {
		return fmt.Errorf("%w: %d seats", ErrFull, r.capacity)
	}
	r.participants = append(r.participants, p)
	r.logger.Debug("Participant added", "count", len(r.participants))
	return nil
}

// Full reports whether capacity participants have been named
func (r *Registry) Full() bool {
	return r.capacity > 0 && r.named() >= r.capacity
}

// Taken reports whether a seated participant already goes by name
func (r *Registry) Taken(name string) bool {
	for _, p := range r.participants {
		if p.Named() && p.Name() == name {
			return true
		}
	}
	return false
}

func (r *Registry) named() int {
	n := 0
	for _, p := range r.participants {
		if p.Named() {
			n++
		}
	}
	return n
}

func (r *Registry) Lock()   { r.mu.Lock() }
func (r *Registry) Unlock() { r.mu.Unlock() }

// Started reports whether the match has begun. It takes the lock itself.
func (r *Registry) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// MarkStarted closes the registry to new participants
func (r *Registry) MarkStarted() {
	r.started = true
}

// Len returns the number of seated participants
func (r *Registry) Len() int {
	return len(r.participants)
}

// All returns the participants in seat order. The slice is shared.
func (r *Registry) All() []participant.Participant {
	return r.participants
}

// At resolves any signed seat index by wrapping it modulo the seat count
func (r *Registry) At(seat int) participant.Participant {
	return r.participants[r.Wrap(seat)]
}

// Wrap maps a signed seat index into [0, Len())
func (r *Registry) Wrap(seat int) int {
	n := len(r.participants)
	if n == 0 {
		return 0
	}
	return ((seat % n) + n) % n
}

// Append seats a participant regardless of capacity or start state. The
// table uses it for bots.
func (r *Registry) Append(p participant.Participant) {
	r.participants = append(r.participants, p)
}

// Retain keeps the participants keep accepts and closes the rest
func (r *Registry) Retain(keep func(participant.Participant) bool) []participant.Participant {
	var removed []participant.Participant
	kept := r.participants[:0]
	for _, p := range r.participants {
		if keep(p) {
			kept = append(kept, p)
			continue
		}
		removed = append(removed, p)
	}
	clear(r.participants[len(kept):])
	r.participants = kept

	for _, p := range removed {
		if err := p.Close(); err != nil {
			r.logger.Debug("Close failed", "error", err)
		}
	}
	return removed
}

// Broadcast sends line to every participant in seat order
func (r *Registry) Broadcast(line string) {
	r.logger.Debug("Broadcast", "line", line)
	for _, p := range r.participants {
		p.Send(line)
	}
}

// Names returns the display names in seat order
func (r *Registry) Names() []string {
	names := make([]string, len(r.participants))
	for i, p := range r.participants {
		names[i] = p.Name()
	}
	return names
}

// Stacks returns the chip stacks in seat order
func (r *Registry) Stacks() []int {
	stacks := make([]int, len(r.participants))
	for i, p := range r.participants {
		stacks[i] = p.Stack()
	}
	return stacks
}
