package table

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertable/internal/card"
	"github.com/lox/pokertable/internal/participant"
	"github.com/lox/pokertable/internal/randutil"
	"github.com/lox/pokertable/internal/registry"
)

var errScriptExhausted = errors.New("script exhausted")

// scripted answers turns from a fixed list and records what it was sent
type scripted struct {
	participant.Seat

	mu      sync.Mutex
	lobby   []string
	replies []string
	prompts int
	sent    []string
	dead    bool
}

func newScripted(name string, replies ...string) *scripted {
	s := &scripted{replies: replies}
	if name != "" {
		_ = s.SetName(name)
	}
	return s
}

func (s *scripted) Poll() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lobby) == 0 {
		return "", false
	}
	line := s.lobby[0]
	s.lobby = s.lobby[1:]
	return line, true
}

func (s *scripted) Wait(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts++
	if s.dead {
		return "FOLD", nil
	}
	if len(s.replies) == 0 {
		return "", errScriptExhausted
	}
	line := s.replies[0]
	s.replies = s.replies[1:]
	return line, nil
}

func (s *scripted) Dead() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dead
}

func (s *scripted) Send(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, line)
}

func (s *scripted) Close() error { return nil }

func (s *scripted) lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func (s *scripted) promptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompts
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func intPtr(n int) *int { return &n }

// newTestTable seats ps, starts the match with the first hand's dealer at
// seat dealer and returns the table ready to Deal.
func newTestTable(t *testing.T, cfg Config, ps []participant.Participant, opts ...Option) (*Table, *registry.Registry) {
	t.Helper()
	reg := registry.New(0, testLogger())
	for _, p := range ps {
		require.NoError(t, reg.Add(p))
	}
	tbl := New(reg, cfg, randutil.New(1), quartz.NewMock(t), testLogger(), opts...)
	require.NoError(t, tbl.Start())
	return tbl, reg
}

func stackedDeck(codes ...string) Option {
	cards := card.MustParseAll(codes...)
	return WithDeck(func() *card.Deck { return card.NewStackedDeck(cards) })
}

// chips returns the stacks plus outstanding wagers plus the bank
func chips(tbl *Table, reg *registry.Registry) int {
	reg.Lock()
	defer reg.Unlock()
	total := tbl.bank
	for _, p := range reg.All() {
		total += p.Stack() + p.Wager()
	}
	return total
}

func count(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}
