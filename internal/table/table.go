package table

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokertable/internal/card"
	"github.com/lox/pokertable/internal/participant"
	"github.com/lox/pokertable/internal/protocol"
	"github.com/lox/pokertable/internal/registry"
)

// Street is one of the four betting phases
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
)

// String returns the street name
func (s Street) String() string {
	switch s {
	case PreFlop:
		return "Pre-flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	default:
		return "Unknown"
	}
}

// Offset is the seat, counted from the dealer, that acts first. Pre-flop
// action starts after the big blind.
func (s Street) Offset() int {
	if s == PreFlop {
		return 3
	}
	return 1
}

// reveals is the number of community cards turned before each street
var reveals = map[Street]int{PreFlop: 0, Flop: 3, Turn: 1, River: 1}

// Option configures a Table
type Option func(*Table)

// WithDeck replaces the shuffled deck each hand is dealt from
func WithDeck(source func() *card.Deck) Option {
	return func(t *Table) {
		t.deck = source
	}
}

// Table is the match state machine
type Table struct {
	reg    *registry.Registry
	cfg    Config
	rng    *rand.Rand
	clock  quartz.Clock
	logger *log.Logger
	deck   func() *card.Deck

	bank      int
	community [5]card.Card
	revealed  int
	dealer    int
	seats     int
	maxBet    int
	hands     int
}

// New builds a table over reg. The rng shuffles decks and picks the first
// dealer; the clock paces the lobby.
func New(reg *registry.Registry, cfg Config, rng *rand.Rand, clock quartz.Clock, logger *log.Logger, opts ...Option) *Table {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	t := &Table{
		reg:    reg,
		cfg:    cfg,
		rng:    rng,
		clock:  clock,
		logger: logger.WithPrefix("table"),
	}
	t.deck = func() *card.Deck { return card.NewDeck(t.rng) }
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Bank returns the chips awaiting distribution
func (t *Table) Bank() int { return t.bank }

// Dealer returns the current dealer seat
func (t *Table) Dealer() int { return t.dealer }

// Ceiling returns the highest wager of the hand
func (t *Table) Ceiling() int { return t.maxBet }

// Revealed returns the community cards turned so far
func (t *Table) Revealed() []card.Card {
	return append([]card.Card(nil), t.community[:t.revealed]...)
}

// Run plays a whole match: lobby, start, then hands until Over
func (t *Table) Run(ctx context.Context) error {
	if err := t.WaitForPlayers(ctx); err != nil {
		return fmt.Errorf("lobby: %w", err)
	}
	if err := t.Start(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	for !t.Over() {
		if err := t.PlayHand(ctx); err != nil {
			return fmt.Errorf("hand %d: %w", t.hands, err)
		}
	}

	t.reg.Lock()
	defer t.reg.Unlock()
	for _, p := range t.reg.All() {
		if p.Stack() > 0 && !p.Dead() {
			t.logger.Info("Match over", "winner", p.Name(), "stack", p.Stack(), "hands", t.hands)
			return nil
		}
	}
	t.logger.Info("Match over without a winner", "hands", t.hands)
	return nil
}

// PlayHand runs one hand from the deal to the showdown
func (t *Table) PlayHand(ctx context.Context) error {
	t.Deal()
	t.PostBlinds()
	for _, street := range []Street{PreFlop, Flop, Turn, River} {
		for i := 0; i < reveals[street]; i++ {
			t.Reveal()
		}
		if err := t.Bet(ctx, street.Offset()); err != nil {
			return fmt.Errorf("%s betting: %w", street, err)
		}
	}
	t.Showdown()
	return nil
}

// Start closes the lobby. Unnamed participants are dropped, bots are
// seated, stacks are filled and the first dealer is fixed.
func (t *Table) Start() error {
	t.reg.Lock()
	defer t.reg.Unlock()

	t.reg.Retain(participant.Participant.Named)
	t.reg.MarkStarted()
	for i, n := 0, 0; i < t.cfg.Bots; n++ {
		bot := participant.NewHeuristic(n)
		if t.reg.Taken(bot.Name()) {
			continue
		}
		t.reg.Append(bot)
		i++
	}

	t.seats = t.reg.Len()
	if t.seats < 2 {
		return fmt.Errorf("%w: %d seated", ErrNotEnoughPlayers, t.seats)
	}

	t.logger.Info("Starting game", "players", t.seats, "bots", t.cfg.Bots)
	t.reg.Broadcast(protocol.Start(t.reg.Names()))
	for _, p := range t.reg.All() {
		p.SetStack(t.cfg.StartingStack)
	}

	// Deal advances the dealer before every hand, so start one seat back
	first := t.rng.IntN(t.seats)
	if t.cfg.Dealer != nil {
		first = *t.cfg.Dealer
	}
	t.dealer = t.reg.Wrap(first - 1)
	return nil
}

// Deal shuffles a fresh deck, deals hole cards, resets wagers and advances
// the dealer. Participants without chips or without a connection sit the
// hand out folded.
func (t *Table) Deal() {
	t.reg.Lock()
	defer t.reg.Unlock()

	t.hands++
	t.reg.Broadcast(protocol.Round(t.bank, t.reg.Stacks()))

	deck := t.deck()
	for i := range t.community {
		t.community[i] = t.draw(deck)
	}
	for _, p := range t.reg.All() {
		hole := [2]card.Card{t.draw(deck), t.draw(deck)}
		p.SetCards(hole)
		p.Send(protocol.Cards(hole))
		p.SetWager(0)
		p.SetFolded(p.Stack() == 0 || p.Dead())
	}
	t.revealed = 0
	t.maxBet = 0

	t.dealer = t.reg.Wrap(t.dealer + 1)
	dealer := t.reg.At(t.dealer)
	t.logger.Info("Dealing", "hand", t.hands, "dealer", dealer.Name(), "bank", t.bank)
	t.reg.Broadcast(protocol.Dealer(dealer.Name()))
}

func (t *Table) draw(deck *card.Deck) card.Card {
	c, ok := deck.Draw()
	if !ok {
		t.logger.Error("Deck exhausted", "remaining", deck.Remaining())
	}
	return c
}

// PostBlinds takes the blinds from the next two participants in the hand
// after the dealer. A short stack posts what it has and the ceiling is the
// larger blind actually posted.
func (t *Table) PostBlinds() {
	t.reg.Lock()
	defer t.reg.Unlock()

	small := t.nextInHand(t.dealer + 1)
	big := t.nextInHand(small + 1)

	sb := t.reg.At(small)
	sb.Bet(t.cfg.SmallBlind)
	t.reg.Broadcast(protocol.SBlind(sb.Name(), sb.Wager()))

	bb := t.reg.At(big)
	bb.Bet(t.cfg.BigBlind)
	t.reg.Broadcast(protocol.BBlind(bb.Name(), bb.Wager()))

	t.maxBet = max(sb.Wager(), bb.Wager())
	t.logger.Debug("Blinds posted", "small", sb.Name(), "big", bb.Name(), "ceiling", t.maxBet)
}

// nextInHand returns the first seat at or after from that has not folded
func (t *Table) nextInHand(from int) int {
	for i := 0; i < t.reg.Len(); i++ {
		seat := t.reg.Wrap(from + i)
		if !t.reg.At(seat).Folded() {
			return seat
		}
	}
	return t.reg.Wrap(from)
}

// Reveal turns the next face-down community card
func (t *Table) Reveal() {
	t.reg.Lock()
	defer t.reg.Unlock()

	if t.revealed >= len(t.community) {
		return
	}
	c := t.community[t.revealed]
	t.revealed++
	t.logger.Debug("Reveal", "card", c, "revealed", t.revealed)
	t.reg.Broadcast(protocol.Card(c))
}

// Over reports whether at most one connected participant still has chips
func (t *Table) Over() bool {
	t.reg.Lock()
	defer t.reg.Unlock()

	alive := 0
	for _, p := range t.reg.All() {
		if p.Stack() > 0 && !p.Dead() {
			alive++
		}
	}
	return alive <= 1
}
