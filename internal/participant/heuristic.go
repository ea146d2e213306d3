package participant

import (
	"context"
	"fmt"

	"github.com/lox/pokertable/internal/card"
	"github.com/lox/pokertable/internal/hand"
	"github.com/lox/pokertable/internal/protocol"
)

// commitment is the share of chips in play a bot will wager per category
var commitment = map[hand.Category]float64{
	hand.HighCard:      0.3,
	hand.Pair:          0.4,
	hand.TwoPair:       0.6,
	hand.ThreeOfAKind:  0.6,
	hand.Straight:      0.8,
	hand.Flush:         0.9,
	hand.FullHouse:     0.9,
	hand.FourOfAKind:   1.0,
	hand.StraightFlush: 1.0,
}

// Heuristic is a local bot. It learns the board and the outstanding bet
// from the broadcasts it is sent and answers turns immediately.
type Heuristic struct {
	Seat

	community []card.Card
	maxBet    int
}

// NewHeuristic returns a bot named BOT<n>
func NewHeuristic(n int) *Heuristic {
	h := &Heuristic{}
	_ = h.SetName(fmt.Sprintf("BOT%d", n))
	return h
}

// Poll never has anything queued
func (h *Heuristic) Poll() (string, bool) { return "", false }

// Wait decides the bot's action. Before the flop it calls; afterwards it
// commits a fixed share of its chips according to its best hand and folds
// when the outstanding bet is beyond that.
func (h *Heuristic) Wait(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(h.community) == 0 {
		return protocol.Bet{Amount: h.maxBet}.String(), nil
	}
	return h.decide(), nil
}

func (h *Heuristic) decide() string {
	cards := append([]card.Card{h.cards[0], h.cards[1]}, h.community...)
	best, ok := hand.Best(0, cards)
	if !ok {
		return protocol.VerbFold
	}
	target := int(float64(h.stack+h.wager) * commitment[best.Category])
	if h.maxBet > target {
		return protocol.VerbFold
	}
	return protocol.Bet{Amount: target}.String()
}

func (h *Heuristic) Dead() bool { return false }

// Send observes table broadcasts
func (h *Heuristic) Send(line string) {
	l := protocol.Decode(line)
	switch l.Verb {
	case protocol.VerbCards:
		h.community = h.community[:0]
		h.maxBet = 0
	case protocol.VerbCard:
		if c, err := card.Parse(l.Arg(0)); err == nil {
			h.community = append(h.community, c)
		}
	case protocol.VerbSBlind, protocol.VerbBBlind:
		if n, ok := l.IntArg(1); ok {
			h.raise(n)
		}
	case protocol.VerbBet:
		if n, ok := l.IntArg(0); ok {
			h.raise(n)
		}
	}
}

func (h *Heuristic) raise(n int) {
	if n > h.maxBet {
		h.maxBet = n
	}
}

// Community returns the revealed cards the bot has seen
func (h *Heuristic) Community() []card.Card { return h.community }

// Outstanding returns the highest wager the bot has seen this hand
func (h *Heuristic) Outstanding() int { return h.maxBet }

func (h *Heuristic) Close() error { return nil }

var _ Participant = (*Heuristic)(nil)
var _ Participant = (*Remote)(nil)
