package table

import (
	"context"
	"fmt"

	"github.com/lox/pokertable/internal/participant"
	"github.com/lox/pokertable/internal/protocol"
)

// Bet runs one betting street, starting offset seats after the dealer.
// Folded and all-in participants are skipped and a disconnected one is
// folded on its turn. The street ends once every seat has been visited and
// every participant still able to act has matched the ceiling.
func (t *Table) Bet(ctx context.Context, offset int) error {
	t.reg.Lock()
	defer t.reg.Unlock()

	acted := make([]bool, t.reg.Len())
	seat := t.reg.Wrap(t.dealer + offset)

	for !t.streetOver(acted) {
		p := t.reg.At(seat)
		switch {
		case p.Folded() || p.AllIn():
		case p.Dead():
			t.fold(p)
		default:
			done, err := t.turn(ctx, p)
			if err != nil {
				return err
			}
			if !done {
				continue
			}
		}
		acted[seat] = true
		seat = t.reg.Wrap(seat + 1)
	}
	t.logger.Debug("Street complete", "ceiling", t.maxBet)
	return nil
}

// streetOver reports whether the current street needs no more prompts
func (t *Table) streetOver(acted []bool) bool {
	inHand, actors := 0, 0
	lagging := false
	for _, p := range t.reg.All() {
		if p.Folded() {
			continue
		}
		inHand++
		if p.AllIn() {
			continue
		}
		actors++
		if p.Wager() != t.maxBet {
			lagging = true
		}
	}

	switch {
	case inHand <= 1, actors == 0:
		return true
	case lagging:
		return false
	case actors == 1:
		return true
	}
	for _, a := range acted {
		if !a {
			return false
		}
	}
	return true
}

// turn prompts p and applies its answer. It returns false when the answer
// was rejected and p must be prompted again. The registry lock is released
// while waiting.
func (t *Table) turn(ctx context.Context, p participant.Participant) (bool, error) {
	t.reg.Broadcast(protocol.Move(p.Name()))

	t.reg.Unlock()
	line, err := p.Wait(ctx)
	t.reg.Lock()
	if err != nil {
		return false, fmt.Errorf("wait for %s: %w", p.Name(), err)
	}

	switch cmd := protocol.Parse(line).(type) {
	case protocol.Bet:
		if cmd.Amount < t.maxBet && cmd.Amount < p.Wager()+p.Stack() {
			t.logger.Warn("Bet below ceiling", "player", p.Name(), "amount", cmd.Amount, "ceiling", t.maxBet)
			return false, nil
		}
		p.Bet(cmd.Amount)
		if p.Wager() > t.maxBet {
			t.maxBet = p.Wager()
		}
		t.logger.Debug("Bet", "player", p.Name(), "wager", p.Wager(), "stack", p.Stack())
		t.reg.Broadcast(protocol.BetMade(p.Wager(), p.Name()))
	case protocol.Fold:
		t.fold(p)
	case protocol.Unknown:
		t.logger.Warn("Can't parse packet", "player", p.Name(), "line", cmd.Raw)
		return false, nil
	default:
		t.logger.Warn("Unexpected packet", "player", p.Name(), "line", line)
		return false, nil
	}
	return true, nil
}

func (t *Table) fold(p participant.Participant) {
	p.SetFolded(true)
	t.logger.Debug("Fold", "player", p.Name())
	t.reg.Broadcast(protocol.Folded(p.Name()))
}
