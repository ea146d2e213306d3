package table

import (
	"context"

	"github.com/lox/pokertable/internal/participant"
	"github.com/lox/pokertable/internal/protocol"
)

// WaitForPlayers polls the registry until the configured number of
// participants have sent READY. Lines other than a first READY under an
// unused name are logged and dropped, and participants that disconnect are
// removed.
func (t *Table) WaitForPlayers(ctx context.Context) error {
	ticker := t.clock.NewTicker(t.cfg.PollInterval, "table", "lobby")
	defer ticker.Stop()

	t.logger.Info("Waiting for players", "ready", 0, "want", t.cfg.Players)
	last := 0
	for {
		t.reg.Lock()
		ready := t.admit()
		t.reg.Unlock()

		if ready != last {
			t.logger.Infof("Waiting for players (%d/%d)", ready, t.cfg.Players)
			last = ready
		}
		if ready >= t.cfg.Players {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// admit drains every participant's queue and returns how many are named
func (t *Table) admit() int {
	for _, p := range t.reg.All() {
		for {
			line, ok := p.Poll()
			if !ok {
				break
			}
			t.handleLobbyLine(p, line)
		}
	}

	removed := t.reg.Retain(func(p participant.Participant) bool { return !p.Dead() })
	for _, p := range removed {
		t.logger.Info("Player left the lobby", "player", p.Name())
	}

	ready := 0
	for _, p := range t.reg.All() {
		if p.Named() {
			ready++
		}
	}
	return ready
}

func (t *Table) handleLobbyLine(p participant.Participant, line string) {
	switch cmd := protocol.Parse(line).(type) {
	case protocol.Ready:
		if !p.Named() && t.reg.Taken(cmd.Name) {
			t.logger.Warn("Name already taken", "name", cmd.Name, "line", line)
			return
		}
		if !p.Named() && t.reg.Full() {
			t.logger.Warn("Table full", "name", cmd.Name)
			return
		}
		if err := p.SetName(cmd.Name); err != nil {
			t.logger.Warn("Unexpected packet", "player", p.Name(), "line", line, "error", err)
			return
		}
		t.logger.Debug("Player ready", "player", cmd.Name)
	case protocol.Unknown:
		t.logger.Warn("Can't parse packet", "line", cmd.Raw)
	default:
		t.logger.Warn("Unexpected packet", "player", p.Name(), "line", line)
	}
}
