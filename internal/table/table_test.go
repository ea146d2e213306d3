package table

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertable/internal/card"
	"github.com/lox/pokertable/internal/participant"
	"github.com/lox/pokertable/internal/randutil"
	"github.com/lox/pokertable/internal/registry"
)

func headsUp() Config {
	cfg := DefaultConfig()
	cfg.Dealer = intPtr(0)
	return cfg
}

func TestStartSeatsNamedPlayersAndBots(t *testing.T) {
	alice := newScripted("alice")
	stranger := newScripted("")
	cfg := headsUp()
	cfg.Bots = 1

	tbl, reg := newTestTable(t, cfg, []participant.Participant{alice, stranger})

	reg.Lock()
	assert.Equal(t, []string{"alice", "BOT0"}, reg.Names())
	assert.Equal(t, []int{300, 300}, reg.Stacks())
	reg.Unlock()

	assert.Contains(t, alice.lines(), "START 2 alice BOT0")
	assert.True(t, reg.Started())
	assert.ErrorIs(t, reg.Add(newScripted("late")), registry.ErrStarted)

	tbl.Deal()
	assert.Equal(t, 0, tbl.Dealer())
}

func TestStartSkipsBotNamesAlreadyTaken(t *testing.T) {
	impostor := newScripted("BOT0")
	cfg := headsUp()
	cfg.Bots = 2

	_, reg := newTestTable(t, cfg, []participant.Participant{impostor})

	reg.Lock()
	defer reg.Unlock()
	assert.Equal(t, []string{"BOT0", "BOT1", "BOT2"}, reg.Names())
}

func TestStartNeedsTwoSeats(t *testing.T) {
	reg := registry.New(0, testLogger())
	require.NoError(t, reg.Add(newScripted("alice")))
	tbl := New(reg, headsUp(), randutil.New(1), quartz.NewMock(t), testLogger())

	assert.ErrorIs(t, tbl.Start(), ErrNotEnoughPlayers)
}

func TestDealAdvancesDealerAndSitsOutBusted(t *testing.T) {
	a, b, c := newScripted("a"), newScripted("b"), newScripted("c")
	tbl, _ := newTestTable(t, headsUp(), []participant.Participant{a, b, c})
	c.SetStack(0)

	tbl.Deal()
	assert.Equal(t, 0, tbl.Dealer())
	assert.True(t, c.Folded())
	assert.False(t, a.Folded())
	assert.Empty(t, tbl.Revealed())

	lines := a.lines()
	assert.Contains(t, lines, "ROUND 0 300 300 0")
	assert.Contains(t, lines, "DEALER a")
	assert.Equal(t, 1, count(lines, "CARDS "), "hole cards are private")

	tbl.Deal()
	assert.Equal(t, 1, tbl.Dealer())
	tbl.Deal()
	tbl.Deal()
	assert.Equal(t, 0, tbl.Dealer(), "dealer wraps around")
}

func TestRandomDealerStaysInRange(t *testing.T) {
	cfg := DefaultConfig()
	tbl, _ := newTestTable(t, cfg, []participant.Participant{newScripted("a"), newScripted("b"), newScripted("c")})
	for i := 0; i < 5; i++ {
		tbl.Deal()
		assert.GreaterOrEqual(t, tbl.Dealer(), 0)
		assert.Less(t, tbl.Dealer(), 3)
	}
}

func TestPostBlindsSkipsSeatsOutOfTheHand(t *testing.T) {
	a, b, c := newScripted("a"), newScripted("b"), newScripted("c")
	tbl, _ := newTestTable(t, headsUp(), []participant.Participant{a, b, c})
	b.SetStack(0)

	tbl.Deal()
	tbl.PostBlinds()

	assert.Equal(t, 10, c.Wager())
	assert.Equal(t, 20, a.Wager())
	assert.Equal(t, 0, b.Wager())
	assert.Equal(t, 20, tbl.Ceiling())
	assert.Contains(t, a.lines(), "SBLIND c 10")
	assert.Contains(t, a.lines(), "BBLIND a 20")
}

func TestShortBlindGoesAllIn(t *testing.T) {
	a, b := newScripted("a"), newScripted("b")
	tbl, reg := newTestTable(t, headsUp(), []participant.Participant{a, b})
	b.SetStack(4)
	before := chips(tbl, reg)

	tbl.Deal()
	tbl.PostBlinds()

	assert.Equal(t, 4, b.Wager())
	assert.True(t, b.AllIn())
	assert.Contains(t, a.lines(), "SBLIND b 4")
	assert.Equal(t, 20, tbl.Ceiling())
	assert.Equal(t, before, chips(tbl, reg))
}

func TestBettingStreetEndsWhenWagersMatch(t *testing.T) {
	a := newScripted("a", "BET 40")
	b := newScripted("b", "BET 40")
	tbl, reg := newTestTable(t, headsUp(), []participant.Participant{a, b})
	before := chips(tbl, reg)

	tbl.Deal()
	tbl.PostBlinds()
	require.Equal(t, 10, b.Wager(), "seat after the dealer posts the small blind")
	require.Equal(t, 20, a.Wager())

	require.NoError(t, tbl.Bet(context.Background(), PreFlop.Offset()))

	assert.Equal(t, 1, a.promptCount())
	assert.Equal(t, 1, b.promptCount())
	assert.Equal(t, 2, count(a.lines(), "MOVE "))
	assert.Equal(t, 40, tbl.Ceiling())
	assert.Equal(t, 260, a.Stack())
	assert.Equal(t, 260, b.Stack())
	assert.Equal(t, before, chips(tbl, reg))
}

func TestBigBlindGetsToActAfterACall(t *testing.T) {
	a := newScripted("a", "BET 20")
	b := newScripted("b", "BET 20")
	tbl, _ := newTestTable(t, headsUp(), []participant.Participant{a, b})

	tbl.Deal()
	tbl.PostBlinds()
	require.NoError(t, tbl.Bet(context.Background(), PreFlop.Offset()))

	assert.Equal(t, 1, a.promptCount())
	assert.Equal(t, 1, b.promptCount())
}

func TestRaiseForcesAnotherPass(t *testing.T) {
	a := newScripted("a", "BET 20", "BET 60")
	b := newScripted("b", "BET 20", "FOLD")
	c := newScripted("c", "BET 60")
	tbl, _ := newTestTable(t, headsUp(), []participant.Participant{a, b, c})

	tbl.Deal()
	tbl.PostBlinds()
	require.NoError(t, tbl.Bet(context.Background(), PreFlop.Offset()))

	assert.Equal(t, 2, a.promptCount())
	assert.Equal(t, 2, b.promptCount())
	assert.Equal(t, 1, c.promptCount())
	assert.True(t, b.Folded())
	assert.Equal(t, 60, tbl.Ceiling())
	assert.Contains(t, a.lines(), "BET 60 c")
	assert.Contains(t, a.lines(), "FOLD b")
}

func TestRejectedAnswersAreReprompted(t *testing.T) {
	a := newScripted("a", "BET 20")
	b := newScripted("b", "BET 5", "HELLO", "READY b", "BET 20")
	tbl, _ := newTestTable(t, headsUp(), []participant.Participant{a, b})

	tbl.Deal()
	tbl.PostBlinds()
	require.NoError(t, tbl.Bet(context.Background(), PreFlop.Offset()))

	assert.Equal(t, 4, b.promptCount())
	assert.Equal(t, 1, a.promptCount())
	assert.Equal(t, 5, count(a.lines(), "MOVE "))
	assert.Equal(t, 20, b.Wager())
}

func TestShortAllInBelowCeilingIsAccepted(t *testing.T) {
	a := newScripted("a", "BET 100")
	b := newScripted("b", "BET 100")
	tbl, _ := newTestTable(t, headsUp(), []participant.Participant{a, b})
	a.SetStack(50)

	tbl.Deal()
	tbl.PostBlinds()
	require.NoError(t, tbl.Bet(context.Background(), PreFlop.Offset()))

	assert.True(t, a.AllIn())
	assert.Equal(t, 50, a.Wager())
	assert.Equal(t, 100, b.Wager())
	assert.Equal(t, 1, a.promptCount())
}

func TestDeadParticipantFoldsWithoutPrompt(t *testing.T) {
	a := newScripted("a")
	b := newScripted("b")
	tbl, _ := newTestTable(t, headsUp(), []participant.Participant{a, b})

	tbl.Deal()
	tbl.PostBlinds()
	b.mu.Lock()
	b.dead = true
	b.mu.Unlock()

	require.NoError(t, tbl.Bet(context.Background(), PreFlop.Offset()))

	assert.Equal(t, 0, b.promptCount())
	assert.Equal(t, 0, a.promptCount())
	assert.True(t, b.Folded())
	assert.Contains(t, a.lines(), "FOLD b")
}

func TestBetPropagatesWaitErrors(t *testing.T) {
	a := newScripted("a")
	b := newScripted("b")
	tbl, reg := newTestTable(t, headsUp(), []participant.Participant{a, b})

	tbl.Deal()
	tbl.PostBlinds()
	err := tbl.Bet(context.Background(), PreFlop.Offset())
	assert.ErrorIs(t, err, errScriptExhausted)

	// Bet must have released the lock
	reg.Lock()
	reg.Unlock()
}

func TestRevealTurnsCommunityInOrder(t *testing.T) {
	a, b := newScripted("a"), newScripted("b")
	tbl, _ := newTestTable(t, headsUp(), []participant.Participant{a, b},
		stackedDeck("2c", "3d", "8h", "9s", "Kd", "Ah", "Qc", "As", "Qd"))

	tbl.Deal()
	for i := 0; i < 6; i++ {
		tbl.Reveal()
	}

	assert.Equal(t, "2c 3d 8h 9s Kd", card.Join(tbl.Revealed()))
	assert.Equal(t, 5, count(a.lines(), "CARD "))
	assert.Contains(t, a.lines(), "CARDS Ah Qc")
	assert.Contains(t, b.lines(), "CARDS As Qd")
}

func TestOver(t *testing.T) {
	a, b := newScripted("a"), newScripted("b")
	tbl, _ := newTestTable(t, headsUp(), []participant.Participant{a, b})
	assert.False(t, tbl.Over())

	b.mu.Lock()
	b.dead = true
	b.mu.Unlock()
	assert.True(t, tbl.Over())

	b.mu.Lock()
	b.dead = false
	b.mu.Unlock()
	a.SetStack(0)
	assert.True(t, tbl.Over())
}

func TestBotHandsConserveChips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Players = 0
	cfg.Bots = 3
	reg := registry.New(0, testLogger())
	tbl := New(reg, cfg, randutil.New(99), quartz.NewMock(t), testLogger())
	require.NoError(t, tbl.Start())

	total := chips(tbl, reg)
	require.Equal(t, 900, total)

	ctx := context.Background()
	for i := 0; i < 40 && !tbl.Over(); i++ {
		require.NoError(t, tbl.PlayHand(ctx))
		assert.Equal(t, total, chips(tbl, reg), "hand %d", i+1)
	}
}

func TestLobbyAdmitsReadyPlayers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	reg := registry.New(0, testLogger())
	cfg := DefaultConfig()
	cfg.PollInterval = 10 * time.Millisecond
	tbl := New(reg, cfg, randutil.New(1), mClock, testLogger())

	alice := newScripted("")
	alice.lobby = []string{"READY alice", "READY imposter", "BET 10", "garbage"}
	dave := newScripted("")
	dave.lobby = []string{"READY dave"}
	dave.dead = true
	require.NoError(t, reg.Add(alice))
	require.NoError(t, reg.Add(dave))

	done := make(chan error, 1)
	go func() { done <- tbl.WaitForPlayers(ctx) }()

	bob := newScripted("")
	bob.lobby = []string{"READY bob"}
	require.NoError(t, reg.Add(bob))

	var err error
	require.Eventually(t, func() bool {
		mClock.Advance(cfg.PollInterval).MustWait(ctx)
		select {
		case err = <-done:
			return true
		default:
			return false
		}
	}, 5*time.Second, time.Millisecond)
	require.NoError(t, err)

	reg.Lock()
	defer reg.Unlock()
	assert.Equal(t, []string{"alice", "bob"}, reg.Names())
}

func TestLobbyIgnoresIdleConnectionsAndTakenNames(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	reg := registry.New(2, testLogger())
	cfg := DefaultConfig()
	cfg.PollInterval = 10 * time.Millisecond
	tbl := New(reg, cfg, randutil.New(1), mClock, testLogger())

	alice := newScripted("")
	alice.lobby = []string{"READY alice"}
	idle := newScripted("")
	copycat := newScripted("")
	copycat.lobby = []string{"READY alice"}
	require.NoError(t, reg.Add(alice))
	require.NoError(t, reg.Add(idle))
	require.NoError(t, reg.Add(copycat))

	done := make(chan error, 1)
	go func() { done <- tbl.WaitForPlayers(ctx) }()

	bob := newScripted("")
	bob.lobby = []string{"READY bob"}
	require.NoError(t, reg.Add(bob))

	var err error
	require.Eventually(t, func() bool {
		mClock.Advance(cfg.PollInterval).MustWait(ctx)
		select {
		case err = <-done:
			return true
		default:
			return false
		}
	}, 5*time.Second, time.Millisecond)
	require.NoError(t, err)

	reg.Lock()
	assert.False(t, copycat.Named())
	assert.True(t, reg.Full())
	reg.Unlock()
	assert.ErrorIs(t, reg.Add(newScripted("")), registry.ErrFull)

	require.NoError(t, tbl.Start())
	reg.Lock()
	defer reg.Unlock()
	assert.Equal(t, []string{"alice", "bob"}, reg.Names())
}

func TestLobbyStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reg := registry.New(0, testLogger())
	tbl := New(reg, DefaultConfig(), randutil.New(1), quartz.NewMock(t), testLogger())

	cancel()
	assert.ErrorIs(t, tbl.WaitForPlayers(ctx), context.Canceled)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"bots only", func(c *Config) { c.Players, c.Bots = 0, 2 }, true},
		{"one seat", func(c *Config) { c.Players = 1 }, false},
		{"eleven seats", func(c *Config) { c.Players, c.Bots = 6, 5 }, false},
		{"no stack", func(c *Config) { c.StartingStack = 0 }, false},
		{"zero blind", func(c *Config) { c.SmallBlind = 0 }, false},
		{"inverted blinds", func(c *Config) { c.SmallBlind, c.BigBlind = 30, 20 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
	assert.ErrorIs(t, Config{Players: 1, StartingStack: 1, SmallBlind: 1, BigBlind: 1}.Validate(), ErrNotEnoughPlayers)
}
