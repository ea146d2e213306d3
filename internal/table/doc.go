// Package table runs a match: it admits participants in the lobby, then
// loops over hands until one participant holds every chip.
//
// # Hand Sequence
//
// Each hand moves through the same phases:
//
//	Deal -> PostBlinds -> Bet(pre-flop) -> Reveal x3 -> Bet(flop)
//	     -> Reveal -> Bet(turn) -> Reveal -> Bet(river) -> Showdown
//
// Every phase takes the registry lock for its own work and releases it
// around the one blocking wait a betting street performs, so the connection
// acceptor is never starved for longer than a phase.
//
// # Wagers
//
// A participant's wager is the total it has committed in the current hand
// and the ceiling is the highest such total. Blinds and bets raise a wager
// towards a requested total, clamping to an all-in when the stack runs out.
// At showdown every wager moves into the bank, which carries any
// undistributed chips into the next hand.
//
// # Running A Match
//
//	reg := registry.New(cfg.Players, logger)
//	t := table.New(reg, cfg, randutil.New(seed), quartz.NewReal(), logger)
//	err := t.Run(ctx)
package table
