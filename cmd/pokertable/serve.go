package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertable/internal/config"
	"github.com/lox/pokertable/internal/randutil"
	"github.com/lox/pokertable/internal/registry"
	"github.com/lox/pokertable/internal/server"
	"github.com/lox/pokertable/internal/table"
)

// ServeCmd hosts a table. Flags override the config file.
type ServeCmd struct {
	Config      string `short:"c" default:"pokertable.hcl" help:"Path to HCL configuration file"`
	Addr        string `help:"Address to bind to (overrides config)"`
	Port        *int   `short:"p" help:"TCP port for the line protocol (default 9001)"`
	HTTPPort    *int   `name:"http-port" help:"Port for /ws and /health, 0 disables"`
	Players     *int   `short:"n" help:"Network players to wait for (default 2)"`
	Bots        *int   `short:"b" help:"Bots to seat at start (default 0)"`
	Stack       *int   `help:"Starting chips per player (default 300)"`
	SmallBlind  *int   `name:"small-blind" help:"Small blind (default 10)"`
	BigBlind    *int   `name:"big-blind" help:"Big blind (default 20)"`
	Dealer      *int   `help:"Seat of the first dealer, random when unset"`
	Seed        *int64 `help:"Deterministic shuffle seed"`
	LogLevel    string `short:"l" name:"log-level" help:"Log level (overrides config)"`
	Interactive bool   `short:"i" help:"Prompt for the table settings"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.apply(cfg)

	if c.Interactive {
		if err := promptSettings(cfg); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.Server.LogLevel)
	rng, seed := randutil.ForMatch(cfg.Table.Seed)
	logger.Info("Starting table",
		"addr", cfg.Addr(),
		"http", cfg.HTTPAddr(),
		"players", cfg.Table.Players,
		"bots", cfg.Table.Bots,
		"stack", cfg.Table.StartingStack,
		"blinds", fmt.Sprintf("%d/%d", cfg.Table.SmallBlind, cfg.Table.BigBlind),
		"seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reg := registry.New(cfg.Table.Players, logger)
	srv := server.New(reg, cfg.Addr(), cfg.HTTPAddr(), logger)
	tbl := table.New(reg, cfg.TableConfig(), rng, quartz.NewReal(), logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		// the acceptor has nothing left to do once the match is decided
		defer cancel()
		return tbl.Run(gctx)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		logger.Info("Shutting down")
		return nil
	}
	return err
}

func (c *ServeCmd) apply(cfg *config.Config) {
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	override(&cfg.Server.Port, c.Port)
	override(&cfg.Server.HTTPPort, c.HTTPPort)
	override(&cfg.Table.Players, c.Players)
	override(&cfg.Table.Bots, c.Bots)
	override(&cfg.Table.StartingStack, c.Stack)
	override(&cfg.Table.SmallBlind, c.SmallBlind)
	override(&cfg.Table.BigBlind, c.BigBlind)
	if c.Dealer != nil {
		cfg.Table.Dealer = c.Dealer
	}
	if c.Seed != nil {
		cfg.Table.Seed = c.Seed
	}
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
