// Package config loads the server and table settings from an optional HCL
// file layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokertable/internal/table"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete configuration
type Config struct {
	Server ServerSettings
	Table  TableSettings
}

// ServerSettings controls the listeners and logging
type ServerSettings struct {
	Address  string
	Port     int // line protocol over TCP
	HTTPPort int // websocket and health endpoints, 0 disables
	LogLevel string
}

// TableSettings controls the match
type TableSettings struct {
	Players       int
	Bots          int
	StartingStack int
	SmallBlind    int
	BigBlind      int
	Dealer        *int
	Seed          *int64
	PollInterval  time.Duration
}

// fileConfig mirrors the HCL layout. Everything is optional so a file only
// needs the values it changes.
type fileConfig struct {
	Server *serverBlock `hcl:"server,block"`
	Table  *tableBlock  `hcl:"table,block"`
}

type serverBlock struct {
	Address  *string `hcl:"address,optional"`
	Port     *int    `hcl:"port,optional"`
	HTTPPort *int    `hcl:"http_port,optional"`
	LogLevel *string `hcl:"log_level,optional"`
}

type tableBlock struct {
	Players       *int    `hcl:"players,optional"`
	Bots          *int    `hcl:"bots,optional"`
	StartingStack *int    `hcl:"starting_stack,optional"`
	SmallBlind    *int    `hcl:"small_blind,optional"`
	BigBlind      *int    `hcl:"big_blind,optional"`
	Dealer        *int    `hcl:"dealer,optional"`
	Seed          *int64  `hcl:"seed,optional"`
	PollInterval  *string `hcl:"poll_interval,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "0.0.0.0",
			Port:     9001,
			LogLevel: "info",
		},
		Table: TableSettings{
			Players:       2,
			Bots:          0,
			StartingStack: 300,
			SmallBlind:    10,
			BigBlind:      20,
			PollInterval:  table.DefaultPollInterval,
		},
	}
}

// Load reads filename over the defaults. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source over the defaults
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if err := cfg.apply(fc); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(fc fileConfig) error {
	if s := fc.Server; s != nil {
		set(&c.Server.Address, s.Address)
		set(&c.Server.Port, s.Port)
		set(&c.Server.HTTPPort, s.HTTPPort)
		set(&c.Server.LogLevel, s.LogLevel)
	}
	if t := fc.Table; t != nil {
		set(&c.Table.Players, t.Players)
		set(&c.Table.Bots, t.Bots)
		set(&c.Table.StartingStack, t.StartingStack)
		set(&c.Table.SmallBlind, t.SmallBlind)
		set(&c.Table.BigBlind, t.BigBlind)
		if t.Dealer != nil {
			c.Table.Dealer = t.Dealer
		}
		if t.Seed != nil {
			c.Table.Seed = t.Seed
		}
		if t.PollInterval != nil {
			d, err := time.ParseDuration(*t.PollInterval)
			if err != nil {
				return fmt.Errorf("%w: poll_interval: %v", ErrInvalid, err)
			}
			c.Table.PollInterval = d
		}
	}
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Validate checks the configuration can run a match
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalid, c.Server.Port)
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http port %d", ErrInvalid, c.Server.HTTPPort)
	}
	if c.Server.HTTPPort != 0 && c.Server.HTTPPort == c.Server.Port {
		return fmt.Errorf("%w: http port must differ from port %d", ErrInvalid, c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Server.LogLevel)
	}
	if d := c.Table.Dealer; d != nil && *d < 0 {
		return fmt.Errorf("%w: dealer seat %d", ErrInvalid, *d)
	}
	if c.Table.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval %s", ErrInvalid, c.Table.PollInterval)
	}
	if err := c.TableConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// TableConfig returns the settings the table needs
func (c *Config) TableConfig() table.Config {
	return table.Config{
		Players:       c.Table.Players,
		Bots:          c.Table.Bots,
		StartingStack: c.Table.StartingStack,
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
		Dealer:        c.Table.Dealer,
		PollInterval:  c.Table.PollInterval,
	}
}

// Addr returns the TCP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// HTTPAddr returns the HTTP listen address, or "" when disabled
func (c *Config) HTTPAddr() string {
	if c.Server.HTTPPort == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.HTTPPort)
}
