package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"github.com/lox/pokertable/internal/config"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// promptSettings asks for each table setting, offering the current value
// as the default taken on empty input
func promptSettings(cfg *config.Config) error {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	ask := func(label string, def, lo, hi int) (int, error) {
		return promptNumber(rl, label, def, lo, hi)
	}

	if cfg.Server.Port, err = ask("Port number", cfg.Server.Port, 1, 65535); err != nil {
		return err
	}
	if cfg.Table.Players, err = ask("Players count", cfg.Table.Players, 0, 10); err != nil {
		return err
	}
	if cfg.Table.Bots, err = ask("Bots count", cfg.Table.Bots, 0, 10-cfg.Table.Players); err != nil {
		return err
	}
	if cfg.Table.StartingStack, err = ask("Money per player", cfg.Table.StartingStack, 1, 1<<30); err != nil {
		return err
	}
	if cfg.Table.SmallBlind, err = ask("Small blind", cfg.Table.SmallBlind, 1, 1<<30); err != nil {
		return err
	}
	if cfg.Table.BigBlind, err = ask("Big blind", cfg.Table.BigBlind, cfg.Table.SmallBlind, 1<<30); err != nil {
		return err
	}
	return nil
}

func promptNumber(rl *readline.Instance, label string, def, lo, hi int) (int, error) {
	rl.SetPrompt(promptStyle.Render(fmt.Sprintf("%s[%d]: ", label, def)))
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("settings prompt aborted")
		}
		if err != nil {
			return 0, err
		}
		if n, ok := parseNumber(line, def, lo, hi); ok {
			return n, nil
		}
		fmt.Fprintln(rl.Stdout(), errorStyle.Render(fmt.Sprintf("Try again: enter a number from %d to %d", lo, hi)))
	}
}

// parseNumber reads a prompt answer. Blank input takes def.
func parseNumber(input string, def, lo, hi int) (int, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return def, true
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}
