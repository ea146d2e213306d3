package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertable/internal/protocol"
)

// ClientCmd pipes terminal lines to a table and prints what it sends back
type ClientCmd struct {
	Addr string `default:"127.0.0.1:9001" help:"Table address"`
	Name string `help:"Send READY with this name on connect"`
}

func (c *ClientCmd) Run() error {
	conn, err := net.Dial("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.Addr, err)
	}
	defer conn.Close()

	completer := readline.NewPrefixCompleter(
		readline.PcItem(protocol.VerbReady),
		readline.PcItem(protocol.VerbBet),
		readline.PcItem(protocol.VerbFold),
	)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptStyle.Render("> "),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), headerStyle.Render("Connected to "+c.Addr))
	if c.Name != "" {
		if err := writeLine(conn, protocol.Ready{Name: c.Name}.String()); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		defer rl.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			fmt.Fprintln(rl.Stdout(), renderLine(scanner.Text()))
		}
		fmt.Fprintln(rl.Stdout(), errorStyle.Render("Connection closed"))
		return scanner.Err()
	})
	g.Go(func() error {
		defer conn.Close()
		for ctx.Err() == nil {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if err := writeLine(conn, line); err != nil {
				return err
			}
		}
		return nil
	})

	err = g.Wait()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func writeLine(w io.Writer, line string) error {
	_, err := io.WriteString(w, line+"\n")
	return err
}
