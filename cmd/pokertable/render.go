package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokertable/internal/card"
	"github.com/lox/pokertable/internal/protocol"
)

var (
	verbStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	blackCard    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	redCard      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	winStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	categoryText = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// renderLine styles a server line for the terminal. Card codes are
// coloured by suit.
func renderLine(raw string) string {
	l := protocol.Decode(raw)
	if l.Verb == "" {
		return raw
	}

	style := verbStyle
	if l.Verb == protocol.VerbWon {
		style = winStyle
	}
	parts := make([]string, 0, len(l.Args)+1)
	parts = append(parts, style.Render(l.Verb))
	for _, arg := range l.Args {
		parts = append(parts, renderArg(l.Verb, arg))
	}
	return strings.Join(parts, " ")
}

func renderArg(verb, arg string) string {
	switch verb {
	case protocol.VerbCards, protocol.VerbCard, protocol.VerbEndCards:
		if c, err := card.Parse(arg); err == nil {
			return renderCard(c)
		}
	}
	return arg
}

func renderCard(c card.Card) string {
	if c.Suit() == card.Hearts || c.Suit() == card.Diamonds {
		return redCard.Render(c.String())
	}
	return blackCard.Render(c.String())
}

func renderCards(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}
