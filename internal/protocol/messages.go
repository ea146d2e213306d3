// Package protocol implements the newline-terminated text protocol spoken
// between the table and its clients. Every line is a verb followed by
// space-separated arguments.
package protocol

import (
	"strconv"
	"strings"
)

// Verb identifies a line on the wire
type Verb = string

const (
	// Client -> Server
	VerbReady = "READY"
	VerbBet   = "BET"
	VerbFold  = "FOLD"

	// Server -> Client
	VerbStart    = "START"
	VerbRound    = "ROUND"
	VerbCards    = "CARDS"
	VerbDealer   = "DEALER"
	VerbCard     = "CARD"
	VerbSBlind   = "SBLIND"
	VerbBBlind   = "BBLIND"
	VerbMove     = "MOVE"
	VerbWon      = "WON"
	VerbEndCards = "ENDCARDS"
)

// LastStanding is the category reported in WON when everyone else folded
const LastStanding = "LAST"

// Command is a decoded client line
type Command interface {
	command()
}

// Ready binds the sender's display name during the lobby
type Ready struct {
	Name string
}

// Bet sets the sender's total wager for the street
type Bet struct {
	Amount int
}

// Fold gives up the hand
type Fold struct{}

// Unknown is any line that is not a well-formed client command
type Unknown struct {
	Raw string
}

func (Ready) command()   {}
func (Bet) command()     {}
func (Fold) command()    {}
func (Unknown) command() {}

// Parse decodes a client line. Unrecognised verbs, missing arguments and
// arguments that do not convert all yield Unknown; Parse never fails.
// Extra trailing arguments are ignored.
func Parse(line string) Command {
	l := Decode(line)
	unknown := Unknown{Raw: strings.TrimSpace(line)}

	switch l.Verb {
	case VerbReady:
		if len(l.Args) < 1 {
			return unknown
		}
		return Ready{Name: l.Args[0]}
	case VerbBet:
		if len(l.Args) < 1 {
			return unknown
		}
		amount, err := strconv.Atoi(l.Args[0])
		if err != nil || amount < 0 {
			return unknown
		}
		return Bet{Amount: amount}
	case VerbFold:
		return Fold{}
	}
	return unknown
}

// String renders the command back into its wire form
func (r Ready) String() string   { return NewLine(VerbReady, r.Name).String() }
func (b Bet) String() string     { return NewLine(VerbBet, strconv.Itoa(b.Amount)).String() }
func (Fold) String() string      { return VerbFold }
func (u Unknown) String() string { return u.Raw }
