package protocol

import (
	"strconv"
	"strings"
	"sync"

	"github.com/lox/pokertable/internal/card"
)

// Line is a verb with its positional arguments
type Line struct {
	Verb Verb
	Args []string
}

// NewLine builds a line from a verb and arguments
func NewLine(verb Verb, args ...string) Line {
	return Line{Verb: verb, Args: args}
}

// Decode splits a raw line into verb and arguments. Surrounding whitespace
// and the trailing newline are dropped; runs of spaces separate nothing.
func Decode(raw string) Line {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Line{}
	}
	return Line{Verb: fields[0], Args: fields[1:]}
}

var builderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// String encodes the line without its terminating newline
func (l Line) String() string {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	defer builderPool.Put(b)

	b.WriteString(l.Verb)
	for _, arg := range l.Args {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	return b.String()
}

// Arg returns the i-th argument or "" when absent
func (l Line) Arg(i int) string {
	if i < 0 || i >= len(l.Args) {
		return ""
	}
	return l.Args[i]
}

// IntArg converts the i-th argument to an int
func (l Line) IntArg(i int) (int, bool) {
	n, err := strconv.Atoi(l.Arg(i))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Start announces the seated roster in seat order
func Start(names []string) string {
	args := append([]string{strconv.Itoa(len(names))}, names...)
	return NewLine(VerbStart, args...).String()
}

// Round announces the carried bank and every seat's stack
func Round(bank int, stacks []int) string {
	args := make([]string, 0, len(stacks)+1)
	args = append(args, strconv.Itoa(bank))
	for _, s := range stacks {
		args = append(args, strconv.Itoa(s))
	}
	return NewLine(VerbRound, args...).String()
}

// Cards privately deals a participant's hole cards
func Cards(hole [2]card.Card) string {
	return NewLine(VerbCards, hole[0].String(), hole[1].String()).String()
}

// Dealer names the dealer for the hand
func Dealer(name string) string {
	return NewLine(VerbDealer, name).String()
}

// Card reveals one community card
func Card(c card.Card) string {
	return NewLine(VerbCard, c.String()).String()
}

// SBlind reports the small blind posting
func SBlind(name string, amount int) string {
	return NewLine(VerbSBlind, name, strconv.Itoa(amount)).String()
}

// BBlind reports the big blind posting
func BBlind(name string, amount int) string {
	return NewLine(VerbBBlind, name, strconv.Itoa(amount)).String()
}

// Move tells everyone whose turn it is
func Move(name string) string {
	return NewLine(VerbMove, name).String()
}

// BetMade reports a wager. The amount comes before the name, unlike the
// blind lines.
func BetMade(amount int, name string) string {
	return NewLine(VerbBet, strconv.Itoa(amount), name).String()
}

// Folded reports a fold
func Folded(name string) string {
	return NewLine(VerbFold, name).String()
}

// Won reports a payout and the category that won it
func Won(name string, amount int, category string) string {
	return NewLine(VerbWon, name, strconv.Itoa(amount), category).String()
}

// EndCards shows a participant's hole cards face up
func EndCards(name string, hole [2]card.Card) string {
	return NewLine(VerbEndCards, name, hole[0].String(), hole[1].String()).String()
}
