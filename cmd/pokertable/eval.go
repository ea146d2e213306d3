package main

import (
	"fmt"
	"strings"

	"github.com/lox/pokertable/internal/card"
	"github.com/lox/pokertable/internal/fasteval"
	"github.com/lox/pokertable/internal/hand"
)

// EvalCmd prints the hand catalogue for a card set
type EvalCmd struct {
	Cards []string `arg:"" help:"Card codes such as Ah Kd Ts (D is accepted for queen)"`
}

func (c *EvalCmd) Run() error {
	var codes []string
	for _, arg := range c.Cards {
		codes = append(codes, strings.Fields(arg)...)
	}
	cards, err := card.ParseAll(codes...)
	if err != nil {
		return err
	}
	fmt.Println(describe(cards))
	return nil
}

// describe renders every hand the cards support, strongest first, then the
// evaluator class when the set is large enough
func describe(cards []card.Card) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Cards: "))
	b.WriteString(renderCards(cards))
	b.WriteByte('\n')

	hands := hand.FindAll(0, cards)
	for i := len(hands) - 1; i >= 0; i-- {
		h := hands[i]
		fmt.Fprintf(&b, "  %-16s %s\n", categoryText.Render(h.Category.String()), renderCards(h.Cards))
	}

	if class, err := fasteval.Evaluate(cards); err == nil {
		fmt.Fprintf(&b, "%s %d (%s)\n", headerStyle.Render("Class:"), int(class), class)
	}
	return strings.TrimRight(b.String(), "\n")
}
