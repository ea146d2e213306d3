// Package fasteval maps a card set to one of the 7462 ordered strength
// classes of the lookup-table evaluator. Class 1 is a royal flush and 7462
// the worst high card. The table does not decide showdowns with it; it is a
// diagnostic alongside hand.FindAll.
package fasteval

import (
	"fmt"

	"github.com/chehsunliu/poker"

	"github.com/lox/pokertable/internal/card"
	"github.com/lox/pokertable/internal/hand"
)

// Class is an evaluator strength class, lower is stronger
type Class int32

// Worst is the weakest class the evaluator produces
const Worst Class = 7462

// upper bounds of each category's class range, strongest first
var bounds = []struct {
	max      Class
	category hand.Category
}{
	{10, hand.StraightFlush},
	{166, hand.FourOfAKind},
	{322, hand.FullHouse},
	{1599, hand.Flush},
	{1609, hand.Straight},
	{2467, hand.ThreeOfAKind},
	{3325, hand.TwoPair},
	{6185, hand.Pair},
	{Worst, hand.HighCard},
}

// Evaluate returns the class of the best five-card hand in cards. It needs
// between five and seven cards.
func Evaluate(cards []card.Card) (Class, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return 0, fmt.Errorf("evaluate %d cards: need 5 to 7", len(cards))
	}
	converted := make([]poker.Card, len(cards))
	for i, c := range cards {
		if c.IsNone() {
			return 0, fmt.Errorf("evaluate: %w: no card at %d", card.ErrInvalidCard, i)
		}
		converted[i] = poker.NewCard(c.String())
	}
	return Class(poker.Evaluate(converted)), nil
}

// Category returns the hand category the class falls into
func (c Class) Category() hand.Category {
	for _, b := range bounds {
		if c <= b.max {
			return b.category
		}
	}
	return hand.HighCard
}

// Beats reports whether c is strictly stronger than o
func (c Class) Beats(o Class) bool {
	return c < o
}

func (c Class) String() string {
	return poker.RankString(int32(c))
}
