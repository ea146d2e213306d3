// Package hand classifies card sets into poker hand categories.
//
// FindAll returns every hand a card set supports rather than only the best
// one. Hands compare by category and then by their single highest card;
// kickers are deliberately ignored, and the showdown resolves remaining ties
// by walking further down each player's catalogue.
package hand

import (
	"slices"

	"github.com/lox/pokertable/internal/card"
)

// Hand is one category a card set supports, with its member cards in
// descending rank order.
type Hand struct {
	Category Category
	Cards    []card.Card
	Owner    int
}

func newHand(category Category, owner int, cards []card.Card) Hand {
	members := make([]card.Card, len(cards))
	copy(members, cards)
	card.SortDesc(members)
	return Hand{Category: category, Cards: members, Owner: owner}
}

// Top returns the highest member card
func (h Hand) Top() card.Card {
	if len(h.Cards) == 0 {
		return card.None
	}
	return h.Cards[0]
}

// Compare orders hands by category and then by top card only.
// It returns -1, 0 or 1.
func Compare(a, b Hand) int {
	switch {
	case a.Category < b.Category:
		return -1
	case a.Category > b.Category:
		return 1
	}
	return a.Top().Compare(b.Top())
}

// Equal reports whether two hands tie under Compare
func (h Hand) Equal(o Hand) bool {
	return Compare(h, o) == 0
}

// String renders the hand for logs
func (h Hand) String() string {
	return h.Category.String() + " [" + card.Join(h.Cards) + "]"
}

// WithOwner returns a copy of the hand tagged with a new owner
func (h Hand) WithOwner(owner int) Hand {
	h.Owner = owner
	return h
}

// FindAll returns every hand the cards support, sorted ascending and with
// adjacent equal hands collapsed to one.
func FindAll(owner int, cards []card.Card) []Hand {
	var hands []Hand

	for _, start := range cards {
		if run, ok := chase(start, cards, true); ok {
			hands = append(hands, newHand(StraightFlush, owner, run))
		}
	}

	for suit := card.Spades; suit <= card.Clubs; suit++ {
		var suited []card.Card
		for _, c := range cards {
			if c.Suit() == suit {
				suited = append(suited, c)
			}
		}
		if len(suited) >= 5 {
			hands = append(hands, newHand(Flush, owner, suited))
		}
	}

	for _, start := range cards {
		if run, ok := chase(start, cards, false); ok {
			hands = append(hands, newHand(Straight, owner, run))
		}
	}

	var threes, pairs [][]card.Card
	for _, c := range cards {
		var group []card.Card
		for _, o := range cards {
			if o.Equal(c) {
				group = append(group, o)
			}
		}
		switch len(group) {
		case 4:
			hands = append(hands, newHand(FourOfAKind, owner, group))
		case 3:
			hands = append(hands, newHand(ThreeOfAKind, owner, group))
			threes = append(threes, group)
		case 2:
			hands = append(hands, newHand(Pair, owner, group))
			pairs = append(pairs, group)
		}
	}

	for _, three := range threes {
		for _, pair := range pairs {
			hands = append(hands, newHand(FullHouse, owner, concat(three, pair)))
		}
	}

	for i, first := range pairs {
		for j, second := range pairs {
			if i == j || sameCards(first, second) {
				continue
			}
			hands = append(hands, newHand(TwoPair, owner, concat(first, second)))
		}
	}

	for _, c := range cards {
		hands = append(hands, newHand(HighCard, owner, []card.Card{c}))
	}

	slices.SortStableFunc(hands, Compare)
	return slices.CompactFunc(hands, Hand.Equal)
}

// Best returns the strongest hand the cards support
func Best(owner int, cards []card.Card) (Hand, bool) {
	hands := FindAll(owner, cards)
	if len(hands) == 0 {
		return Hand{}, false
	}
	return hands[len(hands)-1], true
}

// chase follows start down four rank predecessors. With suited set the
// predecessors must share start's suit.
func chase(start card.Card, cards []card.Card, suited bool) ([]card.Card, bool) {
	run := []card.Card{start}
	cur := start
	for len(run) < 5 {
		want := cur.Prev()
		if want.IsNone() {
			return nil, false
		}
		next, ok := find(cards, want, suited)
		if !ok {
			return nil, false
		}
		run = append(run, next)
		cur = next
	}
	return run, true
}

func find(cards []card.Card, want card.Card, suited bool) (card.Card, bool) {
	for _, c := range cards {
		if suited && c.Same(want) {
			return c, true
		}
		if !suited && c.Equal(want) {
			return c, true
		}
	}
	return card.None, false
}

func concat(a, b []card.Card) []card.Card {
	out := make([]card.Card, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// sameCards compares two groups by card identity
func sameCards(a, b []card.Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Same(b[i]) {
			return false
		}
	}
	return true
}
