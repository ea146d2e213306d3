package card

import (
	rand "math/rand/v2"
)

// Generate forms the cross product of the rank and suit alphabets and
// returns it shuffled. Symbols that are not in Ranks or Suits are skipped.
func Generate(ranks, suits string, rng *rand.Rand) []Card {
	cards := make([]Card, 0, len(ranks)*len(suits))
	for i := 0; i < len(ranks); i++ {
		for j := 0; j < len(suits); j++ {
			c, err := Parse(string([]byte{ranks[i], suits[j]}))
			if err != nil {
				continue
			}
			cards = append(cards, c)
		}
	}
	Shuffle(cards, rng)
	return cards
}

// Shuffle permutes cards in place using Fisher-Yates
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deck is a shuffled 52-card deck dealt from the top
type Deck struct {
	cards []Card
}

// NewDeck returns a freshly shuffled standard deck
func NewDeck(rng *rand.Rand) *Deck {
	return &Deck{cards: Generate(Ranks, Suits, rng)}
}

// NewStackedDeck returns a deck that deals cards in the given order.
// Used by tests that need a known deal.
func NewStackedDeck(cards []Card) *Deck {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Deck{cards: stacked}
}

// Draw removes and returns the top card
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return None, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards)
}
