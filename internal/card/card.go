package card

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Ranks is the rank alphabet, lowest first.
const Ranks = "23456789TJQKA"

// Suits is the suit alphabet.
const Suits = "shdc"

// ErrInvalidCard is returned when a card code cannot be parsed
var ErrInvalidCard = errors.New("invalid card")

// Rank is a position in the Ranks alphabet (0 = Two, 12 = Ace)
type Rank int8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// noRank marks the sentinel card below Two.
const noRank Rank = -1

// String returns the rank symbol
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return Ranks[r : r+1]
}

// Suit is a position in the Suits alphabet
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the suit symbol
func (s Suit) String() string {
	if int(s) >= len(Suits) {
		return "?"
	}
	return Suits[s : s+1]
}

// Card is an immutable rank+suit identity. Ordering and Equal consider the
// rank only; use Same when the suit matters.
type Card struct {
	rank Rank
	suit Suit
}

// None is the "no predecessor" sentinel returned by Prev on a Two.
var None = Card{rank: noRank}

// New builds a card from a rank and suit
func New(rank Rank, suit Suit) Card {
	return Card{rank: rank, suit: suit}
}

// Parse reads a two-character code such as "Ah" or "Ts". The legacy "D"
// symbol is accepted for Queen.
func Parse(code string) (Card, error) {
	if len(code) != 2 {
		return None, fmt.Errorf("%w: %q", ErrInvalidCard, code)
	}
	r := strings.IndexByte(Ranks, code[0])
	if code[0] == 'D' {
		r = int(Queen)
	}
	if r < 0 {
		return None, fmt.Errorf("%w: bad rank in %q", ErrInvalidCard, code)
	}
	s := strings.IndexByte(Suits, code[1])
	if s < 0 {
		return None, fmt.Errorf("%w: bad suit in %q", ErrInvalidCard, code)
	}
	return Card{rank: Rank(r), suit: Suit(s)}, nil
}

// MustParse is like Parse but panics on error
func MustParse(code string) Card {
	c, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseAll parses each code in turn
func ParseAll(codes ...string) ([]Card, error) {
	cards := make([]Card, 0, len(codes))
	for _, code := range codes {
		c, err := Parse(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseAll is like ParseAll but panics on error
func MustParseAll(codes ...string) []Card {
	cards, err := ParseAll(codes...)
	if err != nil {
		panic(err)
	}
	return cards
}

// Rank returns the card's rank
func (c Card) Rank() Rank { return c.rank }

// Suit returns the card's suit
func (c Card) Suit() Suit { return c.suit }

// IsNone reports whether c is the sentinel card
func (c Card) IsNone() bool { return c.rank == noRank }

// String renders the two-character code
func (c Card) String() string {
	if c.IsNone() {
		return "--"
	}
	return c.rank.String() + c.suit.String()
}

// Less orders by rank only
func (c Card) Less(o Card) bool { return c.rank < o.rank }

// Equal compares ranks only
func (c Card) Equal(o Card) bool { return c.rank == o.rank }

// Same compares rank and suit
func (c Card) Same(o Card) bool { return c.rank == o.rank && c.suit == o.suit }

// Compare returns -1, 0 or 1 comparing ranks only
func (c Card) Compare(o Card) int {
	switch {
	case c.rank < o.rank:
		return -1
	case c.rank > o.rank:
		return 1
	}
	return 0
}

// Prev returns the card one rank lower in the same suit, or None below Two.
// There is no wraparound from Two to Ace.
func (c Card) Prev() Card {
	if c.rank <= Two {
		return None
	}
	return Card{rank: c.rank - 1, suit: c.suit}
}

// SortDesc sorts cards by descending rank, keeping input order among equal ranks
func SortDesc(cards []Card) {
	slices.SortStableFunc(cards, func(a, b Card) int { return b.Compare(a) })
}

// Join renders cards separated by spaces
func Join(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
