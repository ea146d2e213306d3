package hand

// Category is the class of a hand, ordered worst to best
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Categories lists every category from worst to best
var Categories = []Category{
	HighCard, Pair, TwoPair, ThreeOfAKind, Straight,
	Flush, FullHouse, FourOfAKind, StraightFlush,
}

var categoryNames = [...]string{
	"High Card", "Pair", "Two Pair", "Three of a Kind", "Straight",
	"Flush", "Full House", "Four of a Kind", "Straight Flush",
}

var categoryCodes = [...]string{
	"CARD", "PAIR", "TWOPAIR", "THREE", "STRAIGHT",
	"FLUSH", "FULLHOUSE", "FOUR", "SFLUSH",
}

// String returns a human-readable name
func (c Category) String() string {
	if c < HighCard || c > StraightFlush {
		return "Unknown"
	}
	return categoryNames[c]
}

// Code returns the token used for the category on the wire
func (c Category) Code() string {
	if c < HighCard || c > StraightFlush {
		return "UNKNOWN"
	}
	return categoryCodes[c]
}
