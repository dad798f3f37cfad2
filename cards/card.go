package cards

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// CardFromString creates a card from a string representation
// e.g., "10♠" or "10s" or "Ts" or "TS" -> Card{Suit: Spades, Value: Ten}
func CardFromString(s string) (Card, error) {
	if utf8.RuneCountInString(s) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %q", s)
	}

	last, size := utf8.DecodeLastRuneInString(s)

	var suit Suit
	switch last {
	case '♠', 's', 'S':
		suit = Spades
	case '♥', 'h', 'H':
		suit = Hearts
	case '♦', 'd', 'D':
		suit = Diamonds
	case '♣', 'c', 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %q", string(last))
	}

	raw := strings.ToUpper(s[:len(s)-size])
	if raw == "T" {
		raw = string(Ten)
	}

	value := Value(raw)
	if value.Rank() == 0 {
		return Card{}, fmt.Errorf("invalid card value: %q", s[:len(s)-size])
	}

	return Card{Suit: suit, Value: value}, nil
}

// MustParse builds a stack from space-separated shorthands and panics on a bad card.
// Meant for fixtures.
func MustParse(s string) Stack {
	var stack Stack
	for _, field := range strings.Fields(s) {
		c, err := CardFromString(field)
		if err != nil {
			panic(err)
		}
		stack = append(stack, c)
	}
	return stack
}

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Suits lists every suit in deck-building order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Value represents a card value
type Value string

const (
	Ace   Value = "A"
	King  Value = "K"
	Queen Value = "Q"
	Jack  Value = "J"
	Ten   Value = "10"
	Nine  Value = "9"
	Eight Value = "8"
	Seven Value = "7"
	Six   Value = "6"
	Five  Value = "5"
	Four  Value = "4"
	Three Value = "3"
	Two   Value = "2"
)

// Values lists every value from lowest to highest
var Values = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Rank returns the numeric rank of the value (2..14, ace high), or 0 if unknown.
func (v Value) Rank() int {
	for i, candidate := range Values {
		if candidate == v {
			return i + 2
		}
	}
	return 0
}

// ValueOfRank is the inverse of Value.Rank.
func ValueOfRank(rank int) Value {
	if rank == 1 {
		rank = 14
	}
	if rank < 2 || rank > 14 {
		return ""
	}
	return Values[rank-2]
}

// Card represents a playing card
type Card struct {
	Suit  Suit  `json:"suit"`
	Value Value `json:"value"`
}

// String returns the string representation of a card
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Value, c.Suit)
}

// Rank is shorthand for c.Value.Rank()
func (c Card) Rank() int {
	return c.Value.Rank()
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Value == other.Value
}
