package cards

import "strings"

// Stack represents multiple cards
type Stack []Card

// NewStack creates a new stack from the given cards
func NewStack(cards ...Card) Stack {
	return cards
}

// String joins the cards with spaces, e.g. "A♠ 10♥ 2♣"
func (s Stack) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Contains reports whether the stack holds the card
func (s Stack) Contains(card Card) bool {
	for _, c := range s {
		if c.Equals(card) {
			return true
		}
	}
	return false
}

// Pick returns the cards at the given positions, skipping positions out of range
func (s Stack) Pick(indices []int) Stack {
	picked := make(Stack, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(s) {
			picked = append(picked, s[i])
		}
	}
	return picked
}

// Clone returns a copy that does not share the backing array
func (s Stack) Clone() Stack {
	out := make(Stack, len(s))
	copy(out, s)
	return out
}
