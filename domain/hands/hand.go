package hands

import (
	"errors"

	"github.com/lazharichir/drawpoker/cards"
)

// Size is the number of cards in a complete hand
const Size = 5

var ErrHandFull = errors.New("hand already holds five cards")

// Hand is the ordered set of cards a player holds during one hand
type Hand struct {
	cards cards.Stack
}

// NewHand creates a hand holding the given cards
func NewHand(initial ...cards.Card) *Hand {
	h := &Hand{cards: make(cards.Stack, 0, Size)}
	h.cards = append(h.cards, initial...)
	return h
}

// Add appends a card to the hand
func (h *Hand) Add(card cards.Card) error {
	if len(h.cards) >= Size {
		return ErrHandFull
	}
	h.cards = append(h.cards, card)
	return nil
}

// Discard removes the cards at the given positions and returns them.
// Duplicate and out-of-range positions are ignored; remaining cards keep their order.
func (h *Hand) Discard(indices []int) cards.Stack {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(h.cards) {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return nil
	}

	discarded := make(cards.Stack, 0, len(drop))
	kept := make(cards.Stack, 0, Size)
	for i, c := range h.cards {
		if drop[i] {
			discarded = append(discarded, c)
			continue
		}
		kept = append(kept, c)
	}
	h.cards = kept

	return discarded
}

// Cards returns a copy of the cards in hand order
func (h *Hand) Cards() cards.Stack {
	return h.cards.Clone()
}

// Pick returns the cards at the given positions
func (h *Hand) Pick(indices []int) cards.Stack {
	return h.cards.Pick(indices)
}

func (h *Hand) Len() int {
	return len(h.cards)
}

// IsComplete reports whether the hand can be evaluated
func (h *Hand) IsComplete() bool {
	return len(h.cards) == Size
}

// Evaluate ranks the hand; it panics unless the hand is complete
func (h *Hand) Evaluate() Evaluation {
	return Evaluate(h.cards)
}

func (h *Hand) String() string {
	return h.cards.String()
}
