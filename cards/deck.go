package cards

import (
	"errors"
	"math/rand"
	"time"
)

// ErrDeckEmpty is returned when dealing from an exhausted deck
var ErrDeckEmpty = errors.New("deck is empty")

// Deck is a single 52-card deck for one hand. Cards are dealt from the end.
type Deck struct {
	cards Stack
}

// NewDeck52 creates a standard, unshuffled deck of 52 cards
func NewDeck52() Stack {
	deck := make(Stack, 0, 52)
	for _, suit := range Suits {
		for _, value := range Values {
			deck = append(deck, Card{Suit: suit, Value: value})
		}
	}
	return deck
}

// NewDeck creates a shuffled deck. A nil source seeds from the clock.
func NewDeck(r *rand.Rand) *Deck {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cards := NewDeck52()
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Deck{cards: cards}
}

// NewOrderedDeck creates a deck that deals the given cards in order, first card first
func NewOrderedDeck(order Stack) *Deck {
	cards := make(Stack, len(order))
	for i, c := range order {
		cards[len(order)-1-i] = c
	}
	return &Deck{cards: cards}
}

// Deal removes and returns the last card of the deck
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckEmpty
	}

	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Len returns the number of cards left
func (d *Deck) Len() int {
	return len(d.cards)
}
