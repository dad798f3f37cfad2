package domain

import (
	"fmt"

	"github.com/lazharichir/drawpoker/cards"
	"github.com/lazharichir/drawpoker/domain/hands"
)

// Player represents a seat at the table and its per-hand bookkeeping
type Player struct {
	ID    string
	Name  string
	Seat  int
	Chips int

	// per hand
	Hand           *hands.Hand // nil when not dealt in
	Folded         bool
	AllIn          bool
	RoundBet       int // contributed this betting round
	TotalBet       int // contributed this hand
	LastAction     string
	RevealedOnFold []int
}

// NewPlayer creates a new player with the given ID and name
func NewPlayer(id string, name string, startingChips int) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Chips: startingChips,
	}
}

// ResetForHand clears every per-hand field and hands the player an empty hand
func (p *Player) ResetForHand() {
	p.Hand = hands.NewHand()
	p.Folded = false
	p.AllIn = false
	p.RoundBet = 0
	p.TotalBet = 0
	p.LastAction = ""
	p.RevealedOnFold = nil
}

// SitOut marks a player without chips as out of the hand
func (p *Player) SitOut() {
	p.ResetForHand()
	p.Hand = nil
	p.Folded = true
}

// InHand reports whether the player still holds a live hand
func (p *Player) InHand() bool {
	return !p.Folded && p.Hand != nil
}

// CanAct reports whether the player can still bet, call or fold
func (p *Player) CanAct() bool {
	return p.InHand() && !p.AllIn && p.Chips > 0
}

// commit moves up to amount chips from the stack into the contribution
// counters and returns what was moved. Emptying the stack puts the player all-in.
func (p *Player) commit(amount int) int {
	if amount < 0 {
		panic(fmt.Sprintf("domain: negative commit %d for %s", amount, p.Name))
	}
	if amount > p.Chips {
		amount = p.Chips
	}

	p.Chips -= amount
	p.RoundBet += amount
	p.TotalBet += amount

	if p.Chips == 0 && p.InHand() {
		p.AllIn = true
	}

	return amount
}

// fold gives up the hand, remembering which cards were shown
func (p *Player) fold(reveal []int) cards.Stack {
	p.Folded = true
	p.RevealedOnFold = sanitizeIndices(reveal, p.handLen())
	if p.Hand == nil {
		return nil
	}
	return p.Hand.Pick(p.RevealedOnFold)
}

func (p *Player) handLen() int {
	if p.Hand == nil {
		return 0
	}
	return p.Hand.Len()
}

// ShownCards returns the cards a folded player chose to show
func (p *Player) ShownCards() cards.Stack {
	if p.Hand == nil || len(p.RevealedOnFold) == 0 {
		return nil
	}
	return p.Hand.Pick(p.RevealedOnFold)
}
