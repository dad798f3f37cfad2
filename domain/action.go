package domain

import (
	"fmt"
	"sort"
)

// Street names one betting round
type Street string

const (
	StreetFirst  Street = "first betting round"
	StreetSecond Street = "second betting round"
)

// Phases reported on turn and timeout events besides the two streets
const (
	PhaseDraw   = "draw"
	PhaseReveal = "reveal"
)

type ActionType string

const (
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionBet   ActionType = "bet"
	ActionRaise ActionType = "raise"
	ActionFold  ActionType = "fold"
	ActionAllIn ActionType = "all-in"
	ActionQuit  ActionType = "quit"
)

// Action is a betting decision. Amount is the bet size for a bet and the
// raise on top of the call for a raise. Reveal lists card positions shown on a fold.
type Action struct {
	Type   ActionType
	Amount int
	Reveal []int
}

func Check() Action           { return Action{Type: ActionCheck} }
func Call() Action            { return Action{Type: ActionCall} }
func Bet(amount int) Action   { return Action{Type: ActionBet, Amount: amount} }
func Raise(amount int) Action { return Action{Type: ActionRaise, Amount: amount} }
func AllIn() Action           { return Action{Type: ActionAllIn} }
func Quit() Action            { return Action{Type: ActionQuit} }

// Fold gives up the hand, optionally showing the cards at the given positions
func Fold(reveal ...int) Action {
	return Action{Type: ActionFold, Reveal: reveal}
}

func (a Action) String() string {
	switch a.Type {
	case ActionBet, ActionRaise:
		return fmt.Sprintf("%s %d", a.Type, a.Amount)
	default:
		return string(a.Type)
	}
}

// DrawAction is a draw-phase decision: the positions to discard, or a quit.
// No positions means standing pat.
type DrawAction struct {
	Discard []int
	Quit    bool
}

func StandPat() DrawAction { return DrawAction{} }

func Discard(positions ...int) DrawAction {
	return DrawAction{Discard: positions}
}

// BetOptions is the menu offered to the seat to act, computed from the round state
type BetOptions struct {
	Street     Street
	CurrentBet int
	RoundBet   int
	ToCall     int // capped at the player's chips
	Chips      int
	MinBet     int
	Pot        int
	CanCheck   bool
	CanBet     bool // no outstanding bet and a bet can be answered
	CanRaise   bool // outstanding bet and a full raise is possible
	CanAllIn   bool
}

// Allows reports whether the action type is on the menu
func (o BetOptions) Allows(t ActionType) bool {
	switch t {
	case ActionCheck:
		return o.CanCheck
	case ActionCall:
		return o.ToCall > 0
	case ActionBet:
		return o.CanBet
	case ActionRaise:
		return o.CanRaise
	case ActionAllIn:
		return o.CanAllIn
	case ActionFold, ActionQuit:
		return true
	default:
		return false
	}
}

// CallIsAllIn reports whether calling puts the player all-in
func (o BetOptions) CallIsAllIn() bool {
	return o.ToCall > 0 && o.ToCall >= o.Chips
}

// sanitizeIndices keeps unique positions within [0, n), sorted
func sanitizeIndices(indices []int, n int) []int {
	seen := make(map[int]bool, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= n || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	sort.Ints(out)
	if len(out) == 0 {
		return nil
	}
	return out
}
