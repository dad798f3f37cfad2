package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lazharichir/drawpoker/cards"
)

// ErrTimeout is returned by a Decider when no decision arrived before the deadline.
// context.DeadlineExceeded is treated the same way.
var ErrTimeout = errors.New("decision timed out")

// IsTimeout reports whether err means the seat ran out of time
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// BetTurn is everything a seat needs to decide a betting action
type BetTurn struct {
	Player   PlayerView
	Hand     cards.Stack
	Options  BetOptions
	Table    TableView
	Deadline time.Time // zero when there is no time limit
	Rejected string    // why the previous answer this turn was refused
}

// DrawTurn is everything a seat needs to decide what to discard
type DrawTurn struct {
	Player      PlayerView
	Hand        cards.Stack
	MaxDiscards int
	Table       TableView
	Deadline    time.Time
	Rejected    string
}

// RevealTurn offers an uncontested winner the chance to show their cards
type RevealTurn struct {
	Player   PlayerView
	Hand     cards.Stack
	Deadline time.Time
}

// Decider is how the table learns what a seat chose. Implementations block
// until they have an answer or ctx is done, and return ErrTimeout (or the
// context's error) when the deadline passes first.
type Decider interface {
	DecideBet(ctx context.Context, turn BetTurn) (Action, error)
	DecideDraw(ctx context.Context, turn DrawTurn) (DrawAction, error)
	ChooseReveal(ctx context.Context, turn RevealTurn) ([]int, error)
}
