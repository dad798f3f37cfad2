package domain

import (
	"errors"
	"fmt"

	"github.com/lazharichir/drawpoker/cards"
)

var (
	// ErrInvalidAction marks a decision that is rejected without changing any state.
	// The same seat is asked again.
	ErrInvalidAction = errors.New("invalid action")

	// ErrPlayerCannotAct is a programming error: a folded, all-in or busted seat was asked to act.
	ErrPlayerCannotAct = errors.New("player cannot act")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidAction, fmt.Sprintf(format, args...))
}

// Outcome describes what an applied action actually did
type Outcome struct {
	Action     ActionType // after any downgrade
	Amount     int        // chips moved by this action
	RaiseBy    int        // increase of the bet to match
	To         int        // bet to match after the action
	AllIn      bool
	FullRaise  bool // reopened the betting
	Downgraded bool // a raise the player could not afford became a call
	Shown      cards.Stack
}

func (o Outcome) label() string {
	switch {
	case o.Action == ActionFold:
		return "folded"
	case o.Action == ActionCheck:
		return "checked"
	case o.AllIn:
		return fmt.Sprintf("all-in %d", o.Amount)
	case o.Action == ActionCall:
		return fmt.Sprintf("called %d", o.Amount)
	case o.Action == ActionBet:
		return fmt.Sprintf("bet %d", o.Amount)
	case o.Action == ActionRaise:
		return fmt.Sprintf("raised to %d", o.To)
	default:
		return string(o.Action)
	}
}

// BettingRound is the state of one street: the bet to match, the last seat
// to make a full raise, and which seats have acted since that raise.
// Apply is its step function.
type BettingRound struct {
	Street     Street
	MinBet     int
	CurrentBet int
	LastRaiser int // seat, -1 when nobody has raised
	Moved      int // chips put in during this street

	players []*Player
	order   []int // seats with chips, clockwise from the dealer's left
	acted   map[int]bool
	cursor  int // index in order where the search for the next seat starts
}

// NewBettingRound opens a street. Seats are indexed by Player.Seat.
func NewBettingRound(street Street, players []*Player, dealer, minBet int) *BettingRound {
	for _, p := range players {
		p.RoundBet = 0
		if p.InHand() {
			p.LastAction = ""
		}
	}

	return &BettingRound{
		Street:     street,
		MinBet:     minBet,
		LastRaiser: -1,
		players:    players,
		order:      seatOrder(players, dealer+1, func(p *Player) bool { return p.Chips > 0 }),
		acted:      make(map[int]bool, len(players)),
	}
}

// Order returns the seats taking part in this street, in turn order
func (r *BettingRound) Order() []int {
	out := make([]int, len(r.order))
	copy(out, r.order)
	return out
}

// ActedSinceRaise reports whether the seat has acted since the last full raise
func (r *BettingRound) ActedSinceRaise(seat int) bool {
	return r.acted[seat]
}

func (r *BettingRound) owed(p *Player) int {
	if p.RoundBet >= r.CurrentBet {
		return 0
	}
	return r.CurrentBet - p.RoundBet
}

func (r *BettingRound) actors() int {
	n := 0
	for _, p := range r.players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

// needsToAct reports whether the seat still has an obligation this street:
// chips to match, or no action since the last full raise. A lone seat that
// can act and owes nothing has nobody left to bet against.
func (r *BettingRound) needsToAct(p *Player, actors int) bool {
	if !p.CanAct() {
		return false
	}
	if r.owed(p) > 0 {
		return true
	}
	return !r.acted[p.Seat] && actors > 1
}

// Done reports whether the street is over
func (r *BettingRound) Done() bool {
	if liveHands(r.players) < 2 {
		return true
	}

	actors := r.actors()
	for _, seat := range r.order {
		if r.needsToAct(r.players[seat], actors) {
			return false
		}
	}
	return true
}

// NextToAct returns the next seat in turn order with an obligation
func (r *BettingRound) NextToAct() (*Player, bool) {
	if len(r.order) == 0 || r.Done() {
		return nil, false
	}

	actors := r.actors()
	for i := 0; i < len(r.order); i++ {
		idx := (r.cursor + i) % len(r.order)
		p := r.players[r.order[idx]]
		if r.needsToAct(p, actors) {
			r.cursor = idx
			return p, true
		}
	}
	return nil, false
}

// raiseOpen reports whether the seat may put in more than the call: it has not
// acted since the last full raise and someone else could still answer.
func (r *BettingRound) raiseOpen(p *Player) bool {
	if r.acted[p.Seat] {
		return false
	}
	for _, o := range r.players {
		if o != p && o.CanAct() && o.RoundBet+o.Chips > r.CurrentBet {
			return true
		}
	}
	return false
}

// Options computes the menu for the seat
func (r *BettingRound) Options(p *Player) BetOptions {
	owed := r.owed(p)
	toCall := owed
	if toCall > p.Chips {
		toCall = p.Chips
	}
	open := r.raiseOpen(p)

	return BetOptions{
		Street:     r.Street,
		CurrentBet: r.CurrentBet,
		RoundBet:   p.RoundBet,
		ToCall:     toCall,
		Chips:      p.Chips,
		MinBet:     r.MinBet,
		Pot:        potTotal(r.players),
		CanCheck:   owed == 0,
		CanBet:     owed == 0 && open && p.Chips >= r.MinBet,
		CanRaise:   owed > 0 && open && p.Chips-owed >= r.MinBet,
		CanAllIn:   p.Chips > 0 && (p.Chips <= owed || open),
	}
}

// Apply validates and applies one decision of the seat to act. Invalid
// decisions return an error wrapping ErrInvalidAction and leave all state untouched.
func (r *BettingRound) Apply(p *Player, a Action) (Outcome, error) {
	if !p.CanAct() {
		return Outcome{}, fmt.Errorf("%s on %s: %w", a, p.Name, ErrPlayerCannotAct)
	}

	owed := r.owed(p)

	var (
		out Outcome
		err error
	)

	switch a.Type {
	case ActionCheck:
		if owed > 0 {
			return Outcome{}, invalidf("cannot check, %d to call", owed)
		}
		out = Outcome{Action: ActionCheck, To: r.CurrentBet}
	case ActionCall:
		if owed == 0 {
			out = Outcome{Action: ActionCheck, To: r.CurrentBet}
			break
		}
		out = r.put(p, owed, ActionCall)
	case ActionBet, ActionRaise:
		if owed == 0 {
			out, err = r.bet(p, a.Amount)
		} else {
			out, err = r.raise(p, owed, a.Amount)
		}
	case ActionAllIn:
		if p.Chips > owed && !r.raiseOpen(p) {
			return Outcome{}, invalidf("betting is not open to you, call or fold")
		}
		out = r.put(p, p.Chips, ActionAllIn)
	case ActionFold:
		out = Outcome{Action: ActionFold, To: r.CurrentBet, Shown: p.fold(a.Reveal)}
	default:
		return Outcome{}, invalidf("unknown action %q", a.Type)
	}
	if err != nil {
		return Outcome{}, err
	}

	r.acted[p.Seat] = true
	p.LastAction = out.label()
	r.advancePast(p.Seat)

	return out, nil
}

func (r *BettingRound) bet(p *Player, amount int) (Outcome, error) {
	switch {
	case !r.raiseOpen(p):
		return Outcome{}, invalidf("nobody can call a bet, check or fold")
	case amount <= 0:
		return Outcome{}, invalidf("bet must be positive")
	case amount > p.Chips:
		return Outcome{}, invalidf("bet must be between %d and your %d chips", r.MinBet, p.Chips)
	case amount < r.MinBet && amount != p.Chips:
		return Outcome{}, invalidf("bet must be at least %d or all-in", r.MinBet)
	}
	return r.put(p, amount, ActionBet), nil
}

func (r *BettingRound) raise(p *Player, owed, by int) (Outcome, error) {
	switch {
	case owed >= p.Chips:
		// cannot raise at all: the intent not to fold is honoured with a capped call
		out := r.put(p, owed, ActionCall)
		out.Downgraded = true
		return out, nil
	case !r.raiseOpen(p):
		return Outcome{}, invalidf("raising is not open to you, call or fold")
	case by <= 0:
		return Outcome{}, invalidf("raise must be positive")
	case owed+by > p.Chips:
		out := r.put(p, owed, ActionCall)
		out.Downgraded = true
		return out, nil
	case by < r.MinBet && owed+by != p.Chips:
		return Outcome{}, invalidf("raise must be at least %d", r.MinBet)
	}
	return r.put(p, owed+by, ActionRaise), nil
}

// put commits chips for the seat and updates the bet to match. Any increase
// raises the bet; only an increase of at least the minimum reopens the betting.
func (r *BettingRound) put(p *Player, amount int, action ActionType) Outcome {
	before := r.CurrentBet
	moved := p.commit(amount)
	r.Moved += moved

	out := Outcome{Action: action, Amount: moved, AllIn: p.AllIn}

	if p.RoundBet > r.CurrentBet {
		r.CurrentBet = p.RoundBet
		out.RaiseBy = r.CurrentBet - before
		if out.RaiseBy >= r.MinBet {
			out.FullRaise = true
			r.LastRaiser = p.Seat
			clear(r.acted)
		}
	}
	out.To = r.CurrentBet

	return out
}

// Skip moves the turn past a seat that left without acting
func (r *BettingRound) Skip(p *Player) {
	r.acted[p.Seat] = true
	r.advancePast(p.Seat)
}

func (r *BettingRound) advancePast(seat int) {
	for i, s := range r.order {
		if s == seat {
			r.cursor = (i + 1) % len(r.order)
			return
		}
	}
}

// liveHands counts players still holding an unfolded hand
func liveHands(players []*Player) int {
	n := 0
	for _, p := range players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// potTotal is the sum of every contribution this hand
func potTotal(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.TotalBet
	}
	return total
}

// seatOrder lists the seats kept by keep, clockwise from start
func seatOrder(players []*Player, start int, keep func(*Player) bool) []int {
	n := len(players)
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		seat := ((start+i)%n + n) % n
		if keep(players[seat]) {
			order = append(order, seat)
		}
	}
	return order
}
