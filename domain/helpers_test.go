package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lazharichir/drawpoker/cards"
	"github.com/lazharichir/drawpoker/domain/events"
	"github.com/lazharichir/drawpoker/domain/hands"
	"github.com/stretchr/testify/require"
)

var testNames = []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank"}

// newPlayers builds dealt-in players at seats 0..n-1
func newPlayers(chips ...int) []*Player {
	players := make([]*Player, len(chips))
	for i, c := range chips {
		p := NewPlayer(fmt.Sprintf("player-%d", i), testNames[i], c)
		p.Seat = i
		p.ResetForHand()
		players[i] = p
	}
	return players
}

func giveHand(p *Player, hand string) {
	p.Hand = hands.NewHand(cards.MustParse(hand)...)
}

// rig builds a deck factory dealing the given hands, listed in dealing order,
// followed by the draw cards
func rig(dealt []string, draws string) func() *cards.Deck {
	parsed := make([]cards.Stack, len(dealt))
	for i, h := range dealt {
		parsed[i] = cards.MustParse(h)
	}

	var order cards.Stack
	for c := 0; c < hands.Size; c++ {
		for _, h := range parsed {
			order = append(order, h[c])
		}
	}
	order = append(order, cards.MustParse(draws)...)

	return func() *cards.Deck { return cards.NewOrderedDeck(order) }
}

// reply is one scripted answer. wait blocks until the turn's deadline.
type reply struct {
	action Action
	draw   DrawAction
	reveal []int
	err    error
	delay  time.Duration
	wait   bool
}

// scriptedDecider answers from per-player queues. Once a queue runs dry it
// checks or calls, stands pat and reveals nothing.
type scriptedDecider struct {
	mu          sync.Mutex
	bets        map[string][]reply
	draws       map[string][]reply
	reveals     map[string][]reply
	betTurns    map[string][]BetTurn
	drawTurns   map[string][]DrawTurn
	revealTurns map[string][]RevealTurn
}

func newScriptedDecider() *scriptedDecider {
	return &scriptedDecider{
		bets:        make(map[string][]reply),
		draws:       make(map[string][]reply),
		reveals:     make(map[string][]reply),
		betTurns:    make(map[string][]BetTurn),
		drawTurns:   make(map[string][]DrawTurn),
		revealTurns: make(map[string][]RevealTurn),
	}
}

func (d *scriptedDecider) onBet(name string, replies ...reply) *scriptedDecider {
	d.bets[name] = append(d.bets[name], replies...)
	return d
}

func (d *scriptedDecider) onDraw(name string, replies ...reply) *scriptedDecider {
	d.draws[name] = append(d.draws[name], replies...)
	return d
}

func (d *scriptedDecider) onReveal(name string, replies ...reply) *scriptedDecider {
	d.reveals[name] = append(d.reveals[name], replies...)
	return d
}

func pop(queue map[string][]reply, name string) (reply, bool) {
	if len(queue[name]) == 0 {
		return reply{}, false
	}
	r := queue[name][0]
	queue[name] = queue[name][1:]
	return r, true
}

func (d *scriptedDecider) await(ctx context.Context, r reply) error {
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
		}
	}
	if r.wait {
		<-ctx.Done()
	}
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	}
	return r.err
}

func (d *scriptedDecider) DecideBet(ctx context.Context, turn BetTurn) (Action, error) {
	d.mu.Lock()
	d.betTurns[turn.Player.Name] = append(d.betTurns[turn.Player.Name], turn)
	r, ok := pop(d.bets, turn.Player.Name)
	d.mu.Unlock()

	if !ok {
		if turn.Options.CanCheck {
			return Check(), nil
		}
		return Call(), nil
	}
	if err := d.await(ctx, r); err != nil {
		return Action{}, err
	}
	return r.action, nil
}

func (d *scriptedDecider) DecideDraw(ctx context.Context, turn DrawTurn) (DrawAction, error) {
	d.mu.Lock()
	d.drawTurns[turn.Player.Name] = append(d.drawTurns[turn.Player.Name], turn)
	r, ok := pop(d.draws, turn.Player.Name)
	d.mu.Unlock()

	if !ok {
		return StandPat(), nil
	}
	if err := d.await(ctx, r); err != nil {
		return DrawAction{}, err
	}
	return r.draw, nil
}

func (d *scriptedDecider) ChooseReveal(ctx context.Context, turn RevealTurn) ([]int, error) {
	d.mu.Lock()
	d.revealTurns[turn.Player.Name] = append(d.revealTurns[turn.Player.Name], turn)
	r, ok := pop(d.reveals, turn.Player.Name)
	d.mu.Unlock()

	if !ok {
		return nil, nil
	}
	if err := d.await(ctx, r); err != nil {
		return nil, err
	}
	return r.reveal, nil
}

// newTestTable seats Alice, Bob, Carol... with the given stacks. Alice deals first.
func newTestTable(t *testing.T, decider Decider, rules TableRules, opts []TableOption, chips ...int) *Table {
	t.Helper()
	table := NewTable("test", rules, decider, opts...)
	for i, c := range chips {
		_, err := table.SeatPlayer(testNames[i], c)
		require.NoError(t, err)
	}
	return table
}

func testRules() TableRules {
	return TableRules{MinBet: 10, TurnTimeout: 0, MaxDiscards: 3}
}

// recorder collects every event the table emits
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func record(table *Table) *recorder {
	r := &recorder{}
	table.RegisterEventHandler(func(e events.Event) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, e)
	})
	return r
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name())
	}
	return out
}

func eventsOf[T events.Event](r *recorder) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for _, e := range r.events {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
