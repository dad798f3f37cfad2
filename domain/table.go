package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lazharichir/drawpoker/cards"
	"github.com/lazharichir/drawpoker/domain/events"
	"github.com/lazharichir/drawpoker/domain/hands"
	"github.com/sirupsen/logrus"
)

const (
	MinPlayers    = 2
	MaxPlayers    = 6
	MaxNameLength = 20
)

var (
	ErrTableFull         = errors.New("table is full")
	ErrTableNotWaiting   = errors.New("table is not waiting for players")
	ErrInvalidName       = errors.New("invalid player name")
	ErrNameTaken         = errors.New("player name already taken")
	ErrInvalidChips      = errors.New("starting chips must be positive")
	ErrInvalidRules      = errors.New("invalid table rules")
	ErrNotEnoughPlayers  = errors.New("need at least 2 players with chips")
	ErrChipsNotConserved = errors.New("chips not conserved")
)

type TableStatus string

const (
	TableStatusWaiting TableStatus = "waiting"
	TableStatusPlaying TableStatus = "playing"
	TableStatusEnded   TableStatus = "ended"
)

// TableRules defines the rules for a table
type TableRules struct {
	MinBet      int
	TurnTimeout time.Duration // 0 means seats may take as long as they like
	MaxDiscards int
}

// DefaultRules mirrors the usual home game: 10 chip minimum, 30 seconds a turn, draw up to 3
func DefaultRules() TableRules {
	return TableRules{
		MinBet:      10,
		TurnTimeout: 30 * time.Second,
		MaxDiscards: 3,
	}
}

// Validate checks the rules for the given number of seats. The deck must
// cover five cards per seat plus every possible draw.
func (r TableRules) Validate(seats int) error {
	switch {
	case r.MinBet <= 0:
		return fmt.Errorf("%w: minimum bet must be positive", ErrInvalidRules)
	case r.TurnTimeout < 0:
		return fmt.Errorf("%w: turn timeout cannot be negative", ErrInvalidRules)
	case r.MaxDiscards < 0 || r.MaxDiscards > hands.Size:
		return fmt.Errorf("%w: max discards must be between 0 and %d", ErrInvalidRules, hands.Size)
	case seats*(hands.Size+r.MaxDiscards) > 52:
		return fmt.Errorf("%w: one deck cannot deal %d seats drawing up to %d cards", ErrInvalidRules, seats, r.MaxDiscards)
	}
	return nil
}

// Table represents a poker table
type Table struct {
	ID          string
	Name        string
	Rules       TableRules
	Players     []*Player // indexed by seat
	Dealer      int
	HandsPlayed int
	ActiveHand  *Hand
	Status      TableStatus

	decider Decider
	newDeck func() *cards.Deck
	store   events.EventStore
	logger  logrus.FieldLogger

	// events
	eventHandlers []events.EventHandler
}

type TableOption func(*Table)

// WithDeckFactory replaces the shuffled deck, for rigged deals in tests
func WithDeckFactory(newDeck func() *cards.Deck) TableOption {
	return func(t *Table) { t.newDeck = newDeck }
}

// WithEventStore records every event of the table in the given store
func WithEventStore(store events.EventStore) TableOption {
	return func(t *Table) { t.store = store }
}

func WithLogger(logger logrus.FieldLogger) TableOption {
	return func(t *Table) { t.logger = logger }
}

// NewTable creates an empty table. An empty name becomes "table-<unix seconds>".
func NewTable(name string, rules TableRules, decider Decider, opts ...TableOption) *Table {
	if name == "" {
		name = fmt.Sprintf("table-%d", time.Now().Unix())
	}

	t := &Table{
		ID:            uuid.NewString(),
		Name:          name,
		Rules:         rules,
		Players:       []*Player{},
		Status:        TableStatusWaiting,
		decider:       decider,
		newDeck:       func() *cards.Deck { return cards.NewDeck(nil) },
		store:         events.NewInMemoryEventStore(),
		eventHandlers: []events.EventHandler{},
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		t.logger = discard
	}
	t.logger = t.logger.WithField("table", t.Name)

	t.emitEvent(events.TableCreated{
		TableID:     t.ID,
		TableName:   t.Name,
		MinBet:      rules.MinBet,
		TurnTimeout: rules.TurnTimeout,
		MaxDiscards: rules.MaxDiscards,
		At:          time.Now(),
	})

	return t
}

// Store returns the event store holding the table's history
func (t *Table) Store() events.EventStore {
	return t.store
}

// ValidateName checks a display name against the seated players
func (t *Table) ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidName, MaxNameLength)
	}
	for _, p := range t.Players {
		if strings.EqualFold(p.Name, name) {
			return fmt.Errorf("%w: %s", ErrNameTaken, name)
		}
	}
	return nil
}

// SeatPlayer seats a new player at the next free seat
func (t *Table) SeatPlayer(name string, chips int) (*Player, error) {
	if t.Status != TableStatusWaiting {
		return nil, ErrTableNotWaiting
	}
	if len(t.Players) >= MaxPlayers {
		return nil, ErrTableFull
	}
	if err := t.ValidateName(name); err != nil {
		return nil, err
	}
	if chips <= 0 {
		return nil, ErrInvalidChips
	}

	player := NewPlayer(uuid.NewString(), strings.TrimSpace(name), chips)
	player.Seat = len(t.Players)
	t.Players = append(t.Players, player)

	t.emitEvent(events.PlayerSeated{
		TableID:    t.ID,
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Seat:       player.Seat,
		Chips:      chips,
		At:         time.Now(),
	})

	return player, nil
}

// PlayersWithChips returns the seats still in the game, in seat order
func (t *Table) PlayersWithChips() []*Player {
	var out []*Player
	for _, p := range t.Players {
		if p.Chips > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Winner returns the last player holding chips once everyone else is out
func (t *Table) Winner() (*Player, bool) {
	alive := t.PlayersWithChips()
	if len(alive) == 1 {
		return alive[0], true
	}
	return nil, false
}

// TotalChips is every chip at the table: stacks plus contributions not yet awarded
func (t *Table) TotalChips() int {
	total := 0
	for _, p := range t.Players {
		total += p.Chips + p.TotalBet
	}
	return total
}

// RotateDealer moves the button clockwise to the next seat with chips
func (t *Table) RotateDealer() {
	n := len(t.Players)
	if n == 0 {
		return
	}
	for i := 1; i <= n; i++ {
		seat := (t.Dealer + i) % n
		if t.Players[seat].Chips > 0 {
			t.Dealer = seat
			break
		}
	}

	dealer := t.Players[t.Dealer]
	t.emitEvent(events.DealerMoved{
		TableID:    t.ID,
		PlayerID:   dealer.ID,
		PlayerName: dealer.Name,
		Seat:       dealer.Seat,
		At:         time.Now(),
	})
}

// PlayHand plays one complete hand
func (t *Table) PlayHand(ctx context.Context) (*HandResult, error) {
	alive := t.PlayersWithChips()
	if len(alive) < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}
	if err := t.Rules.Validate(len(alive)); err != nil {
		return nil, err
	}
	if t.Players[t.Dealer].Chips == 0 {
		t.RotateDealer()
	}

	t.Status = TableStatusPlaying
	t.HandsPlayed++

	hand := newHand(t, t.HandsPlayed)
	t.ActiveHand = hand
	defer func() { t.ActiveHand = nil }()

	result, err := hand.play(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to play hand %d: %w", hand.Number, err)
	}
	return result, nil
}

// PlayUntilWinner plays hands, moving the button after each, until one player holds every chip
func (t *Table) PlayUntilWinner(ctx context.Context) (*Player, error) {
	if len(t.PlayersWithChips()) < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	for {
		if winner, ok := t.Winner(); ok {
			t.Status = TableStatusEnded
			t.emitEvent(events.TableWinnerDetermined{
				TableID:     t.ID,
				PlayerID:    winner.ID,
				PlayerName:  winner.Name,
				Chips:       winner.Chips,
				HandsPlayed: t.HandsPlayed,
				At:          time.Now(),
			})
			return winner, nil
		}
		if len(t.PlayersWithChips()) == 0 {
			t.Status = TableStatusEnded
			return nil, ErrNotEnoughPlayers
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := t.PlayHand(ctx); err != nil {
			return nil, err
		}
		t.RotateDealer()
	}
}

// distributeChips splits a leaving player's stack evenly among the other
// players with chips; leftover chips go one at a time in seat order.
func (t *Table) distributeChips(leaver *Player) map[string]int {
	shares := make(map[string]int)
	if leaver.Chips == 0 {
		return shares
	}

	var recipients []*Player
	for _, p := range t.Players {
		if p != leaver && p.Chips > 0 {
			recipients = append(recipients, p)
		}
	}
	if len(recipients) == 0 {
		// everyone else is all-in: the chips go to whoever is still in the hand
		for _, p := range t.Players {
			if p != leaver && p.InHand() {
				recipients = append(recipients, p)
			}
		}
	}
	if len(recipients) == 0 {
		return shares
	}

	share := leaver.Chips / len(recipients)
	remainder := leaver.Chips % len(recipients)
	for i, p := range recipients {
		won := share
		if i < remainder {
			won++
		}
		p.Chips += won
		shares[p.Name] = won
	}
	leaver.Chips = 0

	return shares
}

// RegisterEventHandler registers a callback function that will be called when events occur
func (t *Table) RegisterEventHandler(handler events.EventHandler) {
	t.eventHandlers = append(t.eventHandlers, handler)
}

// emitEvent records the event and notifies every handler. A failing store or
// a panicking handler is logged and never stops the game.
func (t *Table) emitEvent(event events.Event) {
	if t.store != nil {
		if err := t.store.Append(event); err != nil {
			t.logger.WithError(err).Warn("failed to store event")
		}
	}

	for _, handler := range t.eventHandlers {
		t.notify(handler, event)
	}
}

func (t *Table) notify(handler events.EventHandler, event events.Event) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.WithFields(logrus.Fields{
				"event": event.Name(),
				"panic": r,
			}).Error("event handler panicked")
		}
	}()
	handler(event)
}
