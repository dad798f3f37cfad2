package domain

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lazharichir/drawpoker/cards"
	"github.com/lazharichir/drawpoker/domain/events"
	"github.com/lazharichir/drawpoker/domain/hands"
)

// runDrawPhase gives every live hand, all-in players included, one chance to
// replace cards, clockwise from the dealer's left.
func (h *Hand) runDrawPhase(ctx context.Context) error {
	t := h.Table
	h.emitEvent(events.DrawStarted{
		TableID:     t.ID,
		HandID:      h.ID,
		MaxDiscards: t.Rules.MaxDiscards,
		At:          time.Now(),
	})

	order := seatOrder(t.Players, t.Dealer+1, func(p *Player) bool { return p.InHand() })
	for _, seat := range order {
		if liveHands(t.Players) < 2 {
			break
		}
		p := t.Players[seat]
		if !p.InHand() {
			continue
		}
		if err := h.takeDrawTurn(ctx, p); err != nil {
			return err
		}
		if err := h.checkConservation(); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hand) takeDrawTurn(ctx context.Context, p *Player) error {
	t := h.Table

	turnCtx, cancel := h.turnContext(ctx)
	defer cancel()
	deadline, _ := turnCtx.Deadline()

	h.emitEvent(events.PlayerTurnStarted{
		TableID:    t.ID,
		HandID:     h.ID,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Phase:      PhaseDraw,
		TimeoutAt:  deadline,
		At:         time.Now(),
	})

	rejected := ""
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := t.decider.DecideDraw(turnCtx, DrawTurn{
			Player:      viewOf(p, t.Dealer),
			Hand:        p.Hand.Cards(),
			MaxDiscards: t.Rules.MaxDiscards,
			Table:       t.BuildView(0),
			Deadline:    deadline,
			Rejected:    rejected,
		})
		switch {
		case err == nil:
		case IsTimeout(err) && ctx.Err() == nil:
			h.emitEvent(events.PlayerTimedOut{
				TableID:       t.ID,
				HandID:        h.ID,
				PlayerID:      p.ID,
				PlayerName:    p.Name,
				Phase:         PhaseDraw,
				DefaultAction: "stand pat",
				At:            time.Now(),
			})
			h.standPat(p, true)
			return nil
		default:
			return fmt.Errorf("failed to get a draw from %s: %w", p.Name, err)
		}

		if choice.Quit {
			h.quit(p, PhaseDraw)
			return nil
		}

		positions, err := validateDiscards(choice.Discard, p.Hand.Len(), t.Rules.MaxDiscards)
		if err != nil {
			rejected = err.Error()
			h.emitEvent(events.InvalidActionRejected{
				TableID:    t.ID,
				HandID:     h.ID,
				PlayerID:   p.ID,
				PlayerName: p.Name,
				Phase:      PhaseDraw,
				Reason:     rejected,
				At:         time.Now(),
			})
			continue
		}

		if len(positions) == 0 {
			h.standPat(p, false)
			return nil
		}
		return h.replace(p, positions)
	}
}

// replace discards the given positions and refills the hand from the deck
func (h *Hand) replace(p *Player, positions []int) error {
	t := h.Table
	discarded := p.Hand.Discard(positions)

	drawn := make(cards.Stack, 0, len(discarded))
	for p.Hand.Len() < hands.Size {
		card, err := h.Deck.Deal()
		if err != nil {
			return fmt.Errorf("failed to draw for %s: %w", p.Name, err)
		}
		if err := p.Hand.Add(card); err != nil {
			return fmt.Errorf("failed to draw for %s: %w", p.Name, err)
		}
		drawn = append(drawn, card)
	}

	p.LastAction = fmt.Sprintf("drew %d", len(drawn))
	now := time.Now()
	h.emitEvent(events.PlayerDrew{
		TableID:    t.ID,
		HandID:     h.ID,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Count:      len(drawn),
		At:         now,
	})
	h.emitEvent(events.CardsDrawn{
		TableID:    t.ID,
		HandID:     h.ID,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Discarded:  discarded,
		Drawn:      drawn,
		Hand:       p.Hand.Cards(),
		At:         now,
	})
	return nil
}

func (h *Hand) standPat(p *Player, timedOut bool) {
	p.LastAction = "stood pat"
	if timedOut {
		p.LastAction = "stood pat (timeout)"
	}
	h.emitEvent(events.PlayerStoodPat{
		TableID:    h.Table.ID,
		HandID:     h.ID,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		TimedOut:   timedOut,
		At:         time.Now(),
	})
}

// validateDiscards checks discard positions against the hand and the table's
// limit and returns them sorted. Positions are reported 1-based to the player.
func validateDiscards(positions []int, handSize, maxDiscards int) ([]int, error) {
	seen := make(map[int]bool, len(positions))
	for _, i := range positions {
		if i < 0 || i >= handSize {
			return nil, invalidf("there is no card %d", i+1)
		}
		if seen[i] {
			return nil, invalidf("card %d listed twice", i+1)
		}
		seen[i] = true
	}
	if len(positions) > maxDiscards {
		return nil, invalidf("you may discard at most %d cards", maxDiscards)
	}

	out := make([]int, len(positions))
	copy(out, positions)
	sort.Ints(out)
	return out, nil
}
