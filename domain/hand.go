package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lazharichir/drawpoker/cards"
	"github.com/lazharichir/drawpoker/domain/events"
	"github.com/lazharichir/drawpoker/domain/hands"
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
)

type HandPhase string

const (
	HandPhase_Start         HandPhase = "start"
	HandPhase_Deal          HandPhase = "deal"
	HandPhase_FirstBetting  HandPhase = "betting.first"
	HandPhase_Draw          HandPhase = "draw"
	HandPhase_SecondBetting HandPhase = "betting.second"
	HandPhase_Showdown      HandPhase = "showdown"
	HandPhase_Payout        HandPhase = "payout"
	HandPhase_Ended         HandPhase = "ended"
)

// HandResult summarises a finished hand
type HandResult struct {
	HandID      string
	Number      int
	Pot         int
	Uncontested bool
	Pots        []PotResult // empty when uncontested
	Winners     []int       // seats that won chips, in payout order
}

// Hand represents a hand of five-card draw being played at a table
type Hand struct {
	ID        string
	Number    int
	Table     *Table
	Deck      *cards.Deck
	Phase     HandPhase
	StartedAt time.Time

	round            *BettingRound
	chipsInPlay      int
	lastFoldTimedOut bool
	logger           logrus.FieldLogger
}

func newHand(t *Table, number int) *Hand {
	id := uuid.NewString()
	return &Hand{
		ID:     id,
		Number: number,
		Table:  t,
		Deck:   t.newDeck(),
		Phase:  HandPhase_Start,
		logger: t.logger.WithFields(logrus.Fields{"hand": id, "number": number}),
	}
}

// IsInPhase checks if the hand is in the specified phase
func (h *Hand) IsInPhase(phase HandPhase) bool {
	return h.Phase == phase
}

// CurrentBet is the bet to match in the running street, 0 between streets
func (h *Hand) CurrentBet() int {
	if h.round == nil {
		return 0
	}
	return h.round.CurrentBet
}

func (h *Hand) play(ctx context.Context) (*HandResult, error) {
	t := h.Table
	h.StartedAt = time.Now()

	for _, p := range t.Players {
		if p.Chips > 0 {
			p.ResetForHand()
		} else {
			p.SitOut()
		}
	}
	h.chipsInPlay = t.TotalChips()

	order := seatOrder(t.Players, t.Dealer+1, func(p *Player) bool { return p.Hand != nil })
	names := make([]string, 0, len(order))
	for _, seat := range order {
		names = append(names, t.Players[seat].Name)
	}

	dealer := t.Players[t.Dealer]
	h.emitEvent(events.HandStarted{
		TableID:    t.ID,
		HandID:     h.ID,
		Number:     h.Number,
		DealerID:   dealer.ID,
		DealerName: dealer.Name,
		Players:    names,
		At:         h.StartedAt,
	})
	h.logger.WithField("dealer", dealer.Name).Info("hand started")

	h.transitionTo(HandPhase_Deal)
	if err := h.deal(order); err != nil {
		return nil, err
	}

	h.transitionTo(HandPhase_FirstBetting)
	if err := h.runBettingRound(ctx, StreetFirst); err != nil {
		return nil, err
	}

	if liveHands(t.Players) >= 2 {
		h.transitionTo(HandPhase_Draw)
		if err := h.runDrawPhase(ctx); err != nil {
			return nil, err
		}
	}

	if liveHands(t.Players) >= 2 {
		h.transitionTo(HandPhase_SecondBetting)
		if err := h.runBettingRound(ctx, StreetSecond); err != nil {
			return nil, err
		}
	}

	result, err := h.settle(ctx)
	if err != nil {
		return nil, err
	}

	h.transitionTo(HandPhase_Ended)

	winners := make([]string, 0, len(result.Winners))
	for _, seat := range result.Winners {
		winners = append(winners, t.Players[seat].Name)
	}
	h.emitEvent(events.HandEnded{
		TableID:  t.ID,
		HandID:   h.ID,
		Duration: time.Since(h.StartedAt).Milliseconds(),
		FinalPot: result.Pot,
		Winners:  winners,
		At:       time.Now(),
	})
	h.logger.WithFields(logrus.Fields{"pot": result.Pot, "winners": winners}).Info("hand ended")

	return result, nil
}

// deal gives five cards to every seat, one at a time, clockwise from the dealer's left
func (h *Hand) deal(order []int) error {
	t := h.Table
	for range hands.Size {
		for _, seat := range order {
			card, err := h.Deck.Deal()
			if err != nil {
				return fmt.Errorf("failed to deal: %w", err)
			}
			if err := t.Players[seat].Hand.Add(card); err != nil {
				return fmt.Errorf("failed to deal to %s: %w", t.Players[seat].Name, err)
			}
		}
	}

	for _, seat := range order {
		p := t.Players[seat]
		h.emitEvent(events.CardsDealt{
			TableID:    t.ID,
			HandID:     h.ID,
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Cards:      p.Hand.Cards(),
			At:         time.Now(),
		})
	}
	return nil
}

func (h *Hand) runBettingRound(ctx context.Context, street Street) error {
	t := h.Table
	round := NewBettingRound(street, t.Players, t.Dealer, t.Rules.MinBet)
	h.round = round
	defer func() { h.round = nil }()

	first := ""
	if p, ok := round.NextToAct(); ok {
		first = p.Name
	}
	h.emitEvent(events.BettingRoundStarted{
		TableID:    t.ID,
		HandID:     h.ID,
		Street:     string(street),
		FirstToAct: first,
		At:         time.Now(),
	})

	for {
		p, ok := round.NextToAct()
		if !ok {
			break
		}
		if err := h.takeBetTurn(ctx, round, p); err != nil {
			return err
		}
		if err := h.checkConservation(); err != nil {
			return err
		}
	}

	h.emitEvent(events.BettingRoundEnded{
		TableID:   t.ID,
		HandID:    h.ID,
		Street:    string(street),
		TotalBets: round.Moved,
		Pot:       potTotal(t.Players),
		At:        time.Now(),
	})
	h.logger.WithFields(logrus.Fields{
		"street": street,
		"moved":  round.Moved,
		"pot":    potTotal(t.Players),
	}).Debug("betting round ended")

	return nil
}

// takeBetTurn asks the seat until it gives a valid decision. Every attempt
// shares the deadline fixed when the turn started.
func (h *Hand) takeBetTurn(ctx context.Context, round *BettingRound, p *Player) error {
	t := h.Table
	phase := string(round.Street)

	turnCtx, cancel := h.turnContext(ctx)
	defer cancel()
	deadline, _ := turnCtx.Deadline()

	h.emitEvent(events.PlayerTurnStarted{
		TableID:    t.ID,
		HandID:     h.ID,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Phase:      phase,
		TimeoutAt:  deadline,
		At:         time.Now(),
	})

	rejected := ""
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		turn := BetTurn{
			Player:   viewOf(p, t.Dealer),
			Hand:     p.Hand.Cards(),
			Options:  round.Options(p),
			Table:    t.BuildView(round.CurrentBet),
			Deadline: deadline,
			Rejected: rejected,
		}

		action, err := t.decider.DecideBet(turnCtx, turn)
		timedOut := false
		switch {
		case err == nil:
		case IsTimeout(err) && ctx.Err() == nil:
			timedOut = true
			action = Fold()
			h.emitEvent(events.PlayerTimedOut{
				TableID:       t.ID,
				HandID:        h.ID,
				PlayerID:      p.ID,
				PlayerName:    p.Name,
				Phase:         phase,
				DefaultAction: string(ActionFold),
				At:            time.Now(),
			})
		default:
			return fmt.Errorf("failed to get a decision from %s: %w", p.Name, err)
		}

		if action.Type == ActionQuit {
			h.quit(p, phase)
			round.Skip(p)
			return nil
		}

		out, err := round.Apply(p, action)
		if errors.Is(err, ErrInvalidAction) {
			rejected = err.Error()
			h.emitEvent(events.InvalidActionRejected{
				TableID:    t.ID,
				HandID:     h.ID,
				PlayerID:   p.ID,
				PlayerName: p.Name,
				Phase:      phase,
				Reason:     rejected,
				At:         time.Now(),
			})
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to apply %s for %s: %w", action, p.Name, err)
		}

		if out.Action == ActionFold {
			h.lastFoldTimedOut = timedOut
			if timedOut {
				p.LastAction = "folded (timeout)"
			}
		}
		h.emitOutcome(p, phase, out, timedOut)
		return nil
	}
}

func (h *Hand) emitOutcome(p *Player, phase string, out Outcome, timedOut bool) {
	t := h.Table
	now := time.Now()

	switch out.Action {
	case ActionCheck:
		h.emitEvent(events.PlayerChecked{TableID: t.ID, HandID: h.ID, PlayerID: p.ID, PlayerName: p.Name, At: now})
	case ActionCall:
		h.emitEvent(events.PlayerCalled{TableID: t.ID, HandID: h.ID, PlayerID: p.ID, PlayerName: p.Name, Amount: out.Amount, AllIn: out.AllIn, At: now})
	case ActionBet:
		h.emitEvent(events.PlayerBet{TableID: t.ID, HandID: h.ID, PlayerID: p.ID, PlayerName: p.Name, Amount: out.Amount, AllIn: out.AllIn, At: now})
	case ActionRaise:
		h.emitEvent(events.PlayerRaised{
			TableID:    t.ID,
			HandID:     h.ID,
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Amount:     out.Amount,
			RaiseBy:    out.RaiseBy,
			To:         out.To,
			AllIn:      out.AllIn,
			At:         now,
		})
	case ActionAllIn:
		h.emitEvent(events.PlayerWentAllIn{
			TableID:         t.ID,
			HandID:          h.ID,
			PlayerID:        p.ID,
			PlayerName:      p.Name,
			Amount:          out.Amount,
			To:              out.To,
			ReopenedBetting: out.FullRaise,
			At:              now,
		})
	case ActionFold:
		h.emitEvent(events.PlayerFolded{
			TableID:    t.ID,
			HandID:     h.ID,
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Phase:      phase,
			Shown:      out.Shown,
			TimedOut:   timedOut,
			At:         now,
		})
	}
}

// quit removes the player from the game: the stack is shared among the
// other players and whatever they already put in stays in the pot.
func (h *Hand) quit(p *Player, phase string) {
	t := h.Table
	chips := p.Chips
	shares := t.distributeChips(p)

	p.Folded = true
	p.Hand = nil
	p.RevealedOnFold = nil
	p.LastAction = "quit"
	h.lastFoldTimedOut = false

	h.emitEvent(events.PlayerQuit{
		TableID:    t.ID,
		HandID:     h.ID,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Chips:      chips,
		Shares:     shares,
		At:         time.Now(),
	})
	h.logger.WithFields(logrus.Fields{"player": p.Name, "phase": phase, "chips": chips}).Info("player quit")
}

// settle awards the pot, either to the last player standing or at showdown
func (h *Hand) settle(ctx context.Context) (*HandResult, error) {
	t := h.Table
	result := &HandResult{HandID: h.ID, Number: h.Number, Pot: potTotal(t.Players)}

	live := seatOrder(t.Players, t.Dealer+1, func(p *Player) bool { return p.InHand() })

	switch len(live) {
	case 0:
		return nil, fmt.Errorf("%w: nobody left to award %d chips to", ErrChipsNotConserved, result.Pot)
	case 1:
		h.transitionTo(HandPhase_Payout)
		winner := t.Players[live[0]]
		winner.Chips += result.Pot
		result.Uncontested = true
		result.Winners = []int{winner.Seat}
		h.sweep()

		h.emitEvent(events.UncontestedPotAwarded{
			TableID:    t.ID,
			HandID:     h.ID,
			PlayerID:   winner.ID,
			PlayerName: winner.Name,
			Amount:     result.Pot,
			At:         time.Now(),
		})

		if !h.lastFoldTimedOut {
			if err := h.offerReveal(ctx, winner); err != nil {
				return nil, err
			}
		}
	default:
		h.transitionTo(HandPhase_Showdown)
		names := make([]string, 0, len(live))
		for _, seat := range live {
			names = append(names, t.Players[seat].Name)
		}
		h.emitEvent(events.ShowdownStarted{TableID: t.ID, HandID: h.ID, Players: names, At: time.Now()})

		for _, seat := range live {
			p := t.Players[seat]
			h.emitEvent(events.PlayerShowedHand{
				TableID:     t.ID,
				HandID:      h.ID,
				PlayerID:    p.ID,
				PlayerName:  p.Name,
				Cards:       p.Hand.Cards(),
				Description: p.Hand.Evaluate().String(),
				At:          time.Now(),
			})
		}

		h.transitionTo(HandPhase_Payout)
		pots := BuildPots(t.Players)
		result.Pots = SettlePots(pots, t.Players, t.Dealer)
		h.sweep()

		won := make(map[int]bool)
		for i, pr := range result.Pots {
			winners := make([]string, 0, len(pr.Winners))
			shares := make(map[string]int, len(pr.Shares))
			for _, seat := range pr.Winners {
				name := t.Players[seat].Name
				winners = append(winners, name)
				shares[name] = pr.Shares[seat]
				if !won[seat] {
					won[seat] = true
					result.Winners = append(result.Winners, seat)
				}
			}
			h.emitEvent(events.PotAwarded{
				TableID:     t.ID,
				HandID:      h.ID,
				Index:       i,
				Amount:      pr.Amount,
				Level:       pr.Level,
				Winners:     winners,
				Shares:      shares,
				Description: pr.Evaluation.String(),
				At:          time.Now(),
			})
		}
		h.logger.Debugf("pots settled: %s", litter.Sdump(result.Pots))
	}

	if err := h.checkConservation(); err != nil {
		return nil, err
	}
	return result, nil
}

// offerReveal lets the uncontested winner show any of their cards
func (h *Hand) offerReveal(ctx context.Context, p *Player) error {
	t := h.Table
	if p.Hand == nil {
		return nil
	}

	turnCtx, cancel := h.turnContext(ctx)
	defer cancel()
	deadline, _ := turnCtx.Deadline()

	indices, err := t.decider.ChooseReveal(turnCtx, RevealTurn{
		Player:   viewOf(p, t.Dealer),
		Hand:     p.Hand.Cards(),
		Deadline: deadline,
	})
	switch {
	case err == nil:
	case IsTimeout(err) && ctx.Err() == nil:
		return nil
	default:
		return fmt.Errorf("failed to get a reveal choice from %s: %w", p.Name, err)
	}

	shown := p.Hand.Pick(sanitizeIndices(indices, p.Hand.Len()))
	if len(shown) == 0 {
		return nil
	}
	h.emitEvent(events.PlayerRevealed{
		TableID:    t.ID,
		HandID:     h.ID,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Cards:      shown,
		At:         time.Now(),
	})
	return nil
}

// sweep empties the contribution counters once the pot has been paid out
func (h *Hand) sweep() {
	for _, p := range h.Table.Players {
		p.RoundBet = 0
		p.TotalBet = 0
	}
}

func (h *Hand) checkConservation() error {
	if got := h.Table.TotalChips(); got != h.chipsInPlay {
		return fmt.Errorf("%w: expected %d chips in play, found %d", ErrChipsNotConserved, h.chipsInPlay, got)
	}
	return nil
}

// turnContext bounds one turn by the table's turn timeout, if any
func (h *Hand) turnContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if timeout := h.Table.Rules.TurnTimeout; timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

func (h *Hand) transitionTo(phase HandPhase) {
	previous := h.Phase
	h.Phase = phase
	h.emitEvent(events.PhaseChanged{
		TableID:       h.Table.ID,
		HandID:        h.ID,
		PreviousPhase: string(previous),
		NewPhase:      string(phase),
		At:            time.Now(),
	})
}

func (h *Hand) emitEvent(event events.Event) {
	h.Table.emitEvent(event)
}
