package console

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lazharichir/drawpoker/domain"
)

// Decider asks the player at the keyboard for every decision. All seats share
// one terminal, so each turn starts by naming whose turn it is. Every prompt
// of a turn, confirmations included, runs under the turn's deadline.
type Decider struct {
	in    *LineReader
	out   *Presenter
	stale bool // a read timed out; anything typed since belongs to that turn
}

func NewDecider(in *LineReader, out *Presenter) *Decider {
	return &Decider{in: in, out: out}
}

func (d *Decider) header(name string, deadline time.Time) {
	if deadline.IsZero() {
		d.out.Section(fmt.Sprintf("%s to act", name))
		return
	}
	d.out.Section(fmt.Sprintf("%s to act (%ds)", name, int(time.Until(deadline).Round(time.Second).Seconds())))
}

func (d *Decider) read(ctx context.Context) (string, error) {
	line, err := d.in.ReadLine(ctx)
	if errors.Is(err, domain.ErrTimeout) {
		d.stale = true
	}
	return line, err
}

func (d *Decider) dropStale() {
	if d.stale {
		d.in.Drain()
		d.stale = false
	}
}

// confirm asks a [y/N] question; no answer before the deadline counts as no
// and surfaces the timeout.
func (d *Decider) confirm(ctx context.Context, question string) (bool, error) {
	d.out.Printf("%s [y/N] ", question)
	line, err := d.read(ctx)
	if err != nil {
		return false, err
	}
	return ParseYesNo(line), nil
}

func (d *Decider) confirmExit(ctx context.Context) error {
	ok, err := d.confirm(ctx, "Are you sure you want to exit the program?")
	if err != nil {
		return err
	}
	if ok {
		return ErrExit
	}
	return nil
}

func (d *Decider) DecideBet(ctx context.Context, turn domain.BetTurn) (domain.Action, error) {
	if turn.Rejected == "" {
		d.dropStale()
		d.header(turn.Player.Name, turn.Deadline)
		d.out.ShowTable(turn.Table)
	} else {
		d.out.Warning("%s", turn.Rejected)
	}

	menu := NewBetMenu(turn.Options)
	d.out.Println(menu.String())

	for {
		d.out.Printf("%s", menu.Prompt())
		line, err := d.read(ctx)
		if err != nil {
			return domain.Action{}, err
		}

		cmd, err := menu.Parse(line)
		if err != nil {
			d.out.Warning("%v", err)
			continue
		}

		switch cmd.Kind {
		case CommandView:
			d.out.ShowHand(turn.Player.Name, turn.Hand)
			continue
		case CommandExit:
			if err := d.confirmExit(ctx); err != nil {
				return domain.Action{}, err
			}
			continue
		}

		if cmd.Action.Type == domain.ActionQuit {
			ok, err := d.confirm(ctx, "Are you sure you want to leave the game?")
			if err != nil {
				return domain.Action{}, err
			}
			if !ok {
				continue
			}
		}
		return cmd.Action, nil
	}
}

func (d *Decider) DecideDraw(ctx context.Context, turn domain.DrawTurn) (domain.DrawAction, error) {
	if turn.Rejected == "" {
		d.dropStale()
		d.header(turn.Player.Name, turn.Deadline)
		d.out.Info("Pot: %d. Players still in: %d", turn.Table.Pot, len(turn.Table.StillIn()))
	} else {
		d.out.Warning("%s", turn.Rejected)
	}

	d.out.Printf(
		"Enter card numbers to discard (1-5, space-separated, at most %d) or 'stand'.\nType 0 to view hand. Type 'quit' to leave the game or 'exit' to close the program.\n",
		turn.MaxDiscards,
	)

	for {
		d.out.Printf("> ")
		line, err := d.read(ctx)
		if err != nil {
			return domain.DrawAction{}, err
		}

		cmd, err := ParseDraw(line)
		if err != nil {
			d.out.Warning("%v", err)
			continue
		}

		switch cmd.Kind {
		case CommandView:
			d.out.ShowHand(turn.Player.Name, turn.Hand)
			continue
		case CommandExit:
			if err := d.confirmExit(ctx); err != nil {
				return domain.DrawAction{}, err
			}
			continue
		}

		if cmd.Draw.Quit {
			ok, err := d.confirm(ctx, "Are you sure you want to leave the game?")
			if err != nil {
				return domain.DrawAction{}, err
			}
			if !ok {
				continue
			}
		}
		return cmd.Draw, nil
	}
}

func (d *Decider) ChooseReveal(ctx context.Context, turn domain.RevealTurn) ([]int, error) {
	d.dropStale()
	d.out.Info("%s, everyone else folded.", turn.Player.Name)
	ok, err := d.confirm(ctx, "Reveal your cards?")
	if errors.Is(err, domain.ErrTimeout) {
		return nil, nil
	}
	if err != nil || !ok {
		return nil, err
	}

	reveal := make([]int, len(turn.Hand))
	for i := range reveal {
		reveal[i] = i
	}
	return reveal, nil
}
