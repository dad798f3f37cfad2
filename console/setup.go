package console

import (
	"context"
	"strconv"
	"time"

	"github.com/lazharichir/drawpoker/config"
	"github.com/lazharichir/drawpoker/domain"
)

// Setup asks for whatever the configuration left open before a game
type Setup struct {
	in  *LineReader
	out *Presenter
}

func NewSetup(in *LineReader, out *Presenter) *Setup {
	return &Setup{in: in, out: out}
}

// PromptNumber asks until the answer is a whole number in [min, max] and a multiple of step
func (s *Setup) PromptNumber(ctx context.Context, label string, min, max, step int) (int, error) {
	for {
		s.out.Printf("%s (%d-%d): ", label, min, max)
		line, err := s.in.ReadLine(ctx)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(line)
		switch {
		case err != nil:
			s.out.Warning("Please enter a number.")
		case n < min || n > max:
			s.out.Warning("Please enter a number between %d and %d.", min, max)
		case step > 1 && n%step != 0:
			s.out.Warning("Please enter a multiple of %d.", step)
		default:
			return n, nil
		}
	}
}

// Confirm asks a [y/N] question
func (s *Setup) Confirm(ctx context.Context, question string) (bool, error) {
	s.out.Printf("%s [y/N] ", question)
	line, err := s.in.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	return ParseYesNo(line), nil
}

// CompleteSettings prompts for the table settings missing from cfg
func (s *Setup) CompleteSettings(ctx context.Context, cfg *config.Config) error {
	if cfg.Players == 0 {
		n, err := s.PromptNumber(ctx, "Number of players", domain.MinPlayers, domain.MaxPlayers, 1)
		if err != nil {
			return err
		}
		cfg.Players = n
	}

	if cfg.StartingChips == 0 {
		n, err := s.PromptNumber(ctx, "Starting chips (increments of 10)", config.MinStartingChips, config.MaxStartingChips, config.ChipStep)
		if err != nil {
			return err
		}
		cfg.StartingChips = n
	}

	if cfg.TurnTimeout == 0 {
		secs, err := s.promptTimer(ctx)
		if err != nil {
			return err
		}
		cfg.TurnTimeout = secs
	}

	return cfg.Validate()
}

func (s *Setup) promptTimer(ctx context.Context) (time.Duration, error) {
	min := int(config.MinTurnTimeout / time.Second)
	max := int(config.MaxTurnTimeout / time.Second)
	for {
		s.out.Printf("Turn timer in seconds (%d-%d, 0 for none): ", min, max)
		line, err := s.in.ReadLine(ctx)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(line)
		switch {
		case err != nil:
			s.out.Warning("Please enter a number.")
		case n == 0:
			return -1, nil
		case n < min || n > max:
			s.out.Warning("Please enter a number between %d and %d, or 0.", min, max)
		default:
			return time.Duration(n) * time.Second, nil
		}
	}
}

// SeatPlayers seats cfg.Players players with the starting stack, taking names
// from cfg.PlayerNames first and asking for the rest.
func (s *Setup) SeatPlayers(ctx context.Context, table *domain.Table, cfg *config.Config) error {
	for i := 0; i < cfg.Players; i++ {
		if i < len(cfg.PlayerNames) {
			name := cfg.PlayerNames[i]
			_, err := table.SeatPlayer(name, cfg.StartingChips)
			if err == nil {
				continue
			}
			s.out.Warning("Cannot use %q: %v", name, err)
		}

		for {
			s.out.Printf("Enter name for Player %d (max %d chars): ", i+1, domain.MaxNameLength)
			line, err := s.in.ReadLine(ctx)
			if err != nil {
				return err
			}
			if _, err := table.SeatPlayer(line, cfg.StartingChips); err != nil {
				s.out.Warning("Invalid name. Try again. (%v)", err)
				continue
			}
			break
		}
	}
	return nil
}

// PlayAgain asks whether to start over with the same settings
func (s *Setup) PlayAgain(ctx context.Context) (bool, error) {
	return s.Confirm(ctx, "Start a new game with same settings?")
}
