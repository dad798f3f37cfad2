package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lazharichir/drawpoker/domain"
)

var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrNeedAmount     = errors.New("amount required")

	// ErrExit is returned by the console decider when the user confirmed leaving the program
	ErrExit = errors.New("exit requested")
)

type CommandKind int

const (
	CommandAct CommandKind = iota
	CommandView
	CommandExit
)

// Command is one parsed line typed at a prompt
type Command struct {
	Kind   CommandKind
	Action domain.Action
	Draw   domain.DrawAction
}

// MenuItem is one numbered entry of the betting menu
type MenuItem struct {
	Number int
	Type   domain.ActionType
	Label  string
}

// BetMenu is the numbered list of actions offered for a betting turn.
// Entry 0 always shows the hand.
type BetMenu struct {
	Options domain.BetOptions
	Items   []MenuItem
}

func NewBetMenu(opts domain.BetOptions) BetMenu {
	m := BetMenu{Options: opts}
	add := func(t domain.ActionType, label string) {
		m.Items = append(m.Items, MenuItem{Number: len(m.Items) + 1, Type: t, Label: label})
	}

	if opts.CanCheck {
		add(domain.ActionCheck, "Check")
	}
	if opts.CanBet {
		add(domain.ActionBet, fmt.Sprintf("Bet <amt> (min %d)", opts.MinBet))
	}
	if opts.ToCall > 0 {
		if opts.CallIsAllIn() {
			add(domain.ActionCall, fmt.Sprintf("Call %d (all-in)", opts.ToCall))
		} else {
			add(domain.ActionCall, fmt.Sprintf("Call %d", opts.ToCall))
		}
	}
	if opts.CanRaise {
		add(domain.ActionRaise, fmt.Sprintf("Raise <amt> (min %d)", opts.MinBet))
	}
	add(domain.ActionFold, "Fold [card numbers to show]")
	if opts.CanAllIn {
		add(domain.ActionAllIn, fmt.Sprintf("All-in (%d)", opts.Chips))
	}
	add(domain.ActionQuit, "Quit game")

	return m
}

// Lines renders the menu, one entry per line
func (m BetMenu) Lines() []string {
	lines := make([]string, 0, len(m.Items)+1)
	lines = append(lines, "[0] View hand")
	for _, item := range m.Items {
		lines = append(lines, fmt.Sprintf("[%d] %s", item.Number, item.Label))
	}
	return lines
}

func (m BetMenu) String() string {
	return strings.Join(m.Lines(), "\n")
}

// Prompt is the input prompt shown under the menu
func (m BetMenu) Prompt() string {
	if m.Options.ToCall > 0 {
		return fmt.Sprintf("(call %d chips) > ", m.Options.ToCall)
	}
	return "> "
}

func (m BetMenu) lookup(word string) (MenuItem, bool) {
	if n, err := strconv.Atoi(word); err == nil {
		for _, item := range m.Items {
			if item.Number == n {
				return item, true
			}
		}
		return MenuItem{}, false
	}

	t := domain.ActionType(strings.ToLower(word))
	if t == "allin" {
		t = domain.ActionAllIn
	}
	for _, item := range m.Items {
		if item.Type == t {
			return item, true
		}
	}
	return MenuItem{}, false
}

// Parse reads a betting line: a menu number or action name, followed by the
// amount for a bet or raise, or by the 1-based cards to show for a fold.
func (m BetMenu) Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: choose an action", ErrInvalidCommand)
	}

	switch strings.ToLower(fields[0]) {
	case "0", "view":
		return Command{Kind: CommandView}, nil
	case "exit":
		return Command{Kind: CommandExit}, nil
	}

	item, ok := m.lookup(fields[0])
	if !ok {
		return Command{}, fmt.Errorf("%w: %q is not on the menu", ErrInvalidCommand, fields[0])
	}
	args := fields[1:]

	switch item.Type {
	case domain.ActionBet, domain.ActionRaise:
		if len(args) == 0 {
			return Command{}, fmt.Errorf("%w: %s needs an amount (min %d)", ErrNeedAmount, item.Type, m.Options.MinBet)
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil || amount <= 0 {
			return Command{}, fmt.Errorf("%w: %q is not an amount", ErrInvalidCommand, args[0])
		}
		return Command{Kind: CommandAct, Action: domain.Action{Type: item.Type, Amount: amount}}, nil
	case domain.ActionFold:
		reveal, err := parsePositions(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandAct, Action: domain.Fold(reveal...)}, nil
	default:
		return Command{Kind: CommandAct, Action: domain.Action{Type: item.Type}}, nil
	}
}

// ParseDraw reads a draw line: 1-based card numbers to discard, "stand" or an
// empty line to keep the hand, 0 to view it, "quit" or "exit".
func ParseDraw(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{Kind: CommandAct, Draw: domain.StandPat()}, nil
	}

	switch fields[0] {
	case "0", "view":
		return Command{Kind: CommandView}, nil
	case "stand":
		return Command{Kind: CommandAct, Draw: domain.StandPat()}, nil
	case "quit":
		return Command{Kind: CommandAct, Draw: domain.DrawAction{Quit: true}}, nil
	case "exit":
		return Command{Kind: CommandExit}, nil
	}

	positions, err := parsePositions(fields)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CommandAct, Draw: domain.Discard(positions...)}, nil
}

// parsePositions turns 1-based card numbers into 0-based positions.
// Range and duplicate checks are left to the table.
func parsePositions(fields []string) ([]int, error) {
	var out []int
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSuffix(f, ","))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q is not a card number", ErrInvalidCommand, f)
		}
		out = append(out, n-1)
	}
	return out, nil
}

// ParseYesNo reads a [y/N] answer; anything but yes means no
func ParseYesNo(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
