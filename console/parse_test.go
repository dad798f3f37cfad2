package console

import (
	"os"
	"testing"

	"github.com/lazharichir/drawpoker/domain"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func openingOptions() domain.BetOptions {
	return domain.BetOptions{
		Street:   domain.StreetFirst,
		Chips:    100,
		MinBet:   10,
		CanCheck: true,
		CanBet:   true,
		CanAllIn: true,
	}
}

func facingBetOptions() domain.BetOptions {
	return domain.BetOptions{
		Street:     domain.StreetFirst,
		CurrentBet: 20,
		ToCall:     20,
		Chips:      100,
		MinBet:     10,
		CanRaise:   true,
		CanAllIn:   true,
	}
}

func TestBetMenu_Opening(t *testing.T) {
	menu := NewBetMenu(openingOptions())

	assert.Equal(t, []string{
		"[0] View hand",
		"[1] Check",
		"[2] Bet <amt> (min 10)",
		"[3] Fold [card numbers to show]",
		"[4] All-in (100)",
		"[5] Quit game",
	}, menu.Lines())
	assert.Equal(t, "> ", menu.Prompt())
}

func TestBetMenu_FacingBet(t *testing.T) {
	menu := NewBetMenu(facingBetOptions())

	assert.Equal(t, []string{
		"[0] View hand",
		"[1] Call 20",
		"[2] Raise <amt> (min 10)",
		"[3] Fold [card numbers to show]",
		"[4] All-in (100)",
		"[5] Quit game",
	}, menu.Lines())
	assert.Equal(t, "(call 20 chips) > ", menu.Prompt())

	short := facingBetOptions()
	short.Chips = 15
	short.ToCall = 15
	short.CanRaise = false
	short.CanAllIn = false
	assert.Contains(t, NewBetMenu(short).Lines(), "[1] Call 15 (all-in)")
}

func TestBetMenu_Parse(t *testing.T) {
	menu := NewBetMenu(facingBetOptions())

	tests := []struct {
		line string
		want Command
	}{
		{"0", Command{Kind: CommandView}},
		{"exit", Command{Kind: CommandExit}},
		{"1", Command{Kind: CommandAct, Action: domain.Call()}},
		{"call", Command{Kind: CommandAct, Action: domain.Call()}},
		{"2 30", Command{Kind: CommandAct, Action: domain.Raise(30)}},
		{"RAISE 10", Command{Kind: CommandAct, Action: domain.Raise(10)}},
		{"3", Command{Kind: CommandAct, Action: domain.Fold()}},
		{"3 1 5", Command{Kind: CommandAct, Action: domain.Fold(0, 4)}},
		{"4", Command{Kind: CommandAct, Action: domain.AllIn()}},
		{"allin", Command{Kind: CommandAct, Action: domain.AllIn()}},
		{"5", Command{Kind: CommandAct, Action: domain.Quit()}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := menu.Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBetMenu_ParseErrors(t *testing.T) {
	menu := NewBetMenu(facingBetOptions())

	_, err := menu.Parse("")
	assert.ErrorIs(t, err, ErrInvalidCommand)

	_, err = menu.Parse("9")
	assert.ErrorIs(t, err, ErrInvalidCommand)

	_, err = menu.Parse("check")
	assert.ErrorIs(t, err, ErrInvalidCommand, "check is not offered while facing a bet")

	_, err = menu.Parse("2")
	assert.ErrorIs(t, err, ErrNeedAmount)

	_, err = menu.Parse("2 lots")
	assert.ErrorIs(t, err, ErrInvalidCommand)

	_, err = menu.Parse("2 -5")
	assert.ErrorIs(t, err, ErrInvalidCommand)

	_, err = menu.Parse("3 0")
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestParseDraw(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"", Command{Kind: CommandAct, Draw: domain.StandPat()}},
		{"stand", Command{Kind: CommandAct, Draw: domain.StandPat()}},
		{"0", Command{Kind: CommandView}},
		{"quit", Command{Kind: CommandAct, Draw: domain.DrawAction{Quit: true}}},
		{"exit", Command{Kind: CommandExit}},
		{"1 3 5", Command{Kind: CommandAct, Draw: domain.Discard(0, 2, 4)}},
		{"2, 4", Command{Kind: CommandAct, Draw: domain.Discard(1, 3)}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseDraw(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDraw("1 x")
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestParseYesNo(t *testing.T) {
	assert.True(t, ParseYesNo("y"))
	assert.True(t, ParseYesNo(" YES "))
	assert.False(t, ParseYesNo(""))
	assert.False(t, ParseYesNo("n"))
	assert.False(t, ParseYesNo("maybe"))
}
