package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/lazharichir/drawpoker/config"
	"github.com/lazharichir/drawpoker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSetup(input string) (*Setup, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewSetup(NewLineReader(strings.NewReader(input)), NewPresenter(out)), out
}

func TestSetup_CompleteSettings(t *testing.T) {
	s, out := newTestSetup("1\n3\nabc\n105\n500\n400\n0\n")
	cfg := &config.Config{MinBet: 10, MaxDiscards: 3}

	require.NoError(t, s.CompleteSettings(context.Background(), cfg))
	assert.Equal(t, 3, cfg.Players)
	assert.Equal(t, 500, cfg.StartingChips)
	assert.Equal(t, time.Duration(0), cfg.Timeout())

	printed := out.String()
	assert.Contains(t, printed, "Number of players (2-6)")
	assert.Contains(t, printed, "Please enter a number between 2 and 6.")
	assert.Contains(t, printed, "Please enter a number.")
	assert.Contains(t, printed, "Please enter a multiple of 10.")
	assert.Contains(t, printed, "Please enter a number between 5 and 300, or 0.")
}

func TestSetup_CompleteSettings_KeepsConfigured(t *testing.T) {
	s, _ := newTestSetup("")
	cfg := &config.Config{Players: 2, StartingChips: 100, TurnTimeout: 30 * time.Second, MinBet: 10, MaxDiscards: 3}

	require.NoError(t, s.CompleteSettings(context.Background(), cfg))
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestSetup_CompleteSettings_EndOfInput(t *testing.T) {
	s, _ := newTestSetup("4\n")
	err := s.CompleteSettings(context.Background(), &config.Config{MinBet: 10, MaxDiscards: 3})
	assert.ErrorIs(t, err, io.EOF)
}

func TestSetup_SeatPlayers(t *testing.T) {
	s, out := newTestSetup("\nBob\nCarol\n")
	table := domain.NewTable("test", domain.DefaultRules(), nil)
	cfg := &config.Config{Players: 3, StartingChips: 200, PlayerNames: []string{"Alice", "alice"}}

	require.NoError(t, s.SeatPlayers(context.Background(), table, cfg))
	require.Len(t, table.Players, 3)
	for i, name := range []string{"Alice", "Bob", "Carol"} {
		assert.Equal(t, name, table.Players[i].Name)
		assert.Equal(t, 200, table.Players[i].Chips)
	}

	printed := out.String()
	assert.Contains(t, printed, `Cannot use "alice"`)
	assert.Contains(t, printed, "Enter name for Player 2 (max 20 chars)")
	assert.Contains(t, printed, "Invalid name. Try again.")
}

func TestSetup_PlayAgain(t *testing.T) {
	s, out := newTestSetup("y\nn\n")

	again, err := s.PlayAgain(context.Background())
	require.NoError(t, err)
	assert.True(t, again)

	again, err = s.PlayAgain(context.Background())
	require.NoError(t, err)
	assert.False(t, again)
	assert.Contains(t, out.String(), "Start a new game with same settings? [y/N]")
}
