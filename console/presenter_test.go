package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lazharichir/drawpoker/cards"
	"github.com/lazharichir/drawpoker/domain"
	"github.com/lazharichir/drawpoker/domain/events"
	"github.com/stretchr/testify/assert"
)

func TestPresenter_HandleEvent(t *testing.T) {
	tests := []struct {
		name  string
		event events.Event
		want  string
	}{
		{"bet", events.PlayerBet{PlayerName: "Alice", Amount: 20}, "Alice bets 20"},
		{"call all-in", events.PlayerCalled{PlayerName: "Bob", Amount: 15, AllIn: true}, "Bob calls 15 and is all-in"},
		{"raise", events.PlayerRaised{PlayerName: "Carol", RaiseBy: 10, To: 30}, "Carol raises by 10 to 30"},
		{"fold showing", events.PlayerFolded{PlayerName: "Dave", Shown: cards.MustParse("As 2s")}, "Dave folds showing A♠ 2♠"},
		{"timeout", events.PlayerTimedOut{PlayerName: "Erin", DefaultAction: "stand pat"}, "Erin ran out of time and will stand pat"},
		{"drew", events.PlayerDrew{PlayerName: "Bob", Count: 3}, "Bob draws 3"},
		{"quit", events.PlayerQuit{PlayerName: "Bob", Shares: map[string]int{"Carol": 50, "Alice": 51}}, "chips shared: Alice +51, Carol +50"},
		{"main pot", events.PotAwarded{Index: 0, Amount: 300, Winners: []string{"Alice"}, Description: "three aces"}, "Main pot of 300: Alice with three aces"},
		{"split side pot", events.PotAwarded{Index: 1, Amount: 101, Winners: []string{"Bob", "Carol"}, Shares: map[string]int{"Bob": 51, "Carol": 50}, Description: "a pair of kings"}, "Side pot 1 of 101: split Bob 51, Carol 50 with a pair of kings"},
		{"uncontested", events.UncontestedPotAwarded{PlayerName: "Alice", Amount: 40}, "Alice wins 40 uncontested"},
		{"street", events.BettingRoundStarted{Street: string(domain.StreetSecond), FirstToAct: "Bob"}, "Second betting round"},
		{"winner", events.TableWinnerDetermined{PlayerName: "Alice", Chips: 600, HandsPlayed: 12}, "Alice wins the table with 600 chips after 12 hands"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			NewPresenter(out).HandleEvent(tt.event)
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestPresenter_KeepsDealtCardsOffScreen(t *testing.T) {
	out := &bytes.Buffer{}
	NewPresenter(out).HandleEvent(events.CardsDealt{PlayerName: "Alice", Cards: cards.MustParse("As Kd 7c 7h 2s")})
	assert.Empty(t, out.String())
}

func TestPresenter_ClearsScreenEachHand(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPresenter(out, WithClearScreen())
	p.HandleEvent(events.HandStarted{Number: 2, DealerName: "Bob", Players: []string{"Carol", "Alice", "Bob"}})

	assert.True(t, strings.HasPrefix(out.String(), clearScreen))
	assert.Contains(t, out.String(), "Hand #2")
	assert.Contains(t, out.String(), "Dealing to Carol, Alice, Bob")
}

func TestPresenter_ShowStandings(t *testing.T) {
	out := &bytes.Buffer{}
	NewPresenter(out).ShowStandings([]domain.PlayerView{
		{Name: "Alice", Chips: 50},
		{Name: "Bob", Chips: 250},
	})

	printed := out.String()
	assert.Less(t, strings.Index(printed, "Bob"), strings.Index(printed, "Alice"))
	assert.Contains(t, printed, "250")
}
