package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// next asserts who is to act and returns them
func next(t *testing.T, round *BettingRound, name string) *Player {
	t.Helper()
	p, ok := round.NextToAct()
	require.True(t, ok, "expected %s to act", name)
	require.Equal(t, name, p.Name)
	return p
}

func apply(t *testing.T, round *BettingRound, p *Player, a Action) Outcome {
	t.Helper()
	out, err := round.Apply(p, a)
	require.NoError(t, err)
	return out
}

func TestBettingRound_AllCheckEndsRound(t *testing.T) {
	players := newPlayers(100, 100, 100)
	round := NewBettingRound(StreetFirst, players, 0, 10)

	assert.Equal(t, []int{1, 2, 0}, round.Order())

	apply(t, round, next(t, round, "Bob"), Check())
	apply(t, round, next(t, round, "Carol"), Check())
	apply(t, round, next(t, round, "Alice"), Check())

	assert.True(t, round.Done())
	_, ok := round.NextToAct()
	assert.False(t, ok)
	assert.Equal(t, 0, round.Moved)
}

func TestBettingRound_BetAndCalls(t *testing.T) {
	players := newPlayers(100, 100, 100)
	round := NewBettingRound(StreetFirst, players, 0, 10)

	out := apply(t, round, next(t, round, "Bob"), Bet(20))
	assert.Equal(t, ActionBet, out.Action)
	assert.True(t, out.FullRaise)
	assert.Equal(t, 20, round.CurrentBet)
	assert.Equal(t, 1, round.LastRaiser)

	out = apply(t, round, next(t, round, "Carol"), Call())
	assert.Equal(t, 20, out.Amount)
	apply(t, round, next(t, round, "Alice"), Call())

	assert.True(t, round.Done())
	assert.Equal(t, 60, round.Moved)
	for _, p := range players {
		assert.Equal(t, 80, p.Chips)
		assert.Equal(t, 20, p.TotalBet)
	}
	assert.Equal(t, "called 20", players[0].LastAction)
	assert.Equal(t, "bet 20", players[1].LastAction)
}

func TestBettingRound_RaiseReopensAction(t *testing.T) {
	players := newPlayers(100, 100, 100)
	round := NewBettingRound(StreetFirst, players, 0, 10)

	apply(t, round, next(t, round, "Bob"), Bet(20))
	out := apply(t, round, next(t, round, "Carol"), Raise(30))
	assert.Equal(t, ActionRaise, out.Action)
	assert.Equal(t, 50, out.To)
	assert.Equal(t, 30, out.RaiseBy)
	assert.True(t, out.FullRaise)

	apply(t, round, next(t, round, "Alice"), Call())
	bob := next(t, round, "Bob")
	assert.Equal(t, 30, round.Options(bob).ToCall)
	apply(t, round, bob, Call())

	assert.True(t, round.Done())
	assert.Equal(t, 150, potTotal(players))
}

func TestBettingRound_InvalidActionsLeaveStateUntouched(t *testing.T) {
	players := newPlayers(100, 100, 100)
	round := NewBettingRound(StreetFirst, players, 0, 10)

	bob := next(t, round, "Bob")
	for _, a := range []Action{Bet(5), Bet(0), Bet(150), {Type: "dance"}} {
		_, err := round.Apply(bob, a)
		assert.ErrorIs(t, err, ErrInvalidAction, a.String())
	}
	assert.Equal(t, 100, bob.Chips)
	assert.Equal(t, 0, round.CurrentBet)

	apply(t, round, bob, Bet(20))

	carol := next(t, round, "Carol")
	_, err := round.Apply(carol, Check())
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Contains(t, err.Error(), "20 to call")

	_, err = round.Apply(carol, Raise(5))
	assert.ErrorIs(t, err, ErrInvalidAction)

	assert.Equal(t, 100, carol.Chips)
	assert.Equal(t, "Carol", next(t, round, "Carol").Name)
}

func TestBettingRound_CallWithNothingOwedChecks(t *testing.T) {
	players := newPlayers(100, 100)
	round := NewBettingRound(StreetFirst, players, 0, 10)

	out := apply(t, round, next(t, round, "Bob"), Call())
	assert.Equal(t, ActionCheck, out.Action)
	assert.Equal(t, 100, players[1].Chips)
}

func TestBettingRound_UnaffordableRaiseBecomesCall(t *testing.T) {
	players := newPlayers(100, 100, 40)
	round := NewBettingRound(StreetFirst, players, 0, 10)

	apply(t, round, next(t, round, "Bob"), Bet(20))
	out := apply(t, round, next(t, round, "Carol"), Raise(30))

	assert.Equal(t, ActionCall, out.Action)
	assert.True(t, out.Downgraded)
	assert.Equal(t, 20, out.Amount)
	assert.Equal(t, 20, players[2].Chips)
	assert.Equal(t, 20, round.CurrentBet)
}

func TestBettingRound_ShortAllInDoesNotReopen(t *testing.T) {
	players := newPlayers(100, 100, 25)
	round := NewBettingRound(StreetFirst, players, 2, 10)

	apply(t, round, next(t, round, "Alice"), Bet(20))
	apply(t, round, next(t, round, "Bob"), Call())

	carol := next(t, round, "Carol")
	opts := round.Options(carol)
	assert.True(t, opts.CanAllIn)
	assert.False(t, opts.CanRaise)

	out := apply(t, round, carol, AllIn())
	assert.True(t, out.AllIn)
	assert.False(t, out.FullRaise)
	assert.Equal(t, 25, round.CurrentBet)
	assert.Equal(t, 0, round.LastRaiser)

	alice := next(t, round, "Alice")
	opts = round.Options(alice)
	assert.Equal(t, 5, opts.ToCall)
	assert.False(t, opts.CanRaise)
	assert.False(t, opts.CanAllIn)

	_, err := round.Apply(alice, Raise(20))
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = round.Apply(alice, AllIn())
	assert.ErrorIs(t, err, ErrInvalidAction)

	apply(t, round, alice, Call())
	apply(t, round, next(t, round, "Bob"), Call())
	assert.True(t, round.Done())
	assert.Equal(t, 75, potTotal(players))
}

func TestBettingRound_FullAllInReopens(t *testing.T) {
	players := newPlayers(100, 100, 50)
	round := NewBettingRound(StreetFirst, players, 2, 10)

	apply(t, round, next(t, round, "Alice"), Bet(20))
	apply(t, round, next(t, round, "Bob"), Call())

	out := apply(t, round, next(t, round, "Carol"), AllIn())
	assert.True(t, out.FullRaise)
	assert.Equal(t, 30, out.RaiseBy)
	assert.Equal(t, 2, round.LastRaiser)

	alice := next(t, round, "Alice")
	assert.True(t, round.Options(alice).CanRaise)
	apply(t, round, alice, Raise(20))

	bob := next(t, round, "Bob")
	assert.Equal(t, 50, round.Options(bob).ToCall)
	apply(t, round, bob, Fold())

	assert.True(t, round.Done())
}

func TestBettingRound_FoldsToOneEndRound(t *testing.T) {
	players := newPlayers(100, 100, 100)
	giveHand(players[0], "As Ks Qs Js 9d")
	round := NewBettingRound(StreetFirst, players, 0, 10)

	apply(t, round, next(t, round, "Bob"), Bet(20))
	apply(t, round, next(t, round, "Carol"), Fold())
	apply(t, round, next(t, round, "Alice"), Fold(0, 0, 9))

	assert.True(t, round.Done())
	assert.Equal(t, 1, liveHands(players))
	assert.Equal(t, []int{0}, players[0].RevealedOnFold)

	_, err := round.Apply(players[2], Check())
	assert.ErrorIs(t, err, ErrPlayerCannotAct)
}

func TestBettingRound_LoneActorDoesNotAct(t *testing.T) {
	players := newPlayers(100, 0, 0)
	players[1].AllIn = true
	players[1].TotalBet = 50
	players[2].AllIn = true
	players[2].TotalBet = 50

	round := NewBettingRound(StreetSecond, players, 0, 10)
	assert.Equal(t, []int{0}, round.Order())
	assert.True(t, round.Done())
}

func TestBettingRound_RaiseClosedWhenNobodyCanAnswer(t *testing.T) {
	players := newPlayers(100, 30)
	round := NewBettingRound(StreetFirst, players, 0, 10)

	out := apply(t, round, next(t, round, "Bob"), AllIn())
	assert.True(t, out.FullRaise)
	assert.Equal(t, 30, out.To)

	alice := next(t, round, "Alice")
	opts := round.Options(alice)
	assert.Equal(t, 30, opts.ToCall)
	assert.False(t, opts.CanRaise)
	assert.False(t, opts.CanAllIn)

	_, err := round.Apply(alice, Raise(20))
	assert.ErrorIs(t, err, ErrInvalidAction)

	apply(t, round, alice, Call())
	assert.True(t, round.Done())
	assert.Equal(t, 70, alice.Chips)
}

func TestBetOptions_Allows(t *testing.T) {
	players := newPlayers(100, 100)
	round := NewBettingRound(StreetFirst, players, 0, 10)

	bob := next(t, round, "Bob")
	opts := round.Options(bob)
	assert.True(t, opts.Allows(ActionCheck))
	assert.True(t, opts.Allows(ActionBet))
	assert.False(t, opts.Allows(ActionRaise))
	assert.False(t, opts.Allows(ActionCall))
	assert.True(t, opts.Allows(ActionFold))
	assert.True(t, opts.Allows(ActionQuit))

	apply(t, round, bob, Bet(95))
	opts = round.Options(players[0])
	assert.Equal(t, 95, opts.ToCall)
	assert.False(t, opts.CanRaise)
	assert.True(t, opts.CanAllIn)
	assert.False(t, opts.CallIsAllIn())
}
