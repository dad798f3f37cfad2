package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contribute(players []*Player, amounts ...int) {
	for i, a := range amounts {
		players[i].Chips -= a
		players[i].TotalBet = a
	}
}

func sumPots(pots []Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

func TestBuildPots_SingleLevel(t *testing.T) {
	players := newPlayers(100, 100, 100)
	contribute(players, 30, 30, 30)

	pots := BuildPots(players)
	require.Len(t, pots, 1)
	assert.Equal(t, Pot{Amount: 90, Level: 30, Eligible: []int{0, 1, 2}}, pots[0])
}

func TestBuildPots_AllInCreatesSidePot(t *testing.T) {
	players := newPlayers(100, 100, 50)
	contribute(players, 100, 100, 50)
	players[2].AllIn = true

	pots := BuildPots(players)
	require.Len(t, pots, 2)
	assert.Equal(t, Pot{Amount: 150, Level: 50, Eligible: []int{0, 1, 2}}, pots[0])
	assert.Equal(t, Pot{Amount: 100, Level: 100, Eligible: []int{0, 1}}, pots[1])
	assert.Equal(t, potTotal(players), sumPots(pots))
}

func TestBuildPots_FoldedChipsStayInPlay(t *testing.T) {
	players := newPlayers(300, 100, 100)
	contribute(players, 200, 50, 80)
	players[0].Folded = true

	pots := BuildPots(players)
	require.Len(t, pots, 3)

	// 50 from each
	assert.Equal(t, Pot{Amount: 150, Level: 50, Eligible: []int{1, 2}}, pots[0])
	// 30 more from seats 0 and 2
	assert.Equal(t, Pot{Amount: 60, Level: 80, Eligible: []int{2}}, pots[1])
	// the folded overbet
	assert.Equal(t, Pot{Amount: 120, Level: 80, Eligible: []int{1, 2}}, pots[2])
	assert.Equal(t, 330, sumPots(pots))
}

func TestBuildPots_SumsToContributions(t *testing.T) {
	tests := [][]int{
		{10, 20, 30, 40, 50, 60},
		{60, 60, 10, 10, 0, 35},
		{5, 100, 100, 100, 7, 7},
		{0, 0, 0, 0, 0, 0},
	}

	for _, amounts := range tests {
		players := newPlayers(100, 100, 100, 100, 100, 100)
		contribute(players, amounts...)
		players[4].Folded = true

		pots := BuildPots(players)
		assert.Equal(t, potTotal(players), sumPots(pots), "%v", amounts)
	}
}

func TestSettlePots_AllInWinsOnlyWhatTheyMatched(t *testing.T) {
	players := newPlayers(100, 100, 50)
	contribute(players, 100, 100, 50)
	players[2].AllIn = true
	giveHand(players[0], "Ks Kc 9d 7h 3c")
	giveHand(players[1], "Kh Kd 9c 7s 3h")
	giveHand(players[2], "Qs Qd Qc 5h 2d")

	results := SettlePots(BuildPots(players), players, 0)
	require.Len(t, results, 2)

	assert.Equal(t, 150, results[0].Amount)
	assert.Equal(t, []int{2}, results[0].Winners)
	assert.Equal(t, "Three of a Kind, Queens", results[0].Evaluation.String())

	assert.Equal(t, 100, results[1].Amount)
	assert.Equal(t, []int{1, 0}, results[1].Winners)
	assert.Equal(t, map[int]int{0: 50, 1: 50}, results[1].Shares)

	assert.Equal(t, 50, players[0].Chips)
	assert.Equal(t, 50, players[1].Chips)
	assert.Equal(t, 150, players[2].Chips)
}

func TestSettlePots_OddChipGoesLeftOfDealer(t *testing.T) {
	players := newPlayers(100, 100, 100)
	contribute(players, 15, 15, 15)
	giveHand(players[0], "Ks Kc 9d 7h 3c")
	giveHand(players[1], "Qs Jd 8c 5h 2d")
	giveHand(players[2], "Kh Kd 9c 7s 3h")

	// dealer at seat 1: seat 2 is first to the left, then seat 0
	results := SettlePots(BuildPots(players), players, 1)
	require.Len(t, results, 1)
	assert.Equal(t, []int{2, 0}, results[0].Winners)
	assert.Equal(t, map[int]int{2: 23, 0: 22}, results[0].Shares)
	assert.Equal(t, 85+22, players[0].Chips)
	assert.Equal(t, 85+23, players[2].Chips)
}

func TestOrderFromDealer(t *testing.T) {
	assert.Equal(t, []int{4, 5, 0, 2}, orderFromDealer([]int{0, 2, 4, 5}, 3, 6))
	assert.Equal(t, []int{0, 1}, orderFromDealer([]int{1, 0}, 5, 6))
}
