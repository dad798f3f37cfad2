package domain

import (
	"sort"

	"github.com/lazharichir/drawpoker/domain/hands"
)

// Pot is one slice of the chips contributed this hand. Eligible seats are the
// unfolded players who contributed at least Level.
type Pot struct {
	Amount   int
	Level    int
	Eligible []int
}

// PotResult is the settlement of one pot
type PotResult struct {
	Pot
	Winners    []int       // seats, in payout order
	Shares     map[int]int // seat to chips won
	Evaluation hands.Evaluation
}

// BuildPots slices the hand's contributions by the distinct contribution
// levels of unfolded players. Folded chips stay in play up to each level;
// whatever lies above the highest unfolded level forms a last slice open to
// every unfolded player. The slices always add up to the whole pot.
func BuildPots(players []*Player) []Pot {
	levels := make([]int, 0, len(players))
	seen := make(map[int]bool)
	for _, p := range players {
		if p.InHand() && p.TotalBet > 0 && !seen[p.TotalBet] {
			seen[p.TotalBet] = true
			levels = append(levels, p.TotalBet)
		}
	}
	sort.Ints(levels)

	var (
		pots     []Pot
		assigned int
	)
	for _, level := range levels {
		amount := -assigned
		for _, p := range players {
			amount += min(p.TotalBet, level)
		}

		var eligible []int
		for _, p := range players {
			if p.InHand() && p.TotalBet >= level {
				eligible = append(eligible, p.Seat)
			}
		}

		if amount > 0 {
			pots = append(pots, Pot{Amount: amount, Level: level, Eligible: eligible})
			assigned += amount
		}
	}

	if residual := potTotal(players) - assigned; residual > 0 {
		var eligible []int
		for _, p := range players {
			if p.InHand() {
				eligible = append(eligible, p.Seat)
			}
		}
		top := 0
		if len(levels) > 0 {
			top = levels[len(levels)-1]
		}
		if len(eligible) > 0 {
			pots = append(pots, Pot{Amount: residual, Level: top, Eligible: eligible})
		}
	}

	return pots
}

// SettlePots awards every pot to the best eligible hands and credits the
// winners' stacks. Tied winners split evenly; leftover chips go one at a time
// to the tied winners closest to the dealer's left.
func SettlePots(pots []Pot, players []*Player, dealer int) []PotResult {
	results := make([]PotResult, 0, len(pots))

	for _, pot := range pots {
		evals := make(map[int]hands.Evaluation, len(pot.Eligible))
		for _, seat := range pot.Eligible {
			evals[seat] = players[seat].Hand.Evaluate()
		}

		best, winners := hands.Best(evals)
		winners = orderFromDealer(winners, dealer, len(players))

		shares := make(map[int]int, len(winners))
		if len(winners) > 0 {
			share := pot.Amount / len(winners)
			remainder := pot.Amount % len(winners)
			for i, seat := range winners {
				won := share
				if i < remainder {
					won++
				}
				shares[seat] = won
				players[seat].Chips += won
			}
		}

		results = append(results, PotResult{
			Pot:        pot,
			Winners:    winners,
			Shares:     shares,
			Evaluation: best,
		})
	}

	return results
}

// orderFromDealer sorts seats by their distance clockwise from the dealer's left
func orderFromDealer(seats []int, dealer, n int) []int {
	out := make([]int, len(seats))
	copy(out, seats)
	distance := func(seat int) int { return ((seat-dealer-1)%n + n) % n }
	sort.Slice(out, func(i, j int) bool { return distance(out[i]) < distance(out[j]) })
	return out
}
