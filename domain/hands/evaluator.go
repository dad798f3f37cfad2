package hands

import (
	"fmt"
	"sort"

	"github.com/lazharichir/drawpoker/cards"
)

// Category represents the strength class of a five-card hand
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

func (c Category) String() string {
	if c < HighCard || c > StraightFlush {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Evaluation is the comparable value of a hand: its category, then a
// tiebreak key of rank values compared left to right. Unused slots are 0.
type Evaluation struct {
	Category Category `json:"category"`
	Key      [5]int   `json:"key"`
}

// rankGroup is a set of cards sharing a rank
type rankGroup struct {
	rank  int
	count int
}

// groupByRank groups the cards by rank, ordered by count then rank, both descending
func groupByRank(hand cards.Stack) []rankGroup {
	counts := make(map[int]int, len(hand))
	for _, c := range hand {
		counts[c.Rank()]++
	}

	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	return groups
}

func isFlush(hand cards.Stack) bool {
	for _, c := range hand[1:] {
		if c.Suit != hand[0].Suit {
			return false
		}
	}
	return true
}

// straightHigh returns the high card of a straight, or 0 when the groups are
// not five consecutive ranks. The wheel (A-2-3-4-5) is five high.
func straightHigh(groups []rankGroup) int {
	if len(groups) != 5 {
		return 0
	}

	// five singletons are ordered by rank descending
	if groups[0].rank-groups[4].rank == 4 {
		return groups[0].rank
	}
	if groups[0].rank == 14 && groups[1].rank == 5 && groups[4].rank == 2 {
		return 5
	}
	return 0
}

// keyFromGroups lays each group out count times, in group order
func keyFromGroups(groups []rankGroup) [5]int {
	var key [5]int
	i := 0
	for _, g := range groups {
		for n := 0; n < g.count && i < len(key); n++ {
			key[i] = g.rank
			i++
		}
	}
	return key
}

// Evaluate ranks exactly five cards. Any other size is a caller bug and panics.
func Evaluate(hand cards.Stack) Evaluation {
	if len(hand) != Size {
		panic(fmt.Sprintf("hands: evaluate needs exactly %d cards, got %d", Size, len(hand)))
	}

	groups := groupByRank(hand)
	flush := isFlush(hand)
	high := straightHigh(groups)

	switch {
	case flush && high > 0:
		return Evaluation{Category: StraightFlush, Key: [5]int{high}}
	case groups[0].count == 4:
		return Evaluation{Category: FourOfAKind, Key: keyFromGroups(groups)}
	case groups[0].count == 3 && groups[1].count == 2:
		return Evaluation{Category: FullHouse, Key: keyFromGroups(groups)}
	case flush:
		return Evaluation{Category: Flush, Key: keyFromGroups(groups)}
	case high > 0:
		return Evaluation{Category: Straight, Key: [5]int{high}}
	case groups[0].count == 3:
		return Evaluation{Category: ThreeOfAKind, Key: keyFromGroups(groups)}
	case groups[0].count == 2 && groups[1].count == 2:
		return Evaluation{Category: TwoPair, Key: keyFromGroups(groups)}
	case groups[0].count == 2:
		return Evaluation{Category: OnePair, Key: keyFromGroups(groups)}
	default:
		return Evaluation{Category: HighCard, Key: keyFromGroups(groups)}
	}
}

// Compare returns 1 if a beats b, -1 if b beats a, 0 on a tie
func Compare(a, b Evaluation) int {
	if a.Category != b.Category {
		return compareInt(int(a.Category), int(b.Category))
	}
	for i := range a.Key {
		if c := compareInt(a.Key[i], b.Key[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Compare is the method form of Compare
func (e Evaluation) Compare(other Evaluation) int {
	return Compare(e, other)
}

func compareInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// Best returns the strongest evaluation among the seats and every seat that
// holds it, in ascending seat order. An empty map yields no seats.
func Best(evaluations map[int]Evaluation) (Evaluation, []int) {
	var (
		best  Evaluation
		seats []int
	)

	for seat, eval := range evaluations {
		switch {
		case seats == nil || Compare(eval, best) > 0:
			best = eval
			seats = []int{seat}
		case Compare(eval, best) == 0:
			seats = append(seats, seat)
		}
	}

	sort.Ints(seats)
	return best, seats
}

var rankNames = map[int][2]string{
	2:  {"Two", "Twos"},
	3:  {"Three", "Threes"},
	4:  {"Four", "Fours"},
	5:  {"Five", "Fives"},
	6:  {"Six", "Sixes"},
	7:  {"Seven", "Sevens"},
	8:  {"Eight", "Eights"},
	9:  {"Nine", "Nines"},
	10: {"Ten", "Tens"},
	11: {"Jack", "Jacks"},
	12: {"Queen", "Queens"},
	13: {"King", "Kings"},
	14: {"Ace", "Aces"},
}

func rankName(rank int) string   { return rankNames[rank][0] }
func rankPlural(rank int) string { return rankNames[rank][1] }

// String describes the hand, e.g. "Full House, Nines full of Fours"
func (e Evaluation) String() string {
	k := e.Key
	switch e.Category {
	case StraightFlush:
		if k[0] == 14 {
			return "Royal Flush"
		}
		return fmt.Sprintf("%s, %s high", e.Category, rankName(k[0]))
	case FourOfAKind:
		return fmt.Sprintf("%s, %s", e.Category, rankPlural(k[0]))
	case FullHouse:
		return fmt.Sprintf("%s, %s full of %s", e.Category, rankPlural(k[0]), rankPlural(k[3]))
	case Flush, Straight:
		return fmt.Sprintf("%s, %s high", e.Category, rankName(k[0]))
	case ThreeOfAKind:
		return fmt.Sprintf("%s, %s", e.Category, rankPlural(k[0]))
	case TwoPair:
		return fmt.Sprintf("%s, %s and %s", e.Category, rankPlural(k[0]), rankPlural(k[2]))
	case OnePair:
		return fmt.Sprintf("%s, %s", e.Category, rankPlural(k[0]))
	default:
		return fmt.Sprintf("%s, %s", e.Category, rankName(k[0]))
	}
}
