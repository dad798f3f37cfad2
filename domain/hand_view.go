package domain

import "github.com/lazharichir/drawpoker/cards"

// PlayerView is the public state of one seat
type PlayerView struct {
	ID         string
	Name       string
	Seat       int
	Chips      int
	RoundBet   int
	TotalBet   int
	InHand     bool
	Folded     bool
	AllIn      bool
	IsDealer   bool
	LastAction string
	Shown      cards.Stack // cards shown on fold
}

// TableView is the public state of the table, safe to show every seat
type TableView struct {
	TableID    string
	TableName  string
	HandID     string
	HandNumber int
	Pot        int
	CurrentBet int
	Players    []PlayerView
}

// StillIn returns the players holding a live hand
func (v TableView) StillIn() []PlayerView {
	var out []PlayerView
	for _, p := range v.Players {
		if p.InHand {
			out = append(out, p)
		}
	}
	return out
}

// FoldedThisHand returns the players who were dealt in and folded
func (v TableView) FoldedThisHand() []PlayerView {
	var out []PlayerView
	for _, p := range v.Players {
		if p.Folded && p.LastAction != "" {
			out = append(out, p)
		}
	}
	return out
}

func viewOf(p *Player, dealer int) PlayerView {
	return PlayerView{
		ID:         p.ID,
		Name:       p.Name,
		Seat:       p.Seat,
		Chips:      p.Chips,
		RoundBet:   p.RoundBet,
		TotalBet:   p.TotalBet,
		InHand:     p.InHand(),
		Folded:     p.Folded,
		AllIn:      p.AllIn,
		IsDealer:   p.Seat == dealer,
		LastAction: p.LastAction,
		Shown:      p.ShownCards(),
	}
}

// BuildView builds the public view of the table
func (t *Table) BuildView(currentBet int) TableView {
	view := TableView{
		TableID:    t.ID,
		TableName:  t.Name,
		HandNumber: t.HandsPlayed,
		Pot:        potTotal(t.Players),
		CurrentBet: currentBet,
		Players:    make([]PlayerView, 0, len(t.Players)),
	}
	if t.ActiveHand != nil {
		view.HandID = t.ActiveHand.ID
	}
	for _, p := range t.Players {
		view.Players = append(view.Players, viewOf(p, t.Dealer))
	}
	return view
}
