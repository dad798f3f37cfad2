package console

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/lazharichir/drawpoker/cards"
	"github.com/lazharichir/drawpoker/domain"
	"github.com/lazharichir/drawpoker/domain/events"
	"github.com/pterm/pterm"
)

const clearScreen = "\033[H\033[2J"

// Presenter prints table events and prompts for a table shared by every
// player at one terminal.
type Presenter struct {
	w     io.Writer
	clear bool
}

type PresenterOption func(*Presenter)

// WithClearScreen clears the terminal at the start of every hand
func WithClearScreen() PresenterOption {
	return func(p *Presenter) { p.clear = true }
}

func NewPresenter(w io.Writer, opts ...PresenterOption) *Presenter {
	p := &Presenter{w: w}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Presenter) print(s string) {
	fmt.Fprint(p.w, s)
}

func (p *Presenter) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *Presenter) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

func (p *Presenter) Info(format string, a ...any) {
	p.print(pterm.Info.Sprintfln(format, a...))
}

func (p *Presenter) Success(format string, a ...any) {
	p.print(pterm.Success.Sprintfln(format, a...))
}

func (p *Presenter) Warning(format string, a ...any) {
	p.print(pterm.Warning.Sprintfln(format, a...))
}

func (p *Presenter) Error(format string, a ...any) {
	p.print(pterm.Error.Sprintfln(format, a...))
}

func (p *Presenter) Section(title string) {
	p.print(pterm.DefaultSection.Sprint(title))
}

// ShowHand lists the cards with the numbers used to discard or show them
func (p *Presenter) ShowHand(name string, hand cards.Stack) {
	p.print(pterm.Sprintfln("%s's hand: %s", pterm.LightCyan(name), numbered(hand)))
}

func numbered(hand cards.Stack) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = fmt.Sprintf("[%d] %s", i+1, c)
	}
	return strings.Join(parts, "  ")
}

// ShowTable prints the public state a player needs before acting
func (p *Presenter) ShowTable(view domain.TableView) {
	p.print(pterm.Sprintfln("Pot: %s  Current bet: %d", pterm.LightGreen(view.Pot), view.CurrentBet))

	data := pterm.TableData{{"Player", "Chips", "Bet", "Status"}}
	for _, pl := range view.Players {
		if pl.LastAction == "" && !pl.InHand {
			continue
		}
		name := pl.Name
		if pl.IsDealer {
			name += " (D)"
		}
		status := pl.LastAction
		switch {
		case pl.AllIn:
			status = "all-in"
		case pl.Folded && len(pl.Shown) > 0:
			status = fmt.Sprintf("%s, showed %s", pl.LastAction, pl.Shown)
		}
		data = append(data, []string{name, fmt.Sprint(pl.Chips), fmt.Sprint(pl.RoundBet), status})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		p.Error("failed to render table: %v", err)
		return
	}
	p.Println(rendered)
}

// ShowStandings prints every stack, largest first
func (p *Presenter) ShowStandings(players []domain.PlayerView) {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b domain.PlayerView) int { return b.Chips - a.Chips })

	data := pterm.TableData{{"Player", "Chips"}}
	for _, pl := range sorted {
		data = append(data, []string{pl.Name, fmt.Sprint(pl.Chips)})
	}
	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		p.Error("failed to render standings: %v", err)
		return
	}
	p.Println(rendered)
}

// HandleEvent prints one table event. It is registered as a table event handler.
func (p *Presenter) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case events.TableCreated:
		p.Section("Table " + e.TableName)
		timer := "no turn timer"
		if e.TurnTimeout > 0 {
			timer = fmt.Sprintf("%s per decision", e.TurnTimeout)
		}
		p.Info("Minimum bet %d, up to %d cards drawn, %s", e.MinBet, e.MaxDiscards, timer)
	case events.PlayerSeated:
		p.Info("%s sits in seat %d with %d chips", pterm.LightCyan(e.PlayerName), e.Seat+1, e.Chips)
	case events.HandStarted:
		if p.clear {
			p.print(clearScreen)
		}
		p.Section(fmt.Sprintf("Hand #%d", e.Number))
		p.Info("Dealer: %s. Dealing to %s", pterm.LightCyan(e.DealerName), strings.Join(e.Players, ", "))
	case events.BettingRoundStarted:
		p.Section(capitalize(e.Street))
		p.Info("%s acts first", pterm.LightCyan(e.FirstToAct))
	case events.BettingRoundEnded:
		p.Info("Betting closed, pot is %d", e.Pot)
	case events.PlayerTimedOut:
		p.Warning("%s ran out of time and will %s", e.PlayerName, e.DefaultAction)
	case events.PlayerChecked:
		p.Info("%s checks", e.PlayerName)
	case events.PlayerCalled:
		p.Info("%s calls %d%s", e.PlayerName, e.Amount, allInSuffix(e.AllIn))
	case events.PlayerBet:
		p.Info("%s bets %d%s", e.PlayerName, e.Amount, allInSuffix(e.AllIn))
	case events.PlayerRaised:
		p.Info("%s raises by %d to %d%s", e.PlayerName, e.RaiseBy, e.To, allInSuffix(e.AllIn))
	case events.PlayerWentAllIn:
		p.Info("%s goes all-in for %d", e.PlayerName, e.Amount)
	case events.PlayerFolded:
		switch {
		case len(e.Shown) > 0:
			p.Info("%s folds showing %s", e.PlayerName, e.Shown)
		case e.TimedOut:
			p.Info("%s is folded", e.PlayerName)
		default:
			p.Info("%s folds", e.PlayerName)
		}
	case events.PlayerQuit:
		p.Warning("%s left the game, %s", e.PlayerName, formatShares(e.Shares))
	case events.DrawStarted:
		p.Section("Draw")
		p.Info("Each player may replace up to %d cards", e.MaxDiscards)
	case events.PlayerDrew:
		p.Info("%s draws %d", e.PlayerName, e.Count)
	case events.PlayerStoodPat:
		p.Info("%s stands pat", e.PlayerName)
	case events.CardsDrawn:
		// the drawer is the one at the keyboard
		p.ShowHand(e.PlayerName, e.Hand)
	case events.ShowdownStarted:
		p.Section("Showdown")
	case events.PlayerShowedHand:
		p.Info("%s shows %s, %s", pterm.LightCyan(e.PlayerName), e.Cards, e.Description)
	case events.PotAwarded:
		p.Success("%s of %d: %s with %s", potName(e.Index), e.Amount, formatWinners(e.Winners, e.Shares), e.Description)
	case events.UncontestedPotAwarded:
		p.Success("%s wins %d uncontested", pterm.LightCyan(e.PlayerName), e.Amount)
	case events.PlayerRevealed:
		p.Info("%s reveals %s", e.PlayerName, e.Cards)
	case events.HandEnded:
		p.Info("Hand over in %s", (time.Duration(e.Duration) * time.Millisecond).Round(time.Second))
	case events.TableWinnerDetermined:
		box := pterm.DefaultBox.WithTitle(pterm.LightGreen("|WINNER|")).WithTitleTopCenter().WithHorizontalPadding(4)
		p.Println(box.Sprintf("%s wins the table with %d chips after %d hands", e.PlayerName, e.Chips, e.HandsPlayed))
	}
}

func allInSuffix(allIn bool) string {
	if allIn {
		return " and is all-in"
	}
	return ""
}

func potName(index int) string {
	if index == 0 {
		return "Main pot"
	}
	return fmt.Sprintf("Side pot %d", index)
}

func formatWinners(winners []string, shares map[string]int) string {
	if len(winners) == 1 {
		return pterm.LightCyan(winners[0])
	}
	parts := make([]string, len(winners))
	for i, name := range winners {
		parts[i] = fmt.Sprintf("%s %d", pterm.LightCyan(name), shares[name])
	}
	return "split " + strings.Join(parts, ", ")
}

func formatShares(shares map[string]int) string {
	if len(shares) == 0 {
		return "no one left to take the chips"
	}
	names := slices.Sorted(maps.Keys(shares))
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s +%d", name, shares[name])
	}
	return "chips shared: " + strings.Join(parts, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
