package history

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/lazharichir/drawpoker/domain/events"
)

// HandLog is the record of one hand: what everyone saw, and the cards only
// their owners saw.
type HandLog struct {
	HandID  string
	Number  int
	Public  []string
	Private []string
}

// Recorder rebuilds the table log from the event stream. Stacks are replayed
// from the events rather than read from the table, so every public line
// carries the stack the action left behind.
type Recorder struct {
	mu        sync.Mutex
	tableName string
	hands     []*HandLog
	stacks    map[string]int
}

func NewRecorder(tableName string) *Recorder {
	return &Recorder{
		tableName: tableName,
		stacks:    make(map[string]int),
	}
}

func (r *Recorder) TableName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tableName
}

// Hands returns a copy of the per-hand logs
func (r *Recorder) Hands() []HandLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]HandLog, len(r.hands))
	for i, h := range r.hands {
		out[i] = HandLog{
			HandID:  h.HandID,
			Number:  h.Number,
			Public:  append([]string(nil), h.Public...),
			Private: append([]string(nil), h.Private...),
		}
	}
	return out
}

// Stack is the replayed stack of a player
func (r *Recorder) Stack(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stacks[name]
}

// HandleEvent applies one table event to the log
func (r *Recorder) HandleEvent(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case events.TableCreated:
		r.tableName = e.TableName
	case events.PlayerSeated:
		r.applyPlayerSeated(e)
	case events.HandStarted:
		r.applyHandStarted(e)
	case events.CardsDealt:
		r.private("%s was dealt %s", e.PlayerName, e.Cards)
	case events.PlayerChecked:
		r.action(e.PlayerName, "checks")
	case events.PlayerCalled:
		r.stacks[e.PlayerName] -= e.Amount
		r.action(e.PlayerName, fmt.Sprintf("calls %d%s", e.Amount, allIn(e.AllIn)))
	case events.PlayerBet:
		r.stacks[e.PlayerName] -= e.Amount
		r.action(e.PlayerName, fmt.Sprintf("bets %d%s", e.Amount, allIn(e.AllIn)))
	case events.PlayerRaised:
		r.stacks[e.PlayerName] -= e.Amount
		r.action(e.PlayerName, fmt.Sprintf("raises to %d%s", e.To, allIn(e.AllIn)))
	case events.PlayerWentAllIn:
		r.stacks[e.PlayerName] -= e.Amount
		r.action(e.PlayerName, fmt.Sprintf("goes all-in for %d", e.Amount))
	case events.PlayerFolded:
		r.applyPlayerFolded(e)
	case events.PlayerTimedOut:
		r.public("%s timed out during the %s", e.PlayerName, e.Phase)
	case events.PlayerQuit:
		r.applyPlayerQuit(e)
	case events.PlayerDrew:
		r.action(e.PlayerName, fmt.Sprintf("draws %d", e.Count))
	case events.PlayerStoodPat:
		r.action(e.PlayerName, "stands pat")
	case events.CardsDrawn:
		r.private("%s discarded %s and drew %s, holding %s", e.PlayerName, e.Discarded, e.Drawn, e.Hand)
	case events.PlayerShowedHand:
		r.public("%s shows %s (%s)", e.PlayerName, e.Cards, e.Description)
	case events.PotAwarded:
		r.applyPotAwarded(e)
	case events.UncontestedPotAwarded:
		r.stacks[e.PlayerName] += e.Amount
		r.action(e.PlayerName, fmt.Sprintf("wins %d uncontested", e.Amount))
	case events.PlayerRevealed:
		r.public("%s reveals %s", e.PlayerName, e.Cards)
	case events.TableWinnerDetermined:
		r.public("%s wins the table with %d chips after %d hands", e.PlayerName, e.Chips, e.HandsPlayed)
	}
}

func (r *Recorder) applyPlayerSeated(e events.PlayerSeated) {
	r.stacks[e.PlayerName] = e.Chips
}

func (r *Recorder) applyHandStarted(e events.HandStarted) {
	r.hands = append(r.hands, &HandLog{HandID: e.HandID, Number: e.Number})
	r.public("Hand #%d, dealer %s", e.Number, e.DealerName)
}

func (r *Recorder) applyPlayerFolded(e events.PlayerFolded) {
	what := "folds"
	if e.TimedOut {
		what = "folds (timeout)"
	}
	if len(e.Shown) > 0 {
		what += fmt.Sprintf(" showing %s", e.Shown)
	}
	r.action(e.PlayerName, what)
}

func (r *Recorder) applyPlayerQuit(e events.PlayerQuit) {
	r.stacks[e.PlayerName] = 0
	parts := make([]string, 0, len(e.Shares))
	for _, name := range sortedNames(e.Shares) {
		r.stacks[name] += e.Shares[name]
		parts = append(parts, fmt.Sprintf("%s +%d", name, e.Shares[name]))
	}
	r.public("%s quits, %d chips shared (%s)", e.PlayerName, e.Chips, strings.Join(parts, ", "))
}

func (r *Recorder) applyPotAwarded(e events.PotAwarded) {
	parts := make([]string, 0, len(e.Winners))
	for _, name := range e.Winners {
		r.stacks[name] += e.Shares[name]
		parts = append(parts, fmt.Sprintf("%s %d (stack %d)", name, e.Shares[name], r.stacks[name]))
	}
	label := "main pot"
	if e.Index > 0 {
		label = fmt.Sprintf("side pot %d", e.Index)
	}
	r.public("%s of %d to %s with %s", label, e.Amount, strings.Join(parts, ", "), e.Description)
}

func (r *Recorder) current() *HandLog {
	if len(r.hands) == 0 {
		// events before the first hand go to a hand 0 preamble
		r.hands = append(r.hands, &HandLog{})
	}
	return r.hands[len(r.hands)-1]
}

func (r *Recorder) public(format string, args ...any) {
	h := r.current()
	h.Public = append(h.Public, fmt.Sprintf(format, args...))
}

func (r *Recorder) private(format string, args ...any) {
	h := r.current()
	h.Private = append(h.Private, fmt.Sprintf(format, args...))
}

func (r *Recorder) action(name, what string) {
	r.public("%s %s (stack %d)", name, what, r.stacks[name])
}

// Dump renders the public log
func (r *Recorder) Dump() string {
	return r.dump(false)
}

// DumpPrivate renders the public log followed, per hand, by the private one
func (r *Recorder) DumpPrivate() string {
	return r.dump(true)
}

func (r *Recorder) dump(withPrivate bool) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Table log: %s\n", r.tableName)
	for _, h := range r.hands {
		if h.Number > 0 {
			fmt.Fprintf(&b, "\n== Hand %d ==\n", h.Number)
		}
		for _, line := range h.Public {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		if withPrivate && len(h.Private) > 0 {
			b.WriteString("  -- private --\n")
			for _, line := range h.Private {
				fmt.Fprintf(&b, "  %s\n", line)
			}
		}
	}
	return b.String()
}

// Save writes the full log to <dir>/<table name>.log and returns the path
func (r *Recorder) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, r.TableName()+".log")
	if err := os.WriteFile(path, []byte(r.DumpPrivate()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write table log %s: %w", path, err)
	}
	return path, nil
}

func allIn(b bool) string {
	if b {
		return ", all-in"
	}
	return ""
}

func sortedNames(shares map[string]int) []string {
	return slices.Sorted(maps.Keys(shares))
}
