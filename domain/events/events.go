package events

import (
	"time"

	"github.com/lazharichir/drawpoker/cards"
)

// Table Events
type TableCreated struct {
	TableID     string
	TableName   string
	MinBet      int
	TurnTimeout time.Duration
	MaxDiscards int
	At          time.Time
}

func (t TableCreated) Name() string { return "TABLE_CREATED" }

type PlayerSeated struct {
	TableID    string
	PlayerID   string
	PlayerName string
	Seat       int
	Chips      int
	At         time.Time
}

func (p PlayerSeated) Name() string { return "PLAYER_SEATED" }

type DealerMoved struct {
	TableID    string
	PlayerID   string
	PlayerName string
	Seat       int
	At         time.Time
}

func (d DealerMoved) Name() string { return "DEALER_MOVED" }

type TableWinnerDetermined struct {
	TableID     string
	PlayerID    string
	PlayerName  string
	Chips       int
	HandsPlayed int
	At          time.Time
}

func (t TableWinnerDetermined) Name() string { return "TABLE_WINNER_DETERMINED" }

// Game Structure Events
type HandStarted struct {
	TableID    string
	HandID     string
	Number     int
	DealerID   string
	DealerName string
	Players    []string // names in dealing order
	At         time.Time
}

func (h HandStarted) Name() string { return "HAND_STARTED" }

type PhaseChanged struct {
	TableID       string
	HandID        string
	PreviousPhase string
	NewPhase      string
	At            time.Time
}

func (p PhaseChanged) Name() string { return "PHASE_CHANGED" }

type HandEnded struct {
	TableID  string
	HandID   string
	Duration int64 // in milliseconds
	FinalPot int
	Winners  []string
	At       time.Time
}

func (h HandEnded) Name() string { return "HAND_ENDED" }

// Dealing Events
type CardsDealt struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Cards      cards.Stack
	At         time.Time
}

func (c CardsDealt) Name() string      { return "CARDS_DEALT" }
func (c CardsDealt) Recipient() string { return c.PlayerID }

// Turn Management Events
type BettingRoundStarted struct {
	TableID    string
	HandID     string
	Street     string
	FirstToAct string // Player name
	At         time.Time
}

func (b BettingRoundStarted) Name() string { return "BETTING_ROUND_STARTED" }

type BettingRoundEnded struct {
	TableID   string
	HandID    string
	Street    string
	TotalBets int
	Pot       int
	At        time.Time
}

func (b BettingRoundEnded) Name() string { return "BETTING_ROUND_ENDED" }

type PlayerTurnStarted struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Phase      string
	TimeoutAt  time.Time // zero when the table has no turn timeout
	At         time.Time
}

func (p PlayerTurnStarted) Name() string { return "PLAYER_TURN_STARTED" }

type PlayerTimedOut struct {
	TableID       string
	HandID        string
	PlayerID      string
	PlayerName    string
	Phase         string
	DefaultAction string
	At            time.Time
}

func (p PlayerTimedOut) Name() string { return "PLAYER_TIMED_OUT" }

type InvalidActionRejected struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Phase      string
	Reason     string
	At         time.Time
}

func (i InvalidActionRejected) Name() string { return "INVALID_ACTION_REJECTED" }

// Player Action Events
type PlayerChecked struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	At         time.Time
}

func (p PlayerChecked) Name() string { return "PLAYER_CHECKED" }

type PlayerCalled struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Amount     int
	AllIn      bool
	At         time.Time
}

func (p PlayerCalled) Name() string { return "PLAYER_CALLED" }

type PlayerBet struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Amount     int
	AllIn      bool
	At         time.Time
}

func (p PlayerBet) Name() string { return "PLAYER_BET" }

type PlayerRaised struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Amount     int // chips put in with this action
	RaiseBy    int
	To         int // the new bet to match
	AllIn      bool
	At         time.Time
}

func (p PlayerRaised) Name() string { return "PLAYER_RAISED" }

type PlayerWentAllIn struct {
	TableID         string
	HandID          string
	PlayerID        string
	PlayerName      string
	Amount          int
	To              int
	ReopenedBetting bool
	At              time.Time
}

func (p PlayerWentAllIn) Name() string { return "PLAYER_WENT_ALL_IN" }

type PlayerFolded struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Phase      string
	Shown      cards.Stack // cards the player chose to show
	TimedOut   bool
	At         time.Time
}

func (p PlayerFolded) Name() string { return "PLAYER_FOLDED" }

type PlayerQuit struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Chips      int
	Shares     map[string]int // recipient name to chips received
	At         time.Time
}

func (p PlayerQuit) Name() string { return "PLAYER_QUIT" }

// Draw Events
type DrawStarted struct {
	TableID     string
	HandID      string
	MaxDiscards int
	At          time.Time
}

func (d DrawStarted) Name() string { return "DRAW_STARTED" }

type PlayerDrew struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Count      int
	At         time.Time
}

func (p PlayerDrew) Name() string { return "PLAYER_DREW" }

type PlayerStoodPat struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	TimedOut   bool
	At         time.Time
}

func (p PlayerStoodPat) Name() string { return "PLAYER_STOOD_PAT" }

type CardsDrawn struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Discarded  cards.Stack
	Drawn      cards.Stack
	Hand       cards.Stack
	At         time.Time
}

func (c CardsDrawn) Name() string      { return "CARDS_DRAWN" }
func (c CardsDrawn) Recipient() string { return c.PlayerID }

// Evaluation Events
type ShowdownStarted struct {
	TableID string
	HandID  string
	Players []string
	At      time.Time
}

func (s ShowdownStarted) Name() string { return "SHOWDOWN_STARTED" }

type PlayerShowedHand struct {
	TableID     string
	HandID      string
	PlayerID    string
	PlayerName  string
	Cards       cards.Stack
	Description string
	At          time.Time
}

func (p PlayerShowedHand) Name() string { return "PLAYER_SHOWED_HAND" }

type PlayerRevealed struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Cards      cards.Stack
	At         time.Time
}

func (p PlayerRevealed) Name() string { return "PLAYER_REVEALED" }

// Pot Events
type PotAwarded struct {
	TableID     string
	HandID      string
	Index       int // 0 is the main pot, then side pots in level order
	Amount      int
	Level       int
	Winners     []string
	Shares      map[string]int
	Description string
	At          time.Time
}

func (p PotAwarded) Name() string { return "POT_AWARDED" }

type UncontestedPotAwarded struct {
	TableID    string
	HandID     string
	PlayerID   string
	PlayerName string
	Amount     int
	At         time.Time
}

func (u UncontestedPotAwarded) Name() string { return "UNCONTESTED_POT_AWARDED" }
