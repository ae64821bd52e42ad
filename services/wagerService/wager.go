package wagerService

import (
	"errors"
	"time"
)

var (
	// ErrUnexpectedInput means the input does not match what the session's
	// current step expects. The session is left unchanged.
	ErrUnexpectedInput = errors.New("input does not match the current step")

	// ErrBusy means another transition is already in flight for this
	// session. The caller's input is dropped, not queued.
	ErrBusy = errors.New("session is processing another input")

	// ErrIncompleteWager means confirmation or finalization was attempted
	// with required pieces missing (no legs, a one-leg parlay, no
	// destination).
	ErrIncompleteWager = errors.New("wager is missing required fields")

	// ErrSessionNotFound means the handle does not name a live session;
	// it may have been cancelled or timed out.
	ErrSessionNotFound = errors.New("no active session for that handle")

	// ErrPostFailed wraps a Presenter failure after confirmation. The
	// wager stays in the ledger as confirmed; the user should retry.
	ErrPostFailed = errors.New("posting the slip failed")
)

// State names a wizard step. Steps advance strictly forward; the only
// loop is AddAnotherLeg, which restarts the per-leg sub-sequence.
type State int

const (
	StateSelectLineType State = iota
	StateSelectLeague
	StateSelectEvent
	StateSelectParticipant
	StateEnterLegDetails
	StateLegDecision
	StateSelectStake
	StateSelectDestination
	StateReview
	StateConfirmed
	StateCancelled
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateSelectLineType:
		return "select-line-type"
	case StateSelectLeague:
		return "select-league"
	case StateSelectEvent:
		return "select-event"
	case StateSelectParticipant:
		return "select-participant"
	case StateEnterLegDetails:
		return "enter-leg-details"
	case StateLegDecision:
		return "leg-decision"
	case StateSelectStake:
		return "select-stake"
	case StateSelectDestination:
		return "select-destination"
	case StateReview:
		return "review"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	case StateTimedOut:
		return "timed-out"
	}
	return "unknown"
}

// Line types offered at the first step.
const (
	LineMoneyline = "moneyline"
	LineSpread    = "spread"
	LineTotal     = "total"
	LineProp      = "prop"
)

// Choice values with meaning beyond a plain option id.
const (
	ChoiceManualEntry = "manual"
	ChoiceAddLeg      = "add_leg"
	ChoiceFinalize    = "finalize"
	ChoiceConfirm     = "confirm"
	ChoiceEditStake   = "edit_stake"
	ChoiceEditDest    = "edit_destination"
)

// Leagues the event source can be queried for.
var Leagues = []string{"NFL", "NBA", "MLB", "NHL", "CFB", "CBB"}

type InputKind int

const (
	// ChoiceInput carries the value of a selected option.
	ChoiceInput InputKind = iota
	// FormInput carries a submitted leg-detail form.
	FormInput
	// CancelInput aborts the session from any step.
	CancelInput
)

// Input is one external trigger for the session: a menu selection, a
// submitted form, or a cancel. Exactly one input drives each transition.
type Input struct {
	Kind  InputKind
	Value string
	Form  *LegForm
}

// LegForm is the modal-style detail entry for one leg. Participant and
// opponent may be left blank when a known event prefilled them.
type LegForm struct {
	Participant  string
	Opponent     string
	Market       string
	AmericanOdds int
}

// Option is one presentable choice for a step.
type Option struct {
	Value string
	Label string
}

// Prompt describes what the next step needs from the user. When Form is
// true the step expects a FormInput rather than a selection.
type Prompt struct {
	State   State
	Title   string
	Options []Option
	Form    bool
}

type Outcome int

const (
	// OutcomeStep means the session advanced and wants the next prompt
	// presented.
	OutcomeStep Outcome = iota
	OutcomeConfirmed
	OutcomeCancelled
)

// Result is what Advance hands back to the interaction layer.
type Result struct {
	Outcome    Outcome
	Prompt     *Prompt
	WagerID    uint
	MessageRef string
}

// Event is one schedulable matchup from the event source.
type Event struct {
	ID        string
	League    string
	HomeTeam  string
	AwayTeam  string
	StartTime time.Time
}

// Participants lists the selectable players on each side of an event.
type Participants struct {
	SideA []string
	SideB []string
}

func (p Participants) Empty() bool {
	return len(p.SideA) == 0 && len(p.SideB) == 0
}

// EventSource supplies candidate events and rosters per league.
type EventSource interface {
	ListUpcomingEvents(league string) ([]Event, error)
	ListParticipants(eventID string) (Participants, error)
}
