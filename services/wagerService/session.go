package wagerService

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"unitBookBot/models"
	"unitBookBot/services/oddsService"
)

// legDraft is the per-leg sub-state. AddAnotherLeg wipes it; the
// accumulated legs list survives.
type legDraft struct {
	lineType    string
	league      string
	eventID     *string
	participant string
	opponent    string
}

// Session is one placement attempt by one user. All transitions go
// through step, under the single-flight lock held by the controller.
type Session struct {
	mu sync.Mutex

	Handle  string
	UserID  string
	GuildID string
	Parlay  bool

	state   State
	draft   legDraft
	legs    []models.Leg
	stake   float64
	channel string
	price   float64

	// events fetched for the current SelectEvent prompt, so a selection
	// can be resolved back to a matchup.
	fetched []Event

	// wagerID is non-zero once the review entry persisted the wager.
	wagerID uint

	minStake     float64
	maxStake     float64
	destinations []Option
	events       EventSource

	window    time.Duration
	lastInput time.Time
	timer     *time.Timer
}

func (s *Session) terminal() bool {
	return s.state == StateConfirmed || s.state == StateCancelled || s.state == StateTimedOut
}

// step applies one input. On error the session state is unchanged. A
// confirm result leaves the state at review so a failed post can be
// retried; the controller flips it to terminal once posting succeeds.
func (s *Session) step(input Input) (*Result, error) {
	if input.Kind == CancelInput {
		s.state = StateCancelled
		return &Result{Outcome: OutcomeCancelled}, nil
	}

	switch s.state {
	case StateSelectLineType:
		return s.stepLineType(input)
	case StateSelectLeague:
		return s.stepLeague(input)
	case StateSelectEvent:
		return s.stepEvent(input)
	case StateSelectParticipant:
		return s.stepParticipant(input)
	case StateEnterLegDetails:
		return s.stepLegDetails(input)
	case StateLegDecision:
		return s.stepLegDecision(input)
	case StateSelectStake:
		return s.stepStake(input)
	case StateSelectDestination:
		return s.stepDestination(input)
	case StateReview:
		return s.stepReview(input)
	}
	return nil, ErrUnexpectedInput
}

func (s *Session) stepLineType(input Input) (*Result, error) {
	if input.Kind != ChoiceInput {
		return nil, ErrUnexpectedInput
	}
	switch input.Value {
	case LineMoneyline, LineSpread, LineTotal, LineProp:
	default:
		return nil, ErrUnexpectedInput
	}
	s.draft.lineType = input.Value
	s.state = StateSelectLeague
	return s.stepResult(), nil
}

func (s *Session) stepLeague(input Input) (*Result, error) {
	if input.Kind != ChoiceInput {
		return nil, ErrUnexpectedInput
	}
	league := strings.ToUpper(input.Value)
	found := false
	for _, l := range Leagues {
		if l == league {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrUnexpectedInput
	}

	events, err := s.events.ListUpcomingEvents(league)
	if err != nil {
		return nil, fmt.Errorf("fetching %s events: %w", league, err)
	}
	s.draft.league = league
	s.fetched = events
	s.state = StateSelectEvent
	return s.stepResult(), nil
}

func (s *Session) stepEvent(input Input) (*Result, error) {
	if input.Kind != ChoiceInput {
		return nil, ErrUnexpectedInput
	}
	if input.Value == ChoiceManualEntry {
		s.state = StateEnterLegDetails
		return s.stepResult(), nil
	}

	var picked *Event
	for i := range s.fetched {
		if s.fetched[i].ID == input.Value {
			picked = &s.fetched[i]
			break
		}
	}
	if picked == nil {
		return nil, ErrUnexpectedInput
	}

	id := picked.ID
	s.draft.eventID = &id
	s.draft.participant = picked.HomeTeam
	s.draft.opponent = picked.AwayTeam

	// Player props on a known event go through roster selection when
	// one is available; an empty or failed roster falls through to
	// free-text entry.
	if s.draft.lineType == LineProp {
		roster, err := s.events.ListParticipants(id)
		if err == nil && !roster.Empty() {
			s.state = StateSelectParticipant
			return s.participantResult(roster), nil
		}
	}

	s.state = StateEnterLegDetails
	return s.stepResult(), nil
}

func (s *Session) stepParticipant(input Input) (*Result, error) {
	if input.Kind != ChoiceInput || input.Value == "" {
		return nil, ErrUnexpectedInput
	}
	s.draft.participant = input.Value
	s.state = StateEnterLegDetails
	return s.stepResult(), nil
}

func (s *Session) stepLegDetails(input Input) (*Result, error) {
	if input.Kind != FormInput || input.Form == nil {
		return nil, ErrUnexpectedInput
	}
	form := input.Form

	participant := strings.TrimSpace(form.Participant)
	if participant == "" {
		participant = s.draft.participant
	}
	opponent := strings.TrimSpace(form.Opponent)
	if opponent == "" {
		opponent = s.draft.opponent
	}
	market := strings.TrimSpace(form.Market)

	if participant == "" || market == "" {
		return nil, ErrIncompleteWager
	}
	if _, err := oddsService.ToDecimal(form.AmericanOdds); err != nil {
		return nil, err
	}

	s.legs = append(s.legs, models.Leg{
		EventID:      s.draft.eventID,
		Participant:  participant,
		Opponent:     opponent,
		Market:       market,
		League:       s.draft.league,
		AmericanOdds: form.AmericanOdds,
	})

	if s.Parlay {
		s.state = StateLegDecision
	} else {
		s.state = StateSelectStake
	}
	return s.stepResult(), nil
}

func (s *Session) stepLegDecision(input Input) (*Result, error) {
	if input.Kind != ChoiceInput {
		return nil, ErrUnexpectedInput
	}
	switch input.Value {
	case ChoiceAddLeg:
		s.draft = legDraft{}
		s.fetched = nil
		s.state = StateSelectLineType
		return s.stepResult(), nil
	case ChoiceFinalize:
		if len(s.legs) < 2 {
			return nil, ErrIncompleteWager
		}
		s.state = StateSelectStake
		return s.stepResult(), nil
	}
	return nil, ErrUnexpectedInput
}

func (s *Session) stepStake(input Input) (*Result, error) {
	if input.Kind != ChoiceInput {
		return nil, ErrUnexpectedInput
	}
	stake, err := strconv.ParseFloat(input.Value, 64)
	if err != nil {
		return nil, ErrUnexpectedInput
	}
	if stake < s.minStake || stake > s.maxStake {
		return nil, fmt.Errorf("stake must be between %.1f and %.1f units", s.minStake, s.maxStake)
	}
	// Units are wagered in half-unit increments.
	if r := stake * 2; r != float64(int(r)) {
		return nil, fmt.Errorf("stake must be a multiple of 0.5 units")
	}

	s.stake = stake
	if s.wagerID != 0 {
		s.state = StateReview
	} else {
		s.state = StateSelectDestination
	}
	return s.stepResult(), nil
}

func (s *Session) stepDestination(input Input) (*Result, error) {
	if input.Kind != ChoiceInput {
		return nil, ErrUnexpectedInput
	}
	valid := false
	for _, opt := range s.destinations {
		if opt.Value == input.Value {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrUnexpectedInput
	}

	s.channel = input.Value
	if s.price == 0 {
		price, err := s.aggregatePrice()
		if err != nil {
			return nil, err
		}
		s.price = price
	}
	s.state = StateReview
	return s.stepResult(), nil
}

func (s *Session) stepReview(input Input) (*Result, error) {
	if input.Kind != ChoiceInput {
		return nil, ErrUnexpectedInput
	}
	switch input.Value {
	case ChoiceConfirm:
		if err := s.confirmable(); err != nil {
			return nil, err
		}
		return &Result{Outcome: OutcomeConfirmed, WagerID: s.wagerID}, nil
	case ChoiceEditStake:
		s.state = StateSelectStake
		return s.stepResult(), nil
	case ChoiceEditDest:
		s.state = StateSelectDestination
		return s.stepResult(), nil
	}
	return nil, ErrUnexpectedInput
}

func (s *Session) confirmable() error {
	if len(s.legs) == 0 || s.channel == "" || s.stake <= 0 {
		return ErrIncompleteWager
	}
	if s.Parlay && len(s.legs) < 2 {
		return ErrIncompleteWager
	}
	return nil
}

func (s *Session) aggregatePrice() (float64, error) {
	odds := make([]int, len(s.legs))
	for i, leg := range s.legs {
		odds[i] = leg.AmericanOdds
	}
	return oddsService.CombineAmerican(odds)
}

// buildWager assembles the persistable wager from the accumulated state.
func (s *Session) buildWager() *models.Wager {
	legs := make([]models.Leg, len(s.legs))
	copy(legs, s.legs)
	return &models.Wager{
		ID:        s.wagerID,
		UserID:    s.UserID,
		GuildID:   s.GuildID,
		Status:    models.StatusConfirmed,
		Stake:     s.stake,
		Price:     s.price,
		ChannelID: s.channel,
		Legs:      legs,
	}
}

func (s *Session) stepResult() *Result {
	return &Result{Outcome: OutcomeStep, Prompt: s.prompt()}
}

func (s *Session) participantResult(roster Participants) *Result {
	opts := make([]Option, 0, len(roster.SideA)+len(roster.SideB))
	for _, name := range roster.SideA {
		opts = append(opts, Option{Value: name, Label: name})
	}
	for _, name := range roster.SideB {
		opts = append(opts, Option{Value: name, Label: name})
	}
	return &Result{Outcome: OutcomeStep, Prompt: &Prompt{
		State:   StateSelectParticipant,
		Title:   "Pick a player",
		Options: opts,
	}}
}

// prompt builds the presentation payload for the current state.
func (s *Session) prompt() *Prompt {
	switch s.state {
	case StateSelectLineType:
		return &Prompt{State: s.state, Title: "Pick a line type", Options: []Option{
			{Value: LineMoneyline, Label: "Moneyline"},
			{Value: LineSpread, Label: "Spread"},
			{Value: LineTotal, Label: "Total"},
			{Value: LineProp, Label: "Player Prop"},
		}}
	case StateSelectLeague:
		opts := make([]Option, len(Leagues))
		for i, l := range Leagues {
			opts[i] = Option{Value: l, Label: l}
		}
		return &Prompt{State: s.state, Title: "Pick a league", Options: opts}
	case StateSelectEvent:
		opts := make([]Option, 0, len(s.fetched)+1)
		for _, ev := range s.fetched {
			opts = append(opts, Option{
				Value: ev.ID,
				Label: fmt.Sprintf("%s @ %s", ev.AwayTeam, ev.HomeTeam),
			})
		}
		opts = append(opts, Option{Value: ChoiceManualEntry, Label: "Enter matchup manually"})
		return &Prompt{State: s.state, Title: "Pick a game", Options: opts}
	case StateEnterLegDetails:
		return &Prompt{State: s.state, Title: "Enter the line details", Form: true}
	case StateLegDecision:
		opts := []Option{{Value: ChoiceAddLeg, Label: "Add another leg"}}
		if len(s.legs) >= 2 {
			opts = append(opts, Option{Value: ChoiceFinalize, Label: fmt.Sprintf("Finalize (%d legs)", len(s.legs))})
		}
		return &Prompt{State: s.state, Title: "Parlay so far", Options: opts}
	case StateSelectStake:
		var opts []Option
		for v := s.minStake; v <= s.maxStake+1e-9; v += 0.5 {
			label := strconv.FormatFloat(v, 'f', 1, 64)
			opts = append(opts, Option{Value: label, Label: label + " units"})
		}
		return &Prompt{State: s.state, Title: "How many units?", Options: opts}
	case StateSelectDestination:
		return &Prompt{State: s.state, Title: "Where should the slip post?", Options: s.destinations}
	case StateReview:
		return &Prompt{State: s.state, Title: "Review your wager", Options: []Option{
			{Value: ChoiceConfirm, Label: "Confirm"},
			{Value: ChoiceEditStake, Label: "Change units"},
			{Value: ChoiceEditDest, Label: "Change channel"},
		}}
	}
	return &Prompt{State: s.state}
}
