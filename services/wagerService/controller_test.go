package wagerService

import (
	"errors"
	"testing"
	"time"

	"unitBookBot/models"
	"unitBookBot/services/ledgerService"
)

type fakeEvents struct {
	events  map[string][]Event
	rosters map[string]Participants
	err     error
}

func (f *fakeEvents) ListUpcomingEvents(league string) ([]Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events[league], nil
}

func (f *fakeEvents) ListParticipants(eventID string) (Participants, error) {
	if f.err != nil {
		return Participants{}, f.err
	}
	return f.rosters[eventID], nil
}

type fakePresenter struct {
	fail   bool
	posted []*models.Wager
}

func (p *fakePresenter) PostArtifact(w *models.Wager) (string, error) {
	if p.fail {
		return "", errors.New("gateway returned 502")
	}
	p.posted = append(p.posted, w)
	return "msg-100", nil
}

func testEvents() *fakeEvents {
	return &fakeEvents{
		events: map[string][]Event{
			"NFL": {
				{ID: "ev1", League: "NFL", HomeTeam: "Chiefs", AwayTeam: "Bills"},
				{ID: "ev2", League: "NFL", HomeTeam: "Eagles", AwayTeam: "Cowboys"},
			},
			"NBA": {
				{ID: "ev3", League: "NBA", HomeTeam: "Celtics", AwayTeam: "Knicks"},
			},
		},
		rosters: map[string]Participants{
			"ev1": {SideA: []string{"Mahomes", "Kelce"}, SideB: []string{"Allen"}},
		},
	}
}

var testDestinations = []Option{
	{Value: "chan-1", Label: "#wagers"},
	{Value: "chan-2", Label: "#locks"},
}

func newTestController(t *testing.T) (*Controller, *ledgerService.MemoryLedger, *fakePresenter) {
	t.Helper()
	ledger := ledgerService.NewMemoryLedger()
	presenter := &fakePresenter{}
	c := NewController(ledger, presenter, testEvents(), Config{})
	return c, ledger, presenter
}

func choose(t *testing.T, c *Controller, handle, value string) *Result {
	t.Helper()
	res, err := c.Advance(handle, Input{Kind: ChoiceInput, Value: value})
	if err != nil {
		t.Fatalf("choosing %q: %v", value, err)
	}
	return res
}

func submitLeg(t *testing.T, c *Controller, handle string, form LegForm) *Result {
	t.Helper()
	res, err := c.Advance(handle, Input{Kind: FormInput, Form: &form})
	if err != nil {
		t.Fatalf("submitting leg form: %v", err)
	}
	return res
}

// walkToReview drives a fresh straight-wager session up to the review
// screen and returns its handle.
func walkToReview(t *testing.T, c *Controller) string {
	t.Helper()
	handle, prompt, err := c.CreateSession("user-1", "guild-1", false, testDestinations, 0, 0)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	if prompt.State != StateSelectLineType {
		t.Fatalf("expected line-type prompt first, got %v", prompt.State)
	}

	choose(t, c, handle, LineMoneyline)
	choose(t, c, handle, "NFL")
	choose(t, c, handle, "ev1")
	submitLeg(t, c, handle, LegForm{Market: "Moneyline", AmericanOdds: -110})
	choose(t, c, handle, "2.0")
	res := choose(t, c, handle, "chan-1")
	if res.Prompt.State != StateReview {
		t.Fatalf("expected review, got %v", res.Prompt.State)
	}
	return handle
}

func TestStraightWagerFullWalk(t *testing.T) {
	c, ledger, presenter := newTestController(t)
	handle := walkToReview(t, c)

	// Reaching review persisted the wager with the event's prefill.
	if ledger.WagerCount() != 1 {
		t.Fatalf("expected 1 persisted wager at review, got %d", ledger.WagerCount())
	}

	res := choose(t, c, handle, ChoiceConfirm)
	if res.Outcome != OutcomeConfirmed {
		t.Fatalf("expected confirmed outcome, got %v", res.Outcome)
	}
	if res.MessageRef != "msg-100" {
		t.Errorf("expected posted message ref, got %q", res.MessageRef)
	}
	if len(presenter.posted) != 1 {
		t.Fatalf("expected one slip posted, got %d", len(presenter.posted))
	}

	w, ok := ledger.Get(res.WagerID)
	if !ok {
		t.Fatal("confirmed wager missing from ledger")
	}
	if w.Status != models.StatusPosted {
		t.Errorf("expected posted, got %s", w.Status)
	}
	if w.Stake != 2.0 || w.ChannelID != "chan-1" {
		t.Errorf("stake/destination not carried: %v / %s", w.Stake, w.ChannelID)
	}
	if len(w.Legs) != 1 || w.Legs[0].Participant != "Chiefs" || w.Legs[0].Opponent != "Bills" {
		t.Errorf("event prefill not applied: %+v", w.Legs)
	}
	if c.SessionCount() != 0 {
		t.Errorf("session should be gone after confirmation, have %d", c.SessionCount())
	}
}

func TestParlayWalkAndPrice(t *testing.T) {
	c, ledger, _ := newTestController(t)
	handle, _, err := c.CreateSession("user-1", "guild-1", true, testDestinations, 0, 0)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}

	choose(t, c, handle, LineMoneyline)
	choose(t, c, handle, "NFL")
	choose(t, c, handle, "ev1")
	submitLeg(t, c, handle, LegForm{Market: "Moneyline", AmericanOdds: -150})

	// One leg: finalize must not go through.
	if _, err := c.Advance(handle, Input{Kind: ChoiceInput, Value: ChoiceFinalize}); err != ErrIncompleteWager {
		t.Fatalf("one-leg finalize: expected ErrIncompleteWager, got %v", err)
	}

	res := choose(t, c, handle, ChoiceAddLeg)
	if res.Prompt.State != StateSelectLineType {
		t.Fatalf("add-leg should restart the leg sequence, got %v", res.Prompt.State)
	}
	choose(t, c, handle, LineSpread)
	choose(t, c, handle, "NBA")
	choose(t, c, handle, "ev3")
	submitLeg(t, c, handle, LegForm{Market: "Spread -4.5", AmericanOdds: 200})

	choose(t, c, handle, ChoiceFinalize)
	choose(t, c, handle, "1.0")
	choose(t, c, handle, "chan-2")
	res = choose(t, c, handle, ChoiceConfirm)

	w, _ := ledger.Get(res.WagerID)
	if len(w.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(w.Legs))
	}
	// -150 x +200 combines to decimal 5.0.
	if diff := w.Price - 5.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected combined price 5.0, got %v", w.Price)
	}
	if !w.IsParlay() {
		t.Error("two-leg wager should report as parlay")
	}
}

func TestOutOfOrderInputLeavesStateUnchanged(t *testing.T) {
	c, _, _ := newTestController(t)
	handle, _, _ := c.CreateSession("user-1", "guild-1", false, testDestinations, 0, 0)

	// A form submission before any leg step is pending.
	_, err := c.Advance(handle, Input{Kind: FormInput, Form: &LegForm{Market: "x", AmericanOdds: -110}})
	if err != ErrUnexpectedInput {
		t.Fatalf("expected ErrUnexpectedInput, got %v", err)
	}
	// An unknown option value.
	if _, err := c.Advance(handle, Input{Kind: ChoiceInput, Value: "teaser"}); err != ErrUnexpectedInput {
		t.Fatalf("expected ErrUnexpectedInput, got %v", err)
	}

	// The session is still at the first step and accepts a valid input.
	res := choose(t, c, handle, LineTotal)
	if res.Prompt.State != StateSelectLeague {
		t.Errorf("expected league prompt after recovery, got %v", res.Prompt.State)
	}
}

func TestCancelMidParlayLeavesNoTrace(t *testing.T) {
	c, ledger, _ := newTestController(t)
	handle, _, _ := c.CreateSession("user-1", "guild-1", true, testDestinations, 0, 0)

	choose(t, c, handle, LineMoneyline)
	choose(t, c, handle, "NFL")
	choose(t, c, handle, "ev1")
	submitLeg(t, c, handle, LegForm{Market: "ML", AmericanOdds: -150})
	choose(t, c, handle, ChoiceAddLeg)
	choose(t, c, handle, LineMoneyline)
	choose(t, c, handle, "NFL")
	choose(t, c, handle, "ev2")
	submitLeg(t, c, handle, LegForm{Market: "ML", AmericanOdds: 120})

	res, err := c.Advance(handle, Input{Kind: CancelInput})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if res.Outcome != OutcomeCancelled {
		t.Fatalf("expected cancelled outcome, got %v", res.Outcome)
	}
	if ledger.WagerCount() != 0 {
		t.Errorf("cancelled draft must leave no ledger row, found %d", ledger.WagerCount())
	}
	if c.SessionCount() != 0 {
		t.Errorf("session should be removed after cancel")
	}
	if _, err := c.Advance(handle, Input{Kind: ChoiceInput, Value: LineMoneyline}); err != ErrSessionNotFound {
		t.Errorf("dead handle should report ErrSessionNotFound, got %v", err)
	}
}

func TestCancelAfterReviewDeletesPersistedRow(t *testing.T) {
	c, ledger, _ := newTestController(t)
	handle := walkToReview(t, c)
	if ledger.WagerCount() != 1 {
		t.Fatalf("expected the review row, got %d", ledger.WagerCount())
	}

	if _, err := c.Advance(handle, Input{Kind: CancelInput}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if ledger.WagerCount() != 0 {
		t.Errorf("review row must be deleted on cancel, found %d", ledger.WagerCount())
	}
}

func TestEditStakeReentersReview(t *testing.T) {
	c, ledger, _ := newTestController(t)
	handle := walkToReview(t, c)

	res := choose(t, c, handle, ChoiceEditStake)
	if res.Prompt.State != StateSelectStake {
		t.Fatalf("expected stake prompt, got %v", res.Prompt.State)
	}
	res = choose(t, c, handle, "3.0")
	if res.Prompt.State != StateReview {
		t.Fatalf("expected to land back on review, got %v", res.Prompt.State)
	}

	var id uint = 1
	w, ok := ledger.Get(id)
	if !ok {
		t.Fatal("persisted wager missing")
	}
	if w.Stake != 3.0 {
		t.Errorf("edited stake not written through: %v", w.Stake)
	}
	if ledger.WagerCount() != 1 {
		t.Errorf("edit must reuse the same row, found %d", ledger.WagerCount())
	}
}

func TestPostFailureLeavesConfirmedAndRetryable(t *testing.T) {
	c, ledger, presenter := newTestController(t)
	handle := walkToReview(t, c)

	presenter.fail = true
	_, err := c.Advance(handle, Input{Kind: ChoiceInput, Value: ChoiceConfirm})
	if !errors.Is(err, ErrPostFailed) {
		t.Fatalf("expected ErrPostFailed, got %v", err)
	}

	w, ok := ledger.Get(1)
	if !ok {
		t.Fatal("wager row missing after post failure")
	}
	if w.Status != models.StatusConfirmed {
		t.Errorf("post failure must leave the wager confirmed, got %s", w.Status)
	}
	if w.MessageID != nil {
		t.Error("no message ref should be recorded on failure")
	}

	// The session survives; a retry goes through once posting recovers.
	presenter.fail = false
	res := choose(t, c, handle, ChoiceConfirm)
	if res.Outcome != OutcomeConfirmed {
		t.Fatalf("retry should confirm, got outcome %v", res.Outcome)
	}
	w, _ = ledger.Get(1)
	if w.Status != models.StatusPosted {
		t.Errorf("expected posted after retry, got %s", w.Status)
	}
}

func TestOverlappingInputIsDropped(t *testing.T) {
	c, _, _ := newTestController(t)
	handle, _, _ := c.CreateSession("user-1", "guild-1", false, testDestinations, 0, 0)

	c.mu.Lock()
	s := c.sessions[handle]
	c.mu.Unlock()

	// Hold the transition slot the way an in-flight Advance would.
	s.mu.Lock()
	_, err := c.Advance(handle, Input{Kind: ChoiceInput, Value: LineMoneyline})
	s.mu.Unlock()
	if err != ErrBusy {
		t.Fatalf("expected ErrBusy for an overlapping input, got %v", err)
	}

	// The dropped input had no effect; the step replays cleanly.
	res := choose(t, c, handle, LineMoneyline)
	if res.Prompt.State != StateSelectLeague {
		t.Errorf("expected league prompt, got %v", res.Prompt.State)
	}
}

func TestIdleTimeoutCleansUp(t *testing.T) {
	ledger := ledgerService.NewMemoryLedger()
	c := NewController(ledger, &fakePresenter{}, testEvents(), Config{
		StraightTimeout: 30 * time.Millisecond,
	})

	handle, _, _ := c.CreateSession("user-1", "guild-1", false, testDestinations, 0, 0)
	choose(t, c, handle, LineMoneyline)
	choose(t, c, handle, "NFL")
	choose(t, c, handle, "ev1")
	submitLeg(t, c, handle, LegForm{Market: "ML", AmericanOdds: -110})
	choose(t, c, handle, "1.0")
	choose(t, c, handle, "chan-1")

	deadline := time.Now().Add(2 * time.Second)
	for c.SessionCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if c.SessionCount() != 0 {
		t.Fatal("idle session was never reaped")
	}
	if ledger.WagerCount() != 0 {
		t.Errorf("timed-out session must delete its review row, found %d", ledger.WagerCount())
	}
	if _, err := c.Advance(handle, Input{Kind: ChoiceInput, Value: ChoiceConfirm}); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound after timeout, got %v", err)
	}
}

func TestPropLegOffersRoster(t *testing.T) {
	c, ledger, _ := newTestController(t)
	handle, _, _ := c.CreateSession("user-1", "guild-1", false, testDestinations, 0, 0)

	choose(t, c, handle, LineProp)
	choose(t, c, handle, "NFL")
	res := choose(t, c, handle, "ev1")
	if res.Prompt.State != StateSelectParticipant {
		t.Fatalf("expected participant prompt for a prop on a known event, got %v", res.Prompt.State)
	}
	if len(res.Prompt.Options) != 3 {
		t.Errorf("expected both sides' players offered, got %d options", len(res.Prompt.Options))
	}

	choose(t, c, handle, "Mahomes")
	submitLeg(t, c, handle, LegForm{Market: "Over 2.5 passing TDs", AmericanOdds: 130})
	choose(t, c, handle, "0.5")
	choose(t, c, handle, "chan-1")
	res = choose(t, c, handle, ChoiceConfirm)

	w, _ := ledger.Get(res.WagerID)
	if w.Legs[0].Participant != "Mahomes" {
		t.Errorf("roster pick not carried into the leg: %q", w.Legs[0].Participant)
	}
}

func TestPropWithoutRosterFallsThroughToForm(t *testing.T) {
	c, _, _ := newTestController(t)
	handle, _, _ := c.CreateSession("user-1", "guild-1", false, testDestinations, 0, 0)

	choose(t, c, handle, LineProp)
	choose(t, c, handle, "NBA")
	res := choose(t, c, handle, "ev3") // no roster configured for ev3
	if res.Prompt.State != StateEnterLegDetails {
		t.Errorf("expected fall-through to free-text entry, got %v", res.Prompt.State)
	}
	if !res.Prompt.Form {
		t.Error("detail prompt should request a form")
	}
}

func TestManualEntryPath(t *testing.T) {
	c, ledger, _ := newTestController(t)
	handle, _, _ := c.CreateSession("user-1", "guild-1", false, testDestinations, 0, 0)

	choose(t, c, handle, LineMoneyline)
	choose(t, c, handle, "NHL") // league with no fetched events
	res := choose(t, c, handle, ChoiceManualEntry)
	if res.Prompt.State != StateEnterLegDetails {
		t.Fatalf("expected detail form, got %v", res.Prompt.State)
	}

	// Manual entries require the participant to be typed in.
	_, err := c.Advance(handle, Input{Kind: FormInput, Form: &LegForm{Market: "ML", AmericanOdds: -120}})
	if err != ErrIncompleteWager {
		t.Fatalf("expected ErrIncompleteWager for a blank participant, got %v", err)
	}

	submitLeg(t, c, handle, LegForm{Participant: "Maple Leafs", Market: "ML", AmericanOdds: -120})
	choose(t, c, handle, "1.5")
	choose(t, c, handle, "chan-1")
	res = choose(t, c, handle, ChoiceConfirm)

	w, _ := ledger.Get(res.WagerID)
	if w.Legs[0].EventID != nil {
		t.Error("manual leg should carry no event reference")
	}
	if w.Legs[0].Participant != "Maple Leafs" {
		t.Errorf("typed participant not carried: %q", w.Legs[0].Participant)
	}
}

func TestStakeValidation(t *testing.T) {
	c, _, _ := newTestController(t)
	handle, _, _ := c.CreateSession("user-1", "guild-1", false, testDestinations, 0, 0)

	choose(t, c, handle, LineMoneyline)
	choose(t, c, handle, "NFL")
	choose(t, c, handle, "ev1")
	submitLeg(t, c, handle, LegForm{Market: "ML", AmericanOdds: -110})

	for _, bad := range []string{"0.0", "3.5", "1.3", "lots"} {
		if _, err := c.Advance(handle, Input{Kind: ChoiceInput, Value: bad}); err == nil {
			t.Errorf("stake %q should have been rejected", bad)
		}
	}

	res := choose(t, c, handle, "2.5")
	if res.Prompt.State != StateSelectDestination {
		t.Errorf("valid stake should advance to destination, got %v", res.Prompt.State)
	}
}

func TestShortOddsRejectedAtLegEntry(t *testing.T) {
	c, _, _ := newTestController(t)
	handle, _, _ := c.CreateSession("user-1", "guild-1", false, testDestinations, 0, 0)

	choose(t, c, handle, LineMoneyline)
	choose(t, c, handle, "NFL")
	choose(t, c, handle, "ev1")

	_, err := c.Advance(handle, Input{Kind: FormInput, Form: &LegForm{Market: "ML", AmericanOdds: -50}})
	if err == nil {
		t.Fatal("odds of -50 should be rejected")
	}

	// The rejection left the form step intact.
	res := submitLeg(t, c, handle, LegForm{Market: "ML", AmericanOdds: -110})
	if res.Prompt.State != StateSelectStake {
		t.Errorf("expected stake prompt after valid resubmission, got %v", res.Prompt.State)
	}
}
