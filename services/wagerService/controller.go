package wagerService

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"unitBookBot/models"
	"unitBookBot/services/ledgerService"
)

// Presenter renders a confirmed wager into the destination channel and
// returns the reference settlement signals will arrive on.
type Presenter interface {
	PostArtifact(w *models.Wager) (string, error)
}

// Config carries the tunables for session lifecycles. Zero values fall
// back to the defaults below.
type Config struct {
	StraightTimeout time.Duration
	ParlayTimeout   time.Duration
	MinStake        float64
	MaxStake        float64
}

const (
	defaultStraightTimeout = 10 * time.Minute
	defaultParlayTimeout   = 30 * time.Minute
	defaultMinStake        = 0.5
	defaultMaxStake        = 3.0
)

func (c Config) withDefaults() Config {
	if c.StraightTimeout == 0 {
		c.StraightTimeout = defaultStraightTimeout
	}
	if c.ParlayTimeout == 0 {
		c.ParlayTimeout = defaultParlayTimeout
	}
	if c.MinStake == 0 {
		c.MinStake = defaultMinStake
	}
	if c.MaxStake == 0 {
		c.MaxStake = defaultMaxStake
	}
	return c
}

// Controller owns the live sessions and the handoff to the ledger and
// presenter. One instance serves every guild.
type Controller struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ledger    ledgerService.WagerLedger
	presenter Presenter
	events    EventSource
	cfg       Config
}

func NewController(ledger ledgerService.WagerLedger, presenter Presenter, events EventSource, cfg Config) *Controller {
	return &Controller{
		sessions:  make(map[string]*Session),
		ledger:    ledger,
		presenter: presenter,
		events:    events,
		cfg:       cfg.withDefaults(),
	}
}

// CreateSession starts a placement attempt at the line-type step and
// returns its handle with the first prompt. destinations are the
// channels the guild allows slips to post to; a zero minStake/maxStake
// falls back to the configured defaults.
func (c *Controller) CreateSession(userID, guildID string, parlay bool, destinations []Option, minStake, maxStake float64) (string, *Prompt, error) {
	if len(destinations) == 0 {
		return "", nil, fmt.Errorf("no wager channels are configured for this server")
	}
	if minStake <= 0 {
		minStake = c.cfg.MinStake
	}
	if maxStake <= 0 {
		maxStake = c.cfg.MaxStake
	}

	window := c.cfg.StraightTimeout
	if parlay {
		window = c.cfg.ParlayTimeout
	}

	s := &Session{
		Handle:       uuid.NewString(),
		UserID:       userID,
		GuildID:      guildID,
		Parlay:       parlay,
		state:        StateSelectLineType,
		minStake:     minStake,
		maxStake:     maxStake,
		destinations: destinations,
		events:       c.events,
		window:       window,
		lastInput:    time.Now(),
	}
	s.timer = time.AfterFunc(window, func() { c.expire(s.Handle) })

	c.mu.Lock()
	c.sessions[s.Handle] = s
	c.mu.Unlock()

	return s.Handle, s.prompt(), nil
}

// Advance feeds one input into the session behind handle. Overlapping
// calls for the same session get ErrBusy; the losing input is dropped.
func (c *Controller) Advance(handle string, input Input) (*Result, error) {
	c.mu.Lock()
	s := c.sessions[handle]
	c.mu.Unlock()
	if s == nil {
		return nil, ErrSessionNotFound
	}

	if !s.mu.TryLock() {
		return nil, ErrBusy
	}
	defer s.mu.Unlock()

	if s.terminal() {
		return nil, ErrSessionNotFound
	}
	s.lastInput = time.Now()
	s.timer.Reset(s.window)

	res, err := s.step(input)
	if err != nil {
		return nil, err
	}

	switch res.Outcome {
	case OutcomeStep:
		if s.state == StateReview {
			if err := c.persistAtReview(s); err != nil {
				return nil, err
			}
		}
		return res, nil
	case OutcomeConfirmed:
		return c.finalize(handle, s)
	case OutcomeCancelled:
		c.teardown(handle, s)
		return res, nil
	}
	return res, nil
}

// persistAtReview writes the wager the first time review is reached, so
// an abandoned flow past this point leaves a reapable row instead of a
// lost allocation. Re-entries after a stake or channel edit update the
// same row.
func (c *Controller) persistAtReview(s *Session) error {
	if s.wagerID == 0 {
		id, err := c.ledger.Create(s.buildWager())
		if err != nil {
			return fmt.Errorf("saving wager: %w", err)
		}
		s.wagerID = id
		return nil
	}
	if err := c.ledger.UpdateStakeAndDestination(s.wagerID, s.stake, s.channel); err != nil {
		return fmt.Errorf("updating wager: %w", err)
	}
	return nil
}

// finalize stamps the confirmation, posts the slip, and marks the wager
// posted. A presenter failure leaves the wager confirmed and the
// session alive at review so the user can retry.
func (c *Controller) finalize(handle string, s *Session) (*Result, error) {
	if err := c.ledger.Confirm(s.wagerID); err != nil {
		return nil, fmt.Errorf("confirming wager: %w", err)
	}

	ref, err := c.presenter.PostArtifact(s.buildWager())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPostFailed, err)
	}

	if err := c.ledger.MarkPosted(s.wagerID, ref); err != nil {
		// The slip is visible but the row never transitioned. Surface it;
		// the row stays confirmed and the reaper will flag it.
		return nil, fmt.Errorf("recording posted slip: %w", err)
	}

	s.state = StateConfirmed
	c.teardown(handle, s)
	return &Result{Outcome: OutcomeConfirmed, WagerID: s.wagerID, MessageRef: ref}, nil
}

// teardown removes a finished session. Cancelled sessions delete any
// wager row persisted at review; confirmed ones keep theirs.
func (c *Controller) teardown(handle string, s *Session) {
	s.timer.Stop()
	if s.state == StateCancelled || s.state == StateTimedOut {
		if s.wagerID != 0 {
			if err := c.ledger.Delete(s.wagerID); err != nil {
				log.Printf("deleting abandoned wager %d: %v", s.wagerID, err)
			}
			s.wagerID = 0
		}
	}
	c.mu.Lock()
	delete(c.sessions, handle)
	c.mu.Unlock()
}

// expire fires from the idle timer. It competes for the same session
// lock as Advance; if input slipped in while the timer was firing, the
// session gets the remainder of its window back.
func (c *Controller) expire(handle string) {
	c.mu.Lock()
	s := c.sessions[handle]
	c.mu.Unlock()
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal() {
		return
	}
	if idle := time.Since(s.lastInput); idle < s.window {
		s.timer.Reset(s.window - idle)
		return
	}

	s.state = StateTimedOut
	c.teardown(handle, s)
}

// SessionCount reports the number of live sessions.
func (c *Controller) SessionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}
