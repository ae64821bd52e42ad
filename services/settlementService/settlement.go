package settlementService

import (
	"sync"
	"time"

	"unitBookBot/models"
	"unitBookBot/services/ledgerService"
)

// SignalKind is one outcome reaction on a posted slip.
type SignalKind int

const (
	SignalWon SignalKind = iota
	SignalLost
	SignalPush
	SignalVoid
)

func (k SignalKind) String() string {
	switch k {
	case SignalWon:
		return "won"
	case SignalLost:
		return "lost"
	case SignalPush:
		return "push"
	case SignalVoid:
		return "void"
	}
	return "unknown"
}

// settledStatus maps a signal to the status it drives a posted wager to.
func settledStatus(kind SignalKind) string {
	switch kind {
	case SignalWon:
		return models.StatusSettledWon
	case SignalLost:
		return models.StatusSettledLost
	case SignalPush:
		return models.StatusSettledPush
	case SignalVoid:
		return models.StatusVoided
	}
	return ""
}

// Engine applies outcome signals to posted wagers. Signals arrive at
// least once, possibly duplicated, possibly out of order across users;
// the wager's status is the single source of truth, so replays and
// mismatched retractions fall out as no-ops.
type Engine struct {
	ledger ledgerService.WagerLedger

	// mu guards locks; each entry serializes add/remove for one slip.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(ledger ledgerService.WagerLedger) *Engine {
	return &Engine{
		ledger: ledger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (e *Engine) refLock(messageRef string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[messageRef]
	if !ok {
		l = &sync.Mutex{}
		e.locks[messageRef] = l
	}
	return l
}

// SignalAdded settles the wager behind messageRef. Unknown refs, wagers
// not in posted state, and actors other than the placing user are all
// silent no-ops.
func (e *Engine) SignalAdded(messageRef, actorID string, kind SignalKind) error {
	l := e.refLock(messageRef)
	l.Lock()
	defer l.Unlock()

	w, err := e.ledger.FindByMessageRef(messageRef)
	if err != nil {
		if err == ledgerService.ErrNotFound {
			return nil
		}
		return err
	}
	if w.UserID != actorID {
		return nil
	}
	if w.Status != models.StatusPosted {
		return nil
	}

	rec := buildRecord(w, kind)
	err = e.ledger.RecordSettlement(w.ID, models.StatusPosted, settledStatus(kind), rec)
	if err == ledgerService.ErrStaleState {
		return nil
	}
	return err
}

// SignalRemoved undoes a settlement, but only when the wager sits in
// the exact state this signal kind put it in. Retracting a signal that
// never caused a transition does nothing.
func (e *Engine) SignalRemoved(messageRef, actorID string, kind SignalKind) error {
	l := e.refLock(messageRef)
	l.Lock()
	defer l.Unlock()

	w, err := e.ledger.FindByMessageRef(messageRef)
	if err != nil {
		if err == ledgerService.ErrNotFound {
			return nil
		}
		return err
	}
	if w.UserID != actorID {
		return nil
	}
	if w.Status != settledStatus(kind) {
		return nil
	}

	err = e.ledger.ReverseSettlement(w.ID, w.Status)
	if err == ledgerService.ErrStaleState {
		return nil
	}
	return err
}

// buildRecord computes the unit movement for a settling signal. Voids
// carry no record: the wager is struck without touching the totals.
func buildRecord(w *models.Wager, kind SignalKind) *models.SettlementRecord {
	var result float64
	switch kind {
	case SignalWon:
		result = w.Stake * (w.Price - 1)
	case SignalLost:
		result = -w.Stake
	case SignalPush:
		result = 0
	case SignalVoid:
		return nil
	}

	now := time.Now().UTC()
	return &models.SettlementRecord{
		WagerID:      w.ID,
		GuildID:      w.GuildID,
		UserID:       w.UserID,
		Year:         now.Year(),
		Month:        int(now.Month()),
		StakeApplied: w.Stake,
		PriceApplied: w.Price,
		ResultValue:  result,
	}
}
