package ledgerService

import (
	"sync"
	"time"

	"unitBookBot/models"
)

// MemoryLedger is the in-process reference implementation, used by the
// engine tests and usable as a throwaway backend. All methods are
// guarded by one mutex; returned wagers are copies.
type MemoryLedger struct {
	mu             sync.Mutex
	nextID         uint
	wagers         map[uint]*models.Wager
	records        map[uint][]models.SettlementRecord
	removedRecords int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		nextID:  1,
		wagers:  make(map[uint]*models.Wager),
		records: make(map[uint][]models.SettlementRecord),
	}
}

func (l *MemoryLedger) Create(w *models.Wager) (uint, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	w.ID = id
	stored := cloneWager(w)
	l.wagers[id] = &stored
	return id, nil
}

func (l *MemoryLedger) Confirm(id uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wagers[id]
	if !ok || w.Status != models.StatusConfirmed {
		return ErrStaleState
	}
	now := time.Now().UTC()
	w.ConfirmedAt = &now
	return nil
}

func (l *MemoryLedger) UpdateStakeAndDestination(id uint, stake float64, channelID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wagers[id]
	if !ok {
		return ErrNotFound
	}
	if w.Status != models.StatusConfirmed {
		return ErrStaleState
	}
	w.Stake = stake
	w.ChannelID = channelID
	return nil
}

func (l *MemoryLedger) MarkPosted(id uint, messageRef string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wagers[id]
	if !ok || w.Status != models.StatusConfirmed {
		return ErrStaleState
	}
	ref := messageRef
	w.Status = models.StatusPosted
	w.MessageID = &ref
	return nil
}

func (l *MemoryLedger) FindByMessageRef(messageRef string) (*models.Wager, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, w := range l.wagers {
		if w.MessageID != nil && *w.MessageID == messageRef {
			copied := cloneWager(w)
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (l *MemoryLedger) RecordSettlement(id uint, fromStatus, toStatus string, rec *models.SettlementRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wagers[id]
	if !ok || w.Status != fromStatus {
		return ErrStaleState
	}
	w.Status = toStatus
	if rec != nil {
		l.records[id] = append(l.records[id], *rec)
	}
	return nil
}

func (l *MemoryLedger) ReverseSettlement(id uint, fromStatus string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wagers[id]
	if !ok || w.Status != fromStatus {
		return ErrStaleState
	}
	w.Status = models.StatusPosted
	l.removedRecords += len(l.records[id])
	delete(l.records, id)
	return nil
}

func (l *MemoryLedger) Delete(id uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.wagers, id)
	delete(l.records, id)
	return nil
}

// Get returns a copy of the stored wager, for inspection in tests.
func (l *MemoryLedger) Get(id uint) (*models.Wager, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wagers[id]
	if !ok {
		return nil, false
	}
	copied := cloneWager(w)
	return &copied, true
}

// RecordsFor returns the live settlement records for a wager.
func (l *MemoryLedger) RecordsFor(id uint) []models.SettlementRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.SettlementRecord, len(l.records[id]))
	copy(out, l.records[id])
	return out
}

// RemovedRecordCount reports how many records reversals have deleted,
// so tests can assert a record was created and then removed.
func (l *MemoryLedger) RemovedRecordCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removedRecords
}

// WagerCount reports how many wagers the ledger holds.
func (l *MemoryLedger) WagerCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.wagers)
}

func cloneWager(w *models.Wager) models.Wager {
	copied := *w
	copied.Legs = make([]models.Leg, len(w.Legs))
	copy(copied.Legs, w.Legs)
	return copied
}
