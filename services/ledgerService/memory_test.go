package ledgerService

import (
	"testing"

	"unitBookBot/models"
)

func newPostedWager(t *testing.T, l *MemoryLedger) uint {
	t.Helper()
	id, err := l.Create(&models.Wager{
		UserID:  "user-1",
		GuildID: "guild-1",
		Status:  models.StatusConfirmed,
		Stake:   1.0,
		Price:   1.9091,
		Legs:    []models.Leg{{Participant: "Maple Leafs", Opponent: "Bruins", Market: "Moneyline", AmericanOdds: -110}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := l.Confirm(id); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := l.MarkPosted(id, "msg-1"); err != nil {
		t.Fatalf("mark posted: %v", err)
	}
	return id
}

func TestLifecycleTransitions(t *testing.T) {
	l := NewMemoryLedger()
	id := newPostedWager(t, l)

	w, ok := l.Get(id)
	if !ok {
		t.Fatal("wager missing after posting")
	}
	if w.Status != models.StatusPosted {
		t.Errorf("expected posted, got %s", w.Status)
	}
	if w.MessageID == nil || *w.MessageID != "msg-1" {
		t.Error("message ref not recorded")
	}
	if w.ConfirmedAt == nil {
		t.Error("confirmation timestamp not stamped")
	}

	found, err := l.FindByMessageRef("msg-1")
	if err != nil {
		t.Fatalf("find by ref: %v", err)
	}
	if found.ID != id {
		t.Errorf("lookup returned wager %d, want %d", found.ID, id)
	}
	if len(found.Legs) != 1 {
		t.Errorf("legs not preserved: %d", len(found.Legs))
	}
}

func TestFindUnknownRef(t *testing.T) {
	l := NewMemoryLedger()
	if _, err := l.FindByMessageRef("not-ours"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStatusGuards(t *testing.T) {
	l := NewMemoryLedger()
	id := newPostedWager(t, l)

	// A posted wager can no longer be confirmed or edited.
	if err := l.Confirm(id); err != ErrStaleState {
		t.Errorf("confirm after posting: expected ErrStaleState, got %v", err)
	}
	if err := l.UpdateStakeAndDestination(id, 2.0, "chan-2"); err != ErrStaleState {
		t.Errorf("edit after posting: expected ErrStaleState, got %v", err)
	}
	if err := l.MarkPosted(id, "msg-2"); err != ErrStaleState {
		t.Errorf("double post: expected ErrStaleState, got %v", err)
	}
}

func TestSettlementSwapAndReversal(t *testing.T) {
	l := NewMemoryLedger()
	id := newPostedWager(t, l)

	rec := &models.SettlementRecord{WagerID: id, StakeApplied: 1.0, PriceApplied: 1.9091, ResultValue: 0.9091}
	if err := l.RecordSettlement(id, models.StatusPosted, models.StatusSettledWon, rec); err != nil {
		t.Fatalf("record settlement: %v", err)
	}

	// The swap only applies from the stated source state.
	if err := l.RecordSettlement(id, models.StatusPosted, models.StatusSettledLost, rec); err != ErrStaleState {
		t.Errorf("second settlement: expected ErrStaleState, got %v", err)
	}
	if got := len(l.RecordsFor(id)); got != 1 {
		t.Fatalf("expected 1 record, got %d", got)
	}

	// Reversal from the wrong state is refused.
	if err := l.ReverseSettlement(id, models.StatusSettledLost); err != ErrStaleState {
		t.Errorf("mismatched reversal: expected ErrStaleState, got %v", err)
	}

	if err := l.ReverseSettlement(id, models.StatusSettledWon); err != nil {
		t.Fatalf("reversal: %v", err)
	}
	w, _ := l.Get(id)
	if w.Status != models.StatusPosted {
		t.Errorf("expected posted after reversal, got %s", w.Status)
	}
	if got := len(l.RecordsFor(id)); got != 0 {
		t.Errorf("expected records deleted, got %d", got)
	}
	if l.RemovedRecordCount() != 1 {
		t.Errorf("expected 1 removed record in audit, got %d", l.RemovedRecordCount())
	}
}

func TestDeleteRemovesEverything(t *testing.T) {
	l := NewMemoryLedger()
	id, err := l.Create(&models.Wager{Status: models.StatusConfirmed, Legs: []models.Leg{{}, {}}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := l.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if l.WagerCount() != 0 {
		t.Errorf("expected empty ledger, got %d wagers", l.WagerCount())
	}
	if _, ok := l.Get(id); ok {
		t.Error("wager still retrievable after delete")
	}
}
