package ledgerService

import (
	"errors"

	"unitBookBot/models"
)

var (
	// ErrNotFound means no wager matches the lookup. For settlement this
	// is a steady-state condition (reactions land on messages this bot
	// never posted), not a fault.
	ErrNotFound = errors.New("wager not found")

	// ErrStaleState means the wager exists but is not in the state the
	// operation requires. Settlement treats this as a silent no-op.
	ErrStaleState = errors.New("wager is not in the expected state")
)

// WagerLedger is the storage boundary of the engine. Drafts never reach
// it: the wizard hands over a wager with status "confirmed" on first
// entry to the review screen. Implementations must provide per-row
// atomicity for the status transitions; the from-status parameters are
// compare-and-swap guards.
type WagerLedger interface {
	// Create inserts the wager and its legs, returning the allocated id.
	Create(w *models.Wager) (uint, error)

	// Confirm stamps the user's final confirmation on a still-confirmed
	// wager.
	Confirm(id uint) error

	// UpdateStakeAndDestination applies review-screen edits to a
	// confirmed wager. Legs are immutable by this point.
	UpdateStakeAndDestination(id uint, stake float64, channelID string) error

	// MarkPosted transitions confirmed -> posted and records the
	// artifact reference settlement will be keyed on.
	MarkPosted(id uint, messageRef string) error

	// FindByMessageRef resolves a posted artifact back to its wager,
	// legs included.
	FindByMessageRef(messageRef string) (*models.Wager, error)

	// RecordSettlement transitions fromStatus -> toStatus and, when rec
	// is non-nil, writes the settlement record in the same transaction.
	RecordSettlement(id uint, fromStatus, toStatus string, rec *models.SettlementRecord) error

	// ReverseSettlement transitions fromStatus -> posted and removes the
	// wager's settlement records.
	ReverseSettlement(id uint, fromStatus string) error

	// Delete removes an unposted wager and its legs entirely (wizard
	// cancellation or timeout).
	Delete(id uint) error
}
