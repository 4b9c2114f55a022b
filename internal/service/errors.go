package service

import (
	"errors"
	"fmt"
)

var (
	ErrListingNotFound   = errors.New("listing not found")
	ErrBoostNotFound     = errors.New("boost not found")
	ErrInvalidTransition = errors.New("invalid boost status transition")
	ErrInvalidCreds      = errors.New("invalid email or password")
)

// BoostPersistenceError reports that a boost could not be materialized: the
// insert failed and the post-conflict re-read found nothing. Callers decide
// whether to retry the whole purchase-confirmation step.
type BoostPersistenceError struct {
	ListingID uint
	Status    string
	Err       error
}

func (e *BoostPersistenceError) Error() string {
	return fmt.Sprintf("boost for listing %d (status %s) could not be persisted: %v", e.ListingID, e.Status, e.Err)
}

func (e *BoostPersistenceError) Unwrap() error { return e.Err }

// PartialSyncError reports a reconciliation whose insert phase failed after
// the deactivate phase ran. The surrounding transaction rolls both phases
// back, so no assignment is lost; the error still names the slots involved so
// the caller can log and retry precisely. Retries are safe: the diff is
// recomputed from current state.
type PartialSyncError struct {
	Deactivated []uint // slot ids that were flagged inactive before the rollback
	FailedAdds  []uint // slot ids whose insert failed
	Err         error
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("slot sync incomplete: %d deactivated, %d failed to add: %v", len(e.Deactivated), len(e.FailedAdds), e.Err)
}

func (e *PartialSyncError) Unwrap() error { return e.Err }
