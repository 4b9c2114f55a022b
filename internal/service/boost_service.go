package service

import (
	"encoding/json"
	"errors"
	"time"

	"impulso/internal/domain"
	"impulso/internal/models"
	"impulso/internal/repository"

	"gorm.io/gorm"
)

// BoostService owns the boost lifecycle and slot reconciliation. All writes
// to listing_boosts and listing_boost_slots go through here; the read path
// (FetchBoosted) never writes.
type BoostService struct {
	db          *gorm.DB
	slots       *repository.SlotRepository
	boosts      *repository.BoostRepository
	assignments *repository.AssignmentRepository
}

func NewBoostService(db *gorm.DB) *BoostService {
	return &BoostService{
		db:          db,
		slots:       repository.NewSlotRepository(db),
		boosts:      repository.NewBoostRepository(db),
		assignments: repository.NewAssignmentRepository(db),
	}
}

// BoostMetadata is the provenance payload stored on boosts and pending
// payments: which plan was bought, which slots it covers, and for how long.
type BoostMetadata struct {
	ListingID    uint   `json:"listing_id,omitempty"`
	PlanID       int    `json:"plan_id,omitempty"`
	SlotIDs      []uint `json:"slot_ids,omitempty"`
	DurationDays *int   `json:"duration_days,omitempty"` // nil = open-ended
	Source       string `json:"source,omitempty"`        // e.g. webhook, admin, migration
}

func (m BoostMetadata) encode() string {
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// EncodeBoostMetadata serializes a metadata payload for storage on a boost
// or a pending payment.
func EncodeBoostMetadata(m BoostMetadata) string { return m.encode() }

// ParseBoostMetadata decodes the metadata JSON of a boost or payment. A
// malformed payload yields the zero value rather than an error; provenance is
// advisory, never load-bearing.
func ParseBoostMetadata(raw string) BoostMetadata {
	var m BoostMetadata
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &m)
	}
	return m
}

type EnsureBoostParams struct {
	CompanyID *uint
	UserID    *uint
	StartsAt  *time.Time // nil = now
	EndsAt    *time.Time // nil = open-ended; resolving a default duration is the caller's job
	Status    string     // defaults to active
	Metadata  BoostMetadata
}

// EnsureBoost returns the boost for (listingID, status), creating it when
// absent. Repeated calls return the first writer's record unchanged, even if
// later callers pass a different window: purchase-confirmation webhooks are
// delivered at least once and must be safe to retry.
//
// A failed insert is retried once by re-reading (a concurrent caller may have
// won the race); if the re-read also comes up empty the operation fails with
// a BoostPersistenceError.
func (s *BoostService) EnsureBoost(listingID uint, p EnsureBoostParams) (*models.Boost, error) {
	status := p.Status
	if status == "" {
		status = domain.BoostStatusActive
	}

	existing, err := s.boosts.GetByListingAndStatus(listingID, status)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	startsAt := time.Now()
	if p.StartsAt != nil {
		startsAt = *p.StartsAt
	}
	b := &models.Boost{
		ListingID: listingID,
		CompanyID: p.CompanyID,
		UserID:    p.UserID,
		Status:    status,
		StartsAt:  startsAt,
		EndsAt:    p.EndsAt,
		Metadata:  p.Metadata.encode(),
	}
	if err := s.boosts.Create(b); err != nil {
		again, rerr := s.boosts.GetByListingAndStatus(listingID, status)
		if rerr == nil && again != nil {
			return again, nil
		}
		return nil, &BoostPersistenceError{ListingID: listingID, Status: status, Err: err}
	}
	return b, nil
}

// Window bounds the slot assignments created by a sync. Nil start means now;
// nil end means open-ended.
type Window struct {
	Start *time.Time
	End   *time.Time
}

type SyncResult struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// SyncSlots converges the active assignments of a listing to the desired slot
// set with minimal writes. Slots already occupied keep their rows untouched
// (id and starts_at survive); vanished slots are deactivated in one batched
// update; new slots are inserted in one batch. An empty desired set means
// "unfeatured everywhere" and deactivates everything.
//
// The diff runs against every active assignment of the listing, not just this
// boost's, so rows left behind by an earlier, replaced boost are cleaned up
// instead of orphaned.
//
// Both phases run in one transaction; the whole call is idempotent and safe
// to retry since the diff is recomputed from current state.
func (s *BoostService) SyncSlots(listingID, boostID uint, desiredSlotIDs []uint, w Window) (SyncResult, error) {
	var result SyncResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = syncListingSlots(tx, listingID, boostID, desiredSlotIDs, w)
		return err
	})
	if err != nil {
		return SyncResult{}, err
	}
	return result, nil
}

// syncListingSlots runs the diff inside the caller's transaction so larger
// operations (approval) can commit it together with their own writes.
func syncListingSlots(tx *gorm.DB, listingID, boostID uint, desiredSlotIDs []uint, w Window) (SyncResult, error) {
	desired := make(map[uint]bool, len(desiredSlotIDs))
	for _, id := range desiredSlotIDs {
		if id != 0 {
			desired[id] = true
		}
	}

	assignments := repository.NewAssignmentRepository(tx)
	current, err := assignments.ListActiveByListing(listingID)
	if err != nil {
		return SyncResult{}, err
	}

	currentSlots := make(map[uint]bool, len(current))
	var removeIDs []uint
	var removedSlots []uint
	for _, row := range current {
		currentSlots[row.SlotID] = true
		if !desired[row.SlotID] {
			removeIDs = append(removeIDs, row.ID)
			removedSlots = append(removedSlots, row.SlotID)
		}
	}
	var toAdd []uint
	for slotID := range desired {
		if !currentSlots[slotID] {
			toAdd = append(toAdd, slotID)
		}
	}

	now := time.Now()
	if len(removeIDs) > 0 {
		endsAt := now
		if w.End != nil {
			endsAt = *w.End
		}
		if err := assignments.DeactivateByIDs(removeIDs, endsAt); err != nil {
			return SyncResult{}, err
		}
	}

	if len(toAdd) > 0 {
		startsAt := now
		if w.Start != nil {
			startsAt = *w.Start
		}
		rows := make([]models.SlotAssignment, 0, len(toAdd))
		for _, slotID := range toAdd {
			rows = append(rows, models.SlotAssignment{
				BoostID:   boostID,
				SlotID:    slotID,
				ListingID: listingID,
				StartsAt:  startsAt,
				EndsAt:    w.End,
				IsActive:  true,
			})
		}
		if err := assignments.CreateBatch(rows); err != nil {
			return SyncResult{}, &PartialSyncError{Deactivated: removedSlots, FailedAdds: toAdd, Err: err}
		}
	}

	return SyncResult{Added: len(toAdd), Removed: len(removeIDs)}, nil
}

type FetchOptions struct {
	Limit       int // defaults to 10
	ListingType string
	UserID      uint
	CompanyID   uint
}

// FetchBoosted returns the current contents of a slot for rendering. An
// unknown or inactive slot yields an empty result, never an error: absence of
// promoted content is a normal, silent state.
func (s *BoostService) FetchBoosted(slotKey, verticalKey string, opts FetchOptions) ([]repository.BoostedRow, error) {
	slot, err := s.slots.ResolveActive(slotKey, verticalKey)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return []repository.BoostedRow{}, nil
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	// Slot capacity bounds what a page may show even when the caller asks for
	// more.
	if slot.MaxActive != nil && *slot.MaxActive < limit {
		limit = *slot.MaxActive
	}
	return s.assignments.FetchBoostedBySlot(slot.ID, repository.BoostedFilters{
		ListingType: opts.ListingType,
		UserID:      opts.UserID,
		CompanyID:   opts.CompanyID,
		Limit:       limit,
	})
}

// ApproveBoost moves a pending boost to active and attaches the slots named
// in its metadata. Used by the manual-approval workflow. The transition and
// the slot attachment commit together: a failed attachment rolls the boost
// back to pending so the approval can simply be retried.
func (s *BoostService) ApproveBoost(id uint) (*models.Boost, error) {
	b, err := s.boosts.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoostNotFound
		}
		return nil, err
	}
	if b.Status != domain.BoostStatusPending {
		return nil, ErrInvalidTransition
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewBoostRepository(tx).UpdateStatus(b.ID, domain.BoostStatusActive); err != nil {
			return err
		}
		meta := ParseBoostMetadata(b.Metadata)
		if len(meta.SlotIDs) == 0 {
			return nil
		}
		var start *time.Time
		if !b.StartsAt.IsZero() {
			st := b.StartsAt
			start = &st
		}
		_, err := syncListingSlots(tx, b.ListingID, b.ID, meta.SlotIDs, Window{Start: start, End: b.EndsAt})
		return err
	})
	if err != nil {
		return nil, err
	}
	b.Status = domain.BoostStatusActive
	return b, nil
}

// CancelBoost moves a pending or active boost to cancelled and deactivates
// its assignments.
func (s *BoostService) CancelBoost(id uint) error {
	b, err := s.boosts.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoostNotFound
		}
		return err
	}
	if b.Status != domain.BoostStatusPending && b.Status != domain.BoostStatusActive {
		return ErrInvalidTransition
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewBoostRepository(tx).UpdateStatus(b.ID, domain.BoostStatusCancelled); err != nil {
			return err
		}
		_, err := repository.NewAssignmentRepository(tx).DeactivateByBoost(b.ID, time.Now())
		return err
	})
}

type ExpireResult struct {
	ExpiredCount int64 `json:"expired_count"`
	SlotsCleaned int64 `json:"slots_cleaned"`
}

// ExpireDue ends active boosts whose window has closed and deactivates
// assignments past their end. Driven by an external cron; the service itself
// never schedules anything.
func (s *BoostService) ExpireDue(now time.Time) (ExpireResult, error) {
	var result ExpireResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		expired, err := repository.NewBoostRepository(tx).ExpireDue(now)
		if err != nil {
			return err
		}
		cleaned, err := repository.NewAssignmentRepository(tx).DeactivateExpired(now)
		if err != nil {
			return err
		}
		result = ExpireResult{ExpiredCount: expired, SlotsCleaned: cleaned}
		return nil
	})
	if err != nil {
		return ExpireResult{}, err
	}
	return result, nil
}
