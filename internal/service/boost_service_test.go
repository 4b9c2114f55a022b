package service

import (
	"testing"
	"time"

	"impulso/internal/domain"
	"impulso/internal/models"
	"impulso/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Vertical{},
		&models.Listing{},
		&models.Slot{},
		&models.Boost{},
		&models.SlotAssignment{},
		&models.Payment{},
	))
	return db
}

func seedVertical(t *testing.T, db *gorm.DB, key string) *models.Vertical {
	t.Helper()
	v := &models.Vertical{Key: key, Title: key, IsActive: true}
	require.NoError(t, db.Create(v).Error)
	return v
}

func seedSlot(t *testing.T, db *gorm.DB, verticalID uint, key string, price *int64, maxActive *int) *models.Slot {
	t.Helper()
	s := &models.Slot{
		VerticalID: verticalID,
		Key:        key,
		Title:      key,
		PriceCents: price,
		MaxActive:  maxActive,
		IsActive:   true,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedListing(t *testing.T, db *gorm.DB, verticalID, userID uint, listingType string) *models.Listing {
	t.Helper()
	l := &models.Listing{
		VerticalID:  verticalID,
		UserID:      userID,
		Title:       "listing",
		ListingType: listingType,
		Status:      "published",
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func activeSlotIDs(t *testing.T, db *gorm.DB, listingID uint) map[uint]bool {
	t.Helper()
	var rows []models.SlotAssignment
	require.NoError(t, db.Where("listing_id = ? AND is_active = ?", listingID, true).Find(&rows).Error)
	out := make(map[uint]bool, len(rows))
	for _, r := range rows {
		out[r.SlotID] = true
	}
	return out
}

func TestEnsureBoostIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")

	end := time.Now().Add(15 * 24 * time.Hour)
	first, err := svc.EnsureBoost(l.ID, EnsureBoostParams{EndsAt: &end})
	require.NoError(t, err)

	// Second call with a different window must return the first record
	// unchanged: the purchase webhook can be delivered twice.
	otherEnd := time.Now().Add(99 * 24 * time.Hour)
	second, err := svc.EnsureBoost(l.ID, EnsureBoostParams{EndsAt: &otherEnd})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.EndsAt)
	assert.WithinDuration(t, end, *second.EndsAt, time.Second)

	var count int64
	db.Model(&models.Boost{}).Where("listing_id = ? AND status = ?", l.ID, domain.BoostStatusActive).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnsureBoostSeparateStatuses(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")

	pending, err := svc.EnsureBoost(l.ID, EnsureBoostParams{Status: domain.BoostStatusPending})
	require.NoError(t, err)
	active, err := svc.EnsureBoost(l.ID, EnsureBoostParams{})
	require.NoError(t, err)
	assert.NotEqual(t, pending.ID, active.ID)
	assert.Equal(t, domain.BoostStatusActive, active.Status)
}

func TestSyncSlotsConvergenceAndMinimality(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")
	s1 := seedSlot(t, db, v.ID, "home_main", nil, nil)
	s2 := seedSlot(t, db, v.ID, "venta_tab", nil, nil)
	s3 := seedSlot(t, db, v.ID, "user_page", nil, nil)

	boost, err := svc.EnsureBoost(l.ID, EnsureBoostParams{})
	require.NoError(t, err)

	res, err := svc.SyncSlots(l.ID, boost.ID, []uint{s1.ID, s2.ID}, Window{})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Added: 2, Removed: 0}, res)

	// Remember the surviving row before the transition.
	var kept models.SlotAssignment
	require.NoError(t, db.Where("listing_id = ? AND slot_id = ? AND is_active = ?", l.ID, s2.ID, true).First(&kept).Error)

	res, err = svc.SyncSlots(l.ID, boost.ID, []uint{s2.ID, s3.ID}, Window{})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Added: 1, Removed: 1}, res)

	active := activeSlotIDs(t, db, l.ID)
	assert.Equal(t, map[uint]bool{s2.ID: true, s3.ID: true}, active)

	// The slot present in both sets keeps its row: same id, same starts_at.
	var keptAfter models.SlotAssignment
	require.NoError(t, db.Where("listing_id = ? AND slot_id = ? AND is_active = ?", l.ID, s2.ID, true).First(&keptAfter).Error)
	assert.Equal(t, kept.ID, keptAfter.ID)
	assert.Equal(t, kept.StartsAt.Unix(), keptAfter.StartsAt.Unix())

	// The removed row survives as an inactive audit record with ends_at set.
	var removed models.SlotAssignment
	require.NoError(t, db.Where("listing_id = ? AND slot_id = ?", l.ID, s1.ID).First(&removed).Error)
	assert.False(t, removed.IsActive)
	assert.NotNil(t, removed.EndsAt)
}

func TestSyncSlotsEmptyDesiredClearsAll(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")
	s1 := seedSlot(t, db, v.ID, "home_main", nil, nil)
	s2 := seedSlot(t, db, v.ID, "venta_tab", nil, nil)

	boost, err := svc.EnsureBoost(l.ID, EnsureBoostParams{})
	require.NoError(t, err)
	_, err = svc.SyncSlots(l.ID, boost.ID, []uint{s1.ID, s2.ID}, Window{})
	require.NoError(t, err)

	res, err := svc.SyncSlots(l.ID, boost.ID, nil, Window{})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Added: 0, Removed: 2}, res)
	assert.Empty(t, activeSlotIDs(t, db, l.ID))
}

func TestSyncSlotsDeduplicatesDesired(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")
	s1 := seedSlot(t, db, v.ID, "home_main", nil, nil)

	boost, err := svc.EnsureBoost(l.ID, EnsureBoostParams{})
	require.NoError(t, err)

	res, err := svc.SyncSlots(l.ID, boost.ID, []uint{s1.ID, s1.ID, 0, s1.ID}, Window{})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Added: 1, Removed: 0}, res)

	var count int64
	db.Model(&models.SlotAssignment{}).Where("listing_id = ?", l.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSyncSlotsCleansUpReplacedBoost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")
	s1 := seedSlot(t, db, v.ID, "home_main", nil, nil)
	s2 := seedSlot(t, db, v.ID, "venta_tab", nil, nil)

	// An earlier boost left an active assignment behind.
	old := &models.Boost{ListingID: l.ID, Status: domain.BoostStatusEnded, StartsAt: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, db.Create(&models.SlotAssignment{
		BoostID: old.ID, SlotID: s1.ID, ListingID: l.ID,
		StartsAt: old.StartsAt, IsActive: true,
	}).Error)

	boost, err := svc.EnsureBoost(l.ID, EnsureBoostParams{})
	require.NoError(t, err)
	res, err := svc.SyncSlots(l.ID, boost.ID, []uint{s2.ID}, Window{})
	require.NoError(t, err)

	// The stale row from the replaced boost is deactivated, not orphaned.
	assert.Equal(t, SyncResult{Added: 1, Removed: 1}, res)
	assert.Equal(t, map[uint]bool{s2.ID: true}, activeSlotIDs(t, db, l.ID))
}

func TestSyncSlotsRetryConverges(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")
	s1 := seedSlot(t, db, v.ID, "home_main", nil, nil)
	s2 := seedSlot(t, db, v.ID, "venta_tab", nil, nil)

	boost, err := svc.EnsureBoost(l.ID, EnsureBoostParams{})
	require.NoError(t, err)

	// Calling the same sync twice is a no-op the second time.
	_, err = svc.SyncSlots(l.ID, boost.ID, []uint{s1.ID, s2.ID}, Window{})
	require.NoError(t, err)
	res, err := svc.SyncSlots(l.ID, boost.ID, []uint{s1.ID, s2.ID}, Window{})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Added: 0, Removed: 0}, res)
}

func TestFetchBoostedLimitAndOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	slot := seedSlot(t, db, v.ID, "home_main", nil, nil)

	now := time.Now()
	for i := 0; i < 5; i++ {
		l := seedListing(t, db, v.ID, uint(100+i), "sale")
		b := &models.Boost{ListingID: l.ID, Status: domain.BoostStatusActive, StartsAt: now}
		require.NoError(t, db.Create(b).Error)
		require.NoError(t, db.Create(&models.SlotAssignment{
			BoostID: b.ID, SlotID: slot.ID, ListingID: l.ID,
			Priority: i % 2, StartsAt: now, IsActive: true,
		}).Error)
	}

	rows, err := svc.FetchBoosted("home_main", "autos", FetchOptions{Limit: 3})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Priority descending, then assignment id ascending: the order is stable
	// across calls even though ties are otherwise unspecified.
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Priority == rows[i].Priority {
			assert.Less(t, rows[i-1].AssignmentID, rows[i].AssignmentID)
		} else {
			assert.Greater(t, rows[i-1].Priority, rows[i].Priority)
		}
	}

	again, err := svc.FetchBoosted("home_main", "autos", FetchOptions{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, rows, again)
}

func TestFetchBoostedCapacityCapsLimit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	maxActive := 2
	slot := seedSlot(t, db, v.ID, "home_main", nil, &maxActive)

	now := time.Now()
	for i := 0; i < 4; i++ {
		l := seedListing(t, db, v.ID, uint(100+i), "sale")
		b := &models.Boost{ListingID: l.ID, Status: domain.BoostStatusActive, StartsAt: now}
		require.NoError(t, db.Create(b).Error)
		require.NoError(t, db.Create(&models.SlotAssignment{
			BoostID: b.ID, SlotID: slot.ID, ListingID: l.ID, StartsAt: now, IsActive: true,
		}).Error)
	}

	rows, err := svc.FetchBoosted("home_main", "autos", FetchOptions{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFetchBoostedScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	slot := seedSlot(t, db, v.ID, "user_page", nil, nil)

	now := time.Now()
	mine := seedListing(t, db, v.ID, 42, "sale")
	other := seedListing(t, db, v.ID, 43, "rent")
	for _, l := range []*models.Listing{mine, other} {
		b := &models.Boost{ListingID: l.ID, Status: domain.BoostStatusActive, StartsAt: now}
		require.NoError(t, db.Create(b).Error)
		require.NoError(t, db.Create(&models.SlotAssignment{
			BoostID: b.ID, SlotID: slot.ID, ListingID: l.ID, StartsAt: now, IsActive: true,
		}).Error)
	}

	rows, err := svc.FetchBoosted("user_page", "autos", FetchOptions{UserID: 42})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, mine.ID, rows[0].Listing.ID)

	byType, err := svc.FetchBoosted("user_page", "autos", FetchOptions{ListingType: "rent"})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, other.ID, byType[0].Listing.ID)
}

func TestFetchBoostedUnknownSlot(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	seedVertical(t, db, "autos")

	rows, err := svc.FetchBoosted("nonexistent_slot", "autos", FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchBoostedEmptySlot(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	seedSlot(t, db, v.ID, "home_main", nil, nil)

	rows, err := svc.FetchBoosted("home_main", "autos", FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestApproveBoostAttachesMetadataSlots(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")
	s1 := seedSlot(t, db, v.ID, "home_main", nil, nil)

	boost, err := svc.EnsureBoost(l.ID, EnsureBoostParams{
		Status:   domain.BoostStatusPending,
		Metadata: BoostMetadata{SlotIDs: []uint{s1.ID}},
	})
	require.NoError(t, err)

	approved, err := svc.ApproveBoost(boost.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BoostStatusActive, approved.Status)
	assert.Equal(t, map[uint]bool{s1.ID: true}, activeSlotIDs(t, db, l.ID))

	// Approving twice is rejected.
	_, err = svc.ApproveBoost(boost.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelBoostDeactivatesAssignments(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")
	s1 := seedSlot(t, db, v.ID, "home_main", nil, nil)

	boost, err := svc.EnsureBoost(l.ID, EnsureBoostParams{})
	require.NoError(t, err)
	_, err = svc.SyncSlots(l.ID, boost.ID, []uint{s1.ID}, Window{})
	require.NoError(t, err)

	require.NoError(t, svc.CancelBoost(boost.ID))
	assert.Empty(t, activeSlotIDs(t, db, l.ID))

	var b models.Boost
	require.NoError(t, db.First(&b, boost.ID).Error)
	assert.Equal(t, domain.BoostStatusCancelled, b.Status)

	assert.ErrorIs(t, svc.CancelBoost(boost.ID), ErrInvalidTransition)
}

func TestExpireDue(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")
	s1 := seedSlot(t, db, v.ID, "home_main", nil, nil)

	past := time.Now().Add(-time.Hour)
	start := past.Add(-15 * 24 * time.Hour)
	boost, err := svc.EnsureBoost(l.ID, EnsureBoostParams{StartsAt: &start, EndsAt: &past})
	require.NoError(t, err)
	_, err = svc.SyncSlots(l.ID, boost.ID, []uint{s1.ID}, Window{Start: &start, End: &past})
	require.NoError(t, err)

	// A healthy open-ended boost on another listing must survive.
	l2 := seedListing(t, db, v.ID, 8, "sale")
	alive, err := svc.EnsureBoost(l2.ID, EnsureBoostParams{})
	require.NoError(t, err)
	_, err = svc.SyncSlots(l2.ID, alive.ID, []uint{s1.ID}, Window{})
	require.NoError(t, err)

	result, err := svc.ExpireDue(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ExpiredCount)
	assert.Equal(t, int64(1), result.SlotsCleaned)

	var b models.Boost
	require.NoError(t, db.First(&b, boost.ID).Error)
	assert.Equal(t, domain.BoostStatusEnded, b.Status)
	assert.Empty(t, activeSlotIDs(t, db, l.ID))
	assert.Equal(t, map[uint]bool{s1.ID: true}, activeSlotIDs(t, db, l2.ID))
}

func TestFetchBoostedUsesRepositoryFilters(t *testing.T) {
	db := setupTestDB(t)
	v := seedVertical(t, db, "autos")
	slot := seedSlot(t, db, v.ID, "home_main", nil, nil)

	now := time.Now()
	company := uint(9)
	l := &models.Listing{VerticalID: v.ID, UserID: 1, CompanyID: &company, Title: "x", ListingType: "sale", Status: "published"}
	require.NoError(t, db.Create(l).Error)
	b := &models.Boost{ListingID: l.ID, Status: domain.BoostStatusActive, StartsAt: now}
	require.NoError(t, db.Create(b).Error)
	require.NoError(t, db.Create(&models.SlotAssignment{BoostID: b.ID, SlotID: slot.ID, ListingID: l.ID, StartsAt: now, IsActive: true}).Error)

	repo := repository.NewAssignmentRepository(db)
	rows, err := repo.FetchBoostedBySlot(slot.ID, repository.BoostedFilters{CompanyID: company})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	none, err := repo.FetchBoostedBySlot(slot.ID, repository.BoostedFilters{CompanyID: company + 1})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEnsureBoostLostInsertRaceReturnsWinner(t *testing.T) {
	db := setupTestDB(t)
	// GORM's default per-write transaction would roll back the rival row the
	// trigger inserts; skip it so the competing row survives the failed insert.
	svc := NewBoostService(db.Session(&gorm.Session{SkipDefaultTransaction: true}))
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")

	// Simulate losing the insert race: a trigger commits a competing row and
	// fails the original statement, like a concurrent caller landing first.
	require.NoError(t, db.Exec(`
		CREATE TRIGGER boosts_conflict BEFORE INSERT ON listing_boosts
		BEGIN
			INSERT INTO listing_boosts (listing_id, status, starts_at, metadata, created_at, updated_at)
			VALUES (NEW.listing_id, NEW.status, CURRENT_TIMESTAMP, '{"source":"rival"}', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
			SELECT RAISE(FAIL, 'conflict');
		END`).Error)

	boost, err := svc.EnsureBoost(l.ID, EnsureBoostParams{})
	require.NoError(t, err)
	assert.Equal(t, "rival", ParseBoostMetadata(boost.Metadata).Source)

	var count int64
	db.Model(&models.Boost{}).Where("listing_id = ?", l.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnsureBoostReportsPersistenceError(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")

	// Every insert fails and no competing row exists, so the re-read comes up
	// empty too.
	require.NoError(t, db.Exec(`
		CREATE TRIGGER boosts_reject BEFORE INSERT ON listing_boosts
		BEGIN SELECT RAISE(FAIL, 'storage rejected'); END`).Error)

	_, err := svc.EnsureBoost(l.ID, EnsureBoostParams{})
	var perr *BoostPersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, l.ID, perr.ListingID)
	assert.Equal(t, domain.BoostStatusActive, perr.Status)
	assert.Error(t, perr.Unwrap())
}

func TestSyncSlotsInsertFailureRollsBackAndNamesSlots(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")
	s1 := seedSlot(t, db, v.ID, "home_main", nil, nil)
	s2 := seedSlot(t, db, v.ID, "venta_tab", nil, nil)

	boost, err := svc.EnsureBoost(l.ID, EnsureBoostParams{})
	require.NoError(t, err)
	_, err = svc.SyncSlots(l.ID, boost.ID, []uint{s1.ID}, Window{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`
		CREATE TRIGGER assignments_reject BEFORE INSERT ON listing_boost_slots
		BEGIN SELECT RAISE(FAIL, 'storage rejected'); END`).Error)

	_, err = svc.SyncSlots(l.ID, boost.ID, []uint{s2.ID}, Window{})
	var partial *PartialSyncError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []uint{s1.ID}, partial.Deactivated)
	assert.Equal(t, []uint{s2.ID}, partial.FailedAdds)

	// The deactivation rolled back with the failed insert: the slot set is
	// exactly what it was before the call.
	assert.Equal(t, map[uint]bool{s1.ID: true}, activeSlotIDs(t, db, l.ID))

	// Once the store recovers, the same call converges.
	require.NoError(t, db.Exec(`DROP TRIGGER assignments_reject`).Error)
	res, err := svc.SyncSlots(l.ID, boost.ID, []uint{s2.ID}, Window{})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Added: 1, Removed: 1}, res)
	assert.Equal(t, map[uint]bool{s2.ID: true}, activeSlotIDs(t, db, l.ID))
}

func TestApproveBoostRetriesAfterAttachFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoostService(db)
	v := seedVertical(t, db, "autos")
	l := seedListing(t, db, v.ID, 7, "sale")
	s1 := seedSlot(t, db, v.ID, "home_main", nil, nil)

	boost, err := svc.EnsureBoost(l.ID, EnsureBoostParams{
		Status:   domain.BoostStatusPending,
		Metadata: BoostMetadata{SlotIDs: []uint{s1.ID}},
	})
	require.NoError(t, err)

	// Break the assignment table so the attachment fails mid-approval.
	require.NoError(t, db.Migrator().DropTable(&models.SlotAssignment{}))
	_, err = svc.ApproveBoost(boost.ID)
	require.Error(t, err)

	// The status transition rolled back with the failed attachment.
	var b models.Boost
	require.NoError(t, db.First(&b, boost.ID).Error)
	assert.Equal(t, domain.BoostStatusPending, b.Status)

	// Retrying once the store recovers completes the approval.
	require.NoError(t, db.AutoMigrate(&models.SlotAssignment{}))
	approved, err := svc.ApproveBoost(boost.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BoostStatusActive, approved.Status)
	assert.Equal(t, map[uint]bool{s1.ID: true}, activeSlotIDs(t, db, l.ID))
}
