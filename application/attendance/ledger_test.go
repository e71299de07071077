package attendance

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"attendly.io/application/utils"
	"attendly.io/entities"
	"attendly.io/infrastructure/biometric"
	biometric_types "attendly.io/infrastructure/biometric/types"
)

// memoryStore mirrors the Mongo store's contract, including the
// duplicate-key behaviour of the unique index.
type memoryStore struct {
	mu     sync.Mutex
	events map[string]*entities.AttendanceEvent
}

func newMemoryStore() *memoryStore {
	return &memoryStore{events: map[string]*entities.AttendanceEvent{}}
}

func (store *memoryStore) Insert(_ context.Context, event entities.AttendanceEvent) (*entities.AttendanceEvent, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, existing := range store.events {
		if existing.UserID == event.UserID && existing.Day == event.Day && existing.Kind == event.Kind {
			return nil, ErrAlreadyMarked
		}
	}
	event.ID = utils.GenerateULIDString()
	event.CreatedAt = time.Now()
	store.events[event.ID] = &event
	return &event, nil
}

func (store *memoryStore) FindByUserDayKind(_ context.Context, userID string, day string, kind entities.AttendanceKind) (*entities.AttendanceEvent, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, event := range store.events {
		if event.UserID == userID && event.Day == day && event.Kind == kind {
			copied := *event
			return &copied, nil
		}
	}
	return nil, nil
}

func (store *memoryStore) FindByID(_ context.Context, id string) (*entities.AttendanceEvent, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	event, found := store.events[id]
	if !found {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (store *memoryStore) FindRange(_ context.Context, userID string, from time.Time, to time.Time, limit int64) ([]entities.AttendanceEvent, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	results := []entities.AttendanceEvent{}
	for _, event := range store.events {
		if event.UserID != userID {
			continue
		}
		if event.Timestamp.Before(from) || event.Timestamp.After(to) {
			continue
		}
		results = append(results, *event)
		if limit > 0 && int64(len(results)) == limit {
			break
		}
	}
	return results, nil
}

func (store *memoryStore) FindByDay(_ context.Context, day string, limit int64) ([]entities.AttendanceEvent, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	results := []entities.AttendanceEvent{}
	for _, event := range store.events {
		if event.Day != day {
			continue
		}
		results = append(results, *event)
		if limit > 0 && int64(len(results)) == limit {
			break
		}
	}
	return results, nil
}

func (store *memoryStore) UpdateFields(_ context.Context, id string, fields map[string]interface{}) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	event, found := store.events[id]
	if !found {
		return 0, nil
	}
	for key, value := range fields {
		switch key {
		case "kind":
			event.Kind = value.(entities.AttendanceKind)
		case "timestamp":
			event.Timestamp = value.(time.Time)
		case "day":
			event.Day = value.(string)
		case "isLate":
			event.IsLate = value.(bool)
		case "isEarlyLeave":
			event.IsEarlyLeave = value.(bool)
		case "location":
			location := value.(entities.Location)
			event.Location = &location
		case "status":
			event.Status = value.(entities.ApprovalStatus)
		case "approvedBy":
			actor := value.(string)
			event.ApprovedBy = &actor
		case "approvedAt":
			at := value.(time.Time)
			event.ApprovedAt = &at
		case "rejectionReason":
			reason := value.(string)
			event.RejectionReason = &reason
		}
	}
	return 1, nil
}

func (store *memoryStore) Delete(_ context.Context, id string) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, found := store.events[id]; !found {
		return 0, nil
	}
	delete(store.events, id)
	return 1, nil
}

func (store *memoryStore) count() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.events)
}

type memoryDirectory struct {
	users map[string]*entities.User
}

func (directory *memoryDirectory) FindByID(_ context.Context, id string) (*entities.User, error) {
	user, found := directory.users[id]
	if !found {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

// fixedClock hands out a settable instant.
type fixedClock struct {
	now time.Time
}

func (clock *fixedClock) Now() time.Time {
	return clock.now
}

// scriptedExtractor always detects one lively face with the given embedding.
type scriptedExtractor struct {
	embedding biometric_types.EmbeddingVector
	err       error
}

func (se *scriptedExtractor) Extract(_ context.Context, _ string) (*biometric_types.Detection, error) {
	if se.err != nil {
		return nil, se.err
	}
	return &biometric_types.Detection{
		Embedding:        se.embedding,
		BoxArea:          12_000,
		EyeDistance:      60,
		ExpressionScores: []float64{0.7, 0.2},
	}, nil
}

func enrolledUser(id string) *entities.User {
	return &entities.User{
		ID:             id,
		Name:           "Ada Eze",
		Email:          "ada@attendly.io",
		FaceEnrolled:   true,
		FaceEmbeddings: [][]float64{{0, 0}, {1, 1}, {2, 2}},
		IsActive:       true,
	}
}

func testLedger(user *entities.User, sample biometric_types.EmbeddingVector, at time.Time) (*Ledger, *memoryStore, *fixedClock) {
	store := newMemoryStore()
	clock := &fixedClock{now: at}
	users := map[string]*entities.User{}
	if user != nil {
		users[user.ID] = user
	}
	ledger := &Ledger{
		Store: store,
		Users: &memoryDirectory{users: users},
		Faces: &biometric.FaceService{
			Extractor: &scriptedExtractor{embedding: sample},
			Threshold: 0.6,
		},
		Clock: clock,
	}
	return ledger, store, clock
}

func localTime(hour int, minute int) time.Time {
	return time.Date(2026, time.March, 9, hour, minute, 0, 0, time.Local)
}

func TestRecordCheckInScenario(t *testing.T) {
	user := enrolledUser("u1")
	// sample at distance 0.1 from the first enrollment angle
	ledger, store, clock := testLedger(user, biometric_types.EmbeddingVector{0.1, 0}, localTime(8, 55))

	event, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !event.FaceVerified {
		t.Errorf("committed event must be face verified")
	}
	if math.Abs(event.Confidence-0.9) > 1e-9 {
		t.Errorf("expected confidence 0.9, got %v", event.Confidence)
	}
	if event.IsLate {
		t.Errorf("08:55 check-in must not be late")
	}
	if event.IsEarlyLeave {
		t.Errorf("isEarlyLeave must never be set on a check-in")
	}
	if event.Timestamp != clock.now {
		t.Errorf("timestamp must come from the injected clock")
	}
	if event.Status != entities.ApprovalApproved {
		t.Errorf("default approval status should be approved, got %v", event.Status)
	}

	// same-day resubmission conflicts, nothing extra is persisted
	_, err = ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"})
	if !errors.Is(err, ErrAlreadyMarked) {
		t.Fatalf("expected ErrAlreadyMarked, got %v", err)
	}
	if store.count() != 1 {
		t.Errorf("expected exactly one persisted event, got %d", store.count())
	}
}

func TestRecordCheckOutScenario(t *testing.T) {
	user := enrolledUser("u1")
	ledger, _, clock := testLedger(user, biometric_types.EmbeddingVector{0.25, 0}, localTime(8, 55))

	if _, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"}); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	clock.now = localTime(17, 30)
	event, err := ledger.RecordCheckOut(context.Background(), "u1", MarkInput{FaceSample: "img"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.IsEarlyLeave {
		t.Errorf("17:30 check-out must not be an early leave")
	}
	if event.IsLate {
		t.Errorf("isLate must never be set on a check-out")
	}

	status, err := ledger.TodayStatus(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(status.HoursWorked-8.5833) > 0.001 {
		t.Errorf("expected ~8.58 hours worked, got %v", status.HoursWorked)
	}
}

func TestRecordCheckInLate(t *testing.T) {
	user := enrolledUser("u1")
	ledger, _, _ := testLedger(user, biometric_types.EmbeddingVector{0, 0}, localTime(9, 1))

	event, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !event.IsLate {
		t.Errorf("09:01 check-in must be late")
	}
}

func TestRecordCheckOutEarlyLeave(t *testing.T) {
	user := enrolledUser("u1")
	ledger, _, clock := testLedger(user, biometric_types.EmbeddingVector{0, 0}, localTime(8, 0))

	if _, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"}); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	clock.now = localTime(16, 0)
	event, err := ledger.RecordCheckOut(context.Background(), "u1", MarkInput{FaceSample: "img"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !event.IsEarlyLeave {
		t.Errorf("16:00 check-out must be an early leave")
	}
}

func TestRecordCheckInUnenrolled(t *testing.T) {
	user := &entities.User{ID: "v1", Name: "Obi Obi", IsActive: true}
	ledger, store, _ := testLedger(user, biometric_types.EmbeddingVector{0, 0}, localTime(8, 55))

	_, err := ledger.RecordCheckIn(context.Background(), "v1", MarkInput{FaceSample: "img"})
	if !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}
	if store.count() != 0 {
		t.Errorf("no event may be created for an unenrolled user")
	}
}

func TestRecordCheckInUnknownUser(t *testing.T) {
	ledger, _, _ := testLedger(nil, biometric_types.EmbeddingVector{0, 0}, localTime(8, 55))
	_, err := ledger.RecordCheckIn(context.Background(), "ghost", MarkInput{FaceSample: "img"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRecordCheckInNotVerified(t *testing.T) {
	user := enrolledUser("u1")
	// nearest enrollment is 0.7 away, confidence 0.3 < 0.6
	ledger, store, _ := testLedger(user, biometric_types.EmbeddingVector{0.7, 0}, localTime(8, 55))

	_, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"})
	if !errors.Is(err, ErrNotVerified) {
		t.Fatalf("expected ErrNotVerified, got %v", err)
	}
	if store.count() != 0 {
		t.Errorf("failed verification must not write an event")
	}
}

func TestRecordCheckInExtractorFailureReadsAsNotVerified(t *testing.T) {
	user := enrolledUser("u1")
	ledger, store, _ := testLedger(user, nil, localTime(8, 55))
	ledger.Faces = &biometric.FaceService{
		Extractor: &scriptedExtractor{err: biometric_types.ErrExtractorFailure},
		Threshold: 0.6,
	}

	_, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"})
	if !errors.Is(err, ErrNotVerified) {
		t.Fatalf("expected ErrNotVerified, got %v", err)
	}
	if store.count() != 0 {
		t.Errorf("extractor failure must not write an event")
	}
}

func TestRecordCheckOutWithoutCheckIn(t *testing.T) {
	user := enrolledUser("u1")
	ledger, _, _ := testLedger(user, biometric_types.EmbeddingVector{0, 0}, localTime(17, 0))

	_, err := ledger.RecordCheckOut(context.Background(), "u1", MarkInput{FaceSample: "img"})
	if !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("expected ErrNotCheckedIn, got %v", err)
	}
}

func TestLivenessGateBlocksWhenEnabled(t *testing.T) {
	user := enrolledUser("u1")
	ledger, store, _ := testLedger(user, biometric_types.EmbeddingVector{0, 0}, localTime(8, 55))
	ledger.RequireLiveness = true
	ledger.Faces = &biometric.FaceService{
		Extractor: &flatExtractor{embedding: biometric_types.EmbeddingVector{0, 0}},
		Threshold: 0.6,
	}

	_, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"})
	if !errors.Is(err, ErrNotLive) {
		t.Fatalf("expected ErrNotLive, got %v", err)
	}
	if store.count() != 0 {
		t.Errorf("failed liveness must not write an event")
	}
}

// flatExtractor detects a face whose expressions look like a printed photo.
type flatExtractor struct {
	embedding biometric_types.EmbeddingVector
}

func (fe *flatExtractor) Extract(_ context.Context, _ string) (*biometric_types.Detection, error) {
	return &biometric_types.Detection{
		Embedding:        fe.embedding,
		BoxArea:          12_000,
		EyeDistance:      60,
		ExpressionScores: []float64{0.05},
	}, nil
}

func TestNotificationEmittedAfterCommit(t *testing.T) {
	user := enrolledUser("u1")
	ledger, _, clock := testLedger(user, biometric_types.EmbeddingVector{0, 0}, localTime(8, 55))

	var relayed []Notification
	ledger.Notify = func(notification Notification) {
		relayed = append(relayed, notification)
	}

	if _, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(relayed) != 1 {
		t.Fatalf("expected one notification, got %d", len(relayed))
	}
	if relayed[0].UserID != "u1" || relayed[0].Kind != entities.KindCheckIn || relayed[0].Timestamp != clock.now {
		t.Errorf("notification payload mismatch: %+v", relayed[0])
	}

	// a failed mark emits nothing
	relayed = nil
	if _, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"}); !errors.Is(err, ErrAlreadyMarked) {
		t.Fatalf("expected ErrAlreadyMarked, got %v", err)
	}
	if len(relayed) != 0 {
		t.Errorf("conflicting mark must not notify")
	}
}

func TestStatsDerivesHoursFromPairs(t *testing.T) {
	user := enrolledUser("u1")
	ledger, _, clock := testLedger(user, biometric_types.EmbeddingVector{0, 0}, localTime(8, 0))

	if _, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"}); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	clock.now = localTime(17, 0)
	if _, err := ledger.RecordCheckOut(context.Background(), "u1", MarkInput{FaceSample: "img"}); err != nil {
		t.Fatalf("check-out failed: %v", err)
	}

	// next day, late and early
	clock.now = localTime(9, 30).AddDate(0, 0, 1)
	if _, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"}); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	clock.now = localTime(15, 30).AddDate(0, 0, 1)
	if _, err := ledger.RecordCheckOut(context.Background(), "u1", MarkInput{FaceSample: "img"}); err != nil {
		t.Fatalf("check-out failed: %v", err)
	}

	summary, err := ledger.Stats(context.Background(), "u1", localTime(0, 0), localTime(23, 59).AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.DaysPresent != 2 {
		t.Errorf("expected 2 days present, got %d", summary.DaysPresent)
	}
	if summary.LateDays != 1 {
		t.Errorf("expected 1 late day, got %d", summary.LateDays)
	}
	if summary.EarlyLeaves != 1 {
		t.Errorf("expected 1 early leave, got %d", summary.EarlyLeaves)
	}
	if math.Abs(summary.TotalHours-15) > 1e-9 {
		t.Errorf("expected 15 total hours, got %v", summary.TotalHours)
	}
}

func TestAdminUpdate(t *testing.T) {
	user := enrolledUser("u1")
	ledger, _, clock := testLedger(user, biometric_types.EmbeddingVector{0, 0}, localTime(8, 55))

	event, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"})
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	_, err = ledger.AdminUpdate(context.Background(), "admin1", false, event.ID, AdminMutation{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("unprivileged caller must be rejected, got %v", err)
	}

	_, err = ledger.AdminUpdate(context.Background(), "admin1", true, "missing", AdminMutation{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing record must read as not found, got %v", err)
	}

	corrected := localTime(9, 15)
	updated, err := ledger.AdminUpdate(context.Background(), "admin1", true, event.ID, AdminMutation{Timestamp: &corrected})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Timestamp.Equal(corrected) {
		t.Errorf("timestamp not applied")
	}
	if !updated.IsLate {
		t.Errorf("moving a check-in past work start must re-derive isLate")
	}
	if updated.Status != entities.ApprovalModified {
		t.Errorf("admin mutation must mark the record modified, got %v", updated.Status)
	}
	if updated.ApprovedBy == nil || *updated.ApprovedBy != "admin1" {
		t.Errorf("mutation must record the acting administrator")
	}
	if updated.ApprovedAt == nil || !updated.ApprovedAt.Equal(clock.now) {
		t.Errorf("mutation must record when it happened")
	}
}

func TestAdminDelete(t *testing.T) {
	user := enrolledUser("u1")
	ledger, store, _ := testLedger(user, biometric_types.EmbeddingVector{0, 0}, localTime(8, 55))

	event, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"})
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	if err := ledger.AdminDelete(context.Background(), "admin1", false, event.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unprivileged delete must be rejected, got %v", err)
	}
	if err := ledger.AdminDelete(context.Background(), "admin1", true, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing record must read as not found, got %v", err)
	}
	if err := ledger.AdminDelete(context.Background(), "admin1", true, event.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.count() != 0 {
		t.Errorf("record should be gone")
	}
}

func TestHistoryTargetsAnotherUserOnlyForAdmins(t *testing.T) {
	owner := enrolledUser("u1")
	ledger, _, clock := testLedger(owner, biometric_types.EmbeddingVector{0, 0}, localTime(8, 30))

	if _, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"}); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	from := localTime(0, 0)
	to := clock.now.Add(24 * time.Hour)

	// employees read their own trail
	events, err := ledger.History(context.Background(), "u1", false, "", from, to)
	if err != nil || len(events) != 1 {
		t.Fatalf("owner history should return the event, got %d events, err %v", len(events), err)
	}

	// an employee cannot point the query at somebody else
	if _, err := ledger.History(context.Background(), "u2", false, "u1", from, to); !errors.Is(err, ErrForbidden) {
		t.Fatalf("targeting another user without privilege must be rejected, got %v", err)
	}

	// an admin can
	events, err = ledger.History(context.Background(), "admin1", true, "u1", from, to)
	if err != nil || len(events) != 1 {
		t.Fatalf("admin targeted history should return the event, got %d events, err %v", len(events), err)
	}
}

func TestDayRecordsListsEveryoneForAdminsOnly(t *testing.T) {
	first := enrolledUser("u1")
	ledger, store, clock := testLedger(first, biometric_types.EmbeddingVector{0, 0}, localTime(8, 30))
	second := enrolledUser("u2")
	second.Email = "obi@attendly.io"
	ledger.Users.(*memoryDirectory).users["u2"] = second

	if _, err := ledger.RecordCheckIn(context.Background(), "u1", MarkInput{FaceSample: "img"}); err != nil {
		t.Fatalf("first check-in failed: %v", err)
	}
	clock.now = localTime(8, 45)
	if _, err := ledger.RecordCheckIn(context.Background(), "u2", MarkInput{FaceSample: "img"}); err != nil {
		t.Fatalf("second check-in failed: %v", err)
	}

	day := entities.DayKey(clock.now)
	if _, err := ledger.DayRecords(context.Background(), false, day); !errors.Is(err, ErrForbidden) {
		t.Fatalf("day listing must require privilege, got %v", err)
	}

	events, err := ledger.DayRecords(context.Background(), true, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 || store.count() != 2 {
		t.Fatalf("day listing should span users, got %d events", len(events))
	}
}
