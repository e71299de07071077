package attendance

import (
	"context"
	"time"

	"attendly.io/application/constants"
	"attendly.io/entities"
	biometric_types "attendly.io/infrastructure/biometric/types"
	"attendly.io/infrastructure/logger"
)

// Ledger is the attendance system of record. Each (user, local calendar
// day) moves NoRecord -> CheckedIn -> CheckedOut and both transitions are
// final for the day; corrections go through the privileged admin path.
//
// The pipeline for a mark is explicit: validate -> verify -> derive flags
// -> commit. Commit is the single atomic boundary; abandoning a request
// after verification leaves nothing behind.
type Ledger struct {
	Store EventStore
	Users UserDirectory
	Faces FaceGate
	Clock Clock

	// RequireLiveness turns on the secondary anti-spoof gate in front of
	// identity verification.
	RequireLiveness bool

	// Notify relays committed events to the surrounding app. Best effort;
	// never consulted before commit and never able to undo one.
	Notify func(notification Notification)
}

func (ledger *Ledger) RecordCheckIn(ctx context.Context, userID string, input MarkInput) (*entities.AttendanceEvent, error) {
	user, err := ledger.gatedUser(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	verification := ledger.Faces.VerifyImage(ctx, input.FaceSample, enrolledVectors(user))
	if !verification.Verified {
		return nil, ErrNotVerified
	}

	now := ledger.Clock.Now()
	day := entities.DayKey(now)

	existing, err := ledger.Store.FindByUserDayKind(ctx, userID, day, entities.KindCheckIn)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMarked
	}

	event := ledger.buildEvent(user, entities.KindCheckIn, now, day, verification.Confidence, input)
	event.IsLate = now.After(workStart(now))

	return ledger.commit(ctx, event)
}

func (ledger *Ledger) RecordCheckOut(ctx context.Context, userID string, input MarkInput) (*entities.AttendanceEvent, error) {
	user, err := ledger.gatedUser(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	verification := ledger.Faces.VerifyImage(ctx, input.FaceSample, enrolledVectors(user))
	if !verification.Verified {
		return nil, ErrNotVerified
	}

	now := ledger.Clock.Now()
	day := entities.DayKey(now)

	// check-out is only a legal transition out of CheckedIn
	checkIn, err := ledger.Store.FindByUserDayKind(ctx, userID, day, entities.KindCheckIn)
	if err != nil {
		return nil, err
	}
	if checkIn == nil {
		return nil, ErrNotCheckedIn
	}

	existing, err := ledger.Store.FindByUserDayKind(ctx, userID, day, entities.KindCheckOut)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMarked
	}

	event := ledger.buildEvent(user, entities.KindCheckOut, now, day, verification.Confidence, input)
	event.IsEarlyLeave = now.Before(workEnd(now))

	return ledger.commit(ctx, event)
}

// gatedUser resolves the user and runs the gates that do not depend on the
// submitted intent: enrollment state and, when enabled, liveness.
func (ledger *Ledger) gatedUser(ctx context.Context, userID string, input MarkInput) (*entities.User, error) {
	user, err := ledger.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.FaceEnrolled || len(user.FaceEmbeddings) == 0 {
		return nil, ErrNotEnrolled
	}
	if ledger.RequireLiveness {
		liveness := ledger.Faces.CheckLiveness(ctx, input.FaceSample)
		if !liveness.IsLive {
			return nil, ErrNotLive
		}
	}
	return user, nil
}

func (ledger *Ledger) buildEvent(user *entities.User, kind entities.AttendanceKind, now time.Time, day string, confidence float64, input MarkInput) entities.AttendanceEvent {
	return entities.AttendanceEvent{
		UserID:       user.ID,
		UserName:     user.Name,
		Kind:         kind,
		Timestamp:    now,
		Day:          day,
		Location:     input.Location,
		FaceVerified: true,
		Confidence:   confidence,
		DeviceInfo:   input.DeviceInfo,
		IPAddress:    input.IPAddress,
		Notes:        input.Notes,
		Status:       entities.ApprovalApproved,
	}
}

func (ledger *Ledger) commit(ctx context.Context, event entities.AttendanceEvent) (*entities.AttendanceEvent, error) {
	committed, err := ledger.Store.Insert(ctx, event)
	if err != nil {
		return nil, err
	}
	if ledger.Notify != nil {
		ledger.Notify(Notification{
			UserID:    committed.UserID,
			Kind:      committed.Kind,
			Timestamp: committed.Timestamp,
		})
	}
	return committed, nil
}

// TodayStatus reports the state of the current day. Hours worked are
// derived here from the stored pair, never read from a cached field.
func (ledger *Ledger) TodayStatus(ctx context.Context, userID string) (*DayStatus, error) {
	now := ledger.Clock.Now()
	day := entities.DayKey(now)

	checkIn, err := ledger.Store.FindByUserDayKind(ctx, userID, day, entities.KindCheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := ledger.Store.FindByUserDayKind(ctx, userID, day, entities.KindCheckOut)
	if err != nil {
		return nil, err
	}

	status := &DayStatus{Day: day, CheckIn: checkIn, CheckOut: checkOut}
	if checkIn != nil && checkOut != nil {
		status.HoursWorked = entities.HoursWorked(checkIn.Timestamp, checkOut.Timestamp)
	}
	return status, nil
}

// History returns events over a range, newest first, capped. Admins
// may read another user's trail; everyone else only their own.
func (ledger *Ledger) History(ctx context.Context, requesterID string, privileged bool, targetUserID string, from time.Time, to time.Time) ([]entities.AttendanceEvent, error) {
	userID := requesterID
	if targetUserID != "" && targetUserID != requesterID {
		if !privileged {
			return nil, ErrForbidden
		}
		userID = targetUserID
	}
	return ledger.Store.FindRange(ctx, userID, from, to, constants.ATTENDANCE_HISTORY_LIMIT)
}

// DayRecords lists every user's events for one calendar day, newest
// first, capped. Privileged callers only.
func (ledger *Ledger) DayRecords(ctx context.Context, privileged bool, day string) ([]entities.AttendanceEvent, error) {
	if !privileged {
		return nil, ErrForbidden
	}
	return ledger.Store.FindByDay(ctx, day, constants.ATTENDANCE_HISTORY_LIMIT)
}

// Stats folds a range of events into a per-user summary. Lateness and
// early leaves come from the stored flags; hours are re-derived from each
// day's check-in/check-out pair.
func (ledger *Ledger) Stats(ctx context.Context, userID string, from time.Time, to time.Time) (*StatsSummary, error) {
	events, err := ledger.Store.FindRange(ctx, userID, from, to, 0)
	if err != nil {
		return nil, err
	}

	type dayPair struct {
		checkIn  *entities.AttendanceEvent
		checkOut *entities.AttendanceEvent
	}

	days := map[string]*dayPair{}
	summary := &StatsSummary{From: from, To: to}
	for i := range events {
		event := events[i]
		pair, found := days[event.Day]
		if !found {
			pair = &dayPair{}
			days[event.Day] = pair
		}
		switch event.Kind {
		case entities.KindCheckIn:
			pair.checkIn = &events[i]
			if event.IsLate {
				summary.LateDays++
			}
		case entities.KindCheckOut:
			pair.checkOut = &events[i]
			if event.IsEarlyLeave {
				summary.EarlyLeaves++
			}
		}
	}

	for _, pair := range days {
		if pair.checkIn != nil {
			summary.DaysPresent++
		}
		if pair.checkIn != nil && pair.checkOut != nil {
			summary.TotalHours += entities.HoursWorked(pair.checkIn.Timestamp, pair.checkOut.Timestamp)
		}
	}
	return summary, nil
}

// AdminUpdate is the privileged correction path. It bypasses face
// verification and the duplicate gates entirely, so the caller's privilege
// has to be asserted by the auth layer and the mutation is logged.
func (ledger *Ledger) AdminUpdate(ctx context.Context, actorID string, privileged bool, eventID string, mutation AdminMutation) (*entities.AttendanceEvent, error) {
	if !privileged {
		return nil, ErrForbidden
	}
	event, err := ledger.Store.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}

	now := ledger.Clock.Now()
	fields := map[string]interface{}{}
	if mutation.Kind != nil {
		fields["kind"] = *mutation.Kind
	}
	if mutation.Timestamp != nil {
		// timestamp mutation is the one privileged exception to
		// write-once timestamps; the derived flags follow it
		fields["timestamp"] = *mutation.Timestamp
		fields["day"] = entities.DayKey(*mutation.Timestamp)
		kind := event.Kind
		if mutation.Kind != nil {
			kind = *mutation.Kind
		}
		if kind == entities.KindCheckIn {
			fields["isLate"] = mutation.Timestamp.After(workStart(*mutation.Timestamp))
		} else {
			fields["isEarlyLeave"] = mutation.Timestamp.Before(workEnd(*mutation.Timestamp))
		}
	}
	if mutation.Location != nil {
		fields["location"] = *mutation.Location
	}
	status := entities.ApprovalModified
	if mutation.Status != nil {
		status = *mutation.Status
	}
	fields["status"] = status
	fields["approvedBy"] = actorID
	fields["approvedAt"] = now
	if mutation.RejectionReason != nil {
		fields["rejectionReason"] = *mutation.RejectionReason
	}

	logger.Info("attendance record mutated by administrator", logger.LoggerOptions{
		Key:  "eventID",
		Data: eventID,
	}, logger.LoggerOptions{
		Key:  "actorID",
		Data: actorID,
	}, logger.LoggerOptions{
		Key:  "at",
		Data: now,
	})

	if _, err := ledger.Store.UpdateFields(ctx, eventID, fields); err != nil {
		return nil, err
	}
	return ledger.Store.FindByID(ctx, eventID)
}

func (ledger *Ledger) AdminDelete(ctx context.Context, actorID string, privileged bool, eventID string) error {
	if !privileged {
		return ErrForbidden
	}
	deleted, err := ledger.Store.Delete(ctx, eventID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	logger.Info("attendance record deleted by administrator", logger.LoggerOptions{
		Key:  "eventID",
		Data: eventID,
	}, logger.LoggerOptions{
		Key:  "actorID",
		Data: actorID,
	})
	return nil
}

func workStart(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), constants.WORK_START_HOUR, 0, 0, 0, day.Location())
}

func workEnd(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), constants.WORK_END_HOUR, 0, 0, 0, day.Location())
}

func enrolledVectors(user *entities.User) []biometric_types.EmbeddingVector {
	vectors := make([]biometric_types.EmbeddingVector, 0, len(user.FaceEmbeddings))
	for _, embedding := range user.FaceEmbeddings {
		vectors = append(vectors, biometric_types.EmbeddingVector(embedding))
	}
	return vectors
}
