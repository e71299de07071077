package attendance

import (
	"context"
	"time"

	biometric_types "attendly.io/infrastructure/biometric/types"

	"attendly.io/entities"
)

// Clock supplies "now" for timestamp assignment and day-boundary math.
// Injectable so lateness and day rollover are testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// EventStore is the persistence boundary of the ledger. Insert must enforce
// the (userID, day, kind) uniqueness constraint and return ErrAlreadyMarked
// when it is violated, turning a check-then-act race into a conflict.
type EventStore interface {
	Insert(ctx context.Context, event entities.AttendanceEvent) (*entities.AttendanceEvent, error)
	FindByUserDayKind(ctx context.Context, userID string, day string, kind entities.AttendanceKind) (*entities.AttendanceEvent, error)
	FindByID(ctx context.Context, id string) (*entities.AttendanceEvent, error)
	FindRange(ctx context.Context, userID string, from time.Time, to time.Time, limit int64) ([]entities.AttendanceEvent, error)
	FindByDay(ctx context.Context, day string, limit int64) ([]entities.AttendanceEvent, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// UserDirectory resolves the owning user's enrollment state and name.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*entities.User, error)
}

// FaceGate is the slice of the biometric service the ledger needs.
type FaceGate interface {
	VerifyImage(ctx context.Context, image string, enrolled []biometric_types.EmbeddingVector) biometric_types.VerificationResult
	CheckLiveness(ctx context.Context, image string) biometric_types.LivenessResult
}

// Notification is emitted after a successful commit for an external relay.
// Delivery failure never rolls the committed event back.
type Notification struct {
	UserID    string                  `json:"userID"`
	Kind      entities.AttendanceKind `json:"kind"`
	Timestamp time.Time               `json:"timestamp"`
}

// MarkInput carries everything a client submits alongside its intent.
type MarkInput struct {
	FaceSample string
	Location   *entities.Location
	DeviceInfo *entities.DeviceInfo
	IPAddress  string
	Notes      string
}

// AdminMutation is the privileged correction payload. Nil fields are left
// untouched.
type AdminMutation struct {
	Kind            *entities.AttendanceKind
	Timestamp       *time.Time
	Location        *entities.Location
	Status          *entities.ApprovalStatus
	RejectionReason *string
}

// DayStatus summarises a user's ledger state for one calendar day.
type DayStatus struct {
	Day         string                    `json:"day"`
	CheckIn     *entities.AttendanceEvent `json:"checkIn"`
	CheckOut    *entities.AttendanceEvent `json:"checkOut"`
	HoursWorked float64                   `json:"hoursWorked"`
}

// StatsSummary is derived entirely at read time from stored events; the
// paired check-in is the source of truth for hours.
type StatsSummary struct {
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	DaysPresent int       `json:"daysPresent"`
	LateDays    int       `json:"lateDays"`
	EarlyLeaves int       `json:"earlyLeaves"`
	TotalHours  float64   `json:"totalHours"`
}
