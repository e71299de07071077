package entities

import (
	"time"

	"attendly.io/application/utils"
)

type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleAdmin    UserRole = "admin"
)

type UserSettings struct {
	Notifications      bool `bson:"notifications" json:"notifications"`
	EmailNotifications bool `bson:"emailNotifications" json:"emailNotifications"`
	AutoLocation       bool `bson:"autoLocation" json:"autoLocation"`
}

// This represents an employee account on attendly.
//
// FaceEnrolled is true exactly when FaceEmbeddings is non-empty. Enrollment
// replaces the whole embedding sequence, it never appends to a partial one.
type User struct {
	Name           string      `bson:"name" json:"name" validate:"min=2,max=50"`
	Email          string      `bson:"email" json:"email" validate:"email"`
	Password       string      `bson:"password" json:"-"`
	Role           UserRole    `bson:"role" json:"role"`
	Department     string      `bson:"department" json:"department"`
	EmployeeID     string      `bson:"employeeID" json:"employeeID"`
	Position       string      `bson:"position" json:"position"`
	Phone          *string     `bson:"phone" json:"phone,omitempty"`
	FaceEnrolled   bool        `bson:"faceEnrolled" json:"faceEnrolled"`
	FaceEmbeddings [][]float64 `bson:"faceEmbeddings" json:"-"`
	IsActive       bool        `bson:"isActive" json:"isActive"`
	LastLogin      *time.Time  `bson:"lastLogin" json:"lastLogin"`
	DeviceID       string      `bson:"deviceID" json:"-"`
	UserAgent      string      `bson:"userAgent" json:"-"`

	// login lockout bookkeeping, owned by the auth flow. attendance marking
	// never reads or writes these.
	LoginFailureCount int64      `bson:"loginFailureCount" json:"-"`
	LockedUntil       *time.Time `bson:"lockedUntil" json:"-"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

// Reports whether the account is under an active login lock. Pass in "now"
// explicitly instead of reading the wall clock so expiry is testable.
func (model User) IsLocked(now time.Time) bool {
	return model.LockedUntil != nil && model.LockedUntil.After(now)
}

func (model User) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
