package entities

import (
	"time"

	"attendly.io/application/utils"
)

type AttendanceKind string

const (
	KindCheckIn  AttendanceKind = "check-in"
	KindCheckOut AttendanceKind = "check-out"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
	ApprovalModified ApprovalStatus = "modified"
)

type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Address   string  `bson:"address" json:"address"`
}

type DeviceInfo struct {
	DeviceID    string `bson:"deviceID" json:"deviceID"`
	DeviceModel string `bson:"deviceModel" json:"deviceModel"`
	OSVersion   string `bson:"osVersion" json:"osVersion"`
	AppVersion  string `bson:"appVersion" json:"appVersion"`
}

// A single check-in or check-out on the attendance ledger.
//
// Timestamp is assigned by the server at commit and never mutated by the
// ordinary flow. Day holds the local calendar day in YYYY-MM-DD form and,
// together with UserID and Kind, backs the one-event-per-day unique index.
// IsLate is only meaningful on check-ins, IsEarlyLeave only on check-outs.
type AttendanceEvent struct {
	UserID          string         `bson:"userID" json:"userID"`
	UserName        string         `bson:"userName" json:"userName"`
	Kind            AttendanceKind `bson:"kind" json:"kind"`
	Timestamp       time.Time      `bson:"timestamp" json:"timestamp"`
	Day             string         `bson:"day" json:"day"`
	Location        *Location      `bson:"location" json:"location,omitempty"`
	FaceVerified    bool           `bson:"faceVerified" json:"faceVerified"`
	Confidence      float64        `bson:"confidence" json:"confidence"`
	DeviceInfo      *DeviceInfo    `bson:"deviceInfo" json:"deviceInfo,omitempty"`
	IPAddress       string         `bson:"ipAddress" json:"ipAddress"`
	Notes           string         `bson:"notes" json:"notes"`
	IsLate          bool           `bson:"isLate" json:"isLate"`
	IsEarlyLeave    bool           `bson:"isEarlyLeave" json:"isEarlyLeave"`
	Status          ApprovalStatus `bson:"status" json:"status"`
	ApprovedBy      *string        `bson:"approvedBy" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time     `bson:"approvedAt" json:"approvedAt,omitempty"`
	RejectionReason *string        `bson:"rejectionReason" json:"rejectionReason,omitempty"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DayKey formats a moment as its local calendar day. All day-bounded ledger
// queries and the uniqueness constraint go through this so the boundary is
// the local midnight, not UTC's.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// HoursWorked derives the hours between a paired check-in and check-out.
// The paired check-in is the source of truth; nothing stored on the
// check-out document is trusted for this figure.
func HoursWorked(checkIn time.Time, checkOut time.Time) float64 {
	if checkOut.Before(checkIn) {
		return 0
	}
	return checkOut.Sub(checkIn).Hours()
}

// StatusLabel renders the human-readable state of the event for history
// and report payloads.
func (model AttendanceEvent) StatusLabel() string {
	switch model.Status {
	case ApprovalRejected:
		return "Rejected"
	case ApprovalPending:
		return "Pending Approval"
	case ApprovalModified:
		return "Modified"
	}
	if model.Kind == KindCheckIn {
		if model.IsLate {
			return "Late Check-in"
		}
		return "On Time"
	}
	if model.IsEarlyLeave {
		return "Early Leave"
	}
	return "Regular Check-out"
}

func (model AttendanceEvent) ParseModel() any {
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
