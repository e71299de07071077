package dto

import "time"

type MarkAttendanceDTO struct {
	FaceImage string       `json:"faceImage" validate:"required,face_image"`
	Location  *LocationDTO `json:"location" validate:"omitempty"`
	Notes     string       `json:"notes" validate:"omitempty,max=500"`
}

type LocationDTO struct {
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
	Address   string  `json:"address" validate:"omitempty,max=200"`
}

type AttendanceRangeDTO struct {
	From time.Time `json:"from" form:"from" time_format:"2006-01-02" validate:"required"`
	To   time.Time `json:"to" form:"to" time_format:"2006-01-02" validate:"required,gtefield=From"`

	// admins may read another user's trail
	UserID string `json:"userId" form:"userId" validate:"omitempty,max=50"`
}

type AdminUpdateAttendanceDTO struct {
	Kind            *string      `json:"kind" validate:"omitempty,oneof=check-in check-out"`
	Timestamp       *time.Time   `json:"timestamp" validate:"omitempty"`
	Location        *LocationDTO `json:"location" validate:"omitempty"`
	Status          *string      `json:"status" validate:"omitempty,oneof=pending approved rejected modified"`
	RejectionReason *string      `json:"rejectionReason" validate:"omitempty,max=500"`
}
