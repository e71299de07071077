package entities

import (
	"math"
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	at := time.Date(2026, time.March, 9, 23, 59, 0, 0, time.Local)
	if got := DayKey(at); got != "2026-03-09" {
		t.Errorf("expected 2026-03-09, got %s", got)
	}
	// one minute later is the next calendar day
	if got := DayKey(at.Add(time.Minute)); got != "2026-03-10" {
		t.Errorf("expected 2026-03-10, got %s", got)
	}
}

func TestHoursWorked(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     float64
	}{
		{
			name:     "full day",
			checkIn:  time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC),
			want:     8,
		},
		{
			name:     "half hour",
			checkIn:  time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC),
			want:     0.5,
		},
		{
			name:     "checkout before checkin reads as zero",
			checkIn:  time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC),
			want:     0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoursWorked(tt.checkIn, tt.checkOut)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseModelAssignsIdentity(t *testing.T) {
	event := AttendanceEvent{UserID: "u1", Kind: KindCheckIn}
	parsed := event.ParseModel().(*AttendanceEvent)
	if parsed.ID == "" {
		t.Errorf("ParseModel must assign an id")
	}
	if parsed.CreatedAt.IsZero() || parsed.UpdatedAt.IsZero() {
		t.Errorf("ParseModel must stamp createdAt and updatedAt")
	}
}

func TestUserIsLocked(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	unlocked := User{}
	if unlocked.IsLocked(now) {
		t.Errorf("user without a lock must not read as locked")
	}
	locked := User{LockedUntil: &future}
	if !locked.IsLocked(now) {
		t.Errorf("active lock must read as locked")
	}
	expired := User{LockedUntil: &past}
	if expired.IsLocked(now) {
		t.Errorf("expired lock must read as unlocked")
	}
}
