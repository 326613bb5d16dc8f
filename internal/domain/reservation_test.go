package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hh, mm, ss int) time.Time {
	return time.Date(2024, 1, 1, hh, mm, ss, 0, time.UTC)
}

func TestWindowsOverlap(t *testing.T) {
	tests := []struct {
		name   string
		s, e   time.Time
		cs, ce time.Time
		want   bool
	}{
		{"shared boundary instant conflicts", at(10, 0, 0), at(11, 0, 0), at(11, 0, 0), at(12, 0, 0), true},
		{"candidate ends where existing starts", at(11, 0, 0), at(12, 0, 0), at(10, 0, 0), at(11, 0, 0), true},
		{"existing contains candidate", at(9, 0, 0), at(13, 0, 0), at(10, 0, 0), at(11, 0, 0), true},
		{"candidate contains existing", at(10, 0, 0), at(11, 0, 0), at(9, 0, 0), at(13, 0, 0), true},
		{"partial overlap at start", at(9, 0, 0), at(10, 30, 0), at(10, 0, 0), at(11, 0, 0), true},
		{"identical windows", at(10, 0, 0), at(11, 0, 0), at(10, 0, 0), at(11, 0, 0), true},
		{"disjoint by one second", at(9, 0, 0), at(10, 0, 0), at(10, 0, 1), at(11, 0, 0), false},
		{"disjoint after", at(12, 0, 1), at(13, 0, 0), at(11, 0, 0), at(12, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WindowsOverlap(tt.s, tt.e, tt.cs, tt.ce))
		})
	}
}

func TestReservation_Abandoned(t *testing.T) {
	now := at(12, 0, 0)
	tests := []struct {
		name      string
		status    ReservationStatus
		createdAt time.Time
		want      bool
	}{
		{"pending 29m59s old is kept", StatusPending, now.Add(-29*time.Minute - 59*time.Second), false},
		{"pending exactly 30m old is kept", StatusPending, now.Add(-30 * time.Minute), false},
		{"pending 30m01s old is abandoned", StatusPending, now.Add(-30*time.Minute - time.Second), true},
		{"confirmed never abandoned", StatusConfirmed, now.Add(-48 * time.Hour), false},
		{"paid never abandoned", StatusPaid, now.Add(-48 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Reservation{Status: tt.status, CreatedAt: tt.createdAt}
			assert.Equal(t, tt.want, r.Abandoned(now))
		})
	}
}

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusPaid))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusPaid))
	assert.True(t, StatusPaid.CanTransitionTo(StatusCanceled))
	assert.False(t, StatusCanceled.CanTransitionTo(StatusPending))
	assert.False(t, StatusPaid.CanTransitionTo(StatusPending))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusConfirmed))
}

func TestReservationStatus_Valid(t *testing.T) {
	for _, s := range []ReservationStatus{StatusPending, StatusConfirmed, StatusPaid, StatusCanceled} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ReservationStatus("cancelled").Valid())
	assert.False(t, ReservationStatus("").Valid())
}

func TestIdentity_IsAdmin(t *testing.T) {
	assert.True(t, Identity{UserID: "u", Roles: []string{RoleCustomer, RoleAdmin}}.IsAdmin())
	assert.False(t, Identity{UserID: "u", Roles: []string{RoleCustomer}}.IsAdmin())
	assert.False(t, Identity{}.IsAdmin())
}

func TestAvailabilityWindow_Covers(t *testing.T) {
	w := &AvailabilityWindow{StartTime: at(8, 0, 0), EndTime: at(20, 0, 0)}
	assert.True(t, w.Covers(at(8, 0, 0), at(20, 0, 0)))
	assert.True(t, w.Covers(at(10, 0, 0), at(11, 0, 0)))
	assert.False(t, w.Covers(at(7, 59, 59), at(9, 0, 0)))
	assert.False(t, w.Covers(at(19, 0, 0), at(20, 0, 1)))
}

func TestPaginationParams(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, PaginationParams{Page: 3, PageSize: 20}.Offset())
	assert.Equal(t, 0, PaginationParams{Page: 0, PageSize: 20}.Offset())
	assert.Equal(t, 0, PaginationParams{PageSize: -1}.Limit())
}
