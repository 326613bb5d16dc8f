package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"fieldbooking/internal/delivery/http/helpers"
	"fieldbooking/internal/domain"

	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	fieldUUID       = "6f1c2a9e-3b4d-4e5f-8a7b-1c2d3e4f5a6b"
	reservationUUID = "0b6f7e2a-9c8d-4b1a-a3e5-7f6d5c4b3a21"
)

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// decodeEnvelope decodes the response envelope and, when data is non-nil, its data member into data.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	if data != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, data))
	}
	return envelope
}

type fakeAuthService struct {
	signUpUser *domain.User
	signUpErr  error
	lastSignUp []string

	loginToken string
	loginUser  *domain.User
	loginErr   error
}

func (f *fakeAuthService) SignUp(_ context.Context, email, password, name, lastName string) (*domain.User, error) {
	f.lastSignUp = []string{email, password, name, lastName}
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpUser, nil
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

type fakeUserService struct {
	user         *domain.User
	getErr       error
	updateErr    error
	lastID       string
	lastName     *string
	lastLastName *string
	updateCalled bool
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.lastID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeUserService) UpdateProfile(_ context.Context, id string, name, lastName *string) (*domain.User, error) {
	f.updateCalled = true
	f.lastID, f.lastName, f.lastLastName = id, name, lastName
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u := *f.user
	if name != nil {
		u.Name = *name
	}
	if lastName != nil {
		u.LastName = *lastName
	}
	return &u, nil
}

type fakeFieldService struct {
	fields  []*domain.Field
	total   int
	windows []*domain.AvailabilityWindow
	err     error

	lastIncludeInactive bool
	lastParams          domain.PaginationParams
	lastID              string
	lastUpdate          domain.FieldUpdate
	lastCreated         *domain.Field
}

func (f *fakeFieldService) CreateField(_ context.Context, field *domain.Field) error {
	if f.err != nil {
		return f.err
	}
	field.ID = fieldUUID
	f.lastCreated = field
	return nil
}

func (f *fakeFieldService) GetField(_ context.Context, id string) (*domain.Field, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.fields[0], nil
}

func (f *fakeFieldService) ListFields(_ context.Context, includeInactive bool, params domain.PaginationParams) ([]*domain.Field, int, error) {
	f.lastIncludeInactive, f.lastParams = includeInactive, params
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.fields, f.total, nil
}

func (f *fakeFieldService) UpdateField(_ context.Context, id string, update domain.FieldUpdate) (*domain.Field, error) {
	f.lastID, f.lastUpdate = id, update
	if f.err != nil {
		return nil, f.err
	}
	return f.fields[0], nil
}

func (f *fakeFieldService) DeleteField(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeFieldService) AddAvailability(_ context.Context, fieldID string, start, end time.Time) (*domain.AvailabilityWindow, error) {
	f.lastID = fieldID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.AvailabilityWindow{ID: "w-1", FieldID: fieldID, StartTime: start, EndTime: end}, nil
}

func (f *fakeFieldService) ListAvailability(_ context.Context, fieldID string) ([]*domain.AvailabilityWindow, error) {
	f.lastID = fieldID
	if f.err != nil {
		return nil, f.err
	}
	return f.windows, nil
}

func (f *fakeFieldService) RemoveAvailability(_ context.Context, windowID string) error {
	f.lastID = windowID
	return f.err
}

type fakeReservationService struct {
	reservation *domain.Reservation
	list        []*domain.Reservation
	total       int
	err         error

	lastCaller domain.Identity
	lastID     string
	lastFilter domain.ReservationFilter
	lastStatus domain.ReservationStatus
	lastStart  time.Time
	lastEnd    time.Time
}

func (f *fakeReservationService) Reserve(_ context.Context, caller domain.Identity, fieldID string, start, end time.Time) (*domain.Reservation, error) {
	f.lastCaller, f.lastID, f.lastStart, f.lastEnd = caller, fieldID, start, end
	if f.err != nil {
		return nil, f.err
	}
	return f.reservation, nil
}

func (f *fakeReservationService) Get(_ context.Context, caller domain.Identity, id string) (*domain.Reservation, error) {
	f.lastCaller, f.lastID = caller, id
	if f.err != nil {
		return nil, f.err
	}
	return f.reservation, nil
}

func (f *fakeReservationService) ListMine(_ context.Context, caller domain.Identity, _ domain.PaginationParams) ([]*domain.Reservation, int, error) {
	f.lastCaller = caller
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.list, f.total, nil
}

func (f *fakeReservationService) Cancel(_ context.Context, caller domain.Identity, id string) (*domain.Reservation, error) {
	f.lastCaller, f.lastID = caller, id
	if f.err != nil {
		return nil, f.err
	}
	return f.reservation, nil
}

func (f *fakeReservationService) List(_ context.Context, filter domain.ReservationFilter, _ domain.PaginationParams) ([]*domain.Reservation, int, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.list, f.total, nil
}

func (f *fakeReservationService) UpdateStatus(_ context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	f.lastID, f.lastStatus = id, status
	if f.err != nil {
		return nil, f.err
	}
	return f.reservation, nil
}

func (f *fakeReservationService) Delete(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

type fakeReportService struct {
	rows     []*domain.FieldReport
	err      error
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeReportService) FieldUsage(_ context.Context, from, to time.Time) ([]*domain.FieldReport, error) {
	f.lastFrom, f.lastTo = from, to
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
