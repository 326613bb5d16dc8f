package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"fieldbooking/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func fixedClock(t time.Time) domain.Clock {
	return domain.ClockFunc(func() time.Time { return t })
}

// fakeRoleRepo implements domain.RoleRepository for tests.
type fakeRoleRepo struct {
	byCode    map[string]*domain.Role
	listByUID map[string][]*domain.Role
	getErr    error
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		byCode: map[string]*domain.Role{
			domain.RoleCustomer: {ID: "role-customer", Code: domain.RoleCustomer},
			domain.RoleAdmin:    {ID: "role-admin", Code: domain.RoleAdmin},
		},
		listByUID: make(map[string][]*domain.Role),
	}
}

func (f *fakeRoleRepo) GetByCode(ctx context.Context, code string) (*domain.Role, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if r, ok := f.byCode[code]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRoleRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	return f.listByUID[userID], nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	salt string
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return f.salt, nil }
func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + "-" + password, nil
}
func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+"-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err       error
	lastRoles []string
}

func (f *fakeTokenIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastRoles = roles
	return "token-" + userID, nil
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	roles     map[string][]string
	createErr error
	getErr    error
	updateErr error
	nextID    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		roles:   make(map[string][]string),
		nextID:  1,
	}
}

func (f *fakeUserRepo) add(u domain.User) *domain.User {
	f.byID[u.ID] = &u
	f.byEmail[u.Email] = &u
	return &u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	cp := *u
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) AssignRole(ctx context.Context, userID, roleID string) error {
	f.roles[userID] = append(f.roles[userID], roleID)
	return nil
}

// fakeFieldRepo implements domain.FieldRepository for tests.
type fakeFieldRepo struct {
	fields   map[string]*domain.Field
	windows  map[string]*domain.AvailabilityWindow
	getErr   error
	listErr  error
	availErr error
	lastList bool
	nextID   int
}

func newFakeFieldRepo() *fakeFieldRepo {
	return &fakeFieldRepo{
		fields:  make(map[string]*domain.Field),
		windows: make(map[string]*domain.AvailabilityWindow),
		nextID:  1,
	}
}

func (f *fakeFieldRepo) add(field domain.Field) *domain.Field {
	f.fields[field.ID] = &field
	return &field
}

func (f *fakeFieldRepo) addWindow(w domain.AvailabilityWindow) *domain.AvailabilityWindow {
	if w.ID == "" {
		w.ID = fmt.Sprintf("win-%d", f.nextID)
		f.nextID++
	}
	f.windows[w.ID] = &w
	return &w
}

func (f *fakeFieldRepo) Create(ctx context.Context, field *domain.Field) error {
	field.ID = fmt.Sprintf("field-%d", f.nextID)
	f.nextID++
	cp := *field
	f.fields[field.ID] = &cp
	return nil
}

func (f *fakeFieldRepo) GetByID(ctx context.Context, id string) (*domain.Field, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	field, ok := f.fields[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *field
	return &cp, nil
}

func (f *fakeFieldRepo) List(ctx context.Context, activeOnly bool, params domain.PaginationParams) ([]*domain.Field, int, error) {
	f.lastList = activeOnly
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []*domain.Field
	for _, field := range f.fields {
		if activeOnly && !field.Active {
			continue
		}
		cp := *field
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (f *fakeFieldRepo) Update(ctx context.Context, id string, u domain.FieldUpdate) (*domain.Field, error) {
	field, ok := f.fields[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if u.Name != nil {
		field.Name = *u.Name
	}
	if u.Description != nil {
		field.Description = *u.Description
	}
	if u.Location != nil {
		field.Location = *u.Location
	}
	if u.PricePerHour != nil {
		field.PricePerHour = *u.PricePerHour
	}
	if u.Active != nil {
		field.Active = *u.Active
	}
	cp := *field
	return &cp, nil
}

func (f *fakeFieldRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.fields[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.fields, id)
	return nil
}

func (f *fakeFieldRepo) CreateAvailability(ctx context.Context, w *domain.AvailabilityWindow) error {
	w.ID = fmt.Sprintf("win-%d", f.nextID)
	f.nextID++
	cp := *w
	f.windows[w.ID] = &cp
	return nil
}

func (f *fakeFieldRepo) ListAvailability(ctx context.Context, fieldID string) ([]*domain.AvailabilityWindow, error) {
	if f.availErr != nil {
		return nil, f.availErr
	}
	var out []*domain.AvailabilityWindow
	for _, w := range f.windows {
		if w.FieldID == fieldID {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeFieldRepo) DeleteAvailability(ctx context.Context, id string) error {
	if _, ok := f.windows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.windows, id)
	return nil
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	err             error
	lastWelcome     *domain.WelcomeEmailData
	lastReservation *domain.ReservationReceivedEmailData
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	f.lastWelcome = data
	return f.err
}

func (f *fakeEmailService) SendReservationReceived(ctx context.Context, data *domain.ReservationReceivedEmailData) error {
	f.lastReservation = data
	return f.err
}
