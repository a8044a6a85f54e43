package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"reservation-service/internal/model"

	"go.uber.org/zap"
)

// fakeRepo keeps reservations in memory and enforces the same per-unit-type
// uniqueness contract as the Postgres indexes.
type fakeRepo struct {
	reservations []*model.Reservation
	nextID       uint
	createErr    error
	findErr      error
}

func (f *fakeRepo) Create(_ context.Context, r *model.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.reservations {
		if existing.UnitType != r.UnitType {
			continue
		}
		if existing.Email == r.Email {
			return &ConflictError{Field: "email"}
		}
		if existing.Mobile == r.Mobile {
			return &ConflictError{Field: "mobile number"}
		}
	}
	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.reservations = append(f.reservations, r)
	return nil
}

func (f *fakeRepo) FindByEmail(_ context.Context, unitType, email string) (*model.Reservation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, r := range f.reservations {
		if r.UnitType == unitType && r.Email == email {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindByMobile(_ context.Context, unitType, mobile string) (*model.Reservation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, r := range f.reservations {
		if r.UnitType == unitType && r.Mobile == mobile {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Ping(context.Context) error { return nil }

type fakeNotifier struct {
	customerErr   error
	adminErr      error
	customerSends int
	adminSends    int
}

func (f *fakeNotifier) SendCustomerConfirmation(*model.Reservation) error {
	f.customerSends++
	return f.customerErr
}

func (f *fakeNotifier) SendAdminAlert(*model.Reservation) error {
	f.adminSends++
	return f.adminErr
}

func newTestService(repo *fakeRepo, notifier *fakeNotifier) *Service {
	s := NewService(repo, notifier, zap.NewNop())
	s.now = func() time.Time { return testNow }
	return s
}

func TestCreateReservation(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &fakeNotifier{}
	s := newTestService(repo, notifier)

	result, err := s.Create(context.Background(), "standard", validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := result.Reservation
	if res.ID == 0 {
		t.Fatal("expected an assigned ID")
	}
	if res.SpaceNumber != "#3008" {
		t.Fatalf("unexpected space number %q", res.SpaceNumber)
	}
	if res.SpaceSize != "10' x 10'" {
		t.Fatalf("unexpected space size %q", res.SpaceSize)
	}
	if res.TotalCost != 195 {
		t.Fatalf("unexpected total cost %d", res.TotalCost)
	}
	if res.SecurityDeposit != 50 {
		t.Fatalf("unexpected deposit %d", res.SecurityDeposit)
	}
	if res.Status != model.StatusPending {
		t.Fatalf("unexpected status %q", res.Status)
	}
	if !result.Emails.Customer || !result.Emails.Admin {
		t.Fatalf("expected both emails to succeed, got %+v", result.Emails)
	}
	if notifier.customerSends != 1 || notifier.adminSends != 1 {
		t.Fatalf("expected one send each, got %d/%d", notifier.customerSends, notifier.adminSends)
	}
	want := "Reservation created successfully! Check your email for confirmation."
	if result.Message() != want {
		t.Fatalf("unexpected message %q", result.Message())
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo, &fakeNotifier{})

	if _, err := s.Create(context.Background(), "standard", validInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	in := validInput()
	in.Mobile = "9876543210" // same email, different mobile
	_, err := s.Create(context.Background(), "standard", in)

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if conflict.Field != "email" {
		t.Fatalf("expected email conflict, got %q", conflict.Field)
	}
	if want := "A reservation with this email already exists"; conflict.Error() != want {
		t.Fatalf("unexpected message %q", conflict.Error())
	}
	if len(repo.reservations) != 1 {
		t.Fatalf("duplicate must not be stored, have %d records", len(repo.reservations))
	}
}

func TestCreateDuplicateMobile(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo, &fakeNotifier{})

	if _, err := s.Create(context.Background(), "standard", validInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	in := validInput()
	in.Email = "c@d.com" // same mobile, different email
	_, err := s.Create(context.Background(), "standard", in)

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if conflict.Field != "mobile number" {
		t.Fatalf("expected mobile conflict, got %q", conflict.Field)
	}
}

func TestCreateSameEmailDifferentUnit(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo, &fakeNotifier{})

	if _, err := s.Create(context.Background(), "standard", validInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	// Uniqueness is scoped per unit type, so the same customer may reserve a
	// different unit.
	result, err := s.Create(context.Background(), "tent", validInput())
	if err != nil {
		t.Fatalf("create on second unit failed: %v", err)
	}
	if result.Reservation.SpaceSize != "Tent Parking" {
		t.Fatalf("unexpected space size %q", result.Reservation.SpaceSize)
	}
	if result.Reservation.TotalCost != 275 {
		t.Fatalf("unexpected total cost %d", result.Reservation.TotalCost)
	}
}

func TestCreateConstraintRace(t *testing.T) {
	// A concurrent insert slips past the pre-check and the unique index
	// rejects the write. The caller still sees a plain conflict.
	repo := &fakeRepo{createErr: &ConflictError{Field: "email"}}
	s := newTestService(repo, &fakeNotifier{})

	_, err := s.Create(context.Background(), "standard", validInput())
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if want := "A reservation with this email already exists"; conflict.Error() != want {
		t.Fatalf("unexpected message %q", conflict.Error())
	}
}

func TestCreateNotificationFailureStillSucceeds(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &fakeNotifier{customerErr: errors.New("smtp: connection refused")}
	s := newTestService(repo, notifier)

	result, err := s.Create(context.Background(), "standard", validInput())
	if err != nil {
		t.Fatalf("notification failure must not fail the intake: %v", err)
	}
	if len(repo.reservations) != 1 {
		t.Fatal("reservation must be persisted despite email failure")
	}
	if result.Emails.Customer {
		t.Fatal("customer email should be marked failed")
	}
	if !result.Emails.Admin {
		t.Fatal("admin email should still succeed")
	}
	want := "Reservation created successfully! However, confirmation email could not be sent. Please contact support."
	if result.Message() != want {
		t.Fatalf("unexpected message %q", result.Message())
	}
}

func TestCreateValidationFailureWritesNothing(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &fakeNotifier{}
	s := newTestService(repo, notifier)

	in := validInput()
	in.MoveInDate = "2026-03-14" // yesterday relative to testNow

	_, err := s.Create(context.Background(), "standard", in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Reason != ReasonPastDate {
		t.Fatalf("expected past-date rejection, got %q", verr.Reason)
	}
	if len(repo.reservations) != 0 {
		t.Fatal("rejected input must not be stored")
	}
	if notifier.customerSends != 0 || notifier.adminSends != 0 {
		t.Fatal("rejected input must not trigger emails")
	}
}

func TestCreateBackendUnavailable(t *testing.T) {
	repo := &fakeRepo{findErr: ErrUnavailable}
	s := newTestService(repo, &fakeNotifier{})

	_, err := s.Create(context.Background(), "standard", validInput())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCreateUnknownUnitType(t *testing.T) {
	s := newTestService(&fakeRepo{}, &fakeNotifier{})
	if _, err := s.Create(context.Background(), "penthouse", validInput()); err == nil {
		t.Fatal("expected error for unknown unit type")
	}
}
