package reservation

import (
	"context"
	"sync"
	"time"

	"reservation-service/internal/catalog"
	"reservation-service/internal/model"
	"reservation-service/prometheus"

	"go.uber.org/zap"
)

// Notifier dispatches the two reservation emails. Implementations must be
// safe for concurrent use; both sends run in parallel after the write.
type Notifier interface {
	SendCustomerConfirmation(r *model.Reservation) error
	SendAdminAlert(r *model.Reservation) error
}

// EmailStatus records the per-recipient outcome of the notification step.
type EmailStatus struct {
	Customer bool
	Admin    bool
}

// Result is the outcome of a successful intake.
type Result struct {
	Reservation *model.Reservation
	Emails      EmailStatus
}

// Message builds the user-facing success text, amended when the customer
// confirmation could not be delivered.
func (r Result) Message() string {
	msg := "Reservation created successfully!"
	if r.Emails.Customer {
		return msg + " Check your email for confirmation."
	}
	return msg + " However, confirmation email could not be sent. Please contact support."
}

// Service runs the reservation intake pipeline: validate, duplicate
// pre-check, persist with catalog pricing, then best-effort notification.
// One instance serves every unit type; the unit key selects the pricing
// entry and the logical partition of the repository.
type Service struct {
	repo     Repository
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Create handles one reservation submission for the given unit type.
// Validation and conflict failures come back as *ValidationError and
// *ConflictError; anything else is a server-side failure.
func (s *Service) Create(ctx context.Context, unitKey string, in Input) (Result, error) {
	unit, err := catalog.Lookup(unitKey)
	if err != nil {
		return Result{}, err
	}

	norm, verr := Validate(in, s.now())
	if verr != nil {
		prometheus.RecordValidationRejected(verr.Reason)
		return Result{}, verr
	}

	if err := s.checkDuplicates(ctx, unit.Key, norm); err != nil {
		return Result{}, err
	}

	res := &model.Reservation{
		UnitType:        unit.Key,
		Email:           norm.Email,
		Mobile:          norm.Mobile,
		FirstName:       norm.FirstName,
		LastName:        norm.LastName,
		MoveInDate:      norm.MoveInDate,
		SpaceNumber:     unit.SpaceNumber,
		SpaceSize:       unit.SpaceSize,
		MonthlyRent:     unit.MonthlyRent,
		AdminFee:        unit.AdminFee,
		SecurityDeposit: unit.SecurityDeposit,
		TotalCost:       unit.TotalCost(),
		Status:          model.StatusPending,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		// The unique index catches duplicates that raced past the
		// pre-check; the client sees the same conflict either way.
		if conflict, ok := err.(*ConflictError); ok {
			prometheus.RecordDuplicateRejected(conflict.Field)
		}
		return Result{}, err
	}

	prometheus.RecordReservationCreated(unit.Key)
	s.log.Info("Reservation created",
		zap.Uint("reservation_id", res.ID),
		zap.String("unit_type", unit.Key),
		zap.String("email", res.Email))

	return Result{Reservation: res, Emails: s.notify(res)}, nil
}

// checkDuplicates is a fast-path existence probe; the storage constraint is
// the authoritative guard.
func (s *Service) checkDuplicates(ctx context.Context, unitType string, norm Normalized) error {
	existing, err := s.repo.FindByEmail(ctx, unitType, norm.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		prometheus.RecordDuplicateRejected("email")
		return &ConflictError{Field: "email"}
	}

	existing, err = s.repo.FindByMobile(ctx, unitType, norm.Mobile)
	if err != nil {
		return err
	}
	if existing != nil {
		prometheus.RecordDuplicateRejected("mobile number")
		return &ConflictError{Field: "mobile number"}
	}

	return nil
}

// notify fires both emails concurrently and waits for both to settle. Send
// failures are logged and counted but never affect the stored reservation or
// the response status.
func (s *Service) notify(res *model.Reservation) EmailStatus {
	var status EmailStatus
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.notifier.SendCustomerConfirmation(res); err != nil {
			s.log.Error("Customer confirmation email failed",
				zap.Uint("reservation_id", res.ID), zap.Error(err))
			prometheus.RecordEmailSend("customer", false)
			return
		}
		status.Customer = true
		prometheus.RecordEmailSend("customer", true)
	}()
	go func() {
		defer wg.Done()
		if err := s.notifier.SendAdminAlert(res); err != nil {
			s.log.Error("Admin alert email failed",
				zap.Uint("reservation_id", res.ID), zap.Error(err))
			prometheus.RecordEmailSend("admin", false)
			return
		}
		status.Admin = true
		prometheus.RecordEmailSend("admin", true)
	}()
	wg.Wait()

	return status
}
