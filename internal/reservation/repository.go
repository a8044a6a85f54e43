package reservation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"reservation-service/internal/model"
	"reservation-service/prometheus"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the persistence boundary for reservations. Create must
// enforce uniqueness of (unit type, email) and (unit type, mobile) and return
// a *ConflictError when either is violated.
type Repository interface {
	Create(ctx context.Context, r *model.Reservation) error
	FindByEmail(ctx context.Context, unitType, email string) (*model.Reservation, error)
	FindByMobile(ctx context.Context, unitType, mobile string) (*model.Reservation, error)
	Ping(ctx context.Context) error
}

// GormRepository implements Repository on a Postgres-backed GORM connection.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// uniqueViolation is the Postgres SQLSTATE for unique-constraint violations.
const uniqueViolation = "23505"

func (r *GormRepository) Create(ctx context.Context, res *model.Reservation) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *GormRepository) FindByEmail(ctx context.Context, unitType, email string) (*model.Reservation, error) {
	return r.findOne(ctx, "email = ?", unitType, email)
}

func (r *GormRepository) FindByMobile(ctx context.Context, unitType, mobile string) (*model.Reservation, error) {
	return r.findOne(ctx, "mobile = ?", unitType, mobile)
}

// findOne returns nil without error when no record matches.
func (r *GormRepository) findOne(ctx context.Context, cond, unitType, value string) (*model.Reservation, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var res model.Reservation
	err := r.db.WithContext(ctx).
		Where("unit_type = ?", unitType).
		Where(cond, value).
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &res, nil
}

// Ping verifies the backing connection is alive.
func (r *GormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return ErrUnavailable
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return ErrUnavailable
	}
	return nil
}

// translateError maps driver errors onto the domain error taxonomy: unique
// violations become ConflictError (carrying which field collided, recovered
// from the index name) and connection-level failures become ErrUnavailable.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &ConflictError{Field: conflictField(pgErr.ConstraintName)}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, gorm.ErrInvalidDB) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return err
}

func conflictField(constraint string) string {
	if strings.Contains(constraint, "mobile") {
		return "mobile number"
	}
	return "email"
}
