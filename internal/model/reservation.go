package model

import (
	"time"
)

// ReservationStatus enumerates the lifecycle states of a reservation.
// Intake always creates records as pending; no endpoint mutates the status.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a storage-unit reservation intent. Every unit type shares
// this schema; UnitType partitions the table and resolves the pricing entry.
// The composite unique indexes are the authoritative duplicate guard: the
// pre-insert duplicate check is only a fast path, and a concurrent submission
// that slips past it is rejected by the index instead.
type Reservation struct {
	ID       uint   `json:"id" gorm:"primarykey"`
	UnitType string `json:"unitType" gorm:"type:varchar(32);not null;uniqueIndex:idx_reservations_unit_email;uniqueIndex:idx_reservations_unit_mobile"`

	// Customer fields, stored normalized (email lowercased, mobile digits-only)
	Email      string    `json:"email" gorm:"type:varchar(254);not null;uniqueIndex:idx_reservations_unit_email"`
	Mobile     string    `json:"mobile" gorm:"type:varchar(15);not null;uniqueIndex:idx_reservations_unit_mobile"`
	FirstName  string    `json:"firstName" gorm:"type:varchar(50);not null"`
	LastName   string    `json:"lastName" gorm:"type:varchar(50);not null"`
	MoveInDate time.Time `json:"moveInDate" gorm:"not null"`

	// Unit fields, copied from the pricing catalog at creation
	SpaceNumber     string `json:"spaceNumber" gorm:"type:varchar(16)"`
	SpaceSize       string `json:"spaceSize" gorm:"type:varchar(32)"`
	MonthlyRent     int    `json:"monthlyRent"`
	AdminFee        int    `json:"adminFee"`
	SecurityDeposit int    `json:"securityDeposit"`
	TotalCost       int    `json:"totalCost"`

	Status    ReservationStatus `json:"status" gorm:"type:varchar(16);default:'pending'"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
