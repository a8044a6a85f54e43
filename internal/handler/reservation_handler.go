package handler

import (
	"errors"
	"net/http"
	"time"

	"reservation-service/internal/reservation"
	"reservation-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReservationHandler exposes the intake pipeline over HTTP. One instance
// serves all unit-type routes; CreateReservation binds a route to its unit
// key.
type ReservationHandler struct {
	service     *reservation.Service
	development bool
}

func NewReservationHandler(service *reservation.Service, development bool) *ReservationHandler {
	return &ReservationHandler{service: service, development: development}
}

// reservationData is the payload section of a successful intake response.
type reservationData struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	MoveInDate      time.Time `json:"moveInDate"`
	SpaceNumber     string    `json:"spaceNumber"`
	SpaceSize       string    `json:"spaceSize"`
	MonthlyRent     int       `json:"monthlyRent"`
	AdminFee        int       `json:"adminFee"`
	SecurityDeposit int       `json:"securityDeposit"`
	TotalCost       int       `json:"totalCost"`
}

// CreateReservation returns the POST handler for one unit-type route.
func (h *ReservationHandler) CreateReservation(unitKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		var in reservation.Input
		if err := c.Bind(&in); err != nil {
			log.Warn("Failed to parse reservation request", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "Invalid request body",
			})
		}

		result, err := h.service.Create(c.Request().Context(), unitKey, in)
		if err != nil {
			return h.writeError(c, unitKey, err)
		}

		res := result.Reservation
		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"message": result.Message(),
			"data": reservationData{
				ID:              res.ID,
				Email:           res.Email,
				FirstName:       res.FirstName,
				LastName:        res.LastName,
				MoveInDate:      res.MoveInDate,
				SpaceNumber:     res.SpaceNumber,
				SpaceSize:       res.SpaceSize,
				MonthlyRent:     res.MonthlyRent,
				AdminFee:        res.AdminFee,
				SecurityDeposit: res.SecurityDeposit,
				TotalCost:       res.TotalCost,
			},
		})
	}
}

// writeError maps domain errors onto the response envelope. Validation and
// conflict failures are client errors; an unreachable backend is 503;
// anything else is a generic 500 with detail only in development mode.
func (h *ReservationHandler) writeError(c echo.Context, unitKey string, err error) error {
	log := logger.FromContext(c)

	var verr *reservation.ValidationError
	if errors.As(err, &verr) {
		log.Info("Reservation rejected",
			zap.String("unit_type", unitKey),
			zap.String("reason", verr.Reason))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": verr.Message,
		})
	}

	var conflict *reservation.ConflictError
	if errors.As(err, &conflict) {
		log.Info("Duplicate reservation rejected",
			zap.String("unit_type", unitKey),
			zap.String("field", conflict.Field))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": conflict.Error(),
		})
	}

	if errors.Is(err, reservation.ErrUnavailable) {
		log.Error("Persistence backend unavailable", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"success": false,
			"message": "Database connection error. Please contact support.",
		})
	}

	log.Error("Reservation intake failed",
		zap.String("unit_type", unitKey), zap.Error(err))
	body := echo.Map{
		"success": false,
		"message": "Server error. Please try again later.",
	}
	if h.development {
		body["error"] = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, body)
}

// NotFound is the fallback for unregistered routes.
func NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"success": false,
		"message": "Route not found",
	})
}
