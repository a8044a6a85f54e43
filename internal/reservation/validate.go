package reservation

import (
	"regexp"
	"strings"
	"time"
)

// Input carries the raw, untrusted fields of a reservation request.
type Input struct {
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MoveInDate string `json:"moveInDate"`
}

// Normalized is the validated and sanitized form of an Input.
type Normalized struct {
	Email      string
	Mobile     string // digits only
	FirstName  string
	LastName   string
	MoveInDate time.Time // date only, midnight local time
}

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigitPattern = regexp.MustCompile(`[^0-9]`)
	nonNamePattern  = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// dateLayouts accepted for moveInDate, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Validate checks and normalizes raw reservation input. Rules run in a fixed
// order and the first failure wins. now anchors the date-range checks; pass
// time.Now() outside of tests.
func Validate(in Input, now time.Time) (Normalized, *ValidationError) {
	if missing := missingFields(in); len(missing) > 0 {
		return Normalized{}, &ValidationError{
			Reason:  ReasonMissingFields,
			Message: "Missing required fields: " + strings.Join(missing, ", "),
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	mobile := nonDigitPattern.ReplaceAllString(in.Mobile, "")
	firstName := strings.TrimSpace(nonNamePattern.ReplaceAllString(in.FirstName, ""))
	lastName := strings.TrimSpace(nonNamePattern.ReplaceAllString(in.LastName, ""))

	if !emailPattern.MatchString(email) {
		return Normalized{}, &ValidationError{
			Reason:  ReasonInvalidEmail,
			Message: "Please enter a valid email address",
		}
	}

	if len(mobile) < 10 || len(mobile) > 15 {
		return Normalized{}, &ValidationError{
			Reason:  ReasonInvalidMobile,
			Message: "Please enter a valid mobile number (10-15 digits)",
		}
	}

	if len(firstName) < 2 || len(lastName) < 2 {
		return Normalized{}, &ValidationError{
			Reason:  ReasonInvalidName,
			Message: "First name and last name must be at least 2 characters",
		}
	}
	if len(firstName) > 50 || len(lastName) > 50 {
		return Normalized{}, &ValidationError{
			Reason:  ReasonInvalidName,
			Message: "Names cannot exceed 50 characters",
		}
	}

	moveIn, ok := parseDate(strings.TrimSpace(in.MoveInDate), now.Location())
	if !ok {
		return Normalized{}, &ValidationError{
			Reason:  ReasonInvalidDate,
			Message: "Invalid date format",
		}
	}

	today := startOfDay(now)
	if moveIn.Before(today) {
		return Normalized{}, &ValidationError{
			Reason:  ReasonPastDate,
			Message: "Move-in date cannot be in the past",
		}
	}
	if moveIn.After(today.AddDate(1, 0, 0)) {
		return Normalized{}, &ValidationError{
			Reason:  ReasonDateTooFarOut,
			Message: "Move-in date cannot be more than 1 year in the future",
		}
	}

	return Normalized{
		Email:      email,
		Mobile:     mobile,
		FirstName:  firstName,
		LastName:   lastName,
		MoveInDate: moveIn,
	}, nil
}

func missingFields(in Input) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"email", in.Email},
		{"mobile", in.Mobile},
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"moveInDate", in.MoveInDate},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// parseDate accepts an ISO-8601 date or datetime and reduces it to day
// granularity in the given location.
func parseDate(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
