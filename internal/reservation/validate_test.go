package reservation

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func validInput() Input {
	return Input{
		Email:      "a@b.com",
		Mobile:     "1234567890",
		FirstName:  "Jo",
		LastName:   "Doe",
		MoveInDate: "2026-03-16",
	}
}

func TestValidateAccepts(t *testing.T) {
	norm, verr := Validate(validInput(), testNow)
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if norm.Email != "a@b.com" {
		t.Fatalf("unexpected email %q", norm.Email)
	}
	want := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	if !norm.MoveInDate.Equal(want) {
		t.Fatalf("unexpected move-in date %v", norm.MoveInDate)
	}
}

func TestValidateNormalizes(t *testing.T) {
	in := validInput()
	in.Email = "  User@Example.COM "
	in.Mobile = "+1 (234) 567-8901"
	in.FirstName = " J.o3hn "
	in.LastName = "O'Connor"

	norm, verr := Validate(in, testNow)
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if norm.Email != "user@example.com" {
		t.Fatalf("email not normalized: %q", norm.Email)
	}
	if norm.Mobile != "12345678901" {
		t.Fatalf("mobile not normalized: %q", norm.Mobile)
	}
	if norm.FirstName != "John" {
		t.Fatalf("first name not normalized: %q", norm.FirstName)
	}
	if norm.LastName != "OConnor" {
		t.Fatalf("last name not normalized: %q", norm.LastName)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Input)
		reason  string
		message string
	}{
		{
			name:    "missing email",
			mutate:  func(in *Input) { in.Email = "" },
			reason:  ReasonMissingFields,
			message: "Missing required fields: email",
		},
		{
			name: "missing several",
			mutate: func(in *Input) {
				in.Mobile = "   "
				in.MoveInDate = ""
			},
			reason:  ReasonMissingFields,
			message: "Missing required fields: mobile, moveInDate",
		},
		{
			name:    "bad email",
			mutate:  func(in *Input) { in.Email = "not-an-email" },
			reason:  ReasonInvalidEmail,
			message: "Please enter a valid email address",
		},
		{
			name:   "email without tld",
			mutate: func(in *Input) { in.Email = "user@host" },
			reason: ReasonInvalidEmail,
		},
		{
			name:    "mobile too short",
			mutate:  func(in *Input) { in.Mobile = "123456789" },
			reason:  ReasonInvalidMobile,
			message: "Please enter a valid mobile number (10-15 digits)",
		},
		{
			name:   "mobile too long",
			mutate: func(in *Input) { in.Mobile = "1234567890123456" },
			reason: ReasonInvalidMobile,
		},
		{
			name:   "mobile all letters",
			mutate: func(in *Input) { in.Mobile = "call-me-maybe" },
			reason: ReasonInvalidMobile,
		},
		{
			name:    "first name too short",
			mutate:  func(in *Input) { in.FirstName = "J" },
			reason:  ReasonInvalidName,
			message: "First name and last name must be at least 2 characters",
		},
		{
			name:   "name digits only",
			mutate: func(in *Input) { in.FirstName = "1234" },
			reason: ReasonInvalidName,
		},
		{
			name:    "name too long",
			mutate:  func(in *Input) { in.LastName = strings.Repeat("a", 51) },
			reason:  ReasonInvalidName,
			message: "Names cannot exceed 50 characters",
		},
		{
			name:    "unparseable date",
			mutate:  func(in *Input) { in.MoveInDate = "next tuesday" },
			reason:  ReasonInvalidDate,
			message: "Invalid date format",
		},
		{
			name:    "yesterday",
			mutate:  func(in *Input) { in.MoveInDate = "2026-03-14" },
			reason:  ReasonPastDate,
			message: "Move-in date cannot be in the past",
		},
		{
			name:    "more than a year out",
			mutate:  func(in *Input) { in.MoveInDate = "2027-03-16" },
			reason:  ReasonDateTooFarOut,
			message: "Move-in date cannot be more than 1 year in the future",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, verr := Validate(in, testNow)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if verr.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, verr.Reason)
			}
			if tc.message != "" && verr.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, verr.Message)
			}
		})
	}
}

func TestValidateDateBoundaries(t *testing.T) {
	// Today and exactly one year out are both allowed, even late in the day.
	for _, date := range []string{"2026-03-15", "2027-03-15"} {
		in := validInput()
		in.MoveInDate = date
		if _, verr := Validate(in, testNow); verr != nil {
			t.Fatalf("date %s should be accepted, got %v", date, verr)
		}
	}
}

func TestValidateAcceptsDatetimeFormats(t *testing.T) {
	for _, date := range []string{"2026-03-16T00:00:00Z", "2026-03-16T12:30:00"} {
		in := validInput()
		in.MoveInDate = date
		norm, verr := Validate(in, testNow)
		if verr != nil {
			t.Fatalf("date %s should be accepted, got %v", date, verr)
		}
		if norm.MoveInDate.Hour() != 0 {
			t.Fatalf("time of day should be zeroed, got %v", norm.MoveInDate)
		}
	}
}
