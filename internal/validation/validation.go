// Package validation holds the field-level rules applied to request
// payloads before anything touches storage. Handlers surface the
// resulting field errors as a 400 {title, errors} body.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"PATHFINDER_BACK-END/internal/dto"
	"PATHFINDER_BACK-END/internal/models"
)

var (
	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	alphanumericRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// IsEmail reports whether s looks like a well-formed email address.
func IsEmail(s string) bool {
	return len(s) <= 255 && !strings.ContainsAny(s, " \t\r\n") && emailRe.MatchString(s)
}

// Signup validates a registration payload.
func Signup(req *dto.SignupRequest) []dto.FieldError {
	var errs []dto.FieldError

	if !IsEmail(req.Email) {
		errs = append(errs, dto.FieldError{Field: "email", Message: "Please provide a valid email."})
	}
	switch {
	case len(req.Username) < 4 || len(req.Username) > 30:
		errs = append(errs, dto.FieldError{Field: "username", Message: "Please provide a username between 4 and 30 characters."})
	case IsEmail(req.Username):
		errs = append(errs, dto.FieldError{Field: "username", Message: "Username cannot be an email."})
	case !alphanumericRe.MatchString(req.Username):
		errs = append(errs, dto.FieldError{Field: "username", Message: "Username must contain only letters and numbers."})
	}
	if len(req.Password) < 6 || len(req.Password) > 50 {
		errs = append(errs, dto.FieldError{Field: "password", Message: "Password must be between 6 and 50 characters."})
	}
	if strings.TrimSpace(req.FirstName) == "" {
		errs = append(errs, dto.FieldError{Field: "firstName", Message: "First name is required"})
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs = append(errs, dto.FieldError{Field: "lastName", Message: "Last name is required"})
	}
	return errs
}

// Login validates a login payload. Credential format is checked before
// any storage lookup happens.
func Login(req *dto.LoginRequest) []dto.FieldError {
	var errs []dto.FieldError

	if len(req.Credential) < 4 || strings.ContainsAny(req.Credential, " \t\r\n") {
		errs = append(errs, dto.FieldError{Field: "credential", Message: "Please provide a valid email or username."})
	}
	if len(req.Password) < 6 {
		errs = append(errs, dto.FieldError{Field: "password", Message: "Password must be 6 characters or more."})
	}
	return errs
}

// Post validates the top-level trip fields shared by create and update.
func Post(body, status string, tripLength *int) []dto.FieldError {
	var errs []dto.FieldError

	if strings.TrimSpace(body) == "" {
		errs = append(errs, dto.FieldError{Field: "body", Message: "Trip content cannot be empty"})
	}
	if !models.ValidStatus(status) {
		errs = append(errs, dto.FieldError{Field: "status", Message: "Status must be one of: planned, completed, in_progress"})
	}
	if tripLength != nil && *tripLength < 1 {
		errs = append(errs, dto.FieldError{Field: "tripLength", Message: "Trip length must be an integer greater than or equal to 1"})
	}
	return errs
}

// Stops validates a trip's stop list. Stops are held to the same
// strictness as top-level fields: a missing name or location is an
// error, not a silent default.
func Stops(stops []dto.StopInput) []dto.FieldError {
	var errs []dto.FieldError

	if len(stops) == 0 {
		return append(errs, dto.FieldError{Field: "stops", Message: "At least one stop is required"})
	}
	for i, s := range stops {
		name := strings.TrimSpace(s.Name)
		location := strings.TrimSpace(s.Location)
		if name == "" || len(name) > 100 {
			errs = append(errs, dto.FieldError{Field: stopField(i, "name"), Message: "Stop name must be between 1 and 100 characters"})
		}
		if location == "" || len(location) > 255 {
			errs = append(errs, dto.FieldError{Field: stopField(i, "location"), Message: "Stop location must be between 1 and 255 characters"})
		}
		if s.Order != nil && *s.Order < 1 {
			errs = append(errs, dto.FieldError{Field: stopField(i, "order"), Message: "Stop order must be an integer greater than or equal to 1"})
		}
		if s.Days != nil && *s.Days < 1 {
			errs = append(errs, dto.FieldError{Field: stopField(i, "days"), Message: "Stop days must be an integer greater than or equal to 1"})
		}
	}
	return errs
}

// Review validates a review payload.
func Review(req *dto.ReviewRequest) []dto.FieldError {
	var errs []dto.FieldError

	if req.Rating == nil || *req.Rating < 1 || *req.Rating > 5 {
		errs = append(errs, dto.FieldError{Field: "rating", Message: "Rating must be an integer from 1 to 5"})
	}
	if strings.TrimSpace(req.Reviews) == "" {
		errs = append(errs, dto.FieldError{Field: "reviews", Message: "Review text is required"})
	}
	return errs
}

func stopField(i int, field string) string {
	return "stops[" + strconv.Itoa(i) + "]." + field
}
