package validation

import (
	"time"

	"task-planner-api/internal/apperrors"
)

// Date layouts are deliberately distinct per entity type: tasks and subtasks
// take a bare day (midnight time-of-day), meetings take minute precision.
const (
	DateLayout        = "02-01-2006"
	MeetingTimeLayout = "02-01-2006 15:04"
)

// now is a small indirection to allow test stubbing if needed.
var now = time.Now

// ParseAndValidateCreatedAt resolves an optional creation-date string.
// Absent input defaults to the current time. A parsed date strictly after
// now is rejected; equal-to-now is accepted.
func ParseAndValidateCreatedAt(dateStr *string) (time.Time, error) {
	if dateStr == nil {
		return now().UTC(), nil
	}

	parsed, err := time.Parse(DateLayout, *dateStr)
	if err != nil {
		return time.Time{}, apperrors.E(apperrors.InvalidFormat,
			"invalid date format %q, use 'DD-MM-YYYY'", *dateStr)
	}

	if parsed.After(now().UTC()) {
		return time.Time{}, apperrors.E(apperrors.FutureCreationDate,
			"the created_at date cannot be in the future")
	}

	return parsed, nil
}

// ParseAndValidateDueDate resolves an optional due-date string. Absent input
// means "no due date" and is not an error. A parsed date strictly before now
// is rejected.
func ParseAndValidateDueDate(dateStr *string) (*time.Time, error) {
	if dateStr == nil {
		return nil, nil
	}

	parsed, err := time.Parse(DateLayout, *dateStr)
	if err != nil {
		return nil, apperrors.E(apperrors.InvalidFormat,
			"invalid date format %q, use 'DD-MM-YYYY'", *dateStr)
	}

	if parsed.Before(now().UTC()) {
		return nil, apperrors.E(apperrors.PastDueDate,
			"the due_date cannot be in the past")
	}

	return &parsed, nil
}

// ValidateMeetingDates checks the three temporal rules for a meeting in a
// fixed order; only the first failing rule is reported.
func ValidateMeetingDates(start, end time.Time) error {
	currentTime := now().UTC()

	if start.Before(currentTime) {
		return apperrors.E(apperrors.InvalidStartDate,
			"start date cannot be in the past")
	}

	if end.Before(currentTime) {
		return apperrors.E(apperrors.InvalidEndDate,
			"end date cannot be in the past")
	}

	if !end.After(start) {
		return apperrors.E(apperrors.InvalidDateRange,
			"end date must be after start date")
	}

	return nil
}

// ParseMeetingTime parses a meeting timestamp in 'DD-MM-YYYY HH:MM' form.
func ParseMeetingTime(dateStr string) (time.Time, error) {
	parsed, err := time.Parse(MeetingTimeLayout, dateStr)
	if err != nil {
		return time.Time{}, apperrors.E(apperrors.InvalidFormat,
			"invalid date format %q, expected 'DD-MM-YYYY HH:MM'", dateStr)
	}
	return parsed, nil
}
