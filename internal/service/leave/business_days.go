package leave

import (
	"time"

	"github.com/congeflow/leave-backend-go/internal/domain/leave"
)

const secondsPerDay = 24 * 60 * 60

// ComputeBusinessDays counts the Monday-Friday days in the inclusive range [startDate, endDate].
// Only the calendar date of each argument is used. Public holidays are not considered.
func ComputeBusinessDays(startDate, endDate time.Time) (int, error) {
	start := dateOnly(startDate)
	end := dateOnly(endDate)

	if end.Before(start) {
		return 0, leave.ErrInvalidRange
	}

	totalDays := int(end.Unix()/secondsPerDay-start.Unix()/secondsPerDay) + 1

	// Every run of seven consecutive days holds exactly five weekdays.
	workingDays := (totalDays / 7) * 5

	currentDate := start.AddDate(0, 0, (totalDays/7)*7)
	for !currentDate.After(end) {
		if isBusinessDay(currentDate) {
			workingDays++
		}
		currentDate = currentDate.AddDate(0, 0, 1)
	}

	return workingDays, nil
}

func isBusinessDay(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}

// dateOnly truncates t to midnight UTC of its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
