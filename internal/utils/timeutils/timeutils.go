package timeutils

import (
	"fmt"
	"regexp"
	"time"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// DateLayout is the calendar date format used throughout the booking domain.
const DateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDateString checks both the YYYY-MM-DD shape and calendar validity,
// so inputs like "2024-02-30" are rejected.
func IsValidDateString(date string) bool {
	if !dateRegex.MatchString(date) {
		return false
	}
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// TodayInTimezone returns "now" formatted as YYYY-MM-DD in the given IANA
// timezone, so past-date checks track the space's local calendar rather than
// the server's.
func TodayInTimezone(timezone string) (string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc).Format(DateLayout), nil
}

// DayOfWeekFromDateString returns the weekday (0 Sunday .. 6 Saturday) of a
// YYYY-MM-DD date. The date is evaluated at UTC noon so daylight-saving
// transitions cannot shift it onto an adjacent day.
func DayOfWeekFromDateString(date string) (int, error) {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	noon := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, time.UTC)
	return int(noon.Weekday()), nil
}

// FormatMinutes renders minutes since midnight as HH:MM, 24-hour clock.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DaysInRange returns the inclusive day count between two YYYY-MM-DD dates,
// never less than 1.
func DaysInRange(startDate, endDate string) (int, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days, nil
}

// EachDate returns every YYYY-MM-DD date from startDate through endDate
// inclusive, in ascending order. An inverted range yields only startDate.
func EachDate(startDate, endDate string) ([]string, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	dates := []string{startDate}
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// ValidateBookingTime checks a requested booking window against a space's
// operating hours. Checks run in order and the first failure wins: past date,
// missing schedule entry, closed day, start before opening, end after closing.
// A nil return means the window is bookable.
func ValidateBookingTime(date string, startMinutes, endMinutes int, operatingHours []domain.OperatingHoursDay, timezone string) error {
	today, err := TodayInTimezone(timezone)
	if err != nil {
		return err
	}
	if date < today {
		return fmt.Errorf("cannot book a date in the past")
	}

	dayOfWeek, err := DayOfWeekFromDateString(date)
	if err != nil {
		return err
	}

	var dayHours *domain.OperatingHoursDay
	for i := range operatingHours {
		if operatingHours[i].DayOfWeek == dayOfWeek {
			dayHours = &operatingHours[i]
			break
		}
	}
	if dayHours == nil {
		return fmt.Errorf("operating hours not configured for this day")
	}

	if dayHours.IsClosed {
		return fmt.Errorf("the space is closed on this day")
	}

	if startMinutes < dayHours.OpenMinutes {
		return fmt.Errorf("booking cannot start before opening time (%s)", FormatMinutes(dayHours.OpenMinutes))
	}

	if endMinutes > dayHours.CloseMinutes {
		return fmt.Errorf("booking cannot end after closing time (%s)", FormatMinutes(dayHours.CloseMinutes))
	}

	return nil
}
