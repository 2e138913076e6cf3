package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

// BusinessHours maps a day of week to its operating window; a nil entry
// means the business is closed that day.
type BusinessHours map[time.Weekday]*models.OperatingHours

// DefaultBusinessHours is the fixed company schedule: weekdays 7am-7pm,
// Saturday 8am-5pm, closed Sunday.
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		time.Sunday:    nil,
		time.Monday:    {Open: 7, Close: 19},
		time.Tuesday:   {Open: 7, Close: 19},
		time.Wednesday: {Open: 7, Close: 19},
		time.Thursday:  {Open: 7, Close: 19},
		time.Friday:    {Open: 7, Close: 19},
		time.Saturday:  {Open: 8, Close: 17},
	}
}

// HoursFor returns the operating window for a day of week, or nil when
// the business is closed that day.
func (h BusinessHours) HoursFor(dow time.Weekday) *models.OperatingHours {
	return h[dow]
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s is a strict YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Weekday resolves the day of week for a YYYY-MM-DD date. The string is
// decomposed into civil (year, month, day) integers and the weekday
// computed from those directly; parsing it as a timestamp would let an
// implicit UTC interpretation shift the date by a day.
func Weekday(date string) (time.Weekday, error) {
	if !dateRe.MatchString(date) {
		return 0, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	parts := strings.Split(date, "-")
	y, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	d, _ := strconv.Atoi(parts[2])
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return 0, fmt.Errorf("invalid date %q", date)
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Weekday(), nil
}
