// Package schedule computes the fixed weekly practice calendar: when the
// next practice occurs and whether the current moment falls inside the
// alert-monitoring window. Both functions are pure; callers supply the clock
// reading, and times are interpreted in its location.
package schedule

import "time"

// Practice times. Monday evenings start earlier than Friday evenings;
// weekends defer to the following Monday.
const (
	mondayHour   = 18
	mondayMinute = 15
	fridayHour   = 19
	fridayMinute = 15
)

// monitorStartHour is when evening monitoring begins on practice days.
const monitorStartHour = 17

// NextPractice returns the next practice occurrence at or after now:
// Monday 18:15 or Friday 19:15 local time, whichever comes first.
func NextPractice(now time.Time) time.Time {
	switch now.Weekday() {
	case time.Saturday:
		return at(now.AddDate(0, 0, daysUntil(now, time.Monday)), mondayHour, mondayMinute)
	case time.Sunday:
		return at(now.AddDate(0, 0, 1), mondayHour, mondayMinute)
	case time.Monday:
		today := at(now, mondayHour, mondayMinute)
		if now.Before(today) {
			return today
		}
		return at(now.AddDate(0, 0, 4), fridayHour, fridayMinute)
	case time.Friday:
		today := at(now, fridayHour, fridayMinute)
		if now.Before(today) {
			return today
		}
		return at(now.AddDate(0, 0, 3), mondayHour, mondayMinute)
	default: // Tuesday through Thursday
		return at(now.AddDate(0, 0, daysUntil(now, time.Friday)), fridayHour, fridayMinute)
	}
}

// InMonitoringWindow reports whether alert monitoring is active: all day
// Sunday, and from 17:00 onward on Mondays and Fridays.
func InMonitoringWindow(now time.Time) bool {
	switch now.Weekday() {
	case time.Sunday:
		return true
	case time.Monday, time.Friday:
		return now.Hour() >= monitorStartHour
	default:
		return false
	}
}

// at returns the given day at hour:minute in the day's location.
func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// daysUntil returns the number of days from now's weekday forward to target,
// always at least 1.
func daysUntil(now time.Time, target time.Weekday) int {
	d := (int(target) - int(now.Weekday()) + 7) % 7
	if d == 0 {
		d = 7
	}
	return d
}
