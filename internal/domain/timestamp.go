package domain

import "time"

// TimestampLayout is the canonical text form of LastReviewed
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DisplayReviewed returns a user-friendly description of the last review
func DisplayReviewed(lastReviewed *time.Time, now time.Time) string {
	if lastReviewed == nil {
		return "never"
	}
	date := lastReviewed.In(now.Location())

	if sameDay(date, now) {
		return "today"
	}
	if sameDay(date, now.AddDate(0, 0, -1)) {
		return "yesterday"
	}

	return date.Format("2 Jan 2006")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
