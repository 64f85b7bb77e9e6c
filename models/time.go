package models

import "time"

// TimestampLayout is the ISO-8601 layout of createdAt, updatedAt and
// scheduledAt, matching JavaScript's Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t in UTC with TimestampLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
