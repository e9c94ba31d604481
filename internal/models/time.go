package models

import "time"

// Timestamp normalises t to UTC at millisecond precision, the finest
// resolution every store keeps.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func Now() time.Time {
	return Timestamp(time.Now())
}
