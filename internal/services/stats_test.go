package services

import (
	"testing"
	"time"
)

func TestStartOfToday(t *testing.T) {
	got := startOfToday()
	now := time.Now()

	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("startOfToday() = %v, expected a midnight value", got)
	}
	if got.Location() != now.Location() {
		t.Errorf("startOfToday() location = %v, expected the server's local zone", got.Location())
	}
	y1, m1, d1 := got.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		t.Errorf("startOfToday() = %v, expected today's date %v", got, now)
	}
	if got.After(now) {
		t.Errorf("startOfToday() = %v is in the future", got)
	}
}
