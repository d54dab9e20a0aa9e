package utils_test

import (
	"testing"
	"time"

	"github.com/username/settleadmin/backend/src/utils"
)

func TestMonthKey(t *testing.T) {
	ts := time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)
	if got := utils.MonthKey(ts); got != "2024-01" {
		t.Errorf("MonthKey = %q, want \"2024-01\"", got)
	}
}

func TestSameCalendarDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 23, 50, 0, 0, time.UTC)
	sameDay := time.Date(2024, 3, 15, 0, 5, 0, 0, time.UTC)
	nextDay := time.Date(2024, 3, 16, 0, 5, 0, 0, time.UTC)

	if !utils.SameCalendarDay(now, sameDay) {
		t.Error("expected same calendar day")
	}
	if utils.SameCalendarDay(now, nextDay) {
		t.Error("expected different calendar day")
	}
}

func TestWithinRollingWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	week := 7 * 24 * time.Hour

	inside := now.Add(-6 * 24 * time.Hour)
	boundary := now.Add(-week)
	outside := now.Add(-week - time.Second)
	future := now.Add(time.Hour)

	if !utils.WithinRollingWindow(inside, now, week) {
		t.Error("timestamp 6 days ago should be inside a 7-day window")
	}
	if !utils.WithinRollingWindow(boundary, now, week) {
		t.Error("the window boundary is inclusive")
	}
	if utils.WithinRollingWindow(outside, now, week) {
		t.Error("timestamp past the window should be outside")
	}
	if utils.WithinRollingWindow(future, now, week) {
		t.Error("future timestamps are never inside a rolling window")
	}
}
