package config

import (
	"os"
	"strconv"
	"strings"
)

// LegacyTaskMatchEnabled keeps the old tag/substring correlation between
// tasks and compliance items. Tasks created before the structured
// compliance_item_id column existed can only be found this way.
//
// Set via env:
// - LEGACY_TASK_MATCH=true
func LegacyTaskMatchEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("LEGACY_TASK_MATCH")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// ScanCap bounds the number of records a single store scan will visit.
// Larger collections are truncated with a warning instead of processed
// exhaustively, so a scheduler tick can never run unbounded.
//
// Set via env:
// - STORE_SCAN_CAP (default 10000)
func ScanCap() int {
	v := strings.TrimSpace(os.Getenv("STORE_SCAN_CAP"))
	if v == "" {
		return 10000
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 10000
	}
	return n
}

// BusinessHours returns the inclusive start hour and exclusive end hour
// (local time) inside which the hourly escalation trigger is allowed to run.
//
// Set via env:
// - BUSINESS_HOUR_START (default 9)
// - BUSINESS_HOUR_END (default 17)
func BusinessHours() (int, int) {
	start := intFromEnv("BUSINESS_HOUR_START", 9)
	end := intFromEnv("BUSINESS_HOUR_END", 17)
	if start < 0 || start > 23 || end <= start || end > 24 {
		return 9, 17
	}
	return start, end
}

// UpcomingWindowDays is the look-ahead window the daily trigger uses when
// generating tasks for upcoming deadlines.
//
// Set via env:
// - UPCOMING_WINDOW_DAYS (default 30)
func UpcomingWindowDays() int {
	n := intFromEnv("UPCOMING_WINDOW_DAYS", 30)
	if n <= 0 {
		return 30
	}
	return n
}
