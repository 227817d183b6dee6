package ui

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0s"},
		{59 * time.Second, "59s"},
		{60 * time.Second, "1m0s"},
		{3661 * time.Second, "1h1m1s"},
		{-10 * time.Second, "0s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.expected {
			t.Errorf("FormatDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Now()
	past := now.Add(-90 * time.Second)
	if got, want := FormatAge(past, now), "1m30s ago"; got != want {
		t.Errorf("FormatAge() = %s; want %s", got, want)
	}
}
