package tui

import (
	"testing"
	"time"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tc := range tests {
		if got := formatCount(tc.in); got != tc.want {
			t.Errorf("formatCount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := formatMoney(25000); got != "$25,000" {
		t.Errorf("formatMoney(25000) = %q", got)
	}
	if got := formatMoney(6250.4); got != "$6,250" {
		t.Errorf("formatMoney(6250.4) = %q", got)
	}
	if got := formatMoney(-100.4); got != "$-100" {
		t.Errorf("formatMoney(-100.4) = %q", got)
	}
}

func TestFormatAge(t *testing.T) {
	if got := formatAge(time.Now()); got != "just now" {
		t.Errorf("formatAge(now) = %q", got)
	}
	if got := formatAge(time.Now().Add(-5 * time.Minute)); got != "5m ago" {
		t.Errorf("formatAge(-5m) = %q", got)
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("truncStr short = %q", got)
	}
	if got := truncStr("a very long region name", 10); len([]rune(got)) != 10 {
		t.Errorf("truncStr must cap at 10 runes, got %q", got)
	}
}
