package main

import (
	"context"
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		dur      time.Duration
		expected string
	}{
		{time.Second * 5, "5 seconds"},
		{time.Second * 65, "1 minute, 5 seconds"},
		{time.Second * 3665, "1 hour, 1 minute, 5 seconds"},
		{time.Second * 3600, "1 hour, 0 minutes, 0 seconds"},
		{time.Second * 60, "1 minute, 0 seconds"},
		{time.Second * 1, "1 second"},
	}
	for _, c := range cases {
		got := formatUptime(c.dur)
		if got != c.expected {
			t.Errorf("formatUptime(%v) = %q, want %q", c.dur, got, c.expected)
		}
	}
}

func TestPlural(t *testing.T) {
	if plural(1) != "" {
		t.Errorf("plural(1) = %q, want \"\"", plural(1))
	}
	if plural(2) != "s" {
		t.Errorf("plural(2) = %q, want \"s\"", plural(2))
	}
	if plural(0) != "s" {
		t.Errorf("plural(0) = %q, want \"s\"", plural(0))
	}
}

func TestRequestPrefix(t *testing.T) {
	if got := requestPrefix(context.Background()); got != "" {
		t.Errorf("requestPrefix without id = %q, want empty", got)
	}
	ctx := context.WithValue(context.Background(), requestIDKey, "abc-123")
	if got := requestPrefix(ctx); got != "[request_id=abc-123] " {
		t.Errorf("requestPrefix = %q", got)
	}
}

func TestColorInput(t *testing.T) {
	if got := colorInput(""); got != DefaultColorInput {
		t.Errorf("colorInput(\"\") = %q, want %q", got, DefaultColorInput)
	}
	if got := colorInput("#123456"); got != "#123456" {
		t.Errorf("colorInput kept value = %q", got)
	}
}
