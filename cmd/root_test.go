package cmd

import (
	"testing"
	"time"
)

func TestParseTimeFlag(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  time.Time
		expectErr bool
	}{
		{
			name:     "empty string",
			input:    "",
			expected: time.Time{},
		},
		{
			name:     "rfc3339",
			input:    "2026-03-02T09:30:00Z",
			expected: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 with offset",
			input:    "2026-03-02T09:30:00+02:00",
			expected: time.Date(2026, 3, 2, 9, 30, 0, 0, time.FixedZone("", 2*60*60)),
		},
		{
			name:     "plain date",
			input:    "2026-03-02",
			expected: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "garbage",
			input:     "next tuesday",
			expectErr: true,
		},
		{
			name:      "time without date",
			input:     "09:30",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeFlag(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("parseTimeFlag(%q) expected an error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTimeFlag(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("parseTimeFlag(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWindowFromFlags(t *testing.T) {
	window, err := windowFromFlags("2026-03-02", "2026-03-09")
	if err != nil {
		t.Fatalf("windowFromFlags: %v", err)
	}
	if !window.Start.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected window start %v", window.Start)
	}
	if !window.End.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected window end %v", window.End)
	}

	// Empty flags yield a zero window; the calendar layer applies the
	// default span.
	window, err = windowFromFlags("", "")
	if err != nil {
		t.Fatalf("windowFromFlags: %v", err)
	}
	if !window.Start.IsZero() || !window.End.IsZero() {
		t.Errorf("expected a zero window, got %+v", window)
	}

	if _, err := windowFromFlags("bogus", ""); err == nil {
		t.Error("expected an error for an unparseable start")
	}
}
