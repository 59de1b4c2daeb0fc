package format

import (
	"testing"
	"time"
)

func TestFormatSeconds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.50"},
		{3 * time.Second, "3.00"},
		{time.Second, "1.00"},
		{1234567 * time.Microsecond, "1.23"},
		{0, "0.00"},
		{3502324880 * time.Nanosecond, "3.50"},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.d); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
