package shared

import (
	"bytes"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Errorf("expected unique ids, got %s twice", a)
	}
}

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "under a minute", seconds: 42, want: "0:42"},
		{name: "minutes and seconds", seconds: 245, want: "4:05"},
		{name: "negative clamps to zero", seconds: -7, want: "0:00"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Info("hello", "key", "value")

	if buf.Len() == 0 {
		t.Error("expected log output to be written")
	}
}
