package terminal

import (
	"bytes"
	"testing"
)

func TestSetTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "filemanager", "\033]0;filemanager\007"},
		{"empty", "", ""},
		{"control characters stripped", "file\007manager\n", "\033]0;filemanager\007"},
		{"only control characters", "\033\007", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetTitle(&buf, tt.title)

			if got := buf.String(); got != tt.want {
				t.Errorf("SetTitle(%q) wrote %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestResetTitle(t *testing.T) {
	var buf bytes.Buffer
	ResetTitle(&buf)

	if got := buf.String(); got != "\033]0;\007" {
		t.Errorf("ResetTitle() wrote %q", got)
	}
}
