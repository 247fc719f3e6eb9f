package organizer

import "testing"

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"report.pdf", "pdf"},
		{"notes.txt", "txt"},
		{"Photo.JPG", "JPG"},
		{"archive.tar.gz", "gz"},
		{"README", NoExtension},
		{".gitignore", "gitignore"},
		{"file.", NoExtension},
		{"...", NoExtension},
		{"", NoExtension},
	}

	for _, tt := range tests {
		if got := ExtensionOf(tt.name); got != tt.want {
			t.Errorf("ExtensionOf(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
