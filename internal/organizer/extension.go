package organizer

import "strings"

// NoExtension is the folder for files whose names carry no extension.
const NoExtension = "No_Extension"

// ExtensionOf returns the text after the last dot in name, case preserved.
// Names without a dot, or ending in one, map to NoExtension. A leading dot counts
// like any other, so ".gitignore" has the extension "gitignore".
func ExtensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return NoExtension
	}

	return name[idx+1:]
}
