package naming

import (
	"path/filepath"
	"strings"
)

// StripSuffix removes a collision suffix from a filename: "photo_1.jpg"
// becomes "photo.jpg". Names without a "_N" suffix come back unchanged,
// so callers can compare input and output to detect a suffixed name.
func StripSuffix(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	i := strings.LastIndexByte(stem, '_')
	if i < 0 || i == len(stem)-1 {
		return name
	}
	for _, r := range stem[i+1:] {
		if r < '0' || r > '9' {
			return name
		}
	}
	return stem[:i] + ext
}
