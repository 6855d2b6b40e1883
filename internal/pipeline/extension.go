package pipeline

import "strings"

// formatExtension maps a decoded image format label to its canonical
// extension. Video verdicts return "": the codec name says nothing
// reliable about the right container extension.
func formatExtension(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	case "bmp":
		return ".bmp"
	case "tiff":
		return ".tif"
	case "webp":
		return ".webp"
	}
	return ""
}

// equalFoldExt compares extensions case-insensitively, treating the
// common spelling variants (.jpg/.jpeg, .tif/.tiff) as equal.
func equalFoldExt(a, b string) bool {
	a = canonicalExt(strings.ToLower(a))
	b = canonicalExt(strings.ToLower(b))
	return a == b
}

func canonicalExt(ext string) string {
	switch ext {
	case ".jpeg":
		return ".jpg"
	case ".tiff":
		return ".tif"
	}
	return ext
}
