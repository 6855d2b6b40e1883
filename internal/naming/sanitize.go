package naming

import (
	"strings"
)

// Characters that cannot appear in a filename on at least one supported
// filesystem. Path separators are included so a report entry can never
// write outside the destination directory.
const unsafeChars = `<>:"/\|?*`

// Windows device names are reserved regardless of extension.
var reservedNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

// SanitizeName makes a report-supplied filename safe to create in the
// destination directory. Unsafe characters and control bytes become "_",
// trailing dots and spaces are trimmed, and reserved device names get a
// "_" prefix. Returns "" when nothing usable remains; the caller then
// falls back to the exported name.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(unsafeChars, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}

	s := strings.TrimRight(b.String(), ". ")
	if s == "" || strings.Trim(s, "_") == "" {
		return ""
	}

	stem := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		stem = s[:i]
	}
	if reservedNames[strings.ToLower(stem)] {
		s = "_" + s
	}
	return s
}
