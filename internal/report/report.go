// Package report parses the ProjectVic case JSON that accompanies a
// Cellebrite Physical Analyzer export. Each media entry maps an exported
// file (RelativeFilePath, an opaque identifier assigned by the extraction
// tool) to the original on-device filename (MediaFiles[0].FileName).
package report

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Entry maps one exported file to its original on-device name.
type Entry struct {
	// RelativePath locates the exported file relative to the case JSON,
	// with Windows-style backslashes already normalized to "/".
	RelativePath string
	// OriginalName is the on-device filename to restore.
	OriginalName string
}

// Mapping is the ordered, read-only list of media entries from a case
// report. Order follows the report so processing order is stable.
type Mapping struct {
	Entries []Entry
	// Skipped counts media entries dropped for missing RelativeFilePath
	// or FileName; reported once so truncated reports are visible.
	Skipped int
}

// --- ProjectVic JSON wire types ---

type caseFile struct {
	Value []caseValue `json:"value"`
}

type caseValue struct {
	Media []mediaEntry `json:"Media"`
}

type mediaEntry struct {
	RelativeFilePath string      `json:"RelativeFilePath"`
	MediaFiles       []mediaFile `json:"MediaFiles"`
}

type mediaFile struct {
	FileName string `json:"FileName"`
}

// Load reads and parses the case JSON at casePath through fsys.
func Load(fsys afero.Fs, casePath string) (*Mapping, error) {
	data, err := afero.ReadFile(fsys, casePath)
	if err != nil {
		return nil, fmt.Errorf("read case file %q: %w", casePath, err)
	}
	return Parse(data)
}

// Parse converts raw case JSON into a Mapping. Exported for testing
// without a file on disk. Media entries without a relative path or an
// original filename are counted in Skipped rather than failing the load:
// partial reports are normal for interrupted extractions.
func Parse(data []byte) (*Mapping, error) {
	var raw caseFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse case JSON: %w", err)
	}

	m := &Mapping{}
	for _, v := range raw.Value {
		for _, media := range v.Media {
			rel := normalizeRelPath(media.RelativeFilePath)
			name := ""
			if len(media.MediaFiles) > 0 {
				name = media.MediaFiles[0].FileName
			}
			if rel == "" || name == "" {
				m.Skipped++
				continue
			}
			m.Entries = append(m.Entries, Entry{
				RelativePath: rel,
				OriginalName: name,
			})
		}
	}
	return m, nil
}

// normalizeRelPath converts the report's Windows-style path to a slash
// path and strips leading separators so it stays relative to the case dir.
// Paths that escape the case dir or collapse to nothing come back empty.
func normalizeRelPath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return ""
	}
	return p
}
