package pipeline

// RunStats tracks aggregate counters across a run.
type RunStats struct {
	Total   int // Tasks found (report entries or walked files).
	Current int // 1-based index of the file being processed.

	Valid    int
	Invalid  int
	TimedOut int

	Renamed    int
	Moved      int
	Deleted    int
	Missing    int // Report entries whose exported file was not found.
	Errors     int // Files skipped due to filesystem errors.
	Duplicates int // Colliding files with byte-identical content.

	BytesReclaimed int64 // Bytes freed by deleting invalid files.
}

// Rejected returns how many files were classified as not valid media,
// timeouts included.
func (s *RunStats) Rejected() int {
	return s.Invalid + s.TimedOut
}
