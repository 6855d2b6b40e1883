package validate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
)

// Status is the classification outcome for one file.
type Status string

const (
	StatusValid    Status = "valid"
	StatusInvalid  Status = "invalid"
	StatusTimedOut Status = "timeout" // Dispatched like invalid, logged distinctly.
	// StatusInterrupted means the run was cancelled mid-classification.
	// It says nothing about the file and must never trigger an action.
	StatusInterrupted Status = "interrupted"
)

// Verdict is the result of classifying one file.
type Verdict struct {
	Status Status
	// Format is the decoded/detected format label ("jpeg", "png",
	// "h264 video", ...). Empty when nothing could be detected.
	Format string
	// Reason explains an invalid or timed-out verdict for the decision log.
	Reason string
	// CaptureTime is the EXIF DateTimeOriginal of a valid JPEG, zero
	// otherwise. Logged so restored media keeps an audit trail.
	CaptureTime time.Time
}

// Extensions with a known decode route, used when magic-byte sniffing is
// inconclusive (raw streams, files without headers).
var (
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".bmp": true, ".tiff": true, ".tif": true, ".webp": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
		".flv": true, ".wmv": true, ".webm": true, ".m4v": true,
		".hevc": true, ".h265": true, ".heic": true, ".heif": true,
	}
)

// sniffLen is how many leading bytes filetype needs for magic matching.
const sniffLen = 261

// Validator classifies files within a fixed per-file time budget.
type Validator struct {
	timeout time.Duration
}

// New returns a Validator with the given per-file budget.
func New(timeout time.Duration) *Validator {
	return &Validator{timeout: timeout}
}

// Classify determines whether the file at path is valid decodable media.
//
// Decode order is deterministic: content magic is sniffed first; image
// content gets a full in-process decode, video and HEIC/ISO-BMFF content
// goes to ffprobe. When sniffing is inconclusive the extension decides,
// and as a last resort one image decode is attempted (extraction tools
// emit images without extensions). Every failure maps to an Invalid or
// TimedOut verdict; Classify never returns an error.
//
// The whole inspection runs in a worker goroutine joined with the
// deadline. The result channel is buffered, so a worker that overruns the
// budget still completes its send and exits instead of leaking; an
// overrunning ffprobe child is killed outright by the context.
//
// Cancellation of ctx itself (the run is stopping) is not a timeout:
// it yields StatusInterrupted, which callers must not act on.
func (v *Validator) Classify(ctx context.Context, path string) Verdict {
	tctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	fi, err := os.Stat(path)
	if err != nil {
		return Verdict{Status: StatusInvalid, Reason: "file not readable"}
	}
	if fi.Mode().IsRegular() && fi.Size() == 0 {
		return Verdict{Status: StatusInvalid, Reason: "empty file"}
	}

	ch := make(chan Verdict, 1)
	go func() {
		ch <- v.inspect(tctx, path)
	}()

	select {
	case vd := <-ch:
		return vd
	case <-tctx.Done():
		if ctx.Err() != nil {
			return Verdict{Status: StatusInterrupted, Reason: "run interrupted"}
		}
		return Verdict{Status: StatusTimedOut, Reason: "classification exceeded time budget"}
	}
}

// inspect sniffs the content and runs the matching decode attempt.
func (v *Validator) inspect(ctx context.Context, path string) Verdict {
	switch sniff(path) {
	case contentImage:
		return decodeImageFile(path)
	case contentVideo:
		return v.classifyVideo(ctx, path)
	}

	// Inconclusive sniff: fall back on the extension.
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExtensions[ext]:
		return decodeImageFile(path)
	case videoExtensions[ext]:
		return v.classifyVideo(ctx, path)
	}

	// Last resort: maybe it is an image with a missing or bogus extension.
	if vd := decodeImageFile(path); vd.Status == StatusValid {
		return vd
	}
	return Verdict{Status: StatusInvalid, Reason: "unknown format"}
}

// contentKind is the coarse result of magic-byte sniffing.
type contentKind int

const (
	contentUnknown contentKind = iota
	contentImage
	contentVideo
)

// sniff reads the file head and maps the detected MIME class to a decode
// route. HEIC/HEIF sniffs as image but has no in-process Go decoder, so
// it is routed to ffprobe with the videos.
func sniff(path string) contentKind {
	f, err := os.Open(path)
	if err != nil {
		return contentUnknown
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := f.Read(head)
	if n == 0 && err != nil {
		return contentUnknown
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return contentUnknown
	}
	switch kind.MIME.Type {
	case "image":
		if kind.Extension == "heif" || kind.Extension == "heic" || kind.Extension == "avif" {
			return contentVideo
		}
		return contentImage
	case "video":
		return contentVideo
	}
	return contentUnknown
}
