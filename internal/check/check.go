// Package check provides system diagnostics (-p mode) and pre-run
// dependency validation (CheckDeps) for ffprobe and the built-in image
// decoders.
package check

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os/exec"
	"strings"

	"github.com/h2non/filetype"

	_ "github.com/backmassage/mediarestore/internal/validate" // registers image decoders
)

// ErrFfprobeNotFound is returned by CheckDeps when ffprobe is missing,
// which makes every video unverifiable.
var ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive -p flow: prints availability of ffprobe,
// the registered image decoders, and the magic-number sniffer. This is
// informational only, it does not stop on failure.
func RunCheck(log Logger) {
	log.Info("=== Dependency Check ===")

	checkFfprobe(log)
	checkImageDecoders(log)
	checkSniffer(log)
}

// checkFfprobe verifies ffprobe is on PATH and logs its version string.
func checkFfprobe(log Logger) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		log.Error("ffprobe not found (video files cannot be verified)")
		return
	}
	cmd := exec.Command("ffprobe", "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("ffprobe found but -version failed: %v", err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("ffprobe: %s", firstLine)
}

// checkImageDecoders round-trips a generated image through the registered
// decoders to confirm they are linked in and working.
func checkImageDecoders(log Logger) {
	sample, err := samplePNG()
	if err != nil {
		log.Error("PNG encoder broken: %v", err)
		return
	}
	if _, format, err := image.Decode(bytes.NewReader(sample)); err != nil || format != "png" {
		log.Error("image decoders not working: %v", err)
		return
	}
	log.Success("image decoders: jpeg, png, gif, bmp, tiff, webp")
}

// checkSniffer confirms magic-number detection recognizes known content.
func checkSniffer(log Logger) {
	sample, err := samplePNG()
	if err != nil {
		log.Error("PNG encoder broken: %v", err)
		return
	}
	kind, err := filetype.Match(sample)
	if err != nil || kind.Extension != "png" {
		log.Error("magic-number sniffer failed on a PNG sample")
		return
	}
	log.Success("magic-number sniffer works")
}

// CheckDeps is the pre-run validation: it verifies that ffprobe is on
// PATH. Image decoding is compiled in and needs no external tools.
// Returns a sentinel error on failure.
func CheckDeps() error {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// samplePNG encodes a tiny in-memory image, giving the diagnostics a
// known-good input without shipping a fixture.
func samplePNG() ([]byte, error) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
