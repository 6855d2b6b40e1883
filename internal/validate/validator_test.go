package validate

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
	"time"
)

func testValidator() *Validator {
	return New(15 * time.Second)
}

// writePNG writes a small but real PNG to dir/name and returns its path.
func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 8; i++ {
		img.Set(i, i, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeJPEG writes a small but real JPEG to dir/name and returns its path.
func writeJPEG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClassify_ValidPNG(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "pic.png")

	vd := testValidator().Classify(context.Background(), path)
	if vd.Status != StatusValid {
		t.Fatalf("Status = %s (%s), want valid", vd.Status, vd.Reason)
	}
	if vd.Format != "png" {
		t.Errorf("Format = %q, want png", vd.Format)
	}
}

func TestClassify_ValidJPEG(t *testing.T) {
	dir := t.TempDir()
	path := writeJPEG(t, dir, "pic.jpg")

	vd := testValidator().Classify(context.Background(), path)
	if vd.Status != StatusValid {
		t.Fatalf("Status = %s (%s), want valid", vd.Status, vd.Reason)
	}
	if vd.Format != "jpeg" {
		t.Errorf("Format = %q, want jpeg", vd.Format)
	}
	// Encoder-produced JPEGs carry no EXIF; capture time stays zero.
	if !vd.CaptureTime.IsZero() {
		t.Errorf("CaptureTime = %v, want zero", vd.CaptureTime)
	}
}

// Content decides the decode route, not the extension: a PNG exported as
// an opaque .dat identifier must still classify as a valid image.
func TestClassify_ContentBeatsExtension(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "IMG004.dat")

	vd := testValidator().Classify(context.Background(), path)
	if vd.Status != StatusValid {
		t.Errorf("Status = %s (%s), want valid", vd.Status, vd.Reason)
	}
	if vd.Format != "png" {
		t.Errorf("Format = %q, want png", vd.Format)
	}
}

func TestClassify_TruncatedPNG(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "cut.png")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Keep the header, drop the pixel data.
	if err := os.WriteFile(path, b[:24], 0o644); err != nil {
		t.Fatal(err)
	}

	vd := testValidator().Classify(context.Background(), path)
	if vd.Status != StatusInvalid {
		t.Errorf("Status = %s, want invalid for truncated image", vd.Status)
	}
}

func TestClassify_ZeroByteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "IMG003.dat")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	vd := testValidator().Classify(context.Background(), path)
	if vd.Status != StatusInvalid {
		t.Errorf("Status = %s, want invalid", vd.Status)
	}
	if vd.Reason != "empty file" {
		t.Errorf("Reason = %q, want %q", vd.Reason, "empty file")
	}
}

func TestClassify_GarbageWithImageExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.jpg")
	if err := os.WriteFile(path, []byte("this is not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	vd := testValidator().Classify(context.Background(), path)
	if vd.Status != StatusInvalid {
		t.Errorf("Status = %s, want invalid", vd.Status)
	}
}

func TestClassify_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.bin")
	if err := os.WriteFile(path, []byte{0x00, 0x01, 0x02, 0x03}, 0o644); err != nil {
		t.Fatal(err)
	}

	vd := testValidator().Classify(context.Background(), path)
	if vd.Status != StatusInvalid {
		t.Errorf("Status = %s, want invalid", vd.Status)
	}
	if vd.Reason != "unknown format" {
		t.Errorf("Reason = %q, want %q", vd.Reason, "unknown format")
	}
}

func TestClassify_MissingFile(t *testing.T) {
	vd := testValidator().Classify(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))
	if vd.Status != StatusInvalid {
		t.Errorf("Status = %s, want invalid", vd.Status)
	}
}

// A file whose read blocks forever must yield TimedOut within the budget,
// not hang the run. A FIFO with no writer gives a deterministic block.
func TestClassify_TimedOut(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no FIFOs on windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "stuck.jpg")
	if err := syscall.Mkfifo(path, 0o644); err != nil {
		t.Fatal(err)
	}

	v := New(100 * time.Millisecond)
	start := time.Now()
	vd := v.Classify(context.Background(), path)
	if vd.Status != StatusTimedOut {
		t.Errorf("Status = %s, want timeout", vd.Status)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Classify took %v, budget was 100ms", elapsed)
	}
}

// Cancelling the run context mid-classification must not look like a slow
// file: the verdict is Interrupted, never TimedOut, and comes promptly.
func TestClassify_Interrupted(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no FIFOs on windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "stuck.jpg")
	if err := syscall.Mkfifo(path, 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	v := New(10 * time.Second)
	start := time.Now()
	vd := v.Classify(ctx, path)
	if vd.Status != StatusInterrupted {
		t.Errorf("Status = %s (%s), want interrupted", vd.Status, vd.Reason)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Classify took %v after cancellation", elapsed)
	}
}

func TestSniff(t *testing.T) {
	dir := t.TempDir()
	png := writePNG(t, dir, "a.png")
	if got := sniff(png); got != contentImage {
		t.Errorf("sniff(png) = %v, want contentImage", got)
	}

	txt := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := sniff(txt); got != contentUnknown {
		t.Errorf("sniff(txt) = %v, want contentUnknown", got)
	}

	// Minimal ISO-BMFF header with an mp4 brand sniffs as video.
	mp4 := filepath.Join(dir, "a.mp4")
	head := []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm',
		0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'm', 'p', '4', '1'}
	if err := os.WriteFile(mp4, head, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := sniff(mp4); got != contentVideo {
		t.Errorf("sniff(mp4) = %v, want contentVideo", got)
	}
}
