package validate

import (
	"image"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	// Registered image decoders. The stdlib only ships jpeg/png/gif;
	// bmp/tiff/webp come from golang.org/x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// decodeImageFile fully decodes the image. A header-only check is not
// enough: partial exports often carry an intact header over truncated
// pixel data, and those must classify as invalid.
func decodeImageFile(path string) Verdict {
	f, err := os.Open(path)
	if err != nil {
		return Verdict{Status: StatusInvalid, Reason: "file not readable"}
	}
	defer f.Close()

	_, format, err := image.Decode(f)
	if err != nil {
		return Verdict{Status: StatusInvalid, Reason: "image decode failed: " + err.Error()}
	}

	vd := Verdict{Status: StatusValid, Format: format}
	if format == "jpeg" {
		vd.CaptureTime = exifCaptureTime(path)
	}
	return vd
}

// exifCaptureTime extracts DateTimeOriginal from a JPEG. Best effort:
// missing or broken EXIF yields the zero time and is not an error.
func exifCaptureTime(path string) time.Time {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}
	}
	t, err := x.DateTime()
	if err != nil {
		return time.Time{}
	}
	return t
}
