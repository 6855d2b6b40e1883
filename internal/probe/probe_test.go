package probe

import (
	"testing"
)

const mp4JSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "disposition": {"default": 1, "attached_pic": 0}
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "disposition": {"default": 1}
    }
  ],
  "format": {
    "filename": "clip.mp4",
    "nb_streams": 2,
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "12.480000",
    "size": "1048576",
    "bit_rate": "672000"
  }
}`

const audioOnlyJSON = `{
  "streams": [
    {"index": 0, "codec_name": "mp3", "codec_type": "audio"}
  ],
  "format": {"filename": "song.mp3", "nb_streams": 1, "format_name": "mp3"}
}`

const coverArtJSON = `{
  "streams": [
    {"index": 0, "codec_name": "aac", "codec_type": "audio"},
    {
      "index": 1,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "disposition": {"attached_pic": 1}
    }
  ],
  "format": {"filename": "song.m4a", "nb_streams": 2, "format_name": "mov,mp4,m4a,3gp,3g2,mj2"}
}`

func TestParseJSON_VideoFile(t *testing.T) {
	r, err := ParseJSON([]byte(mp4JSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if r.Format.FormatName != "mov,mp4,m4a,3gp,3g2,mj2" {
		t.Errorf("FormatName = %q", r.Format.FormatName)
	}
	if r.Format.Duration != 12.48 {
		t.Errorf("Duration = %v, want 12.48", r.Format.Duration)
	}
	if r.Format.Size != 1048576 {
		t.Errorf("Size = %d, want 1048576", r.Format.Size)
	}
	if len(r.Streams) != 2 {
		t.Fatalf("got %d streams, want 2", len(r.Streams))
	}
	if !r.HasVideoStream() {
		t.Error("HasVideoStream() = false, want true")
	}
	if got := r.VideoCodec(); got != "h264" {
		t.Errorf("VideoCodec() = %q, want h264", got)
	}
}

func TestParseJSON_AudioOnly(t *testing.T) {
	r, err := ParseJSON([]byte(audioOnlyJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.HasVideoStream() {
		t.Error("HasVideoStream() = true for audio-only file")
	}
	if r.VideoCodec() != "" {
		t.Errorf("VideoCodec() = %q, want empty", r.VideoCodec())
	}
}

// Embedded cover art is a video stream to ffprobe but must not make an
// audio file count as a video.
func TestParseJSON_AttachedPicNotVideo(t *testing.T) {
	r, err := ParseJSON([]byte(coverArtJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.HasVideoStream() {
		t.Error("HasVideoStream() = true for cover-art-only file")
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Error("ParseJSON should fail on malformed input")
	}
}

func TestParseJSON_EmptyObject(t *testing.T) {
	r, err := ParseJSON([]byte("{}"))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.HasVideoStream() {
		t.Error("HasVideoStream() = true for empty probe result")
	}
}
