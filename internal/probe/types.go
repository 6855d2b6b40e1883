package probe

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	NbStreams  int
	FormatName string
	Duration   float64
	Size       int64
	BitRate    int64
}

// Stream holds the parsed properties of a single stream. Only the fields
// validity checking cares about are kept.
type Stream struct {
	Index         int
	CodecName     string
	CodecType     string
	Width         int
	Height        int
	IsAttachedPic bool
}

// Result is the fully parsed output of a single ffprobe JSON call.
type Result struct {
	Format  FormatInfo
	Streams []Stream
}

// HasVideoStream reports whether the file carries at least one real video
// stream. Attached pictures (cover art) do not count: a corrupt MP4 whose
// only "video" is embedded artwork is not a playable video.
func (r *Result) HasVideoStream() bool {
	for _, s := range r.Streams {
		if s.CodecType == "video" && !s.IsAttachedPic {
			return true
		}
	}
	return false
}

// VideoCodec returns the codec name of the first real video stream, or
// empty when none exists. Used for decision-log detail.
func (r *Result) VideoCodec() string {
	for _, s := range r.Streams {
		if s.CodecType == "video" && !s.IsAttachedPic {
			return s.CodecName
		}
	}
	return ""
}
