package validate

import (
	"context"
	"errors"

	"github.com/backmassage/mediarestore/internal/probe"
)

// classifyVideo asks ffprobe whether path decodes as a container with at
// least one real video stream. The probe inherits the deadline context,
// which kills a hung ffprobe process outright.
func (v *Validator) classifyVideo(ctx context.Context, path string) Verdict {
	pr, err := probe.Probe(ctx, path)
	if err != nil {
		// Canceled means the run is stopping, not that the file is slow.
		if errors.Is(err, context.Canceled) {
			return Verdict{Status: StatusInterrupted, Reason: "run interrupted"}
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return Verdict{Status: StatusTimedOut, Reason: "ffprobe exceeded time budget"}
		}
		return Verdict{Status: StatusInvalid, Reason: "ffprobe rejected file"}
	}
	if !pr.HasVideoStream() {
		return Verdict{Status: StatusInvalid, Reason: "no video stream"}
	}
	return Verdict{Status: StatusValid, Format: pr.VideoCodec() + " video"}
}
