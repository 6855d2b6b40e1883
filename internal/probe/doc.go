// Package probe wraps ffprobe for container-level media inspection.
//
// A single JSON call returns the container format and stream list; the
// validator only needs to know whether a decodable video stream exists.
// The call runs under the caller's context so a deadline kills a hung
// ffprobe process outright instead of leaving it behind.
package probe
