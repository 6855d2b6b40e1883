// Package validate classifies exported files as valid or invalid media.
//
// Classification is content-first: the file's magic bytes decide whether
// it is decoded as an image (in-process, stdlib decoders plus the x/image
// set) or inspected as a video (ffprobe). The whole attempt runs under a
// per-file deadline; a deadline overrun yields a TimedOut verdict, which
// callers dispatch exactly like Invalid, while cancellation of the run
// itself yields Interrupted, which is never acted on. Classify never
// returns an error and never mutates the file.
package validate
