package media

import "errors"

var (
	// ErrUnreadable reports that the file could not be opened at all.
	ErrUnreadable = errors.New("media: source unreadable")

	// ErrProbe reports that no registered format recognized the stream.
	ErrProbe = errors.New("media: unsupported file format")

	// ErrNoTrack reports that the container declares no audio track.
	ErrNoTrack = errors.New("media: no default track")

	// ErrDurationUnavailable reports that the track's codec parameters are
	// insufficient to compute a duration (missing frame count or sample
	// rate). Decoding itself still works for such tracks.
	ErrDurationUnavailable = errors.New("media: duration unavailable")

	// ErrSeek reports a failed coarse seek. Recoverable: the caller skips
	// the position and carries on.
	ErrSeek = errors.New("media: coarse seek failed")

	// ErrUnsupportedPacket reports a packet the decoder cannot handle.
	// Recoverable: the reader has already advanced past it.
	ErrUnsupportedPacket = errors.New("media: unsupported packet")

	// ErrDecode reports a failed packet decode. Recoverable per packet,
	// though callers typically abandon the current decode run.
	ErrDecode = errors.New("media: packet decode failed")
)
