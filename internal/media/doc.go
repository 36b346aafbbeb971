// Package media opens audio files and exposes them through a uniform
// demux-and-decode interface.
//
// A file is opened as a Source, probed into a format Reader, and consumed
// packet by packet. Each packet decodes into a Buffer, a tagged variant over
// the five sample representations the supported codecs produce. Readers also
// support coarse seeking, which may legitimately fail for some formats and
// positions; callers are expected to treat ErrSeek as a recoverable
// condition rather than a fatal one.
//
// Every Reader is owned by exactly one consumer. Running playback and
// waveform analysis on the same file requires two independently opened
// Sources, since seeking one Reader would corrupt the other's position.
package media
