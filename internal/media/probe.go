package media

import (
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Reader is a probed format context: it demuxes the container, decodes
// packets for its tracks, and supports coarse seeking. The track ids it
// reports are stable for its lifetime.
type Reader interface {
	// Tracks lists the container's tracks.
	Tracks() []Track

	// DefaultTrack returns the container's designated default audio
	// track, or ErrNoTrack.
	DefaultTrack() (Track, error)

	// NextPacket decodes the next packet in the container and returns the
	// id of the track it belongs to along with the decoded samples.
	// Returns io.EOF at end of stream, ErrUnsupportedPacket for a packet
	// that was skipped, or a wrapped ErrDecode. The returned Buffer is
	// only valid until the next call.
	NextPacket() (int, *Buffer, error)

	// Seek repositions the given track near t (coarse: the nearest
	// packet boundary at or before it). Returns ErrSeek on failure;
	// callers skip the position and continue.
	Seek(track int, t time.Duration) error

	// Close releases codec resources. It does not close the Source,
	// which stays owned by whoever opened it.
	Close() error
}

// packetFrames is the nominal packet size, in frames, for formats whose
// payload is raw PCM rather than codec frames.
const packetFrames = 2048

type format struct {
	name  string
	sniff func(header []byte) bool
	open  func(src *Source) (Reader, error)
}

// Probe order matters: the mp3 syncword check is loose enough to match
// other streams, so mp3 goes last.
var formats = []format{
	{"wav", sniffWAV, newWAVReader},
	{"aiff", sniffAIFF, newAIFFReader},
	{"flac", sniffFLAC, newFLACReader},
	{"ogg", sniffVorbis, newVorbisReader},
	{"aac", sniffADTS, newADTSReader},
	{"mp3", sniffMP3, newMP3Reader},
}

// Probe identifies the container format of src and returns a Reader over
// it. hint is an advisory format name (see Hint); it moves the matching
// format to the front of the candidate list but never overrides
// content-based detection. Returns ErrProbe when nothing matches.
func Probe(src *Source, hint string) (Reader, error) {
	header := make([]byte, 16)
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, ErrProbe
	}
	n, _ := io.ReadFull(src, header)
	header = header[:n]

	for _, f := range candidates(hint) {
		if !f.sniff(header) {
			continue
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, ErrProbe
		}
		r, err := f.open(src)
		if err != nil {
			// The magic bytes matched but the header did not parse.
			// Another format may still claim the stream.
			continue
		}
		return r, nil
	}
	return nil, ErrProbe
}

func candidates(hint string) []format {
	if hint == "" {
		return formats
	}
	ordered := make([]format, 0, len(formats))
	for _, f := range formats {
		if f.name == hint {
			ordered = append(ordered, f)
		}
	}
	for _, f := range formats {
		if f.name != hint {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

// hintAliases maps file extensions to format names where they differ.
var hintAliases = map[string]string{
	"wave": "wav",
	"aif":  "aiff",
	"aifc": "aiff",
	"oga":  "ogg",
	"ogv":  "ogg",
	"ogx":  "ogg",
	"adif": "aac",
	"adts": "aac",
	"bit":  "mp3",
	"mpga": "mp3",
}

// Hint derives an advisory format name from a file path's extension.
// Returns "" when the extension is missing or unknown.
func Hint(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return ""
	}
	if alias, ok := hintAliases[ext]; ok {
		return alias
	}
	for _, f := range formats {
		if f.name == ext {
			return ext
		}
	}
	return ""
}

func sniffWAV(h []byte) bool {
	return len(h) >= 12 && string(h[0:4]) == "RIFF" && string(h[8:12]) == "WAVE"
}

func sniffAIFF(h []byte) bool {
	if len(h) < 12 || string(h[0:4]) != "FORM" {
		return false
	}
	kind := string(h[8:12])
	return kind == "AIFF" || kind == "AIFC"
}

func sniffFLAC(h []byte) bool {
	return len(h) >= 4 && string(h[0:4]) == "fLaC"
}

func sniffVorbis(h []byte) bool {
	return len(h) >= 4 && string(h[0:4]) == "OggS"
}

func sniffADTS(h []byte) bool {
	return len(h) >= 2 && h[0] == 0xFF && h[1]&0xF6 == 0xF0
}

func sniffMP3(h []byte) bool {
	if len(h) >= 3 && string(h[0:3]) == "ID3" {
		return true
	}
	// Frame sync with a non-reserved layer field, which distinguishes
	// mp3 frames from ADTS (layer 00).
	return len(h) >= 2 && h[0] == 0xFF && h[1]&0xE0 == 0xE0 && h[1]&0x06 != 0
}
