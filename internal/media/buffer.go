package media

// SampleFormat tags the numeric representation carried by a Buffer.
type SampleFormat uint8

const (
	FormatF32 SampleFormat = iota
	FormatS16
	FormatU16
	FormatS32
	FormatU32
)

func (f SampleFormat) String() string {
	switch f {
	case FormatF32:
		return "f32"
	case FormatS16:
		return "s16"
	case FormatU16:
		return "u16"
	case FormatS32:
		return "s32"
	case FormatU32:
		return "u32"
	}
	return "unknown"
}

// Buffer holds the decoded samples of one packet, interleaved by channel.
// Exactly one of the typed slices is populated, selected by Format. A
// Buffer lives only for the processing of its packet; readers may reuse the
// backing storage on the next decode.
type Buffer struct {
	Format   SampleFormat
	Channels int

	F32 []float32
	S16 []int16
	U16 []uint16
	S32 []int32
	U32 []uint32
}

// Frames returns the number of audio frames in the buffer.
func (b *Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}
	return b.len() / b.Channels
}

func (b *Buffer) len() int {
	switch b.Format {
	case FormatF32:
		return len(b.F32)
	case FormatS16:
		return len(b.S16)
	case FormatU16:
		return len(b.U16)
	case FormatS32:
		return len(b.S32)
	case FormatU32:
		return len(b.U32)
	}
	return 0
}

// At returns the sample for (frame, channel) normalized into [-1, 1].
// Floating-point sources pass through unchanged; signed integers divide by
// the maximum positive value of their width; unsigned integers remap the
// full range bipolar. The 32-bit unsigned remap runs in float64 to avoid
// precision loss before narrowing.
func (b *Buffer) At(frame, channel int) float32 {
	i := frame*b.Channels + channel
	switch b.Format {
	case FormatF32:
		return b.F32[i]
	case FormatS16:
		return float32(b.S16[i]) / 32767.0
	case FormatU16:
		return float32(b.U16[i])/65535.0*2.0 - 1.0
	case FormatS32:
		return float32(float64(b.S32[i]) / 2147483647.0)
	case FormatU32:
		return float32(float64(b.U32[i])/4294967295.0*2.0 - 1.0)
	}
	return 0
}

// Sample returns the normalized first-channel sample of the given frame.
// Waveform energy is computed over the first channel only; multi-channel
// files are not mixed down.
func (b *Buffer) Sample(frame int) float32 {
	return b.At(frame, 0)
}
