package speech

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// WAV parsing errors.
var (
	ErrWAVTooShort    = errors.New("wav data too short")
	ErrNotWAV         = errors.New("not a valid WAV file")
	ErrNoWAVDataChunk = errors.New("data chunk not found in WAV")
	ErrWAVFormat      = errors.New("unsupported WAV format")
)

const (
	riffHeaderLen      = 12
	minimumWAVFileSize = 44
	fmtChunkLen        = 16
)

// extractPCM strips the RIFF header and returns the raw PCM samples of the
// "data" chunk. A data chunk that claims more bytes than remain is clipped.
// A "fmt " chunk that disagrees with the player's sample rate, channel
// count or bit depth is rejected.
func extractPCM(wav []byte) ([]byte, error) {
	if len(wav) < minimumWAVFileSize {
		return nil, ErrWAVTooShort
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	pos := riffHeaderLen
	for pos+8 <= len(wav) {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))

		if chunkID == "fmt " && chunkSize >= fmtChunkLen && pos+8+fmtChunkLen <= len(wav) {
			if err := checkFormat(wav[pos+8 : pos+8+fmtChunkLen]); err != nil {
				return nil, err
			}
		}

		if chunkID == "data" {
			start := pos + 8
			end := start + chunkSize
			if end > len(wav) || end < start {
				end = len(wav)
			}
			return wav[start:end], nil
		}

		pos += 8 + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, ErrNoWAVDataChunk
}

func checkFormat(chunk []byte) error {
	channels := binary.LittleEndian.Uint16(chunk[2:4])
	rate := binary.LittleEndian.Uint32(chunk[4:8])
	bits := binary.LittleEndian.Uint16(chunk[14:16])
	if channels != ChannelCount || rate != SampleRate || bits != BitDepth {
		return fmt.Errorf("%w: %d Hz, %d channel(s), %d bit", ErrWAVFormat, rate, channels, bits)
	}
	return nil
}
