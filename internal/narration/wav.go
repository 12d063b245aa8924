package narration

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

const bitsPerSample = 16

var errNotWAV = errors.New("not a RIFF/WAVE stream")

// EncodeWAV wraps 16-bit little-endian PCM in a canonical 44-byte WAV header
func EncodeWAV(pcm []byte, sampleRate, channels int) []byte {
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}

// WriteWAV encodes pcm and writes it to path
func WriteWAV(path string, pcm []byte, sampleRate, channels int) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid wav format: %d Hz, %d channels", sampleRate, channels)
	}
	return os.WriteFile(path, EncodeWAV(pcm, sampleRate, channels), 0644)
}

// SilentPCM returns zeroed 16-bit samples lasting the given number of seconds
func SilentPCM(seconds float64, sampleRate, channels int) []byte {
	if seconds <= 0 {
		return nil
	}
	frames := int(math.Round(seconds * float64(sampleRate)))
	return make([]byte, frames*channels*bitsPerSample/8)
}

// WAVDuration reads the fmt and data chunks of a WAV stream and returns its length in seconds
func WAVDuration(data []byte) (float64, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return 0, errNotWAV
	}

	var byteRate uint32
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8

		switch id {
		case "fmt ":
			if body+16 > len(data) {
				return 0, fmt.Errorf("truncated fmt chunk")
			}
			byteRate = binary.LittleEndian.Uint32(data[body+8 : body+12])
		case "data":
			if byteRate == 0 {
				return 0, fmt.Errorf("data chunk before fmt chunk")
			}
			// streamed WAVs may carry a placeholder size; trust the bytes we have
			if avail := len(data) - body; size > avail || size == 0 {
				size = avail
			}
			return float64(size) / float64(byteRate), nil
		}

		// chunks are word-aligned
		pos = body + size + size%2
	}

	return 0, fmt.Errorf("no data chunk")
}
