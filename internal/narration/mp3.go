package narration

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/go-mp3"
)

// MP3Duration decodes the stream length; go-mp3 always yields 16-bit stereo PCM
func MP3Duration(data []byte) (float64, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("decode mp3: %w", err)
	}

	length := dec.Length()
	rate := dec.SampleRate()
	if length <= 0 || rate <= 0 {
		return 0, fmt.Errorf("mp3 has no decodable frames")
	}

	const bytesPerFrame = 4
	return float64(length) / float64(bytesPerFrame*rate), nil
}
