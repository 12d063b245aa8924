package narration

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeWAVHeader(t *testing.T) {
	pcm := SilentPCM(1.0, 8000, 2)
	data := EncodeWAV(pcm, 8000, 2)

	if len(data) != 44+len(pcm) {
		t.Fatalf("len = %d, want %d", len(data), 44+len(pcm))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
		t.Error("bad chunk ids")
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 8000*2*2 {
		t.Errorf("byte rate = %d, want %d", got, 8000*2*2)
	}
}

func TestWAVDurationRoundTrip(t *testing.T) {
	for _, secs := range []float64{0.5, 1, 3.25} {
		data := EncodeWAV(SilentPCM(secs, 24000, 1), 24000, 1)
		got, err := WAVDuration(data)
		if err != nil {
			t.Fatalf("WAVDuration() error = %v", err)
		}
		if math.Abs(got-secs) > 1e-9 {
			t.Errorf("WAVDuration() = %v, want %v", got, secs)
		}
	}
}

func TestWAVDurationSkipsExtraChunks(t *testing.T) {
	base := EncodeWAV(SilentPCM(1, 16000, 1), 16000, 1)

	// insert an odd-sized LIST chunk between fmt and data
	extra := []byte("LIST\x03\x00\x00\x00abc\x00")
	data := append([]byte{}, base[:36]...)
	data = append(data, extra...)
	data = append(data, base[36:]...)

	got, err := WAVDuration(data)
	if err != nil {
		t.Fatalf("WAVDuration() error = %v", err)
	}
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("WAVDuration() = %v, want 1", got)
	}
}

func TestWAVDurationRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("ID3 not a wav"), []byte("RIFF\x00\x00\x00\x00WAVE")} {
		if _, err := WAVDuration(data); err == nil {
			t.Errorf("WAVDuration(%q) should fail", data)
		}
	}
}

func TestSilentPCM(t *testing.T) {
	if got := len(SilentPCM(0, 16000, 1)); got != 0 {
		t.Errorf("len(SilentPCM(0)) = %d, want 0", got)
	}
	if got := len(SilentPCM(1.5, 16000, 1)); got != 48000 {
		t.Errorf("len(SilentPCM(1.5)) = %d, want 48000", got)
	}
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.wav")
	if err := WriteWAV(path, SilentPCM(1, 16000, 1), 16000, 1); err != nil {
		t.Fatalf("WriteWAV() error = %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() != 44+32000 {
		t.Errorf("unexpected file: %v, %v", info, err)
	}
	if err := WriteWAV(path, nil, 0, 1); err == nil {
		t.Error("WriteWAV() should reject a zero sample rate")
	}
}

func TestMP3DurationRejectsGarbage(t *testing.T) {
	if _, err := MP3Duration([]byte("definitely not mpeg audio")); err == nil {
		t.Error("MP3Duration() should fail on garbage")
	}
}
