package audio

import (
	"bytes"
	"fmt"

	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/go-audio/wav"
)

// ContentType is the MIME type served for generated clips
const ContentType = "audio/wav"

// DownloadName is the file name offered to the browser
const DownloadName = "generated-music.wav"

// Inspect checks that data is a RIFF/WAVE file and reports its format.
// The payload is only read, never re-encoded.
func Inspect(data []byte) (*models.AudioInfo, error) {
	if len(data) == 0 {
		return nil, apperrors.ErrEmptyAudio
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w (%d bytes)", apperrors.ErrInvalidAudio, len(data))
	}

	info := &models.AudioInfo{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Size:       len(data),
	}

	// Some encoders write a bogus data chunk size; the file is still playable
	if d, err := dec.Duration(); err == nil {
		info.Duration = d
	}

	return info, nil
}
