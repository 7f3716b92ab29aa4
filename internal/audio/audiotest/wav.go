// Package audiotest builds small WAV fixtures for tests.
package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Tone returns a 16-bit mono PCM WAV file containing a sine tone
func Tone(sampleRate int, seconds float64, freq float64) []byte {
	n := int(float64(sampleRate) * seconds)
	pcm := make([]int16, n)
	for i := range pcm {
		pcm[i] = int16(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * math.MaxInt16 / 4)
	}

	const (
		channels      = 1
		bitsPerSample = 16
	)
	blockAlign := channels * bitsPerSample / 8
	dataSize := n * blockAlign

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	_ = binary.Write(&buf, binary.LittleEndian, pcm)
	return buf.Bytes()
}
