package audio

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gopxl/beep/wav"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

// WAVCache renders each token's tone to WAV once and serves the bytes after
type WAVCache struct {
	mu    sync.Mutex
	files map[domain.RewardToken][]byte
}

// NewWAVCache creates an empty cache
func NewWAVCache() *WAVCache {
	return &WAVCache{files: make(map[domain.RewardToken][]byte)}
}

// Get returns the WAV file for token
func (c *WAVCache) Get(token domain.RewardToken) ([]byte, error) {
	if !token.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownToken, token)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if data, ok := c.files[token]; ok {
		return data, nil
	}
	data, err := EncodeWAV(token)
	if err != nil {
		return nil, err
	}
	c.files[token] = data
	return data, nil
}

// EncodeWAV renders token's tone as a 16-bit stereo WAV file
func EncodeWAV(token domain.RewardToken) ([]byte, error) {
	tone, err := Tone(token)
	if err != nil {
		return nil, err
	}
	var buf writeSeeker
	if err := wav.Encode(&buf, tone, Format()); err != nil {
		return nil, fmt.Errorf("encode wav for %s: %w", token, err)
	}
	return buf.data, nil
}

// writeSeeker is an in-memory io.WriteSeeker; wav.Encode seeks back to
// patch the header sizes
type writeSeeker struct {
	data []byte
	pos  int
}

func (w *writeSeeker) Write(p []byte) (int, error) {
	end := w.pos + len(p)
	if end > len(w.data) {
		if end > cap(w.data) {
			grown := make([]byte, end, 2*end)
			copy(grown, w.data)
			w.data = grown
		} else {
			w.data = w.data[:end]
		}
	}
	copy(w.data[w.pos:], p)
	w.pos = end
	return len(p), nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(w.pos) + offset
	case io.SeekEnd:
		abs = int64(len(w.data)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("negative position")
	}
	w.pos = int(abs)
	return abs, nil
}
