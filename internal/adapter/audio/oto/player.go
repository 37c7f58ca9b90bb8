// Package oto implements the SoundPlayer interface on top of the oto audio
// context, decoding the bundled mp3 clips with go-mp3.
package oto

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"

	"github.com/mohamadomran/Oul/internal/domain"
	"github.com/mohamadomran/Oul/internal/ports"
)

// completionPollInterval is how often the watcher goroutine checks whether a
// playing sound has drained.
const completionPollInterval = 50 * time.Millisecond

// Player plays decoded mp3 clips through a shared oto context.
//
// The context's sample rate is fixed by the first opened file; all bundled
// clips are mastered at the same rate, so a mismatching file is rejected at
// Open rather than resampled.
//
// Thread-safe.
type Player struct {
	logger    *slog.Logger
	assetsDir string

	mu         sync.Mutex
	ctx        *oto.Context
	sampleRate int
	sounds     map[domain.SoundHandle]*sound
	nextHandle domain.SoundHandle
	closed     bool
}

type sound struct {
	path   string
	pcm    []byte
	volume float64

	// player is non-nil while the sound is audible
	player *oto.Player

	// generation invalidates the watcher goroutine of a superseded playback
	generation uint64
}

// NewPlayer creates a player that resolves audio paths under assetsDir.
func NewPlayer(logger *slog.Logger, assetsDir string) *Player {
	return &Player{
		logger:     logger,
		assetsDir:  assetsDir,
		sounds:     make(map[domain.SoundHandle]*sound),
		nextHandle: 1,
	}
}

// Open reads and decodes the mp3 at the given relative path.
func (p *Player) Open(path string) (domain.SoundHandle, error) {
	file, err := os.Open(filepath.Join(p.assetsDir, filepath.FromSlash(path)))
	if err != nil {
		return domain.InvalidSoundHandle, fmt.Errorf("open audio file: %w", err)
	}
	defer func() { _ = file.Close() }()

	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		return domain.InvalidSoundHandle, fmt.Errorf("decode %s: %w", path, err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return domain.InvalidSoundHandle, fmt.Errorf("read pcm from %s: %w", path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return domain.InvalidSoundHandle, domain.ErrNotInitialized
	}

	if err := p.ensureContextLocked(decoder.SampleRate()); err != nil {
		return domain.InvalidSoundHandle, err
	}
	if decoder.SampleRate() != p.sampleRate {
		return domain.InvalidSoundHandle,
			fmt.Errorf("%s: sample rate %d does not match context rate %d", path, decoder.SampleRate(), p.sampleRate)
	}

	handle := p.nextHandle
	p.nextHandle++
	p.sounds[handle] = &sound{path: path, pcm: pcm, volume: 1.0}

	p.logger.Debug("sound opened",
		slog.String("path", path),
		slog.Int64("handle", int64(handle)),
		slog.Int("pcm_bytes", len(pcm)))

	return handle, nil
}

// ensureContextLocked initializes the shared oto context on first use.
func (p *Player) ensureContextLocked(sampleRate int) error {
	if p.ctx != nil {
		return nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2, // go-mp3 always yields 2 channels
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("initialize audio context: %w", err)
	}
	<-ready

	p.ctx = ctx
	p.sampleRate = sampleRate
	return nil
}

// Play starts the sound from the beginning and watches it to completion.
func (p *Player) Play(handle domain.SoundHandle, onComplete func(success bool)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sounds[handle]
	if !ok {
		return domain.ErrInvalidSoundHandle
	}

	// Restarting a playing handle supersedes its watcher.
	if s.player != nil {
		_ = s.player.Close()
		s.player = nil
	}
	s.generation++

	player := p.ctx.NewPlayer(bytes.NewReader(s.pcm))
	player.SetVolume(s.volume)
	player.Play()
	s.player = player

	go p.watch(handle, player, s.generation, onComplete)
	return nil
}

// watch polls a playing sound and fires onComplete exactly once when it
// drains. A superseded or stopped playback exits without calling back.
func (p *Player) watch(handle domain.SoundHandle, player *oto.Player, generation uint64, onComplete func(success bool)) {
	ticker := time.NewTicker(completionPollInterval)
	defer ticker.Stop()

	for range ticker.C {
		p.mu.Lock()
		s, ok := p.sounds[handle]
		if !ok || s.generation != generation || s.player != player {
			p.mu.Unlock()
			return
		}
		if player.IsPlaying() {
			p.mu.Unlock()
			continue
		}

		s.player = nil
		p.mu.Unlock()

		err := player.Err()
		if closeErr := player.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			p.logger.Warn("playback ended with error",
				slog.String("path", s.path),
				slog.Any("error", err))
		}
		if onComplete != nil {
			onComplete(err == nil)
		}
		return
	}
}

// Stop halts the handle if it is playing. Its completion callback never fires.
func (p *Player) Stop(handle domain.SoundHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sounds[handle]
	if !ok {
		return domain.ErrInvalidSoundHandle
	}

	if s.player != nil {
		s.generation++
		_ = s.player.Close()
		s.player = nil
	}
	return nil
}

// Release frees the decoded audio behind the handle.
func (p *Player) Release(handle domain.SoundHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sounds[handle]
	if !ok {
		return domain.ErrInvalidSoundHandle
	}

	if s.player != nil {
		s.generation++
		_ = s.player.Close()
		s.player = nil
	}
	delete(p.sounds, handle)
	return nil
}

// SetVolume sets the volume for the handle, applying it immediately when the
// sound is playing.
func (p *Player) SetVolume(handle domain.SoundHandle, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sounds[handle]
	if !ok {
		return domain.ErrInvalidSoundHandle
	}
	if volume < 0.0 || volume > 1.0 {
		return domain.ErrInvalidVolume
	}

	s.volume = volume
	if s.player != nil {
		s.player.SetVolume(volume)
	}
	return nil
}

// Close stops and releases every sound. The oto context itself has no
// shutdown API; it lives for the rest of the process.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for handle, s := range p.sounds {
		if s.player != nil {
			s.generation++
			_ = s.player.Close()
			s.player = nil
		}
		delete(p.sounds, handle)
	}
	p.closed = true
	return nil
}

var _ ports.SoundPlayer = (*Player)(nil)
