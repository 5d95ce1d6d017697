package speech

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/robobarista/internal/logger"
)

// Player plays WAV data on the default audio device via oto.
type Player struct {
	ctx    *oto.Context
	log    *logger.Logger
	mu     sync.Mutex
	active *oto.Player // currently playing, nil when idle
}

// NewPlayer initializes the system audio context. Returns an error if the
// audio device is unavailable.
func NewPlayer(log *logger.Logger) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	octx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	log.Debug("audio player initialized (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return &Player{ctx: octx, log: log}, nil
}

// Play blocks until the audio finishes, Stop is called, or ctx is done.
func (p *Player) Play(ctx context.Context, wavData []byte) error {
	pcm, err := extractPCM(wavData)
	if err != nil {
		return err
	}

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))

	p.mu.Lock()
	p.active = player
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.active = nil
		p.mu.Unlock()
	}()

	player.Play()
	p.log.Debug("audio player: playing %s of PCM", humanize.Bytes(uint64(len(pcm))))

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			_ = player.Close()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return player.Close()
}

// Stop interrupts the current playback, if any. Safe to call concurrently
// and when nothing is playing.
func (p *Player) Stop() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()

	if active != nil {
		active.Pause()
		p.log.Debug("audio player: interrupted")
	}
}
