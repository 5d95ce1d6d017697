package speech

import (
	"context"
	"fmt"

	"github.com/muesli/reflow/truncate"

	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/logger"
)

// Compile-time interface check.
var _ domain.Speaker = (*Voice)(nil)

// Synthesizer turns an SSML document into WAV audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, ssml string) ([]byte, error)
	Voice() string
}

// AudioSink plays WAV audio to completion.
type AudioSink interface {
	Play(ctx context.Context, wav []byte) error
}

// VoiceOption configures a Voice.
type VoiceOption func(*Voice)

// WithCacheDir sets the directory used for persistent audio caching. If
// empty, the disk layer is disabled.
func WithCacheDir(dir string) VoiceOption {
	return func(v *Voice) {
		v.cacheDir = dir
	}
}

// WithDiskWrite controls whether new cache entries are written to disk.
// Existing on-disk entries are read either way.
func WithDiskWrite(enabled bool) VoiceOption {
	return func(v *Voice) {
		v.diskWrite = enabled
	}
}

// Voice speaks utterance plans: plan -> SSML -> cache or synthesizer ->
// audio sink. Speak blocks until playback ends.
type Voice struct {
	tts       Synthesizer
	sink      AudioSink
	log       *logger.Logger
	cache     *AudioCache
	cacheDir  string
	diskWrite bool
}

// NewVoice creates a speaker backed by the given synthesizer and sink.
func NewVoice(tts Synthesizer, sink AudioSink, log *logger.Logger, opts ...VoiceOption) *Voice {
	v := &Voice{
		tts:       tts,
		sink:      sink,
		log:       log,
		diskWrite: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.cache = NewAudioCache(tts.Voice(), v.cacheDir, v.diskWrite, log)
	return v
}

// Speak synthesizes and plays the plan. Plans with nothing to say are a
// no-op.
func (v *Voice) Speak(ctx context.Context, plan domain.Plan) error {
	if len(plan.Segments()) == 0 {
		return nil
	}

	ssml := BuildSSML(v.tts.Voice(), plan)
	v.log.Debug("voice: speaking %s", truncate.StringWithTail(plan.Text(), 60, "..."))

	audio, ok := v.cache.Get(ssml)
	if !ok {
		var err error
		audio, err = v.tts.Synthesize(ctx, ssml)
		if err != nil {
			return fmt.Errorf("synthesizing: %w", err)
		}
		v.cache.Put(ssml, audio)
	}

	if err := v.sink.Play(ctx, audio); err != nil {
		return fmt.Errorf("playing: %w", err)
	}
	return nil
}

// Cache returns the audio cache used by this Voice. Useful for stats.
func (v *Voice) Cache() *AudioCache { return v.cache }
