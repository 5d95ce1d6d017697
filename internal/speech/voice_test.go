package speech

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/logger"
)

type fakeSynth struct {
	calls []string
	audio []byte
	err   error
}

func (f *fakeSynth) Synthesize(_ context.Context, ssml string) ([]byte, error) {
	f.calls = append(f.calls, ssml)
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func (f *fakeSynth) Voice() string { return "test-voice" }

type fakeSink struct {
	played [][]byte
	err    error
}

func (f *fakeSink) Play(_ context.Context, wav []byte) error {
	f.played = append(f.played, wav)
	return f.err
}

func newTestVoice(synth *fakeSynth, sink *fakeSink) *Voice {
	return NewVoice(synth, sink, logger.New(logger.LevelOff, nil), WithCacheDir(""))
}

func TestVoiceSpeakSynthesizesAndPlays(t *testing.T) {
	synth := &fakeSynth{audio: []byte("wav")}
	sink := &fakeSink{}
	v := newTestVoice(synth, sink)

	plan := domain.Plan{domain.Speak("Hello", 140, 1.0)}
	if err := v.Speak(context.Background(), plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(synth.calls) != 1 {
		t.Fatalf("expected 1 synth call, got %d", len(synth.calls))
	}
	if !strings.Contains(synth.calls[0], "<voice name='test-voice'>") {
		t.Errorf("ssml should use the synthesizer voice:\n%s", synth.calls[0])
	}
	if len(sink.played) != 1 || string(sink.played[0]) != "wav" {
		t.Fatalf("expected synthesized audio to be played, got %v", sink.played)
	}
}

func TestVoiceSpeakUsesCache(t *testing.T) {
	synth := &fakeSynth{audio: []byte("wav")}
	sink := &fakeSink{}
	v := newTestVoice(synth, sink)

	plan := domain.Plan{domain.Speak("Here is our menu", 140, 1.0)}
	for i := 0; i < 3; i++ {
		if err := v.Speak(context.Background(), plan); err != nil {
			t.Fatalf("speak %d: %v", i, err)
		}
	}

	if len(synth.calls) != 1 {
		t.Fatalf("expected 1 synth call for repeated plan, got %d", len(synth.calls))
	}
	if len(sink.played) != 3 {
		t.Fatalf("expected 3 playbacks, got %d", len(sink.played))
	}
	hits, _ := v.Cache().Stats()
	if hits != 2 {
		t.Fatalf("expected 2 cache hits, got %d", hits)
	}
}

func TestVoiceSpeakEmptyPlan(t *testing.T) {
	synth := &fakeSynth{}
	sink := &fakeSink{}
	v := newTestVoice(synth, sink)

	plan := domain.Plan{domain.PauseFor(300 * time.Millisecond)}
	if err := v.Speak(context.Background(), plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(synth.calls) != 0 || len(sink.played) != 0 {
		t.Fatal("plans without speech should not reach the synthesizer or sink")
	}
}

func TestVoiceSpeakErrors(t *testing.T) {
	boom := errors.New("boom")
	plan := domain.Plan{domain.Speak("Hi", 140, 1.0)}

	t.Run("synthesis", func(t *testing.T) {
		v := newTestVoice(&fakeSynth{err: boom}, &fakeSink{})
		err := v.Speak(context.Background(), plan)
		if !errors.Is(err, boom) || !strings.Contains(err.Error(), "synthesizing") {
			t.Fatalf("expected wrapped synthesis error, got %v", err)
		}
	})

	t.Run("playback", func(t *testing.T) {
		v := newTestVoice(&fakeSynth{audio: []byte("wav")}, &fakeSink{err: boom})
		err := v.Speak(context.Background(), plan)
		if !errors.Is(err, boom) || !strings.Contains(err.Error(), "playing") {
			t.Fatalf("expected wrapped playback error, got %v", err)
		}
	})
}
