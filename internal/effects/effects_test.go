package effects

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/robobarista/internal/domain"
)

// scriptedRand replays fixed draws. Running out of script fails the test.
type scriptedRand struct {
	t      *testing.T
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	s.t.Helper()
	if len(s.floats) == 0 {
		s.t.Fatal("scriptedRand: out of floats")
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedRand) Intn(n int) int {
	s.t.Helper()
	if len(s.ints) == 0 {
		s.t.Fatal("scriptedRand: out of ints")
	}
	i := s.ints[0]
	s.ints = s.ints[1:]
	if i >= n {
		s.t.Fatalf("scriptedRand: %d out of range [0,%d)", i, n)
	}
	return i
}

func quiet() Config {
	return Config{BaseRate: 140, BaseVolume: 1.0}
}

func TestRenderNoEffects(t *testing.T) {
	text := "Hello Ada! Welcome to the Robot Coffee Shop!"
	plan := Render(text, quiet(), rand.New(rand.NewSource(7)))

	words := strings.Fields(text)
	if len(plan) != len(words) {
		t.Fatalf("expected %d instructions, got %d: %s", len(words), len(plan), plan)
	}
	for i, in := range plan {
		if in.Kind != domain.InstructionSpeak {
			t.Fatalf("instruction %d: expected speak, got %s", i, in.Kind)
		}
		if in.Text != words[i] {
			t.Errorf("instruction %d: got %q, want %q", i, in.Text, words[i])
		}
		if in.Rate != 140 || in.Volume != 1.0 {
			t.Errorf("instruction %d: got rate=%d volume=%.2f", i, in.Rate, in.Volume)
		}
	}
}

func TestRenderAlwaysInterjects(t *testing.T) {
	cfg := quiet()
	cfg.InterjectionProbability = 1.0

	text := "what would you like to order?"
	plan := Render(text, cfg, rand.New(rand.NewSource(42)))

	words := strings.Fields(text)
	if len(plan) != 2*len(words) {
		t.Fatalf("expected %d instructions, got %d: %s", 2*len(words), len(plan), plan)
	}
	for i, w := range words {
		if plan[2*i].Text != w {
			t.Errorf("word %d: got %q, want %q", i, plan[2*i].Text, w)
		}
		if !isInterjection(plan[2*i+1].Text) {
			t.Errorf("after %q: %q is not an interjection", w, plan[2*i+1].Text)
		}
	}
}

func TestRenderPauseAfterPunctuation(t *testing.T) {
	cfg := quiet()
	cfg.PauseAfterPunctuationProbability = 1.0

	// Draws per word: [pause], interjection, pitch, volume, emphasis.
	rng := &scriptedRand{
		t: t,
		floats: []float64{
			0.9, 0.9, 0.9, 0.9, // "Hi" (no pause draw)
			0.0, 0.9, 0.9, 0.9, 0.9, // "there." pause hit
			0.0, 0.9, 0.9, 0.9, 0.9, // "Yes!" pause hit
		},
		ints: []int{0, 300},
	}

	plan := Render("Hi there. Yes!", cfg, rng)
	want := domain.Plan{
		domain.Speak("Hi", 140, 1.0),
		domain.Speak("there.", 140, 1.0),
		domain.PauseFor(300 * time.Millisecond),
		domain.Speak("Yes!", 140, 1.0),
		domain.PauseFor(600 * time.Millisecond),
	}
	if !reflect.DeepEqual(plan, want) {
		t.Fatalf("got  %s\nwant %s", plan, want)
	}
}

func TestRenderPauseBounds(t *testing.T) {
	cfg := quiet()
	cfg.PauseAfterPunctuationProbability = 1.0

	plan := Render(strings.Repeat("ok, ", 200), cfg, rand.New(rand.NewSource(1)))
	pauses := 0
	for _, in := range plan {
		if in.Kind != domain.InstructionPause {
			continue
		}
		pauses++
		if in.Pause < MinPause || in.Pause > MaxPause {
			t.Fatalf("pause %s outside [%s, %s]", in.Pause, MinPause, MaxPause)
		}
	}
	if pauses != 200 {
		t.Fatalf("expected 200 pauses, got %d", pauses)
	}
}

func TestRenderVolumeCarriesOverRateResets(t *testing.T) {
	cfg := quiet()
	cfg.PitchJitterProbability = 0.5
	cfg.VolumeJitterProbability = 0.5

	// Word 1: no interjection, pitch hit (Intn 0 -> 125), volume hit
	// (0.5 -> 0.85), no emphasis. Word 2: nothing.
	rng := &scriptedRand{
		t: t,
		floats: []float64{
			0.9, 0.1, 0.1, 0.5, 0.9,
			0.9, 0.9, 0.9, 0.9,
		},
		ints: []int{0},
	}

	plan := Render("one two", cfg, rng)
	if len(plan) != 2 {
		t.Fatalf("expected 2 instructions, got %s", plan)
	}
	if plan[0].Rate != 140 || plan[0].Volume != 1.0 {
		t.Fatalf("first word should use base voice, got %s", plan[:1])
	}
	if plan[1].Rate != 140 {
		t.Fatalf("rate should reset after each word, got %d", plan[1].Rate)
	}
	if diff := plan[1].Volume - 0.85; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("jittered volume should carry over, got %.4f", plan[1].Volume)
	}
}

func TestRenderEmphasis(t *testing.T) {
	cfg := quiet()
	cfg.PitchJitterProbability = 1.0
	cfg.EmphasisProbability = 1.0

	// Word 1: interjection miss, pitch hit (Intn 30 -> 155), volume miss,
	// emphasis hit (1.0 -> 1.3). Word 2: same again with Intn 15 -> 140.
	rng := &scriptedRand{
		t: t,
		floats: []float64{
			0.9, 0.0, 0.9, 0.0, 0.999999,
			0.9, 0.0, 0.9, 0.0, 0.0,
		},
		ints: []int{30, 15},
	}

	plan := Render("really good", cfg, rng)
	if len(plan) != 4 {
		t.Fatalf("expected 4 instructions, got %s", plan)
	}
	if plan[1].Text != "really" || plan[1].Rate != 155 {
		t.Fatalf("emphasis should repeat the word at the jittered rate, got %s", plan[1:2])
	}
	if plan[1].Volume < MinEmphasisVol || plan[1].Volume > MaxEmphasisVol {
		t.Fatalf("emphasis volume %.3f out of range", plan[1].Volume)
	}
	if plan[2].Text != "good" || plan[2].Volume != 1.0 || plan[2].Rate != 140 {
		t.Fatalf("voice should be restored after emphasis, got %s", plan[2:3])
	}
	if plan[3].Text != "good" || plan[3].Volume != 1.0 {
		t.Fatalf("second emphasis, got %s", plan[3:])
	}
}

func TestRenderRateJitterBounds(t *testing.T) {
	cfg := quiet()
	cfg.PitchJitterProbability = 1.0
	cfg.EmphasisProbability = 1.0

	plan := Render(strings.Repeat("word ", 300), cfg, rand.New(rand.NewSource(3)))
	for _, in := range plan {
		if in.Rate < 140-RateJitter || in.Rate > 140+RateJitter {
			t.Fatalf("rate %d outside jitter window", in.Rate)
		}
	}
}

func TestRenderDeterministicForSeed(t *testing.T) {
	text := "Great Ada, your order of 2 Lattes will be ready in a moment."
	a := Render(text, DefaultConfig(), rand.New(rand.NewSource(99)))
	b := Render(text, DefaultConfig(), rand.New(rand.NewSource(99)))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different plans:\n%s\n%s", a, b)
	}
}

func TestRenderEmptyText(t *testing.T) {
	if plan := Render("   ", DefaultConfig(), rand.New(rand.NewSource(1))); len(plan) != 0 {
		t.Fatalf("expected empty plan, got %s", plan)
	}
}

func TestPlain(t *testing.T) {
	plan := Plain("  Your total   will be 114 ", quiet())
	want := domain.Plan{domain.Speak("Your total will be 114", 140, 1.0)}
	if !reflect.DeepEqual(plan, want) {
		t.Fatalf("got %s, want %s", plan, want)
	}
	if len(Plain("", quiet())) != 0 {
		t.Fatal("empty text should give an empty plan")
	}
}

func TestRendererEffectsSwitch(t *testing.T) {
	cfg := quiet()
	cfg.InterjectionProbability = 1.0

	on := NewRenderer(cfg, nil, WithSeed(5))
	if !on.Enabled() {
		t.Fatal("renderers start with effects enabled")
	}
	if got := len(on.Render("one two three")); got != 6 {
		t.Fatalf("effects on: expected 6 instructions, got %d", got)
	}

	off := NewRenderer(cfg, nil, WithEffects(false))
	if off.Enabled() {
		t.Fatal("WithEffects(false) should disable effects")
	}
	plan := off.Render("one two three")
	if len(plan) != 1 || plan[0].Text != "one two three" {
		t.Fatalf("effects off: got %s", plan)
	}
}

func isInterjection(s string) bool {
	for _, w := range Interjections {
		if w == s {
			return true
		}
	}
	return false
}
