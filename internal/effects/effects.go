// Package effects turns a plain sentence into an utterance plan with
// randomized "humanizing" touches: filler words, pauses after punctuation,
// rate and volume jitter, and emphasized repeats.
//
// Randomness is injected through Rand so a fixed seed gives a fixed plan.
package effects

import (
	"strings"
	"time"

	"github.com/hammamikhairi/robobarista/internal/domain"
)

// Rand is the subset of *math/rand.Rand the renderer draws from.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Interjections are the filler words that may follow any word.
var Interjections = []string{"uh", "um", "err", "like", "you know", "well"}

// Tunables for the individual effects.
const (
	RateJitter     = 15 // +/- words per minute around the base rate
	MinPause       = 300 * time.Millisecond
	MaxPause       = 600 * time.Millisecond
	MinJitterVol   = 0.7
	MaxJitterVol   = 1.0
	MinEmphasisVol = 1.0
	MaxEmphasisVol = 1.3
)

// Config holds the base voice settings and the per-word probabilities of
// each effect. A zero Config renders one plain segment per word.
type Config struct {
	BaseRate   int
	BaseVolume float64

	InterjectionProbability          float64
	PitchJitterProbability           float64
	VolumeJitterProbability          float64
	EmphasisProbability              float64
	PauseAfterPunctuationProbability float64
}

// DefaultConfig mirrors the house voice: 140 wpm, full volume, chatty.
func DefaultConfig() Config {
	return Config{
		BaseRate:                         140,
		BaseVolume:                       1.0,
		InterjectionProbability:          0.1,
		PitchJitterProbability:           0.05,
		VolumeJitterProbability:          0.03,
		EmphasisProbability:              0.05,
		PauseAfterPunctuationProbability: 0.5,
	}
}

// Render builds a plan for text. Each word gets independent draws, in
// this order: pause (punctuated words only), interjection, rate jitter,
// volume jitter, emphasis. The rate returns to the base after every
// word; a jittered volume carries over to the following words.
func Render(text string, cfg Config, rng Rand) domain.Plan {
	words := strings.Fields(text)
	plan := make(domain.Plan, 0, len(words))

	rate := cfg.BaseRate
	volume := cfg.BaseVolume

	for _, word := range words {
		plan = append(plan, domain.Speak(word, rate, volume))

		if endsWithPunctuation(word) && hit(rng, cfg.PauseAfterPunctuationProbability) {
			plan = append(plan, domain.PauseFor(pauseLength(rng)))
		}

		if hit(rng, cfg.InterjectionProbability) {
			filler := Interjections[rng.Intn(len(Interjections))]
			plan = append(plan, domain.Speak(filler, rate, volume))
		}

		if hit(rng, cfg.PitchJitterProbability) {
			rate = cfg.BaseRate - RateJitter + rng.Intn(2*RateJitter+1)
		}

		if hit(rng, cfg.VolumeJitterProbability) {
			volume = between(rng, MinJitterVol, MaxJitterVol)
		}

		if hit(rng, cfg.EmphasisProbability) {
			plan = append(plan, domain.Speak(word, rate, between(rng, MinEmphasisVol, MaxEmphasisVol)))
		}

		rate = cfg.BaseRate
	}

	return plan
}

// Plain is the effects-off path: the whole text as one segment at the
// base rate and volume.
func Plain(text string, cfg Config) domain.Plan {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return domain.Plan{}
	}
	return domain.Plan{domain.Speak(text, cfg.BaseRate, cfg.BaseVolume)}
}

// hit consumes exactly one Float64, even for p == 0 or p == 1.
func hit(rng Rand, p float64) bool {
	return rng.Float64() < p
}

func between(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func pauseLength(rng Rand) time.Duration {
	span := int((MaxPause - MinPause) / time.Millisecond)
	return MinPause + time.Duration(rng.Intn(span+1))*time.Millisecond
}

func endsWithPunctuation(word string) bool {
	switch word[len(word)-1] {
	case '.', ',', '!', '?':
		return true
	}
	return false
}
