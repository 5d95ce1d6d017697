package effects

import (
	"math/rand"
	"time"

	"github.com/hammamikhairi/robobarista/internal/domain"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithEffects turns the random effects on or off. Off renders Plain plans.
func WithEffects(enabled bool) Option {
	return func(r *Renderer) {
		r.enabled = enabled
	}
}

// WithSeed replaces the random source with one seeded from seed.
func WithSeed(seed int64) Option {
	return func(r *Renderer) {
		r.rng = rand.New(rand.NewSource(seed))
	}
}

// Renderer binds a Config and a random source so callers only pass text.
// It is not safe for concurrent use; the random source is shared.
type Renderer struct {
	cfg     Config
	rng     Rand
	enabled bool
}

// NewRenderer creates a renderer with effects enabled. A nil rng falls
// back to a time-seeded source.
func NewRenderer(cfg Config, rng Rand, opts ...Option) *Renderer {
	r := &Renderer{cfg: cfg, rng: rng, enabled: true}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return r
}

// Enabled reports whether random effects are applied.
func (r *Renderer) Enabled() bool { return r.enabled }

// Render produces the plan for one sentence.
func (r *Renderer) Render(text string) domain.Plan {
	if !r.enabled {
		return Plain(text, r.cfg)
	}
	return Render(text, r.cfg, r.rng)
}
