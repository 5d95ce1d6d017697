// Package config loads the coffee shop configuration from defaults, an
// optional robobarista.yaml and ROBOBARISTA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/effects"
	"github.com/hammamikhairi/robobarista/internal/logger"
	"github.com/hammamikhairi/robobarista/internal/menu"
	"github.com/hammamikhairi/robobarista/internal/speech"
)

// UI modes.
const (
	UIConsole = "console"
	UITUI     = "tui"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root configuration.
type Config struct {
	Shop    ShopConfig    `mapstructure:"shop"`
	UI      UIConfig      `mapstructure:"ui"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	Effects EffectsConfig `mapstructure:"effects"`
	Logging LoggingConfig `mapstructure:"logging"`

	// Source is the config file that was read, empty if none.
	Source string `mapstructure:"-"`
}

// ShopConfig holds the shop identity and an optional custom menu.
type ShopConfig struct {
	Name     string           `mapstructure:"name"`
	Currency string           `mapstructure:"currency"`
	Menu     []MenuItemConfig `mapstructure:"menu"` // empty = house menu
}

// MenuItemConfig is one menu entry in the config file.
type MenuItemConfig struct {
	Name         string `mapstructure:"name"`
	Price        int    `mapstructure:"price"`
	Iced         bool   `mapstructure:"iced"`
	WhippedCream bool   `mapstructure:"whipped_cream"`
	ForcedIced   bool   `mapstructure:"forced_iced"`
}

// UIConfig selects the presenter.
type UIConfig struct {
	Mode string `mapstructure:"mode"` // "console" or "tui"
}

// SpeechConfig holds Azure TTS and audio cache settings.
type SpeechConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Key               string        `mapstructure:"key"`    // supports "${AZURE_SPEECH_KEY}"
	Region            string        `mapstructure:"region"` // supports "${AZURE_SPEECH_REGION}"
	Voice             string        `mapstructure:"voice"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"` // 0 = unthrottled
	CacheDir          string        `mapstructure:"cache_dir"`
	DiskCache         bool          `mapstructure:"disk_cache"`
}

// EffectsConfig holds the humanizing voice effects settings.
type EffectsConfig struct {
	Enabled               bool    `mapstructure:"enabled"`
	Seed                  int64   `mapstructure:"seed"` // 0 = seed from the clock
	BaseRate              int     `mapstructure:"base_rate"`
	BaseVolume            float64 `mapstructure:"base_volume"`
	Interjection          float64 `mapstructure:"interjection"`
	PitchJitter           float64 `mapstructure:"pitch_jitter"`
	VolumeJitter          float64 `mapstructure:"volume_jitter"`
	Emphasis              float64 `mapstructure:"emphasis"`
	PauseAfterPunctuation float64 `mapstructure:"pause_after_punctuation"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"` // off, normal, verbose
	File  string `mapstructure:"file"`  // "stderr" logs to the console
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./robobarista.yaml, ./configs/robobarista.yaml, then
// the user's config directories (e.g. ~/.config/robobarista/robobarista.yaml).
func Load(configFile string) (*Config, error) {
	v := viper.New()

	fx := effects.DefaultConfig()

	// Defaults
	v.SetDefault("shop.name", "Robot Coffee Shop")
	v.SetDefault("shop.currency", "R")
	v.SetDefault("ui.mode", UIConsole)
	v.SetDefault("speech.enabled", true)
	v.SetDefault("speech.key", "${"+speech.EnvAzureSpeechKey+"}")
	v.SetDefault("speech.region", "${"+speech.EnvAzureSpeechRegion+"}")
	v.SetDefault("speech.voice", speech.DefaultVoice)
	v.SetDefault("speech.timeout", "30s")
	v.SetDefault("speech.requests_per_minute", 20)
	v.SetDefault("speech.cache_dir", ".robobarista-cache")
	v.SetDefault("speech.disk_cache", true)
	v.SetDefault("effects.enabled", true)
	v.SetDefault("effects.seed", 0)
	v.SetDefault("effects.base_rate", fx.BaseRate)
	v.SetDefault("effects.base_volume", fx.BaseVolume)
	v.SetDefault("effects.interjection", fx.InterjectionProbability)
	v.SetDefault("effects.pitch_jitter", fx.PitchJitterProbability)
	v.SetDefault("effects.volume_jitter", fx.VolumeJitterProbability)
	v.SetDefault("effects.emphasis", fx.EmphasisProbability)
	v.SetDefault("effects.pause_after_punctuation", fx.PauseAfterPunctuationProbability)
	v.SetDefault("logging.level", "normal")
	v.SetDefault("logging.file", ".robobarista-logs/robobarista.log")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("robobarista")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		for _, dir := range userConfigDirs() {
			v.AddConfigPath(dir)
		}
	}

	// Environment variables: ROBOBARISTA_SHOP_NAME, ROBOBARISTA_EFFECTS_SEED, etc.
	v.SetEnvPrefix("ROBOBARISTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var source string
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		source = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Source = source

	cfg.Speech.Key = resolveEnvRef(cfg.Speech.Key)
	cfg.Speech.Region = resolveEnvRef(cfg.Speech.Region)
	cfg.Speech.CacheDir = expandHome(cfg.Speech.CacheDir)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that viper cannot express.
func (c *Config) Validate() error {
	switch c.UI.Mode {
	case UIConsole, UITUI:
	default:
		return fmt.Errorf("%w: ui.mode %q (want %s or %s)", ErrInvalidConfig, c.UI.Mode, UIConsole, UITUI)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	if c.Effects.BaseRate <= 0 {
		return fmt.Errorf("%w: effects.base_rate must be positive", ErrInvalidConfig)
	}
	if c.Effects.BaseVolume <= 0 {
		return fmt.Errorf("%w: effects.base_volume must be positive", ErrInvalidConfig)
	}
	probs := map[string]float64{
		"interjection":            c.Effects.Interjection,
		"pitch_jitter":            c.Effects.PitchJitter,
		"volume_jitter":           c.Effects.VolumeJitter,
		"emphasis":                c.Effects.Emphasis,
		"pause_after_punctuation": c.Effects.PauseAfterPunctuation,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: effects.%s = %v, must be within [0, 1]", ErrInvalidConfig, name, p)
		}
	}
	return nil
}

// SpeechAvailable reports whether Azure credentials are present and speech
// is switched on.
func (c *Config) SpeechAvailable() bool {
	return c.Speech.Enabled && c.Speech.Key != "" && c.Speech.Region != "" &&
		!strings.HasPrefix(c.Speech.Key, "${") && !strings.HasPrefix(c.Speech.Region, "${")
}

// LogLevel maps logging.level to a logger level. Unknown names fall back
// to normal; Validate reports them.
func (c *Config) LogLevel() logger.Level {
	level, _ := logger.ParseLevel(c.Logging.Level)
	return level
}

// Params converts the effects section into renderer settings.
func (e EffectsConfig) Params() effects.Config {
	return effects.Config{
		BaseRate:                         e.BaseRate,
		BaseVolume:                       e.BaseVolume,
		InterjectionProbability:          e.Interjection,
		PitchJitterProbability:           e.PitchJitter,
		VolumeJitterProbability:          e.VolumeJitter,
		EmphasisProbability:              e.Emphasis,
		PauseAfterPunctuationProbability: e.PauseAfterPunctuation,
	}
}

// Catalog builds the menu. An empty shop.menu yields the house menu.
func (s ShopConfig) Catalog(log *logger.Logger) (*menu.Catalog, error) {
	if len(s.Menu) == 0 {
		return menu.Default(log), nil
	}
	items := make([]domain.MenuItem, len(s.Menu))
	for i, m := range s.Menu {
		items[i] = domain.MenuItem{
			Name:                 m.Name,
			BasePrice:            m.Price,
			SupportsIced:         m.Iced,
			SupportsWhippedCream: m.WhippedCream,
			ForcedIced:           m.ForcedIced,
		}
	}
	c, err := menu.NewCatalog(log, items...)
	if err != nil {
		return nil, fmt.Errorf("building menu: %w", err)
	}
	return c, nil
}

// userConfigDirs lists per-user config directories, honouring
// ROBOBARISTA_CONFIG_HOME first.
func userConfigDirs() []string {
	var dirs []string
	if c := os.Getenv("ROBOBARISTA_CONFIG_HOME"); c != "" {
		dirs = append(dirs, c)
	}
	scoped, err := gap.NewScope(gap.User, "robobarista").ConfigDirs()
	if err == nil {
		dirs = append(dirs, scoped...)
	}
	return dirs
}

// expandHome resolves a leading "~" in paths from the config file.
func expandHome(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}
