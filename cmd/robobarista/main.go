// RoboBarista is a talking coffee shop counter.
//
// Usage:
//
//	robobarista [-config robobarista.yaml] [-ui console|tui] [-verbose] [-quiet] [-no-speech] [-no-effects] [-seed N] [-loop]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/robobarista/internal/barista"
	"github.com/hammamikhairi/robobarista/internal/config"
	"github.com/hammamikhairi/robobarista/internal/conversation"
	"github.com/hammamikhairi/robobarista/internal/display"
	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/effects"
	"github.com/hammamikhairi/robobarista/internal/logger"
	"github.com/hammamikhairi/robobarista/internal/menu"
	"github.com/hammamikhairi/robobarista/internal/speech"
	"github.com/hammamikhairi/robobarista/internal/storage"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "config file (default: ./robobarista.yaml or ./configs/robobarista.yaml if present)")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	uiMode := flag.String("ui", "", "presenter: \"console\" or \"tui\"")
	noSpeech := flag.Bool("no-speech", false, "disable text-to-speech even if Azure keys are set")
	noEffects := flag.Bool("no-effects", false, "speak plainly, without random voice effects")
	seed := flag.Int64("seed", 0, "seed for the voice effects (0 = random)")
	diskCache := flag.Bool("disk-cache", true, "persist TTS audio cache to disk (reads from disk even when false)")
	cacheDir := flag.String("cache-dir", "", "directory for persistent TTS audio cache")
	loop := flag.Bool("loop", false, "keep serving customers until input is closed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-file":
			cfg.Logging.File = *logFile
		case "ui":
			cfg.UI.Mode = *uiMode
		case "no-speech":
			cfg.Speech.Enabled = !*noSpeech
		case "no-effects":
			cfg.Effects.Enabled = !*noEffects
		case "seed":
			cfg.Effects.Seed = *seed
		case "disk-cache":
			cfg.Speech.DiskCache = *diskCache
		case "cache-dir":
			cfg.Speech.CacheDir = *cacheDir
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Configure logger.
	logLevel := cfg.LogLevel()
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the prompts stay clean.
	var logOut io.Writer = os.Stderr
	if cfg.Logging.File != "" && cfg.Logging.File != "stderr" {
		f, err := openLogFile(cfg.Logging.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (falling back to stderr)\n", err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs) to the
	// same output so it doesn't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)
	if cfg.Source != "" {
		log.Info("loaded config file %s", cfg.Source)
	} else {
		log.Info("no config file found, using defaults and environment variables")
	}

	// Cancelled on Ctrl+C in console mode, or when the TUI quits.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Wire dependencies.
	catalog, err := cfg.Shop.Catalog(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	store := storage.NewMemoryStore(log)
	answers := conversation.NewAnswerParser(log)

	var fxOpts []effects.Option
	fxOpts = append(fxOpts, effects.WithEffects(cfg.Effects.Enabled))
	if cfg.Effects.Seed != 0 {
		fxOpts = append(fxOpts, effects.WithSeed(cfg.Effects.Seed))
	}
	renderer := effects.NewRenderer(cfg.Effects.Params(), nil, fxOpts...)
	log.Info("voice effects enabled=%v", renderer.Enabled())

	var voice domain.Speaker = speech.NewNoOp(log)
	var player *speech.Player

	if cfg.SpeechAvailable() {
		ttsClient := speech.NewAzureClient(cfg.Speech.Key, cfg.Speech.Region, log,
			speech.WithVoice(cfg.Speech.Voice),
			speech.WithHTTPTimeout(cfg.Speech.Timeout),
			speech.WithRequestsPerMinute(cfg.Speech.RequestsPerMinute),
		)

		player, err = speech.NewPlayer(log)
		if err != nil {
			log.Error("audio player init failed, speech disabled: %v", err)
		} else {
			v := speech.NewVoice(ttsClient, player, log,
				speech.WithCacheDir(cfg.Speech.CacheDir),
				speech.WithDiskWrite(cfg.Speech.DiskCache),
			)
			defer func() {
				hits, misses := v.Cache().Stats()
				log.Info("tts cache: %d hits, %d misses", hits, misses)
			}()
			voice = v
			log.Info("TTS enabled (voice=%s, region=%s)", ttsClient.Voice(), cfg.Speech.Region)
		}
	} else if cfg.Speech.Enabled {
		log.Info("TTS disabled: set %s and %s env vars to enable", speech.EnvAzureSpeechKey, speech.EnvAzureSpeechRegion)
	}
	if player != nil {
		defer player.Stop()
	}

	app := &shop{
		store: store,
		loop:  *loop,
		log:   log,
	}

	switch cfg.UI.Mode {
	case config.UITUI:
		ui := display.NewTUI(cfg.Shop.Name, log)
		app.barista = newBarista(cfg, catalog, ui, voice, renderer, answers, store, log)

		fmt.Print(display.RenderBanner())
		fmt.Println(display.BannerStyle.Render("  Press Ctrl+C to leave."))
		fmt.Println()

		// Run the counter in a background goroutine.
		go func() {
			ui.WaitReady()
			app.run(ctx)
			ui.Quit()
		}()

		// Bubble Tea owns the terminal and blocks until quit.
		if err := ui.Run(); err != nil {
			log.Error("display: %v", err)
		}
		cancel()

	default:
		ui := display.NewConsole(os.Stdin, os.Stdout, log)
		app.barista = newBarista(cfg, catalog, ui, voice, renderer, answers, store, log)

		if err := ui.Banner(); err != nil {
			log.Warn("banner: %v", err)
		}
		app.run(ctx)
	}

	app.summary(context.Background())
}

func newBarista(
	cfg *config.Config,
	catalog *menu.Catalog,
	ui domain.Presenter,
	voice domain.Speaker,
	renderer *effects.Renderer,
	answers *conversation.AnswerParser,
	store domain.OrderStore,
	log *logger.Logger,
) *barista.Barista {
	return barista.New(catalog, ui, voice, renderer, answers, log,
		barista.WithShopName(cfg.Shop.Name),
		barista.WithCurrency(cfg.Shop.Currency),
		barista.WithStore(store),
	)
}

type shop struct {
	barista *barista.Barista
	store   *storage.MemoryStore
	loop    bool
	log     *logger.Logger
}

// run serves one customer, or customers until input closes when looping.
func (s *shop) run(ctx context.Context) {
	for {
		receipt, err := s.barista.Serve(ctx)
		switch {
		case err == nil:
			s.log.Info("served %s (order %s, total %d)", receipt.Customer, receipt.OrderID, receipt.Quote.Total)
		case errors.Is(err, domain.ErrInputClosed), errors.Is(err, context.Canceled):
			s.log.Info("counter closed: %v", err)
			return
		default:
			s.log.Error("serving customer: %v", err)
			return
		}
		if !s.loop {
			return
		}
	}
}

// summary logs the day's orders.
func (s *shop) summary(ctx context.Context) {
	orders, err := s.store.List(ctx)
	if err != nil {
		s.log.Error("listing orders: %v", err)
		return
	}
	for _, o := range orders {
		s.log.Debug("order %s: %s x%d for %s (%d)", o.ID, o.Selection.Item.Name, o.Selection.Quantity, o.Customer, o.Total)
	}
	s.log.Info("%d order(s), takings %d", len(orders), s.store.Takings(ctx))
}

// openLogFile opens path for appending, creating its directory first.
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create log directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file %s: %w", path, err)
	}
	return f, nil
}
