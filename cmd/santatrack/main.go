package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-santatrack/internal/app"
	"github.com/coreman2200/funtimes-santatrack/internal/config"
	diag "github.com/coreman2200/funtimes-santatrack/internal/diagnostics"
	"github.com/coreman2200/funtimes-santatrack/internal/music"
	"github.com/coreman2200/funtimes-santatrack/internal/music/device"
	"github.com/coreman2200/funtimes-santatrack/internal/oracle"
	"github.com/coreman2200/funtimes-santatrack/internal/tracking"
	"github.com/coreman2200/funtimes-santatrack/internal/web"
	"github.com/coreman2200/funtimes-santatrack/internal/ws"
)

func main() {
	// ---- Flags (config.yaml overrides where set) ----
	var (
		name       = flag.String("name", "", "recipient name")
		age        = flag.Int("age", 0, "recipient age")
		addr       = flag.String("addr", "", "HTTP listen address")
		fps        = flag.Int("fps", 0, "frames per second pushed to clients")
		splashMs   = flag.Int("splash-ms", 0, "splash screen delay (ms)")
		trackFile  = flag.String("tracking", "", "path to a tracking events yaml")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		noAudio    = flag.Bool("no-audio", false, "do not open the speaker")
		logLevel   = flag.String("log-level", "info", "zerolog level")
		writeCfg   = flag.Bool("write-config", false, "write the effective config to -config and exit")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// ---- Config: config.yaml wins over flags; defaults fill the rest ----
	flagCfg := &config.Config{
		Recipient:    config.Recipient{Name: *name, Age: *age},
		Addr:         *addr,
		FPS:          *fps,
		SplashMs:     *splashMs,
		TrackingFile: *trackFile,
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		cfg = flagCfg
		cfg.Audio.Enabled = true
	}
	cfg.Merge(flagCfg).Merge(config.Defaults())
	if *writeCfg {
		if err := config.Save(*configPath, cfg); err != nil {
			log.Fatal().Err(err).Msg("write config")
		}
		log.Info().Str("path", *configPath).Msg("config written")
		return
	}

	// ---- Tracking data ----
	var ship *tracking.Shipment
	if cfg.TrackingFile != "" {
		s, err := tracking.Load(cfg.TrackingFile)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.TrackingFile).Msg("tracking load failed; using built-in timeline")
		} else {
			ship = s
		}
	}
	if ship == nil {
		ship = tracking.Default(cfg.Recipient.Name, cfg.OrderID, cfg.ETA)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- Hub first: it is the frame driver and a diagnostic sink ----
	hub := ws.NewHub(nil, ship, cfg.FPS)
	logSink := diag.SinkFunc(func(d diag.Diagnostic) {
		log.Debug().Str("code", d.Code).Str("severity", string(d.Severity)).Msg(d.Summary)
	})
	sink := diag.Fanout(hub, logSink)

	// ---- Assistant: Gemini when a key is set, otherwise offline fallbacks ----
	var gen oracle.Generator
	if g, err := oracle.NewGemini(ctx, cfg.Assistant.Model, cfg.Assistant.APIKeyEnv); err != nil {
		log.Warn().Err(err).Str("env", cfg.Assistant.APIKeyEnv).Msg("assistant offline; fallback messages only")
		gen = oracle.Offline{Reason: err}
	} else {
		gen = g
	}

	// ---- Audio (optional) ----
	var out music.Output
	if cfg.Audio.Enabled && !*noAudio {
		spk, err := device.Open(music.DefaultSampleRate)
		if err != nil {
			log.Warn().Err(err).Msg("speaker init failed; music disabled")
			sink.Push(diag.Diagnostic{
				Severity: diag.Warn, Code: diag.AudioUnavailable, Summary: "No audio device",
				Detail: err.Error(), SuggestedFixes: []string{"run with -no-audio"},
			})
		} else {
			out = spk
			defer spk.Close()
		}
	}

	core, err := app.InitCore(app.Deps{
		Config:    cfg,
		Shipment:  ship,
		Generator: gen,
		Audio:     out,
		Driver:    hub,
		Diag:      sink,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	hub.Ctrl = core
	hub.Uptime = core.Eng.Uptime

	page, err := web.Handler(cfg, ship)
	if err != nil {
		log.Fatal().Err(err).Msg("page")
	}

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	mux.Handle("/", page)
	hub.Routes(mux)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ---- Run frame loop & server ----
	go core.Run(ctx)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("recipient", cfg.Recipient.Name).Int("entries", len(ship.Events)).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 3*time.Second)
	defer done()
	_ = srv.Shutdown(shutdownCtx)
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
