package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-santatrack/internal/app"
	"github.com/coreman2200/funtimes-santatrack/internal/config"
	diag "github.com/coreman2200/funtimes-santatrack/internal/diagnostics"
	"github.com/coreman2200/funtimes-santatrack/internal/driver/term"
	"github.com/coreman2200/funtimes-santatrack/internal/music"
	"github.com/coreman2200/funtimes-santatrack/internal/music/device"
	"github.com/coreman2200/funtimes-santatrack/internal/oracle"
	"github.com/coreman2200/funtimes-santatrack/internal/tracking"
)

const scrollStep = 60.0 // px per j/k

type action int

const (
	actNone action = iota
	actQuit
	actDown
	actUp
	actPageDown
	actPageUp
	actMusic
	actAsk
	actHistory
	actCopy
	actTour
)

func keyAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit
	case tcell.KeyDown:
		return actDown
	case tcell.KeyUp:
		return actUp
	case tcell.KeyPgDn:
		return actPageDown
	case tcell.KeyPgUp:
		return actPageUp
	case tcell.KeyRune:
	default:
		return actNone
	}
	switch ev.Rune() {
	case 'q':
		return actQuit
	case 'j':
		return actDown
	case 'k':
		return actUp
	case ' ':
		return actPageDown
	case 'm':
		return actMusic
	case 'a':
		return actAsk
	case 'h':
		return actHistory
	case 'c':
		return actCopy
	case 't':
		return actTour
	}
	return actNone
}

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		trackFile  = flag.String("tracking", "", "path to a tracking events yaml")
		noAudio    = flag.Bool("no-audio", false, "do not open the speaker")
		logPath    = flag.String("log", "", "log file (the terminal is busy drawing)")
		logLevel   = flag.String("log-level", "info", "zerolog level")
	)
	flag.Parse()

	// ---- Logging ----
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: logOut, TimeFormat: time.Kitchen, NoColor: true})
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// ---- Config ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		cfg = config.Defaults()
	}
	cfg.Merge(config.Defaults())
	if *trackFile != "" {
		cfg.TrackingFile = *trackFile
	}
	pal, err := cfg.Theme.Palette()
	if err != nil {
		fmt.Fprintf(os.Stderr, "theme: %v\n", err)
		os.Exit(1)
	}

	ship := tracking.Default(cfg.Recipient.Name, cfg.OrderID, cfg.ETA)
	if cfg.TrackingFile != "" {
		if s, err := tracking.Load(cfg.TrackingFile); err != nil {
			log.Warn().Err(err).Str("path", cfg.TrackingFile).Msg("tracking load failed; using built-in timeline")
		} else {
			ship = s
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := diag.SinkFunc(func(d diag.Diagnostic) {
		log.Info().Str("code", d.Code).Msg(d.Summary)
	})

	var gen oracle.Generator
	if g, err := oracle.NewGemini(ctx, cfg.Assistant.Model, cfg.Assistant.APIKeyEnv); err != nil {
		log.Warn().Err(err).Msg("assistant offline; fallback messages only")
		gen = oracle.Offline{Reason: err}
	} else {
		gen = g
	}

	var out music.Output
	if cfg.Audio.Enabled && !*noAudio {
		// Non-fatal, the tracker can run without sound
		if spk, err := device.Open(music.DefaultSampleRate); err != nil {
			log.Warn().Err(err).Msg("speaker init failed; music disabled")
			sink.Push(diag.Diagnostic{Severity: diag.Warn, Code: diag.AudioUnavailable, Summary: "No audio device"})
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
		Diag:      sink,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}

	if !InitClipboard() {
		sink.Push(diag.Diagnostic{Severity: diag.Info, Code: diag.ClipboardDisabled, Summary: "Clipboard is disabled"})
	}

	// ---- Screen ----
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	core.Eng.SetDriver(term.New(screen, ship, pal, 0))

	run(ctx, screen, core)
}

func run(ctx context.Context, screen tcell.Screen, core *app.Core) {
	go core.Splash(ctx)

	fps := max(core.Cfg.FPS, 1)
	dt := time.Second / time.Duration(fps)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if !handle(ctx, core, keyAction(ev)) {
					return
				}
			}
		case <-ticker.C:
			if _, err := core.Tick(dt.Seconds()); err != nil {
				log.Debug().Err(err).Msg("draw frame")
			}
		}
	}
}

// handle applies one action; false means quit.
func handle(ctx context.Context, core *app.Core, a action) bool {
	page := core.View.Snapshot().ViewportH * 0.8
	switch a {
	case actQuit:
		return false
	case actDown:
		core.ScrollBy(scrollStep)
	case actUp:
		core.ScrollBy(-scrollStep)
	case actPageDown:
		core.ScrollBy(page)
	case actPageUp:
		core.ScrollBy(-page)
	case actMusic:
		core.ToggleMusic()
	case actHistory:
		core.ToggleHistory()
	case actAsk:
		go core.AskElf(ctx)
	case actCopy:
		if reply := core.View.Snapshot().AssistantReply; reply != "" {
			ClipboardWriteText(reply)
		}
	case actTour:
		if core.TourRunning() {
			core.StopTour()
		} else if err := core.StartTour(false); err != nil {
			log.Warn().Err(err).Msg("tour")
		}
	}
	return true
}
