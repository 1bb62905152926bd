package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-santatrack/internal/config"
	diag "github.com/coreman2200/funtimes-santatrack/internal/diagnostics"
	"github.com/coreman2200/funtimes-santatrack/internal/layout"
	"github.com/coreman2200/funtimes-santatrack/internal/music"
	"github.com/coreman2200/funtimes-santatrack/internal/oracle"
	"github.com/coreman2200/funtimes-santatrack/internal/render"
	"github.com/coreman2200/funtimes-santatrack/internal/sequence"
	"github.com/coreman2200/funtimes-santatrack/internal/timeline"
	"github.com/coreman2200/funtimes-santatrack/internal/tracking"
	"github.com/coreman2200/funtimes-santatrack/internal/view"
)

// Core owns the page: its view state, the frame engine and the side
// services (assistant, music, tour) that the controls reach.
type Core struct {
	Cfg  *config.Config
	Ship *tracking.Shipment
	TL   *timeline.Timeline
	View *view.State
	Eng  *render.Engine
	Msgr *oracle.Messenger
	Juke *music.Jukebox
	Tour *sequence.SafePlayer

	diag diag.Sink
}

// Deps are the pieces the binaries choose. Only Config is required.
type Deps struct {
	Config    *config.Config
	Shipment  *tracking.Shipment // nil uses tracking.Default
	Generator oracle.Generator   // nil means offline
	Audio     music.Output       // nil keeps the jukebox silent
	Driver    render.Driver
	Diag      diag.Sink
}

func InitCore(d Deps) (*Core, error) {
	cfg := d.Config
	if cfg == nil {
		return nil, errors.New("app: config is nil")
	}
	sink := d.Diag
	if sink == nil {
		sink = diag.Discard
	}

	// 1) Shipment
	ship := d.Shipment
	if ship == nil {
		ship = tracking.Default(cfg.Recipient.Name, cfg.OrderID, cfg.ETA)
	}
	if err := ship.Validate(); err != nil {
		return nil, fmt.Errorf("app: tracking data: %w", err)
	}

	// 2) Timeline over the page layout
	tl := timeline.New(ship.IDs(), layout.Layout{
		TopOffset:   cfg.Layout.TopOffset,
		EntryHeight: cfg.Layout.EntryHeight,
		Gap:         cfg.Layout.Gap,
		LastPad:     cfg.Layout.LastPad,
	})

	// 3) View state + engine
	v := view.New(cfg.Viewport.Height)
	v.SetScrollBounds(tl.Layout.MaxScroll(cfg.Viewport.Height))
	eng, err := render.NewEngine(tl, v, d.Driver)
	if err != nil {
		return nil, err
	}

	// 4) Assistant
	gen := d.Generator
	if gen == nil {
		gen = oracle.Offline{Reason: oracle.ErrNoAPIKey}
	}
	msgr, err := oracle.NewMessenger(gen, oracle.Options{
		Recipient: oracle.PromptData{Name: cfg.Recipient.Name, Age: cfg.Recipient.Age},
		Prompt:    cfg.Assistant.Prompt,
		Timeout:   time.Duration(cfg.Assistant.TimeoutMs) * time.Millisecond,
		Diag:      sink,
	})
	if err != nil {
		return nil, fmt.Errorf("app: assistant prompt: %w", err)
	}

	// 5) Music
	juke := music.NewJukebox(music.DefaultSampleRate, cfg.Audio.BPM, cfg.Audio.Volume)
	if d.Audio != nil && cfg.Audio.Enabled {
		juke.Attach(d.Audio)
	}

	c := &Core{Cfg: cfg, Ship: ship, TL: tl, View: v, Eng: eng, Msgr: msgr, Juke: juke, diag: sink}

	// 6) Tour wiring (hooks -> view state)
	c.Tour = sequence.NewSafePlayer(sequence.Hooks{
		SetScroll: v.SetScroll,
		Done: func() {
			v.SetTourRunning(false)
			sink.Push(diag.Diagnostic{Severity: diag.Info, Code: diag.TourDone, Summary: "Autopilot tour finished"})
		},
	})
	return c, nil
}

// Splash marks the page loaded once the splash delay has passed, unless ctx
// ends first.
func (c *Core) Splash(ctx context.Context) {
	delay := time.Duration(c.Cfg.SplashMs) * time.Millisecond
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return
	case <-t.C:
	}
	c.View.SetLoaded(true)
	log.Debug().Dur("after", delay).Msg("splash done")
	c.diag.Push(diag.Diagnostic{
		Severity: diag.Info, Code: diag.SplashDone, Summary: "Tracker loaded",
		Evidence: map[string]any{"delay_ms": c.Cfg.SplashMs},
	})
}
