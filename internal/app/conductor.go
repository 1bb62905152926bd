package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/funtimes-santatrack/internal/diagnostics"
	"github.com/coreman2200/funtimes-santatrack/internal/oracle"
	"github.com/coreman2200/funtimes-santatrack/internal/render"
	"github.com/coreman2200/funtimes-santatrack/internal/sequence"
)

// Tour pacing: seconds gliding between entries and resting on each.
const (
	tourTravelS = 1.5
	tourDwellS  = 2.0
)

// Run ticks the tour and renders frames at fps until ctx ends. The splash
// timer runs alongside.
func (c *Core) Run(ctx context.Context) {
	fps := c.Cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	go c.Splash(ctx)

	dt := time.Second / time.Duration(fps)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.Tick(dt.Seconds()); err != nil {
				log.Debug().Err(err).Msg("write frame")
			}
		}
	}
}

// Tick advances the tour by dt seconds and renders one frame.
func (c *Core) Tick(dt float64) (render.Frame, error) {
	c.Tour.With(func(p *sequence.Player) { p.Tick(dt) })
	return c.Eng.RenderOnce()
}

// ToggleMusic flips the background track and reports whether it now plays.
func (c *Core) ToggleMusic() bool {
	playing := c.Juke.Toggle()
	c.View.SetMusicPlaying(playing)
	return playing
}

func (c *Core) ToggleHistory() bool { return c.View.ToggleHistory() }

// SetScroll moves the page; a manual scroll cancels a running tour.
func (c *Core) SetScroll(y float64) {
	c.StopTour()
	c.View.SetScroll(y)
}

func (c *Core) ScrollBy(dy float64) float64 {
	c.StopTour()
	return c.View.ScrollBy(dy)
}

// SetViewport resizes the window and re-bounds scrolling.
func (c *Core) SetViewport(h float64) {
	if h <= 0 {
		return
	}
	c.View.SetViewport(h)
	c.View.SetScrollBounds(c.TL.Layout.MaxScroll(h))
}

// AskElf requests the personalised message. It returns false without asking
// when a request is already in flight.
func (c *Core) AskElf(ctx context.Context) (oracle.Reply, bool) {
	if !c.View.BeginAssistant() {
		c.diag.Push(diag.Diagnostic{Severity: diag.Info, Code: diag.AssistantBusy, Summary: "Elf radio is already transmitting"})
		return oracle.Reply{}, false
	}
	c.Juke.Chime()
	r := c.Msgr.Ask(ctx)
	c.View.EndAssistant(r.Text)
	log.Info().Str("source", string(r.Source)).Dur("took", r.Took).Msg("elf replied")
	return r, true
}

// StartTour glides through every entry, centring each in the viewport.
func (c *Core) StartTour(loop bool) error {
	vh := c.View.Snapshot().ViewportH
	stops := make([]sequence.Stop, 0, len(c.TL.IDs))
	for i := range c.TL.IDs {
		stops = append(stops, sequence.Stop{ScrollY: max(c.TL.ScrollFor(i, 0.5, vh), 0), DwellS: tourDwellS})
	}
	return c.PlayTour(sequence.TourThrough(stops, tourTravelS, loop))
}

// PlayTour loads prog and starts it from the beginning.
func (c *Core) PlayTour(prog sequence.Program) error {
	var err error
	c.Tour.With(func(p *sequence.Player) {
		if err = p.Load(prog); err == nil {
			p.Start()
		}
	})
	c.View.SetTourRunning(err == nil)
	return err
}

func (c *Core) StopTour() {
	c.Tour.With(func(p *sequence.Player) {
		if p.State != sequence.Idle {
			p.Stop()
		}
	})
	c.View.SetTourRunning(false)
}

func (c *Core) TourRunning() bool {
	running := false
	c.Tour.With(func(p *sequence.Player) { running = p.State == sequence.Running })
	return running
}
