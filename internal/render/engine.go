package render

import (
	"errors"
	"sync"
	"time"

	"github.com/coreman2200/funtimes-santatrack/internal/timeline"
	"github.com/coreman2200/funtimes-santatrack/internal/view"
)

// Engine samples the timeline at the current scroll position and hands the
// result to the driver. It is pull-based: callers decide when a frame is due.
type Engine struct {
	TL   *timeline.Timeline
	View *view.State

	mu      sync.Mutex
	drv     Driver
	frameID uint64
	t0      time.Time

	// metrics (last durations in ms)
	Last struct {
		RenderMS float64
		WriteMS  float64
		TotalMS  float64
	}
}

func NewEngine(tl *timeline.Timeline, v *view.State, drv Driver) (*Engine, error) {
	if tl == nil || tl.Interp == nil {
		return nil, errors.New("render: timeline is nil")
	}
	if v == nil {
		return nil, errors.New("render: view state is nil")
	}
	return &Engine{TL: tl, View: v, drv: drv, t0: time.Now()}, nil
}

// Uptime returns seconds since engine start.
func (e *Engine) Uptime() float64 {
	return time.Since(e.t0).Seconds()
}

func (e *Engine) SetDriver(d Driver) {
	e.mu.Lock()
	e.drv = d
	e.mu.Unlock()
}

// FrameID is the id of the last rendered frame.
func (e *Engine) FrameID() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameID
}

// RenderOnce builds one frame from the current view state and writes it.
// The frame is returned even when the driver fails.
func (e *Engine) RenderOnce() (Frame, error) {
	start := time.Now()
	snap := e.View.Snapshot()

	fr := Frame{
		T:         start.UnixNano(),
		ScrollY:   snap.ScrollY,
		ViewportH: snap.ViewportH,
		Focus:     e.TL.Focus(snap.ScrollY, snap.ViewportH),
		View:      snap,
		Entries:   e.TL.Sample(snap.ScrollY, snap.ViewportH),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameID++
	fr.FrameID = e.frameID
	e.Last.RenderMS = float64(time.Since(start).Microseconds()) / 1000.0

	var err error
	writeStart := time.Now()
	if e.drv != nil {
		err = e.drv.Write(fr)
	}
	e.Last.WriteMS = float64(time.Since(writeStart).Microseconds()) / 1000.0
	e.Last.TotalMS = float64(time.Since(start).Microseconds()) / 1000.0
	return fr, err
}
