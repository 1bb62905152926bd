package fake

import (
	"fmt"
	"io"
	"sync"

	"github.com/coreman2200/funtimes-santatrack/internal/render"
)

// Driver prints a compact summary of each frame (focused entry and how many
// are visible), useful for headless runs and tests.
type Driver struct {
	Out io.Writer // nil discards output

	mu     sync.Mutex
	Count  int
	frames []render.Frame
	Keep   int // frames retained for Frames(); 0 keeps only the last
}

func (d *Driver) Write(fr render.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Count++
	keep := d.Keep
	if keep <= 0 {
		keep = 1
	}
	d.frames = append(d.frames, fr)
	if len(d.frames) > keep {
		d.frames = d.frames[len(d.frames)-keep:]
	}
	if d.Out == nil || len(fr.Entries) == 0 {
		return nil
	}

	visible := 0
	for _, e := range fr.Entries {
		if e.Visible {
			visible++
		}
	}
	f := fr.Entries[max(fr.Focus, 0)]
	_, err := fmt.Fprintf(d.Out, "[frame %04d] scroll=%.0f visible=%d focus=%s p=%.3f rot=%.1f z=%.0f s=%.2f o=%.2f blur=%.1f\n",
		fr.FrameID, fr.ScrollY, visible, f.ID, f.Progress,
		f.Visual.RotateX, f.Visual.TranslateZ, f.Visual.Scale, f.Visual.Opacity, f.Visual.Blur)
	return err
}

// Last returns the most recent frame.
func (d *Driver) Last() (render.Frame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return render.Frame{}, false
	}
	return d.frames[len(d.frames)-1], true
}

// Frames returns the retained frames, oldest first.
func (d *Driver) Frames() []render.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]render.Frame, len(d.frames))
	copy(out, d.frames)
	return out
}
