package timeline

import (
	"github.com/coreman2200/funtimes-santatrack/internal/layout"
)

// DefaultMargin is how far past [0,1] an entry still counts as visible.
const DefaultMargin = 0.05

// Progress tracks an element from the moment its top meets the viewport
// bottom (0) until its bottom leaves through the viewport top (1).
// The result is not clamped.
func Progress(scrollY, viewportH float64, box layout.Box) float64 {
	span := viewportH + box.Height
	if span <= 0 {
		return 0
	}
	return (scrollY + viewportH - box.Top) / span
}

// EntryFrame is the sampled state of one timeline entry.
type EntryFrame struct {
	Index    int         `json:"index"`
	ID       string      `json:"id"`
	Progress float64     `json:"progress"`
	Visible  bool        `json:"visible"`
	Visual   VisualState `json:"visual"`
	// Precomputed CSS strings for thin clients.
	Transform string `json:"transform"`
	Filter    string `json:"filter"`
}

// Timeline binds entry ids to page boxes and an interpolator.
type Timeline struct {
	IDs    []string
	Layout layout.Layout
	Interp *ScrollInterpolator
	Margin float64
}

// New returns a timeline using the default interpolator; l.N is forced to len(ids).
func New(ids []string, l layout.Layout) *Timeline {
	l.N = len(ids)
	return &Timeline{IDs: ids, Layout: l, Interp: Default(), Margin: DefaultMargin}
}

// Sample evaluates every entry independently at the given scroll position.
func (t *Timeline) Sample(scrollY, viewportH float64) []EntryFrame {
	out := make([]EntryFrame, len(t.IDs))
	for i, id := range t.IDs {
		p := Progress(scrollY, viewportH, t.Layout.Box(i))
		v := t.Interp.Eval(p)
		out[i] = EntryFrame{
			Index:     i,
			ID:        id,
			Progress:  p,
			Visible:   p >= -t.Margin && p <= 1+t.Margin,
			Visual:    v,
			Transform: v.Transform(),
			Filter:    v.Filter(),
		}
	}
	return out
}

// Focus returns the index of the entry closest to the viewport centre
// (progress nearest 0.5), or -1 for an empty timeline.
func (t *Timeline) Focus(scrollY, viewportH float64) int {
	best, bestD := -1, 0.0
	for i := range t.IDs {
		d := Progress(scrollY, viewportH, t.Layout.Box(i)) - 0.5
		if d < 0 {
			d = -d
		}
		if best < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// ScrollFor returns the scrollY at which entry i sits at progress p.
func (t *Timeline) ScrollFor(i int, p, viewportH float64) float64 {
	b := t.Layout.Box(i)
	return p*(viewportH+b.Height) + b.Top - viewportH
}
