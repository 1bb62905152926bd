// Package term draws frames on a terminal screen. Each entry is placed on the
// row matching its scroll progress, bottom (0) to top (1), and styled from its
// visual state: faded entries dim, blurred ones lose their text.
package term

import (
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/coreman2200/funtimes-santatrack/internal/config"
	"github.com/coreman2200/funtimes-santatrack/internal/render"
	"github.com/coreman2200/funtimes-santatrack/internal/tracking"
)

const (
	headerRows = 2
	footerRows = 2
	dimBelow   = 0.5 // opacity
	blurAbove  = 6.0 // px
)

type Driver struct {
	mu       sync.Mutex
	screen   tcell.Screen
	ship     *tracking.Shipment
	colors   map[tracking.Status]tcell.Color
	accent   tcell.Color
	throttle time.Duration
	lastDraw time.Time
}

// New draws on s. throttle skips frames arriving sooner than that after the
// previous draw; 0 draws every frame.
func New(s tcell.Screen, ship *tracking.Shipment, pal config.Palette, throttle time.Duration) *Driver {
	return &Driver{
		screen: s,
		ship:   ship,
		colors: map[tracking.Status]tcell.Color{
			tracking.Completed: rgb(pal.Completed),
			tracking.Current:   rgb(pal.Current),
			tracking.Pending:   rgb(pal.Pending),
			tracking.Warning:   rgb(pal.Warning),
		},
		accent:   rgb(pal.Accent),
		throttle: throttle,
	}
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (d *Driver) Write(fr render.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	if d.throttle > 0 && d.lastDraw.Add(d.throttle).After(now) {
		return nil
	}
	d.lastDraw = now

	s := d.screen
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h <= headerRows+footerRows {
		s.Show()
		return nil
	}

	if !fr.View.Loaded {
		msg := "СВЯЗЬ С ПОЛЮСОМ..."
		d.text((w-len([]rune(msg)))/2, h/2, msg, tcell.StyleDefault.Foreground(d.accent).Bold(true))
		s.Show()
		return nil
	}

	d.header(w, fr)
	d.entries(w, h, fr)
	d.footer(w, h, fr)
	s.Show()
	return nil
}

func (d *Driver) header(w int, fr render.Frame) {
	sum := d.ship.Summary
	d.text(0, 0, fmt.Sprintf("ПОСЫЛКА ДЛЯ %s · %s · ETA %s", sum.Recipient, sum.OrderID, sum.EstimatedArrival),
		tcell.StyleDefault.Foreground(d.accent).Bold(true))

	flags := fmt.Sprintf("scroll %.0f/%.0f", fr.ScrollY, fr.ViewportH)
	if fr.View.MusicPlaying {
		flags += "  ♪"
	}
	if fr.View.ShowHistory {
		flags += "  [журнал]"
	}
	if fr.View.AssistantLoading {
		flags += "  эльф на связи..."
	}
	d.text(0, 1, flags, tcell.StyleDefault.Dim(true))
}

func (d *Driver) entries(w, h int, fr render.Frame) {
	rows := h - headerRows - footerRows
	for _, e := range fr.Entries {
		if !e.Visible || e.Index >= len(d.ship.Events) {
			continue
		}
		ev := d.ship.Events[e.Index]
		row := headerRows + int((1-e.Progress)*float64(rows-1)+0.5)
		if row < headerRows || row >= h-footerRows {
			continue
		}
		st := tcell.StyleDefault.Foreground(d.colors[ev.Status])
		if e.Index == fr.Focus {
			st = st.Bold(true)
		}
		if e.Visual.Opacity < dimBelow {
			st = st.Dim(true)
		}
		label := fmt.Sprintf("%s %s  %s", ev.Date, ev.Time, ev.Title)
		if e.Visual.Blur > blurAbove {
			label = "· · ·"
		}
		// narrower cards sit further in, like the scaled-down page cards
		indent := int((1 - e.Visual.Scale) * float64(w) / 2)
		d.text(max(indent, 0), row, label, st)
	}
}

func (d *Driver) footer(w, h int, fr render.Frame) {
	y := h - footerRows
	if fr.View.ShowHistory {
		line := ""
		for _, ev := range d.ship.Events {
			if ev.Status != tracking.Pending {
				line += ev.Date + " " + ev.Location + " > "
			}
		}
		d.text(0, y, line, tcell.StyleDefault.Dim(true))
	}
	if fr.View.AssistantReply != "" {
		d.text(0, y+1, strings.ReplaceAll(fr.View.AssistantReply, "\n", " "), tcell.StyleDefault.Foreground(d.accent))
	}
}

// text writes s from (x, y), clipped to the screen width.
func (d *Driver) text(x, y int, s string, st tcell.Style) {
	w, _ := d.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		if x >= 0 {
			d.screen.SetContent(x, y, r, nil, st)
		}
		x++
	}
}
