package render

import (
	"github.com/coreman2200/funtimes-santatrack/internal/timeline"
	"github.com/coreman2200/funtimes-santatrack/internal/view"
)

// Frame is everything a presentation layer needs to draw one tick.
type Frame struct {
	FrameID   uint64                `json:"frame_id"`
	T         int64                 `json:"t"` // unix nanos
	ScrollY   float64               `json:"scrollY"`
	ViewportH float64               `json:"viewportH"`
	Focus     int                   `json:"focus"` // entry nearest the viewport centre
	View      view.Snapshot         `json:"view"`
	Entries   []timeline.EntryFrame `json:"entries"`
}

// Driver abstracts the frame sink (websocket clients, terminal, test fake).
type Driver interface {
	Write(Frame) error
}

// DriverFunc adapts a function to Driver.
type DriverFunc func(Frame) error

func (f DriverFunc) Write(fr Frame) error { return f(fr) }

// Multi writes to every driver and returns the first error.
func Multi(drivers ...Driver) Driver {
	return DriverFunc(func(fr Frame) error {
		var first error
		for _, d := range drivers {
			if d == nil {
				continue
			}
			if err := d.Write(fr); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}
