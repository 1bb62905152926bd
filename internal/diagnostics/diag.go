package diagnostics

import "time"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes emitted by the tracker.
const (
	SplashDone        = "SPLASH.DONE"
	AssistantFallback = "ASSISTANT.FALLBACK"
	AssistantEmpty    = "ASSISTANT.EMPTY"
	AssistantBusy     = "ASSISTANT.BUSY"
	AudioUnavailable  = "AUDIO.UNAVAILABLE"
	ControlUnknown    = "CONTROL.UNKNOWN"
	ClipboardDisabled = "CLIPBOARD.DISABLED"
	TourDone          = "TOUR.DONE"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
	At             time.Time      `json:"at"`
}

// Sink receives diagnostics; implementations must not block for long.
type Sink interface {
	Push(Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Diagnostic)

func (f SinkFunc) Push(d Diagnostic) { f(d) }

// Discard drops everything.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Fanout pushes to every non-nil sink.
func Fanout(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		if d.At.IsZero() {
			d.At = time.Now()
		}
		for _, s := range sinks {
			if s != nil {
				s.Push(d)
			}
		}
	})
}
