package sequence

// Keyframe places the tour at scroll position V at time T (seconds). Ease
// shapes the segment that starts at this keyframe.
type Keyframe struct {
	T    float64 `json:"t" yaml:"t"`
	V    float64 `json:"v" yaml:"v"`
	Ease string  `json:"ease,omitempty" yaml:"ease,omitempty"` // "linear","smooth","cubic"
}

// Envelope is a list of keyframes sorted by T.
type Envelope struct {
	Keys []Keyframe `json:"keys" yaml:"keys"`
}

// Program is an autopilot scroll tour over the timeline.
type Program struct {
	Version string   `json:"version" yaml:"version"` // "tour.v1"
	Loop    bool     `json:"loop,omitempty" yaml:"loop,omitempty"`
	Scroll  Envelope `json:"scroll" yaml:"scroll"`
	// HoldS keeps the final position this long before looping or stopping.
	HoldS float64 `json:"holdS,omitempty" yaml:"hold_s,omitempty"`
}

// PlayerState enumerates tour states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are callbacks into whatever owns the scroll position.
type Hooks struct {
	SetScroll func(y float64)
	// Done fires when a non-looping tour reaches its end.
	Done func()
}

// Player owns the tour clock and drives Hooks.
type Player struct {
	State PlayerState

	prog  Program
	nowS  float64
	hooks Hooks
}
