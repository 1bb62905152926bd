// Package view holds the page's UI state: one explicit struct owned by the
// top-level controller, changed through direct setter calls.
package view

import "sync"

// Snapshot is an immutable copy of the view state.
type Snapshot struct {
	Loaded           bool    `json:"loaded"`
	ShowHistory      bool    `json:"showHistory"`
	MusicPlaying     bool    `json:"musicPlaying"`
	AssistantLoading bool    `json:"assistantLoading"`
	AssistantReply   string  `json:"assistantReply,omitempty"`
	TourRunning      bool    `json:"tourRunning"`
	ScrollY          float64 `json:"scrollY"`
	ViewportH        float64 `json:"viewportH"`
}

type State struct {
	mu sync.RWMutex
	s  Snapshot
	// maxScroll bounds SetScroll; 0 means unbounded.
	maxScroll float64
}

func New(viewportH float64) *State {
	return &State{s: Snapshot{ViewportH: viewportH}}
}

func (v *State) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.s
}

func (v *State) SetLoaded(b bool) {
	v.mu.Lock()
	v.s.Loaded = b
	v.mu.Unlock()
}

// ToggleHistory flips the history panel and returns the new value.
func (v *State) ToggleHistory() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.ShowHistory = !v.s.ShowHistory
	return v.s.ShowHistory
}

func (v *State) SetMusicPlaying(b bool) {
	v.mu.Lock()
	v.s.MusicPlaying = b
	v.mu.Unlock()
}

func (v *State) SetTourRunning(b bool) {
	v.mu.Lock()
	v.s.TourRunning = b
	v.mu.Unlock()
}

// BeginAssistant marks a request in flight. It returns false if one already is.
func (v *State) BeginAssistant() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.s.AssistantLoading {
		return false
	}
	v.s.AssistantLoading = true
	return true
}

// EndAssistant stores the reply and clears the loading flag.
func (v *State) EndAssistant(reply string) {
	v.mu.Lock()
	v.s.AssistantLoading = false
	v.s.AssistantReply = reply
	v.mu.Unlock()
}

// SetScrollBounds limits future SetScroll calls to [0, max].
func (v *State) SetScrollBounds(max float64) {
	v.mu.Lock()
	v.maxScroll = max
	v.s.ScrollY = v.clampScroll(v.s.ScrollY)
	v.mu.Unlock()
}

func (v *State) SetScroll(y float64) {
	v.mu.Lock()
	v.s.ScrollY = v.clampScroll(y)
	v.mu.Unlock()
}

// ScrollBy moves the scroll position by dy and returns the new position.
func (v *State) ScrollBy(dy float64) float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.ScrollY = v.clampScroll(v.s.ScrollY + dy)
	return v.s.ScrollY
}

func (v *State) SetViewport(h float64) {
	if h <= 0 {
		return
	}
	v.mu.Lock()
	v.s.ViewportH = h
	v.mu.Unlock()
}

// caller holds mu
func (v *State) clampScroll(y float64) float64 {
	if y < 0 {
		return 0
	}
	if v.maxScroll > 0 && y > v.maxScroll {
		return v.maxScroll
	}
	return y
}
