package sequence

import (
	"errors"
	"sync"
)

func NewPlayer(h Hooks) *Player {
	return &Player{State: Idle, hooks: h}
}

// Load replaces the current tour and resets to Idle.
func (p *Player) Load(prog Program) error {
	if len(prog.Scroll.Keys) == 0 {
		return errors.New("tour has no keyframes")
	}
	for i := 1; i < len(prog.Scroll.Keys); i++ {
		if prog.Scroll.Keys[i].T < prog.Scroll.Keys[i-1].T {
			return errors.New("tour keyframes not sorted by time")
		}
	}
	p.prog = prog
	p.nowS = 0
	p.State = Idle
	return nil
}

// Start moves to Running and emits the first position.
func (p *Player) Start() {
	if p.State == Running || len(p.prog.Scroll.Keys) == 0 {
		return
	}
	p.State = Running
	p.emit()
}

func (p *Player) Pause() {
	if p.State == Running {
		p.State = Paused
	}
}

func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop halts and rewinds.
func (p *Player) Stop() {
	p.State = Idle
	p.nowS = 0
}

// Now is the position within the tour in seconds.
func (p *Player) Now() float64 { return p.nowS }

func (p *Player) totalDuration() float64 {
	return p.prog.Scroll.Duration() + p.prog.HoldS
}

// Seek jumps to t, clamped into [0, total], and emits the position.
func (p *Player) Seek(t float64) {
	if len(p.prog.Scroll.Keys) == 0 {
		return
	}
	if t < 0 {
		t = 0
	}
	if total := p.totalDuration(); t > total {
		t = total
	}
	p.nowS = t
	p.emit()
}

// Tick advances the tour by dt seconds.
func (p *Player) Tick(dt float64) {
	if p.State != Running || dt <= 0 {
		return
	}
	p.nowS += dt
	total := p.totalDuration()
	if p.nowS >= total {
		if p.prog.Loop && total > 0 {
			for p.nowS >= total {
				p.nowS -= total
			}
		} else {
			p.nowS = total
			p.emit()
			p.State = Idle
			if p.hooks.Done != nil {
				p.hooks.Done()
			}
			return
		}
	}
	p.emit()
}

func (p *Player) emit() {
	if p.hooks.SetScroll != nil {
		p.hooks.SetScroll(p.prog.Scroll.Eval(p.nowS))
	}
}

type SafePlayer struct {
	mu sync.Mutex
	P  *Player
}

func NewSafePlayer(h Hooks) *SafePlayer {
	return &SafePlayer{P: NewPlayer(h)}
}

func (s *SafePlayer) With(f func(p *Player)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.P)
}
