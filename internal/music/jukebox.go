package music

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

const DefaultSampleRate = beep.SampleRate(44100)

// Output is where the jukebox mix goes. Lock/Unlock guard changes made
// while the output is pulling samples.
type Output interface {
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

type nullOutput struct{}

func (nullOutput) Play(beep.Streamer) {}
func (nullOutput) Lock()              {}
func (nullOutput) Unlock()            {}

// Jukebox loops the background track behind a pause control and mixes
// one-shot chimes on top.
type Jukebox struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	music  *beep.Ctrl
	mixer  *beep.Mixer
	out    Output
	volume float64
	// drained is set once something pulls from the mixer
	drained bool
}

func NewJukebox(rate beep.SampleRate, bpm, volume float64) *Jukebox {
	if bpm <= 0 {
		bpm = 150
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(Melody(MerryChristmas, bpm, rate))

	j := &Jukebox{
		rate:   rate,
		music:  &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len())), Paused: true},
		mixer:  &beep.Mixer{},
		out:    nullOutput{},
		volume: volume,
	}
	j.mixer.Add(withVolume(j.music, volume))
	return j
}

// Attach starts feeding the mix to out. Call once.
func (j *Jukebox) Attach(out Output) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.out = out
	j.drained = true
	out.Play(j.mixer)
}

// Streamer exposes the mix for callers that pull samples themselves.
func (j *Jukebox) Streamer() beep.Streamer {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.drained = true
	return j.mixer
}

func (j *Jukebox) Playing() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return !j.music.Paused
}

// Toggle pauses or resumes the track and reports whether it now plays.
func (j *Jukebox) Toggle() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.out.Lock()
	j.music.Paused = !j.music.Paused
	playing := !j.music.Paused
	j.out.Unlock()
	return playing
}

// Chime plays the short bell used when the elf radio is called. With nobody
// pulling from the mix it is dropped.
func (j *Jukebox) Chime() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.drained {
		return
	}
	j.out.Lock()
	j.mixer.Add(Bell(j.rate))
	j.out.Unlock()
}

// Bell is two sine partials, 250 ms at volume 0.3.
func Bell(rate beep.SampleRate) beep.Streamer {
	n := rate.N(250 * time.Millisecond)
	hi, err := generators.SineTone(rate, 1318.5)
	if err != nil {
		return beep.Silence(n)
	}
	lo, err := generators.SineTone(rate, 659.25)
	if err != nil {
		return beep.Silence(n)
	}
	mixed := beep.Mix(
		withVolume(beep.Take(n, hi), 0.5),
		withVolume(beep.Take(n, lo), 0.5),
	)
	return beep.Take(n, withVolume(mixed, 0.3))
}
