package music

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Note is one melody step; Midi 0 is a rest.
type Note struct {
	Midi  int
	Beats float64
}

func midiFreq(m int) float64 {
	return 440 * math.Pow(2, float64(m-69)/12)
}

// tone is a sine voice with a short linear attack and release so notes do
// not click at their edges.
type tone struct {
	freq    float64
	phase   float64
	pos     int
	total   int
	attack  int
	release int
	rate    beep.SampleRate
}

func newTone(freq float64, d time.Duration, rate beep.SampleRate) *tone {
	total := rate.N(d)
	edge := rate.N(8 * time.Millisecond)
	if edge*2 > total {
		edge = total / 2
	}
	return &tone{freq: freq, total: total, attack: edge, release: edge, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		amp := 1.0
		if t.pos < t.attack {
			amp = float64(t.pos) / float64(t.attack)
		} else if left := t.total - t.pos; left < t.release {
			amp = float64(left) / float64(t.release)
		}
		v := 0.0
		if t.freq > 0 {
			v = math.Sin(2*math.Pi*t.phase) * amp
			t.phase += t.freq / float64(t.rate)
			t.phase -= math.Floor(t.phase)
		}
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Melody renders notes at bpm into one streamer.
func Melody(notes []Note, bpm float64, rate beep.SampleRate) beep.Streamer {
	beat := time.Duration(float64(time.Minute) / bpm)
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		d := time.Duration(n.Beats * float64(beat))
		f := 0.0
		if n.Midi > 0 {
			f = midiFreq(n.Midi)
		}
		parts = append(parts, newTone(f, d, rate))
	}
	return beep.Seq(parts...)
}

// withVolume scales s linearly by vol; 0 mutes.
func withVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

const (
	d4  = 62
	e4  = 64
	fs4 = 66
	g4  = 67
	a4  = 69
	b4  = 71
	c5  = 72
)

// MerryChristmas is "We Wish You a Merry Christmas", the page's background track.
var MerryChristmas = []Note{
	{d4, 1},
	{g4, 1}, {g4, 0.5}, {a4, 0.5}, {g4, 0.5}, {fs4, 0.5},
	{e4, 1}, {e4, 1}, {e4, 1},
	{a4, 1}, {a4, 0.5}, {b4, 0.5}, {a4, 0.5}, {g4, 0.5},
	{fs4, 1}, {d4, 1}, {d4, 1},
	{b4, 1}, {b4, 0.5}, {c5, 0.5}, {b4, 0.5}, {a4, 0.5},
	{g4, 1}, {e4, 1}, {d4, 0.5}, {d4, 0.5},
	{e4, 1}, {a4, 1}, {fs4, 1},
	{g4, 2}, {0, 1},
}
