package music

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peak(s beep.Streamer, n int) float64 {
	buf := make([][2]float64, n)
	got, _ := s.Stream(buf)
	m := 0.0
	for i := 0; i < got; i++ {
		m = math.Max(m, math.Abs(buf[i][0]))
	}
	return m
}

type recordingOutput struct {
	played beep.Streamer
	locks  int
}

func (r *recordingOutput) Play(s beep.Streamer) { r.played = s }
func (r *recordingOutput) Lock()                { r.locks++ }
func (r *recordingOutput) Unlock()              {}

func TestJukeboxStartsPaused(t *testing.T) {
	j := NewJukebox(DefaultSampleRate, 150, 0.5)
	assert.False(t, j.Playing())
	assert.Equal(t, 0.0, peak(j.Streamer(), 4096))
}

func TestToggle(t *testing.T) {
	j := NewJukebox(DefaultSampleRate, 150, 0.5)
	out := &recordingOutput{}
	j.Attach(out)
	require.NotNil(t, out.played)

	assert.True(t, j.Toggle())
	assert.True(t, j.Playing())
	p := peak(j.Streamer(), 4096)
	assert.Greater(t, p, 0.05)
	assert.LessOrEqual(t, p, 0.5+1e-9)

	assert.False(t, j.Toggle())
	assert.Equal(t, 0.0, peak(j.Streamer(), 1024))
	assert.Equal(t, 2, out.locks)
}

func TestChimeWhilePaused(t *testing.T) {
	j := NewJukebox(DefaultSampleRate, 150, 0.5)
	mix := j.Streamer()
	j.Chime()
	assert.Greater(t, peak(mix, 2048), 0.01)
	// the bell is a one-shot
	long := make([][2]float64, DefaultSampleRate.N(400*time.Millisecond))
	j.Streamer().Stream(long)
	assert.Equal(t, 0.0, peak(j.Streamer(), 1024))
}

func TestChimeWithoutListenerIsDropped(t *testing.T) {
	j := NewJukebox(DefaultSampleRate, 150, 0.5)
	for i := 0; i < 5; i++ {
		j.Chime()
	}
	assert.Equal(t, 1, j.mixer.Len())

	j.Attach(&recordingOutput{})
	j.Chime()
	assert.Equal(t, 2, j.mixer.Len())
}

func TestMelodyLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	beats := 0.0
	for _, n := range MerryChristmas {
		beats += n.Beats
	}
	want := rate.N(time.Duration(beats * float64(time.Minute) / 120))

	s := Melody(MerryChristmas, 120, rate)
	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.InDelta(t, want, total, float64(len(MerryChristmas)))
}

func TestMidiFreq(t *testing.T) {
	assert.InDelta(t, 440.0, midiFreq(69), 1e-9)
	assert.InDelta(t, 293.66, midiFreq(d4), 0.01)
}
