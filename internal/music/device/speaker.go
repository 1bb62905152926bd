//go:build !nosound

// Package device sends the jukebox mix to the sound card. It is kept apart
// from package music so headless builds never link the audio backend.
package device

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/coreman2200/funtimes-santatrack/internal/music"
)

var _ music.Output = Speaker{}

// Speaker sends audio to the default sound device.
type Speaker struct{}

// Open initialises the device with a 100 ms buffer.
func Open(rate beep.SampleRate) (Speaker, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return Speaker{}, err
	}
	return Speaker{}, nil
}

func (Speaker) Play(s beep.Streamer) { speaker.Play(s) }
func (Speaker) Lock()                { speaker.Lock() }
func (Speaker) Unlock()              { speaker.Unlock() }
func (Speaker) Close()               { speaker.Close() }
