//go:build nosound

package device

import (
	"errors"

	"github.com/gopxl/beep"
)

// ErrNoSound is returned by builds without an audio backend.
var ErrNoSound = errors.New("device: built with nosound")

type Speaker struct{}

func Open(beep.SampleRate) (Speaker, error) { return Speaker{}, ErrNoSound }

func (Speaker) Play(beep.Streamer) {}
func (Speaker) Lock()              {}
func (Speaker) Unlock()            {}
func (Speaker) Close()             {}
