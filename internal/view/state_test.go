package view

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetters(t *testing.T) {
	v := New(800)
	assert.Equal(t, Snapshot{ViewportH: 800}, v.Snapshot())

	v.SetLoaded(true)
	assert.True(t, v.ToggleHistory())
	assert.False(t, v.ToggleHistory())
	v.SetMusicPlaying(true)
	v.SetViewport(-1)

	s := v.Snapshot()
	assert.True(t, s.Loaded)
	assert.True(t, s.MusicPlaying)
	assert.Equal(t, 800.0, s.ViewportH)
}

func TestAssistantSingleFlight(t *testing.T) {
	v := New(800)
	assert.True(t, v.BeginAssistant())
	assert.False(t, v.BeginAssistant())
	assert.True(t, v.Snapshot().AssistantLoading)

	v.EndAssistant("hello")
	s := v.Snapshot()
	assert.False(t, s.AssistantLoading)
	assert.Equal(t, "hello", s.AssistantReply)
	assert.True(t, v.BeginAssistant())
}

func TestScrollBounds(t *testing.T) {
	v := New(800)
	v.SetScroll(-50)
	assert.Equal(t, 0.0, v.Snapshot().ScrollY)

	v.SetScroll(5000)
	v.SetScrollBounds(1200)
	assert.Equal(t, 1200.0, v.Snapshot().ScrollY)
	assert.Equal(t, 1100.0, v.ScrollBy(-100))
	assert.Equal(t, 1200.0, v.ScrollBy(1000))
}

func TestConcurrentBegin(t *testing.T) {
	v := New(800)
	var wg sync.WaitGroup
	var mu sync.Mutex
	won := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v.BeginAssistant() {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, won)
}
