package render

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-santatrack/internal/layout"
	"github.com/coreman2200/funtimes-santatrack/internal/timeline"
	"github.com/coreman2200/funtimes-santatrack/internal/view"
)

// fakeDriver captures the last frame written.
type fakeDriver struct {
	last  Frame
	count int
	err   error
}

func (d *fakeDriver) Write(fr Frame) error {
	d.last = fr
	d.count++
	return d.err
}

func newTestEngine(t *testing.T, drv Driver) (*Engine, *view.State) {
	t.Helper()
	tl := timeline.New([]string{"a", "b"}, layout.Layout{TopOffset: 1000, EntryHeight: 400, Gap: 100})
	v := view.New(800)
	e, err := NewEngine(tl, v, drv)
	require.NoError(t, err)
	return e, v
}

func TestNewEngineValidates(t *testing.T) {
	_, err := NewEngine(nil, view.New(1), nil)
	assert.Error(t, err)
	_, err = NewEngine(timeline.New(nil, layout.Layout{}), nil, nil)
	assert.Error(t, err)
}

func TestRenderOnceSamplesScroll(t *testing.T) {
	drv := &fakeDriver{}
	e, v := newTestEngine(t, drv)

	v.SetScroll(800)
	fr, err := e.RenderOnce()
	require.NoError(t, err)

	assert.Equal(t, uint64(1), fr.FrameID)
	assert.Equal(t, fr, drv.last)
	require.Len(t, fr.Entries, 2)
	assert.InDelta(t, 0.5, fr.Entries[0].Progress, 1e-9)
	assert.InDelta(t, 1.0, fr.Entries[0].Visual.Opacity, 1e-9)
	assert.Equal(t, 0, fr.Focus)
	assert.Equal(t, 800.0, fr.View.ScrollY)

	v.SetScroll(1300)
	fr, _ = e.RenderOnce()
	assert.Equal(t, uint64(2), e.FrameID())
	assert.Equal(t, 1, fr.Focus)
}

func TestUptimeAdvances(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	first := e.Uptime()
	assert.GreaterOrEqual(t, first, 0.0)
	time.Sleep(2 * time.Millisecond)
	assert.Greater(t, e.Uptime(), first)
}

func TestRenderOnceReportsDriverError(t *testing.T) {
	boom := errors.New("gone")
	e, _ := newTestEngine(t, &fakeDriver{err: boom})
	fr, err := e.RenderOnce()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(1), fr.FrameID)
}

func TestMulti(t *testing.T) {
	a, b := &fakeDriver{}, &fakeDriver{err: errors.New("b")}
	e, _ := newTestEngine(t, Multi(a, nil, b))
	_, err := e.RenderOnce()
	assert.EqualError(t, err, "b")
	assert.Equal(t, 1, a.count)
	assert.Equal(t, 1, b.count)
}
