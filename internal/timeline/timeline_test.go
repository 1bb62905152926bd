package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-santatrack/internal/layout"
)

func testTimeline() *Timeline {
	return New([]string{"a", "b", "c"}, layout.Layout{TopOffset: 1000, EntryHeight: 400, Gap: 100})
}

func TestProgressWindow(t *testing.T) {
	box := layout.Box{Top: 1000, Height: 400}
	// top of the card meets the viewport bottom
	assert.InDelta(t, 0.0, Progress(200, 800, box), eps)
	// bottom of the card leaves through the viewport top
	assert.InDelta(t, 1.0, Progress(1400, 800, box), eps)
	assert.InDelta(t, 0.5, Progress(800, 800, box), eps)
	// not clamped
	assert.Less(t, Progress(0, 800, box), 0.0)
	assert.Equal(t, 0.0, Progress(0, 0, layout.Box{}))
}

func TestSampleEntriesAreIndependent(t *testing.T) {
	tl := testTimeline()
	frames := tl.Sample(800, 800)
	require.Len(t, frames, 3)

	assert.Equal(t, "a", frames[0].ID)
	assert.InDelta(t, 0.5, frames[0].Progress, eps)
	assert.True(t, frames[0].Visible)
	assertVisual(t, Default().Eval(0.5), frames[0].Visual)
	assert.Equal(t, frames[0].Visual.Filter(), frames[0].Filter)

	// b starts 500px lower, so it is 500/1200 behind a
	assert.InDelta(t, 0.5-500.0/1200.0, frames[1].Progress, eps)
	assert.False(t, frames[2].Visible)
	assert.Less(t, frames[2].Progress, 0.0)

	// sampling another entry set does not change a's result
	solo := New([]string{"a"}, tl.Layout).Sample(800, 800)
	assert.Equal(t, frames[0], solo[0])
}

func TestScrollForRoundTrip(t *testing.T) {
	tl := testTimeline()
	y := tl.ScrollFor(1, 0.5, 800)
	assert.InDelta(t, 0.5, Progress(y, 800, tl.Layout.Box(1)), eps)
	assert.Equal(t, 1, tl.Focus(y, 800))
	assert.Equal(t, -1, New(nil, layout.Layout{}).Focus(0, 800))
}
