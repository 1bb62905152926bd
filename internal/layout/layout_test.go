package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxStacksEntries(t *testing.T) {
	l := Layout{TopOffset: 1000, EntryHeight: 400, Gap: 24, LastPad: 240, N: 3}

	assert.Equal(t, Box{Top: 1000, Height: 400}, l.Box(0))
	assert.Equal(t, Box{Top: 1424, Height: 400}, l.Box(1))
	assert.Equal(t, Box{Top: 1848, Height: 640}, l.Box(2))
	assert.Equal(t, 3, l.Count())
	assert.Equal(t, 2488.0, l.TotalHeight())
}

func TestMaxScroll(t *testing.T) {
	l := Layout{TopOffset: 100, EntryHeight: 100, N: 2}
	assert.Equal(t, 100.0, l.MaxScroll(200))
	assert.Equal(t, 0.0, l.MaxScroll(5000))
	assert.Equal(t, 100.0, Layout{TopOffset: 100}.TotalHeight())
}
