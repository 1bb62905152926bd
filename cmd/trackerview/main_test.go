package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-santatrack/internal/app"
	"github.com/coreman2200/funtimes-santatrack/internal/config"
)

func TestHandleActions(t *testing.T) {
	core, err := app.InitCore(app.Deps{Config: config.Defaults()})
	require.NoError(t, err)
	ctx := context.Background()

	assert.True(t, handle(ctx, core, actDown))
	assert.Equal(t, scrollStep, core.View.Snapshot().ScrollY)
	assert.True(t, handle(ctx, core, actPageDown))
	assert.Equal(t, scrollStep+900*0.8, core.View.Snapshot().ScrollY)
	handle(ctx, core, actPageUp)
	handle(ctx, core, actUp)
	assert.Equal(t, 0.0, core.View.Snapshot().ScrollY)

	handle(ctx, core, actMusic)
	handle(ctx, core, actHistory)
	snap := core.View.Snapshot()
	assert.True(t, snap.MusicPlaying)
	assert.True(t, snap.ShowHistory)

	handle(ctx, core, actTour)
	assert.True(t, core.TourRunning())
	handle(ctx, core, actTour)
	assert.False(t, core.TourRunning())

	assert.True(t, handle(ctx, core, actNone))
	assert.False(t, handle(ctx, core, actQuit))
}
