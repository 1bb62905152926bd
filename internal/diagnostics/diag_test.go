package diagnostics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFanoutStampsAndSkipsNil(t *testing.T) {
	var got []Diagnostic
	rec := SinkFunc(func(d Diagnostic) { got = append(got, d) })

	Fanout(rec, nil, rec).Push(Diagnostic{Severity: Info, Code: SplashDone})
	assert.Len(t, got, 2)
	assert.False(t, got[0].At.IsZero())
	assert.Equal(t, got[0].At, got[1].At)

	at := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	got = nil
	Fanout(rec).Push(Diagnostic{Code: TourDone, At: at})
	assert.Equal(t, at, got[0].At)

	assert.NotPanics(t, func() { Discard.Push(Diagnostic{}) })
}
