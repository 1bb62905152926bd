package interp

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestNewTableRejectsDegenerate(t *testing.T) {
	cases := []struct {
		name string
		pts  []ControlPoint
	}{
		{"duplicate input", Pairs(0, 1, 0.5, 2, 0.5, 3, 1, 4)},
		{"two points same input", Pairs(0.5, 0, 0.5, 1)},
		{"decreasing", Pairs(0, 1, 0.6, 2, 0.4, 3)},
		{"single point", Pairs(0, 1)},
		{"empty", nil},
		{"nan input", []ControlPoint{{In: 0}, {In: math.NaN(), Out: 1}}},
		{"inf output", []ControlPoint{{In: 0}, {In: 1, Out: math.Inf(1)}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tbl, err := NewTable(c.name, c.pts...)
			require.Error(t, err)
			assert.Nil(t, tbl)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "want *ConfigurationError, got %T", err)
			assert.Equal(t, c.name, cfgErr.Table)
		})
	}
}

func TestMustTablePanics(t *testing.T) {
	assert.Panics(t, func() { MustTable("bad", Pairs(0.5, 0, 0.5, 1)...) })
}

func TestEvalHitsControlPoints(t *testing.T) {
	tbl := MustTable("opacity", Pairs(0, 0, 0.2, 1, 0.5, 1, 0.8, 1, 1, 0)...)
	for _, p := range tbl.Points() {
		assert.InDelta(t, p.Out, tbl.Eval(p.In), eps, "at %v", p.In)
	}
}

func TestEvalLinearWithinSegments(t *testing.T) {
	tbl := MustTable("blur", Pairs(0, 15, 0.2, 0, 0.5, 0, 0.8, 0, 1, 15)...)
	pts := tbl.Points()
	for i := 0; i < tbl.Segments(); i++ {
		a, b := pts[i], pts[i+1]
		prev := tbl.Eval(a.In)
		for _, f := range []float64{0.25, 0.5, 0.75} {
			x := a.In + (b.In-a.In)*f
			want := a.Out + (b.Out-a.Out)*(x-a.In)/(b.In-a.In)
			got := tbl.Eval(x)
			assert.InDelta(t, want, got, eps, "segment %d at %v", i, x)
			switch {
			case b.Out > a.Out:
				assert.Greater(t, got, prev)
			case b.Out < a.Out:
				assert.Less(t, got, prev)
			default:
				assert.InDelta(t, prev, got, eps)
			}
			prev = got
		}
	}
}

func TestEvalExtrapolates(t *testing.T) {
	tbl := MustTable("rotation", Pairs(0, 60, 0.5, 0, 1, -60)...)
	assert.InDelta(t, 60+0.1*120, tbl.Eval(-0.1), eps)
	assert.InDelta(t, -60-0.1*120, tbl.Eval(1.1), eps)
	assert.InDelta(t, tbl.Slope(0), (tbl.Eval(-0.1)-tbl.Eval(0))/-0.1, 1e-6)
	assert.InDelta(t, tbl.Slope(1), (tbl.Eval(1.1)-tbl.Eval(1))/0.1, 1e-6)
}

func TestEvalIsPure(t *testing.T) {
	tbl := MustTable("scale", Pairs(0, 0.6, 0.5, 1, 1, 0.6)...)
	for _, p := range []float64{-3, 0, 0.123456789, 0.5, 0.987, 7} {
		a := tbl.Eval(p)
		b := tbl.Eval(p)
		assert.Equal(t, math.Float64bits(a), math.Float64bits(b))
	}
}

func TestNewTableCopiesInput(t *testing.T) {
	pts := Pairs(0, 0, 1, 10)
	tbl := MustTable("copy", pts...)
	pts[1].Out = 99
	assert.InDelta(t, 10.0, tbl.Eval(1), eps)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3.0, 0, 1))
	assert.Equal(t, 0, Clamp(-2, 0, 5))
	assert.Equal(t, 0.25, Clamp(0.25, 0, 1))
}
