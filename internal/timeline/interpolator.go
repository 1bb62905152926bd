package timeline

import (
	"fmt"
	"strconv"

	"github.com/coreman2200/funtimes-santatrack/internal/interp"
)

// VisualState is what one timeline card looks like at a given progress.
type VisualState struct {
	RotateX    float64 `json:"rotateX"`    // degrees
	TranslateZ float64 `json:"translateZ"` // px, negative is away from the viewer
	Scale      float64 `json:"scale"`
	Opacity    float64 `json:"opacity"`
	Blur       float64 `json:"blur"` // px
}

// Filter renders the blur radius as a CSS filter value.
func (v VisualState) Filter() string {
	return "blur(" + fmtNum(v.Blur) + "px)"
}

// Transform renders rotation, depth and scale as a CSS transform value.
func (v VisualState) Transform() string {
	return fmt.Sprintf("rotateX(%sdeg) translateZ(%spx) scale(%s)", fmtNum(v.RotateX), fmtNum(v.TranslateZ), fmtNum(v.Scale))
}

func fmtNum(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// Tables holds one control table per visual parameter.
type Tables struct {
	RotateX    []interp.ControlPoint `yaml:"rotate_x"`
	TranslateZ []interp.ControlPoint `yaml:"translate_z"`
	Scale      []interp.ControlPoint `yaml:"scale"`
	Opacity    []interp.ControlPoint `yaml:"opacity"`
	Blur       []interp.ControlPoint `yaml:"blur"`
}

// DefaultTables is the "casino wheel" curve set: cards tilt in from below,
// face the viewer at mid-screen and tilt away at the top.
func DefaultTables() Tables {
	return Tables{
		RotateX:    interp.Pairs(0, 60, 0.5, 0, 1, -60),
		TranslateZ: interp.Pairs(0, -400, 0.5, 0, 1, -400),
		Scale:      interp.Pairs(0, 0.6, 0.5, 1, 1, 0.6),
		Opacity:    interp.Pairs(0, 0, 0.2, 1, 0.5, 1, 0.8, 1, 1, 0),
		Blur:       interp.Pairs(0, 15, 0.2, 0, 0.5, 0, 0.8, 0, 1, 15),
	}
}

// ScrollInterpolator maps scroll progress to a VisualState. It holds no
// mutable state, so one instance serves every entry.
type ScrollInterpolator struct {
	rotateX, translateZ, scale, opacity, blur *interp.Table
}

var defaultInterpolator = mustInterpolator(DefaultTables())

// Default returns the interpolator built from DefaultTables.
func Default() *ScrollInterpolator { return defaultInterpolator }

// NewScrollInterpolator validates all five tables; a bad one yields an
// *interp.ConfigurationError.
func NewScrollInterpolator(t Tables) (*ScrollInterpolator, error) {
	var (
		s   ScrollInterpolator
		err error
	)
	build := []struct {
		name string
		pts  []interp.ControlPoint
		dst  **interp.Table
	}{
		{"rotate_x", t.RotateX, &s.rotateX},
		{"translate_z", t.TranslateZ, &s.translateZ},
		{"scale", t.Scale, &s.scale},
		{"opacity", t.Opacity, &s.opacity},
		{"blur", t.Blur, &s.blur},
	}
	for _, b := range build {
		if *b.dst, err = interp.NewTable(b.name, b.pts...); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func mustInterpolator(t Tables) *ScrollInterpolator {
	s, err := NewScrollInterpolator(t)
	if err != nil {
		panic(err)
	}
	return s
}

// Eval derives all five parameters from progress. Progress outside [0,1]
// extrapolates.
func (s *ScrollInterpolator) Eval(progress float64) VisualState {
	return VisualState{
		RotateX:    s.rotateX.Eval(progress),
		TranslateZ: s.translateZ.Eval(progress),
		Scale:      s.scale.Eval(progress),
		Opacity:    s.opacity.Eval(progress),
		Blur:       s.blur.Eval(progress),
	}
}
