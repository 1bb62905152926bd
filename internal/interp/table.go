package interp

import (
	"fmt"
	"math"
)

// ControlPoint is one vertex of a piecewise-linear curve.
type ControlPoint struct {
	In  float64 `yaml:"in" json:"in"`
	Out float64 `yaml:"out" json:"out"`
}

// ConfigurationError reports a control table that cannot be evaluated.
type ConfigurationError struct {
	Table  string
	Index  int // offending point, -1 when the whole table is at fault
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("interp: table %q: %s", e.Table, e.Reason)
	}
	return fmt.Sprintf("interp: table %q point %d: %s", e.Table, e.Index, e.Reason)
}

// Table is a validated, immutable control point set.
type Table struct {
	pts []ControlPoint
}

// NewTable validates points and returns a table ready for evaluation.
// Inputs must be finite and strictly increasing; at least two points are required.
func NewTable(name string, points ...ControlPoint) (*Table, error) {
	if len(points) < 2 {
		return nil, &ConfigurationError{Table: name, Index: -1, Reason: "need at least two control points"}
	}
	for i, p := range points {
		if math.IsNaN(p.In) || math.IsInf(p.In, 0) || math.IsNaN(p.Out) || math.IsInf(p.Out, 0) {
			return nil, &ConfigurationError{Table: name, Index: i, Reason: "non-finite value"}
		}
		if i > 0 && p.In <= points[i-1].In {
			reason := "input not strictly increasing"
			if p.In == points[i-1].In {
				reason = fmt.Sprintf("duplicate input %v", p.In)
			}
			return nil, &ConfigurationError{Table: name, Index: i, Reason: reason}
		}
	}
	pts := make([]ControlPoint, len(points))
	copy(pts, points)
	return &Table{pts: pts}, nil
}

// MustTable is NewTable for package-level constants; it panics on a bad table.
func MustTable(name string, points ...ControlPoint) *Table {
	t, err := NewTable(name, points...)
	if err != nil {
		panic(err)
	}
	return t
}

// Pairs builds control points from alternating in/out values.
func Pairs(vals ...float64) []ControlPoint {
	out := make([]ControlPoint, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		out = append(out, ControlPoint{In: vals[i], Out: vals[i+1]})
	}
	return out
}

// Points returns a copy of the control points.
func (t *Table) Points() []ControlPoint {
	out := make([]ControlPoint, len(t.pts))
	copy(out, t.pts)
	return out
}

// Eval maps p through the curve. Inputs outside the table extrapolate along
// the nearest boundary segment; there is no clamping.
func (t *Table) Eval(p float64) float64 {
	n := len(t.pts)
	seg := n - 2 // last segment, also used for p beyond the end
	if p <= t.pts[0].In {
		seg = 0
	} else {
		for i := 0; i < n-1; i++ {
			if p <= t.pts[i+1].In {
				seg = i
				break
			}
		}
	}
	a, b := t.pts[seg], t.pts[seg+1]
	// exact hits return the stored value with no arithmetic drift
	if p == a.In {
		return a.Out
	}
	if p == b.In {
		return b.Out
	}
	return Lerp(a.Out, b.Out, InvLerp(a.In, b.In, p))
}

// Slope returns the gradient of segment i.
func (t *Table) Slope(i int) float64 {
	a, b := t.pts[i], t.pts[i+1]
	return (b.Out - a.Out) / (b.In - a.In)
}

// Segments is the number of linear pieces in the table.
func (t *Table) Segments() int { return len(t.pts) - 1 }
