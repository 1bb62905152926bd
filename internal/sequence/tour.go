package sequence

// Stop is one pause point of a generated tour.
type Stop struct {
	ScrollY float64
	DwellS  float64
}

// TourThrough builds a program that glides between stops with smooth easing,
// dwelling at each one for its DwellS.
func TourThrough(stops []Stop, travelS float64, loop bool) Program {
	prog := Program{Version: "tour.v1", Loop: loop}
	t := 0.0
	for i, s := range stops {
		if i > 0 {
			t += travelS
		}
		prog.Scroll.Keys = append(prog.Scroll.Keys, Keyframe{T: t, V: s.ScrollY})
		t += s.DwellS
		prog.Scroll.Keys = append(prog.Scroll.Keys, Keyframe{T: t, V: s.ScrollY, Ease: "smooth"})
	}
	return prog
}
