package layout

// Box is the vertical extent of one timeline entry in page coordinates (px).
type Box struct {
	Top    float64
	Height float64
}

func (b Box) Bottom() float64 { return b.Top + b.Height }

// Layout stacks timeline entries top to bottom below a fixed page header.
type Layout struct {
	TopOffset   float64 // header + hero height before the first entry
	EntryHeight float64
	Gap         float64
	// LastPad is the extra bottom padding the final card carries.
	LastPad float64
	N       int
}

// Box maps an entry index (0..N-1) to its box on the page.
func (l Layout) Box(i int) Box {
	top := l.TopOffset + float64(i)*(l.EntryHeight+l.Gap)
	h := l.EntryHeight
	if i == l.N-1 {
		h += l.LastPad
	}
	return Box{Top: top, Height: h}
}

func (l Layout) Count() int {
	return l.N
}

// TotalHeight is the scrollable page height including the last entry.
func (l Layout) TotalHeight() float64 {
	if l.N == 0 {
		return l.TopOffset
	}
	return l.Box(l.N - 1).Bottom()
}

// MaxScroll is the largest scrollY that keeps the viewport on the page.
func (l Layout) MaxScroll(viewportH float64) float64 {
	m := l.TotalHeight() - viewportH
	if m < 0 {
		return 0
	}
	return m
}
