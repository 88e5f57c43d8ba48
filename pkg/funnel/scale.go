package funnel

// ScaleSegments converts point values into slice heights, walking from the
// narrow bottom of the funnel to its wide top. Each point receives a share of
// the funnel's area proportional to its value.
//
// Slices shorter than minHeight are raised to minHeight and the deficit is
// taken from the next slice tall enough to absorb it. When no later slice can
// absorb the deficit the funnel ends up slightly taller than height; callers
// accept this.
func ScaleSegments(points []Point, width, height, slope, minHeight float64) {
	var total float64
	for _, p := range points {
		total += p.Value
	}

	area := AreaOfTrapezoid(height, width, slope)
	base := width - 2*slope*height
	bottom := height
	var shift float64

	for i := range points {
		p := &points[i]

		var h float64
		if total > 0 {
			h = HeightForArea(area*p.Value/total, base, slope)
			if h < minHeight {
				shift += h - minHeight
				h = minHeight
			} else if shift < 0 && h+shift > minHeight {
				h += shift
				shift = 0
			}
		}

		p.Height = h
		p.Base = base
		p.Bottom = bottom
		p.Top = bottom - h

		base += 2 * slope * h
		bottom -= h
	}
}
