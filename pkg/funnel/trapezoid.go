package funnel

import "math"

// HeightForArea returns the height of a trapezoid with the given area whose
// narrow edge is base wide and which widens by 2·slope per unit of height.
// It is the positive root of area = h·base + slope·h².
func HeightForArea(area, base, slope float64) float64 {
	if area <= 0 || slope == 0 {
		return 0
	}
	half := base / slope / 2
	return math.Sqrt(area/slope+half*half) - half
}

// AreaOfTrapezoid returns the area of a trapezoid of the given height whose
// wide edge is width and which narrows by 2·slope per unit of height.
func AreaOfTrapezoid(height, width, slope float64) float64 {
	return height * (width - height*slope)
}

// PointsForSlice returns the corners of p's slice as a closed polygon:
// bottom-left, top-left, top-right, bottom-right. heightFactor scales every y
// coordinate, so 0 collapses the slice onto y=0 and 1 is the final shape.
func PointsForSlice(p Point, heightFactor, width, slope, center float64) [4]Vec {
	y0, y1 := p.Bottom, p.Top
	w0 := width/2 - slope*y0
	w1 := width/2 - slope*y1
	return [4]Vec{
		{X: center - w0, Y: y0 * heightFactor},
		{X: center - w1, Y: y1 * heightFactor},
		{X: center + w1, Y: y1 * heightFactor},
		{X: center + w0, Y: y0 * heightFactor},
	}
}
