package funnel

import "math"

// CalculateWidth returns the funnel width for the available area after
// reserving offset pixels on the left for side labels. The width never
// exceeds availableHeight/1.1 and never drops below 40.
func CalculateWidth(availableWidth, availableHeight, offset float64) float64 {
	w := math.Min(availableHeight/aspect, availableWidth-offset)
	return math.Round(math.Max(w, minWidth))
}

// CalculateHeight returns the funnel height for a given width: 1.1·width,
// capped at the height where the narrow edge would reach its apex.
func CalculateHeight(width, slope float64) float64 {
	return math.Min(width*aspect, (width-width*slope)/(2*slope))
}

// CalculateCenter returns the x coordinate of the funnel's axis.
func CalculateCenter(width, offset float64) float64 {
	return width/2 + offset
}

// NaturalSideMargin is the left margin the funnel leaves when it is centred
// in the available width with no room reserved for labels.
func NaturalSideMargin(availableWidth, availableHeight float64) float64 {
	return math.Max(0, (availableWidth-CalculateWidth(availableWidth, availableHeight, 0))/2)
}
