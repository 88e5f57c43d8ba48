package funnel

import "math"

// ReflowSideLabels stacks side labels so their vertical ranges do not
// overlap. side is ordered bottom to top, as produced by the scaler, so the
// visually topmost label is last.
//
// The first pass walks top to bottom, pushing each label below its upper
// neighbour. If that pushes the lowest label past height, a second pass walks
// bottom to top from height-1, pulling each label above its lower neighbour,
// and finally shifts the column down if the topmost label went above y=0. A
// column that fits after the first pass is left alone, so a thin top slice can
// leave its label starting above y=0.
func ReflowSideLabels(side []*Point, height, labelSpace float64) {
	n := len(side)
	if n == 0 {
		return
	}

	prevBottom := math.Inf(-1)
	for i := n - 1; i >= 0; i-- {
		p := side[i]
		p.LabelTop = math.Max(prevBottom, p.LabelTop)
		p.LabelBottom = p.LabelTop + p.LabelHeight + labelSpace
		prevBottom = p.LabelBottom
	}
	if prevBottom <= height {
		return
	}

	for i, p := range side {
		bottom := height - 1
		if i > 0 {
			natural := p.Mid() + p.LabelHeight/2 + labelSpace
			bottom = math.Min(side[i-1].LabelTop, natural)
		}
		p.LabelBottom = bottom
		p.LabelTop = bottom - p.LabelHeight - labelSpace
	}

	if top := side[n-1].LabelTop; top < 0 {
		for _, p := range side {
			p.LabelTop -= top
			p.LabelBottom -= top
		}
	}
}

// Intrusion returns how far p's label, plus its leader run, reaches past the
// funnel's left edge at the slice bottom. Non-positive values mean the label
// fits in the space the funnel's slope already leaves free.
func Intrusion(p *Point, slope, labelGap float64) float64 {
	leaderSlope := math.Abs(p.LabelBottom+labelGap-p.Bottom) * slope
	return p.LabelWidth + leaderSlope + 3*labelGap - slope*p.Bottom
}

// CalcOffsets returns the horizontal offset of the funnel and of the side
// label column given the natural side margin. The funnel only gives up width
// when the widest intrusion exceeds the margin; otherwise the label column is
// pulled left into the margin.
func CalcOffsets(side []*Point, slope, labelGap, sideMargin float64) (funnelOffset, labelOffset float64) {
	intrusion := 0.0
	for _, p := range side {
		intrusion = math.Max(intrusion, Intrusion(p, slope, labelGap))
	}

	switch {
	case intrusion <= 0:
		return sideMargin, sideMargin
	case intrusion < sideMargin:
		return sideMargin, sideMargin - intrusion
	default:
		return intrusion, 0
	}
}
