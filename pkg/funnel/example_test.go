package funnel_test

import (
	"fmt"

	"github.com/matzehuels/funnelchart/pkg/funnel"
	"github.com/matzehuels/funnelchart/pkg/funnel/textmeasure"
)

func ExampleLayout() {
	// Stages are listed from the narrow bottom to the wide top.
	series := []funnel.Series{
		{Key: "Won", Points: []funnel.Point{{Value: 25}}},
		{Key: "Qualified", Points: []funnel.Point{{Value: 50}}},
		{Key: "Leads", Points: []funnel.Point{{Value: 100}}},
	}

	res := funnel.Layout(series, textmeasure.Fixed{}, funnel.DefaultConfig())

	fmt.Printf("width=%.0f center=%.0f passes=%d\n", res.Geometry.Width, res.Geometry.Center, res.Passes)
	fmt.Println("slices:", len(res.Slices), "side labels:", res.SideLabels())
	// Output:
	// width=545 center=400 passes=3
	// slices: 3 side labels: 0
}

func ExampleHeightForArea() {
	// A 100px slice with a 400px top edge and slope 0.3 has a 340px bottom edge.
	area := funnel.AreaOfTrapezoid(100, 400, 0.3)
	fmt.Printf("area=%.0f height=%.1f\n", area, funnel.HeightForArea(area, 340, 0.3))
	// Output:
	// area=37000 height=100.0
}

func ExampleCalculateWidth() {
	fmt.Println(funnel.CalculateWidth(800, 600, 0))
	fmt.Println(funnel.CalculateWidth(800, 600, 400))
	// Output:
	// 545
	// 400
}
