package pipeline

import (
	"github.com/matzehuels/funnelchart/pkg/chart"
	"github.com/matzehuels/funnelchart/pkg/funnel"
	"github.com/matzehuels/funnelchart/pkg/funnel/textmeasure"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout runs the funnel engine over a validated definition.
//
// The definition lists stages top-down; [chart.Definition.Series] reverses
// them into the bottom-up order the engine works in.
func GenerateLayout(def *chart.Definition, m textmeasure.Measurer) funnel.Result {
	return funnel.Layout(def.Series(), m, def.Config())
}

// layoutInput is the part of a definition a layout depends on. Title and
// palette changes reuse cached layouts.
type layoutInput struct {
	Series []funnel.Series `json:"series"`
	Config funnel.Config   `json:"config"`
}

func newLayoutInput(def *chart.Definition) layoutInput {
	return layoutInput{Series: def.Series(), Config: def.Config()}
}
