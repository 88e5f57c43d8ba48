// Package pkg provides the libraries behind funnelchart.
//
// # Overview
//
// funnelchart turns an ordered list of stages and values into a funnel chart:
// each stage becomes a trapezoid whose area is proportional to its value, and
// labels that do not fit inside their slice are placed beside the funnel with
// leader lines. The pkg directory is organized as:
//
//  1. [funnel] - Layout engine (dimensions, trapezoids, labels, leaders, reflow)
//  2. [funnel/textmeasure] - Text measurement, wrapping and ellipsis
//  3. [funnel/sink] - Output encoders (SVG, PNG, PDF, JSON)
//  4. [chart] - TOML/JSON chart definitions and validation
//  5. [pipeline] - Orchestration (load → layout → render) with caching
//  6. [cache] - File, Redis and no-op caches plus cache keys
//  7. [errors], [observability], [httputil], [fonts], [buildinfo] - Support
//
// # Architecture
//
// The typical data flow:
//
//	chart.toml
//	     ↓
//	[chart] package (parse, validate, reverse into bottom-to-top series)
//	     ↓
//	[funnel] package (layout, measured with [funnel/textmeasure])
//	     ↓
//	[funnel/sink] package (SVG/PNG/PDF/JSON)
//
// [pipeline.Runner] wires these stages together and caches layouts and
// artifacts separately, so changing only the title re-renders without
// re-laying out.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/funnelchart/pkg/funnel"
//	    "github.com/matzehuels/funnelchart/pkg/funnel/sink"
//	    "github.com/matzehuels/funnelchart/pkg/funnel/textmeasure"
//	)
//
//	series := []funnel.Series{
//	    {Key: "Won", Points: []funnel.Point{{Value: 90}}},
//	    {Key: "Qualified", Points: []funnel.Point{{Value: 430}}},
//	    {Key: "Leads", Points: []funnel.Point{{Value: 1200}}},
//	}
//	m, _ := textmeasure.NewGoRegular(textmeasure.DefaultFontSize)
//	layout := funnel.Layout(series, m, funnel.DefaultConfig())
//	svg := sink.RenderSVG(layout, sink.WithTitle("Q3 pipeline"))
package pkg
