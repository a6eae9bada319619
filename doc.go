// Package marsilea composes chart panels into one aligned figure.
//
// # Overview
//
// marsilea builds cross layouts: a main canvas (typically a heatmap)
// surrounded by annotation panels on its four sides, with the panels
// kept pixel-aligned to the main grid even when the data is split
// into groups or reordered by clustering. Rendering goes through
// github.com/gogpu/gg.
//
// # Quick Start
//
//	import "github.com/Marsilea-viz/marsilea"
//	import "github.com/Marsilea-viz/marsilea/plotter"
//
//	b, _ := marsilea.NewHeatmap(data)
//	b.AddTop(plotter.NewColorStrip(groups), marsilea.WithPlotSize(0.2))
//	b.AddLeft(plotter.NewLabels(names))
//	b.AddDendrogram(marsilea.Left)
//	b.RenderPNG("heatmap.png", 150)
//
// # Architecture
//
// The library is organized into:
//   - Root: Board, ClusterBoard and board concatenation, the
//     declarative API that most callers use
//   - layout: the pure geometry core (size resolution, partitioning,
//     grid building, composition); no rendering imports
//   - plotter: panel renderers (color mesh, bars, labels, strips,
//     chunk tags, titles, legends)
//   - dendrogram: hierarchical clustering and tree drawing
//
// # Coordinate System
//
// Layout runs in inches with the origin at the figure's top-left, x
// increasing right and y increasing down. Rendering multiplies by a
// caller-chosen DPI.
package marsilea
