// Package layout computes figure geometry for cross-shaped chart
// compositions: one main canvas with panels attached to its four sides.
//
// # Overview
//
// The package is a pure geometry engine. Panels are declared on a
// CrossLayout with sizes and paddings in inches; Build resolves the
// declarations into a Regions result mapping every panel name to one or
// more rectangles. Rendering is somebody else's job: callers hand the
// rectangles to a drawing backend.
//
//	l := layout.NewCrossLayout("main", 4, 4)
//	l.AddCell(layout.SideLeft, "labels", layout.Fixed(0.8), 0.1)
//	regions, err := l.Build()
//
// # Splitting
//
// A cell can be divided into rows and columns (HSplit, VSplit) with
// ratios typically produced by ResolvePartition, which turns group
// labels or explicit cut positions into contiguous segments. Side
// panels split with the same ratios as the main canvas stay exactly
// aligned with its segment boundaries.
//
// # Composition
//
// CompositeCrossLayout concatenates whole layouts side by side,
// rescaling cross-axis sizes so panel boundaries line up; Stack places
// already-built layouts (including other stacks) along one axis without
// reconciliation.
//
// # Coordinate System
//
// All coordinates are inches with the origin at the figure's top-left
// corner, x increasing right and y increasing down. Multiply by a DPI
// to obtain pixel coordinates.
package layout
