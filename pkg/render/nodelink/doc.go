// Package nodelink exports the category structure as a traditional node-link
// diagram: parent and child categories as boxes, containment as solid edges,
// aggregated cross-category record links as dashed edges.
//
// Convert a layout to DOT, then render to SVG in-process:
//
//	dot := nodelink.ToDOT(l, dataset.Links, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools. SVG rendering uses [github.com/goccy/go-graphviz].
package nodelink
