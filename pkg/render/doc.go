// Package render draws a built layout onto an abstract canvas.
//
// # Overview
//
// The pipeline culls to the visible rect, picks a level of detail from the
// on-screen card size, and draws regions, links, cards, and labels in that
// order. It provides:
//
//   - The [Canvas] interface every backend implements
//   - The [Pipeline] with its three LOD tiers (full card, flat rect, dot)
//   - Label scaling, fading, and wrapping shared by all backends
//
// # Backends
//
// The interactive window supplies an ebiten-backed canvas, the snapshot
// command a gg-backed one (in [raster]), and the export command bypasses the
// pipeline entirely to emit Graphviz diagrams (in [nodelink]).
//
//	p := render.New(render.DefaultConfig())
//	p.Draw(canvas, vp, layout, render.Frame{Links: dataset.Links})
package render
