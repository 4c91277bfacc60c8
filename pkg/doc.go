// Package pkg provides the core libraries for the orbitmap layout engine.
//
// # Overview
//
// Orbitmap arranges categorized records as cards on concentric rings around
// their category centers, with parent categories orbited by their children.
// The pkg directory is organized into these areas:
//
//  1. [model] - Domain types (records, links, regions, persisted positions)
//  2. [layout] - The orbital placement engine
//  3. [render] - LOD rendering pipeline and its raster/nodelink backends
//  4. [viewport] - Camera: pan, zoom, inertia, animated transitions
//  5. [interact] - Pointer gestures: click, drag, selection
//  6. [positions] - Persistence of manual placement (file or Redis)
//  7. [scene] - The orchestrator tying all of the above together
//
// # Architecture
//
// The typical data flow through orbitmap:
//
//	Dataset (JSON file / MongoDB)
//	         ↓
//	layout.Engine.Build  ──  saved positions overlaid
//	         ↓
//	scene.Scene  ──  viewport + interact mutate the layout
//	         ↓
//	render.Pipeline  ──  to a window, a PNG, or a DOT/SVG export
//
// Hosts drive a scene through Update/Draw and the pointer entry points; the
// scene schedules debounced position saves after every mutating gesture.
package pkg
