// Package layout computes the orbital layout for categorized records.
//
// The layout proceeds in stages:
//
//  1. BuildRegionTree turns the flat record list plus category metadata into
//     a two-level region tree (parent clusters containing child regions),
//     discarding empty branches.
//  2. PlaceCards packs each region's records into concentric rings around the
//     region center, starting outside the label-exclusion radius.
//  3. Engine.Build orchestrates two placement passes over the regions (rough
//     ring, then radius-aware ring), resolves inter-region collisions, and
//     cascades every positional delta to descendant regions and cards.
//  4. Persisted positions are overlaid last and win unconditionally.
//
// The result is deterministic: two builds from identical input produce
// identical coordinates. Collision resolution runs a fixed number of passes
// and is best-effort; dense region sets may keep residual overlap.
package layout
