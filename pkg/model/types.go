package model

import (
	"fmt"
	"strings"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Importance bounds for records. Values outside the range are clamped on load.
const (
	MinImportance = 1
	MaxImportance = 10
)

// Region kinds. A parent region owns child regions; a child orbits its parent.
// Standalone categories are modeled as single-node parent regions.
const (
	KindParent = "parent"
	KindChild  = "child"
)

// Link visibility modes consumed by the render pipeline.
const (
	LinkModeAll   = "all"
	LinkModeIntra = "intra"
	LinkModeOff   = "off"
)

// ValidLinkModes is the set of supported link modes.
var ValidLinkModes = map[string]bool{
	LinkModeAll:   true,
	LinkModeIntra: true,
	LinkModeOff:   true,
}

// =============================================================================
// Record - One Data Card
// =============================================================================

// Record is one data entry rendered as a card on the map.
// Beyond layout needs the content is opaque: it is used only for the card
// label, preview text, and the deterministic sort key.
type Record struct {
	ID         string `json:"id" bson:"id"`
	Category   string `json:"category" bson:"category"`
	Importance int    `json:"importance" bson:"importance"` // 1..10
	Content    string `json:"content,omitempty" bson:"content,omitempty"`
}

// SortKey returns the stable lexical tie-breaker used when ordering records
// of equal importance: the first 30 characters of the content. Truncation is
// on rune boundaries so multibyte content keys stay valid UTF-8.
func (r *Record) SortKey() string {
	const n = 30
	runes := []rune(r.Content)
	if len(runes) <= n {
		return r.Content
	}
	return string(runes[:n])
}

// Title returns a single-line label for the record, truncated to max runes.
func (r *Record) Title(max int) string {
	line := r.Content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	runes := []rune(line)
	if len(runes) <= max {
		return line
	}
	if max <= 2 {
		return string(runes[:max])
	}
	return string(runes[:max-2]) + ".."
}

// =============================================================================
// Link - Relation Between Two Records
// =============================================================================

// Link connects two records. CrossCategory is derived on load from the
// endpoint categories and is not part of the input contract.
type Link struct {
	Source        string  `json:"source" bson:"source"`
	Target        string  `json:"target" bson:"target"`
	Strength      float64 `json:"strength,omitempty" bson:"strength,omitempty"`
	CrossCategory bool    `json:"cross_category,omitempty" bson:"cross_category,omitempty"`
}

// =============================================================================
// CategoryMetadata - Display Metadata for One Category
// =============================================================================

// CategoryMetadata describes one category. Categories form an optional
// two-level hierarchy: an entry with IsParent set may be referenced by other
// entries through Parent. An entry with neither flag nor reference is
// standalone and is promoted to its own single-node parent region.
type CategoryMetadata struct {
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Color       string `json:"color,omitempty" bson:"color,omitempty"` // #rrggbb
	Parent      string `json:"parent,omitempty" bson:"parent,omitempty"`
	IsParent    bool   `json:"is_parent,omitempty" bson:"is_parent,omitempty"`
	Logo        string `json:"logo,omitempty" bson:"logo,omitempty"`
}

// =============================================================================
// Dataset - Input Contract
// =============================================================================

// Dataset is the full input consumed by the layout engine: records, links,
// and category metadata keyed by category name.
type Dataset struct {
	Records    []Record                    `json:"records" bson:"records"`
	Links      []Link                      `json:"links,omitempty" bson:"links,omitempty"`
	Categories map[string]CategoryMetadata `json:"categories,omitempty" bson:"categories,omitempty"`
}

// CategoryNames returns the set of category names that occur in the dataset,
// from metadata and from record assignments.
func (d *Dataset) CategoryNames() map[string]bool {
	names := make(map[string]bool, len(d.Categories))
	for name := range d.Categories {
		names[name] = true
	}
	for i := range d.Records {
		names[d.Records[i].Category] = true
	}
	return names
}

// RecordByID returns the record with the given id, or nil.
func (d *Dataset) RecordByID(id string) *Record {
	for i := range d.Records {
		if d.Records[i].ID == id {
			return &d.Records[i]
		}
	}
	return nil
}

// Validate checks the dataset for internal consistency: duplicate record ids
// and links referencing unknown records.
func (d *Dataset) Validate() error {
	seen := make(map[string]bool, len(d.Records))
	for i := range d.Records {
		id := d.Records[i].ID
		if id == "" {
			return fmt.Errorf("record %d: empty id", i)
		}
		if seen[id] {
			return fmt.Errorf("duplicate record id %q", id)
		}
		seen[id] = true
	}
	for _, l := range d.Links {
		if !seen[l.Source] || !seen[l.Target] {
			return fmt.Errorf("link %s -> %s references unknown record", l.Source, l.Target)
		}
	}
	return nil
}
