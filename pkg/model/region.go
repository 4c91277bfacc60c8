package model

// =============================================================================
// CategoryRegion - One Visual Cluster
// =============================================================================

// CategoryRegion is one visual cluster: a category with a computed center and
// radius, its member records, and (for parents) its child regions.
//
// The region tree is rebuilt from scratch on every layout pass and owned
// exclusively by the layout/render module between rebuilds. Interaction
// mutates CX/CY in place; everything else is derived.
type CategoryRegion struct {
	Name   string `json:"name" bson:"name"`
	Kind   string `json:"kind" bson:"kind"` // KindParent or KindChild
	Parent string `json:"parent,omitempty" bson:"parent,omitempty"`

	CX     float64 `json:"cx" bson:"cx"`
	CY     float64 `json:"cy" bson:"cy"`
	Radius float64 `json:"radius" bson:"radius"` // derived, never set by callers

	Color string `json:"color,omitempty" bson:"color,omitempty"`
	Logo  string `json:"logo,omitempty" bson:"logo,omitempty"`

	// LabelRadius is the label-exclusion radius: the minimum ring start
	// distance guaranteeing no card overlaps the rendered label.
	LabelRadius float64 `json:"label_radius" bson:"label_radius"`

	// Rings holds the discrete ring radii the card placer generated for this
	// region during the last full layout. Non-pinned member cards sit on one
	// of these radii.
	Rings []float64 `json:"rings,omitempty" bson:"rings,omitempty"`

	Children []*CategoryRegion `json:"children,omitempty" bson:"children,omitempty"`
	Members  []*Record         `json:"-" bson:"-"`
}

// IsParent reports whether the region is a parent cluster.
func (r *CategoryRegion) IsParent() bool { return r.Kind == KindParent }

// TotalMembers returns the member count of the region plus all descendants.
func (r *CategoryRegion) TotalMembers() int {
	n := len(r.Members)
	for _, c := range r.Children {
		n += c.TotalMembers()
	}
	return n
}

// MoveBy shifts the region center by (dx, dy). Descendant regions and cards
// are cascaded by the caller; the region itself knows nothing about cards.
func (r *CategoryRegion) MoveBy(dx, dy float64) {
	r.CX += dx
	r.CY += dy
}

// =============================================================================
// CardPosition - Placed Card
// =============================================================================

// CardPosition is the placed position of one record. Pinned marks a manual
// user override: the engine keeps pinned cards where the user left them
// across rebuilds until the card is unpinned.
type CardPosition struct {
	Record *Record `json:"-" bson:"-"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Pinned bool    `json:"pinned,omitempty" bson:"pinned,omitempty"`
}

// MoveBy shifts the card by (dx, dy).
func (c *CardPosition) MoveBy(dx, dy float64) {
	c.X += dx
	c.Y += dy
}
