package layout

// Params holds the layout tunables. All lengths are world units (pixels at
// zoom 1). The zero value is unusable; start from DefaultParams.
type Params struct {
	// Card geometry.
	CardWidth  float64
	CardHeight float64
	CardGap    float64 // spacing between cards on a ring

	// Ring geometry.
	RingHeight  float64 // radial distance between consecutive rings
	LabelMargin float64 // extra clearance around the label box

	// Region placement.
	BaseRingRadius float64 // pass-1 ring base radius
	RingScale      float64 // pass-1 per-region radius growth
	ChildOrbitGap  float64 // gap between parent edge and child orbit
	MinParentRing  float64 // lower bound for the pass-2 parent ring

	// Collision resolution.
	RegionPadding   float64 // required clearance between region edges
	CollisionPasses int
}

// DefaultParams returns the layout tunables used when no configuration
// overrides them.
func DefaultParams() Params {
	return Params{
		CardWidth:       120,
		CardHeight:      70,
		CardGap:         18,
		RingHeight:      90,
		LabelMargin:     12,
		BaseRingRadius:  300,
		RingScale:       60,
		ChildOrbitGap:   80,
		MinParentRing:   400,
		RegionPadding:   60,
		CollisionPasses: 6,
	}
}
