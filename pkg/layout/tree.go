package layout

import (
	"sort"

	"github.com/danilokhury/orbitmap/pkg/model"
)

// =============================================================================
// Region Tree Construction
// =============================================================================

// BuildRegionTree turns records plus category metadata into a two-level
// region tree. The returned slice holds the parent regions (roots), sorted by
// name for determinism.
//
// Classification per metadata entry:
//   - IsParent set: a parent region
//   - Parent reference set: a child region under that parent
//   - neither: standalone, promoted to a single-node parent region
//
// The builder fails soft everywhere: a record whose category has no metadata
// synthesizes an ad-hoc standalone parent; a child whose parent reference
// resolves to nothing gets a synthesized parent of that name. Children
// without records and parents whose whole subtree is empty are pruned.
//
// If active is non-nil, categories outside the set (and their records) are
// excluded before the tree is built.
func BuildRegionTree(dataset *model.Dataset, active map[string]bool) []*model.CategoryRegion {
	visible := func(name string) bool {
		return active == nil || active[name]
	}

	parents := make(map[string]*model.CategoryRegion)
	children := make(map[string]*model.CategoryRegion)

	// synthesizeParent creates (or returns) a parent region that has no
	// metadata entry of its own.
	synthesizeParent := func(name string) *model.CategoryRegion {
		if r, ok := parents[name]; ok {
			return r
		}
		r := &model.CategoryRegion{Name: name, Kind: model.KindParent}
		parents[name] = r
		return r
	}

	names := sortedNames(dataset.Categories)
	for _, name := range names {
		if !visible(name) {
			continue
		}
		meta := dataset.Categories[name]
		switch {
		case meta.IsParent:
			parents[name] = &model.CategoryRegion{
				Name:  name,
				Kind:  model.KindParent,
				Color: meta.Color,
				Logo:  meta.Logo,
			}
		case meta.Parent != "":
			children[name] = &model.CategoryRegion{
				Name:   name,
				Kind:   model.KindChild,
				Parent: meta.Parent,
				Color:  meta.Color,
				Logo:   meta.Logo,
			}
		default:
			// Standalone: its own single-node parent region.
			parents[name] = &model.CategoryRegion{
				Name:  name,
				Kind:  model.KindParent,
				Color: meta.Color,
				Logo:  meta.Logo,
			}
		}
	}

	// Attach children, synthesizing parents for dangling references.
	for _, name := range sortedRegionNames(children) {
		child := children[name]
		parent := parents[child.Parent]
		if parent == nil {
			parent = synthesizeParent(child.Parent)
		}
		parent.Children = append(parent.Children, child)
	}

	// Assign records to their region; unknown categories synthesize a
	// standalone parent bearing the record.
	for i := range dataset.Records {
		rec := &dataset.Records[i]
		if !visible(rec.Category) {
			continue
		}
		if r, ok := children[rec.Category]; ok {
			r.Members = append(r.Members, rec)
			continue
		}
		if r, ok := parents[rec.Category]; ok {
			r.Members = append(r.Members, rec)
			continue
		}
		adhoc := synthesizeParent(rec.Category)
		adhoc.Members = append(adhoc.Members, rec)
	}

	// Prune empty children, then parents with an empty subtree.
	roots := make([]*model.CategoryRegion, 0, len(parents))
	for _, name := range sortedRegionNames(parents) {
		parent := parents[name]
		kept := parent.Children[:0]
		for _, child := range parent.Children {
			if len(child.Members) > 0 {
				kept = append(kept, child)
			}
		}
		parent.Children = kept
		if parent.TotalMembers() == 0 {
			continue
		}
		sort.Slice(parent.Children, func(i, j int) bool {
			return parent.Children[i].Name < parent.Children[j].Name
		})
		roots = append(roots, parent)
	}
	return roots
}

func sortedNames(m map[string]model.CategoryMetadata) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedRegionNames(m map[string]*model.CategoryRegion) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
