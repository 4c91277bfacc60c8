package nodelink

import (
	"strings"
	"testing"

	"github.com/danilokhury/orbitmap/pkg/layout"
	"github.com/danilokhury/orbitmap/pkg/model"
)

func builtLayout(t *testing.T) (*layout.Layout, []model.Link) {
	t.Helper()
	dataset := &model.Dataset{
		Records: []model.Record{
			{ID: "r1", Category: "bug-fix", Importance: 5, Content: "one"},
			{ID: "r2", Category: "bug-fix", Importance: 4, Content: "two"},
			{ID: "r3", Category: "pattern", Importance: 6, Content: "three"},
			{ID: "r4", Category: "tools", Importance: 3, Content: "four"},
		},
		Links: []model.Link{
			{Source: "r1", Target: "r2"},
			{Source: "r1", Target: "r3", CrossCategory: true},
			{Source: "r2", Target: "r3", CrossCategory: true},
		},
		Categories: map[string]model.CategoryMetadata{
			"learning": {IsParent: true},
			"bug-fix":  {Parent: "learning"},
			"pattern":  {Parent: "learning"},
		},
	}
	engine := layout.NewEngine(layout.DefaultParams(), nil)
	return engine.Build(dataset, nil, nil), dataset.Links
}

func TestToDOTStructure(t *testing.T) {
	l, links := builtLayout(t)
	dot := ToDOT(l, links, Options{})

	for _, want := range []string{
		`"learning"`,
		`"bug-fix"`,
		`"pattern"`,
		`"tools"`,
		`"learning" -- "bug-fix";`,
		`"learning" -- "pattern";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "style=dashed") {
		t.Error("cross links emitted without IncludeLinks")
	}
}

func TestToDOTAggregatesCrossLinks(t *testing.T) {
	l, links := builtLayout(t)
	dot := ToDOT(l, links, Options{IncludeLinks: true})

	want := `"bug-fix" -- "pattern" [style=dashed, label="2", constraint=false];`
	if !strings.Contains(dot, want) {
		t.Errorf("aggregated cross edge missing:\n%s", dot)
	}
	if strings.Count(dot, "style=dashed") != 1 {
		t.Error("cross links not aggregated per pair")
	}
}

func TestToDOTDetailedCounts(t *testing.T) {
	l, links := builtLayout(t)
	dot := ToDOT(l, links, Options{Detailed: true})
	if !strings.Contains(dot, `3 records`) { // learning subtree total
		t.Errorf("detailed label missing member count:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="1.5 2.5 100.0 200.0">body</svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 200.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="200"`) {
		t.Errorf("pixel dimensions missing: %s", out)
	}
}

func TestNormalizeViewBoxPassThrough(t *testing.T) {
	in := []byte(`<svg>no viewbox</svg>`)
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
