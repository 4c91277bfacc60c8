package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/danilokhury/orbitmap/pkg/errors"
	"github.com/danilokhury/orbitmap/pkg/layout"
	"github.com/danilokhury/orbitmap/pkg/model"
)

// Options configures diagram generation.
type Options struct {
	// Detailed includes member counts in category labels.
	Detailed bool
	// IncludeLinks adds dashed edges for cross-category record links,
	// aggregated per category pair and labeled with the link count.
	IncludeLinks bool
}

// ToDOT converts a built layout to Graphviz DOT. Parent categories render as
// bold boxes, children as regular boxes tinted with the category color, and
// containment as solid edges. The result renders with [RenderSVG] or any
// external Graphviz tool.
func ToDOT(l *layout.Layout, links []model.Link, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph orbitmap {\n")
	buf.WriteString("  layout=dot;\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.35;\n")
	buf.WriteString("\n")

	for _, r := range l.Regions {
		fmt.Fprintf(&buf, "  %q [%s];\n", r.Name, strings.Join(regionAttrs(r, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, root := range l.Roots {
		for _, child := range root.Children {
			fmt.Fprintf(&buf, "  %q -- %q;\n", root.Name, child.Name)
		}
	}

	if opts.IncludeLinks {
		writeCrossLinks(&buf, l, links)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func regionAttrs(r *model.CategoryRegion, detailed bool) []string {
	label := r.Name
	if detailed {
		label = fmt.Sprintf("%s\n%d records", r.Name, r.TotalMembers())
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if r.IsParent() {
		attrs = append(attrs, "penwidth=2", "fontsize=22")
	}
	if r.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", r.Color))
	}
	return attrs
}

// writeCrossLinks aggregates cross-category record links per region pair and
// emits one dashed edge per pair, labeled with the count.
func writeCrossLinks(buf *bytes.Buffer, l *layout.Layout, links []model.Link) {
	counts := make(map[[2]string]int)
	for _, link := range links {
		a := l.Card(link.Source)
		b := l.Card(link.Target)
		if a == nil || b == nil {
			continue
		}
		ca, cb := a.Record.Category, b.Record.Category
		if ca == cb {
			continue
		}
		if cb < ca {
			ca, cb = cb, ca
		}
		counts[[2]string{ca, cb}]++
	}

	pairs := make([][2]string, 0, len(counts))
	for pair := range counts {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	buf.WriteString("\n")
	for _, pair := range pairs {
		fmt.Fprintf(buf, "  %q -- %q [style=dashed, label=\"%d\", constraint=false];\n",
			pair[0], pair[1], counts[pair])
	}
}

// RenderSVG renders DOT source to SVG in-process.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root so the viewBox starts at the origin
// and explicit pixel dimensions are present.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
