// ABOUTME: Builds the markdown statistics report and converts it to HTML for the web viewer.
// ABOUTME: Deterministic output: group tables follow the fixed attribute order, zeros included.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/2389-research/binder/collection"
)

// Markdown renders the statistics report for a collection. The name is the
// collection file's display name; generatedAt stamps the report.
func Markdown(name string, stats collection.Stats, filter collection.StatsFilter, generatedAt time.Time) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "# Collection statistics: %s\n\n", name)
	fmt.Fprintf(&buf, "Generated %s\n\n", generatedAt.Format("2006-01-02 15:04 MST"))

	if label := filterLabel(filter); label != "" {
		fmt.Fprintf(&buf, "Filter: %s\n\n", label)
	}

	buf.WriteString("## Totals\n\n")
	fmt.Fprintf(&buf, "- Total cards: %d\n", stats.TotalCards)
	fmt.Fprintf(&buf, "- Unique entries: %d\n", stats.UniqueEntries)
	fmt.Fprintf(&buf, "- Alt art entries: %d\n", stats.AltArtCount)
	buf.WriteString("\n")

	writeGroupTable(&buf, "Quantity by rarity", "Rarity", stats.ByRarity)
	writeGroupTable(&buf, "Quantity by color", "Color", stats.ByColor)
	writeGroupTable(&buf, "Quantity by kind", "Kind", stats.ByKind)

	return buf.String()
}

// filterLabel describes the active filter parts, or "" when unfiltered.
func filterLabel(f collection.StatsFilter) string {
	var parts []string
	if f.Color != "" {
		parts = append(parts, "color "+f.Color)
	}
	if f.Rarity != "" {
		parts = append(parts, "rarity "+f.Rarity)
	}
	if f.Kind != "" {
		parts = append(parts, "kind "+f.Kind)
	}
	if f.AltArtOnly {
		parts = append(parts, "alt art only")
	}
	return strings.Join(parts, ", ")
}

func writeGroupTable(buf *strings.Builder, title, column string, groups []collection.GroupCount) {
	fmt.Fprintf(buf, "## %s\n\n", title)
	fmt.Fprintf(buf, "| %s | Quantity |\n", column)
	buf.WriteString("| --- | ---: |\n")
	for _, g := range groups {
		fmt.Fprintf(buf, "| %s | %d |\n", g.Value, g.Quantity)
	}
	buf.WriteString("\n")
}

// HTML converts report markdown to HTML for the web viewer. Table syntax
// needs the GFM extension. On a conversion failure the markdown is shown
// escaped rather than dropped.
func HTML(markdown string) template.HTML {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(markdown) + "</pre>")
	}
	return template.HTML(buf.String())
}
