// ABOUTME: Tests for the TemplateEngine that loads and renders embedded HTML templates.
// ABOUTME: Covers parsing, layout wrapping, the index and stats pages, and the color class map.
package web

import (
	"bytes"
	"html/template"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2389-research/binder/card"
	"github.com/2389-research/binder/collection"
)

func TestNewTemplateEngineParsesAllPages(t *testing.T) {
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine: %v", err)
	}
	for _, page := range []string{"index.html", "stats.html"} {
		if _, ok := engine.templates[page]; !ok {
			t.Errorf("expected template %q to be parsed", page)
		}
	}
}

func TestRenderToIndex(t *testing.T) {
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine: %v", err)
	}

	c := card.New("OP02-013", "Edward Newgate", 2)
	c.Color = "Red"
	c.AltArt = true
	data := PageData{
		Title:    "Collection",
		File:     "collection.xlsx",
		Records:  1,
		TotalQty: 2,
		Entries:  collection.View{{Index: 0, Card: c}},
	}

	var buf bytes.Buffer
	if err := engine.RenderTo(&buf, "index.html", data); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}

	body := buf.String()
	for _, want := range []string{
		"<title>Collection · binder</title>",
		"Edward Newgate",
		"OP02-013",
		`class="color-red"`,
		"<td>yes</td>",
		"collection.xlsx",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected rendered index to contain %q", want)
		}
	}
}

func TestRenderToIndexEscapesCardText(t *testing.T) {
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine: %v", err)
	}

	c := card.New("OP01-001", "<script>alert(1)</script>", 1)
	data := PageData{Entries: collection.View{{Index: 0, Card: c}}, Records: 1, TotalQty: 1}

	var buf bytes.Buffer
	if err := engine.RenderTo(&buf, "index.html", data); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("expected card text to be HTML-escaped")
	}
}

func TestRenderToStats(t *testing.T) {
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine: %v", err)
	}

	data := PageData{
		Title:     "Statistics",
		File:      "collection.xlsx",
		StatsHTML: template.HTML("<h1>Collection statistics</h1>"),
	}

	var buf bytes.Buffer
	if err := engine.RenderTo(&buf, "stats.html", data); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if !strings.Contains(buf.String(), "<h1>Collection statistics</h1>") {
		t.Error("expected report HTML to pass through unescaped")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := engine.Render(rec, "missing.html", PageData{}); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestRenderSetsContentType(t *testing.T) {
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := engine.Render(rec, "index.html", PageData{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("expected HTML content type, got %q", ct)
	}
}

func TestColorClass(t *testing.T) {
	for _, tc := range []struct {
		color string
		want  string
	}{
		{"Red", "color-red"},
		{"Purple", "color-purple"},
		{"Mixed (Check Notes)", ""},
		{"Rainbow", ""},
		{"", ""},
	} {
		if got := colorClass(tc.color); got != tc.want {
			t.Errorf("colorClass(%q) = %q, want %q", tc.color, got, tc.want)
		}
	}
}
