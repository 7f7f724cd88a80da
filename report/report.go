// Package report renders a comparison result as a standalone HTML page.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"docdiff.io/align"
	"docdiff.io/compare"
	"docdiff.io/highlight"
)

//go:embed templates/*.tmpl
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/*.tmpl"))

// Options controls report rendering.
type Options struct {
	Title  string
	Minify bool // run the page through an HTML minifier
}

// Render produces the HTML report page for a comparison result: the summary
// badge, the line-level split view with syntax highlighting, and, when
// available, the annotated structural view.
func Render(res *compare.Result, opts Options) ([]byte, error) {
	lang := "json"
	if res.ContentType == compare.Markdown {
		lang = "markdown"
	}
	edits, err := highlight.Script(res.Script, highlight.Lang(lang))
	if err != nil {
		return nil, fmt.Errorf("highlighting edit script: %v", err)
	}

	title := opts.Title
	if title == "" {
		title = "Comparison"
	}

	var buf bytes.Buffer
	err = page.ExecuteTemplate(&buf, "report", struct {
		Title      string
		Stats      align.Stats
		HasChanges bool
		Edits      []highlight.Edit
		Annotated  template.HTML
	}{
		Title:      title,
		Stats:      res.Stats,
		HasChanges: res.HasChanges,
		Edits:      edits,
		Annotated:  res.Annotated,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering report: %v", err)
	}

	b := buf.Bytes()
	if opts.Minify {
		return minifyHTML(b)
	}
	return b, nil
}

// RenderSource produces a standalone page showing a single highlighted
// document with line numbers: one side of a session, not a comparison.
func RenderSource(title string, lines []highlight.Line) ([]byte, error) {
	var buf bytes.Buffer
	err := page.ExecuteTemplate(&buf, "source", struct {
		Title string
		Lines []highlight.Line
	}{
		Title: title,
		Lines: lines,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering source view: %v", err)
	}
	return buf.Bytes(), nil
}

func minifyHTML(b []byte) ([]byte, error) {
	minifier := minify.New()
	minifier.AddFunc("text/css", css.Minify)
	minifier.AddFunc("text/html", html.Minify)
	b, err := minifier.Bytes("text/html", b)
	if err != nil {
		return nil, fmt.Errorf("minification failed: %v", err)
	}
	return b, nil
}
