// Package compare is the entry point of the diff engine: it validates two
// raw documents, canonicalizes them, and combines the line-level alignment
// with the structural delta into one result.
package compare

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/tidwall/gjson"

	"docdiff.io/align"
	"docdiff.io/document"
	"docdiff.io/semdiff"
)

// ContentType selects the comparison mode.
type ContentType string

const (
	JSON     ContentType = "json"
	Markdown ContentType = "markdown"
)

// Annotator renders a structural delta onto the left value as markup. It is
// an external collaborator from the engine's point of view: any error or
// panic it produces means "no annotated view available", nothing more.
type Annotator func(left gjson.Result, delta *semdiff.Delta) (template.HTML, error)

// Options configures a single comparison.
type Options struct {
	// Annotate, if set, is used to produce the annotated HTML view of a
	// JSON delta. Failures are swallowed.
	Annotate Annotator
}

// Result is the complete outcome of one comparison. Everything is computed
// from scratch per invocation; nothing is retained between calls.
type Result struct {
	ContentType ContentType       `json:"contentType"`
	Left, Right document.Document `json:"-"`
	Script      align.Script      `json:"script"`
	Stats       align.Stats       `json:"stats"`
	Delta       *semdiff.Delta    `json:"delta,omitempty"`
	Annotated   template.HTML     `json:"annotated,omitempty"`
	HasChanges  bool              `json:"hasChanges"`
}

// Compare diffs two raw text documents.
//
// For JSON, both sides are parsed (fail-fast on either side), formatted
// under the fixed comparison policy, aligned line by line, and structurally
// diffed. For Markdown the raw lines go straight to the aligner; there is
// no parse step and no structural delta. Any other content type tag is
// rejected with a [ContentTypeError].
//
// All failures come back as error values; Compare never panics across this
// boundary.
func Compare(left, right string, ct ContentType, opts Options) (*Result, error) {
	lblank := strings.TrimSpace(left) == ""
	rblank := strings.TrimSpace(right) == ""
	switch {
	case lblank && rblank:
		return nil, &EmptyInputError{Side: "both"}
	case lblank:
		return nil, &EmptyInputError{Side: "left"}
	case rblank:
		return nil, &EmptyInputError{Side: "right"}
	}

	switch ct {
	case JSON:
		return compareJSON(left, right, opts)
	case Markdown:
		return compareMarkdown(left, right)
	default:
		return nil, &ContentTypeError{ContentType: ct}
	}
}

func compareJSON(left, right string, opts Options) (*Result, error) {
	// encoding/json is only used as the validator here: its diagnostics are
	// what the user sees. The tree itself comes from gjson, which preserves
	// key order.
	var v any
	if err := json.Unmarshal([]byte(left), &v); err != nil {
		return nil, &ParseError{Side: "left", Msg: err.Error()}
	}
	if err := json.Unmarshal([]byte(right), &v); err != nil {
		return nil, &ParseError{Side: "right", Msg: err.Error()}
	}

	ltree := gjson.Parse(left)
	rtree := gjson.Parse(right)

	ldoc := document.FormatJSON(left, document.CompareJSON)
	rdoc := document.FormatJSON(right, document.CompareJSON)
	script := align.Align(ldoc, rdoc)
	delta := semdiff.Diff(ltree, rtree)

	res := &Result{
		ContentType: JSON,
		Left:        ldoc,
		Right:       rdoc,
		Script:      script,
		Stats:       script.Stats(),
		Delta:       delta,
		HasChanges:  delta != nil,
	}
	if opts.Annotate != nil && delta != nil {
		res.Annotated = annotate(opts.Annotate, ltree, delta)
	}
	return res, nil
}

func compareMarkdown(left, right string) (*Result, error) {
	ldoc := document.Split(left)
	rdoc := document.Split(right)
	script := align.Align(ldoc, rdoc)

	return &Result{
		ContentType: Markdown,
		Left:        ldoc,
		Right:       rdoc,
		Script:      script,
		Stats:       script.Stats(),
		HasChanges:  script.HasChanges(),
	}, nil
}

// annotate runs the annotator and maps every failure mode, including
// panics, to an empty result. The line-level view is always there to fall
// back on.
func annotate(fn Annotator, left gjson.Result, delta *semdiff.Delta) (out template.HTML) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	html, err := fn(left, delta)
	if err != nil {
		return ""
	}
	return html
}
