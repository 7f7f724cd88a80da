package report

import (
	"fmt"
	"html/template"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"docdiff.io/semdiff"
)

// Annotate renders the structural delta overlaid onto the left (original)
// value: the left document's structure is walked in order and every node
// the delta mentions gets an inline verdict. The result is an HTML fragment
// to embed in the report.
//
// Annotate is the collaborator the compare package calls through
// [compare.Options].Annotate; if it fails the caller falls back to the
// line-level view.
func Annotate(left gjson.Result, delta *semdiff.Delta) (template.HTML, error) {
	if delta == nil {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString(`<div class="ann">`)
	if err := writeValue(&sb, left, delta); err != nil {
		return "", err
	}
	sb.WriteString(`</div>`)
	return template.HTML(sb.String()), nil
}

func writeValue(sb *strings.Builder, v gjson.Result, delta *semdiff.Delta) error {
	switch delta.Op {
	case semdiff.Nested:
		if delta.Fields != nil {
			return writeObject(sb, v, delta)
		}
		return writeArray(sb, v, delta)
	case semdiff.Changed:
		span(sb, "ann-del", delta.Old)
		span(sb, "ann-ins", delta.New)
		return nil
	default:
		return fmt.Errorf("unexpected delta op %v at value %s", delta.Op, v.Raw)
	}
}

func writeObject(sb *strings.Builder, v gjson.Result, delta *semdiff.Delta) error {
	sb.WriteString(`<ul class="ann-obj">`)
	var err error
	v.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		d, ok := delta.Fields[k]
		sb.WriteString("<li>")
		span(sb, "ann-key", k)
		switch {
		case !ok:
			span(sb, "ann-same", value.Raw)
		case d.Op == semdiff.Removed:
			span(sb, "ann-del", value.Raw)
		default:
			err = writeValue(sb, value, d)
		}
		sb.WriteString("</li>")
		return err == nil
	})
	if err != nil {
		return err
	}
	// Keys that exist only on the right have no anchor in the left value;
	// they are appended after it in sorted order for determinism.
	var added []string
	for k, d := range delta.Fields {
		if d.Op == semdiff.Added {
			added = append(added, k)
		}
	}
	slices.Sort(added)
	for _, k := range added {
		sb.WriteString("<li>")
		span(sb, "ann-key", k)
		span(sb, "ann-ins", delta.Fields[k].New)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return nil
}

func writeArray(sb *strings.Builder, v gjson.Result, delta *semdiff.Delta) error {
	byFrom := make(map[int]*semdiff.Delta)
	for _, it := range delta.Items {
		if it.From >= 0 {
			byFrom[it.From] = it
		}
	}

	sb.WriteString(`<ol class="ann-arr">`)
	var err error
	i := 0
	v.ForEach(func(_, value gjson.Result) bool {
		d, ok := byFrom[i]
		i++
		sb.WriteString("<li>")
		switch {
		case !ok:
			span(sb, "ann-same", value.Raw)
		case d.Op == semdiff.Removed:
			span(sb, "ann-del", value.Raw)
		case d.Op == semdiff.Moved:
			span(sb, "ann-moved", fmt.Sprintf("%s → index %d", value.Raw, d.To))
		case d.Op == semdiff.MovedChanged:
			span(sb, "ann-del", d.Old)
			span(sb, "ann-moved", fmt.Sprintf("%s → index %d", d.New, d.To))
		default:
			err = writeValue(sb, value, d)
		}
		sb.WriteString("</li>")
		return err == nil
	})
	if err != nil {
		return err
	}
	for _, it := range delta.Items {
		if it.Op != semdiff.Added {
			continue
		}
		sb.WriteString("<li>")
		span(sb, "ann-ins", it.New)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ol>")
	return nil
}

func span(sb *strings.Builder, class, text string) {
	sb.WriteString(`<span class="` + class + `">`)
	sb.WriteString(template.HTMLEscapeString(text))
	sb.WriteString("</span>")
}
