package report

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"docdiff.io/compare"
	"docdiff.io/highlight"
	"docdiff.io/semdiff"
)

func TestRender(t *testing.T) {
	res, err := compare.Compare(`{"a":1,"b":2}`, `{"a":1,"b":3}`, compare.JSON, compare.Options{
		Annotate: Annotate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := Render(res, Options{Title: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page := string(b)

	for _, want := range []string{
		"<title>test</title>",
		`<b>0</b> added, <b>0</b> removed, <b>1</b> modified`,
		`class="removed"`,
		`class="added"`,
		`class="ann"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
	// Unchanged rows carry no class attribute at all.
	if !strings.Contains(page, "<tr>") {
		t.Error("page has no plain rows for unchanged lines")
	}
	if strings.Contains(page, `<tr class="">`) {
		t.Error("page has rows with an empty class attribute")
	}
}

func TestRenderSource(t *testing.T) {
	lines, err := highlight.Highlight("{\n  \"a\": 1\n}", highlight.Lang("json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := RenderSource("left.json (left)", lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page := string(b)

	for _, want := range []string{
		"<title>left.json (left)</title>",
		`<td class="no">2</td>`,
		"hl-n",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
}

func TestRenderNoChanges(t *testing.T) {
	res, err := compare.Compare(`{"a":1}`, `{"a": 1}`, compare.JSON, compare.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Render(res, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(b), "no changes") {
		t.Error("page does not report the absence of changes")
	}
}

func TestRenderMinify(t *testing.T) {
	res, err := compare.Compare("a\nb\n", "a\nc\n", compare.Markdown, compare.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	full, err := Render(res, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	small, err := Render(res, Options{Minify: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(small) >= len(full) {
		t.Errorf("minified page is not smaller: %d vs %d bytes", len(small), len(full))
	}
}

func TestAnnotate(t *testing.T) {
	left := gjson.Parse(`{"name":"a","tags":["x","y"]}`)
	right := gjson.Parse(`{"name":"b","tags":["y","x"],"extra":true}`)
	delta := semdiff.Diff(left, right)
	if delta == nil {
		t.Fatal("Diff() = nil, want delta")
	}

	html, err := Annotate(left, delta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(html)

	for _, want := range []string{
		`<span class="ann-key">name</span>`,
		`<span class="ann-del">&#34;a&#34;</span>`,
		`<span class="ann-ins">&#34;b&#34;</span>`,
		`ann-moved`,
		`<span class="ann-key">extra</span>`,
		`<span class="ann-ins">true</span>`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("annotation does not contain %q in:\n%s", want, s)
		}
	}
}

func TestAnnotateNilDelta(t *testing.T) {
	html, err := Annotate(gjson.Parse(`{}`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "" {
		t.Errorf("Annotate(nil) = %q, want empty", html)
	}
}
