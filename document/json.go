package document

import (
	"strings"

	"github.com/tidwall/pretty"
)

// JSONPolicy controls canonical JSON serialization.
//
// An IndentWidth of 0 without Tab produces a single-line serialization with
// no added whitespace. Tab indents with one literal tab per nesting level
// and takes precedence over IndentWidth.
type JSONPolicy struct {
	IndentWidth int
	Tab         bool
	SortKeys    bool
}

// DefaultJSON is the beautify preset: two-space indent, key order preserved.
var DefaultJSON = JSONPolicy{IndentWidth: 2}

// CompareJSON is the fixed policy used to produce the line sequences the
// aligner compares. It is independent of whatever beautify preset the user
// selected: comparisons always see the same canonical layout.
var CompareJSON = JSONPolicy{IndentWidth: 2}

// FormatJSON serializes already-validated JSON text under the policy and
// splits the result into lines. Key sorting rewrites every object so its
// keys appear in ascending code-point order, recursing through arrays and
// nested objects; non-container values are left untouched.
//
// Malformed input is the caller's concern: FormatJSON assumes raw has been
// parsed successfully upstream.
func FormatJSON(raw string, policy JSONPolicy) Document {
	data := []byte(raw)

	if policy.IndentWidth <= 0 && !policy.Tab {
		if policy.SortKeys {
			data = pretty.PrettyOptions(data, &pretty.Options{Indent: " ", SortKeys: true})
		}
		data = pretty.Ugly(data)
	} else {
		indent := "\t"
		if !policy.Tab {
			indent = strings.Repeat(" ", policy.IndentWidth)
		}
		data = pretty.PrettyOptions(data, &pretty.Options{Indent: indent, SortKeys: policy.SortKeys})
	}

	text := strings.TrimRight(string(data), "\n")
	return Document(strings.Split(text, "\n"))
}
