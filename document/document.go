// Package document turns raw JSON or Markdown text into a canonical line
// representation under a formatting policy. Formatting is a pure function of
// (input, policy); the same input and policy always produce the same
// document.
package document

import "strings"

// Document is an ordered sequence of lines. It is the unit of line-level
// comparison: two documents produced under the same policy can be aligned
// line by line.
type Document []string

// Text joins the document back into a single string. A trailing empty line
// becomes a trailing newline.
func (d Document) Text() string {
	return strings.Join(d, "\n")
}

// Split turns raw text into a document without applying any formatting.
func Split(text string) Document {
	return Document(strings.Split(text, "\n"))
}
