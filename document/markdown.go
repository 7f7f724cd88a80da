package document

import (
	"regexp"
	"strings"
)

// MarkdownPolicy controls the line-level normalization pass for Markdown.
type MarkdownPolicy struct {
	TrimTrailingWhitespace bool
	NormalizeHeadings      bool
	ListIndentWidth        int
	CollapseBlankRuns      bool
	EnsureTrailingNewline  bool
}

// DefaultMarkdown enables every rewrite with a two-space list indent.
var DefaultMarkdown = MarkdownPolicy{
	TrimTrailingWhitespace: true,
	NormalizeHeadings:      true,
	ListIndentWidth:        2,
	CollapseBlankRuns:      true,
	EnsureTrailingNewline:  true,
}

var (
	headingRe  = regexp.MustCompile(`^(#{1,6})[ \t]+(.*)$`)
	listItemRe = regexp.MustCompile(`^([ \t]*)([-*+]|\d+\.)([ \t].*|)$`)
)

// NormalizeMarkdown applies the policy-gated rewrites in a fixed order:
// trailing-whitespace trimming, heading marker normalization, list indent
// renormalization, blank run collapsing, and finally the trailing newline.
// Trimming has to run first since it changes what the later passes match.
func NormalizeMarkdown(text string, policy MarkdownPolicy) Document {
	lines := strings.Split(text, "\n")

	if policy.TrimTrailingWhitespace {
		for i, line := range lines {
			lines[i] = strings.TrimRight(line, " \t")
		}
	}

	if policy.NormalizeHeadings {
		for i, line := range lines {
			if m := headingRe.FindStringSubmatch(line); m != nil {
				lines[i] = m[1] + " " + strings.TrimLeft(m[2], " \t")
			}
		}
	}

	if policy.ListIndentWidth > 0 {
		for i, line := range lines {
			m := listItemRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			// The nesting level is inferred from the original indent, two
			// columns per level, and re-emitted with the configured width.
			level := indentWidth(m[1]) / 2
			lines[i] = strings.Repeat(" ", level*policy.ListIndentWidth) + m[2] + m[3]
		}
	}

	if policy.CollapseBlankRuns {
		out := lines[:0]
		blanks := 0
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				blanks++
				if blanks > 1 {
					continue
				}
			} else {
				blanks = 0
			}
			out = append(out, line)
		}
		lines = out
	}

	if policy.EnsureTrailingNewline {
		for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		lines = append(lines, "")
	}

	return Document(lines)
}

// indentWidth measures leading whitespace in columns, counting a tab as two
// columns to match the level inference above.
func indentWidth(indent string) int {
	w := 0
	for _, r := range indent {
		if r == '\t' {
			w += 2
		} else {
			w++
		}
	}
	return w
}
