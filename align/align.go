// Package align computes a line-level alignment between two documents and
// classifies every line as unchanged, added, removed, or part of a
// modification.
package align

// Implementation note: This is deliberately not a minimal-edit-distance
// algorithm. It's a greedy single pass with a small lookahead window, which
// trades optimality for O(n·k) running time and output that is easy to
// explain locally: every decision depends only on the two cursor lines and
// the next few lines on either side. For the document sizes this tool
// targets (tens of thousands of lines) that's more than good enough, and the
// resulting scripts read naturally in a side-by-side view.

// Op classifies a single line of an alignment.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Unchanged   Op = iota // Line is identical on both sides
	Added                 // Line exists only on the right side
	Removed               // Line exists only on the left side
	ModifiedOld           // Left half of a modified pair
	ModifiedNew           // Right half of a modified pair
)

// Unit is one classified line of an edit script. Pos is the 1-based position
// of the line in its own side's sequence: the left sequence for Unchanged,
// Removed and ModifiedOld, the right sequence for Added and ModifiedNew.
type Unit struct {
	Op   Op     `json:"op"`
	Line string `json:"line"`
	Pos  int    `json:"pos"`
}

// Script is an ordered sequence of units covering every line of both inputs
// exactly once. A modification is always an adjacent pair: one ModifiedOld
// unit immediately followed by one ModifiedNew unit, never a merged unit, so
// that rendering can treat replacements uniformly with additions and
// removals.
type Script []Unit

// lookahead is the number of lines scanned ahead on either side when the
// cursor lines differ. Duplicate lines within this window can be mistaken
// for a removal or addition; that's an accepted limitation.
const lookahead = 4

// Align computes the edit script between left and right.
//
// The alignment keeps a cursor per side. Identical cursor lines advance both
// cursors as Unchanged. Otherwise both sides are scanned up to [lookahead]
// lines ahead: if the current right line reappears ahead on the left, the
// current left line is a deletion; if the current left line reappears ahead
// on the right, the current right line is an insertion; if neither
// reappears, the pair is a modification. When both reappear, the deletion
// reading wins. That tie-break is a choice, not a forced one; it only has
// to be deterministic.
func Align(left, right []string) Script {
	var script Script
	s, t := 0, 0
	for s < len(left) || t < len(right) {
		switch {
		case s >= len(left):
			script = append(script, Unit{Added, right[t], t + 1})
			t++
		case t >= len(right):
			script = append(script, Unit{Removed, left[s], s + 1})
			s++
		case left[s] == right[t]:
			script = append(script, Unit{Unchanged, left[s], s + 1})
			s++
			t++
		default:
			// Both lookaheads are computed from the original cursor lines,
			// independently of each other.
			inRight := contains(right, t+1, left[s])
			inLeft := contains(left, s+1, right[t])
			switch {
			case inLeft: // also wins the ambiguous inLeft && inRight case
				script = append(script, Unit{Removed, left[s], s + 1})
				s++
			case inRight:
				script = append(script, Unit{Added, right[t], t + 1})
				t++
			default:
				script = append(script, Unit{ModifiedOld, left[s], s + 1})
				script = append(script, Unit{ModifiedNew, right[t], t + 1})
				s++
				t++
			}
		}
	}
	return script
}

// contains reports whether line occurs in lines[from:from+lookahead].
func contains(lines []string, from int, line string) bool {
	end := min(from+lookahead, len(lines))
	for i := from; i < end; i++ {
		if lines[i] == line {
			return true
		}
	}
	return false
}

// HasChanges reports whether the script contains any non-Unchanged unit.
func (s Script) HasChanges() bool {
	for _, u := range s {
		if u.Op != Unchanged {
			return true
		}
	}
	return false
}

// Stats summarizes an edit script. Modified counts modified pairs, not
// units: each ModifiedOld/ModifiedNew pair contributes one.
type Stats struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
}

// Stats folds the script into summary counts. The script is the single
// source of truth: stats are always re-derivable from it.
func (s Script) Stats() Stats {
	var st Stats
	for _, u := range s {
		switch u.Op {
		case Added:
			st.Added++
		case Removed:
			st.Removed++
		case ModifiedOld:
			st.Modified++
		}
	}
	return st
}
