// Package semdiff computes a structural diff between two parsed JSON
// values, independent of line layout. The diff is a tree mirroring the
// shape of the inputs: object nodes carry per-key child deltas, array nodes
// per-element verdicts, and leaves the old/new values.
package semdiff

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Op is the verdict for a single node of the delta tree.
type Op int

const (
	Nested       Op = iota // Container with child differences
	Added                  // Value exists only on the right side
	Removed                // Value exists only on the left side
	Changed                // Value differs between the sides
	Moved                  // Array element changed position, value unchanged
	MovedChanged           // Array element changed position and value
)

func (op Op) String() string {
	switch op {
	case Nested:
		return "Nested"
	case Added:
		return "Added"
	case Removed:
		return "Removed"
	case Changed:
		return "Changed"
	case Moved:
		return "Moved"
	case MovedChanged:
		return "MovedChanged"
	default:
		return "Unknown"
	}
}

// Delta is one node of the structural diff. Unchanged values never appear
// in a delta.
//
// Old and New hold the raw JSON of the affected subtrees where applicable.
// From and To are array indices for element verdicts and -1 everywhere
// else. Exactly one of Fields and Items is set on a Nested node, depending
// on whether the containers are objects or arrays.
type Delta struct {
	Op     Op                `json:"op"`
	Old    string            `json:"old,omitempty"`
	New    string            `json:"new,omitempty"`
	From   int               `json:"from"`
	To     int               `json:"to"`
	Fields map[string]*Delta `json:"fields,omitempty"`
	Items  []*Delta          `json:"items,omitempty"`
}

// Diff compares two parsed JSON values and returns their structural delta,
// or nil if the values are deeply equal. Equality and array element
// identity both use the canonical serialization of the full subtree, so two
// structurally equal values always compare and hash identically regardless
// of key order or whitespace.
func Diff(left, right gjson.Result) *Delta {
	if canonical(left) == canonical(right) {
		return nil
	}
	switch {
	case left.IsObject() && right.IsObject():
		return diffObject(left, right)
	case left.IsArray() && right.IsArray():
		return diffArray(left, right)
	default:
		return &Delta{Op: Changed, Old: left.Raw, New: right.Raw, From: -1, To: -1}
	}
}

func diffObject(left, right gjson.Result) *Delta {
	lkeys, lvals := members(left)
	rkeys, rvals := members(right)

	fields := make(map[string]*Delta)
	for _, k := range lkeys {
		lv := lvals[k]
		rv, ok := rvals[k]
		if !ok {
			fields[k] = &Delta{Op: Removed, Old: lv.Raw, From: -1, To: -1}
			continue
		}
		if child := Diff(lv, rv); child != nil {
			fields[k] = child
		}
	}
	for _, k := range rkeys {
		if _, ok := lvals[k]; !ok {
			fields[k] = &Delta{Op: Added, New: rvals[k].Raw, From: -1, To: -1}
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &Delta{Op: Nested, Fields: fields, From: -1, To: -1}
}

func diffArray(left, right gjson.Result) *Delta {
	lv := left.Array()
	rv := right.Array()

	// Element identity is the canonical serialization of the full value.
	// Equal elements are matched first, greedily in document order; a
	// matched pair at different indices is a move.
	unused := make(map[string][]int, len(rv))
	for j, r := range rv {
		key := canonical(r)
		unused[key] = append(unused[key], j)
	}

	matched := make(map[int]int, len(lv)) // left index -> right index
	taken := make(map[int]bool, len(rv))
	for i, l := range lv {
		key := canonical(l)
		if js := unused[key]; len(js) > 0 {
			matched[i] = js[0]
			taken[js[0]] = true
			unused[key] = js[1:]
		}
	}

	// Whatever is left unmatched on both sides is paired up in order and
	// recursed into; the surplus of the longer side is pure addition or
	// removal.
	var lrest, rrest []int
	for i := range lv {
		if _, ok := matched[i]; !ok {
			lrest = append(lrest, i)
		}
	}
	for j := range rv {
		if !taken[j] {
			rrest = append(rrest, j)
		}
	}

	var items []*Delta
	for i := range lv {
		if j, ok := matched[i]; ok && i != j {
			items = append(items, &Delta{Op: Moved, Old: lv[i].Raw, New: rv[j].Raw, From: i, To: j})
		}
	}
	for n := 0; n < len(lrest) || n < len(rrest); n++ {
		switch {
		case n >= len(rrest):
			i := lrest[n]
			items = append(items, &Delta{Op: Removed, Old: lv[i].Raw, From: i, To: -1})
		case n >= len(lrest):
			j := rrest[n]
			items = append(items, &Delta{Op: Added, New: rv[j].Raw, From: -1, To: j})
		default:
			i, j := lrest[n], rrest[n]
			if i == j {
				child := Diff(lv[i], rv[j])
				if child == nil {
					// Equal values can't both be unmatched; this is
					// unreachable, but a nil child must not crash.
					continue
				}
				child.From, child.To = i, j
				items = append(items, child)
			} else {
				items = append(items, &Delta{Op: MovedChanged, Old: lv[i].Raw, New: rv[j].Raw, From: i, To: j})
			}
		}
	}

	if len(items) == 0 {
		return nil
	}
	return &Delta{Op: Nested, Items: items, From: -1, To: -1}
}

// members collects an object's keys in document order and a key -> value
// lookup. gjson's ForEach preserves the order keys appear in the source.
func members(v gjson.Result) ([]string, map[string]gjson.Result) {
	var keys []string
	vals := make(map[string]gjson.Result)
	v.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		keys = append(keys, k)
		vals[k] = value
		return true
	})
	return keys, vals
}

// canonical reduces a value to its identity: a minified serialization with
// all object keys sorted. This re-serializes the subtree on every call,
// which is fine at the input sizes this tool targets.
func canonical(v gjson.Result) string {
	b := pretty.PrettyOptions([]byte(v.Raw), &pretty.Options{Indent: " ", SortKeys: true})
	return string(pretty.Ugly(b))
}
