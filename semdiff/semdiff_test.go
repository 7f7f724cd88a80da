package semdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
)

func TestDiffEqual(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"scalar", `42`},
		{"string", `"hello"`},
		{"null", `null`},
		{"empty_object", `{}`},
		{"empty_array", `[]`},
		{"nested", `{"a":[1,{"b":null,"c":[[]]}],"d":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := gjson.Parse(tt.in)
			if got := Diff(v, v); got != nil {
				t.Errorf("Diff(v, v) = %+v, want nil", got)
			}
		})
	}
}

func TestDiffKeyOrderIrrelevant(t *testing.T) {
	left := gjson.Parse(`{"a":1,"b":{"c":2,"d":3}}`)
	right := gjson.Parse(`{"b":{"d":3,"c":2},"a":1}`)
	if got := Diff(left, right); got != nil {
		t.Errorf("Diff() = %+v, want nil for reordered keys", got)
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		want        *Delta
	}{
		{
			name:  "changed_leaf",
			left:  `{"a":1}`,
			right: `{"a":2}`,
			want: &Delta{
				Op: Nested, From: -1, To: -1,
				Fields: map[string]*Delta{
					"a": {Op: Changed, Old: "1", New: "2", From: -1, To: -1},
				},
			},
		},
		{
			name:  "added_and_removed_keys",
			left:  `{"gone":true,"kept":0}`,
			right: `{"kept":0,"new":null}`,
			want: &Delta{
				Op: Nested, From: -1, To: -1,
				Fields: map[string]*Delta{
					"gone": {Op: Removed, Old: "true", From: -1, To: -1},
					"new":  {Op: Added, New: "null", From: -1, To: -1},
				},
			},
		},
		{
			name:  "nested_recursion",
			left:  `{"outer":{"inner":1}}`,
			right: `{"outer":{"inner":2}}`,
			want: &Delta{
				Op: Nested, From: -1, To: -1,
				Fields: map[string]*Delta{
					"outer": {
						Op: Nested, From: -1, To: -1,
						Fields: map[string]*Delta{
							"inner": {Op: Changed, Old: "1", New: "2", From: -1, To: -1},
						},
					},
				},
			},
		},
		{
			name:  "type_change_is_a_leaf",
			left:  `{"v":{"a":1}}`,
			right: `{"v":[1]}`,
			want: &Delta{
				Op: Nested, From: -1, To: -1,
				Fields: map[string]*Delta{
					"v": {Op: Changed, Old: `{"a":1}`, New: `[1]`, From: -1, To: -1},
				},
			},
		},
		{
			name:  "array_element_moves",
			left:  `{"list":["x","y"]}`,
			right: `{"list":["y","x"]}`,
			want: &Delta{
				Op: Nested, From: -1, To: -1,
				Fields: map[string]*Delta{
					"list": {
						Op: Nested, From: -1, To: -1,
						Items: []*Delta{
							{Op: Moved, Old: `"x"`, New: `"x"`, From: 0, To: 1},
							{Op: Moved, Old: `"y"`, New: `"y"`, From: 1, To: 0},
						},
					},
				},
			},
		},
		{
			name:  "array_append",
			left:  `["a"]`,
			right: `["a","b"]`,
			want: &Delta{
				Op: Nested, From: -1, To: -1,
				Items: []*Delta{
					{Op: Added, New: `"b"`, From: -1, To: 1},
				},
			},
		},
		{
			name:  "array_remove",
			left:  `["a","b"]`,
			right: `["b"]`,
			want: &Delta{
				Op: Nested, From: -1, To: -1,
				Items: []*Delta{
					{Op: Moved, Old: `"b"`, New: `"b"`, From: 1, To: 0},
					{Op: Removed, Old: `"a"`, From: 0, To: -1},
				},
			},
		},
		{
			name:  "array_change_in_place",
			left:  `[1,2]`,
			right: `[1,3]`,
			want: &Delta{
				Op: Nested, From: -1, To: -1,
				Items: []*Delta{
					{Op: Changed, Old: "2", New: "3", From: 1, To: 1},
				},
			},
		},
		{
			name:  "moved_and_changed",
			left:  `[{"id":1},"k"]`,
			right: `["k",{"id":2}]`,
			want: &Delta{
				Op: Nested, From: -1, To: -1,
				Items: []*Delta{
					{Op: Moved, Old: `"k"`, New: `"k"`, From: 1, To: 0},
					{Op: MovedChanged, Old: `{"id":1}`, New: `{"id":2}`, From: 0, To: 1},
				},
			},
		},
		{
			name:  "moved_object_identity_ignores_key_order",
			left:  `[{"a":1,"b":2},"pad"]`,
			right: `["pad",{"b":2,"a":1}]`,
			want: &Delta{
				Op: Nested, From: -1, To: -1,
				Items: []*Delta{
					{Op: Moved, Old: `{"a":1,"b":2}`, New: `{"b":2,"a":1}`, From: 0, To: 1},
					{Op: Moved, Old: `"pad"`, New: `"pad"`, From: 1, To: 0},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(gjson.Parse(tt.left), gjson.Parse(tt.right))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
