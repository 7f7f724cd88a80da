package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"znkr.io/diff"
	"znkr.io/diff/textdiff"

	"docdiff.io/align"
	"docdiff.io/compare"
	"docdiff.io/report"
)

var (
	compareType    string
	compareUnified bool
	compareHTML    bool
	compareMinify  bool
	compareOut     string
)

var compareCmd = &cobra.Command{
	Use:   "compare <left> <right>",
	Short: "Compare two documents line by line and structurally",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		left, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading left input: %v", err)
		}
		right, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("reading right input: %v", err)
		}

		ct := contentType(compareType, args[0])
		res, err := compare.Compare(string(left), string(right), ct, compare.Options{
			Annotate: report.Annotate,
		})
		if err != nil {
			return err
		}

		var out []byte
		switch {
		case compareHTML:
			out, err = report.Render(res, report.Options{
				Title:  fmt.Sprintf("%s vs %s", args[0], args[1]),
				Minify: compareMinify,
			})
			if err != nil {
				return err
			}
		case compareUnified:
			out = []byte(unified(string(left), string(right)))
		default:
			out = []byte(renderText(res))
		}

		if compareOut != "" {
			if err := os.WriteFile(compareOut, out, 0644); err != nil {
				return fmt.Errorf("writing output: %v", err)
			}
		} else {
			os.Stdout.Write(out)
		}

		if res.HasChanges {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareType, "type", "", "content type: json or markdown (default: inferred from the file extension)")
	compareCmd.Flags().BoolVar(&compareUnified, "unified", false, "print a unified text diff of the raw inputs")
	compareCmd.Flags().BoolVar(&compareHTML, "html", false, "render an HTML report")
	compareCmd.Flags().BoolVar(&compareMinify, "minify", false, "minify the HTML report")
	compareCmd.Flags().StringVar(&compareOut, "out", "", "write output to this file instead of stdout")
}

// renderText prints the edit script with diff-style prefixes and a summary
// line. Modified pairs come out as a removal directly followed by an
// addition, which is how the script encodes them.
func renderText(res *compare.Result) string {
	var sb strings.Builder
	for _, u := range res.Script {
		switch u.Op {
		case align.Unchanged:
			sb.WriteString("  ")
		case align.Added, align.ModifiedNew:
			sb.WriteString("+ ")
		case align.Removed, align.ModifiedOld:
			sb.WriteString("- ")
		}
		sb.WriteString(u.Line)
		sb.WriteByte('\n')
	}
	st := res.Stats
	fmt.Fprintf(&sb, "\n%d added, %d removed, %d modified\n", st.Added, st.Removed, st.Modified)
	return sb.String()
}

// unified renders a plain unified diff of the raw inputs. This view is
// presentational: it bypasses canonicalization and the edit-script
// classification entirely.
func unified(left, right string) string {
	var sb strings.Builder
	for _, edit := range textdiff.Edits(left, right, textdiff.IndentHeuristic()) {
		switch edit.Op {
		case diff.Match:
			sb.WriteString(" ")
		case diff.Delete:
			sb.WriteString("-")
		case diff.Insert:
			sb.WriteString("+")
		}
		sb.WriteString(strings.TrimSuffix(edit.Line, "\n"))
		sb.WriteByte('\n')
	}
	return sb.String()
}
