package compare

import "fmt"

// EmptyInputError reports that one or both inputs were blank after
// trimming. No comparison is attempted and no partial result is produced.
type EmptyInputError struct {
	Side string // "left", "right" or "both"
}

func (e *EmptyInputError) Error() string {
	if e.Side == "both" {
		return "both inputs are empty"
	}
	return fmt.Sprintf("%s input is empty", e.Side)
}

// ParseError reports that an input failed to parse as JSON. Msg carries the
// parser's diagnostic verbatim. Either side failing fails the whole
// comparison; there is no best-effort partial diff.
type ParseError struct {
	Side string // "left", "right", or empty for single-document requests
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Side == "" {
		return fmt.Sprintf("parsing input: %s", e.Msg)
	}
	return fmt.Sprintf("parsing %s input: %s", e.Side, e.Msg)
}

// ContentTypeError reports a request carrying a content type tag that names
// neither of the supported modes.
type ContentTypeError struct {
	ContentType ContentType
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("unknown content type %q", string(e.ContentType))
}
