package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync/atomic"

	"docdiff.io/compare"
	"docdiff.io/document"
	"docdiff.io/highlight"
	"docdiff.io/markdown"
	"docdiff.io/report"
)

type handler struct {
	session atomic.Pointer[Session]
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch req.URL.Path {
	case "/":
		h.serveReport(w, req)
	case "/api/result":
		h.serveResult(w, req)
	case "/api/compare":
		h.serveCompare(w, req)
	case "/api/format":
		h.serveFormat(w, req)
	case "/preview":
		h.servePreview(w, req)
	case "/source":
		h.serveSource(w, req)
	default:
		http.NotFound(w, req)
	}
}

func (h *handler) serveReport(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s := h.session.Load()

	b, err := report.Render(s.Result, report.Options{Title: s.Title})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		log.Printf("failed to render report: %v", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if req.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(b); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (h *handler) serveResult(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.session.Load().Result)
}

type compareRequest struct {
	Left  string `json:"left"`
	Right string `json:"right"`
	Type  string `json:"type"`
}

func (h *handler) serveCompare(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var cr compareRequest
	if err := json.NewDecoder(req.Body).Decode(&cr); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := compare.Compare(cr.Left, cr.Right, compare.ContentType(cr.Type), compare.Options{
		Annotate: report.Annotate,
	})
	if err != nil {
		// User errors come back inline so the client can render them next
		// to the inputs.
		var empty *compare.EmptyInputError
		var parse *compare.ParseError
		var ctype *compare.ContentTypeError
		if errors.As(err, &empty) || errors.As(err, &parse) || errors.As(err, &ctype) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type formatRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
	// Policy is optional: a request without one gets the default preset for
	// its content type.
	Policy *struct {
		IndentWidth            int  `json:"indentWidth"`
		Tab                    bool `json:"tab"`
		SortKeys               bool `json:"sortKeys"`
		TrimTrailingWhitespace bool `json:"trimTrailingWhitespace"`
		NormalizeHeadings      bool `json:"normalizeHeadings"`
		ListIndentWidth        int  `json:"listIndentWidth"`
		CollapseBlankRuns      bool `json:"collapseBlankRuns"`
		EnsureTrailingNewline  bool `json:"ensureTrailingNewline"`
	} `json:"policy"`
}

func (h *handler) serveFormat(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var fr formatRequest
	if err := json.NewDecoder(req.Body).Decode(&fr); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var doc document.Document
	switch ct := compare.ContentType(fr.Type); ct {
	case compare.JSON:
		var v any
		if err := json.Unmarshal([]byte(fr.Text), &v); err != nil {
			writeError(w, http.StatusUnprocessableEntity, &compare.ParseError{Msg: err.Error()})
			return
		}
		policy := document.DefaultJSON
		if fr.Policy != nil {
			policy = document.JSONPolicy{
				IndentWidth: fr.Policy.IndentWidth,
				Tab:         fr.Policy.Tab,
				SortKeys:    fr.Policy.SortKeys,
			}
		}
		doc = document.FormatJSON(fr.Text, policy)
	case compare.Markdown:
		policy := document.DefaultMarkdown
		if fr.Policy != nil {
			policy = document.MarkdownPolicy{
				TrimTrailingWhitespace: fr.Policy.TrimTrailingWhitespace,
				NormalizeHeadings:      fr.Policy.NormalizeHeadings,
				ListIndentWidth:        fr.Policy.ListIndentWidth,
				CollapseBlankRuns:      fr.Policy.CollapseBlankRuns,
				EnsureTrailingNewline:  fr.Policy.EnsureTrailingNewline,
			}
		}
		doc = document.NormalizeMarkdown(fr.Text, policy)
	default:
		writeError(w, http.StatusUnprocessableEntity, &compare.ContentTypeError{ContentType: ct})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Formatted string `json:"formatted"`
	}{doc.Text()})
}

func (h *handler) servePreview(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s := h.session.Load()
	if s.ContentType != compare.Markdown {
		http.NotFound(w, req)
		return
	}

	text := s.Left
	if req.URL.Query().Get("side") == "right" {
		text = s.Right
	}
	b, err := markdown.Render([]byte(text))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(b)
}

// serveSource renders one side of the session as a highlighted listing. The
// lexer comes from the side's file name when the session has one, otherwise
// from the content type.
func (h *handler) serveSource(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s := h.session.Load()

	text, name := s.Left, s.LeftName
	side := "left"
	if req.URL.Query().Get("side") == "right" {
		text, name = s.Right, s.RightName
		side = "right"
	}

	opt := highlight.Lang(string(s.ContentType))
	if name != "" {
		opt = highlight.LangFromFilename(name)
	}
	lines, err := highlight.Highlight(text, opt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		log.Printf("failed to highlight source: %v", err)
		return
	}

	b, err := report.RenderSource(s.Title+" ("+side+")", lines)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		log.Printf("failed to render source view: %v", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(b); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{err.Error()})
}
