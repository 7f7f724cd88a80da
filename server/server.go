// Package server serves a comparison session over HTTP: the rendered
// report page plus JSON endpoints for ad-hoc format and compare requests.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"docdiff.io/compare"
	"docdiff.io/report"
)

// Session is the state the server presents: the two input texts and their
// comparison result. Sessions are immutable; a change on disk produces a
// whole new session.
type Session struct {
	Title       string
	ContentType compare.ContentType
	Left, Right string
	Result      *compare.Result

	// LeftName and RightName are the file names the inputs were loaded
	// from, if any. The source view uses them to pick a lexer; when empty
	// the content type decides.
	LeftName, RightName string
}

// NewSession compares left and right and wraps the result for serving.
func NewSession(title, left, right string, ct compare.ContentType) (*Session, error) {
	res, err := compare.Compare(left, right, ct, compare.Options{Annotate: report.Annotate})
	if err != nil {
		return nil, err
	}
	return &Session{
		Title:       title,
		ContentType: ct,
		Left:        left,
		Right:       right,
		Result:      res,
	}, nil
}

// Server serves a single session via HTTP.
type Server struct {
	http    *http.Server
	handler *handler
	errc    chan error
}

// Run creates a new server and runs it in a new goroutine.
func Run(addr string, session *Session) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("starting HTTP server: %v", err)
	}

	h := &handler{}
	h.session.Store(session)

	s := &Server{
		http: &http.Server{
			Handler: h,
		},
		handler: h,
		errc:    make(chan error),
	}

	go func() {
		if err := s.http.Serve(l); err != nil && err != http.ErrServerClosed {
			s.errc <- err
		}
	}()

	return s, nil
}

// ReplaceSession replaces the session to serve with the one provided.
func (s *Server) ReplaceSession(session *Session) {
	s.handler.session.Store(session)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %v", err)
	}
	close(s.errc)
	return nil
}

// Error returns a channel to listen to errors while serving.
func (s *Server) Error() <-chan error {
	return s.errc
}
