// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package serve implements an HTTP server that renders the results of Go
// handler functions as JSON documents.
//
// A handler returns an arbitrary Go value, which is converted to a document
// by jdoc.ToNode and written as compact JSON text. Errors reported by the
// handler or by the conversion become JSON error responses:
//
//	{"error": "user 5 not found"}
//
// Handlers are grouped into controllers, each of which serves routes under a
// common path prefix. Route paths may contain variables of the form {name},
// whose values are available from the Request.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/creachadair/jdoc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var (
	// ErrNotFound is reported by a handler for a resource that does not
	// exist. It is rendered with status 404.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest is reported by a handler for a request with missing or
	// invalid parameters. It is rendered with status 400.
	ErrBadRequest = errors.New("bad request")
)

// A HandlerFunc handles a request and returns a value to be rendered as JSON.
type HandlerFunc func(*Request) (any, error)

// A Route binds a path, relative to the prefix of its controller, to a handler.
type Route struct {
	Path   string
	Handle HandlerFunc
}

// A Controller is a collection of routes sharing a path prefix.
type Controller interface {
	// Prefix returns the path under which the routes are served, for
	// example "api/users". An empty prefix serves routes from the root.
	Prefix() string

	// Routes returns the routes served by the controller.
	Routes() []Route
}

// Options are settings for a Server. A zero value is ready for use.
type Options struct {
	// Logger receives a line for each request served.
	// If nil, log.Default() is used.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// A Server routes GET requests to the handlers of its controllers.
// It implements http.Handler.
type Server struct {
	mux    *chi.Mux
	logger *log.Logger
}

// New constructs a new Server with the given options and no routes.
// Use Register or Handle to add routes.
func New(opts Options) *Server {
	s := &Server{mux: chi.NewRouter(), logger: opts.logger()}
	s.mux.Use(middleware.RequestID, s.logRequests, s.recoverPanics)
	s.mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Errorf("no route for %s", r.URL.Path))
	})
	s.mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	})
	return s
}

// Register adds the routes of each controller to s.
func (s *Server) Register(cs ...Controller) {
	for _, c := range cs {
		for _, r := range c.Routes() {
			s.Handle(path.Join(c.Prefix(), r.Path), r.Handle)
		}
	}
}

// Handle adds a route for the given path to s. The path is relative to the
// root, and the leading slash is optional.
func (s *Server) Handle(route string, h HandlerFunc) {
	s.mux.Get(path.Join("/", route), s.handler(h))
}

// Routes returns the paths of all the routes registered with s, in order.
func (s *Server) Routes() []string {
	var out []string
	chi.Walk(s.mux, func(_, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		out = append(out, route)
		return nil
	})
	slices.Sort(out)
	return slices.Compact(out)
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// ListenAndServe serves HTTP requests on addr until ctx ends, then shuts down
// the listener and waits for active requests to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down", "addr", addr)
	}
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := h(&Request{HTTP: r})
		if err != nil {
			writeError(w, statusOf(err), err)
			return
		}
		n, err := jdoc.ToNode(v)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeNode(w, http.StatusOK, n)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				"id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed", time.Since(start).Round(time.Microsecond),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// recoverPanics reports a panic in a handler as a JSON error response with
// status 500. An http.ErrAbortHandler panic is propagated to the server.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			} else if v == http.ErrAbortHandler {
				panic(v)
			}
			s.logger.Error("handler panicked",
				"id", middleware.GetReqID(r.Context()),
				"path", r.URL.Path,
				"panic", v,
			)
			writeError(w, http.StatusInternalServerError, fmt.Errorf("internal error: %v", v))
		}()
		next.ServeHTTP(w, r)
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeNode(w, code, jdoc.NewObject(jdoc.NewProperty("error", jdoc.NewString(err.Error()))))
}

func writeNode(w http.ResponseWriter, code int, n jdoc.Node) {
	body := n.JSON()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(code)
	w.Write([]byte(body))
}

// A Request is the argument to a HandlerFunc.
type Request struct {
	HTTP *http.Request // the underlying HTTP request
}

// Context returns the context of the request.
func (r *Request) Context() context.Context { return r.HTTP.Context() }

// PathValue returns the value of the named path variable, or "".
func (r *Request) PathValue(name string) string { return chi.URLParam(r.HTTP, name) }

// PathInt returns the value of the named path variable as an integer.
// It reports an error wrapping ErrBadRequest if the value is not an integer.
func (r *Request) PathInt(name string) (int, error) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, fmt.Errorf("%w: path variable %q is not an integer", ErrBadRequest, name)
	}
	return v, nil
}

// Query returns the value of the named query parameter, or "".
func (r *Request) Query(name string) string { return r.HTTP.URL.Query().Get(name) }

// QueryInt returns the value of the named query parameter as an integer.
// It reports an error wrapping ErrBadRequest if the parameter is missing or
// is not an integer.
func (r *Request) QueryInt(name string) (int, error) {
	s := r.Query(name)
	if s == "" {
		return 0, fmt.Errorf("%w: missing query parameter %q", ErrBadRequest, name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %q is not an integer", ErrBadRequest, name)
	}
	return v, nil
}
