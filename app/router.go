package app

import (
	"fmt"
	"regexp"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]custody.Handler
}

var _ custody.Registry = (*Router)(nil)
var _ custody.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]custody.Handler, 10),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h custody.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If no path is found,
// returns a noSuchPath Handler. This function always returns a non-nil
// value.
func (r *Router) Handler(path string) custody.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return &notFoundHandler{path: path}
}

// Check dispatches to the handler registered for the message path.
func (r *Router) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the handler registered for the message path.
func (r *Router) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments.
type notFoundHandler struct {
	path string
}

func (h *notFoundHandler) Check(custody.Context, custody.KVStore, custody.Tx) (*custody.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}

func (h *notFoundHandler) Deliver(custody.Context, custody.KVStore, custody.Tx) (*custody.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}
