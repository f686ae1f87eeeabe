package router

import (
	"strings"

	"tinyhttpd/internal/http/request"
	"tinyhttpd/internal/http/response"
)

// Handler turns a request into a response. It must always return a response.
type Handler interface {
	Serve(req *request.Request) *response.Response
}

type HandlerFunc func(req *request.Request) *response.Response

func (f HandlerFunc) Serve(req *request.Request) *response.Response {
	return f(req)
}

type route struct {
	pattern string
	prefix  bool
	handler Handler
}

func (r route) match(path string) bool {
	if r.prefix {
		return strings.HasPrefix(path, r.pattern)
	}
	return path == r.pattern
}

// Router checks its routes in registration order and serves the first match.
// It is not safe to register routes while serving.
type Router struct {
	routes   []route
	notFound Handler
}

func New() *Router {
	return &Router{
		notFound: HandlerFunc(func(*request.Request) *response.Response {
			return response.NotFound().Build()
		}),
	}
}

// Handle registers an exact path match.
func (rt *Router) Handle(path string, h Handler) {
	rt.routes = append(rt.routes, route{pattern: path, handler: h})
}

// HandlePrefix registers a path prefix match.
func (rt *Router) HandlePrefix(prefix string, h Handler) {
	rt.routes = append(rt.routes, route{pattern: prefix, prefix: true, handler: h})
}

func (rt *Router) Serve(req *request.Request) *response.Response {
	for _, r := range rt.routes {
		if r.match(req.Path()) {
			return r.handler.Serve(req)
		}
	}
	return rt.notFound.Serve(req)
}
