package request

import (
	"tinyhttpd/internal/http/header"
	"tinyhttpd/internal/http/proto"
)

// Request is one parsed message. It is read-only after Parse returns it.
type Request struct {
	method  proto.Method
	path    string
	version proto.Version
	headers header.Table
	body    *proto.Body
}

// New builds a Request directly, mostly for handlers under test.
func New(method proto.Method, path string, headers header.Table, body *proto.Body) *Request {
	return &Request{
		method:  method,
		path:    path,
		version: proto.Version11,
		headers: headers,
		body:    body,
	}
}

func (r *Request) Method() proto.Method   { return r.method }
func (r *Request) Path() string           { return r.path }
func (r *Request) Version() proto.Version { return r.version }

// Headers returns a copy of the header table.
func (r *Request) Headers() header.Table { return r.headers }

// Body returns the payload and whether one was sent.
func (r *Request) Body() (proto.Body, bool) {
	if r.body == nil {
		return proto.Body{}, false
	}
	return *r.body, true
}
