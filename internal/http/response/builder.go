package response

import (
	"tinyhttpd/internal/http/header"
	"tinyhttpd/internal/http/proto"
)

const textPlain = "text/plain"

// Builder assembles a Response. Content-Type and Content-Length are never set
// by callers: they are derived from the body in Build.
//
// A response without a body always carries "Content-Length: 0" and no
// Content-Type, whatever the status.
type Builder struct {
	status proto.Status
	body   *proto.Body
}

// New returns a builder for a 200 OK response without a body.
func New() *Builder {
	return &Builder{status: proto.StatusOK}
}

func OK() *Builder                  { return New() }
func Created() *Builder             { return New().SetStatus(proto.StatusCreated) }
func BadRequest() *Builder          { return New().SetStatus(proto.StatusBadRequest) }
func NotFound() *Builder            { return New().SetStatus(proto.StatusNotFound) }
func InternalServerError() *Builder { return New().SetStatus(proto.StatusInternalServerError) }

// SetStatus ignores codes outside the declared status set.
func (b *Builder) SetStatus(status proto.Status) *Builder {
	if !status.Valid() {
		return b
	}
	b.status = status
	return b
}

func (b *Builder) SetBody(body proto.Body) *Builder {
	b.body = &body
	return b
}

func (b *Builder) SetText(s string) *Builder {
	return b.SetBody(proto.TextBody(s))
}

func (b *Builder) SetBytes(data []byte) *Builder {
	return b.SetBody(proto.BytesBody(data))
}

// Build finalizes the response. The builder may be reused; later calls do
// not affect responses already built.
func (b *Builder) Build() *Response {
	var headers header.Table
	resp := &Response{statusLine: proto.NewStatusLine(b.status)}

	if b.body == nil {
		headers.SetContentLength(0)
	} else {
		body := *b.body
		headers.SetContentType(textPlain)
		headers.SetContentLength(body.Len())
		resp.body = &body
	}

	resp.headers = headers
	return resp
}
