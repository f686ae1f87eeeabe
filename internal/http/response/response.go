package response

import (
	"io"

	"tinyhttpd/internal/http/header"
	"tinyhttpd/internal/http/proto"
)

// Response is an outgoing message. It can only be produced by Builder.Build
// and does not change afterwards.
type Response struct {
	statusLine proto.StatusLine
	headers    header.Table
	body       *proto.Body
}

func (r *Response) Status() proto.Status {
	return r.statusLine.Status
}

func (r *Response) StatusLine() proto.StatusLine {
	return r.statusLine
}

// Headers returns a copy; changing it does not affect the response.
func (r *Response) Headers() header.Table {
	return r.headers
}

func (r *Response) Body() (proto.Body, bool) {
	if r.body == nil {
		return proto.Body{}, false
	}
	return *r.body, true
}

// AppendTo appends the wire form of the response to dst.
func (r *Response) AppendTo(dst []byte) []byte {
	dst = r.statusLine.AppendTo(dst)
	dst = r.headers.AppendTo(dst)
	dst = append(dst, '\r', '\n')
	if r.body != nil {
		dst = r.body.AppendTo(dst)
	}
	return dst
}

func (r *Response) Bytes() []byte {
	size := 64
	if r.body != nil {
		size += r.body.Len()
	}
	return r.AppendTo(make([]byte, 0, size))
}

// WriteTo writes the whole response with a single Write call.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Bytes())
	return int64(n), err
}

func (r *Response) String() string {
	return string(r.Bytes())
}
