package response

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"tinyhttpd/internal/http/header"
	"tinyhttpd/internal/http/proto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWithoutBody(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		expect  string
	}{
		{"default is ok", New(), "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n"},
		{"created", Created(), "HTTP/1.1 201 Created\r\nContent-Length: 0\r\n\r\n"},
		{"bad request", BadRequest(), "HTTP/1.1 400 Bad Request\r\nContent-Length: 0\r\n\r\n"},
		{"not found", NotFound(), "HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n"},
		{"internal server error", InternalServerError(), "HTTP/1.1 500 Internal Server Error\r\nContent-Length: 0\r\n\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.builder.Build()
			assert.Equal(t, tt.expect, resp.String())

			_, ok := resp.Body()
			assert.False(t, ok)
			_, ok = resp.Headers().ContentType()
			assert.False(t, ok)
		})
	}
}

func TestSetStatusIgnoresUndeclaredCodes(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		status  proto.Status
		expect  proto.Status
	}{
		{"redirect on ok", New(), proto.Status(302), proto.StatusOK},
		{"zero on not found", NotFound(), proto.Status(0), proto.StatusNotFound},
		{"teapot on created", Created(), proto.Status(418), proto.StatusCreated},
		{"declared code applies", New(), proto.StatusBadRequest, proto.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.builder.SetStatus(tt.status).Build()
			assert.Equal(t, tt.expect, resp.Status())
			assert.NotContains(t, resp.String(), " \r\n")
		})
	}
}

func TestBuildPlainText(t *testing.T) {
	resp := OK().SetText("abc").Build()

	assert.Equal(t, proto.StatusOK, resp.Status())
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nabc", resp.String())

	var expect header.Table
	expect.SetContentType("text/plain")
	expect.SetContentLength(3)
	assert.True(t, expect.Equal(resp.Headers()))
}

func TestSetBodyTwiceKeepsHeadersConsistent(t *testing.T) {
	resp := New().SetText("a much longer body").SetBytes([]byte("xy")).Build()

	cl, ok := resp.Headers().ContentLength()
	require.True(t, ok)
	assert.Equal(t, "2", cl)
	body, ok := resp.Body()
	require.True(t, ok)
	assert.Equal(t, []byte("xy"), body.Bytes())
}

func TestContentLengthMatchesBody(t *testing.T) {
	bodies := []proto.Body{
		proto.TextBody(""),
		proto.TextBody("hello"),
		proto.TextBody("ünïcödé"),
		proto.BytesBody([]byte{0, 1, 2, 0xff}),
		proto.BytesBody(bytes.Repeat([]byte("z"), 70000)),
	}
	statuses := []proto.Status{
		proto.StatusOK,
		proto.StatusCreated,
		proto.StatusBadRequest,
		proto.StatusNotFound,
		proto.StatusInternalServerError,
	}

	for _, status := range statuses {
		for _, body := range bodies {
			resp := New().SetStatus(status).SetBody(body).Build()

			cl, ok := resp.Headers().ContentLength()
			require.True(t, ok)
			n, err := strconv.Atoi(cl)
			require.NoError(t, err)
			assert.Equal(t, body.Len(), n)

			wire := resp.Bytes()
			idx := bytes.Index(wire, []byte("\r\n\r\n"))
			require.NotEqual(t, -1, idx)
			assert.Equal(t, n, len(wire)-idx-4)
		}
	}
}

func TestBuiltResponseIsIsolatedFromBuilder(t *testing.T) {
	b := New().SetText("first")
	first := b.Build()

	b.SetStatus(proto.StatusNotFound).SetText("second body")
	second := b.Build()

	assert.Equal(t, proto.StatusOK, first.Status())
	body, _ := first.Body()
	assert.Equal(t, "first", body.String())
	cl, _ := first.Headers().ContentLength()
	assert.Equal(t, "5", cl)

	assert.Equal(t, proto.StatusNotFound, second.Status())

	h := first.Headers()
	h.SetContentLength(999)
	cl, _ = first.Headers().ContentLength()
	assert.Equal(t, "5", cl)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriteTo(t *testing.T) {
	resp := OK().SetText("hi").Build()

	var buf bytes.Buffer
	n, err := resp.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, resp.String(), buf.String())

	_, err = resp.WriteTo(failingWriter{})
	assert.Error(t, err)
}
