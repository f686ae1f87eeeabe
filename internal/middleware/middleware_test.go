package middleware

import (
	"testing"

	"tinyhttpd/internal/http/header"
	"tinyhttpd/internal/http/proto"
	"tinyhttpd/internal/http/request"
	"tinyhttpd/internal/http/response"
	"tinyhttpd/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestChainOrder(t *testing.T) {
	var calls []string
	tag := func(name string) Middleware {
		return func(next router.Handler) router.Handler {
			return router.HandlerFunc(func(req *request.Request) *response.Response {
				calls = append(calls, name)
				return next.Serve(req)
			})
		}
	}

	h := Chain(router.HandlerFunc(func(*request.Request) *response.Response {
		calls = append(calls, "handler")
		return response.OK().Build()
	}), tag("outer"), tag("inner"))

	h.Serve(request.New(proto.MethodGet, "/", header.Table{}, nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, calls)
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	inner := router.HandlerFunc(func(req *request.Request) *response.Response {
		return response.NotFound().Build()
	})
	h := AccessLog(logger)(inner)

	resp := h.Serve(request.New(proto.MethodPost, "/missing", header.Table{}, nil))
	assert.Equal(t, proto.StatusNotFound, resp.Status())

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request served", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/missing", fields["path"])
	assert.Equal(t, int64(404), fields["status"])
	assert.Equal(t, int64(0), fields["bytes"])
}
