package middleware

import (
	"time"

	"tinyhttpd/internal/http/request"
	"tinyhttpd/internal/http/response"
	"tinyhttpd/internal/router"

	"go.uber.org/zap"
)

func AccessLog(logger *zap.Logger) Middleware {
	return func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(req *request.Request) *response.Response {
			start := time.Now()
			resp := next.Serve(req)

			size := 0
			if body, ok := resp.Body(); ok {
				size = body.Len()
			}
			logger.Info("request served",
				zap.Stringer("method", req.Method()),
				zap.String("path", req.Path()),
				zap.Int("status", resp.Status().Code()),
				zap.Int("bytes", size),
				zap.Duration("elapsed", time.Since(start)),
			)
			return resp
		})
	}
}
