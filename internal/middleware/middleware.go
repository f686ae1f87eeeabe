package middleware

import (
	"tinyhttpd/internal/router"
)

type Middleware func(next router.Handler) router.Handler

// Chain wraps h so that the first middleware is the outermost.
func Chain(h router.Handler, mws ...Middleware) router.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
