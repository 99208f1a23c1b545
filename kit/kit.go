// Package kit holds the small transport-agnostic plumbing shared by the
// framework's surfaces: the Endpoint abstraction, middleware chaining, and
// context keys for run/session propagation.
//
// An Endpoint is a single operation (open a page, click, export a recording)
// expressed independently of how it was invoked — MCP tool call, HTTP
// handler, or direct Go call — so each surface is a thin decode layer.
package kit

import "context"

// Endpoint is a transport-agnostic operation.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint with cross-cutting behaviour.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares left-to-right: the first middleware is the
// outermost wrapper.
func Chain(mw ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mw) - 1; i >= 0; i-- {
			next = mw[i](next)
		}
		return next
	}
}
