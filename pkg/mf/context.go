package mf

import (
	"context"

	"github.com/mf-api/server/pkg/mf/container"
)

// Context is the single argument every resource controller (§4.E) handler
// receives. It embeds the Request Adapter's normalized record (§4.A) and
// the shared Container, following the teacher's pattern of making a
// handler's signature independent of net/http so the same controller code
// could, in principle, be driven by a non-HTTP transport.
type Context struct {
	context.Context

	// Request is embedded (not wrapped behind methods) so handlers read
	// params/body/headers directly off ctx, same as the teacher's Context.
	Request

	*container.Container
}

// Bind decodes the request body into i, delegating to the Request Adapter.
func (c *Context) Bind(i any) error {
	return c.Request.Bind(i)
}

func newContext(r Request, c *container.Container) *Context {
	return &Context{
		Context:   r.Context(),
		Request:   r,
		Container: c,
	}
}

// NewContext builds a Context directly from a Request Adapter and a
// Container, bypassing the HTTP wrapping New's handlers go through. Used
// by resource controller tests the way the teacher's gofr.NewContext is
// used to drive handler tests without a live server.
func NewContext(r Request, c *container.Container) *Context {
	return newContext(r, c)
}
