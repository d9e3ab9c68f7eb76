// Package dispatch routes command and query values to the handler
// registered for their type, decoupling the HTTP layer from handler
// implementations. The registry is populated once at startup.
package dispatch

import (
	"context"
	"fmt"
	"reflect"
)

type handlerFunc func(ctx context.Context, req any) (any, error)

// Dispatcher maps request types to handlers. Register during startup only;
// Send is safe for concurrent use once wiring is done.
type Dispatcher struct {
	handlers map[reflect.Type]handlerFunc
}

func New() *Dispatcher {
	return &Dispatcher{handlers: make(map[reflect.Type]handlerFunc)}
}

// Register binds handle to the request type Req. A second registration for
// the same type is a wiring bug and panics.
func Register[Req, Res any](d *Dispatcher, handle func(context.Context, Req) (Res, error)) {
	t := reflect.TypeOf((*Req)(nil)).Elem()
	if _, dup := d.handlers[t]; dup {
		panic(fmt.Sprintf("dispatch: handler already registered for %s", t))
	}
	d.handlers[t] = func(ctx context.Context, req any) (any, error) {
		return handle(ctx, req.(Req))
	}
}

// Send routes req to its registered handler and returns the typed result.
func Send[Req, Res any](ctx context.Context, d *Dispatcher, req Req) (Res, error) {
	var zero Res
	t := reflect.TypeOf((*Req)(nil)).Elem()
	handle, ok := d.handlers[t]
	if !ok {
		return zero, fmt.Errorf("dispatch: no handler registered for %s", t)
	}
	res, err := handle(ctx, req)
	if err != nil {
		return zero, err
	}
	out, _ := res.(Res)
	return out, nil
}
