package xcontext

import "context"

type holderKey struct{}

// resultHolder lets middleware running after a handler observe the response
// or error the handler produced, without threading a mutable context type
// through every call.
type resultHolder struct {
	response any
	err      error
}

func WithResultHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, holderKey{}, &resultHolder{})
}

func SetResponse(ctx context.Context, resp any) {
	if h, ok := ctx.Value(holderKey{}).(*resultHolder); ok {
		h.response = resp
	}
}

func Response(ctx context.Context) any {
	if h, ok := ctx.Value(holderKey{}).(*resultHolder); ok {
		return h.response
	}

	return nil
}

func SetError(ctx context.Context, err error) {
	if h, ok := ctx.Value(holderKey{}).(*resultHolder); ok {
		h.err = err
	}
}

func Error(ctx context.Context) error {
	if h, ok := ctx.Value(holderKey{}).(*resultHolder); ok {
		return h.err
	}

	return nil
}
