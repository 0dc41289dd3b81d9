package assetstore

import "context"

type requestIDKey struct{}

// WithRequestID attaches a request identifier propagated to the media host as
// an X-Request-ID header.
func WithRequestID(ctx context.Context, rid string) context.Context {
	if rid == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, rid)
}

func requestIDFrom(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}
