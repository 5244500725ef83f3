package trace

import "context"

// scope is what a context carries for tracing: the tracer and the span new
// spans are parented to.
type scope struct {
	tracer Tracer
	span   uint64
}

type scopeKey struct{}

func scopeOf(ctx context.Context) scope {
	if ctx != nil {
		if sc, ok := ctx.Value(scopeKey{}).(scope); ok {
			return sc
		}
	}
	return scope{tracer: Nop}
}

// FromContext returns the Tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer { return scopeOf(ctx).tracer }

// WithTracer attaches t to ctx. Spans begun from the result are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, scopeKey{}, scope{tracer: t})
}

// CurrentSpan returns the ID of the span attached to ctx, or 0.
func CurrentSpan(ctx context.Context) uint64 { return scopeOf(ctx).span }

// WithSpan makes s the parent of spans begun from the returned context.
func WithSpan(ctx context.Context, s *Span) context.Context {
	sc := scopeOf(ctx)
	sc.span = s.ID()
	return context.WithValue(ctx, scopeKey{}, sc)
}
