package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

// dialFirst tries candidates in order, per spec.md's endpoint-resolution
// contract ("each candidate is tried in list order until one connects or
// all are exhausted"), returning the first connection that succeeds and
// which candidate produced it.
func dialFirst(ctx context.Context, candidates []Candidate, dial func(context.Context, Candidate) (net.Conn, error)) (net.Conn, Candidate, error) {
	if len(candidates) == 0 {
		return nil, Candidate{}, dnserrors.ErrNoResolverAvailable
	}
	var lastErr error
	for _, c := range candidates {
		conn, err := dial(ctx, c)
		if err == nil {
			return conn, c, nil
		}
		lastErr = err
	}
	return nil, Candidate{}, fmt.Errorf("%w: %v", dnserrors.ErrConnect, lastErr)
}

func deadlineFor(ctx context.Context, timeout time.Duration) time.Time {
	d := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}

func isTimeout(err error) bool {
	var ne net.Error
	if e, ok := err.(net.Error); ok {
		ne = e
		return ne.Timeout()
	}
	return false
}
