package slicer

import "golang.org/x/time/rate"

// progressGate decides whether the next per-tile progress line is emitted.
type progressGate interface {
	allow() bool
}

type tokenBucketGate struct {
	limiter *rate.Limiter
}

// newTokenBucketGate builds a gate admitting perSecond lines per second. A
// non-positive rate disables throttling: the gate admits everything.
func newTokenBucketGate(perSecond float64, burst int) progressGate {
	if perSecond <= 0 {
		return &tokenBucketGate{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &tokenBucketGate{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (g *tokenBucketGate) allow() bool {
	if g == nil || g.limiter == nil {
		return true
	}
	return g.limiter.Allow()
}
