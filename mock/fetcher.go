package mock

import (
	"context"

	"github.com/fwojciec/webarticle"
)

var _ webarticle.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webarticle.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*webarticle.Resource, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*webarticle.Resource, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ webarticle.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of webarticle.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
