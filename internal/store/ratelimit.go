package store

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimit wraps open so that every remote call first waits on limiter.
// The limiter is shared by all stores the returned Opener produces. A nil
// limiter returns open unchanged.
func RateLimit(open Opener, limiter *rate.Limiter) Opener {
	if limiter == nil {
		return open
	}
	return func(ctx context.Context, credential string) (Store, error) {
		inner, err := open(ctx, credential)
		if err != nil {
			return nil, err
		}
		return &limitedStore{inner: inner, limiter: limiter}, nil
	}
}

// NewLimiter builds a limiter allowing perSecond calls with a burst of one.
// A non-positive rate disables limiting and returns nil.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

type limitedStore struct {
	inner   Store
	limiter *rate.Limiter
}

func (s *limitedStore) Create(ctx context.Context, collectionID string, fields Fields) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return s.inner.Create(ctx, collectionID, fields)
}

func (s *limitedStore) Archive(ctx context.Context, id string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return s.inner.Archive(ctx, id)
}
