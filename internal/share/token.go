package share

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"leedz/internal/marketplace"
	"leedz/internal/store/hostcache"
)

// TokenSource yields a usable marketplace session token.
type TokenSource interface {
	SessionToken(ctx context.Context) (string, error)
}

// cachedTokenSource serves the cached token while it is still live and
// refetches from the marketplace when it is missing or expired.
type cachedTokenSource struct {
	cache  hostcache.Cache
	market marketplace.Client
	email  string
}

func NewTokenSource(cache hostcache.Cache, market marketplace.Client, email string) TokenSource {
	return &cachedTokenSource{cache: cache, market: market, email: email}
}

func (s *cachedTokenSource) SessionToken(ctx context.Context) (string, error) {
	cached, _, err := s.cache.LoadToken(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("token cache read failed, refetching")
	}

	if cached != "" {
		return cached, nil
	}

	token, err := s.market.GetToken(ctx, s.email)
	if err != nil {
		return "", fmt.Errorf("fetching session token: %w", err)
	}

	if err := s.cache.SaveToken(ctx, token.Token, token.ExpiresAt()); err != nil {
		log.Warn().Err(err).Msg("token cache write failed")
	}

	return token.Token, nil
}
