package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"leedz/config"
	"leedz/infras/otel"
	"leedz/internal/domains/client/model"
	"leedz/internal/domains/client/model/dto"
	"leedz/internal/domains/client/repository"
	"leedz/shared"
	"leedz/shared/cache"
	"leedz/shared/constant"
	gDto "leedz/shared/dto"
)

const (
	CacheGetClient    = "client:get"
	CacheSearchClient = "client:search"
)

// Client resolves people records. Search is the sidebar's page-identity
// lookup: the email match is exact, the name match is a case-insensitive
// substring. A miss is a nil response, not an error.
type Client interface {
	Search(ctx context.Context, email, name string) (*dto.ClientResponse, error)
	Get(ctx context.Context, id string) (*dto.ClientResponse, error)
}

type serviceImpl struct {
	repo  repository.Client
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Client {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Search(ctx context.Context, email, name string) (res *dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchClient")
	defer scope.End()
	defer scope.TraceIfError(err)

	if email == "" && name == "" {
		return nil, nil
	}

	cacheKey := shared.BuildCacheKey(CacheSearchClient, strings.ToLower(email), strings.ToLower(name))

	var cached dto.ClientResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached.ID != "" {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for client search")

		return &cached, nil
	}

	found, err := s.lookup(ctx, email, name)
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, nil
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, found, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save client search to cache")
		}
	}()

	return found, nil
}

func (s *serviceImpl) lookup(ctx context.Context, email, name string) (*dto.ClientResponse, error) {
	if email != "" {
		mod, err := s.repo.Get(ctx, filterByEmail(email))
		if err != nil {
			log.Error().Err(err).Msg("failed to search client by email")

			return nil, fmt.Errorf("failed to search client by email: %w", err)
		}

		if mod.ID != "" {
			res := &dto.ClientResponse{}
			res.FromModel(mod)

			return res, nil
		}
	}

	if name == "" {
		return nil, nil
	}

	mod, err := s.repo.Get(ctx, filterByName(name))
	if err != nil {
		log.Error().Err(err).Msg("failed to search client by name")

		return nil, fmt.Errorf("failed to search client by name: %w", err)
	}

	if mod.ID == "" {
		return nil, nil
	}

	res := &dto.ClientResponse{}
	res.FromModel(mod)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res *dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetClient")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheGetClient, id)

	var cached dto.ClientResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached.ID != "" {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for client")

		return &cached, nil
	}

	mod, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get client")

		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	if mod.ID == "" {
		return nil, nil
	}

	found := &dto.ClientResponse{}
	found.FromModel(mod)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, found, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save client to cache")
		}
	}()

	return found, nil
}

func filterByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(email),
				Table:    model.TableName,
			},
		},
	}
}

func filterByName(name string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    name,
				Table:    model.TableName,
			},
		},
	}
}
