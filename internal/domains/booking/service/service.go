package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"leedz/config"
	"leedz/infras/otel"
	"leedz/internal/domains/booking/model"
	"leedz/internal/domains/booking/model/dto"
	"leedz/internal/domains/booking/repository"
	"leedz/shared"
	"leedz/shared/cache"
	"leedz/shared/constant"
	gDto "leedz/shared/dto"
)

const (
	CacheBookingsByClient = "booking:byclient"
)

// Booking serves the sidebar's booking history panel: every booking for one
// client, newest first.
type Booking interface {
	GetByClient(ctx context.Context, clientID string) ([]dto.BookingResponse, error)
}

type serviceImpl struct {
	repo  repository.Booking
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetByClient(ctx context.Context, clientID string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBookingsByClient")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheBookingsByClient, clientID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for client bookings")

		return res, nil
	}

	params := gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	models, err := s.repo.GetAll(ctx, params, shared.FilterByID(clientID, model.FieldClientID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get client bookings")

		return nil, fmt.Errorf("failed to get client bookings: %w", err)
	}

	res = dto.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save client bookings to cache")
		}
	}()

	return res, nil
}
