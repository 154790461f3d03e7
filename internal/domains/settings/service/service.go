package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"leedz/config"
	"leedz/infras/otel"
	"leedz/internal/domains/settings/model"
	"leedz/internal/domains/settings/model/dto"
	"leedz/internal/domains/settings/repository"
	"leedz/shared"
	"leedz/shared/cache"
	"leedz/shared/constant"
	"leedz/shared/timezone"
)

const (
	CacheGetSettings = "settings:get"
)

// Settings serves the single per-user configuration record. Get returns nil
// until the first save.
type Settings interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Put(ctx context.Context, req dto.SettingsPayload) error
}

type serviceImpl struct {
	repo  repository.Settings
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Settings, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Settings {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res *dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSettings")
	defer scope.End()
	defer scope.TraceIfError(err)

	var cached dto.SettingsResponse
	if err := s.cache.Get(ctx, CacheGetSettings, &cached); err == nil {
		log.Info().Str("cacheKey", CacheGetSettings).Msg("cache hit for settings")

		return &cached, nil
	}

	mod, err := s.repo.Get(ctx, shared.FilterByID(model.DefaultID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get settings")

		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if mod.ID == "" {
		return nil, nil
	}

	found := &dto.SettingsResponse{}
	found.FromModel(mod)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, CacheGetSettings, found, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save settings to cache")
		}
	}()

	return found, nil
}

// Put replaces the settings row wholesale, creating it on first save.
func (s *serviceImpl) Put(ctx context.Context, req dto.SettingsPayload) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PutSettings")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(model.DefaultID, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if settings exist")

		return fmt.Errorf("failed to check if settings exist: %w", err)
	}

	if !exist {
		if err := s.repo.Insert(ctx, req.ToModel()); err != nil {
			log.Error().Err(err).Msg("failed to create settings")

			return fmt.Errorf("failed to create settings: %w", err)
		}
	} else {
		if err := s.repo.Update(ctx, replaceColumns(req), filter); err != nil {
			log.Error().Err(err).Msg("failed to update settings")

			return fmt.Errorf("failed to update settings: %w", err)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, CacheGetSettings); err != nil {
			log.Error().Err(err).Msg("failed to drop settings cache")
		}
	}()

	return nil
}

// replaceColumns lists every updatable column explicitly, zero values
// included, so a cleared field clears its column.
func replaceColumns(req dto.SettingsPayload) map[string]any {
	mod := req.ToModel()

	columns := map[string]any{
		"company_name":     mod.CompanyName,
		"email":            mod.Email,
		"phone":            mod.Phone,
		"website":          mod.Website,
		"address":          mod.Address,
		"bank_name":        mod.BankName,
		"routing_number":   mod.RoutingNumber,
		"account_number":   mod.AccountNumber,
		"invoice_template": mod.InvoiceTemplate,
		"special_info":     mod.SpecialInfo,
		"server_url":       mod.ServerURL,
		"gateway_url":      mod.GatewayURL,
		"llm_key":          mod.LLMKey,
		"llm_model":        mod.LLMModel,
		"friends":          mod.Friends,
		"price_enabled":    mod.PriceEnabled,
	}

	columns[constant.FieldUpdatedAt] = timezone.Now()

	return columns
}
