package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"leedz/config"
	"leedz/infras/otel"
	bookingModel "leedz/internal/domains/booking/model"
	bookingDto "leedz/internal/domains/booking/model/dto"
	bookingRepo "leedz/internal/domains/booking/repository"
	bookingService "leedz/internal/domains/booking/service"
	clientModel "leedz/internal/domains/client/model"
	clientDto "leedz/internal/domains/client/model/dto"
	clientRepo "leedz/internal/domains/client/repository"
	clientService "leedz/internal/domains/client/service"
	"leedz/internal/domains/record/model/dto"
	"leedz/shared"
	"leedz/shared/cache"
	"leedz/shared/constant"
	gDto "leedz/shared/dto"
	"leedz/shared/failure"
)

// Record is the combined save/load surface the sidebar talks to. A save
// upserts the client (matching an existing row by id, then by email) and the
// booking in one call, returning both ids.
type Record interface {
	Save(ctx context.Context, req dto.SaveRecordRequest) (dto.SaveRecordResponse, error)
	Load(ctx context.Context, clientID string) (*dto.RecordResponse, error)
}

type serviceImpl struct {
	clients  clientRepo.Client
	bookings bookingRepo.Booking
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(clients clientRepo.Client, bookings bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Record {
	return &serviceImpl{
		clients:  clients,
		bookings: bookings,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Save(ctx context.Context, req dto.SaveRecordRequest) (res dto.SaveRecordResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SaveRecord")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Client.Name == "" && req.Client.Email == "" {
		return res, failure.BadRequestFromString("client needs a name or an email") // nolint:wrapcheck
	}

	clientID, err := s.upsertClient(ctx, req.Client)
	if err != nil {
		return res, err
	}

	res.ClientID = clientID

	if req.Booking != nil {
		bookingID, err := s.upsertBooking(ctx, *req.Booking, clientID)
		if err != nil {
			return res, err
		}

		res.BookingID = bookingID
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, clientService.CacheGetClient)
		shared.InvalidateCaches(c, s.cache, clientService.CacheSearchClient)
		shared.InvalidateCaches(c, s.cache, bookingService.CacheBookingsByClient)
	}()

	return res, nil
}

func (s *serviceImpl) upsertClient(ctx context.Context, payload clientDto.ClientPayload) (string, error) {
	existing, err := s.findClient(ctx, payload)
	if err != nil {
		return "", err
	}

	if existing == "" {
		mod := payload.ToModel()

		if err := s.clients.Insert(ctx, mod); err != nil {
			log.Error().Err(err).Msg("failed to create client")

			return "", fmt.Errorf("failed to create client: %w", err)
		}

		return mod.ID, nil
	}

	filter := shared.FilterByID(existing, clientModel.FieldID, clientModel.TableName)

	if err := s.clients.Update(ctx, shared.TransformFields(payload.ToUpdateFields()), filter); err != nil {
		log.Error().Err(err).Msg("failed to update client")

		return "", fmt.Errorf("failed to update client: %w", err)
	}

	return existing, nil
}

// findClient resolves the row a save should land on: the payload id when
// given, else an exact email match.
func (s *serviceImpl) findClient(ctx context.Context, payload clientDto.ClientPayload) (string, error) {
	if payload.ID != "" {
		exist, err := s.clients.Exist(ctx, shared.FilterByID(payload.ID, clientModel.FieldID, clientModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if client exists")

			return "", fmt.Errorf("failed to check if client exists: %w", err)
		}

		if !exist {
			return "", failure.NotFound("client not found") // nolint:wrapcheck
		}

		return payload.ID, nil
	}

	if payload.Email == "" {
		return "", nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    clientModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(payload.Email),
				Table:    clientModel.TableName,
			},
		},
	}

	mod, err := s.clients.Get(ctx, filter, clientModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to match client by email")

		return "", fmt.Errorf("failed to match client by email: %w", err)
	}

	return mod.ID, nil
}

func (s *serviceImpl) upsertBooking(ctx context.Context, payload bookingDto.BookingPayload, clientID string) (string, error) {
	if payload.ID == "" {
		mod := payload.ToModel(clientID)

		if err := s.bookings.Insert(ctx, mod); err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			return "", fmt.Errorf("failed to create booking: %w", err)
		}

		return mod.ID, nil
	}

	filter := shared.FilterByID(payload.ID, bookingModel.FieldID, bookingModel.TableName)

	exist, err := s.bookings.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return "", fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return "", failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err := s.bookings.Update(ctx, shared.TransformFields(payload.ToUpdateFields()), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return "", fmt.Errorf("failed to update booking: %w", err)
	}

	return payload.ID, nil
}

func (s *serviceImpl) Load(ctx context.Context, clientID string) (res *dto.RecordResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".LoadRecord")
	defer scope.End()
	defer scope.TraceIfError(err)

	mod, err := s.clients.Get(ctx, shared.FilterByID(clientID, clientModel.FieldID, clientModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to load client")

		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	if mod.ID == "" {
		return nil, nil
	}

	res = &dto.RecordResponse{}
	res.Client.FromModel(mod)

	params := gDto.QueryParams{
		Limit:   1,
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	bookings, err := s.bookings.GetAll(ctx, params, shared.FilterByID(clientID, bookingModel.FieldClientID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to load latest booking")

		return nil, fmt.Errorf("failed to load latest booking: %w", err)
	}

	if len(bookings) > 0 {
		booking := &bookingDto.BookingResponse{}
		booking.FromModel(bookings[0])
		res.Booking = booking
	}

	return res, nil
}
