package record

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"leedz/infras/otel"
	"leedz/internal/domains/record/model/dto"
	"leedz/internal/domains/record/service"
	"leedz/shared/constant"
	"leedz/shared/failure"
	"leedz/shared/validator"
	"leedz/transport/http/response"
)

type Handler struct {
	service service.Record
	otel    otel.Otel
}

func New(service service.Record, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/records", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SaveRecord)
		routerGroup.Get("/", handler.GetRecord)
	})
}

// SaveRecord upserts a client and optional booking in one call and returns
// the assigned ids.
func (handler *Handler) SaveRecord(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveRecord")
	defer scope.End()

	req := dto.SaveRecordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Save(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save record")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Record saved for client " + res.ClientID)

	response.WithJSON(w, http.StatusOK, res)
}

// GetRecord loads a client and their latest booking. A missing client is a
// null data payload, not an error.
func (handler *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRecord")
	defer scope.End()

	clientID := r.URL.Query().Get(constant.RequestParamClientID)
	if clientID == "" {
		response.WithError(w, failure.BadRequestFromString("clientId is required"))

		return
	}

	record, err := handler.service.Load(ctx, clientID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load record")

		response.WithError(w, err)

		return
	}

	if record == nil {
		response.WithJSON(w, http.StatusOK, nil)

		return
	}

	response.WithJSON(w, http.StatusOK, record)
}
