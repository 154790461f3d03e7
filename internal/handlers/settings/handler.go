package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"leedz/infras/otel"
	"leedz/internal/domains/settings/model/dto"
	"leedz/internal/domains/settings/service"
	"leedz/shared/constant"
	"leedz/shared/validator"
	"leedz/transport/http/response"
)

type Handler struct {
	service service.Settings
	otel    otel.Otel
}

func New(service service.Settings, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/config", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSettings)
		routerGroup.Post("/", handler.PutSettings)
	})
}

// GetSettings returns the settings record, or null data before the first
// save.
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	settings, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get settings")

		response.WithError(w, err)

		return
	}

	if settings == nil {
		response.WithJSON(w, http.StatusOK, nil)

		return
	}

	response.WithJSON(w, http.StatusOK, settings)
}

// PutSettings replaces the settings record wholesale.
func (handler *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PutSettings")
	defer scope.End()

	req := dto.SettingsPayload{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Put(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save settings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Settings saved")

	response.WithMessage(w, http.StatusOK, "Settings saved successfully")
}
