package client

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"leedz/infras/otel"
	"leedz/internal/domains/client/service"
	"leedz/shared/constant"
	"leedz/shared/failure"
	"leedz/transport/http/response"
)

type Handler struct {
	service service.Client
	otel    otel.Otel
}

func New(service service.Client, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/clients", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.SearchClient)
		routerGroup.Get("/{id}", handler.GetClientByID)
	})
}

// SearchClient resolves a page identity to a stored client: exact email
// match first, then a case-insensitive name substring. A miss answers with
// null data.
func (handler *Handler) SearchClient(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchClient")
	defer scope.End()

	email := r.URL.Query().Get(constant.RequestParamEmail)
	name := r.URL.Query().Get(constant.RequestParamName)

	if email == "" && name == "" {
		response.WithError(w, failure.BadRequestFromString("email or name is required"))

		return
	}

	client, err := handler.service.Search(ctx, email, name)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search client")

		response.WithError(w, err)

		return
	}

	if client == nil {
		response.WithJSON(w, http.StatusOK, nil)

		return
	}

	scope.AddEvent("Client resolved")

	response.WithJSON(w, http.StatusOK, client)
}

// GetClientByID reads one client row.
func (handler *Handler) GetClientByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClientByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	client, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get client by ID")

		response.WithError(w, err)

		return
	}

	if client == nil {
		response.WithJSON(w, http.StatusOK, nil)

		return
	}

	response.WithJSON(w, http.StatusOK, client)
}
