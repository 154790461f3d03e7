package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"leedz/infras/otel"
	"leedz/internal/domains/booking/service"
	"leedz/shared/constant"
	"leedz/shared/failure"
	"leedz/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
	})
}

// GetBookings lists a client's bookings, newest first.
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	clientID := r.URL.Query().Get(constant.RequestParamClientID)
	if clientID == "" {
		response.WithError(w, failure.BadRequestFromString("clientId is required"))

		return
	}

	bookings, err := handler.service.GetByClient(ctx, clientID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}
