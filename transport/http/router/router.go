package router

import (
	"github.com/go-chi/chi/v5"

	"leedz/internal/handlers/booking"
	"leedz/internal/handlers/client"
	"leedz/internal/handlers/record"
	"leedz/internal/handlers/settings"
)

type DomainHandlers struct {
	Record   record.Handler
	Client   client.Handler
	Booking  booking.Handler
	Settings settings.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts every domain at the root. The sidebar's store addresses
// /records, /clients, /bookings and /config without a version prefix.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Record.Router(router)
	r.DomainHandlers.Client.Router(router)
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Settings.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
