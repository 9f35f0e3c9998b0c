package router

import (
	"turfbook/internal/handlers/booking"
	"turfbook/internal/handlers/slot"
	"turfbook/internal/handlers/turf"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Turf    turf.Handler
	Slot    slot.Handler
	Booking booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Turf.Router(routerGroup)
		r.DomainHandlers.Slot.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
