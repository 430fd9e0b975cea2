package router

import (
	"github.com/go-chi/chi/v5"

	"nyumbani/internal/handlers/auth"
	"nyumbani/internal/handlers/booking"
	"nyumbani/internal/handlers/performance"
	"nyumbani/internal/handlers/property"
	"nyumbani/internal/handlers/user"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Property    property.Handler
	Booking     booking.Handler
	Performance performance.Handler
	User        user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Property.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Performance.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
