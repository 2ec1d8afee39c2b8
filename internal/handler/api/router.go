package api

import (
	"github.com/labstack/echo/v4"

	xhttp "github.com/energy-oracle/eo-api/pkg/http"
)

// Router groups the service's handlers behind a single registration point
// so the HTTP server only needs one Handler.
type Router struct {
	handlers []xhttp.Handler
}

func NewRouter(handlers ...xhttp.Handler) *Router {
	return &Router{handlers: handlers}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	for _, h := range r.handlers {
		h.RegisterRoutes(e)
	}
}
