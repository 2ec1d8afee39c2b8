package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/energy-oracle/eo-api/internal/stream"
	xlogger "github.com/energy-oracle/eo-api/pkg/logger"
)

// StreamHandler upgrades GET /stream and hands the socket to the hub.
type StreamHandler struct {
	logger   *xlogger.Logger
	hub      *stream.Hub
	upgrader websocket.Upgrader
}

func NewStreamHandler(logger *xlogger.Logger, hub *stream.Hub) *StreamHandler {
	return &StreamHandler{
		logger: logger,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// browser dashboards connect cross-origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/stream", h.Stream)
}

func (h *StreamHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		h.logger.Warn("stream upgrade failed", xlogger.Error(err))
		return nil
	}
	h.hub.Register(conn)
	return nil
}
