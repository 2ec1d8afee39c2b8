package api

import (
	"github.com/labstack/echo/v4"

	models "github.com/energy-oracle/eo-api/internal/domain/models"
	"github.com/energy-oracle/eo-api/internal/usecase"
	xhttp "github.com/energy-oracle/eo-api/pkg/http"
	xlogger "github.com/energy-oracle/eo-api/pkg/logger"
)

// CarbonHandler serves carbon intensity and fuel mix under /uk/carbon.
type CarbonHandler struct {
	logger *xlogger.Logger
	uc     *usecase.CarbonUseCase
}

func NewCarbonHandler(logger *xlogger.Logger, uc *usecase.CarbonUseCase) *CarbonHandler {
	return &CarbonHandler{logger: logger, uc: uc}
}

func (h *CarbonHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/uk/carbon")
	g.GET("/intensity/current", h.CurrentIntensity)
	g.GET("/intensity/date/:date", h.IntensityByDate)
	g.GET("/intensity/range", h.IntensityRange)
	g.GET("/fuelmix/current", h.CurrentFuelMix)
	g.GET("/fuelmix/date/:date", h.FuelMixByDate)
}

func (h *CarbonHandler) CurrentIntensity(c echo.Context) error {
	res, err := h.uc.CurrentIntensity(c.Request().Context())
	if err != nil {
		h.logger.Error("carbon current error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CarbonHandler) IntensityByDate(c echo.Context) error {
	res, err := h.uc.IntensityByDate(c.Request().Context(), c.Param("date"))
	if err != nil {
		h.logger.Error("carbon by date error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CarbonHandler) IntensityRange(c echo.Context) error {
	req := &models.DateRangeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.IntensityRange(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("carbon range error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CarbonHandler) CurrentFuelMix(c echo.Context) error {
	res, err := h.uc.CurrentFuelMix(c.Request().Context())
	if err != nil {
		h.logger.Error("fuelmix current error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CarbonHandler) FuelMixByDate(c echo.Context) error {
	res, err := h.uc.FuelMixByDate(c.Request().Context(), c.Param("date"))
	if err != nil {
		h.logger.Error("fuelmix by date error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
