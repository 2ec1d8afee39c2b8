package api

import (
	"github.com/labstack/echo/v4"

	models "github.com/energy-oracle/eo-api/internal/domain/models"
	"github.com/energy-oracle/eo-api/internal/usecase"
	xhttp "github.com/energy-oracle/eo-api/pkg/http"
	xlogger "github.com/energy-oracle/eo-api/pkg/logger"
)

// AnalyticsHandler serves the derived aggregates under /uk/analytics.
type AnalyticsHandler struct {
	logger *xlogger.Logger
	uc     *usecase.AnalyticsUseCase
}

func NewAnalyticsHandler(logger *xlogger.Logger, uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{logger: logger, uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/uk/analytics")
	g.GET("/prices/daily", h.Daily)
	g.GET("/prices/weekly", h.Weekly)
	g.GET("/prices/peak-offpeak", h.PeakOffPeak)
	g.GET("/prices/statistics", h.Statistics)
	g.GET("/prices/green-premium/:year/:month", h.GreenPremium)
	g.GET("/carbon/weighted-price", h.WeightedPrice)
	g.GET("/carbon/daily-summary", h.DailySummary)
	g.GET("/carbon/renewable-index/:year/:month", h.RenewableIndex)
}

func (h *AnalyticsHandler) bindPriceRange(c echo.Context) (*models.PriceRangeRequest, interface{}) {
	req := &models.PriceRangeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return nil, verr
	}
	return req, nil
}

func (h *AnalyticsHandler) Daily(c echo.Context) error {
	req, verr := h.bindPriceRange(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.DailyAverages(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("analytics daily error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsHandler) Weekly(c echo.Context) error {
	req, verr := h.bindPriceRange(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.WeeklyAverages(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("analytics weekly error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsHandler) PeakOffPeak(c echo.Context) error {
	req, verr := h.bindPriceRange(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.PeakOffPeak(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("analytics peak-offpeak error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsHandler) Statistics(c echo.Context) error {
	req, verr := h.bindPriceRange(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.Statistics(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("analytics statistics error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsHandler) WeightedPrice(c echo.Context) error {
	req := &models.DateRangeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.CarbonWeightedPrice(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("analytics weighted price error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsHandler) DailySummary(c echo.Context) error {
	req := &models.DateRangeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.DailyCarbonSummaries(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("analytics daily summary error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsHandler) RenewableIndex(c echo.Context) error {
	year, appErr := intParam(c, "year")
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}
	month, appErr := intParam(c, "month")
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	res, err := h.uc.RenewableIndex(c.Request().Context(), year, month)
	if err != nil {
		h.logger.Error("analytics renewable index error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsHandler) GreenPremium(c echo.Context) error {
	year, appErr := intParam(c, "year")
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}
	month, appErr := intParam(c, "month")
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}
	req := &models.GreenPremiumRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.GreenPremium(c.Request().Context(), year, month, req.RenewableThreshold)
	if err != nil {
		h.logger.Error("analytics green premium error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
