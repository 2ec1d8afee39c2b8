package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	models "github.com/energy-oracle/eo-api/internal/domain/models"
	"github.com/energy-oracle/eo-api/internal/usecase"
	xhttp "github.com/energy-oracle/eo-api/pkg/http"
	xlogger "github.com/energy-oracle/eo-api/pkg/logger"
)

// PricesHandler serves the raw price endpoints under /uk/prices.
type PricesHandler struct {
	logger *xlogger.Logger
	uc     *usecase.PricesUseCase
}

func NewPricesHandler(logger *xlogger.Logger, uc *usecase.PricesUseCase) *PricesHandler {
	return &PricesHandler{logger: logger, uc: uc}
}

func (h *PricesHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/uk/prices")
	g.GET("/:type/latest", h.Latest)
	g.GET("/:type/date/:date", h.ByDate)
	g.GET("/:type/range", h.Range)
	g.GET("/:type/monthly-avg/:year/:month", h.MonthlyAvg)
}

func (h *PricesHandler) Latest(c echo.Context) error {
	req := &models.LatestPricesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.Latest(c.Request().Context(), c.Param("type"), req.Limit)
	if err != nil {
		h.logger.Error("prices latest error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PricesHandler) ByDate(c echo.Context) error {
	res, err := h.uc.ByDate(c.Request().Context(), c.Param("type"), c.Param("date"))
	if err != nil {
		h.logger.Error("prices by date error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PricesHandler) Range(c echo.Context) error {
	req := &models.DateRangeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.Range(c.Request().Context(), models.PriceRangeRequest{
		DateRangeRequest: *req,
		PriceType:        c.Param("type"),
	})
	if err != nil {
		h.logger.Error("prices range error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PricesHandler) MonthlyAvg(c echo.Context) error {
	year, appErr := intParam(c, "year")
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}
	month, appErr := intParam(c, "month")
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	res, err := h.uc.MonthlyAvg(c.Request().Context(), c.Param("type"), year, month)
	if err != nil {
		h.logger.Error("prices monthly avg error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func intParam(c echo.Context, name string) (int, *xhttp.AppError) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, xhttp.FieldError(name, "must be an integer")
	}
	return v, nil
}
