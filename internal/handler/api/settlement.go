package api

import (
	"github.com/labstack/echo/v4"

	models "github.com/energy-oracle/eo-api/internal/domain/models"
	"github.com/energy-oracle/eo-api/internal/usecase"
	xhttp "github.com/energy-oracle/eo-api/pkg/http"
	xlogger "github.com/energy-oracle/eo-api/pkg/logger"
)

// SettlementHandler serves POST /uk/settlement/calculate.
type SettlementHandler struct {
	logger *xlogger.Logger
	uc     *usecase.SettlementUseCase
}

func NewSettlementHandler(logger *xlogger.Logger, uc *usecase.SettlementUseCase) *SettlementHandler {
	return &SettlementHandler{logger: logger, uc: uc}
}

func (h *SettlementHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/uk/settlement/calculate", h.Calculate)
}

func (h *SettlementHandler) Calculate(c echo.Context) error {
	req := &models.SettlementRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.Calculate(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("settlement calculate error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
