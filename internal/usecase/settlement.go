package usecase

import (
	"context"

	"github.com/energy-oracle/eo-api/internal/domain/models"
	domrepo "github.com/energy-oracle/eo-api/internal/domain/repository"
	"github.com/energy-oracle/eo-api/internal/settlement"
	apphttp "github.com/energy-oracle/eo-api/pkg/http"
	"github.com/energy-oracle/eo-api/pkg/util"
)

// SettlementUseCase computes monthly PPA settlements. Results are never
// cached: a settlement is an audit-grade calculation and always reflects
// the store as of the request.
type SettlementUseCase struct {
	store domrepo.PriceStore
}

func NewSettlementUseCase(store domrepo.PriceStore) *SettlementUseCase {
	return &SettlementUseCase{store: store}
}

// Calculate fetches the month's reference window and applies the PPA
// formula. A month with zero stored periods is DataUnavailable, never a
// partial result.
func (uc *SettlementUseCase) Calculate(ctx context.Context, req models.SettlementRequest) (*models.SettlementResult, error) {
	pt, appErr := parsePriceType(req.PriceType)
	if appErr != nil {
		return nil, appErr
	}

	from, to := util.MonthBounds(req.Year, req.Month)
	points, err := uc.store.Range(ctx, pt, from, to)
	if err != nil {
		return nil, upstream("querying settlement month", err)
	}

	result := settlement.Calculate(points, req.Year, req.Month, pt, req.DiscountPerMWh, req.VolumeMWh)
	if result == nil {
		return nil, apphttp.DataUnavailableErrorf("no %s price data for %04d-%02d", pt, req.Year, req.Month)
	}
	return result, nil
}
