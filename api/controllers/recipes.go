package controllers

import (
	"net/http"

	"github.com/angelmondragon/bestprice-backend/api/responses"
	"github.com/angelmondragon/bestprice-backend/api/validators"
	"github.com/angelmondragon/bestprice-backend/internal/recipes"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
)

// RecipeCosts costs every recipe with best prices evaluated at ?qty.
func RecipeCosts(svc recipes.Service, defaultQty int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recipes service unavailable"))
			return
		}

		qty, err := validators.ParseQty(r, defaultQty, MaxQty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Costs(r.Context(), qty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if report.Summary == nil {
			report.Summary = []recipes.CostSummary{}
		}
		if report.Detail == nil {
			report.Detail = []recipes.CostDetail{}
		}
		responses.WriteSuccess(w, report)
	}
}
