package controllers

import (
	"bytes"
	"net/http"

	"github.com/angelmondragon/bestprice-backend/api/responses"
	"github.com/angelmondragon/bestprice-backend/api/validators"
	"github.com/angelmondragon/bestprice-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
	"github.com/angelmondragon/bestprice-backend/pkg/types"
)

// MaxQty bounds the target quantity accepted on query strings.
const MaxQty = 100000

// Lines lists the distinct product lines available for filtering.
func Lines(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		lines, err := svc.Lines(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if lines == nil {
			lines = []string{}
		}
		responses.WriteSuccess(w, lines)
	}
}

// BestPrices returns the cheapest offer per product at ?qty, optionally
// restricted to ?lines and rendered as CSV with ?format=csv.
func BestPrices(svc pricing.Service, defaultQty int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := parseComputeQuery(w, r, svc, defaultQty, logg)
		if !ok {
			return
		}

		result, err := svc.Compute(r.Context(), q.qty, q.lines)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if q.format == validators.FormatCSV {
			var buf bytes.Buffer
			if err := pricing.WriteBestCSV(&buf, result.Best); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render best prices csv"))
				return
			}
			responses.WriteCSV(w, "best_prices.csv", buf.Bytes())
			return
		}

		best := result.Best
		if best == nil {
			best = []pricing.BestOffer{}
		}
		responses.WriteSuccessMeta(w, best, q.meta(len(best)))
	}
}

// VendorRanking returns per-line vendor competitiveness at ?qty.
func VendorRanking(svc pricing.Service, defaultQty int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := parseComputeQuery(w, r, svc, defaultQty, logg)
		if !ok {
			return
		}

		result, err := svc.Compute(r.Context(), q.qty, q.lines)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if q.format == validators.FormatCSV {
			var buf bytes.Buffer
			if err := pricing.WriteRankingCSV(&buf, result.Ranking); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render vendor ranking csv"))
				return
			}
			responses.WriteCSV(w, "vendor_ranking.csv", buf.Bytes())
			return
		}

		ranking := result.Ranking
		if ranking == nil {
			ranking = []pricing.RankingRow{}
		}
		responses.WriteSuccessMeta(w, ranking, q.meta(len(ranking)))
	}
}

type computeQuery struct {
	qty    int
	lines  []string
	format string
}

func (q computeQuery) meta(rows int) types.ComputeMeta {
	lines := q.lines
	if lines == nil {
		lines = []string{}
	}
	return types.ComputeMeta{Qty: q.qty, Lines: lines, Rows: rows}
}

func parseComputeQuery(w http.ResponseWriter, r *http.Request, svc pricing.Service, defaultQty int, logg *logger.Logger) (computeQuery, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
		return computeQuery{}, false
	}
	qty, err := validators.ParseQty(r, defaultQty, MaxQty)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return computeQuery{}, false
	}
	format, err := validators.ParseFormat(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return computeQuery{}, false
	}
	return computeQuery{qty: qty, lines: validators.ParseLines(r, "lines"), format: format}, true
}
