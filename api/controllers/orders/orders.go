package orders

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/bestprice-backend/api/middleware"
	"github.com/angelmondragon/bestprice-backend/api/responses"
	"github.com/angelmondragon/bestprice-backend/api/validators"
	internalorders "github.com/angelmondragon/bestprice-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
)

// List returns one purchase-order block per vendor in the session's cart.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.List(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

// PurchaseOrder renders the email text for one vendor block.
func PurchaseOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := vendorView(w, r, svc, logg)
		if !ok {
			return
		}
		responses.WriteText(w, view.EmailBody)
	}
}

// PurchaseOrderCSV downloads the lines of one vendor block.
func PurchaseOrderCSV(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := vendorView(w, r, svc, logg)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := internalorders.WriteCSV(&buf, view.Block); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render purchase order csv"))
			return
		}
		responses.WriteCSV(w, internalorders.FileName(view.Block), buf.Bytes())
	}
}

func vendorView(w http.ResponseWriter, r *http.Request, svc internalorders.Service, logg *logger.Logger) (internalorders.View, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
		return internalorders.View{}, false
	}

	sessionID, err := sessionFromRequest(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return internalorders.View{}, false
	}
	vendorID, err := validators.PathID(chi.URLParam(r, "vendorId"), "vendor_id")
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return internalorders.View{}, false
	}

	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithVendorID(ctx, vendorID)
	}
	view, err := svc.ForVendor(ctx, sessionID, vendorID)
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return internalorders.View{}, false
	}
	return view, true
}

func sessionFromRequest(r *http.Request) (string, error) {
	id := middleware.SessionIDFromContext(r.Context())
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	return id, nil
}
