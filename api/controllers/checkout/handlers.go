package checkout

import (
	"net/http"

	"github.com/oakline/storefront-backend/api/middleware"
	"github.com/oakline/storefront-backend/api/responses"
	"github.com/oakline/storefront-backend/api/validators"
	cartsvc "github.com/oakline/storefront-backend/internal/cart"
	checkoutsvc "github.com/oakline/storefront-backend/internal/checkout"
	pkgerrors "github.com/oakline/storefront-backend/pkg/errors"
	"github.com/oakline/storefront-backend/pkg/logger"
)

// SubmitResponse carries the generated order id for the confirmation view.
type SubmitResponse struct {
	OrderID string `json:"orderId"`
}

// StateResponse exposes the session's checkout state so the UI can disable
// its submit controls while a submission is in flight.
type StateResponse struct {
	State      string `json:"state"`
	Processing bool   `json:"processing"`
}

// Submit validates the checkout form and places the order.
func Submit(svc *checkoutsvc.Service, manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		var form checkoutsvc.Form
		if err := validators.DecodeJSON(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := manager.Store(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart store"))
			return
		}

		orderID, err := svc.Submit(r.Context(), sessionID, form, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, SubmitResponse{OrderID: orderID})
	}
}

// State reports the session's checkout state.
func State(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		state := svc.State(sessionID)
		responses.WriteSuccess(w, StateResponse{
			State:      state.String(),
			Processing: svc.Processing(sessionID),
		})
	}
}
