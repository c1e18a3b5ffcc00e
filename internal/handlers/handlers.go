package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/jucygo/internal/httpx"
	"github.com/diewo77/jucygo/internal/services"
)

// writeServiceError maps service sentinel errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		httpx.JSONError(w, http.StatusNotFound, "product_not_found", nil)
	case errors.Is(err, services.ErrOrderNotFound):
		httpx.JSONError(w, http.StatusNotFound, "order_not_found", nil)
	case errors.Is(err, services.ErrInsufficientStock):
		httpx.JSONError(w, http.StatusConflict, "insufficient_stock", nil)
	case errors.Is(err, services.ErrOrderFinalized):
		httpx.JSONError(w, http.StatusConflict, "order_finalized", nil)
	case errors.Is(err, services.ErrInvalidStatus):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrCustomerRequired),
		errors.Is(err, services.ErrNegativePrice),
		errors.Is(err, services.ErrNegativeQuantity),
		errors.Is(err, services.ErrNonPositiveQty):
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

// idParam reads a positive integer id from query string or form body.
func idParam(r *http.Request) (uint, bool) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		idStr = r.FormValue("id")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
