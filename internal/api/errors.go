package api

import (
	"errors"
	"net/http"

	"storeledger/m/domain"
	"storeledger/m/internal/ledger"
)

// respondErr maps ledger and store errors onto HTTP statuses. Anything unrecognised
// is logged and reported as a generic 500.
func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *ledger.ValidationError
		notFound   *ledger.NotFoundError
		stock      *ledger.InsufficientStockError
		conflict   *ledger.NumberConflictError
	)
	switch {
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": validation.Error(), "field": validation.Field})
	case errors.As(err, &notFound):
		respondError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &stock):
		respondJSON(w, http.StatusConflict, map[string]any{
			"error":     stock.Error(),
			"product":   stock.ProductName,
			"row":       stock.Row,
			"requested": stock.Requested,
			"available": stock.Available,
		})
	case errors.As(err, &conflict):
		respondError(w, http.StatusConflict, conflict.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrDuplicate):
		respondError(w, http.StatusConflict, "already exists")
	default:
		h.log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("user", username(r)).
			Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
