package api

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"storeledger/m/domain"
	"storeledger/m/internal/ledger"
	"storeledger/m/internal/migrations"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := decodeJSON(r, &values); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateSettings(values); err != nil {
		h.respondErr(w, r, err)
		return
	}
	if err := h.store.UpdateSettings(r.Context(), values); err != nil {
		h.respondErr(w, r, err)
		return
	}
	h.getSettings(w, r)
}

func validateSettings(values map[string]string) error {
	for key, value := range values {
		if _, known := migrations.DefaultSettings[key]; !known {
			return &ledger.ValidationError{Field: key, Reason: "unknown setting"}
		}
		values[key] = strings.TrimSpace(value)
	}
	if raw, ok := values[domain.SettingDefaultTaxRate]; ok {
		rate, err := decimal.NewFromString(raw)
		if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return &ledger.ValidationError{Field: domain.SettingDefaultTaxRate, Reason: "must be a fraction between 0 and 1"}
		}
	}
	return nil
}
