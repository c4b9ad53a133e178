package api

import (
	"net/http"

	"storeledger/m/domain"
	"storeledger/m/internal/ledger"
)

type customerRequest struct {
	Code     string `json:"code" validate:"max=50"`
	Name     string `json:"name" validate:"required,max=255"`
	Phone    string `json:"phone" validate:"max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Address  string `json:"address" validate:"max=1000"`
	Notes    string `json:"notes" validate:"max=2000"`
	JoinDate string `json:"join_date"`
}

func (h *Handler) decodeCustomer(w http.ResponseWriter, r *http.Request) (*domain.Customer, bool) {
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if err := ledger.Validate(req); err != nil {
		h.respondErr(w, r, err)
		return nil, false
	}
	c := &domain.Customer{
		Code:    nullIfEmpty(req.Code),
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   nullIfEmpty(req.Email),
		Address: req.Address,
		Notes:   req.Notes,
	}
	if joined := nullIfEmpty(req.JoinDate); joined != nil {
		date, ok := ledger.ParseDate(*joined)
		if !ok {
			h.respondErr(w, r, &ledger.ValidationError{Field: "join_date", Reason: "must be a date like 2006-01-02"})
			return nil, false
		}
		c.JoinDate = &date
	}
	return c, true
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.ListCustomers(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	customer, err := h.store.GetCustomer(r.Context(), id)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.decodeCustomer(w, r)
	if !ok {
		return
	}
	if _, err := h.store.CreateCustomer(r.Context(), customer); err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	customer, ok := h.decodeCustomer(w, r)
	if !ok {
		return
	}
	customer.ID = id
	if customer.Code == nil {
		existing, err := h.store.GetCustomer(r.Context(), id)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		customer.Code = existing.Code
	}
	if err := h.store.UpdateCustomer(r.Context(), customer); err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	if err := h.store.DeleteCustomer(r.Context(), id); err != nil {
		h.respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
