package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"storeledger/m/domain"
	"storeledger/m/internal/export"
	"storeledger/m/internal/ledger"
	"storeledger/m/internal/printer"
	"storeledger/m/internal/store"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func parseInvoiceFilter(r *http.Request) (store.InvoiceFilter, error) {
	q := r.URL.Query()
	f := store.InvoiceFilter{Limit: defaultPageSize}

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		t, err := domain.ParseInvoiceType(v)
		if err != nil {
			return f, &ledger.ValidationError{Field: "type", Reason: err.Error()}
		}
		f.Type = t
	}
	if v := strings.TrimSpace(q.Get("status")); v != "" {
		s, err := domain.ParseInvoiceStatus(v)
		if err != nil {
			return f, &ledger.ValidationError{Field: "status", Reason: err.Error()}
		}
		f.Status = s
	}
	if v := strings.TrimSpace(q.Get("customer_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, &ledger.ValidationError{Field: "customer_id", Reason: "must be a positive integer"}
		}
		f.CustomerID = id
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 || limit > maxPageSize {
			return f, &ledger.ValidationError{Field: "limit", Reason: fmt.Sprintf("must be between 1 and %d", maxPageSize)}
		}
		f.Limit = limit
	}
	if v := strings.TrimSpace(q.Get("offset")); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return f, &ledger.ValidationError{Field: "offset", Reason: "must be zero or more"}
		}
		f.Offset = offset
	}
	return f, nil
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	filter, err := parseInvoiceFilter(r)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	invoices, err := h.store.ListInvoices(r.Context(), filter)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, invoices)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	detail, err := h.store.GetInvoice(r.Context(), id)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var in ledger.InvoiceInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.ledger.CreateInvoice(r.Context(), in)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	detail, err := h.store.GetInvoice(r.Context(), id)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	h.log.Info().
		Int64("invoice_id", id).
		Str("invoice_number", detail.InvoiceNumber).
		Str("user", username(r)).
		Msg("invoice posted")
	respondJSON(w, http.StatusCreated, detail)
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	var in ledger.InvoiceInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ledger.UpdateInvoice(r.Context(), id, in); err != nil {
		h.respondErr(w, r, err)
		return
	}
	detail, err := h.store.GetInvoice(r.Context(), id)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	if err := h.ledger.DeleteInvoice(r.Context(), id); err != nil {
		h.respondErr(w, r, err)
		return
	}
	h.log.Info().Int64("invoice_id", id).Str("user", username(r)).Msg("invoice deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) invoicePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	detail, err := h.store.GetInvoice(r.Context(), id)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	settings, err := h.store.Settings(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := printer.Render(&buf, detail, settings); err != nil {
		h.respondErr(w, r, fmt.Errorf("render invoice %d: %w", id, err))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", detail.InvoiceNumber))
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) exportInvoices(w http.ResponseWriter, r *http.Request) {
	filter, err := parseInvoiceFilter(r)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	// the register is the whole matching set unless a page is asked for
	if r.URL.Query().Get("limit") == "" {
		filter.Limit = 0
	}
	register, err := h.store.InvoiceRegister(r.Context(), filter)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteRegister(&buf, register); err != nil {
		h.respondErr(w, r, fmt.Errorf("write invoice register: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=invoices.xlsx")
	_, _ = w.Write(buf.Bytes())
}
