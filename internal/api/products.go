package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"storeledger/m/domain"
	"storeledger/m/internal/ledger"
)

type productRequest struct {
	Code        string           `json:"code" validate:"max=50"`
	Name        string           `json:"name" validate:"required,max=255"`
	Category    string           `json:"category" validate:"max=100"`
	SellPrice   decimal.Decimal  `json:"sell_price" validate:"gte=0"`
	BuyPrice    *decimal.Decimal `json:"buy_price,omitempty" validate:"omitempty,gte=0"`
	Inventory   int64            `json:"inventory" validate:"gte=0"`
	Description string           `json:"description" validate:"max=2000"`
	Status      string           `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (req productRequest) product() *domain.Product {
	p := &domain.Product{
		Code:        nullIfEmpty(req.Code),
		Name:        req.Name,
		Category:    req.Category,
		SellPrice:   req.SellPrice,
		Inventory:   req.Inventory,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.BuyPrice != nil {
		p.BuyPrice = decimal.NullDecimal{Decimal: *req.BuyPrice, Valid: true}
	}
	if p.Status == "" {
		p.Status = domain.ProductActive
	}
	return p
}

func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if err := ledger.Validate(req); err != nil {
		h.respondErr(w, r, err)
		return nil, false
	}
	return req.product(), true
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	if _, err := h.store.CreateProduct(r.Context(), product); err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	product.ID = id
	if product.Code == nil {
		// keep the generated code when the form leaves it blank
		existing, err := h.store.GetProduct(r.Context(), id)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		product.Code = existing.Code
	}
	if err := h.store.UpdateProduct(r.Context(), product); err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		h.respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
