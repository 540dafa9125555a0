package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nrehman/cart-service/internal/domain"
	"github.com/nrehman/cart-service/internal/usecase"
)

// SessionHeader carries the cart session id. The server mints one when the
// client sends none and echoes it back on every cart response.
const SessionHeader = "X-Cart-Session"

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=99"`
}

type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

type ProductResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
}

type LineItemResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
}

type PromoResponse struct {
	Code          string  `json:"code"`
	Description   string  `json:"description"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
}

type CartResponse struct {
	SessionID      string             `json:"session_id"`
	Items          []LineItemResponse `json:"items"`
	Promo          *PromoResponse     `json:"promo,omitempty"`
	Subtotal       float64            `json:"subtotal"`
	DiscountAmount float64            `json:"discount_amount"`
	Total          float64            `json:"total"`
	ItemCount      int                `json:"item_count"`
}

type Handler struct {
	service  *usecase.CartService
	validate *validator.Validate
}

func NewHandler(service *usecase.CartService) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddItem)
			r.Put("/items/{productID}", h.UpdateQuantity)
			r.Delete("/items/{productID}", h.RemoveItem)
			r.Post("/promo", h.ApplyPromo)
			r.Delete("/promo", h.RemovePromo)
		})
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, toProductResponse(product))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)

	view, err := h.service.GetCart(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, sid, view)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "product_id is required and quantity must be between 1 and 99", http.StatusBadRequest)
		return
	}

	sid := sessionID(r)
	view, err := h.service.AddItem(r.Context(), sid, domain.ProductID(req.ProductID), req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, sid, view)
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "quantity must be between 0 and 99", http.StatusBadRequest)
		return
	}

	sid := sessionID(r)
	productID := domain.ProductID(chi.URLParam(r, "productID"))
	view, err := h.service.UpdateQuantity(r.Context(), sid, productID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, sid, view)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	productID := domain.ProductID(chi.URLParam(r, "productID"))

	view, err := h.service.RemoveItem(r.Context(), sid, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, sid, view)
}

func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req ApplyPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "code is required", http.StatusBadRequest)
		return
	}

	sid := sessionID(r)
	view, err := h.service.ApplyPromoCode(r.Context(), sid, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, sid, view)
}

func (h *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)

	view, err := h.service.RemovePromoCode(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, sid, view)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)

	view, err := h.service.ClearCart(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, sid, view)
}

func sessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	return uuid.New().String()
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidQuantity):
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
	case errors.Is(err, domain.ErrPromoNotFound):
		http.Error(w, "invalid promo code", http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeCart(w http.ResponseWriter, sid string, view *usecase.CartView) {
	w.Header().Set(SessionHeader, sid)
	writeJSON(w, http.StatusOK, toCartResponse(sid, view))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func toCartResponse(sid string, view *usecase.CartView) CartResponse {
	items := make([]LineItemResponse, 0, len(view.State.Items))
	for _, item := range view.State.Items {
		items = append(items, LineItemResponse{
			Product:  toProductResponse(item.Product),
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().InexactFloat64(),
		})
	}

	resp := CartResponse{
		SessionID:      sid,
		Items:          items,
		Subtotal:       view.Totals.Subtotal.InexactFloat64(),
		DiscountAmount: view.Totals.DiscountAmount.InexactFloat64(),
		Total:          view.Totals.Total.InexactFloat64(),
		ItemCount:      view.Totals.ItemCount,
	}
	if promo := view.State.Promo; promo != nil {
		resp.Promo = &PromoResponse{
			Code:          promo.Code,
			Description:   promo.Description,
			DiscountType:  string(promo.Discount.Type),
			DiscountValue: promo.Discount.Value.InexactFloat64(),
		}
	}
	return resp
}

func toProductResponse(product domain.Product) ProductResponse {
	return ProductResponse{
		ID:        string(product.ID),
		Name:      product.Name,
		UnitPrice: product.UnitPrice.InexactFloat64(),
	}
}
