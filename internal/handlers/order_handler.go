package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casahub/backend/internal/middleware"
	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/services"
)

type OrderHandler struct {
	orderService   *services.OrderService
	invoiceService *services.InvoiceService
}

func NewOrderHandler(orderService *services.OrderService, invoiceService *services.InvoiceService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		invoiceService: invoiceService,
	}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		log.Printf("[CreateOrder] Validation errors: %v", errors)
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	order, err := h.orderService.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Product not found"))
		case errors.Is(err, services.ErrAddressNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Delivery address not found"))
		default:
			log.Printf("[CreateOrder] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create order"))
		}
		return
	}

	log.Printf("[CreateOrder] Order created: %s", order.ID)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(order))
}

func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	order, err := h.orderService.VerifyPayment(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadSignature):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Payment signature verification failed"))
		case errors.Is(err, services.ErrOrderNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Order not found"))
		default:
			log.Printf("[VerifyPayment] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to verify payment"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(order))
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.orderService.GetByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Order not found"))
			return
		}
		log.Printf("[GetOrder] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get order"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(order))
}

func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	orders, info, err := h.orderService.ListMine(r.Context(), userID, r.URL.Query().Get("status"), pagination(r))
	writePage(w, orders, info, err, "Failed to list orders")
}

// ListSellerOrders lists orders placed against the calling seller's products.
func (h *OrderHandler) ListSellerOrders(w http.ResponseWriter, r *http.Request) {
	sellerID := middleware.GetUserID(r.Context())

	orders, info, err := h.orderService.ListForSeller(r.Context(), sellerID, r.URL.Query().Get("status"), pagination(r))
	writePage(w, orders, info, err, "Failed to list orders")
}

func (h *OrderHandler) GetOrderCounts(w http.ResponseWriter, r *http.Request) {
	sellerID := middleware.GetUserID(r.Context())

	counts, err := h.orderService.Counts(r.Context(), sellerID)
	if err != nil {
		log.Printf("[GetOrderCounts] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to count orders"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(counts))
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req models.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	order, err := h.orderService.Update(r.Context(), orderID, &req)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Order not found"))
			return
		}
		log.Printf("[UpdateOrder] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update order"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(order))
}

// DeleteOrder removes one of the caller's own orders.
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	userID := middleware.GetUserID(r.Context())

	if err := h.orderService.Delete(r.Context(), orderID, userID); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Order not found"))
			return
		}
		log.Printf("[DeleteOrder] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete order"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Order deleted"}))
}

// DownloadInvoice streams the order's invoice PDF.
func (h *OrderHandler) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.orderService.GetByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Order not found"))
			return
		}
		log.Printf("[DownloadInvoice] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get order"))
		return
	}
	if order.UserID != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Not authorized to view this invoice"))
		return
	}

	pdf, err := h.invoiceService.Render(order)
	if err != nil {
		log.Printf("[DownloadInvoice] Render error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to render invoice"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, order.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
