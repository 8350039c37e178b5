package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casahub/backend/internal/middleware"
	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/services"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		log.Printf("[CreateProduct] Validation errors: %v", errors)
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	product, err := h.productService.Create(r.Context(), userID, &req)
	if err != nil {
		log.Printf("[CreateProduct] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create product"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(product))
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, err := h.productService.GetByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Product not found"))
			return
		}
		log.Printf("[GetProduct] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get product"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(product))
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	productID := chi.URLParam(r, "productId")

	if err := h.productService.Delete(r.Context(), userID, productID); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Product not found"))
			return
		}
		log.Printf("[DeleteProduct] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete product"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Product deleted"}))
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, info, err := h.productService.List(r.Context(), q.Get("category"), q.Get("brand"), q.Get("q"), pagination(r))
	writePage(w, products, info, err, "Failed to list products")
}

func (h *ProductHandler) ListMyProducts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	products, info, err := h.productService.ListMine(r.Context(), userID, pagination(r))
	writePage(w, products, info, err, "Failed to list products")
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productService.ListCategories(r.Context())
	if err != nil {
		log.Printf("[ListCategories] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list categories"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(categories))
}

func (h *ProductHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.productService.ListBrands(r.Context())
	if err != nil {
		log.Printf("[ListBrands] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list brands"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(brands))
}
