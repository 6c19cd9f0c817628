// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	perrors "github.com/abgdnv/filecommerce/internal/product/errors"
	"github.com/abgdnv/filecommerce/internal/product/service"
	"github.com/abgdnv/filecommerce/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Product routes answer with plain text on failure; this is part of the
// wire contract, unlike the JSON errors of the cart routes.
const (
	msgNotFound       = "The requested product does not exist"
	msgAllRequired    = "All fields are required"
	msgBadStatus      = "Field 'status' must be a boolean"
	msgBadThumbnails  = "Field 'thumbnails' must be an array of strings"
	msgBadPrice       = "Field 'price' must be a positive number"
	msgInvalidBody    = "Invalid request body"
	msgCreated        = "Product added successfully"
	msgUpdated        = "Product updated successfully"
	msgDeleted        = "Product deleted successfully"
	msgShowingAll     = "Showing all products"
	msgShowingLimited = "Showing %d products"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the product API with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product API.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{pid}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindAll retrieves all products, optionally truncated by the limit query
// parameter. A missing, malformed or non-positive limit silently falls
// back to the full list.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	limit := web.QueryInt(r, "limit", 0, 1)
	mLogger.DebugContext(r.Context(), "Received request to find all products", "limit", limit)
	list, err := h.service.FindAll(r.Context(), limit)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondText(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	message := msgShowingAll
	if limit > 0 {
		message = fmt.Sprintf(msgShowingLimited, limit)
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"message":  message,
		"products": list,
	})
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := r.PathValue("pid")

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondText(w, http.StatusNotFound, msgNotFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondText(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %s", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Title", found.Title)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var productCreateDto service.ProductCreateDto
	if err := json.NewDecoder(r.Body).Decode(&productCreateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondText(w, http.StatusBadRequest, decodeErrorMessage(err))
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "product", productCreateDto)
	if err := h.validate.Struct(productCreateDto); err != nil {
		mLogger.WarnContext(r.Context(), "Validation failed for product payload", "error", err)
		web.RespondText(w, http.StatusBadRequest, validationErrorMessage(err))
		return
	}

	newProduct, err := h.service.Create(r.Context(), productCreateDto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondText(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Title", newProduct.Title)
	web.RespondJSON(w, mLogger, http.StatusCreated, map[string]any{
		"message": msgCreated,
		"product": newProduct,
	})
}

// Update merges a partial payload onto an existing product. An id field in
// the payload has no effect; the identifier comes from the URL only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := r.PathValue("pid")
	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	// Resolve the product before looking at the body: an unknown id is
	// reported as 404 even when the payload is malformed.
	if _, err := h.service.FindByID(r.Context(), id); err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondText(w, http.StatusNotFound, msgNotFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error resolving product for update", "ID", id, "error", err)
		web.RespondText(w, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with ID %s", id))
		return
	}
	var productUpdateDto service.ProductUpdateDto
	if err := json.NewDecoder(r.Body).Decode(&productUpdateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondText(w, http.StatusBadRequest, decodeErrorMessage(err))
		return
	}

	updated, err := h.service.Update(r.Context(), id, productUpdateDto)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondText(w, http.StatusNotFound, msgNotFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		web.RespondText(w, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Title", updated.Title)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"message": msgUpdated,
		"product": updated,
	})
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := r.PathValue("pid")
	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for deletion", "ID", id)
			web.RespondText(w, http.StatusNotFound, msgNotFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		web.RespondText(w, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{
		"message": msgDeleted,
	})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, _ := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}

// decodeErrorMessage maps a JSON decode failure to the product API's
// field-shape messages. Wrong element types in thumbnails and a non-bool
// status are reported specifically; everything else is a generic reject.
func decodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch {
		case typeErr.Field == "status":
			return msgBadStatus
		case strings.HasPrefix(typeErr.Field, "thumbnails"):
			return msgBadThumbnails
		}
	}
	return msgInvalidBody
}

// validationErrorMessage maps validator failures to the product API's
// plain-text messages.
func validationErrorMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			if fieldErr.Field() == "Price" && fieldErr.Tag() == "gt" {
				return msgBadPrice
			}
		}
		return msgAllRequired
	}
	return msgInvalidBody
}
