// Package rest provides HTTP handlers for cart-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	cerrors "github.com/abgdnv/filecommerce/internal/cart/errors"
	"github.com/abgdnv/filecommerce/internal/cart/service"
	"github.com/abgdnv/filecommerce/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Cart routes answer with JSON {message} on not-found and {error} on bad
// payloads; this asymmetry with the plain-text product routes is part of
// the wire contract.
const (
	msgCartNotFound = "Cart does not exist"
	msgLineNotFound = "The product does not exist in the cart"
	msgInvalidItems = "Invalid product data"
	msgEmptyCarts   = "The cart is empty"
	msgShowingCarts = "Showing the shopping cart"
)

type Handler struct {
	service  service.CartService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the cart API with the provided service.
func NewHandler(service service.CartService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the cart API.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/carts", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{cid}", func(r chi.Router) {
			r.Get("/", h.FindByID)

			r.Route("/product/{pid}", func(r chi.Router) {
				r.Get("/", h.FindLine)
				r.Post("/", h.AddLine)
			})
		})
	})
}

// FindAll retrieves all carts.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all carts")
	carts, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving cart list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch carts")
		return
	}
	message := msgShowingCarts
	if len(carts) == 0 {
		message = msgEmptyCarts
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved cart list", "count", len(carts))
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"message": message,
		"carts":   carts,
	})
}

// FindByID retrieves the product lines of a cart by cart ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	cartID, ok := web.ParsePathInt(w, r, mLogger, "cid")
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find cart by ID", "ID", cartID)
	cart, err := h.service.FindByID(r.Context(), cartID)
	if err != nil {
		if errors.Is(err, cerrors.ErrCartNotFound) {
			mLogger.WarnContext(r.Context(), "Cart not found", "ID", cartID)
			web.RespondJSON(w, mLogger, http.StatusNotFound, map[string]string{"message": msgCartNotFound})
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving cart", "ID", cartID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve cart with ID %d", cartID))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved cart", "ID", cart.ID, "lines", len(cart.Products))
	web.RespondJSON(w, mLogger, http.StatusOK, cart.Products)
}

// FindLine retrieves one line of a cart by the referenced product ID.
func (h *Handler) FindLine(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	cartID, ok := web.ParsePathInt(w, r, mLogger, "cid")
	if !ok {
		return
	}
	productID, ok := web.ParsePathInt(w, r, mLogger, "pid")
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find cart line", "cartID", cartID, "productID", productID)
	line, err := h.service.FindLine(r.Context(), cartID, productID)
	if err != nil {
		switch {
		case errors.Is(err, cerrors.ErrCartNotFound):
			mLogger.WarnContext(r.Context(), "Cart not found", "ID", cartID)
			web.RespondJSON(w, mLogger, http.StatusNotFound, map[string]string{"message": msgCartNotFound})
		case errors.Is(err, cerrors.ErrLineNotFound):
			mLogger.WarnContext(r.Context(), "Product not found in cart", "cartID", cartID, "productID", productID)
			web.RespondJSON(w, mLogger, http.StatusNotFound, map[string]string{"message": msgLineNotFound})
		default:
			mLogger.ErrorContext(r.Context(), "Error retrieving cart line", "cartID", cartID, "productID", productID, "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve cart with ID %d", cartID))
		}
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, line)
}

// Create builds a new cart from the supplied product list.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var cartCreateDto service.CartCreateDto
	if err := json.NewDecoder(r.Body).Decode(&cartCreateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]string{"error": msgInvalidItems})
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create cart", "items", len(cartCreateDto.Products))
	if err := h.validate.Struct(cartCreateDto); err != nil {
		mLogger.WarnContext(r.Context(), "Validation failed for cart payload", "error", err)
		web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]string{"error": msgInvalidItems})
		return
	}

	newCart, err := h.service.Create(r.Context(), cartCreateDto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating cart", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create cart")
		return
	}
	mLogger.InfoContext(r.Context(), "Cart created successfully", "ID", newCart.ID, "lines", len(newCart.Products))
	web.RespondJSON(w, mLogger, http.StatusCreated, newCart)
}

// AddLine adds a product to a cart, or bumps the quantity of the line
// already referencing it, and returns the full cart.
func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	cartID, ok := web.ParsePathInt(w, r, mLogger, "cid")
	if !ok {
		return
	}
	productID, ok := web.ParsePathInt(w, r, mLogger, "pid")
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to add product to cart", "cartID", cartID, "productID", productID)
	cart, err := h.service.AddLine(r.Context(), cartID, productID)
	if err != nil {
		if errors.Is(err, cerrors.ErrCartNotFound) {
			mLogger.WarnContext(r.Context(), "Cart not found", "ID", cartID)
			web.RespondJSON(w, mLogger, http.StatusNotFound, map[string]string{"message": msgCartNotFound})
			return
		}
		mLogger.ErrorContext(r.Context(), "Error adding product to cart", "cartID", cartID, "productID", productID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to add product to cart with ID %d", cartID))
		return
	}
	mLogger.InfoContext(r.Context(), "Product added to cart", "cartID", cart.ID, "productID", productID)
	web.RespondJSON(w, mLogger, http.StatusCreated, cart)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, _ := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}
