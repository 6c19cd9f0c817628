// Package service provides the implementation of cart-related business logic.
package service

import (
	"context"
	"fmt"

	cerrors "github.com/abgdnv/filecommerce/internal/cart/errors"
	"github.com/abgdnv/filecommerce/internal/cart/store"
)

// CartService defines the methods for managing shopping carts.
type CartService interface {
	// FindAll returns all carts in collection order.
	FindAll(ctx context.Context) ([]CartDto, error)

	// FindByID retrieves a cart by its identifier.
	// Returns ErrCartNotFound if no cart exists with the given ID.
	FindByID(ctx context.Context, id int) (*CartDto, error)

	// FindLine retrieves one line of a cart by the referenced product ID.
	// Returns ErrCartNotFound or ErrLineNotFound accordingly.
	FindLine(ctx context.Context, cartID, productID int) (*LineDto, error)

	// Create builds a new cart from the supplied product list.
	Create(ctx context.Context, cart CartCreateDto) (*CartDto, error)

	// AddLine adds a product to a cart, or bumps the quantity of the line
	// already referencing it, and returns the full cart.
	// Returns ErrCartNotFound if no cart exists with the given ID.
	AddLine(ctx context.Context, cartID, productID int) (*CartDto, error)
}

// Service implements CartService and provides methods to manage carts.
type Service struct {
	repository store.CartStore
}

// NewService creates a new instance of CartService with the provided repository.
func NewService(repo store.CartStore) *Service {
	return &Service{
		repository: repo,
	}
}

// CartItemDto represents one supplied product when a cart is created from
// a product list. Every field is mandatory.
type CartItemDto struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"required"`
	Stock       int     `json:"stock"       validate:"required"`
}

// CartCreateDto represents the data transfer object for creating a cart.
type CartCreateDto struct {
	Products []CartItemDto `json:"products" validate:"required,dive"`
}

// LineDto represents one cart line on the wire. The on-disk shape is kept:
// snapshot lines omit quantity, reference lines omit the product fields.
type LineDto struct {
	ID          int     `json:"id"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Stock       int     `json:"stock,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
}

// CartDto represents the data transfer object for a cart.
type CartDto struct {
	ID       int       `json:"id"`
	Products []LineDto `json:"products"`
}

// FindAll retrieves all carts and returns them as CartDTOs.
func (s *Service) FindAll(ctx context.Context) ([]CartDto, error) {
	carts, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch carts: %w", err)
	}
	cartDTOs := make([]CartDto, len(carts))

	for i, item := range carts {
		cartDTOs[i] = *toDto(&item)
	}

	return cartDTOs, nil
}

// FindByID retrieves a cart by its ID and returns it as a CartDto.
// Returns ErrCartNotFound if no cart exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int) (*CartDto, error) {
	cart, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart by ID %d: %w", id, err)
	}

	return toDto(cart), nil
}

// FindLine retrieves one line of a cart by the referenced product ID.
// Returns ErrCartNotFound or ErrLineNotFound accordingly.
func (s *Service) FindLine(ctx context.Context, cartID, productID int) (*LineDto, error) {
	cart, err := s.repository.FindByID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart by ID %d: %w", cartID, err)
	}
	for _, line := range cart.Products {
		if line.ID == productID {
			dto := toLineDto(line)
			return &dto, nil
		}
	}
	return nil, cerrors.ErrLineNotFound
}

// Create builds a new cart from the supplied product list and returns it
// as a CartDto.
func (s *Service) Create(ctx context.Context, cart CartCreateDto) (*CartDto, error) {
	items := make([]store.SnapshotItem, len(cart.Products))
	for i, p := range cart.Products {
		items[i] = store.SnapshotItem{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Stock:       p.Stock,
		}
	}
	created, err := s.repository.Create(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return toDto(created), nil
}

// AddLine adds a product to a cart and returns the full cart as a CartDto.
// Returns ErrCartNotFound if no cart exists with the given ID.
func (s *Service) AddLine(ctx context.Context, cartID, productID int) (*CartDto, error) {
	cart, err := s.repository.AddLine(ctx, cartID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to add product %d to cart %d: %w", productID, cartID, err)
	}

	return toDto(cart), nil
}

// toDto converts a store.Cart to a CartDto.
func toDto(cart *store.Cart) *CartDto {
	lines := make([]LineDto, len(cart.Products))
	for i, line := range cart.Products {
		lines[i] = toLineDto(line)
	}
	return &CartDto{
		ID:       cart.ID,
		Products: lines,
	}
}

// toLineDto converts a store.Line to a LineDto.
func toLineDto(line store.Line) LineDto {
	return LineDto{
		ID:          line.ID,
		Name:        line.Name,
		Description: line.Description,
		Price:       line.Price,
		Stock:       line.Stock,
		Quantity:    line.Quantity,
	}
}
