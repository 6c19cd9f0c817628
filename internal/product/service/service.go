// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"

	"github.com/abgdnv/filecommerce/internal/product/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindAll returns products in collection order, truncated to limit
	// when limit is greater than zero.
	FindAll(ctx context.Context, limit int) ([]ProductDto, error)

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*ProductDto, error)

	// Create adds a new product to the collection.
	// Returns the stored product with its assigned identifier.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update merges the supplied fields onto an existing product. An ID in
	// the payload is ignored; the identifier is immutable.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id string, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
// Status is a pointer so that an explicit false passes the required rule;
// only an absent status is rejected.
type ProductCreateDto struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Code        string   `json:"code"        validate:"required"`
	Status      *bool    `json:"status"      validate:"required"`
	Price       float64  `json:"price"       validate:"required,gt=0"`
	Stock       int      `json:"stock"       validate:"required"`
	Category    string   `json:"category"    validate:"required"`
	Thumbnails  []string `json:"thumbnails"  validate:"required"`
}

// ProductUpdateDto represents a partial update. Absent fields stay nil and
// are not applied. The identifier is taken from the URL, never the body.
type ProductUpdateDto struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Code        *string  `json:"code"`
	Status      *bool    `json:"status"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Thumbnails  []string `json:"thumbnails"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Status      bool     `json:"status"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Thumbnails  []string `json:"thumbnails"`
}

// FindAll retrieves products and returns them as ProductDTOs.
// Returns an empty slice if no products exist or error if the retrieval fails.
func (s *Service) FindAll(ctx context.Context, limit int) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id string) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}

	return toDto(product), nil
}

// Create creates a new product and returns it as a ProductDto.
// Returns an error if the product cannot be created.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	p, err := s.repository.Create(ctx, store.NewProduct{
		Title:       product.Title,
		Description: product.Description,
		Code:        product.Code,
		Status:      *product.Status,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		Thumbnails:  product.Thumbnails,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// Update merges the supplied fields onto an existing product and returns
// the merged product as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id string, product ProductUpdateDto) (*ProductDto, error) {
	updated, err := s.repository.Update(ctx, id, store.ProductUpdate{
		Title:       product.Title,
		Description: product.Description,
		Code:        product.Code,
		Status:      product.Status,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		Thumbnails:  product.Thumbnails,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	return s.repository.DeleteByID(ctx, id)
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Code:        product.Code,
		Status:      product.Status,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		Thumbnails:  product.Thumbnails,
	}
}
