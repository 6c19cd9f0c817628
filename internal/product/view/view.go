// Package view provides read-only presentation queries over the product
// collection: pagination, price sorting and free-text filtering.
package view

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/abgdnv/filecommerce/internal/product/service"
)

// PageQuery carries the presentation parameters for one page request.
type PageQuery struct {
	Page  int
	Limit int
	Sort  string // "asc" or "desc", by price
	Query string // free-text filter over title and category
}

// Page is one page of products with its navigation metadata.
// PrevPage and NextPage are null when there is no such page.
type Page struct {
	Products    []service.ProductDto `json:"products"`
	HasPrevPage bool                 `json:"hasPrevPage"`
	HasNextPage bool                 `json:"hasNextPage"`
	PrevPage    *int                 `json:"prevPage"`
	NextPage    *int                 `json:"nextPage"`
	CurrentPage int                  `json:"currentPage"`
	TotalPages  int                  `json:"totalPages"`
}

// Pager projects pages out of the product collection. It never mutates
// the underlying store.
type Pager struct {
	service service.ProductService
}

// NewPager creates a Pager over the given product service.
func NewPager(svc service.ProductService) *Pager {
	return &Pager{service: svc}
}

// Page returns the requested page of products. Page numbers start at 1;
// out-of-range pages are clamped to the last page.
func (p *Pager) Page(ctx context.Context, q PageQuery) (*Page, error) {
	all, err := p.service.FindAll(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to build product page: %w", err)
	}

	filtered := filter(all, q.Query)
	sortByPrice(filtered, q.Sort)

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	totalPages := (len(filtered) + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	current := q.Page
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := (current - 1) * limit
	end := start + limit
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	page := &Page{
		Products:    filtered[start:end],
		HasPrevPage: current > 1,
		HasNextPage: current < totalPages,
		CurrentPage: current,
		TotalPages:  totalPages,
	}
	if page.HasPrevPage {
		prev := current - 1
		page.PrevPage = &prev
	}
	if page.HasNextPage {
		next := current + 1
		page.NextPage = &next
	}
	return page, nil
}

// filter keeps products whose title or category contains query,
// case-insensitive. An empty query keeps everything.
func filter(products []service.ProductDto, query string) []service.ProductDto {
	if query == "" {
		return products
	}
	needle := strings.ToLower(query)
	filtered := make([]service.ProductDto, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// sortByPrice orders products by price, descending when dir is "desc".
// The sort is stable so equal prices keep collection order.
func sortByPrice(products []service.ProductDto, dir string) {
	desc := dir == "desc"
	slices.SortStableFunc(products, func(a, b service.ProductDto) int {
		switch {
		case a.Price < b.Price:
			if desc {
				return 1
			}
			return -1
		case a.Price > b.Price:
			if desc {
				return -1
			}
			return 1
		default:
			return 0
		}
	})
}
