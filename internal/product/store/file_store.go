package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	perrors "github.com/abgdnv/filecommerce/internal/product/errors"
	"github.com/abgdnv/filecommerce/pkg/jsonfile"
)

// Identifiers are five-digit zero-padded codes drawn from [idMin, idMax].
const (
	idMin = 10000
	idMax = 99999
)

// maxIDAttempts bounds the re-draw loop when a drawn identifier collides
// with an existing product.
const maxIDAttempts = 100

// FileStore implements ProductStore over a single JSON collection file.
// The in-memory slice is the authoritative state while the process lives;
// the file is rewritten wholesale after every mutation. The mutex
// serializes every read-modify-write cycle, so concurrent creations cannot
// lose updates or issue duplicate identifiers.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	products []Product
}

// NewFileStore loads the collection at path. A missing file yields an
// empty collection; any other read or parse failure is returned.
func NewFileStore(path string) (*FileStore, error) {
	products, err := jsonfile.Load[[]Product](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load product collection: %w", err)
	}
	return &FileStore{
		path:     path,
		products: products,
	}, nil
}

// FindAll returns all products in collection order, truncated to limit
// when limit is greater than zero.
func (s *FileStore) FindAll(_ context.Context, limit int) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.products)
	if limit > 0 && limit < n {
		n = limit
	}
	list := make([]Product, n)
	for i := range list {
		list[i] = copyProduct(s.products[i])
	}
	return list, nil
}

// FindByID retrieves a product by its identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *FileStore) FindByID(_ context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.products {
		if s.products[i].ID == id {
			p := copyProduct(s.products[i])
			return &p, nil
		}
	}
	return nil, perrors.ErrProductNotFound
}

// Create assigns an identifier, appends the product and persists the
// collection.
func (s *FileStore) Create(_ context.Context, np NewProduct) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.allocateID()
	if err != nil {
		return nil, err
	}
	product := Product{
		ID:          id,
		Title:       np.Title,
		Description: np.Description,
		Code:        np.Code,
		Status:      np.Status,
		Price:       np.Price,
		Stock:       np.Stock,
		Category:    np.Category,
		Thumbnails:  np.Thumbnails,
	}
	s.products = append(s.products, product)
	if err := s.persist(); err != nil {
		s.products = s.products[:len(s.products)-1]
		return nil, err
	}
	created := copyProduct(product)
	return &created, nil
}

// Update merges the non-nil fields of upd onto the product and persists
// the collection. The identifier is never changed.
func (s *FileStore) Update(_ context.Context, id string, upd ProductUpdate) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, perrors.ErrProductNotFound
	}

	before := copyProduct(s.products[idx])
	p := &s.products[idx]
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Code != nil {
		p.Code = *upd.Code
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Thumbnails != nil {
		p.Thumbnails = upd.Thumbnails
	}
	if err := s.persist(); err != nil {
		s.products[idx] = before
		return nil, err
	}
	updated := copyProduct(*p)
	return &updated, nil
}

// DeleteByID removes a product and persists the collection.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *FileStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return perrors.ErrProductNotFound
	}

	removed := s.products[idx]
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	if err := s.persist(); err != nil {
		s.products = append(s.products[:idx], append([]Product{removed}, s.products[idx:]...)...)
		return err
	}
	return nil
}

// persist writes the whole collection to the backing file.
// Callers must hold the write lock.
func (s *FileStore) persist() error {
	if err := jsonfile.Save(s.path, s.products); err != nil {
		return fmt.Errorf("failed to persist product collection: %w", err)
	}
	return nil
}

// allocateID draws a random five-digit identifier, re-drawing on collision
// with an existing product. Callers must hold the write lock.
func (s *FileStore) allocateID() (string, error) {
	for range maxIDAttempts {
		id := fmt.Sprintf("%05d", idMin+rand.IntN(idMax-idMin+1))
		if s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to allocate product ID after %d attempts", maxIDAttempts)
}

// indexOf returns the position of the product with the given ID, or -1.
func (s *FileStore) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// copyProduct returns a copy that does not share the thumbnails slice with
// the store's internal state.
func copyProduct(p Product) Product {
	if p.Thumbnails != nil {
		thumbs := make([]string, len(p.Thumbnails))
		copy(thumbs, p.Thumbnails)
		p.Thumbnails = thumbs
	}
	return p
}
