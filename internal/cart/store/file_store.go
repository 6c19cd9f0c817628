package store

import (
	"context"
	"fmt"
	"sync"

	cerrors "github.com/abgdnv/filecommerce/internal/cart/errors"
	"github.com/abgdnv/filecommerce/pkg/jsonfile"
)

// FileStore implements CartStore over a single JSON collection file.
// Like the product store, the in-memory slice is authoritative while the
// process lives and the file is rewritten wholesale after every mutation,
// with a mutex serializing the read-modify-write cycles.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	carts  []Cart
	nextID int
}

// NewFileStore loads the collection at path and seeds the identifier
// counter with the highest identifier seen plus one. A missing file yields
// an empty collection; any other read or parse failure is returned.
func NewFileStore(path string) (*FileStore, error) {
	carts, err := jsonfile.Load[[]Cart](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart collection: %w", err)
	}
	nextID := 1
	for _, c := range carts {
		if c.ID >= nextID {
			nextID = c.ID + 1
		}
	}
	return &FileStore{
		path:   path,
		carts:  carts,
		nextID: nextID,
	}, nil
}

// FindAll returns all carts in collection order.
func (s *FileStore) FindAll(_ context.Context) ([]Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Cart, len(s.carts))
	for i := range s.carts {
		list[i] = copyCart(s.carts[i])
	}
	return list, nil
}

// FindByID retrieves a cart by its identifier.
// Returns ErrCartNotFound if no cart exists with the given ID.
func (s *FileStore) FindByID(_ context.Context, id int) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, cerrors.ErrCartNotFound
	}
	cart := copyCart(s.carts[idx])
	return &cart, nil
}

// Create builds a new cart of snapshot lines, assigns the next sequential
// identifier and persists the collection.
func (s *FileStore) Create(_ context.Context, items []SnapshotItem) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, len(items))
	for i, item := range items {
		lines[i] = Line{
			ID:          i + 1,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Stock:       item.Stock,
		}
	}
	cart := Cart{
		ID:       s.nextID,
		Products: lines,
	}
	s.carts = append(s.carts, cart)
	if err := s.persist(); err != nil {
		s.carts = s.carts[:len(s.carts)-1]
		return nil, err
	}
	s.nextID++
	created := copyCart(cart)
	return &created, nil
}

// AddLine locates the line referencing productID within the cart. A line
// with an existing quantity is incremented; a line found without one jumps
// straight to quantity 2. No line at all appends a reference line with
// quantity 1. Persists and returns the full cart.
func (s *FileStore) AddLine(_ context.Context, cartID, productID int) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(cartID)
	if idx < 0 {
		return nil, cerrors.ErrCartNotFound
	}

	cart := &s.carts[idx]
	before := copyCart(*cart)

	found := false
	for i := range cart.Products {
		if cart.Products[i].ID == productID {
			if cart.Products[i].Quantity > 0 {
				cart.Products[i].Quantity++
			} else {
				cart.Products[i].Quantity = 2
			}
			found = true
			break
		}
	}
	if !found {
		cart.Products = append(cart.Products, Line{ID: productID, Quantity: 1})
	}

	if err := s.persist(); err != nil {
		s.carts[idx] = before
		return nil, err
	}
	updated := copyCart(*cart)
	return &updated, nil
}

// persist writes the whole collection to the backing file.
// Callers must hold the write lock.
func (s *FileStore) persist() error {
	if err := jsonfile.Save(s.path, s.carts); err != nil {
		return fmt.Errorf("failed to persist cart collection: %w", err)
	}
	return nil
}

// indexOf returns the position of the cart with the given ID, or -1.
func (s *FileStore) indexOf(id int) int {
	for i := range s.carts {
		if s.carts[i].ID == id {
			return i
		}
	}
	return -1
}

// copyCart returns a copy that does not share the line slice with the
// store's internal state.
func copyCart(c Cart) Cart {
	if c.Products != nil {
		lines := make([]Line, len(c.Products))
		copy(lines, c.Products)
		c.Products = lines
	}
	return c
}
