package repo

import (
	"context"
	"sync"

	"github.com/akarpov/product_api/internal/models"
)

// MemoryStore keeps users and products in process memory. Echo handles
// requests on concurrent goroutines, so every operation takes the store
// mutex; operations copy records in and out so callers never share memory
// with the backing slices.
//
// IDs come from per-collection counters that only ever grow, so an id is
// never reused after a delete.
type MemoryStore struct {
	mu sync.Mutex

	users      []models.User
	nextUserID int

	products      []models.Product
	nextProductID int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextUserID: 1, nextProductID: 1}
}

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrUserExists
		}
	}

	u.ID = s.nextUserID
	s.nextUserID++
	s.users = append(s.users, *u)
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.Product, len(s.products))
	copy(items, s.products)
	return items, nil
}

func (s *MemoryStore) GetProduct(_ context.Context, id int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextProductID
	s.nextProductID++
	s.products = append(s.products, *p)
	return nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, id int, patch ProductPatch) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.products[i].Name = *patch.Name
		}
		if patch.Description != nil {
			s.products[i].Description = *patch.Description
		}
		if patch.Price != nil {
			s.products[i].Price = *patch.Price
		}
		if patch.Stock != nil {
			s.products[i].Stock = *patch.Stock
		}
		updated := s.products[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteProduct(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
