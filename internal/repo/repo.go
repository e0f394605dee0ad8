package repo

import (
	"context"
	"errors"

	"github.com/akarpov/product_api/internal/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrUserExists = errors.New("user already exists")
)

// ProductPatch carries a partial product update. Nil fields are left
// untouched, so a zero price or zero stock is a real value, not an omission.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *uint    `json:"stock"`
}

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type ProductRepo interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, id int, patch ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

// Store is what the HTTP layer wires against: both repositories behind one
// backend, either the in-memory store or the gorm one.
type Store interface {
	UserRepo
	ProductRepo
}
