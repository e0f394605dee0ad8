package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/akarpov/product_api/internal/hash"
	"github.com/akarpov/product_api/internal/models"
)

// Seed loads the demo accounts and catalog the service ships with. Safe to
// run against a store that already has them: duplicate users are skipped and
// products are only created while the catalog is empty.
func Seed(ctx context.Context, store Store, hasher *hash.Hasher) error {
	seedUsers := []struct {
		name, email, password, role string
	}{
		{"Admin User", "admin@example.com", "admin123", models.RoleAdmin},
		{"Regular User", "user@example.com", "user123", models.RoleUser},
	}

	for _, su := range seedUsers {
		pwHash, err := hasher.HashPassword(su.password)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
		user := models.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: pwHash,
			Role:         su.role,
		}
		if err := store.CreateUser(ctx, &user); err != nil && !errors.Is(err, ErrUserExists) {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
	}

	existing, err := store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	seedProducts := []models.Product{
		{Name: "Product A", Description: "Description of Product A", Price: 100, Stock: 10},
		{Name: "Product B", Description: "Description of Product B", Price: 200, Stock: 5},
	}
	for i := range seedProducts {
		if err := store.CreateProduct(ctx, &seedProducts[i]); err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
	}
	return nil
}
