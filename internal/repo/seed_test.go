package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akarpov/product_api/internal/hash"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	hasher := hash.New(bcrypt.MinCost)

	require.NoError(t, Seed(ctx, s, hasher))

	admin, err := s.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, "admin", admin.Role)
	require.True(t, hash.CheckPassword(admin.PasswordHash, "admin123"))

	user, err := s.GetUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, "user", user.Role)

	items, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Product A", items[0].Name)
	require.Equal(t, 100.0, items[0].Price)

	// seeding again must not duplicate anything
	require.NoError(t, Seed(ctx, s, hasher))
	items, err = s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
}
