package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	h := New(bcrypt.MinCost)

	hashed, err := h.HashPassword("password")
	require.NoError(t, err)
	require.NotEqual(t, "password", hashed)

	require.True(t, CheckPassword(hashed, "password"))
	require.False(t, CheckPassword(hashed, "passwordx"))
	require.False(t, CheckPassword(hashed, ""))
}

func TestHashIsSalted(t *testing.T) {
	h := New(bcrypt.MinCost)

	first, err := h.HashPassword("password")
	require.NoError(t, err)
	second, err := h.HashPassword("password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, CheckPassword(first, "password"))
	require.True(t, CheckPassword(second, "password"))
}

func TestNewClampsInvalidCost(t *testing.T) {
	h := New(999)
	hashed, err := h.HashPassword("password")
	require.NoError(t, err)
	require.True(t, CheckPassword(hashed, "password"))
}
