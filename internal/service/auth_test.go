package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akarpov/product_api/internal/hash"
	"github.com/akarpov/product_api/internal/repo"
	"github.com/akarpov/product_api/internal/tokens"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Users:  repo.NewMemoryStore(),
		Hasher: hash.New(bcrypt.MinCost),
		Issuer: &tokens.Issuer{Secret: []byte("test-secret"), TTL: time.Hour},
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	user, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "pw1", Role: "user"})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "a@x.com", user.Email)
	require.NotEqual(t, "pw1", user.PasswordHash)
}

func TestRegisterMissingFields(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	cases := []RegisterInput{
		{Email: "a@x.com", Password: "pw", Role: "user"},
		{Name: "A", Password: "pw", Role: "user"},
		{Name: "A", Email: "a@x.com", Role: "user"},
		{Name: "A", Email: "a@x.com", Password: "pw"},
		{Name: "A", Email: "a@x.com", Password: "pw", Role: "superuser"},
	}
	for _, in := range cases {
		_, err := svc.Register(ctx, in)
		require.ErrorIs(t, err, ErrMissingField)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "pw1", Role: "user"})
	require.NoError(t, err)

	// everything else differs, only the email collides
	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "a@x.com", Password: "pw2", Role: "admin"})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "pw1", Role: "admin"})
	require.NoError(t, err)

	token, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Issuer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "pw1", Role: "user"})
	require.NoError(t, err)

	// wrong password and unknown email are indistinguishable
	_, wrongPw := svc.Login(ctx, "a@x.com", "pw1x")
	require.ErrorIs(t, wrongPw, ErrInvalidCredentials)

	_, unknown := svc.Login(ctx, "nobody@x.com", "pw1")
	require.ErrorIs(t, unknown, ErrInvalidCredentials)

	require.Equal(t, wrongPw.Error(), unknown.Error())
}
