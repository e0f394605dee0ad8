package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := &Issuer{Secret: []byte("test-secret"), TTL: time.Hour}

	raw, err := issuer.Issue(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Role)
	require.NotEmpty(t, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, 42, id)
}

func TestParseMissing(t *testing.T) {
	issuer := &Issuer{Secret: []byte("test-secret"), TTL: time.Hour}

	_, err := issuer.Parse("")
	require.ErrorIs(t, err, ErrTokenMissing)
}

func TestParseExpired(t *testing.T) {
	issuer := &Issuer{Secret: []byte("test-secret"), TTL: -time.Minute}

	raw, err := issuer.Issue(1, "user")
	require.NoError(t, err)

	_, err = issuer.Parse(raw)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTampered(t *testing.T) {
	issuer := &Issuer{Secret: []byte("test-secret"), TTL: time.Hour}

	raw, err := issuer.Issue(1, "user")
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = issuer.Parse(tampered)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseWrongSecret(t *testing.T) {
	issuer := &Issuer{Secret: []byte("test-secret"), TTL: time.Hour}
	other := &Issuer{Secret: []byte("other-secret"), TTL: time.Hour}

	raw, err := issuer.Issue(1, "user")
	require.NoError(t, err)

	_, err = other.Parse(raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseGarbage(t *testing.T) {
	issuer := &Issuer{Secret: []byte("test-secret"), TTL: time.Hour}

	_, err := issuer.Parse("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
