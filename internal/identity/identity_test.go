package identity

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestStaticProvider(t *testing.T) {
	assert.Nil(t, NewStaticProvider(" ", "").CurrentUser())

	u := NewStaticProvider("Ada", "ada@example.com").CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, User{FirstName: "Ada", Email: "ada@example.com"}, *u)

	p := NewStaticProvider("Ada", "")
	p.CurrentUser().FirstName = "changed"
	assert.Equal(t, "Ada", p.CurrentUser().FirstName)
}

func TestTokenProviderReadsClaims(t *testing.T) {
	p, err := NewTokenProvider(signed(t, jwt.MapClaims{"given_name": "Grace", "email": "grace@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, &User{FirstName: "Grace", Email: "grace@example.com"}, p.CurrentUser())

	p, err = NewTokenProvider(signed(t, jwt.MapClaims{"name": "Linus Torvalds"}))
	require.NoError(t, err)
	assert.Equal(t, &User{FirstName: "Linus"}, p.CurrentUser())

	p, err = NewTokenProvider(signed(t, jwt.MapClaims{"sub": "123"}))
	require.NoError(t, err)
	assert.Nil(t, p.CurrentUser())
}

func TestTokenProviderEmptyAndInvalid(t *testing.T) {
	p, err := NewTokenProvider("")
	require.NoError(t, err)
	assert.Nil(t, p.CurrentUser())

	_, err = NewTokenProvider("not-a-jwt")
	assert.Error(t, err)
}
