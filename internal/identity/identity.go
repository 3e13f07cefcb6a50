package identity

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// User is the signed-in person, if any. Either field may be empty.
type User struct {
	FirstName string
	Email     string
}

type Provider interface {
	// CurrentUser returns nil when nobody is signed in.
	CurrentUser() *User
}

type staticProvider struct {
	user *User
}

// NewStaticProvider serves a fixed user. Blank name and email mean anonymous.
func NewStaticProvider(firstName, email string) Provider {
	firstName = strings.TrimSpace(firstName)
	email = strings.TrimSpace(email)
	if firstName == "" && email == "" {
		return &staticProvider{}
	}
	return &staticProvider{user: &User{FirstName: firstName, Email: email}}
}

// CurrentUser implements Provider.
func (p *staticProvider) CurrentUser() *User {
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

// NewTokenProvider reads the user from an identity token's claims. The
// signature is not checked here; the server verifies it.
func NewTokenProvider(token string) (Provider, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return &staticProvider{}, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse identity token: %w", err)
	}

	return NewStaticProvider(firstName(claims), stringClaim(claims, "email")), nil
}

func firstName(claims jwt.MapClaims) string {
	for _, key := range []string{"given_name", "first_name"} {
		if v := stringClaim(claims, key); v != "" {
			return v
		}
	}
	if fields := strings.Fields(stringClaim(claims, "name")); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return strings.TrimSpace(v)
}
