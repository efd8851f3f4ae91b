package auth

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"card-crawl-server/runerrors"
)

const defaultName = "Adventurer"

// Validator checks bearer tokens against the auth provider's JWKS.
// The key set is fetched on first use and refreshed in the background by keyfunc.
type Validator struct {
	baseURL string
	issuer  string
	methods []string

	mu      sync.Mutex
	keyfunc jwt.Keyfunc
}

// NewValidator returns a validator for tokens issued by baseURL (e.g. from AUTH_BASE_URL).
// An empty baseURL yields a validator that rejects every token.
func NewValidator(baseURL string) *Validator {
	v := &Validator{baseURL: strings.TrimRight(baseURL, "/"), methods: []string{"EdDSA"}}
	if u, err := url.Parse(v.baseURL); err == nil && u.Host != "" {
		v.issuer = u.Scheme + "://" + u.Host
	}
	return v
}

// NewValidatorWithKeyfunc returns a validator using a fixed key lookup instead of a JWKS endpoint.
func NewValidatorWithKeyfunc(issuer string, kf jwt.Keyfunc, methods ...string) *Validator {
	if len(methods) == 0 {
		methods = []string{"EdDSA"}
	}
	return &Validator{baseURL: issuer, issuer: issuer, methods: methods, keyfunc: kf}
}

func (v *Validator) lookup() (jwt.Keyfunc, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.keyfunc != nil {
		return v.keyfunc, nil
	}
	jwks, err := keyfunc.NewDefault([]string{v.baseURL + "/.well-known/jwks.json"})
	if err != nil {
		return nil, fmt.Errorf("load jwks: %w", err)
	}
	v.keyfunc = jwks.Keyfunc
	return v.keyfunc, nil
}

// Validate parses tokenString and returns its claims.
func (v *Validator) Validate(tokenString string) (jwt.MapClaims, error) {
	if v == nil || v.baseURL == "" {
		return nil, runerrors.ErrAuthNotConfigured
	}
	kf, err := v.lookup()
	if err != nil {
		return nil, err
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods(v.methods)}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.Parse(tokenString, kf, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", runerrors.ErrNotAuthenticated, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", runerrors.ErrNotAuthenticated)
	}
	return claims, nil
}

// NameFromClaims returns the first word of the "name" claim, or a fallback.
func NameFromClaims(claims jwt.MapClaims) string {
	name, _ := claims["name"].(string)
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return defaultName
	}
	return parts[0]
}

// UserIDFromClaims returns the user id from claims ("sub" or "id").
func UserIDFromClaims(claims jwt.MapClaims) string {
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}
	return ""
}
