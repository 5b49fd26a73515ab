package services

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultClerkJWKSURL = "https://api.clerk.com/v1/jwks"

// Identity is the verified claim set the rest of the service works from. Sub
// is the provider subject and doubles as the user primary key.
type Identity struct {
	Sub      string
	Email    string
	Fullname string
}

type ClerkVerifier interface {
	Verify(ctx context.Context, tokenString string) (*Identity, error)
}

type clerkVerifier struct {
	httpClient *http.Client
	jwks       *jwksCache
}

func NewClerkVerifier(httpClient *http.Client, jwksURL string) ClerkVerifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if strings.TrimSpace(jwksURL) == "" {
		jwksURL = DefaultClerkJWKSURL
	}
	return &clerkVerifier{
		httpClient: httpClient,
		jwks:       newJWKSCache(httpClient, jwksURL),
	}
}

// Verify checks the token signature against the provider's published key set
// and returns the subject and email claims. The audience claim is not
// validated: Clerk session tokens carry the frontend origin there, which is
// deployment specific.
func (v *clerkVerifier) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, AuthError{Reason: AuthReasonMissingToken}
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	claims := jwt.MapClaims{}

	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if strings.TrimSpace(kid) == "" {
			return nil, AuthError{Reason: AuthReasonMissingKeyID}
		}
		pub, err := v.jwks.getKey(ctx, kid)
		if err != nil {
			return nil, err
		}
		return pub, nil
	})
	if err != nil {
		var authErr AuthError
		if errors.As(err, &authErr) {
			return nil, authErr
		}
		return nil, AuthError{Reason: AuthReasonInvalidToken, Err: err}
	}
	if tok == nil || !tok.Valid {
		return nil, AuthError{Reason: AuthReasonInvalidToken}
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return nil, AuthError{Reason: AuthReasonInvalidToken, Err: fmt.Errorf("missing sub claim")}
	}

	out := &Identity{Sub: sub}
	if e, _ := claims["email"].(string); e != "" {
		out.Email = e
	}
	if n, _ := claims["name"].(string); n != "" {
		out.Fullname = n
	}
	return out, nil
}

// ----- JWKS cache -----

type jwksCache struct {
	httpClient *http.Client
	jwksURL    string

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey

	fetchedAt time.Time
	ttl       time.Duration
}

func newJWKSCache(httpClient *http.Client, jwksURL string) *jwksCache {
	return &jwksCache{
		httpClient: httpClient,
		jwksURL:    jwksURL,
		keys:       map[string]*rsa.PublicKey{},
		ttl:        6 * time.Hour,
	}
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}
type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// getKey returns the cached key for kid, refreshing the set when the kid is
// unknown or the cache is past its TTL. An unreachable provider falls back to
// the cached key so key rotation does not take the service down.
func (j *jwksCache) getKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	j.mu.RLock()
	key := j.keys[kid]
	stale := time.Since(j.fetchedAt) > j.ttl
	j.mu.RUnlock()

	if key != nil && !stale {
		return key, nil
	}

	if err := j.refresh(ctx); err != nil {
		j.mu.RLock()
		key = j.keys[kid]
		j.mu.RUnlock()
		if key != nil {
			return key, nil
		}
		return nil, AuthError{Reason: AuthReasonKeyNotFound, Err: err}
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	key = j.keys[kid]
	if key == nil {
		return nil, AuthError{Reason: AuthReasonKeyNotFound, Err: fmt.Errorf("kid not found in jwks: %s", kid)}
	}
	return key, nil
}

func (j *jwksCache) refresh(ctx context.Context) error {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, j.jwksURL, nil)
	res, err := j.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("jwks fetch failed: %s", res.Status)
	}

	var set jwkSet
	if err := json.NewDecoder(res.Body).Decode(&set); err != nil {
		return err
	}

	next := map[string]*rsa.PublicKey{}
	for _, k := range set.Keys {
		if strings.TrimSpace(k.Kid) == "" || k.Kty != "RSA" {
			continue
		}
		pub, err := rsaFromModExp(k.N, k.E)
		if err == nil {
			next[k.Kid] = pub
		}
	}

	if len(next) == 0 {
		return fmt.Errorf("jwks contained no usable keys")
	}

	j.mu.Lock()
	j.keys = next
	j.fetchedAt = time.Now()
	j.mu.Unlock()
	return nil
}

func rsaFromModExp(nB64, eB64 string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(nB64)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(eB64)
	if err != nil {
		return nil, err
	}

	n := new(big.Int).SetBytes(nb)
	e := 0
	for _, b := range eb {
		e = e<<8 + int(b)
	}
	if e == 0 {
		return nil, fmt.Errorf("invalid exponent")
	}

	return &rsa.PublicKey{N: n, E: e}, nil
}
