// Package auth implements the request-authorization pipeline: a TTL-cached
// key set fetched from a remote JWKS endpoint, an RS256-only token verifier,
// and the HTTP middleware that turns a bearer token into a Principal.
package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/takeyourtrade/collection-service/internal/domain"
	"github.com/takeyourtrade/collection-service/internal/metrics"
)

// DefaultKeySetTTL is how long a fetched key set is served from cache
// before it is refetched from its source.
const DefaultKeySetTTL = 24 * time.Hour

// keySetCacheSize bounds the cache. One issuer means one entry in
// practice; a few slots leave room for issuer migration.
const keySetCacheSize = 4

// maxKeySetBody limits the JWKS response body to prevent resource exhaustion.
const maxKeySetBody = 1 << 20

// Key is a single published verification key. Only RSA fields are kept:
// the verifier accepts RS256 exclusively.
type Key struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// RSAPublicKey reconstructs the public key from the base64url-encoded
// modulus and exponent.
func (k *Key) RSAPublicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decode RSA modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decode RSA exponent: %w", err)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}

// KeySet is the parsed body of a JWKS endpoint.
type KeySet struct {
	Keys []Key `json:"keys"`
}

// Find returns the key whose kid matches, scanning in published order.
func (ks *KeySet) Find(kid string) (*Key, bool) {
	for i := range ks.Keys {
		if ks.Keys[i].Kid == kid {
			return &ks.Keys[i], true
		}
	}
	return nil, false
}

// KeySetSource yields the key set published at a URL. Implemented by
// KeySetCache; tests substitute fakes.
type KeySetSource interface {
	Get(ctx context.Context, url string) (*KeySet, error)
}

// KeySetCache fetches key sets lazily and serves them from an expiring
// cache keyed by source URL. Safe for concurrent use; concurrent callers
// during a miss may each trigger a fetch, which is acceptable. On fetch
// failure nothing is cached - there is no stale fallback.
type KeySetCache struct {
	cache  *expirable.LRU[string, *KeySet]
	client *http.Client
}

// NewKeySetCache builds a cache with the given TTL. A nil client gets a
// default with a 10-second timeout.
func NewKeySetCache(ttl time.Duration, client *http.Client) *KeySetCache {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &KeySetCache{
		cache:  expirable.NewLRU[string, *KeySet](keySetCacheSize, nil, ttl),
		client: client,
	}
}

// Get returns the cached key set for url, fetching it when absent or
// expired. Any fetch failure surfaces as domain.ErrKeySetUnavailable.
func (c *KeySetCache) Get(ctx context.Context, url string) (*KeySet, error) {
	if ks, ok := c.cache.Get(url); ok {
		return ks, nil
	}

	metrics.KeySetFetches.Inc()
	ks, err := c.fetch(ctx, url)
	if err != nil {
		metrics.KeySetFetchFailures.Inc()
		return nil, err
	}

	c.cache.Add(url, ks)
	return ks, nil
}

func (c *KeySetCache) fetch(ctx context.Context, url string) (*KeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", domain.ErrKeySetUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeySetUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: endpoint returned status %d", domain.ErrKeySetUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxKeySetBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrKeySetUnavailable, err)
	}

	var ks KeySet
	if err := json.Unmarshal(body, &ks); err != nil {
		return nil, fmt.Errorf("%w: malformed body: %v", domain.ErrKeySetUnavailable, err)
	}

	return &ks, nil
}
