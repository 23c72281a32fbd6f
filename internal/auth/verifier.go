package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/takeyourtrade/collection-service/internal/domain"
)

// maxTokenSize rejects absurdly large tokens before any parsing happens.
const maxTokenSize = 8192

// Claims is the decoded payload of a verified token. Expected claims are
// read through typed accessors that fail with Unauthenticated subtypes
// rather than by ambient map access.
type Claims map[string]any

var (
	errMissingSubject   = fmt.Errorf("%w: missing subject claim", domain.ErrUnauthenticated)
	errMalformedSubject = fmt.Errorf("%w: malformed subject claim", domain.ErrUnauthenticated)
)

// Subject returns the sub claim as a non-empty string.
func (c Claims) Subject() (string, error) {
	raw, ok := c["sub"]
	if !ok {
		return "", errMissingSubject
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errMalformedSubject
	}
	return s, nil
}

// Verifier checks bearer tokens against the remotely published key set.
// Verification results are never cached; only the key set is.
type Verifier struct {
	keys      KeySetSource
	keySetURL string
	audience  string
	issuer    string
}

// NewVerifier builds a Verifier bound to one key-set URL and one expected
// audience/issuer pair.
func NewVerifier(keys KeySetSource, keySetURL, audience, issuer string) *Verifier {
	return &Verifier{
		keys:      keys,
		keySetURL: keySetURL,
		audience:  audience,
		issuer:    issuer,
	}
}

// Verify parses and verifies a token, returning its claim set.
//
// Only RS256 is accepted: jwt.WithValidMethods pins the algorithm so a
// token claiming any other method is rejected outright, closing the
// algorithm-confusion hole. Audience and issuer must equal the configured
// values exactly; expiry and not-before are honored when present.
//
// Failures map onto the domain taxonomy: a key-set fetch problem keeps
// domain.ErrKeySetUnavailable (infrastructure outage), an unknown kid keeps
// domain.ErrSigningKeyNotFound (an authentication failure), everything else
// wraps domain.ErrInvalidToken.
func (v *Verifier) Verify(ctx context.Context, tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: empty token", domain.ErrInvalidToken)
	}
	if len(tokenStr) > maxTokenSize {
		return nil, fmt.Errorf("%w: token exceeds maximum size", domain.ErrInvalidToken)
	}

	token, err := jwt.Parse(tokenStr, v.keyFor(ctx),
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.audience),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil {
		if errors.Is(err, domain.ErrKeySetUnavailable) || errors.Is(err, domain.ErrSigningKeyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: unreadable claims", domain.ErrInvalidToken)
	}

	claims := make(Claims, len(mc))
	for k, val := range mc {
		claims[k] = val
	}
	return claims, nil
}

// keyFor resolves the verification key for a token by its kid header,
// through the key-set cache.
func (v *Verifier) keyFor(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, fmt.Errorf("%w: token header missing kid", domain.ErrInvalidToken)
		}

		ks, err := v.keys.Get(ctx, v.keySetURL)
		if err != nil {
			return nil, err
		}

		key, found := ks.Find(kid)
		if !found {
			return nil, fmt.Errorf("%w: kid %q", domain.ErrSigningKeyNotFound, kid)
		}
		return key.RSAPublicKey()
	}
}
