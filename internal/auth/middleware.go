package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/takeyourtrade/collection-service/internal/domain"
	"github.com/takeyourtrade/collection-service/internal/logger"
	"github.com/takeyourtrade/collection-service/internal/metrics"
)

const headerAuthorization = "Authorization"

// Rejection messages stay short and generic: sub-causes are logged,
// not surfaced.
const (
	msgMissingCredential   = "missing credential"
	msgMalformedCredential = "malformed credential"
	msgInvalidCredential   = "invalid credential"
	msgMissingSubject      = "missing subject"
	msgMalformedSubject    = "malformed subject"
	msgKeySetUnavailable   = "authentication service unavailable"
)

// Middleware is the auth gate: it extracts the bearer token, verifies it,
// and stores the resulting Principal in the request context. Every failure
// branch short-circuits before any business logic or database access runs.
func Middleware(verifier *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			header := r.Header.Get(headerAuthorization)
			if header == "" {
				reject(w, http.StatusUnauthorized, msgMissingCredential)
				return
			}

			// Exactly two whitespace-separated tokens, scheme "Bearer"
			// compared case-insensitively.
			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("Malformed authorization header")
				reject(w, http.StatusUnauthorized, msgMalformedCredential)
				return
			}

			claims, err := verifier.Verify(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrKeySetUnavailable) {
					log.Error("Key set unavailable", "error", err)
					reject(w, http.StatusServiceUnavailable, msgKeySetUnavailable)
					return
				}
				log.Warn("Token verification failed", "error", err)
				reject(w, http.StatusUnauthorized, msgInvalidCredential)
				return
			}

			sub, err := claims.Subject()
			if err != nil {
				log.Warn("Subject claim rejected", "error", err)
				if errors.Is(err, errMissingSubject) {
					reject(w, http.StatusUnauthorized, msgMissingSubject)
				} else {
					reject(w, http.StatusUnauthorized, msgMalformedSubject)
				}
				return
			}

			userID, err := uuid.Parse(sub)
			if err != nil {
				log.Warn("Subject is not a valid user id")
				reject(w, http.StatusUnauthorized, msgMalformedSubject)
				return
			}

			ctx := ContextWithPrincipal(r.Context(), &Principal{ID: userID, Claims: claims})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(w http.ResponseWriter, status int, message string) {
	metrics.AuthFailures.WithLabelValues(message).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
