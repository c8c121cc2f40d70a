// Package auth guards the API surface with static API keys. Keys are
// configured out of band, hashed at startup, and compared by SHA-256 so
// raw key material never sits in memory longer than the load path.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// HeaderAPIKey is the request header carrying the key. A standard Bearer
// token is accepted as well.
const HeaderAPIKey = "X-API-Key"

// KeySet holds the SHA-256 hashes of the accepted API keys.
type KeySet struct {
	hashes map[string]struct{}
}

// NewKeySet hashes the configured raw keys. Empty entries are ignored.
func NewKeySet(rawKeys []string) *KeySet {
	ks := &KeySet{hashes: make(map[string]struct{}, len(rawKeys))}
	for _, k := range rawKeys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		ks.hashes[HashKey(k)] = struct{}{}
	}
	return ks
}

// Empty reports whether no keys are configured.
func (ks *KeySet) Empty() bool { return len(ks.hashes) == 0 }

// Contains checks a raw key against the stored hashes.
func (ks *KeySet) Contains(rawKey string) bool {
	h := HashKey(rawKey)
	for stored := range ks.hashes {
		if subtle.ConstantTimeCompare([]byte(stored), []byte(h)) == 1 {
			return true
		}
	}
	return false
}

// HashKey returns the hex-encoded SHA-256 hash of a raw key.
func HashKey(rawKey string) string {
	sum := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}

// RequireAPIKey returns echo middleware that rejects requests without a
// valid key. With an empty key set the middleware is a pass-through, which
// is the development default; production config refuses to start that way.
func RequireAPIKey(keys *KeySet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if keys == nil || keys.Empty() {
				return next(c)
			}
			raw := extractKey(c.Request())
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "api key required")
			}
			if !keys.Contains(raw) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid api key")
			}
			return next(c)
		}
	}
}

func extractKey(req *http.Request) string {
	if k := req.Header.Get(HeaderAPIKey); k != "" {
		return k
	}
	authz := req.Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	return ""
}
