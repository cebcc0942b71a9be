package httputil

import (
	"context"
	"crypto/rand"
	"encoding/base64"
)

type contextKey string

const nonceKey contextKey = "csp-nonce"

// GenerateNonce returns a fresh value for the script-src and style-src CSP
// directives. Each request gets its own so inline blocks cannot be replayed.
func GenerateNonce() string {
	b := make([]byte, 16)
	rand.Read(b) // never fails
	return base64.RawURLEncoding.EncodeToString(b)
}

func ContextWithNonce(ctx context.Context, nonce string) context.Context {
	return context.WithValue(ctx, nonceKey, nonce)
}

// NonceFromContext returns the nonce the security middleware stored for this
// request, or an empty string outside of one.
func NonceFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(nonceKey).(string); ok {
		return v
	}
	return ""
}
