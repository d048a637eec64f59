package auth

import "strings"

// bearerPrefix is matched case-sensitively; the header must be exactly
// "Bearer <token>" with a single space separator.
const bearerPrefix = "Bearer "

// ExtractBearerToken returns the token portion of an Authorization
// header, or false when the header is absent or misshapen.
func ExtractBearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}

// DenyReason tags why a request was denied. All reasons map to the same
// redirect externally; they stay distinguishable for logs and metrics.
type DenyReason string

const (
	DenyMalformedHeader  DenyReason = "malformed_header"
	DenyTokenNotActive   DenyReason = "token_not_active"
	DenyInsufficientRole DenyReason = "insufficient_role"
)
