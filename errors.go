package discord

import (
	"errors"
	"fmt"
)

var (
	// ErrNoClientID is returned when a Client is constructed without an
	// application client ID.
	ErrNoClientID = errors.New("discord: no client ID set")

	// ErrNoClientSecret is returned when a Client is constructed without
	// an application client secret.
	ErrNoClientSecret = errors.New("discord: no client secret set")

	// ErrNoRedirectURI is returned when no redirect URI is available,
	// either on the Client or as a per-request override.
	ErrNoRedirectURI = errors.New("discord: no redirect URI set")

	// ErrNoCodeOrToken is returned when a Session is constructed with
	// neither an authorization code nor a token.
	ErrNoCodeOrToken = errors.New("discord: either a code or a token must be set")

	// ErrCodeAndToken is returned when a Session is constructed with both
	// an authorization code and a token.
	ErrCodeAndToken = errors.New("discord: a code and a token cannot both be set")

	// ErrInvalidToken is returned when a token passed to SessionFromToken
	// has no access token.
	ErrInvalidToken = errors.New("discord: token has no access token")

	// ErrMissingRefreshToken is returned when a refresh is attempted on a
	// token that has no refresh token.
	ErrMissingRefreshToken = errors.New("discord: token has no refresh token")

	// ErrSessionClosed is returned by any Session method called after the
	// Session has been closed.
	ErrSessionClosed = errors.New("discord: session is closed")
)

// TokenExchangeError is returned when Discord's token endpoint answers a
// code exchange or a refresh with a non-2xx status. The status and raw body
// are retained for diagnostics; the exchange is attempted exactly once, so
// any retry policy belongs to the caller.
type TokenExchangeError struct {
	StatusCode int
	Body       string
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("discord: token endpoint returned %d: %s", e.StatusCode, e.Body)
}

// APIError is returned when an authenticated API call answers with a non-2xx
// status. The token that made the call is not assumed invalid; a 403 on a
// guild join is a permissions problem, not an authentication one, and
// conflating the two would mask it.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord: API returned %d: %s", e.StatusCode, e.Body)
}
