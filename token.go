package discord

import (
	"encoding/json"
	"time"
)

// Token is an OAuth2 token issued by Discord's token endpoint. A Token is
// either fully populated (it has an AccessToken) or it does not exist; the
// constructors in this package never produce a partial one.
//
// The package never persists Tokens. Callers that store them must retain at
// minimum AccessToken; a Token reloaded without a TokenType is treated as
// "Bearer".
type Token struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired returns true if the token's expiry has passed. A token with no
// recorded expiry is treated as unexpired; Discord always sends expires_in,
// so a zero expiry only occurs on caller-constructed tokens.
func (t Token) Expired() bool {
	return !t.ExpiresAt.IsZero() && time.Now().After(t.ExpiresAt)
}

// tokenResponse is the wire format of Discord's token endpoint responses.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// parseToken turns a token endpoint response body into a Token, pinning
// expires_in to an absolute timestamp and defaulting the token type to
// "Bearer" when Discord omits it.
func parseToken(body []byte) (*Token, error) {
	var resp tokenResponse
	err := json.Unmarshal(body, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, ErrInvalidToken
	}
	token := Token{
		AccessToken:  resp.AccessToken,
		TokenType:    resp.TokenType,
		RefreshToken: resp.RefreshToken,
		Scope:        resp.Scope,
	}
	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}
	if resp.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return &token, nil
}
