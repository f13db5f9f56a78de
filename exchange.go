package discord

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	yall "yall.in"
)

// The code exchange and the refresh are the same POST-form-and-parse shape
// with different grant parameters, so both are thin fronts over
// postTokenForm rather than two copies of the HTTP plumbing.

// exchangeCode trades an authorization code for a token at the token
// endpoint.
func exchangeCode(ctx context.Context, transport Transport, endpoint string, c *Client, code string) (*Token, error) {
	yall.FromContext(ctx).WithField("grant_type", "authorization_code").Debug("exchanging code for token")
	return postTokenForm(ctx, transport, endpoint, url.Values{
		"grant_type":    []string{"authorization_code"},
		"code":          []string{code},
		"client_id":     []string{c.ClientID},
		"client_secret": []string{c.ClientSecret},
		"redirect_uri":  []string{c.RedirectURI},
	})
}

// refreshToken trades a token's refresh token for a new token. Discord may
// omit the refresh token from the response; when it does, the old one is
// still valid and is carried over onto the new Token.
func refreshToken(ctx context.Context, transport Transport, endpoint string, c *Client, token *Token) (*Token, error) {
	if token.RefreshToken == "" {
		return nil, ErrMissingRefreshToken
	}
	yall.FromContext(ctx).WithField("grant_type", "refresh_token").Debug("refreshing token")
	refreshed, err := postTokenForm(ctx, transport, endpoint, url.Values{
		"grant_type":    []string{"refresh_token"},
		"refresh_token": []string{token.RefreshToken},
		"client_id":     []string{c.ClientID},
		"client_secret": []string{c.ClientSecret},
	})
	if err != nil {
		return nil, err
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = token.RefreshToken
	}
	return refreshed, nil
}

// postTokenForm POSTs a form to the token endpoint and parses the response
// into a Token. Exactly one attempt; a non-2xx status surfaces as a
// *TokenExchangeError with the status and body intact, and no partial token
// state escapes on any failure.
func postTokenForm(ctx context.Context, transport Transport, endpoint string, form url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	resp, err := transport.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		yall.FromContext(ctx).WithField("status", resp.StatusCode).Debug("token endpoint returned an error")
		return nil, &TokenExchangeError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return parseToken(body)
}
