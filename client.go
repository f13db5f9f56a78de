package discord

import (
	"context"
	"strings"

	yall "yall.in"
)

const (
	defaultBaseURL    = "https://discord.com"
	defaultAPIBaseURL = "https://discord.com/api/v9"
)

// Client holds the long-lived credentials for one Discord application: the
// client ID and secret, the redirect URI Discord sends users back to, and
// the scopes to request. A Client is immutable after construction and safe
// to share across every session and request in the process; the secret is
// never logged and never appears in anything the Client serializes.
type Client struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string

	// BaseURL is the browser-facing Discord URL the authorization
	// redirect points at. Defaults to https://discord.com.
	BaseURL string

	// APIBaseURL is the root of Discord's REST API, used for the token
	// endpoint and all authenticated calls. Defaults to
	// https://discord.com/api/v9.
	APIBaseURL string

	// Transport, if set, is used by every Session this Client creates,
	// mostly so tests can substitute a fake. If nil, each Session owns a
	// fresh *http.Client for its lifetime.
	Transport Transport

	// Log is used by the App handler glue. The core operations log
	// through the context instead, so request-scoped fields survive.
	Log *yall.Logger
}

// New returns a Client for the application credentials passed. It fails,
// rather than producing a Client that will fail on first use, when any
// credential is missing. If no scopes are passed, the "identify" scope is
// requested, which is enough to call Identify and nothing else.
func New(clientID, clientSecret, redirectURI string, scopes ...string) (*Client, error) {
	if clientID == "" {
		return nil, ErrNoClientID
	}
	if clientSecret == "" {
		return nil, ErrNoClientSecret
	}
	if redirectURI == "" {
		return nil, ErrNoRedirectURI
	}
	if len(scopes) < 1 {
		scopes = []string{"identify"}
	}
	return &Client{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		Scopes:       scopes,
	}, nil
}

// scope returns the scopes in the space-joined form the wire wants.
func (c *Client) scope() string {
	return strings.Join(c.Scopes, " ")
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) apiBaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	return defaultAPIBaseURL
}

func (c *Client) tokenURL() string {
	return c.apiBaseURL() + "/oauth2/token"
}

// Session returns a Session that will trade the passed authorization code
// for a token on first use. The code comes from the query string of the
// request Discord redirects back to your redirect URI.
func (c *Client) Session(code string) (*Session, error) {
	return newSession(c, code, nil)
}

// SessionFromToken returns a Session backed by a previously issued token,
// skipping the code exchange. The token is copied, not shared; refreshes
// inside the Session don't mutate the caller's copy. Tokens without an
// access token are rejected with ErrInvalidToken before any network call.
func (c *Client) SessionFromToken(token *Token) (*Session, error) {
	if token != nil && token.AccessToken == "" {
		return nil, ErrInvalidToken
	}
	return newSession(c, "", token)
}

// Login is shorthand for trading a code for a session, identifying the user,
// and closing the session. The token is discarded; use LoginToken if you
// need to keep it.
func (c *Client) Login(ctx context.Context, code string) (*User, error) {
	user, _, err := c.LoginToken(ctx, code)
	return user, err
}

// LoginToken is Login, but it also returns the token the code was exchanged
// for, so the caller can persist it and build sessions from it later with
// SessionFromToken.
func (c *Client) LoginToken(ctx context.Context, code string) (*User, *Token, error) {
	session, err := c.Session(code)
	if err != nil {
		return nil, nil, err
	}
	defer session.Close()
	err = session.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	user, err := session.Identify(ctx)
	if err != nil {
		return nil, nil, err
	}
	return user, session.Token(), nil
}
