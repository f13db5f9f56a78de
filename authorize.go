package discord

import "strings"

// Prompt values Discord accepts on the authorization URL.
const (
	// PromptConsent asks the user to re-approve the authorization even if
	// they've already granted it. This is Discord's default behavior.
	PromptConsent = "consent"

	// PromptNone skips the approval screen for users who have already
	// authorized the application.
	PromptNone = "none"
)

// AuthorizeRequest carries the optional per-request parameters for one
// authorization URL. The zero value is valid and produces a URL with the
// Client's defaults and no state or prompt parameters.
type AuthorizeRequest struct {
	// State is an opaque value echoed back on the callback for CSRF
	// protection. Generate one with NewState, stash it somewhere tied to
	// the user's browser, and compare on the callback; the core doesn't
	// verify it for you.
	State string

	// Prompt is PromptConsent or PromptNone. Empty means Discord's
	// default.
	Prompt string

	// RedirectURI overrides the Client's redirect URI for this
	// authorization only.
	RedirectURI string
}

// AuthorizeURL builds the URL to send a user to so they can authorize the
// application. Pure string assembly, no I/O; the parameters appear in the
// order Discord's documentation lists them, with scopes %20-joined. The only
// failure is having no redirect URI anywhere, which is a configuration
// problem, not a runtime one.
func (c *Client) AuthorizeURL(req AuthorizeRequest) (string, error) {
	redirectURI := req.RedirectURI
	if redirectURI == "" {
		redirectURI = c.RedirectURI
	}
	if redirectURI == "" {
		return "", ErrNoRedirectURI
	}
	url := c.baseURL() + "/api/oauth2/authorize" +
		"?client_id=" + c.ClientID +
		"&redirect_uri=" + redirectURI +
		"&scope=" + strings.Join(c.Scopes, "%20") +
		"&response_type=code"
	if req.State != "" {
		url += "&state=" + req.State
	}
	if req.Prompt != "" {
		url += "&prompt=" + req.Prompt
	}
	return url, nil
}
