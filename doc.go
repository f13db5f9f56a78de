// Package discord implements the client half of "Login with Discord": an
// OAuth2 authorization code flow against Discord's identity provider, plus
// authenticated access to the handful of REST endpoints that flow unlocks
// (the user's profile, their guild list, their linked accounts, and
// guild/group-DM membership).
//
// The package is deliberately not a general-purpose OAuth2 client. It knows
// Discord's endpoints, Discord's token response quirks (a missing token_type
// means "Bearer", a refresh response may omit the refresh token it expects
// you to keep using), and Discord's habit of handing out 64-bit IDs as
// decimal strings. Generalizing any of that away would just mean every
// caller re-learning it.
//
// Use this package by creating a Client with your application's credentials
// and sending users to the URL returned by AuthorizeURL (or by mounting the
// App handler, which wires up /login and /callback routes for you). When
// Discord redirects back with a code, trade it for a Session. A Session owns
// its token and its transport for the duration of a scope: call Open to
// obtain a token eagerly, defer Close to release the transport, and make
// whatever API calls you need in between. Callers that just want to know who
// logged in can use Login or LoginToken and skip the Session entirely.
//
// Tokens are never persisted by this package. If you want logins to outlive
// a request, store the Token returned by LoginToken or Session.Token
// yourself and hand it back to SessionFromToken later; expired tokens are
// refreshed transparently on the next call.
package discord
