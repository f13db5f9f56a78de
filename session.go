package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	yall "yall.in"
)

// Transport is the slice of *http.Client a Session relies on, split out as
// an interface so tests can substitute a fake. *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
}

// Session is one authorized user's unit of work: it owns a token (by value,
// not shared with the caller) and a transport, and it guarantees a valid
// token is in hand before any API call goes out, exchanging its code on
// first use and refreshing transparently once the token expires.
//
// A Session is scoped. Call Open when entering the scope to pay the token
// cost once up front, defer Close to release the transport, and don't touch
// the Session after Close; every method returns ErrSessionClosed once the
// scope has exited. One Session serves one caller at a time; refreshes
// mutate the token in place without locking, so share Clients, not Sessions.
type Session struct {
	client    *Client
	code      string
	token     *Token
	transport Transport
	closed    bool

	cachedUser        *User
	cachedGuilds      []Guild
	cachedConnections []Connection
}

// newSession enforces the construction invariant: exactly one of code and
// token, never both, never neither.
func newSession(c *Client, code string, token *Token) (*Session, error) {
	if code != "" && token != nil {
		return nil, ErrCodeAndToken
	}
	if code == "" && token == nil {
		return nil, ErrNoCodeOrToken
	}
	session := &Session{
		client:    c,
		code:      code,
		transport: c.Transport,
	}
	if session.transport == nil {
		session.transport = &http.Client{}
	}
	if token != nil {
		t := *token
		if t.TokenType == "" {
			t.TokenType = "Bearer"
		}
		session.token = &t
	}
	return session, nil
}

// Open enters the session's scope, eagerly obtaining or refreshing the token
// so that the usual several-calls-per-scope pattern pays the token endpoint
// cost once. Open is optional; every API method performs the same check.
func (s *Session) Open(ctx context.Context) error {
	return s.ensureToken(ctx)
}

// Close exits the session's scope, releasing the transport's connections.
// The session is unusable afterwards. Close is safe to call more than once
// and safe to defer immediately after construction, whatever else fails in
// between.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.transport.CloseIdleConnections()
	return nil
}

// Token returns a copy of the session's current token, or nil if no token
// has been obtained yet. The copy is the caller's to persist; later changes
// inside the session won't reach it.
func (s *Session) Token() *Token {
	if s.token == nil {
		return nil
	}
	t := *s.token
	return &t
}

// ensureToken makes sure a valid, unexpired token is present, exchanging the
// authorization code if the session doesn't have a token yet and refreshing
// if the one it has is expired. It completes before any dependent API call
// proceeds; a failure here is the call's failure, with no retry and no
// fallback from a failed refresh to a second code exchange.
func (s *Session) ensureToken(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.token == nil {
		token, err := exchangeCode(ctx, s.transport, s.client.tokenURL(), s.client, s.code)
		if err != nil {
			return err
		}
		s.token = token
		return nil
	}
	if s.token.Expired() {
		token, err := refreshToken(ctx, s.transport, s.client.tokenURL(), s.client, s.token)
		if err != nil {
			return err
		}
		s.token = token
	}
	return nil
}

// request issues one authenticated call against the REST API, ensuring a
// token first and translating any non-2xx response into an *APIError. The
// token is not assumed invalid on failure; there's no re-auth loop hiding
// permission errors behind a second exchange.
func (s *Session) request(ctx context.Context, method, path string) ([]byte, error) {
	err := s.ensureToken(ctx)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, s.client.apiBaseURL()+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", s.token.TokenType+" "+s.token.AccessToken)
	yall.FromContext(ctx).WithField("method", method).WithField("path", path).Debug("requesting")
	resp, err := s.transport.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		yall.FromContext(ctx).WithField("status", resp.StatusCode).WithField("path", path).Debug("API returned an error")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return body, nil
}

// Identify fetches the user that authorized the application. The result is
// also cached on the session; repeat calls re-fetch and overwrite the cache.
func (s *Session) Identify(ctx context.Context) (*User, error) {
	body, err := s.request(ctx, http.MethodGet, "/users/@me")
	if err != nil {
		return nil, err
	}
	var user User
	err = json.Unmarshal(body, &user)
	if err != nil {
		return nil, err
	}
	s.cachedUser = &user
	return &user, nil
}

// Guilds fetches the user's guild list. The result is also cached on the
// session; repeat calls re-fetch and overwrite the cache.
func (s *Session) Guilds(ctx context.Context) ([]Guild, error) {
	body, err := s.request(ctx, http.MethodGet, "/users/@me/guilds")
	if err != nil {
		return nil, err
	}
	var guilds []Guild
	err = json.Unmarshal(body, &guilds)
	if err != nil {
		return nil, err
	}
	s.cachedGuilds = guilds
	return guilds, nil
}

// Connections fetches the user's linked third-party accounts. The result is
// also cached on the session; repeat calls re-fetch and overwrite the cache.
func (s *Session) Connections(ctx context.Context) ([]Connection, error) {
	body, err := s.request(ctx, http.MethodGet, "/users/@me/connections")
	if err != nil {
		return nil, err
	}
	var connections []Connection
	err = json.Unmarshal(body, &connections)
	if err != nil {
		return nil, err
	}
	s.cachedConnections = connections
	return connections, nil
}

// JoinGuild adds the user to the guild. Pass the user's ID if you already
// have it; pass 0 and the session will identify the user first, at the cost
// of one extra round trip. Requires the guilds.join scope.
func (s *Session) JoinGuild(ctx context.Context, guildID, userID int64) error {
	if userID == 0 {
		user, err := s.Identify(ctx)
		if err != nil {
			return err
		}
		userID = user.ID
	}
	_, err := s.request(ctx, http.MethodPut, "/guilds/"+strconv.FormatInt(guildID, 10)+"/members/"+strconv.FormatInt(userID, 10))
	return err
}

// JoinGroupDM adds the user to a group DM channel, identifying them first if
// userID is 0, the same way JoinGuild does. Requires the gdm.join scope.
func (s *Session) JoinGroupDM(ctx context.Context, channelID, userID int64) error {
	if userID == 0 {
		user, err := s.Identify(ctx)
		if err != nil {
			return err
		}
		userID = user.ID
	}
	_, err := s.request(ctx, http.MethodPut, "/channels/"+strconv.FormatInt(channelID, 10)+"/recipients/"+strconv.FormatInt(userID, 10))
	return err
}

// CachedUser returns the user from the last Identify call, without I/O, or
// nil if Identify hasn't been called. A memento, not a cache with
// invalidation; it's only as fresh as the last fetch.
func (s *Session) CachedUser() *User {
	return s.cachedUser
}

// CachedGuilds returns the guild list from the last Guilds call, without
// I/O, or nil if Guilds hasn't been called.
func (s *Session) CachedGuilds() []Guild {
	return s.cachedGuilds
}

// CachedConnections returns the connections from the last Connections call,
// without I/O, or nil if Connections hasn't been called.
func (s *Session) CachedConnections() []Connection {
	return s.cachedConnections
}
