package discord

import (
	"encoding/json"
	"errors"
	"net/http"

	yall "yall.in"
)

const defaultStateCookie = "discord-state"

// App is the optional web glue for the login flow: an http.Handler pair that
// sends users to Discord and receives them back, so embedding applications
// don't each rebuild the same two routes. Everything it does is expressible
// through the Client directly; use App when its conventions suit you and
// ignore it when they don't.
type App struct {
	// Client performs the actual OAuth2 work. Required.
	Client *Client

	// GenerateState, when true, attaches a random state parameter to each
	// authorization redirect, stores it in a cookie, and rejects
	// callbacks whose echoed state doesn't match with a 401.
	GenerateState bool

	// StateCookie is the name of the cookie holding the pending state.
	// Defaults to "discord-state".
	StateCookie string

	// Prompt is passed through to the authorization URL. Empty means
	// Discord's default.
	Prompt string

	// OnLogin is invoked after a successful callback with the identified
	// user and the token the code was exchanged for; the token is the
	// application's one chance to persist the login. If nil, the user is
	// written out as JSON and the token is discarded.
	OnLogin func(w http.ResponseWriter, r *http.Request, user *User, token *Token)

	// Log is installed into each request's context. If nil, whatever
	// logger is already in the context is used.
	Log *yall.Logger
}

func (a App) stateCookie() string {
	if a.StateCookie != "" {
		return a.StateCookie
	}
	return defaultStateCookie
}

// handle the login endpoint
// this endpoint generates state if configured to, parks it in a cookie, and
// bounces the user over to Discord's authorization page.
func (a App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var state string
	if a.GenerateState {
		var err error
		state, err = NewState()
		if err != nil {
			yall.FromContext(r.Context()).WithError(err).Error("Error generating state")
			http.Error(w, "error starting login", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     a.stateCookie(),
			Value:    state,
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	authorizeURL, err := a.Client.AuthorizeURL(AuthorizeRequest{
		State:  state,
		Prompt: a.Prompt,
	})
	if err != nil {
		yall.FromContext(r.Context()).WithError(err).Error("Error building authorization URL")
		http.Error(w, "error starting login", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, authorizeURL, http.StatusFound)
}

// handle the callback endpoint
// this endpoint is where Discord sends the user after they authorize: verify
// state if we set one, trade the code for a token, identify the user, and
// hand both to the application.
func (a App) handleCallback(w http.ResponseWriter, r *http.Request) {
	log := yall.FromContext(r.Context())

	if a.GenerateState {
		cookie, err := r.Cookie(a.stateCookie())
		echoed := r.URL.Query().Get("state")
		if err != nil || echoed == "" || cookie.Value != echoed {
			log.Debug("State mismatch on callback")
			http.Error(w, "state mismatch", http.StatusUnauthorized)
			return
		}
		// the state is spent, drop the cookie
		http.SetCookie(w, &http.Cookie{
			Name:     a.stateCookie(),
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		log.Debug("Callback with no code")
		http.Error(w, "no code", http.StatusBadRequest)
		return
	}

	user, token, err := a.Client.LoginToken(r.Context(), code)
	if err != nil {
		var exchangeErr *TokenExchangeError
		if errors.As(err, &exchangeErr) {
			log.WithField("status", exchangeErr.StatusCode).Debug("Code exchange rejected")
			http.Error(w, "login rejected", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Error logging user in")
		http.Error(w, "error logging in", http.StatusInternalServerError)
		return
	}
	log.WithField("user_id", user.ID).Debug("User logged in")

	if a.OnLogin != nil {
		a.OnLogin(w, r, user, token)
		return
	}
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	err = enc.Encode(user)
	if err != nil {
		log.WithError(err).Error("Error writing response")
	}
}
