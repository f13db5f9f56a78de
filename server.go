package discord

import (
	"net/http"
	"strings"

	"darlinggo.co/trout/v2"
	yall "yall.in"
)

// logEndpoint injects the App's logger into the request context, enriched
// with per-request fields, so the handlers and the core both log through
// yall.FromContext with the same request attached.
func (a App) logEndpoint(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := yall.FromContext(r.Context())
		if a.Log != nil {
			log = a.Log
		}
		log = log.
			WithField("endpoint", r.Header.Get("Trout-Pattern")).
			WithField("method", r.Method).
			WithField("ip", requestIP(r))
		for k, v := range trout.RequestVars(r) {
			log = log.WithField("url."+strings.ToLower(k), v)
		}
		r = r.WithContext(yall.InContext(r.Context(), log))
		log.Debug("serving request")
		h.ServeHTTP(w, r)
		log.Debug("served request")
	})
}

// Server returns an http.Handler serving the login flow under prefix: GET
// {prefix}/login redirects the user to Discord, and GET {prefix}/callback
// receives them back, verifies state, trades the code for a token, and hands
// the result to OnLogin. Serve it through a muxer using the same path as
// prefix.
func (a App) Server(prefix string) http.Handler {
	var router trout.Router
	router.SetPrefix(prefix)

	router.Endpoint("/login").Methods("GET").
		Handler(a.logEndpoint(http.HandlerFunc(
			a.handleLogin)))
	router.Endpoint("/callback").Methods("GET").
		Handler(a.logEndpoint(http.HandlerFunc(
			a.handleCallback)))

	return router
}
