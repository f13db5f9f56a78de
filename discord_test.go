package discord

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	yall "yall.in"
	testLogger "yall.in/testing"
)

const (
	testUserID          = int64(696969696969696969)
	testUserBody        = `{"id":"696969696969696969","username":"nwunder","discriminator":"0001","avatar":"a1b2c3","public_flags":64}`
	testGuildsBody      = `[{"id":"81384788765712384","name":"Discord API","icon":null,"owner":false,"permissions":"104189632","features":["COMMUNITY"]}]`
	testConnectionsBody = `[{"id":"twitchuser","type":"twitch","name":"twitchuser","visibility":1,"friend_sync":false,"show_activity":true,"verified":true}]`
	testTokenBody       = `{"access_token":"access-one","token_type":"Bearer","expires_in":600,"refresh_token":"refresh-one","scope":"identify"}`
)

func testLog(t *testing.T) *yall.Logger {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "ERROR"
	}
	return yall.New(testLogger.New(t, yall.Severity(logLevel)))
}

// fakeDiscord stands in for both Discord's token endpoint and its REST API,
// recording every call it serves so tests can assert on exactly which
// requests a session made, and in what order.
type fakeDiscord struct {
	mu sync.Mutex

	// override the default fixture responses if set
	tokenStatus int
	tokenBody   string
	userBody    string
	apiStatus   int
	apiBody     string

	// what the fake observed
	tokenCalls int
	grantTypes []string
	tokenForms []map[string]string
	apiCalls   []string
	lastAuth   string
}

func (f *fakeDiscord) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.Method == http.MethodPost && r.URL.Path == "/oauth2/token" {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.tokenCalls++
		f.grantTypes = append(f.grantTypes, r.PostForm.Get("grant_type"))
		form := map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		f.tokenForms = append(f.tokenForms, form)
		w.Header().Set("Content-Type", "application/json")
		if f.tokenStatus != 0 {
			w.WriteHeader(f.tokenStatus)
		}
		body := f.tokenBody
		if body == "" {
			body = testTokenBody
		}
		_, _ = io.WriteString(w, body)
		return
	}

	f.apiCalls = append(f.apiCalls, r.Method+" "+r.URL.Path)
	f.lastAuth = r.Header.Get("Authorization")
	if f.apiStatus != 0 {
		w.WriteHeader(f.apiStatus)
		_, _ = io.WriteString(w, f.apiBody)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/users/@me":
		body := f.userBody
		if body == "" {
			body = testUserBody
		}
		_, _ = io.WriteString(w, body)
	case r.URL.Path == "/users/@me/guilds":
		_, _ = io.WriteString(w, testGuildsBody)
	case r.URL.Path == "/users/@me/connections":
		_, _ = io.WriteString(w, testConnectionsBody)
	case r.Method == http.MethodPut:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// client stands up an httptest server around the fake and returns a Client
// pointed entirely at it.
func (f *fakeDiscord) client(t *testing.T) *Client {
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return &Client{
		ClientID:     "testclient",
		ClientSecret: "testsecret",
		RedirectURI:  "https://example.com/callback",
		Scopes:       []string{"identify"},
		BaseURL:      srv.URL,
		APIBaseURL:   srv.URL,
	}
}
