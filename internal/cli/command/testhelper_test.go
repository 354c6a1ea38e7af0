package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

const (
	testCenter   = 7
	testLogin    = "alice"
	testPassword = "s3cret"
	testToken    = "tok-abc"
)

// mockServer is a SkyWalker API for center 7 with receivers 1 and 2,
// tags 10 (near receiver 2), 11 (no fix) and 12 (unnamed).
type mockServer struct {
	*httptest.Server
	authCalls     atomic.Int32
	receiverCalls atomic.Int32
	positionCalls atomic.Int32
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	return startMockServer(t, false)
}

// newMockTLSServer serves the same API over HTTPS with a self-signed
// certificate.
func newMockTLSServer(t *testing.T) *mockServer {
	t.Helper()
	return startMockServer(t, true)
}

func startMockServer(t *testing.T, useTLS bool) *mockServer {
	t.Helper()
	m := &mockServer{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/authentication", func(w http.ResponseWriter, r *http.Request) {
		m.authCalls.Add(1)
		var body struct {
			Login    string `json:"login"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		if body.Login != testLogin || body.Password != testPassword {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		io.WriteString(w, testToken)
	})
	mux.HandleFunc("GET /api/centers/7/rdhubs", authorized(func(w http.ResponseWriter, r *http.Request) {
		m.receiverCalls.Add(1)
		io.WriteString(w, `[{"id":1,"x":1.5,"y":2,"z":0},{"id":2,"x":10,"y":20.25,"z":3}]`)
	}))
	mux.HandleFunc("GET /api/centers/7/tags", authorized(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":10,"name":"Cart"},{"id":11,"name":"Forklift"},{"id":12}]`)
	}))
	mux.HandleFunc("POST /api/centers/7/tags/{$}", authorized(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"major":100,"minor":5}`)
	}))
	mux.HandleFunc("GET /api/centers/7/tags/{id}", authorized(func(w http.ResponseWriter, r *http.Request) {
		m.positionCalls.Add(1)
		switch r.PathValue("id") {
		case "10":
			io.WriteString(w, `{"nearest_rdhub":2}`)
		case "11":
			io.WriteString(w, `{}`)
		case "12":
			io.WriteString(w, `{"nearest_rdhub":99}`)
		default:
			http.NotFound(w, r)
		}
	}))

	m.Server = httptest.NewUnstartedServer(mux)
	if useTLS {
		m.StartTLS()
	} else {
		m.Start()
	}
	t.Cleanup(m.Close)
	return m
}

func authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// testEnv isolates config and locale lookups from the developer's machine.
func testEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.yaml")
	t.Setenv("SKYWALKER_CONFIG", path)
	t.Setenv("LC_ALL", "en_US.UTF-8")
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"SKYWALKER_SERVER", "SKYWALKER_PASSWORD", "SKYWALKER_LOGIN", "SKYWALKER_CENTER_ID"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return path
}

// newTestState returns a state whose password prompt fails, so tests
// must pass --password explicitly.
func newTestState() *State {
	st := NewState()
	st.ReadPassword = func(string) (string, error) {
		return "", errors.New("no terminal")
	}
	return st
}

// runApp runs one command line against st and returns stdout.
func runApp(t *testing.T, st *State, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp(st)
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.RunContext(context.Background(), append([]string{"skywalker-cli"}, args...))
	return out.String(), err
}

// loginArgs are the global flags for logging in to srv.
func loginArgs(srv *mockServer) []string {
	return []string{"--server", srv.URL, "--login", testLogin, "--password", testPassword, "--center", "7"}
}

func withLogin(srv *mockServer, args ...string) []string {
	return append(loginArgs(srv), args...)
}

func mustContain(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q:\n%s", w, got)
		}
	}
}
