package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/app"
	"github.com/abhisek/lingua/internal/config"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fakeAPI accepts password "secret" for any username and token "tok-1".
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	user := map[string]any{
		"id":                       1,
		"username":                 "ana",
		"full_name":                "Ana Diaz",
		"target_language":          "Spanish",
		"level":                    "B1",
		"placement_test_completed": true,
		"total_xp":                 120,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "secret" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Incorrect username or password"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"access_token": "tok-1", "user": user})
		case "/auth/me":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
				return
			}
			writeJSON(w, http.StatusOK, user)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// execute runs the root command against srv with a fresh database per test.
func execute(t *testing.T, srv *httptest.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--api", srv.URL))
	err := rootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LINGUA_DB", filepath.Join(dir, "lingua.db"))
	t.Setenv("LINGUA_LOG_FILE", filepath.Join(dir, "lingua.log"))
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, fakeAPI(t), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "lingua (devel)\n", out)
}

func TestLoginWhoamiLogout(t *testing.T) {
	isolate(t)
	srv := fakeAPI(t)

	out, err := execute(t, srv, "secret\n", "login", "ana")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ana Diaz.")

	out, err = execute(t, srv, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Spanish")
	assert.Contains(t, out, "B1")
	assert.Contains(t, out, "120")

	out, err = execute(t, srv, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")

	_, err = execute(t, srv, "", "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)
}

func TestLogin_WrongPassword(t *testing.T) {
	isolate(t)
	srv := fakeAPI(t)

	_, err := execute(t, srv, "nope\n", "login", "ana")
	require.Error(t, err)

	_, err = execute(t, srv, "", "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)
}

func TestWhoami_RejectedTokenIsForgotten(t *testing.T) {
	isolate(t)
	srv := fakeAPI(t)

	w := openTestWorkspace(t)
	require.NoError(t, w.store.CredentialRepo().Save(t.Context(), "stale"))
	w.Close()

	_, err := execute(t, srv, "", "whoami")
	require.Error(t, err)
	assert.Equal(t, app.ExpiredNotice, err.Error())

	_, err = execute(t, srv, "", "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)
}

func TestActivity_ListsRecordedRequests(t *testing.T) {
	isolate(t)
	srv := fakeAPI(t)

	_, err := execute(t, srv, "secret\n", "login", "ana")
	require.NoError(t, err)

	out, err := execute(t, srv, "", "activity", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "/auth/login")
	assert.Contains(t, out, "auth")
}

func TestApplyFlags(t *testing.T) {
	c := &cobra.Command{}
	c.Flags().String("api", "", "")
	c.Flags().String("db", "", "")
	c.Flags().Bool("debug", false, "")
	require.NoError(t, c.Flags().Set("api", "http://example.test/api/v1/"))
	require.NoError(t, c.Flags().Set("debug", "true"))

	cfg := applyFlags(c, config.Config{APIBaseURL: "http://localhost:8000/api/v1", DBPath: "/tmp/a.db"})

	assert.Equal(t, "http://example.test/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/a.db", cfg.DBPath)
	assert.True(t, cfg.Debug)
}

func openTestWorkspace(t *testing.T) *workspace {
	t.Helper()
	c := &cobra.Command{}
	c.Flags().String("api", "", "")
	c.Flags().String("db", "", "")
	c.Flags().Bool("debug", false, "")
	w, err := openWorkspace(c)
	require.NoError(t, err)
	return w
}
