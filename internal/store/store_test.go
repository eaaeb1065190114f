package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(filepath.Join(t.TempDir(), "data", "lingua.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lingua.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.CredentialRepo().Save(context.Background(), "tok"))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	tok, ok, err := s2.CredentialRepo().Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", tok, "token must survive a restart")
}

func credentialRepos(t *testing.T) map[string]CredentialRepo {
	return map[string]CredentialRepo{
		"sqlite": openTestStore(t).CredentialRepo(),
		"memory": NewMemoryCredentials(),
	}
}

func TestCredentialRepo_SaveLoadClear(t *testing.T) {
	for name, repo := range credentialRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok, "empty store")

			require.NoError(t, repo.Save(ctx, "first"))
			require.NoError(t, repo.Save(ctx, "second"))
			tok, ok, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "second", tok)

			require.NoError(t, repo.Clear(ctx))
			_, ok, err = repo.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestCredentialRepo_ClearTwice(t *testing.T) {
	for name, repo := range credentialRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.Save(ctx, "tok"))

			for i := 0; i < 2; i++ {
				require.NoError(t, repo.Clear(ctx))
				_, ok, err := repo.Load(ctx)
				require.NoError(t, err)
				assert.False(t, ok, "load after clear #%d", i+1)
			}
		})
	}
}

func TestEventRepo_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []RequestEventData{
		{RequestID: "a", Activity: "auth", Method: "POST", Path: "/auth/login", Status: 200, LatencyMs: 12, Success: true},
		{RequestID: "b", Activity: "vocabulary", Method: "GET", Path: "/vocabulary/next", Status: 500, LatencyMs: 40, ErrorMessage: "boom"},
		{RequestID: "c", Activity: "vocabulary", Method: "GET", Path: "/vocabulary/next", Status: 200, LatencyMs: 9, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendRequest(ctx, e))
	}

	all, err := repo.RecentRequests(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].RequestID, "newest first")
	assert.Equal(t, "a", all[2].RequestID)
	assert.True(t, all[0].Success)
	assert.False(t, all[1].Success)
	assert.Equal(t, "boom", all[1].ErrorMessage)
	assert.Equal(t, 500, all[1].Status)
	assert.WithinDuration(t, time.Now(), all[0].Timestamp, time.Minute)

	vocab, err := repo.RecentRequests(ctx, QueryOpts{Activity: "vocabulary", Limit: 1})
	require.NoError(t, err)
	require.Len(t, vocab, 1)
	assert.Equal(t, "c", vocab[0].RequestID)

	future, err := repo.RecentRequests(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}
