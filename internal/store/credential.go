package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	credentialsTable = "credentials"
	credentialRowID  = 1
)

// credentialRepo implements CredentialRepo on the credentials table.
type credentialRepo struct {
	db *sql.DB
}

func (r *credentialRepo) Save(ctx context.Context, token string) error {
	query, args := sqlite.Insert(credentialsTable).
		Columns("id", "token", "saved_at").
		Values(credentialRowID, token, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (r *credentialRepo) Load(ctx context.Context) (string, bool, error) {
	query, args := sqlite.Select("token").
		From(sqlite.Table(credentialsTable)).
		Where(entsql.EQ("id", credentialRowID)).
		Query()

	var token string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load credential: %w", err)
	}
	return token, token != "", nil
}

func (r *credentialRepo) Clear(ctx context.Context) error {
	query, args := sqlite.Delete(credentialsTable).
		Where(entsql.EQ("id", credentialRowID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// MemoryCredentials is a CredentialRepo that lives only as long as the
// process. Used for ephemeral runs and tests.
type MemoryCredentials struct {
	mu    sync.Mutex
	token string
}

var _ CredentialRepo = (*MemoryCredentials)(nil)

// NewMemoryCredentials returns an empty in-memory credential store.
func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{}
}

func (m *MemoryCredentials) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryCredentials) Load(_ context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != "", nil
}

func (m *MemoryCredentials) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
