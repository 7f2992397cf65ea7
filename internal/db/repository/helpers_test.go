package repository

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	internaldb "courtside/internal/db"
	"courtside/internal/domain"
)

func ptrStr(s string) *string { return &s }

func testEntry(table, recordID string, kind domain.ChangeKind) *domain.AuditEntry {
	return &domain.AuditEntry{
		ID:        domain.NewID(),
		TableName: table,
		RecordID:  recordID,
		ChangedBy: "tester",
		ChangedAt: time.Now().UTC(),
		Kind:      kind,
		Diff:      []byte(`{"kind":"` + string(kind) + `"}`),
	}
}

func testUser(email string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:        domain.NewID(),
		Name:      "Test User",
		Email:     email,
		Role:      domain.RoleViewer,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func seedUser(t *testing.T, repo *UserRepo, email string) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), testUser(email), testEntry("users", "seed", domain.ChangeInsert))
	require.NoError(t, err)
	return u
}

func seedPlayer(t *testing.T, users *UserRepo, players *PlayerRepo, email string) *domain.Player {
	t.Helper()
	u := seedUser(t, users, email)
	now := time.Now().UTC()
	p, err := players.Create(context.Background(), &domain.Player{
		ID:        domain.NewID(),
		UserID:    u.ID,
		Ranking:   10,
		CreatedAt: now,
		UpdatedAt: now,
	}, testEntry("players", "seed", domain.ChangeInsert))
	require.NoError(t, err)
	return p
}

// countAudit counts committed audit entries for a table.
func countAudit(t *testing.T, repo *AuditRepo, table string) int64 {
	t.Helper()
	_, total, err := repo.List(context.Background(), domain.AuditFilter{TableName: ptrStr(table)})
	require.NoError(t, err)
	return total
}

func openRepos(t *testing.T) (*UserRepo, *PlayerRepo, *MatchRepo, *AuditRepo) {
	t.Helper()
	writeDB, _ := internaldb.OpenTestSQLite(t)
	return NewUserRepo(writeDB), NewPlayerRepo(writeDB), NewMatchRepo(writeDB), NewAuditRepo(writeDB)
}
