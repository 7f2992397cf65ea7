package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/domain"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	users, _, _, audits := openRepos(t)
	ctx := context.Background()

	u := testUser("alice@test.com")
	u.Role = domain.RoleManager
	u.PasswordHash = "$2a$10$fake"

	created, err := users.Create(ctx, u, testEntry("users", u.ID, domain.ChangeInsert))
	require.NoError(t, err)
	assert.Equal(t, u.ID, created.ID)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@test.com", got.Email)
	assert.Equal(t, domain.RoleManager, got.Role)
	assert.Equal(t, "$2a$10$fake", got.PasswordHash)
	assert.Nil(t, got.CreatedBy)

	byEmail, err := users.GetByEmail(ctx, "alice@test.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	// Exactly one audit entry committed with the write.
	assert.Equal(t, int64(1), countAudit(t, audits, "users"))
}

func TestUserRepo_GetNotFound(t *testing.T) {
	users, _, _, _ := openRepos(t)

	_, err := users.GetByID(context.Background(), "missing")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = users.GetByEmail(context.Background(), "nobody@test.com")
	require.ErrorAs(t, err, &nf)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	users, _, _, _ := openRepos(t)
	ctx := context.Background()

	seedUser(t, users, "alice@test.com")

	_, err := users.Create(ctx, testUser("alice@test.com"), testEntry("users", "dup", domain.ChangeInsert))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUserRepo_Update(t *testing.T) {
	users, _, _, audits := openRepos(t)
	ctx := context.Background()

	u := seedUser(t, users, "alice@test.com")
	u.Name = "Alice Renamed"
	u.Role = domain.RoleAdmin

	_, err := users.Update(ctx, u, testEntry("users", u.ID, domain.ChangeUpdate))
	require.NoError(t, err)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", got.Name)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	assert.Equal(t, int64(2), countAudit(t, audits, "users"))
}

func TestUserRepo_UpdateMissing(t *testing.T) {
	users, _, _, _ := openRepos(t)

	u := testUser("ghost@test.com")
	_, err := users.Update(context.Background(), u, testEntry("users", u.ID, domain.ChangeUpdate))
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUserRepo_Delete(t *testing.T) {
	users, _, _, audits := openRepos(t)
	ctx := context.Background()

	u := seedUser(t, users, "alice@test.com")
	require.NoError(t, users.Delete(ctx, u.ID, testEntry("users", u.ID, domain.ChangeDelete)))

	_, err := users.GetByID(ctx, u.ID)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)

	// The audit trail survives the row: seed insert + delete.
	assert.Equal(t, int64(2), countAudit(t, audits, "users"))
}

func TestUserRepo_DeleteMissing(t *testing.T) {
	users, _, _, _ := openRepos(t)

	err := users.Delete(context.Background(), "missing", testEntry("users", "missing", domain.ChangeDelete))
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

// A failed audit insert must roll back the governed write with it.
func TestUserRepo_AuditFailureRollsBackWrite(t *testing.T) {
	users, _, _, audits := openRepos(t)
	ctx := context.Background()

	seeded := seedUser(t, users, "alice@test.com")
	_, total, err := audits.List(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	// Reuse the seeded entry's primary key to make the audit insert fail.
	entries, _, err := audits.List(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	dup := testEntry("users", "u2", domain.ChangeInsert)
	dup.ID = entries[0].ID

	u := testUser("bob@test.com")
	_, err = users.Create(ctx, u, dup)
	require.Error(t, err)

	// Neither the user row nor a second audit entry exists.
	_, err = users.GetByEmail(ctx, "bob@test.com")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(1), countAudit(t, audits, "users"))

	_ = seeded
}

func TestUserRepo_ListPagination(t *testing.T) {
	users, _, _, _ := openRepos(t)
	ctx := context.Background()

	seedUser(t, users, "a@test.com")
	seedUser(t, users, "b@test.com")
	seedUser(t, users, "c@test.com")

	list, total, err := users.List(ctx, domain.PageRequest{MaxResults: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)

	rest, total, err := users.List(ctx, domain.PageRequest{
		MaxResults: 2,
		PageToken:  domain.EncodePageToken(2),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rest, 1)
}
