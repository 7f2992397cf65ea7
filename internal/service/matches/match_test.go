package matches

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/audit"
	"courtside/internal/domain"
	"courtside/internal/rbac"
	"courtside/internal/scoring"
	"courtside/internal/testutil"
)

func ctxAs(role domain.Role) context.Context {
	return domain.WithPrincipal(context.Background(), domain.ContextPrincipal{
		ID:   "actor-1",
		Name: "Actor",
		Role: role,
	})
}

func newService(repo *testutil.MockMatchRepo) *MatchService {
	return NewMatchService(repo, rbac.NewGate(nil), audit.NewRecorder(), scoring.Rules{})
}

func intp(i int) *int { return &i }

func strp(s string) *string { return &s }

func storedMatch() *domain.Match {
	now := time.Now().UTC().Add(-time.Hour)
	return &domain.Match{
		ID:        "m-1",
		Format:    domain.FormatSingles,
		Surface:   domain.SurfaceHard,
		BestOf:    3,
		Status:    domain.MatchScheduled,
		Side1:     domain.Side{PlayerID: strp("p-1")},
		Side2:     domain.Side{PlayerID: strp("p-2")},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMatchService_Create(t *testing.T) {
	repo := &testutil.MockMatchRepo{}
	svc := newService(repo)

	m, err := svc.Create(ctxAs(domain.RoleManager), CreateRequest{
		Format:  domain.FormatSingles,
		Surface: domain.SurfaceClay,
		BestOf:  3,
		Side1:   domain.Side{PlayerID: strp("p-1")},
		Side2:   domain.Side{PlayerID: strp("p-2")},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MatchScheduled, m.Status)
	assert.Nil(t, m.WinnerSide)
	require.NotNil(t, m.CreatedBy)
	assert.Equal(t, "actor-1", *m.CreatedBy)

	entry := repo.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "matches", entry.TableName)
	assert.Equal(t, domain.ChangeInsert, entry.Kind)
}

func TestMatchService_Create_Invalid(t *testing.T) {
	repo := &testutil.MockMatchRepo{}
	svc := newService(repo)

	t.Run("even best-of", func(t *testing.T) {
		_, err := svc.Create(ctxAs(domain.RoleManager), CreateRequest{
			Format:  domain.FormatSingles,
			Surface: domain.SurfaceClay,
			BestOf:  4,
			Side1:   domain.Side{PlayerID: strp("p-1")},
			Side2:   domain.Side{PlayerID: strp("p-2")},
		})
		var v *domain.ValidationError
		require.ErrorAs(t, err, &v)
	})

	t.Run("side missing competitor", func(t *testing.T) {
		_, err := svc.Create(ctxAs(domain.RoleManager), CreateRequest{
			Format:  domain.FormatSingles,
			Surface: domain.SurfaceClay,
			BestOf:  3,
			Side1:   domain.Side{PlayerID: strp("p-1")},
		})
		var v *domain.ValidationError
		require.ErrorAs(t, err, &v)
	})

	assert.Empty(t, repo.Entries)
}

func TestMatchService_Create_ViewerForbidden(t *testing.T) {
	svc := newService(&testutil.MockMatchRepo{})

	_, err := svc.Create(ctxAs(domain.RoleViewer), CreateRequest{})
	var forbidden *domain.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
}

func TestMatchService_RecordScore(t *testing.T) {
	repo := &testutil.MockMatchRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Match, []domain.MatchSet, error) {
			return storedMatch(), nil, nil
		},
	}
	svc := newService(repo)

	m, sets, err := svc.RecordScore(ctxAs(domain.RoleManager), "m-1", ScoreRequest{
		Status:     domain.MatchCompleted,
		WinnerSide: intp(1),
		Sets: []domain.MatchSet{
			{Number: 1, Games1: 6, Games2: 4},
			{Number: 2, Games1: 7, Games2: 6, Tiebreak1: intp(7), Tiebreak2: intp(3)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MatchCompleted, m.Status)
	require.NotNil(t, m.WinnerSide)
	assert.Equal(t, 1, *m.WinnerSide)
	assert.Len(t, sets, 2)

	entry := repo.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, domain.ChangeUpdate, entry.Kind)
	assert.Contains(t, string(entry.Diff), `"status"`)
	assert.Contains(t, string(entry.Diff), `"sets"`)
}

func TestMatchService_RecordScore_RejectedBeforeWrite(t *testing.T) {
	repo := &testutil.MockMatchRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Match, []domain.MatchSet, error) {
			return storedMatch(), nil, nil
		},
	}
	svc := newService(repo)
	ctx := ctxAs(domain.RoleManager)

	t.Run("winner disagrees with sets", func(t *testing.T) {
		_, _, err := svc.RecordScore(ctx, "m-1", ScoreRequest{
			Status:     domain.MatchCompleted,
			WinnerSide: intp(2),
			Sets: []domain.MatchSet{
				{Number: 1, Games1: 6, Games2: 4},
				{Number: 2, Games1: 6, Games2: 2},
			},
		})
		var mismatch *domain.WinnerMismatchError
		require.ErrorAs(t, err, &mismatch)
	})

	t.Run("bad set score", func(t *testing.T) {
		_, _, err := svc.RecordScore(ctx, "m-1", ScoreRequest{
			Status: domain.MatchLive,
			Sets:   []domain.MatchSet{{Number: 1, Games1: 6, Games2: 5}},
		})
		var bad *domain.InvalidSetScoreError
		require.ErrorAs(t, err, &bad)
	})

	t.Run("set gap", func(t *testing.T) {
		_, _, err := svc.RecordScore(ctx, "m-1", ScoreRequest{
			Status: domain.MatchLive,
			Sets:   []domain.MatchSet{{Number: 2, Games1: 6, Games2: 4}},
		})
		var seq *domain.InvalidSetSequenceError
		require.ErrorAs(t, err, &seq)
	})

	// No governed write happened.
	assert.Empty(t, repo.Entries)
}

func TestMatchService_RecordScore_NoChange(t *testing.T) {
	stored := storedMatch()
	stored.Status = domain.MatchLive
	storedSets := []domain.MatchSet{{Number: 1, Games1: 6, Games2: 4}}
	repo := &testutil.MockMatchRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Match, []domain.MatchSet, error) {
			m := *stored
			return &m, storedSets, nil
		},
	}
	svc := newService(repo)

	m, sets, err := svc.RecordScore(ctxAs(domain.RoleManager), "m-1", ScoreRequest{
		Status: domain.MatchLive,
		Sets:   storedSets,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MatchLive, m.Status)
	assert.Equal(t, storedSets, sets)
	assert.Empty(t, repo.Entries)
}

func TestMatchService_Get_ViewerAllowed(t *testing.T) {
	repo := &testutil.MockMatchRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Match, []domain.MatchSet, error) {
			return storedMatch(), nil, nil
		},
	}
	svc := newService(repo)

	m, _, err := svc.Get(ctxAs(domain.RoleViewer), "m-1")
	require.NoError(t, err)
	assert.Equal(t, "m-1", m.ID)

	_, _, err = svc.Get(context.Background(), "m-1")
	var unauthn *domain.UnauthenticatedError
	require.ErrorAs(t, err, &unauthn)
}

func TestMatchService_Delete(t *testing.T) {
	repo := &testutil.MockMatchRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Match, []domain.MatchSet, error) {
			return storedMatch(), nil, nil
		},
	}
	svc := newService(repo)

	require.NoError(t, svc.Delete(ctxAs(domain.RoleManager), "m-1"))

	entry := repo.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, domain.ChangeDelete, entry.Kind)

	err := svc.Delete(ctxAs(domain.RoleViewer), "m-1")
	var forbidden *domain.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
}
