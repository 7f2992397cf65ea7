package repository

import (
	"context"
	"database/sql"
	"fmt"

	"courtside/internal/domain"
)

type MatchRepo struct {
	db *sql.DB
}

func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

const matchColumns = `id, format, surface, best_of, status, winner_side,
	side1_player_id, side1_team_id, side2_player_id, side2_team_id,
	scheduled_at, created_by, created_at, updated_at`

func scanMatch(row interface{ Scan(...any) error }) (*domain.Match, error) {
	var m domain.Match
	var format, surface, status string
	var winner sql.NullInt64
	var s1p, s1t, s2p, s2t, createdBy sql.NullString
	var scheduledAt sql.NullTime
	err := row.Scan(&m.ID, &format, &surface, &m.BestOf, &status, &winner,
		&s1p, &s1t, &s2p, &s2t, &scheduledAt, &createdBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Format = domain.MatchFormat(format)
	m.Surface = domain.Surface(surface)
	m.Status = domain.MatchStatus(status)
	m.WinnerSide = intPtr(winner)
	m.Side1 = domain.Side{PlayerID: strPtr(s1p), TeamID: strPtr(s1t)}
	m.Side2 = domain.Side{PlayerID: strPtr(s2p), TeamID: strPtr(s2t)}
	if scheduledAt.Valid {
		t := scheduledAt.Time
		m.ScheduledAt = &t
	}
	m.CreatedBy = strPtr(createdBy)
	return &m, nil
}

func (r *MatchRepo) Create(ctx context.Context, m *domain.Match, entry *domain.AuditEntry) (*domain.Match, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create-match tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO matches (id, format, surface, best_of, status, winner_side,
		   side1_player_id, side1_team_id, side2_player_id, side2_team_id,
		   scheduled_at, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, string(m.Format), string(m.Surface), m.BestOf, string(m.Status), nullInt(m.WinnerSide),
		nullStr(m.Side1.PlayerID), nullStr(m.Side1.TeamID),
		nullStr(m.Side2.PlayerID), nullStr(m.Side2.TeamID),
		m.ScheduledAt, nullStr(m.CreatedBy), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	if err := insertAuditTx(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, mapDBError(err)
	}
	return m, nil
}

func (r *MatchRepo) GetByID(ctx context.Context, id string) (*domain.Match, []domain.MatchSet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	m, err := scanMatch(row)
	if err != nil {
		return nil, nil, mapDBError(err)
	}

	sets, err := r.listSets(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return m, sets, nil
}

func (r *MatchRepo) listSets(ctx context.Context, matchID string) ([]domain.MatchSet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT set_number, games1, games2, tiebreak1, tiebreak2
		 FROM match_sets WHERE match_id = ? ORDER BY set_number`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []domain.MatchSet
	for rows.Next() {
		var s domain.MatchSet
		var tb1, tb2 sql.NullInt64
		if err := rows.Scan(&s.Number, &s.Games1, &s.Games2, &tb1, &tb2); err != nil {
			return nil, err
		}
		s.Tiebreak1 = intPtr(tb1)
		s.Tiebreak2 = intPtr(tb2)
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

func (r *MatchRepo) List(ctx context.Context, filter domain.MatchFilter) ([]domain.Match, int64, error) {
	where := ""
	args := []any{}
	if filter.Status != nil {
		where = ` WHERE status = ?`
		args = append(args, string(*filter.Status))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Page.Limit(), filter.Page.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matches`+where+` ORDER BY created_at, id LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, 0, err
		}
		matches = append(matches, *m)
	}
	return matches, total, rows.Err()
}

// SaveScore replaces the match row and its full set list atomically with the
// audit entry. The match row update and the set rewrite share the commit, so
// readers never observe a match whose sets disagree with its status.
func (r *MatchRepo) SaveScore(ctx context.Context, m *domain.Match, sets []domain.MatchSet, entry *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save-score tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`UPDATE matches SET status = ?, winner_side = ?, scheduled_at = ?, updated_at = ? WHERE id = ?`,
		string(m.Status), nullInt(m.WinnerSide), m.ScheduledAt, m.UpdatedAt, m.ID)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("match %s not found", m.ID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM match_sets WHERE match_id = ?`, m.ID); err != nil {
		return mapDBError(err)
	}
	for _, s := range sets {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO match_sets (match_id, set_number, games1, games2, tiebreak1, tiebreak2)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, s.Number, s.Games1, s.Games2, nullInt(s.Tiebreak1), nullInt(s.Tiebreak2))
		if err != nil {
			return mapDBError(err)
		}
	}

	if err := insertAuditTx(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MatchRepo) Delete(ctx context.Context, id string, entry *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete-match tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("match %s not found", id)
	}
	if err := insertAuditTx(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}
