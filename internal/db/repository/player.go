package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"courtside/internal/domain"
)

type PlayerRepo struct {
	db *sql.DB
}

func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

const playerColumns = `id, user_id, ranking, stats, created_by, created_at, updated_at`

func scanPlayer(row interface{ Scan(...any) error }) (*domain.Player, error) {
	var p domain.Player
	var stats, createdBy sql.NullString
	if err := row.Scan(&p.ID, &p.UserID, &p.Ranking, &stats, &createdBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CreatedBy = strPtr(createdBy)
	if stats.Valid && stats.String != "" {
		var ps domain.PlayerStats
		if err := json.Unmarshal([]byte(stats.String), &ps); err != nil {
			return nil, fmt.Errorf("decode player stats: %w", err)
		}
		p.Stats = &ps
	}
	return &p, nil
}

func statsJSON(p *domain.Player) (sql.NullString, error) {
	if p.Stats == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(p.Stats)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode player stats: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func (r *PlayerRepo) Create(ctx context.Context, p *domain.Player, entry *domain.AuditEntry) (*domain.Player, error) {
	stats, err := statsJSON(p)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create-player tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO players (id, user_id, ranking, stats, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Ranking, stats, nullStr(p.CreatedBy), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	if err := insertAuditTx(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, mapDBError(err)
	}
	return p, nil
}

func (r *PlayerRepo) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	p, err := scanPlayer(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return p, nil
}

func (r *PlayerRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Player, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players ORDER BY ranking DESC, id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, 0, err
		}
		players = append(players, *p)
	}
	return players, total, rows.Err()
}

func (r *PlayerRepo) Update(ctx context.Context, p *domain.Player, entry *domain.AuditEntry) (*domain.Player, error) {
	stats, err := statsJSON(p)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update-player tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`UPDATE players SET ranking = ?, stats = ?, updated_at = ? WHERE id = ?`,
		p.Ranking, stats, p.UpdatedAt, p.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound("player %s not found", p.ID)
	}
	if err := insertAuditTx(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, mapDBError(err)
	}
	return p, nil
}

func (r *PlayerRepo) Delete(ctx context.Context, id string, entry *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete-player tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("player %s not found", id)
	}
	if err := insertAuditTx(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}
