package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/deppfellow/scripts/internal/model"
)

// ErrNotFound is returned by Find when no row has the requested id.
var ErrNotFound = errors.New("entry not found")

// ScriptsTable is the table ScriptRepository is scoped to.
const ScriptsTable = "scripts"

// DB is the subset of *sql.DB the repositories need.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ScriptRepository is the query object for the scripts table.
type ScriptRepository struct {
	db   DB
	psql sq.StatementBuilderType
}

// NewScriptRepository creates a ScriptRepository on db.
func NewScriptRepository(db DB) *ScriptRepository {
	return &ScriptRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Find fetches one row by primary key. It returns ErrNotFound when the row
// does not exist.
func (r *ScriptRepository) Find(ctx context.Context, id int64) (*model.Script, error) {
	query, args, err := r.psql.
		Select(model.ScriptColumns...).
		From(ScriptsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	var s model.Script
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Title, &s.Position, &s.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find script %d: %w", id, err)
	}

	return &s, nil
}

// All fetches every row ordered by id. The result is never nil.
func (r *ScriptRepository) All(ctx context.Context) ([]model.Script, error) {
	query, args, err := r.psql.
		Select(model.ScriptColumns...).
		From(ScriptsTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	defer rows.Close()

	scripts := []model.Script{}
	for rows.Next() {
		var s model.Script
		if err := rows.Scan(&s.ID, &s.Title, &s.Position, &s.Status); err != nil {
			return nil, fmt.Errorf("scan script: %w", err)
		}
		scripts = append(scripts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scripts: %w", err)
	}

	return scripts, nil
}

// InsertGetID inserts fields as a new row and returns its generated id.
func (r *ScriptRepository) InsertGetID(ctx context.Context, fields map[string]any) (int64, error) {
	query, args, err := r.psql.
		Insert(ScriptsTable).
		SetMap(fields).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert script: %w", err)
	}

	return id, nil
}

// UpdateWhereID sets fields on the row with id and returns the number of
// affected rows.
func (r *ScriptRepository) UpdateWhereID(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	query, args, err := r.psql.
		Update(ScriptsTable).
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update script %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update script %d: rows affected: %w", id, err)
	}

	return affected, nil
}

// Delete removes the row with id and reports whether a row was removed.
func (r *ScriptRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := r.psql.
		Delete(ScriptsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete script %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete script %d: rows affected: %w", id, err)
	}

	return affected > 0, nil
}
