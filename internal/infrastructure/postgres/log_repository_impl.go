package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
)

// user_id 0 / name '' stand for a null user reference after COALESCE.
const logSelect = `
		SELECT l.id, l.message, l.severity, l.logged_at, COALESCE(l.user_id, 0), COALESCE(u.name, '')
		FROM logs l
		LEFT JOIN users u ON u.id = l.user_id`

type LogRepository struct {
	db DBTX
}

func NewLogRepository(db DBTX) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Create(ctx context.Context, l *entity.Log) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO logs (message, severity, logged_at, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, l.Message, string(l.Severity), l.Timestamp, l.UserID)

	if err := row.Scan(&l.ID); err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

func (r *LogRepository) GetByID(ctx context.Context, id int64) (*entity.Log, error) {
	row := r.db.QueryRow(ctx, logSelect+` WHERE l.id = $1`, id)
	return scanLog(row)
}

func (r *LogRepository) List(ctx context.Context, filter repository.LogFilter) ([]entity.Log, error) {
	where, args := logWhere(filter)
	rows, err := r.db.Query(ctx, logSelect+where+` ORDER BY l.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	logs := make([]entity.Log, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

func (r *LogRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM logs WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete logs: %w", err)
	}
	return nil
}

func (r *LogRepository) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM logs WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check log reference: %w", err)
	}
	return exists, nil
}

func logWhere(f repository.LogFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Severity != "" {
		add("l.severity = $%d", string(f.Severity))
	}
	if f.Message != "" {
		add("strpos(lower(l.message), lower($%d)) > 0", f.Message)
	}
	if f.UserName != "" {
		add("u.name = $%d", f.UserName)
	}
	if f.From != nil {
		add("l.logged_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("l.logged_at <= $%d", *f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanLog(row pgx.Row) (*entity.Log, error) {
	l := &entity.Log{}
	var (
		severity string
		userID   int64
		userName string
	)
	if err := row.Scan(&l.ID, &l.Message, &severity, &l.Timestamp, &userID, &userName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan log: %w", err)
	}
	l.Severity = entity.Severity(severity)
	if userID != 0 {
		l.UserID = &userID
		l.UserName = &userName
	}
	return l, nil
}

var _ repository.LogRepository = (*LogRepository)(nil)
