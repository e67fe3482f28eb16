// Package sqlite provides a SQLite-backed roll journal.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/dicenotation/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/dicenotation/internal/services/dice/filter"
	"github.com/louisbranch/dicenotation/internal/services/dice/storage"
	"github.com/louisbranch/dicenotation/internal/services/dice/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists journaled rolls in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ storage.Journal = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite roll journal and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendRoll inserts one record and returns it with its assigned ID. A zero
// CreatedAt is stamped with the current time.
func (s *Store) AppendRoll(ctx context.Context, record storage.Record) (storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return storage.Record{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Record{}, fmt.Errorf("storage is not configured")
	}
	if record.Kind == "" {
		return storage.Record{}, fmt.Errorf("record kind is required")
	}
	expression := strings.TrimSpace(record.Expression)
	if expression == "" {
		return storage.Record{}, fmt.Errorf("record expression is required")
	}
	rolls := record.Rolls
	if rolls == nil {
		rolls = [][]int{}
	}
	rollsJSON, err := json.Marshal(rolls)
	if err != nil {
		return storage.Record{}, fmt.Errorf("encode rolls: %w", err)
	}
	createdAt := record.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = s.now().UTC()
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO rolls (kind, expression, total, rolls_json, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		string(record.Kind),
		expression,
		record.Total,
		string(rollsJSON),
		toMillis(createdAt),
	)
	if err != nil {
		return storage.Record{}, fmt.Errorf("append roll: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Record{}, fmt.Errorf("append roll id: %w", err)
	}

	record.ID = id
	record.Expression = expression
	record.Rolls = rolls
	record.CreatedAt = fromMillis(toMillis(createdAt))
	return record, nil
}

// ListRolls returns one page of records, newest first.
func (s *Store) ListRolls(ctx context.Context, query storage.Query) (storage.Page, error) {
	if err := ctx.Err(); err != nil {
		return storage.Page{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Page{}, fmt.Errorf("storage is not configured")
	}
	pageSize := storage.ClampPageSize(query.PageSize)

	var (
		where  []string
		params []any
	)
	cond, err := filter.ParseRollFilter(query.Filter)
	if err != nil {
		return storage.Page{}, fmt.Errorf("%w: %w", storage.ErrInvalidFilter, err)
	}
	if !cond.Empty() {
		where = append(where, cond.Clause)
		params = append(params, cond.Params...)
	}
	if token := strings.TrimSpace(query.PageToken); token != "" {
		lastID, err := strconv.ParseInt(token, 10, 64)
		if err != nil || lastID <= 0 {
			return storage.Page{}, fmt.Errorf("%w: %q", storage.ErrInvalidPageToken, token)
		}
		where = append(where, "id < ?")
		params = append(params, lastID)
	}

	statement := `SELECT id, kind, expression, total, rolls_json, created_at FROM rolls`
	if len(where) > 0 {
		statement += " WHERE " + strings.Join(where, " AND ")
	}
	statement += " ORDER BY id DESC LIMIT ?"
	params = append(params, pageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, statement, params...)
	if err != nil {
		return storage.Page{}, fmt.Errorf("list rolls: %w", err)
	}
	defer rows.Close()

	page := storage.Page{Records: make([]storage.Record, 0, pageSize)}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return storage.Page{}, err
		}
		page.Records = append(page.Records, record)
	}
	if err := rows.Err(); err != nil {
		return storage.Page{}, fmt.Errorf("iterate rolls: %w", err)
	}

	if len(page.Records) > pageSize {
		page.Records = page.Records[:pageSize]
		page.NextPageToken = strconv.FormatInt(page.Records[pageSize-1].ID, 10)
	}
	return page, nil
}

func scanRecord(rows *sql.Rows) (storage.Record, error) {
	var (
		record    storage.Record
		kind      string
		rollsJSON string
		createdAt int64
	)
	if err := rows.Scan(
		&record.ID,
		&kind,
		&record.Expression,
		&record.Total,
		&rollsJSON,
		&createdAt,
	); err != nil {
		return storage.Record{}, fmt.Errorf("scan roll: %w", err)
	}
	if err := json.Unmarshal([]byte(rollsJSON), &record.Rolls); err != nil {
		return storage.Record{}, fmt.Errorf("decode rolls for %d: %w", record.ID, err)
	}
	record.Kind = storage.Kind(kind)
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}
