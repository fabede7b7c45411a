package itemstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"
)

type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// PostgresStore keeps every collection in a single items table with the
// attributes serialised as jsonb.
type PostgresStore struct {
	db  sqlExecutor
	log *zerolog.Logger
}

func NewPostgresStore(db *dbpg.DB, log *zerolog.Logger) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("%w: ping postgres: %w", ErrUnavailable, err)
	}
	return &PostgresStore{db: db, log: log}, nil
}

func (p *PostgresStore) MigrateUp(migrationsDir string) error {
	return p.applyDir(migrationsDir, "*.up.sql")
}

func (p *PostgresStore) MigrateDown(migrationsDir string) error {
	return p.applyDir(migrationsDir, "*.down.sql")
}

func (p *PostgresStore) applyDir(migrationsDir, pattern string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, pattern))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		if _, err := p.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	p.log.Info().Str("dir", migrationsDir).Str("pattern", pattern).Int("files", len(files)).Msg("migrations applied")
	return nil
}

func (p *PostgresStore) Put(ctx context.Context, collection string, key Key, item Item) error {
	fields, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("%w: encode %s/%s: %w", ErrMalformed, collection, key, err)
	}

	query := `
		INSERT INTO items (collection, item_key, fields)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, item_key) DO UPDATE SET fields = EXCLUDED.fields
	`
	if _, err := p.db.ExecContext(ctx, query, collection, key.String(), fields); err != nil {
		return fmt.Errorf("%w: put %s/%s: %w", ErrUnavailable, collection, key, err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, collection string, key Key) (Item, bool, error) {
	query := `SELECT fields FROM items WHERE collection = $1 AND item_key = $2`

	var fields []byte
	err := p.db.QueryRowContext(ctx, query, collection, key.String()).Scan(&fields)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s/%s: %w", ErrUnavailable, collection, key, err)
	}

	item, err := decodeFields(fields)
	if err != nil {
		return nil, false, fmt.Errorf("get %s/%s: %w", collection, key, err)
	}
	return item, true, nil
}

func (p *PostgresStore) Delete(ctx context.Context, collection string, key Key) error {
	query := `DELETE FROM items WHERE collection = $1 AND item_key = $2`
	if _, err := p.db.ExecContext(ctx, query, collection, key.String()); err != nil {
		return fmt.Errorf("%w: delete %s/%s: %w", ErrUnavailable, collection, key, err)
	}
	return nil
}

func (p *PostgresStore) ScanAll(ctx context.Context, collection string) ([]Item, error) {
	query := `SELECT fields FROM items WHERE collection = $1`

	rows, err := p.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: scan %s: %w", ErrUnavailable, collection, err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var fields []byte
		if err := rows.Scan(&fields); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", ErrUnavailable, collection, err)
		}
		item, err := decodeFields(fields)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan %s: %w", ErrUnavailable, collection, err)
	}
	return items, nil
}

func decodeFields(fields []byte) (Item, error) {
	var item Item
	if err := json.Unmarshal(fields, &item); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return item, nil
}
