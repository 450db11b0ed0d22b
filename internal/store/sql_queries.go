package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const kvTable = "kv"

// sqlite uses ? placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildGetValueQuery(key string) (string, []any, error) {
	query, args, err := psql.
		Select("value").
		From(kvTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpsertValueQuery writes value under key in a single statement, so the
// row is either fully replaced or left untouched.
func buildUpsertValueQuery(key, value string, now time.Time) (string, []any, error) {
	query, args, err := psql.
		Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, now.UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteValueQuery(key string) (string, []any, error) {
	query, args, err := psql.
		Delete(kvTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildListKeysQuery() (string, []any, error) {
	query, args, err := psql.
		Select("key").
		From(kvTable).
		OrderBy("key").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
