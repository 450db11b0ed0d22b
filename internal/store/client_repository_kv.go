// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/MKhiriev/cue-sync/internal/logger"
)

// busyRetries bounds how often a statement rejected with SQLITE_BUSY or
// SQLITE_LOCKED is re-executed.
const busyRetries = 3

type kvRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewKeyValueRepository returns a [KeyValueStore] backed by the kv table.
func NewKeyValueRepository(db *DB, logger *logger.Logger) KeyValueStore {
	return &kvRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetValueQuery(key)
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Get").Str("key", key).Msg("error building query")
		return "", err
	}

	var value string
	err = r.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Get").Str("key", key).Msg("error reading value")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (r *kvRepository) Set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertValueQuery(key, value, r.now())
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Set").Str("key", key).Msg("error building query")
		return err
	}

	var res sql.Result
	err = r.withRetry(ctx, func() error {
		var execErr error
		res, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Set").Str("key", key).Msg("error writing value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Set").Str("key", key).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrValueNotSaved
	}

	log.Debug().Str("func", "kvRepository.Set").Str("key", key).Int("bytes", len(value)).Msg("value saved")
	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteValueQuery(key)
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Delete").Str("key", key).Msg("error building query")
		return err
	}

	err = r.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Delete").Str("key", key).Msg("error deleting value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *kvRepository) Keys(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListKeysQuery()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Keys").Msg("error listing keys")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		keys = append(keys, key)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return keys, nil
}

// withRetry runs op again while the driver reports a transient lock error.
func (r *kvRepository) withRetry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(20*time.Millisecond),
		), busyRetries),
		ctx,
	)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if r.db.errorClassificator == nil || r.db.errorClassificator.Classify(err) != Retryable {
			return backoff.Permanent(err)
		}
		r.logger.Warn().Err(err).Str("func", "kvRepository.withRetry").Msg("database busy, retrying")
		return err
	}, policy)
}
