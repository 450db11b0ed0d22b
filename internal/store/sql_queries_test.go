// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_buildGetValueQuery(t *testing.T) {
	query, args, err := buildGetValueQuery("shared_matches_data")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "select value")
	require.Contains(t, q, "from kv")
	require.Contains(t, q, "where key = ?")

	// placeholder format should be ? (SQLite)
	require.NotContains(t, query, "$1")

	require.Len(t, args, 1)
	require.Equal(t, "shared_matches_data", args[0])
}

func Test_buildUpsertValueQuery(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))

	query, args, err := buildUpsertValueQuery("k", `{"a":1}`, now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into kv")
	require.Contains(t, q, "values (?,?,?)")
	require.Contains(t, q, "on conflict(key) do update")
	require.Contains(t, q, "value = excluded.value")
	require.Contains(t, q, "updated_at = excluded.updated_at")

	require.Len(t, args, 3)
	require.Equal(t, "k", args[0])
	require.Equal(t, `{"a":1}`, args[1])
	// stored in UTC
	require.Equal(t, now.UTC(), args[2])
}

func Test_buildDeleteValueQuery(t *testing.T) {
	query, args, err := buildDeleteValueQuery("k")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "delete from kv")
	require.Contains(t, q, "where key = ?")
	require.Equal(t, []any{"k"}, args)
}

func Test_buildListKeysQuery(t *testing.T) {
	query, args, err := buildListKeysQuery()
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "select key from kv")
	require.Contains(t, q, "order by key")
	require.Empty(t, args)
}
