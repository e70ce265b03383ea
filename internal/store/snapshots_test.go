package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository_PutAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	err := repo.Put(ctx, "messages", "team-1", []byte(`[{"messageId":"m1"}]`))
	require.NoError(t, err)

	payload, fetchedAt, err := repo.Get(ctx, "messages", "team-1")
	require.NoError(t, err)
	require.JSONEq(t, `[{"messageId":"m1"}]`, string(payload))
	require.False(t, fetchedAt.IsZero())
}

func TestSnapshotRepository_PutReplaces(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	err := repo.Put(ctx, "todos", "team-1", []byte(`[]`))
	require.NoError(t, err)

	err = repo.Put(ctx, "todos", "team-1", []byte(`[{"todo_id":"t1"}]`))
	require.NoError(t, err)

	payload, _, err := repo.Get(ctx, "todos", "team-1")
	require.NoError(t, err)
	require.JSONEq(t, `[{"todo_id":"t1"}]`, string(payload))
}

func TestSnapshotRepository_ScopeIsolation(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	err := repo.Put(ctx, "messages", "team-1", []byte(`["a"]`))
	require.NoError(t, err)
	err = repo.Put(ctx, "messages", "team-2", []byte(`["b"]`))
	require.NoError(t, err)

	payload, _, err := repo.Get(ctx, "messages", "team-1")
	require.NoError(t, err)
	require.JSONEq(t, `["a"]`, string(payload))

	payload, _, err = repo.Get(ctx, "messages", "team-2")
	require.NoError(t, err)
	require.JSONEq(t, `["b"]`, string(payload))
}

func TestSnapshotRepository_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	_, _, err := repo.Get(ctx, "summaries", "nonexistent")
	require.Equal(t, ErrNotFound, err)
}

func TestSnapshotRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	err := repo.Put(ctx, "teams", "all", []byte(`[]`))
	require.NoError(t, err)

	err = repo.Delete(ctx, "teams", "all")
	require.NoError(t, err)

	_, _, err = repo.Get(ctx, "teams", "all")
	require.Equal(t, ErrNotFound, err)
}
