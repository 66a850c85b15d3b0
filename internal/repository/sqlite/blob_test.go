package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestRepo(t *testing.T) *BlobRepo {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewBlobRepo(context.Background(), db)
	require.NoError(t, err)
	return repo
}

func TestBlobRepo_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	value, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, value)

	require.NoError(t, repo.Set(ctx, "k", []byte("first")))
	require.NoError(t, repo.Set(ctx, "k", []byte("second")))

	value, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("second"), value)

	require.NoError(t, repo.Delete(ctx, "k"))
	require.NoError(t, repo.Delete(ctx, "k"))

	value, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestNewBlobRepo_Idempotent(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	_, err = NewBlobRepo(context.Background(), db)
	require.NoError(t, err)
	_, err = NewBlobRepo(context.Background(), db)
	require.NoError(t, err)
}
