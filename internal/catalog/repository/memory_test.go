package repository

import (
	"context"
	"testing"

	"github.com/askbook/askbook-api/internal/catalog"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *MemoryRepo {
	t.Helper()
	r := NewMemoryRepo()
	n, err := r.InsertMany(context.Background(), []catalog.Book{
		{"_id": "b1", "title": "Dune", "author": "Herbert", "genre": "scifi", "rating": 4.5},
		{"_id": "b2", "title": "Emma", "author": "Austen", "genre": "classic", "rating": "4"},
		{"_id": "b3", "title": "Hobbit", "author": "Tolkien", "genre": "fantasy", "age": int32(12)},
		{"_id": "b4", "title": "Silmarillion", "author": "Tolkien", "genre": "mythopoeia"},
	})
	require.NoError(t, err)
	require.Equal(t, 4, n)
	return r
}

func TestMemoryRepo_FindNoFilterReturnsAll(t *testing.T) {
	got, err := seeded(t).Find(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 4)
}

func TestMemoryRepo_FindConjunctive(t *testing.T) {
	r := seeded(t)
	ctx := context.Background()

	got, err := r.Find(ctx, catalog.Filter{Author: "Tolkien"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = r.Find(ctx, catalog.Filter{Author: "Tolkien", Genre: "fantasy"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Hobbit", got[0]["title"])

	got, err = r.Find(ctx, catalog.Filter{Author: "Tolkien", Genre: "scifi"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemoryRepo_FindNumericFields(t *testing.T) {
	r := seeded(t)
	ctx := context.Background()

	got, err := r.Find(ctx, catalog.Filter{Rating: "4.5"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "b1", got[0]["_id"])

	got, err = r.Find(ctx, catalog.Filter{Rating: "4"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "b2", got[0]["_id"])

	got, err = r.Find(ctx, catalog.Filter{Age: "12"})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestMemoryRepo_Get(t *testing.T) {
	r := seeded(t)
	ctx := context.Background()

	b, err := r.Get(ctx, "b2")
	require.NoError(t, err)
	require.Equal(t, catalog.Book{"_id": "b2", "title": "Emma", "author": "Austen", "genre": "classic", "rating": "4"}, b)

	_, err = r.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_InsertAssignsID(t *testing.T) {
	r := NewMemoryRepo()
	_, err := r.InsertMany(context.Background(), []catalog.Book{{"title": "Untitled"}})
	require.NoError(t, err)
	all, err := r.Find(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotEmpty(t, all[0]["_id"])
}
