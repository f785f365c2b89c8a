package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/edgarsj/warehouse-cli/internal/domain"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), time.UTC, hclog.NewNullLogger())
}

func TestLoadProductsMissingFileYieldsEmptyWarehouse(t *testing.T) {
	store := newTestStore(t)

	list, err := store.LoadProducts()
	require.NoError(t, err)
	assert.Equal(t, 0, list.Len())
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	list, err := domain.NewProductList(nil)
	require.NoError(t, err)
	p, err := domain.NewProduct("Widget", 10, 5)
	require.NoError(t, err)
	list.Add(p)

	require.NoError(t, store.SaveProducts(list))

	loaded, err := store.LoadProducts()
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())

	got, err := loaded.GetProductByID(p.ID())
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name())
	assert.Equal(t, 10, got.Price())
	assert.Equal(t, 5, got.Quantity())
	assert.True(t, got.CreatedAt().Equal(p.CreatedAt()))
	assert.True(t, got.UpdatedAt().Equal(p.UpdatedAt()))
	assert.Nil(t, got.ExpiresAt())
}

func TestSaveLeavesNoTemporaryFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, time.UTC, hclog.NewNullLogger())

	list, err := domain.NewProductList(nil)
	require.NoError(t, err)
	require.NoError(t, store.SaveProducts(list))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "products.json", entries[0].Name())
}

func TestLoadProductsMalformedSnapshot(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, time.UTC, hclog.NewNullLogger())

	testCases := []struct {
		name    string
		content string
	}{
		{"Not JSON", "definitely not json"},
		{"Wrong shape", `{"name": "Widget"}`},
		{"Bad timestamps", `[{"name":"Widget","price":1,"quantity":1,"id":"x","expiresAt":null,"createdAt":"garbage","updatedAt":"garbage"}]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "products.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			_, err := store.LoadProducts()
			assert.Error(t, err)
		})
	}
}

func TestLoadUsers(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, time.UTC, hclog.NewNullLogger())

	content := `[{"username": "alice", "password": "$2y$10$hash"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(content), 0o644))

	users, err := store.LoadUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "$2y$10$hash", users[0].Password)
}

func TestLoadUsersMissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadUsers()
	assert.Error(t, err)
}
