package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"create chat rooms", "create_chat_rooms"},
		{"Add-Seller-Counters", "add_seller_counters"},
		{"add__sales__data", "add_sales_data"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading_and_trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "create users", "Users and OTP columns")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_users.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_create_users.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Up: create_users")
	assert.Contains(t, string(up), "-- Users and OTP columns")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "-- Down: create_users")

	second, err := CreateMigration(dir, "Add Orders", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)
	assert.Equal(t, "000002_add_orders", second.String())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		got, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("orders by version and ignores other files", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"000010_add_sales_data.up.sql",
			"000010_add_sales_data.down.sql",
			"000002_create_products.up.sql",
			"000002_create_products.down.sql",
			"README.md",
			"notes.up.sql",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

		got, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []Migration{
			{Version: 2, Name: "create_products"},
			{Version: 10, Name: "add_sales_data"},
		}, got)
	})

	t.Run("repository migrations are well formed", func(t *testing.T) {
		got, err := ListMigrations(filepath.Join("..", "..", "..", "migrations"))
		require.NoError(t, err)
		require.NotEmpty(t, got)
		for i, m := range got {
			assert.Equal(t, uint(i+1), m.Version, "migration versions must be contiguous")
			_, err := os.Stat(filepath.Join("..", "..", "..", "migrations", m.String()+".down.sql"))
			assert.NoError(t, err, "missing down file for %s", m)
		}
	})
}
