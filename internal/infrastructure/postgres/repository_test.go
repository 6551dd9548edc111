package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepositories(t *testing.T) {
	t.Run("creates repositories with nil pool", func(t *testing.T) {
		assert.NotNil(t, NewBlacklistRepository(nil))
		assert.NotNil(t, NewHistoryRepository(nil))
		assert.NotNil(t, NewFeedbackRepository(nil))
		assert.NotNil(t, NewReportRepository(nil))
	})
}

func TestMigrationsAreEmbedded(t *testing.T) {
	ups, err := fs.Glob(migrationFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFS, "migrations/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
