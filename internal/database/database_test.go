package database

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/axellelanca/qrlinks/internal/models"
)

func openTestDB(t *testing.T, buf *bytes.Buffer) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"), zerolog.New(buf))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestOpen_MissingRowIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	db := openTestDB(t, &buf)

	var link models.Link
	err := db.Where("code = ?", "Missing2").Take(&link).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.Empty(t, buf.String())
}

func TestOpen_FailedQueryIsLogged(t *testing.T) {
	var buf bytes.Buffer
	db := openTestDB(t, &buf)

	require.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	assert.Contains(t, buf.String(), `"component":"gorm"`)
	assert.Contains(t, buf.String(), "no_such_table")
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "", zerolog.Nop())
	assert.ErrorContains(t, err, "unsupported database driver")
}
