package postgres

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEncodeTags(t *testing.T) {
	t.Parallel()

	encoded, err := encodeTags([]string{"work", "home"})
	require.NoError(t, err)
	assert.Equal(t, `["work","home"]`, encoded)

	// Nil and empty both encode to an empty JSON array, never "null".
	encoded, err = encodeTags(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, encoded)

	encoded, err = encodeTags([]string{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, encoded)
}

func TestDecodeTags(t *testing.T) {
	t.Parallel()

	log := discardLogger()

	assert.Equal(t, []string{"work", "home"}, decodeTags(`["work","home"]`, log))
	assert.Equal(t, []string{}, decodeTags(`[]`, log))
	assert.Equal(t, []string{}, decodeTags("", log))

	// Corrupted column values degrade to an empty sequence, not an error.
	assert.Equal(t, []string{}, decodeTags(`{not json`, log))
	assert.Equal(t, []string{}, decodeTags(`"a plain string"`, log))
	assert.Equal(t, []string{}, decodeTags(`null`, log))
}

func TestTagsRoundTrip(t *testing.T) {
	t.Parallel()

	// Order survives the encode/decode cycle untouched.
	original := []string{"c", "a", "b", "a"}
	encoded, err := encodeTags(original)
	require.NoError(t, err)
	assert.Equal(t, original, decodeTags(encoded, discardLogger()))
}

func TestNewStores_NilDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewTaskStore(nil, discardLogger()) })
	assert.Panics(t, func() { NewUserStore(nil, 10, discardLogger()) })
}

func TestViolationChecks(t *testing.T) {
	t.Parallel()

	unique := &pgconn.PgError{Code: pgUniqueViolationCode}
	foreignKey := &pgconn.PgError{Code: pgForeignKeyViolationCode}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(foreignKey))
	assert.False(t, isUniqueViolation(errors.New("plain error")))
	assert.False(t, isUniqueViolation(nil))

	assert.True(t, isForeignKeyViolation(foreignKey))
	assert.False(t, isForeignKeyViolation(unique))
	assert.False(t, isForeignKeyViolation(nil))

	// Wrapped driver errors still classify.
	wrapped := errors.Join(errors.New("query failed"), unique)
	assert.True(t, isUniqueViolation(wrapped))
}
