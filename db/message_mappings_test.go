package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starboard/core"
	"starboard/models"
)

func TestMessageMappingsRepository_CreateMessageMapping(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		conn, mock := setupMockDB(t)
		repo := NewPostgresMessageMappingsRepository(conn, testSchema)
		createdAt := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

		mapping := &models.MessageMapping{
			ID:              "map_1",
			SourceMessageID: "src-1",
			SourceChannelID: "src-channel",
			BoardMessageID:  "board-msg-1",
			BoardID:         "brd_1",
		}

		mock.ExpectQuery(`INSERT INTO "starboard"\.message_mappings`).
			WithArgs("map_1", "src-1", "src-channel", "board-msg-1", "brd_1").
			WillReturnRows(sqlmock.NewRows(messageMappingsColumns).
				AddRow("map_1", "src-1", "src-channel", "board-msg-1", "brd_1", createdAt))

		err := repo.CreateMessageMapping(context.Background(), mapping)

		require.NoError(t, err)
		assert.Equal(t, createdAt, mapping.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate mapping is a conflict", func(t *testing.T) {
		conn, mock := setupMockDB(t)
		repo := NewPostgresMessageMappingsRepository(conn, testSchema)

		mock.ExpectQuery(`INSERT INTO "starboard"\.message_mappings`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateMessageMapping(context.Background(), &models.MessageMapping{ID: "map_2", SourceMessageID: "src-1", BoardID: "brd_1"})

		assert.ErrorIs(t, err, core.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign key violation is not a conflict", func(t *testing.T) {
		conn, mock := setupMockDB(t)
		repo := NewPostgresMessageMappingsRepository(conn, testSchema)

		mock.ExpectQuery(`INSERT INTO "starboard"\.message_mappings`).
			WillReturnError(&pq.Error{Code: "23503"})

		err := repo.CreateMessageMapping(context.Background(), &models.MessageMapping{ID: "map_3", SourceMessageID: "src-1", BoardID: "brd_missing"})

		assert.ErrorIs(t, err, core.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, core.ErrConflict)
	})
}

func TestMessageMappingsRepository_GetMessageMapping(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		conn, mock := setupMockDB(t)
		repo := NewPostgresMessageMappingsRepository(conn, testSchema)

		mock.ExpectQuery(`SELECT .* FROM "starboard"\.message_mappings WHERE source_message_id = \$1 AND board_id = \$2`).
			WithArgs("src-1", "brd_1").
			WillReturnRows(sqlmock.NewRows(messageMappingsColumns).
				AddRow("map_1", "src-1", "src-channel", "board-msg-1", "brd_1", time.Now()))

		maybeMapping, err := repo.GetMessageMapping(context.Background(), "src-1", "brd_1")

		require.NoError(t, err)
		require.True(t, maybeMapping.IsPresent())
		assert.Equal(t, "board-msg-1", maybeMapping.MustGet().BoardMessageID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		conn, mock := setupMockDB(t)
		repo := NewPostgresMessageMappingsRepository(conn, testSchema)

		mock.ExpectQuery(`SELECT .* FROM "starboard"\.message_mappings`).
			WithArgs("src-1", "brd_1").
			WillReturnRows(sqlmock.NewRows(messageMappingsColumns))

		maybeMapping, err := repo.GetMessageMapping(context.Background(), "src-1", "brd_1")

		require.NoError(t, err)
		assert.False(t, maybeMapping.IsPresent())
	})
}

func TestMessageMappingsRepository_DeleteMessageMapping(t *testing.T) {
	t.Run("row removed", func(t *testing.T) {
		conn, mock := setupMockDB(t)
		repo := NewPostgresMessageMappingsRepository(conn, testSchema)

		mock.ExpectExec(`DELETE FROM "starboard"\.message_mappings WHERE source_message_id = \$1 AND board_id = \$2`).
			WithArgs("src-1", "brd_1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := repo.DeleteMessageMapping(context.Background(), "src-1", "brd_1")

		require.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already absent", func(t *testing.T) {
		conn, mock := setupMockDB(t)
		repo := NewPostgresMessageMappingsRepository(conn, testSchema)

		mock.ExpectExec(`DELETE FROM "starboard"\.message_mappings`).
			WithArgs("src-1", "brd_1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.DeleteMessageMapping(context.Background(), "src-1", "brd_1")

		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("exec error", func(t *testing.T) {
		conn, mock := setupMockDB(t)
		repo := NewPostgresMessageMappingsRepository(conn, testSchema)

		mock.ExpectExec(`DELETE FROM "starboard"\.message_mappings`).WillReturnError(errors.New("broken pipe"))

		deleted, err := repo.DeleteMessageMapping(context.Background(), "src-1", "brd_1")

		assert.ErrorIs(t, err, core.ErrStoreUnavailable)
		assert.False(t, deleted)
	})
}
