package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"starboard/models"
)

type PostgresMessageMappingsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for message_mappings table
var messageMappingsColumns = []string{
	"id",
	"source_message_id",
	"source_channel_id",
	"board_message_id",
	"board_id",
	"created_at",
}

func NewPostgresMessageMappingsRepository(db *sqlx.DB, schema string) *PostgresMessageMappingsRepository {
	return &PostgresMessageMappingsRepository{db: db, schema: schema}
}

// CreateMessageMapping records a posted board message. The unique constraint on
// (source_message_id, board_id) makes a concurrent duplicate fail with core.ErrConflict.
func (r *PostgresMessageMappingsRepository) CreateMessageMapping(
	ctx context.Context,
	mapping *models.MessageMapping,
) error {
	insertColumns := []string{
		"id",
		"source_message_id",
		"source_channel_id",
		"board_message_id",
		"board_id",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(messageMappingsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, created_at) 
		VALUES ($1, $2, $3, $4, $5, NOW()) 
		RETURNING %s`, qualifiedTable(r.schema, "message_mappings"), columnsStr, returningStr)

	err := r.db.QueryRowxContext(
		ctx,
		query,
		mapping.ID,
		mapping.SourceMessageID,
		mapping.SourceChannelID,
		mapping.BoardMessageID,
		mapping.BoardID,
	).StructScan(mapping)
	if err != nil {
		return wrapStoreError("create message mapping", err)
	}

	return nil
}

func (r *PostgresMessageMappingsRepository) GetMessageMapping(
	ctx context.Context,
	sourceMessageID string,
	boardID string,
) (mo.Option[*models.MessageMapping], error) {
	columnsStr := strings.Join(messageMappingsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s 
		WHERE source_message_id = $1 AND board_id = $2`, columnsStr, qualifiedTable(r.schema, "message_mappings"))

	var mapping models.MessageMapping
	err := r.db.GetContext(ctx, &mapping, query, sourceMessageID, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.MessageMapping](), nil
		}
		return mo.None[*models.MessageMapping](), wrapStoreError("get message mapping", err)
	}

	return mo.Some(&mapping), nil
}

// DeleteMessageMapping reports whether a row was removed; false means it was already absent
func (r *PostgresMessageMappingsRepository) DeleteMessageMapping(
	ctx context.Context,
	sourceMessageID string,
	boardID string,
) (bool, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s 
		WHERE source_message_id = $1 AND board_id = $2`, qualifiedTable(r.schema, "message_mappings"))

	result, err := r.db.ExecContext(ctx, query, sourceMessageID, boardID)
	if err != nil {
		return false, wrapStoreError("delete message mapping", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, wrapStoreError("get affected rows", err)
	}

	return rowsAffected > 0, nil
}
