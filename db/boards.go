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

type PostgresBoardsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for boards table
var boardsColumns = []string{
	"id",
	"guild_id",
	"channel_id",
	"reaction_key",
	"threshold",
	"created_at",
}

func NewPostgresBoardsRepository(db *sqlx.DB, schema string) *PostgresBoardsRepository {
	return &PostgresBoardsRepository{db: db, schema: schema}
}

// CreateBoard inserts the board and scans the stored row back into it.
// A board for the same guild and reaction fails with core.ErrConflict.
func (r *PostgresBoardsRepository) CreateBoard(ctx context.Context, board *models.Board) error {
	insertColumns := []string{
		"id",
		"guild_id",
		"channel_id",
		"reaction_key",
		"threshold",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(boardsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, created_at) 
		VALUES ($1, $2, $3, $4, $5, NOW()) 
		RETURNING %s`, qualifiedTable(r.schema, "boards"), columnsStr, returningStr)

	err := r.db.QueryRowxContext(
		ctx,
		query,
		board.ID,
		board.GuildID,
		board.ChannelID,
		string(board.ReactionKey),
		board.Threshold,
	).StructScan(board)
	if err != nil {
		return wrapStoreError("create board", err)
	}

	return nil
}

func (r *PostgresBoardsRepository) GetBoardByGuildAndReaction(
	ctx context.Context,
	guildID string,
	reactionKey models.ReactionKey,
) (mo.Option[*models.Board], error) {
	columnsStr := strings.Join(boardsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s 
		WHERE guild_id = $1 AND reaction_key = $2`, columnsStr, qualifiedTable(r.schema, "boards"))

	var board models.Board
	err := r.db.GetContext(ctx, &board, query, guildID, string(reactionKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.Board](), nil
		}
		return mo.None[*models.Board](), wrapStoreError("get board by guild and reaction", err)
	}

	return mo.Some(&board), nil
}

// ListBoardsByMappedSource returns every board that currently mirrors the source message
func (r *PostgresBoardsRepository) ListBoardsByMappedSource(
	ctx context.Context,
	sourceMessageID string,
) ([]*models.Board, error) {
	prefixedColumns := make([]string, len(boardsColumns))
	for i, column := range boardsColumns {
		prefixedColumns[i] = "b." + column
	}
	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s b 
		JOIN %s m ON m.board_id = b.id 
		WHERE m.source_message_id = $1 
		ORDER BY b.created_at`,
		strings.Join(prefixedColumns, ", "),
		qualifiedTable(r.schema, "boards"),
		qualifiedTable(r.schema, "message_mappings"))

	boards := []*models.Board{}
	if err := r.db.SelectContext(ctx, &boards, query, sourceMessageID); err != nil {
		return nil, wrapStoreError("list boards by mapped source", err)
	}

	return boards, nil
}
