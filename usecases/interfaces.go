package usecases

import (
	"context"

	"starboard/models"
)

// BoardSyncUseCaseInterface defines the interface for reaction-driven board synchronization
type BoardSyncUseCaseInterface interface {
	ProcessReactionEvent(ctx context.Context, event models.ReactionEvent) (models.SyncAction, error)
	ProcessReactionsCleared(ctx context.Context, event models.ReactionsClearedEvent) ([]models.SyncAction, error)
}
