package storage

import "context"

// RunStore abstracts persistence for run history and the leaderboard.
// Implementations can be swapped for testing (mocks) or different backends.
type RunStore interface {
	// Read
	ListByUserID(ctx context.Context, userID string) ([]RunRecord, error)
	ListLeaderboard(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error)
	GetLeaderboardEntryByUserID(ctx context.Context, userID string) (*LeaderboardEntry, error)
	GetBestRun(ctx context.Context, userID string) (*RunRecord, error)

	// Write
	InsertRunResult(ctx context.Context, r RunRecord) error
	InsertAbilityUses(ctx context.Context, runID string, uses []AbilityUse) error

	// Lifecycle
	Close()
}

// Ensure *Store implements RunStore at compile time.
var _ RunStore = (*Store)(nil)
