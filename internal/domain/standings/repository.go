package standings

import "context"

type Repository interface {
	// Replace writes the snapshot and all its positions as one atomic
	// unit, discarding any previous snapshot for the same group and
	// matchday. A failure leaves the previous snapshot intact.
	Replace(ctx context.Context, snapshot Snapshot, positions []TeamPosition) error
	Get(ctx context.Context, groupID string, matchday int) (Snapshot, []TeamPosition, bool, error)
}
