package booking

import "context"

// SelectionStore carries a selection from the listing surface to checkout
// without a server round trip in between. Entries are TTL-bound (the
// tab-session analog) and last-write-wins: there is exactly one selection
// per session and no cross-tab coordination.
type SelectionStore interface {
	Save(ctx context.Context, sessionID string, sel Selection) error
	Load(ctx context.Context, sessionID string) (Selection, bool, error)
	Clear(ctx context.Context, sessionID string) error
}
