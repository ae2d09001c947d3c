package scoring

import "context"

// HistoryRepository provides the authoritative per-week historical
// scores for every team. Implementations must apply the zero default
// for absent or malformed cells so callers always see a complete table.
type HistoryRepository interface {
	LoadTable(ctx context.Context) (*Table, error)
}
