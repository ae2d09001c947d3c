package season

import "context"

// CurrentWeek reports where the season clock stands: the gameweek in
// progress and whether its deadline has already passed. Once the
// deadline passes, the week's result is treated as final for standings.
type CurrentWeek struct {
	Week           int
	DeadlinePassed bool
}

// Oracle resolves the current week. Implementations decide their own
// fallback when the underlying source is unreadable.
type Oracle interface {
	CurrentWeek(ctx context.Context) (CurrentWeek, error)
}
