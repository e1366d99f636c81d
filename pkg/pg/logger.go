package pg

import "context"

// logger is the subset of slog.Logger the migration runner needs; accepting
// an interface keeps *slog.Logger out of the package API.
type logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}
