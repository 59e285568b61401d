package git

import (
	"context"
)

// LogRange returns one line per commit in (fromExclusive, toInclusive],
// newest first, formatted as "<short-sha> <subject>".
func (r *Repo) LogRange(ctx context.Context, fromExclusive, toInclusive string) ([]string, error) {
	return r.runner.RunLines(ctx, "log", "--format=%h %s", fromExclusive+".."+toInclusive)
}

// LogGraph returns the ascii commit graph for (fromExclusive, toInclusive]
func (r *Repo) LogGraph(ctx context.Context, fromExclusive, toInclusive string) (string, error) {
	return r.runner.RunRaw(ctx, "log", "--graph", "--oneline", fromExclusive+".."+toInclusive)
}

// RevListRange returns the full commit ids in (fromExclusive, toInclusive],
// oldest first.
func (r *Repo) RevListRange(ctx context.Context, fromExclusive, toInclusive string) ([]string, error) {
	return r.runner.RunLines(ctx, "rev-list", "--reverse", fromExclusive+".."+toInclusive)
}

// DiffRange returns the patch text between two revs
func (r *Repo) DiffRange(ctx context.Context, fromExclusive, toInclusive string) (string, error) {
	return r.runner.RunRaw(ctx, "diff", fromExclusive, toInclusive)
}
