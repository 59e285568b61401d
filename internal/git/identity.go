package git

import (
	"context"
	"errors"

	porterrors "portit.dev/portit/internal/errors"
)

// IdentityConfig returns every configured user.name and user.email value.
// Git config keys are multi-valued; all values are returned, not just the
// effective one. Missing keys yield empty slices, not an error.
func (r *Repo) IdentityConfig(ctx context.Context) (names, emails []string, err error) {
	names, err = r.configGetAll(ctx, "user.name")
	if err != nil {
		return nil, nil, err
	}
	emails, err = r.configGetAll(ctx, "user.email")
	if err != nil {
		return nil, nil, err
	}
	return names, emails, nil
}

func (r *Repo) configGetAll(ctx context.Context, key string) ([]string, error) {
	lines, err := r.runner.RunLines(ctx, "config", "--get-all", key)
	if err != nil {
		// Exit code 1 means the key is simply not set
		var cmdErr *porterrors.GitCommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
			return nil, nil
		}
		return nil, err
	}
	return lines, nil
}
