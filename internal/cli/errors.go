package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jokarl/branchsource/internal/api"
	"github.com/jokarl/branchsource/internal/config"
	"github.com/jokarl/branchsource/internal/source"
)

// withHints wraps run so API failures carry a hint on how to fix them.
func withHints(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return explain(run(cmd, args))
	}
}

// explain adds remediation hints to API errors. Other errors are returned
// unchanged.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case api.IsUnauthorized(err):
		return fmt.Errorf("%w\n\nCheck source.username and source.password, or source.token, in %s.", err, config.FileName)
	case api.IsIntegrity(err):
		return fmt.Errorf("%w\n\nThe remote returned an incomplete record; it cannot be discovered until the remote reports it fully.", err)
	case api.IsNotFound(err) && !errors.Is(err, source.ErrHeadNotFound):
		return fmt.Errorf("%w\n\nThe repository was not found. Check source.repository_url in %s, and that the credentials can see it.", err, config.FileName)
	default:
		return err
	}
}
