package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}
