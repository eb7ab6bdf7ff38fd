package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the admctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "admctl",
		Short: "Operate the hackathon admission engine",
		Long: `admctl runs administrative tasks against the admission database:
schema migration, regional rankings, final allocation decisions,
dashboard statistics and operator tokens.

Configuration is read from the environment (and .env when present),
using the same variables as the API server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		newMigrateCmd(),
		newRankCmd(),
		newDecideCmd(),
		newStatsCmd(),
		newTokenCmd(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	_ = godotenv.Load()
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	return err
}
