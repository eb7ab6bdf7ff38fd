package commands

import (
	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newDecideCmd() *cobra.Command {
	var (
		teamID   string
		decision string
	)
	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Apply a final allocation decision to a team",
		Example: `  admctl decide --team 6f1c... --decision final_accepted
  admctl decide --team 6f1c... --decision final_waitlist`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(teamID)
			if err != nil {
				return domainerrors.BadRequest("--team must be a team id")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			team, err := s.allocation.Decide(cmd.Context(), id, entities.TeamStatus(decision))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "%s is now %s", team.Name, team.Status)
			cyan.Fprintf(out, "  region %s, team %s\n", team.Region, team.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&teamID, "team", "", "Team id")
	cmd.Flags().StringVar(&decision, "decision", "", "final_accepted or final_waitlist")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("decision")
	return cmd
}
