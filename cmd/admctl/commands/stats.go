package commands

import (
	"fmt"

	"fnct-hackathon.backend/internal/domain/entities"
	"github.com/spf13/cobra"
)

var statusOrder = []entities.TeamStatus{
	entities.TeamStatusDraft,
	entities.TeamStatusSubmitted,
	entities.TeamStatusSelected,
	entities.TeamStatusRejected,
	entities.TeamStatusWaitlisted,
	entities.TeamStatusFinalAccepted,
	entities.TeamStatusFinalWaitlist,
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the admission dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := s.stats.Overview(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			bold.Fprintf(out, "Candidates: %d  Teams: %d\n", stats.TotalCandidates, stats.TotalTeams)
			for _, st := range statusOrder {
				fmt.Fprintf(out, "  %-15s %d\n", st, stats.ByStatus[st])
			}
			fmt.Fprintln(out)

			fmt.Fprintf(out, "%-26s %-6s %-10s %-9s %-6s %-5s %s\n", "REGION", "TEAMS", "VALIDATED", "ACCEPTED", "QUOTA", "RATE", "CANDIDATES")
			for _, r := range stats.Regions {
				fmt.Fprintf(out, "%-26s %-6d %-10d %-9d %-6d %-5s %d\n",
					r.Name, r.Total, r.JuryValidated, r.FinalAccepted, r.Quota, fmt.Sprintf("%d%%", r.ValidationRate), r.Candidates)
			}
			return nil
		},
	}
}
