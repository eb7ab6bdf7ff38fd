package commands

import (
	"fmt"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"github.com/spf13/cobra"
)

func newRankCmd() *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:     "rank",
		Short:   "Print the ranking of jury-validated teams in a region",
		Example: `  admctl rank --region centre-est`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := entities.ParseRegionCode(region)
			if err != nil {
				return domainerrors.BadRequest("unknown region " + region)
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ranked, err := s.allocation.Rank(cmd.Context(), code)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(ranked) == 0 {
				printWarning(out, "no jury-validated teams in %s", code)
				return nil
			}

			bold.Fprintf(out, "Ranking %s (quota %d)\n", code, s.cfg.Admission.RegionQuota)
			fmt.Fprintf(out, "%-4s %-6s %-8s %-15s %-30s %s\n", "#", "SCORE", "MEMBERS", "STATUS", "TEAM", "ID")
			for _, r := range ranked {
				fmt.Fprintf(out, "%-4d %-6d %-8d %-15s %-30s %s\n",
					r.Position, r.Evaluation.Score, r.MemberCount, r.Team.Status, r.Team.Name, r.Team.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "Region code (sud-est, centre-est, centre-ouest, nord-ouest, nationale)")
	_ = cmd.MarkFlagRequired("region")
	return cmd
}
