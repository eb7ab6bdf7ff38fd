package commands

import (
	"fmt"
	"time"

	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/pkg/jwt"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		user   string
		role   string
		email  string
		expiry time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Example: `  admctl token --role admin
  admctl token --user 0b7e... --role candidate --expiry 2h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != jwt.RoleAdmin && role != jwt.RoleCandidate {
				return domainerrors.BadRequest("--role must be admin or candidate")
			}
			actor := uuid.New()
			if user != "" {
				id, err := uuid.Parse(user)
				if err != nil {
					return domainerrors.BadRequest("--user must be a uuid")
				}
				actor = id
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if expiry <= 0 {
				expiry = cfg.JWT.Expiry
			}
			token, err := jwt.NewJWTService(cfg.JWT.Secret, expiry).GenerateToken(actor, email, role)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			cyan.Fprintf(cmd.ErrOrStderr(), "%s %s, valid %s\n", role, actor, expiry)
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "Actor id (random when omitted)")
	cmd.Flags().StringVar(&role, "role", jwt.RoleAdmin, "admin or candidate")
	cmd.Flags().StringVar(&email, "email", "", "Optional e-mail claim")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "Token lifetime (defaults to JWT_EXPIRY)")
	return cmd
}
