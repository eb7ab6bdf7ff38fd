package usecases

import (
	"context"
	"strings"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/domain/repositories"
	"fnct-hackathon.backend/internal/infrastructure/metrics"
	"fnct-hackathon.backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// SubmissionUsecase is the one-way draft -> submitted latch.
type SubmissionUsecase struct {
	teamRepo        repositories.TeamRepository
	membershipRepo  repositories.MembershipRepository
	joinRequestRepo repositories.JoinRequestRepository
	uow             repositories.UnitOfWork
	evaluator       *Evaluator
	metrics         *metrics.Metrics
}

func NewSubmissionUsecase(
	teamRepo repositories.TeamRepository,
	membershipRepo repositories.MembershipRepository,
	joinRequestRepo repositories.JoinRequestRepository,
	uow repositories.UnitOfWork,
	evaluator *Evaluator,
	m *metrics.Metrics,
) *SubmissionUsecase {
	return &SubmissionUsecase{
		teamRepo:        teamRepo,
		membershipRepo:  membershipRepo,
		joinRequestRepo: joinRequestRepo,
		uow:             uow,
		evaluator:       evaluator,
		metrics:         m,
	}
}

// LockAndSubmit freezes a draft team with its deliverables. Eligibility is
// reported, never enforced; only the state is.
func (u *SubmissionUsecase) LockAndSubmit(ctx context.Context, actorID, teamID uuid.UUID, d *entities.Deliverables) (*entities.TeamDetail, error) {
	if d == nil {
		d = &entities.Deliverables{}
	}
	var secondary entities.Theme
	if d.SecondaryTheme != "" {
		theme, err := entities.ParseTheme(string(d.SecondaryTheme))
		if err != nil {
			return nil, domainerrors.BadRequest("unknown secondary theme")
		}
		secondary = theme
	}

	var detail *entities.TeamDetail
	err := retryOnConflict(ctx, u.evaluator.Policy().ConflictRetries, u.metrics, "lock_and_submit", func(ctx context.Context) error {
		return u.uow.Do(ctx, func(txCtx context.Context) error {
			team, err := u.teamRepo.GetByID(u.uow.WithLock(txCtx), teamID)
			if err != nil {
				return err
			}
			if team.LeaderID != actorID {
				return domainerrors.LeaderOnly()
			}
			if team.Status != entities.TeamStatusDraft {
				return domainerrors.ErrAlreadyLocked
			}

			team.MotivationURL = optionalString(d.MotivationURL)
			team.VideoURL = optionalString(d.VideoURL)
			team.PrototypeURL = optionalString(d.PrototypeURL)
			if desc := strings.TrimSpace(d.Description); desc != "" {
				team.Description = desc
			}
			if secondary != "" {
				team.SecondaryTheme = secondary
			}
			if sd := strings.TrimSpace(d.SecondaryThemeDescription); sd != "" {
				team.SecondaryThemeDescription = sd
			}
			team.Status = entities.TeamStatusSubmitted
			team.SubmittedAt = null.TimeFrom(now().UTC())

			if err := u.teamRepo.Update(txCtx, team, entities.TeamStatusDraft); err != nil {
				return err
			}
			if _, err := u.joinRequestRepo.RejectPendingByTeam(txCtx, team.ID); err != nil {
				return err
			}

			members, err := u.membershipRepo.ListByTeam(txCtx, team.ID)
			if err != nil {
				return err
			}
			detail = &entities.TeamDetail{
				Team:       team,
				Members:    members,
				Evaluation: u.evaluator.Evaluate(team, members),
			}
			return nil
		})
	})
	u.metrics.Observe("lock_and_submit", err)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "team submitted",
		zap.String("team_id", teamID.String()),
		zap.Bool("eligible", detail.Evaluation.OK),
		zap.Int("score", detail.Evaluation.Score),
	)
	return detail, nil
}

func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	return null.NewString(s, s != "")
}
