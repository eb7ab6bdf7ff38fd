package usecases

import (
	"context"
	"errors"
	"strings"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/domain/repositories"
	"fnct-hackathon.backend/internal/infrastructure/metrics"
	"fnct-hackathon.backend/pkg/logger"
	"fnct-hackathon.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TeamUsecase handles team creation, editing and discovery.
type TeamUsecase struct {
	teamRepo        repositories.TeamRepository
	membershipRepo  repositories.MembershipRepository
	joinRequestRepo repositories.JoinRequestRepository
	candidateRepo   repositories.CandidateRepository
	uow             repositories.UnitOfWork
	evaluator       *Evaluator
	metrics         *metrics.Metrics
}

func NewTeamUsecase(
	teamRepo repositories.TeamRepository,
	membershipRepo repositories.MembershipRepository,
	joinRequestRepo repositories.JoinRequestRepository,
	candidateRepo repositories.CandidateRepository,
	uow repositories.UnitOfWork,
	evaluator *Evaluator,
	m *metrics.Metrics,
) *TeamUsecase {
	return &TeamUsecase{
		teamRepo:        teamRepo,
		membershipRepo:  membershipRepo,
		joinRequestRepo: joinRequestRepo,
		candidateRepo:   candidateRepo,
		uow:             uow,
		evaluator:       evaluator,
		metrics:         m,
	}
}

// CreateTeam founds a draft team led by the actor. The team row and the
// leader membership commit together.
func (u *TeamUsecase) CreateTeam(ctx context.Context, actorID uuid.UUID, input *entities.CreateTeamInput) (*entities.TeamDetail, error) {
	team, err := newTeamFromInput(actorID, input)
	if err != nil {
		return nil, err
	}

	err = retryOnConflict(ctx, u.evaluator.Policy().ConflictRetries, u.metrics, "create_team", func(ctx context.Context) error {
		return u.uow.Do(ctx, func(txCtx context.Context) error {
			candidate, err := u.candidateRepo.GetByID(u.uow.WithLock(txCtx), actorID)
			if err != nil {
				return err
			}
			if _, err := u.membershipRepo.GetByCandidate(txCtx, actorID); err == nil {
				return domainerrors.ErrAlreadyMember
			} else if !errors.Is(err, domainerrors.ErrNotFound) {
				return err
			}
			pending, err := u.joinRequestRepo.CountPendingByCandidate(txCtx, actorID)
			if err != nil {
				return err
			}
			if pending > 0 {
				return domainerrors.ErrPendingRequests
			}

			if err := u.teamRepo.Create(txCtx, team); err != nil {
				return err
			}
			if err := u.membershipRepo.Create(txCtx, &entities.Membership{
				ID:          utils.GenerateUUIDv7(),
				TeamID:      team.ID,
				CandidateID: actorID,
				Role:        entities.MemberRoleLeader,
			}); err != nil {
				if errors.Is(err, domainerrors.ErrAlreadyMember) {
					return domainerrors.ErrConcurrencyConflict
				}
				return err
			}
			return u.candidateRepo.BumpVersion(txCtx, actorID, candidate.Version)
		})
	})
	u.metrics.Observe("create_team", err)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "team created",
		zap.String("team_id", team.ID.String()),
		zap.String("region", string(team.Region)),
	)
	return u.GetTeam(ctx, team.ID)
}

// UpdateTeamInfo lets the leader edit the pitch while the team is a draft.
func (u *TeamUsecase) UpdateTeamInfo(ctx context.Context, actorID, teamID uuid.UUID, input *entities.UpdateTeamInput) (*entities.TeamDetail, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("missing team payload")
	}
	err := retryOnConflict(ctx, u.evaluator.Policy().ConflictRetries, u.metrics, "update_team", func(ctx context.Context) error {
		return u.uow.Do(ctx, func(txCtx context.Context) error {
			team, err := u.teamRepo.GetByID(u.uow.WithLock(txCtx), teamID)
			if err != nil {
				return err
			}
			if team.LeaderID != actorID {
				return domainerrors.LeaderOnly()
			}
			if !team.Status.Editable() {
				return domainerrors.ErrTeamLocked
			}
			if err := applyTeamUpdate(team, input); err != nil {
				return err
			}
			return u.teamRepo.Update(txCtx, team, entities.TeamStatusDraft)
		})
	})
	u.metrics.Observe("update_team", err)
	if err != nil {
		return nil, err
	}
	return u.GetTeam(ctx, teamID)
}

// GetTeam returns the team, its members and a fresh evaluation.
func (u *TeamUsecase) GetTeam(ctx context.Context, teamID uuid.UUID) (*entities.TeamDetail, error) {
	team, err := u.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	members, err := u.membershipRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return &entities.TeamDetail{
		Team:       team,
		Members:    members,
		Evaluation: u.evaluator.Evaluate(team, members),
	}, nil
}

// ListOpenTeams lists draft teams a candidate may apply to.
func (u *TeamUsecase) ListOpenTeams(ctx context.Context, region entities.RegionCode, theme entities.Theme) ([]*entities.TeamSummary, error) {
	items, _, err := u.summaries(ctx, entities.TeamFilter{
		Region:   region,
		Theme:    theme,
		Statuses: []entities.TeamStatus{entities.TeamStatusDraft},
	})
	return items, err
}

// ListTeams is the admin listing with filters and pagination.
func (u *TeamUsecase) ListTeams(ctx context.Context, filter entities.TeamFilter, pagination utils.PaginationParams) ([]*entities.TeamSummary, utils.PaginationMeta, error) {
	filter.Limit = pagination.Limit
	filter.Offset = pagination.CalculateOffset()
	items, total, err := u.summaries(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return items, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

func (u *TeamUsecase) summaries(ctx context.Context, filter entities.TeamFilter) ([]*entities.TeamSummary, int64, error) {
	teams, total, err := u.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uuid.UUID, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	grouped, err := u.membershipRepo.ListByTeams(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	size := u.evaluator.Policy().TeamSize
	items := make([]*entities.TeamSummary, 0, len(teams))
	for _, t := range teams {
		members := grouped[t.ID]
		items = append(items, &entities.TeamSummary{
			Team:        t,
			MemberCount: len(members),
			Full:        len(members) >= size,
			Evaluation:  u.evaluator.Evaluate(t, members),
		})
	}
	return items, total, nil
}

func newTeamFromInput(leaderID uuid.UUID, input *entities.CreateTeamInput) (*entities.Team, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("missing team payload")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("team name is required")
	}
	theme, err := entities.ParseTheme(string(input.Theme))
	if err != nil {
		return nil, domainerrors.BadRequest("unknown theme")
	}
	region, err := entities.ParseRegionCode(string(input.Region))
	if err != nil {
		return nil, domainerrors.BadRequest("unknown region")
	}
	var secondary entities.Theme
	if input.SecondaryTheme != "" {
		if secondary, err = entities.ParseTheme(string(input.SecondaryTheme)); err != nil {
			return nil, domainerrors.BadRequest("unknown secondary theme")
		}
	}

	return &entities.Team{
		ID:              utils.GenerateUUIDv7(),
		Name:            name,
		Description:     strings.TrimSpace(input.Description),
		RequestProfile:  strings.TrimSpace(input.RequestProfile),
		RequestedSkills: DistinctSkills(input.RequestedSkills),
		Theme:           theme,
		SecondaryTheme:  secondary,
		Region:          region,
		LeaderID:        leaderID,
		Status:          entities.TeamStatusDraft,
	}, nil
}

func applyTeamUpdate(team *entities.Team, input *entities.UpdateTeamInput) error {
	if input.Description != nil {
		team.Description = strings.TrimSpace(*input.Description)
	}
	if input.RequestProfile != nil {
		team.RequestProfile = strings.TrimSpace(*input.RequestProfile)
	}
	if input.RequestedSkills != nil {
		team.RequestedSkills = DistinctSkills(*input.RequestedSkills)
	}
	if input.SecondaryTheme != nil {
		team.SecondaryTheme = ""
		if *input.SecondaryTheme != "" {
			theme, err := entities.ParseTheme(string(*input.SecondaryTheme))
			if err != nil {
				return domainerrors.BadRequest("unknown secondary theme")
			}
			team.SecondaryTheme = theme
		}
	}
	if input.SecondaryThemeDescription != nil {
		team.SecondaryThemeDescription = strings.TrimSpace(*input.SecondaryThemeDescription)
	}
	return nil
}
