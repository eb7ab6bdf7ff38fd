package usecases

import (
	"bytes"
	"context"
	"sort"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/domain/repositories"
	"fnct-hackathon.backend/internal/infrastructure/metrics"
	"fnct-hackathon.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var juryValidatedStatuses = []entities.TeamStatus{
	entities.TeamStatusSelected,
	entities.TeamStatusFinalAccepted,
	entities.TeamStatusFinalWaitlist,
}

// AllocationUsecase covers jury review, per-region ranking and the bounded
// final selection.
type AllocationUsecase struct {
	teamRepo       repositories.TeamRepository
	membershipRepo repositories.MembershipRepository
	regionRepo     repositories.RegionRepository
	uow            repositories.UnitOfWork
	evaluator      *Evaluator
	notifier       *decisionNotifier
	metrics        *metrics.Metrics
}

func NewAllocationUsecase(
	teamRepo repositories.TeamRepository,
	membershipRepo repositories.MembershipRepository,
	regionRepo repositories.RegionRepository,
	uow repositories.UnitOfWork,
	evaluator *Evaluator,
	publisher repositories.DecisionPublisher,
	m *metrics.Metrics,
) *AllocationUsecase {
	return &AllocationUsecase{
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		regionRepo:     regionRepo,
		uow:            uow,
		evaluator:      evaluator,
		notifier: &decisionNotifier{
			memberships: membershipRepo,
			regions:     regionRepo,
			publisher:   publisher,
			metrics:     m,
		},
		metrics: m,
	}
}

// Rank orders the region's jury-validated teams by score, then earliest
// submission, then id. Nothing is cached; every call re-evaluates.
func (u *AllocationUsecase) Rank(ctx context.Context, region entities.RegionCode) ([]*entities.RankedTeam, error) {
	if _, err := entities.ParseRegionCode(string(region)); err != nil {
		return nil, domainerrors.BadRequest("unknown region")
	}
	teams, _, err := u.teamRepo.List(ctx, entities.TeamFilter{Region: region, Statuses: juryValidatedStatuses})
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	grouped, err := u.membershipRepo.ListByTeams(ctx, ids)
	if err != nil {
		return nil, err
	}

	ranked := make([]*entities.RankedTeam, 0, len(teams))
	for _, t := range teams {
		members := grouped[t.ID]
		ranked = append(ranked, &entities.RankedTeam{
			Team:        t,
			MemberCount: len(members),
			Evaluation:  u.evaluator.Evaluate(t, members),
		})
	}
	SortRanking(ranked)
	return ranked, nil
}

// SortRanking applies the total ranking order and assigns 1-based positions.
func SortRanking(ranked []*entities.RankedTeam) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Evaluation.Score != b.Evaluation.Score {
			return a.Evaluation.Score > b.Evaluation.Score
		}
		as, bs := a.Team.SubmittedAt, b.Team.SubmittedAt
		switch {
		case as.Valid && bs.Valid && !as.Time.Equal(bs.Time):
			return as.Time.Before(bs.Time)
		case as.Valid != bs.Valid:
			return as.Valid
		}
		return bytes.Compare(a.Team.ID[:], b.Team.ID[:]) < 0
	})
	for i, r := range ranked {
		r.Position = i + 1
	}
}

// Decide applies a final allocation decision. Promotion counts the region's
// final_accepted teams and writes the status in the same commit as the
// region version bump, so two deciders in one region serialize.
func (u *AllocationUsecase) Decide(ctx context.Context, teamID uuid.UUID, decision entities.TeamStatus) (*entities.Team, error) {
	if decision != entities.TeamStatusFinalAccepted && decision != entities.TeamStatusFinalWaitlist {
		u.metrics.Observe("decide", domainerrors.ErrInvalidState)
		return nil, domainerrors.ErrInvalidState
	}

	var (
		team     *entities.Team
		previous entities.TeamStatus
		changed  bool
	)
	quota := u.evaluator.Policy().RegionQuota
	err := retryOnConflict(ctx, u.evaluator.Policy().ConflictRetries, u.metrics, "decide", func(ctx context.Context) error {
		changed = false
		return u.uow.Do(ctx, func(txCtx context.Context) error {
			lockCtx := u.uow.WithLock(txCtx)
			t, err := u.teamRepo.GetByID(lockCtx, teamID)
			if err != nil {
				return err
			}
			team = t
			if !t.Status.JuryValidated() {
				return domainerrors.ErrInvalidState
			}
			if t.Status == decision {
				return nil
			}

			region, err := u.regionRepo.GetByCode(lockCtx, t.Region)
			if err != nil {
				return err
			}
			if decision == entities.TeamStatusFinalAccepted {
				accepted, err := u.teamRepo.CountByRegionAndStatus(txCtx, t.Region, entities.TeamStatusFinalAccepted)
				if err != nil {
					return err
				}
				if accepted >= int64(quota) {
					return domainerrors.ErrQuotaExceeded
				}
			}

			previous = t.Status
			t.Status = decision
			if err := u.teamRepo.Update(txCtx, t, previous); err != nil {
				return err
			}
			if err := u.regionRepo.BumpVersion(txCtx, region.Code, region.Version); err != nil {
				return err
			}
			changed = true
			return nil
		})
	})
	u.metrics.Observe("decide", err)
	if err != nil {
		return nil, err
	}

	if changed {
		logger.Info(ctx, "allocation decided",
			zap.String("team_id", team.ID.String()),
			zap.String("region", string(team.Region)),
			zap.String("from", string(previous)),
			zap.String("to", string(team.Status)),
		)
		u.notifier.notify(ctx, team, previous)
	}
	return team, nil
}

// ReviewSubmission records the first-stage jury verdict.
func (u *AllocationUsecase) ReviewSubmission(ctx context.Context, teamID uuid.UUID, verdict entities.TeamStatus) (*entities.Team, error) {
	switch verdict {
	case entities.TeamStatusSelected, entities.TeamStatusRejected, entities.TeamStatusWaitlisted:
	default:
		return nil, domainerrors.BadRequest("verdict must be selected, rejected or waitlisted")
	}

	var (
		team     *entities.Team
		previous entities.TeamStatus
		changed  bool
	)
	err := retryOnConflict(ctx, u.evaluator.Policy().ConflictRetries, u.metrics, "review", func(ctx context.Context) error {
		changed = false
		return u.uow.Do(ctx, func(txCtx context.Context) error {
			t, err := u.teamRepo.GetByID(u.uow.WithLock(txCtx), teamID)
			if err != nil {
				return err
			}
			team = t
			if !t.Status.JuryReviewable() {
				return domainerrors.ErrInvalidState
			}
			if t.Status == verdict {
				return nil
			}
			previous = t.Status
			t.Status = verdict
			if err := u.teamRepo.Update(txCtx, t, previous); err != nil {
				return err
			}
			changed = true
			return nil
		})
	})
	u.metrics.Observe("review", err)
	if err != nil {
		return nil, err
	}

	if changed {
		logger.Info(ctx, "submission reviewed",
			zap.String("team_id", team.ID.String()),
			zap.String("from", string(previous)),
			zap.String("to", string(team.Status)),
		)
		u.notifier.notify(ctx, team, previous)
	}
	return team, nil
}

// SetQualitativeScore stores the jury's 0..max qualitative mark.
func (u *AllocationUsecase) SetQualitativeScore(ctx context.Context, teamID uuid.UUID, score int) (*entities.TeamDetail, error) {
	limit := u.evaluator.Policy().MaxQualitativeScore
	if score < 0 || score > limit {
		return nil, domainerrors.ErrInvalidInput
	}

	var detail *entities.TeamDetail
	err := retryOnConflict(ctx, u.evaluator.Policy().ConflictRetries, u.metrics, "qualitative_score", func(ctx context.Context) error {
		return u.uow.Do(ctx, func(txCtx context.Context) error {
			team, err := u.teamRepo.GetByID(u.uow.WithLock(txCtx), teamID)
			if err != nil {
				return err
			}
			team.QualitativeScore = score
			if err := u.teamRepo.Update(txCtx, team, team.Status); err != nil {
				return err
			}
			members, err := u.membershipRepo.ListByTeam(txCtx, team.ID)
			if err != nil {
				return err
			}
			detail = &entities.TeamDetail{Team: team, Members: members, Evaluation: u.evaluator.Evaluate(team, members)}
			return nil
		})
	})
	u.metrics.Observe("qualitative_score", err)
	if err != nil {
		return nil, err
	}
	return detail, nil
}
