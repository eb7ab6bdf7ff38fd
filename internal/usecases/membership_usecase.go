package usecases

import (
	"context"
	"errors"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/domain/repositories"
	"fnct-hackathon.backend/internal/infrastructure/metrics"
	"fnct-hackathon.backend/pkg/logger"
	"fnct-hackathon.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MembershipUsecase reconciles join requests against team capacity and the
// one-team-per-candidate rule.
type MembershipUsecase struct {
	candidateRepo   repositories.CandidateRepository
	teamRepo        repositories.TeamRepository
	membershipRepo  repositories.MembershipRepository
	joinRequestRepo repositories.JoinRequestRepository
	uow             repositories.UnitOfWork
	policy          Policy
	metrics         *metrics.Metrics
}

func NewMembershipUsecase(
	candidateRepo repositories.CandidateRepository,
	teamRepo repositories.TeamRepository,
	membershipRepo repositories.MembershipRepository,
	joinRequestRepo repositories.JoinRequestRepository,
	uow repositories.UnitOfWork,
	policy Policy,
	m *metrics.Metrics,
) *MembershipUsecase {
	return &MembershipUsecase{
		candidateRepo:   candidateRepo,
		teamRepo:        teamRepo,
		membershipRepo:  membershipRepo,
		joinRequestRepo: joinRequestRepo,
		uow:             uow,
		policy:          policy,
		metrics:         m,
	}
}

// SubmitRequest creates a pending application from the actor to teamID. It
// commits under both the candidate and the team version guard, so it cannot
// interleave with an accept for the same candidate or with the team being
// locked for submission.
func (u *MembershipUsecase) SubmitRequest(ctx context.Context, actorID, teamID uuid.UUID) (*entities.JoinRequest, error) {
	var out *entities.JoinRequest
	err := retryOnConflict(ctx, u.policy.ConflictRetries, u.metrics, "submit_request", func(ctx context.Context) error {
		return u.uow.Do(ctx, func(txCtx context.Context) error {
			lockCtx := u.uow.WithLock(txCtx)

			candidate, err := u.candidateRepo.GetByID(lockCtx, actorID)
			if err != nil {
				return err
			}
			team, err := u.teamRepo.GetByID(lockCtx, teamID)
			if err != nil {
				return err
			}
			if err := u.ensureNoMembership(txCtx, actorID); err != nil {
				return err
			}
			if !team.Status.Editable() {
				return domainerrors.ErrTeamLocked
			}
			if err := u.ensureCapacity(txCtx, teamID); err != nil {
				return err
			}
			if _, err := u.joinRequestRepo.FindPending(txCtx, actorID, teamID); err == nil {
				return domainerrors.ErrDuplicateRequest
			} else if !errors.Is(err, domainerrors.ErrNotFound) {
				return err
			}

			if err := u.candidateRepo.BumpVersion(txCtx, actorID, candidate.Version); err != nil {
				return err
			}
			if err := u.teamRepo.BumpVersion(txCtx, teamID, team.Version); err != nil {
				return err
			}

			req := &entities.JoinRequest{
				ID:          utils.GenerateUUIDv7(),
				CandidateID: actorID,
				TeamID:      teamID,
				Status:      entities.JoinRequestStatusPending,
			}
			if err := u.joinRequestRepo.Create(txCtx, req); err != nil {
				return err
			}
			out = req
			return nil
		})
	})
	u.metrics.Observe("submit_request", err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AcceptRequest admits the applicant. Membership creation, the request
// transition and the rejection of the candidate's other pending requests
// commit as one unit, guarded on both the candidate and the team version.
func (u *MembershipUsecase) AcceptRequest(ctx context.Context, actorID, requestID uuid.UUID) (*entities.JoinRequest, error) {
	var (
		out       *entities.JoinRequest
		staleJoin bool
		siblings  int64
	)
	err := retryOnConflict(ctx, u.policy.ConflictRetries, u.metrics, "accept_request", func(ctx context.Context) error {
		staleJoin = false
		return u.uow.Do(ctx, func(txCtx context.Context) error {
			lockCtx := u.uow.WithLock(txCtx)

			req, err := u.joinRequestRepo.GetByID(lockCtx, requestID)
			if err != nil {
				return err
			}
			team, err := u.teamRepo.GetByID(lockCtx, req.TeamID)
			if err != nil {
				return err
			}
			if team.LeaderID != actorID {
				return domainerrors.LeaderOnly()
			}
			candidate, err := u.candidateRepo.GetByID(lockCtx, req.CandidateID)
			if err != nil {
				return err
			}

			existing, err := u.membershipRepo.GetByCandidate(txCtx, candidate.ID)
			switch {
			case err == nil && existing.TeamID != team.ID:
				// joined elsewhere since applying: close this request for good
				staleJoin = true
				if req.Status != entities.JoinRequestStatusPending {
					return nil
				}
				return u.joinRequestRepo.UpdateStatus(txCtx, req.ID, entities.JoinRequestStatusPending, entities.JoinRequestStatusRejected)
			case err == nil:
				return domainerrors.ErrInvalidState
			case !errors.Is(err, domainerrors.ErrNotFound):
				return err
			}

			if req.Status.Terminal() {
				return domainerrors.ErrInvalidState
			}
			if !team.Status.Editable() {
				return domainerrors.ErrTeamLocked
			}
			if err := u.ensureCapacity(txCtx, team.ID); err != nil {
				return err
			}

			if err := u.membershipRepo.Create(txCtx, &entities.Membership{
				ID:          utils.GenerateUUIDv7(),
				TeamID:      team.ID,
				CandidateID: candidate.ID,
				Role:        entities.MemberRoleMember,
			}); err != nil {
				if errors.Is(err, domainerrors.ErrAlreadyMember) {
					// lost a race with another accept; the retry sees the membership
					return domainerrors.ErrConcurrencyConflict
				}
				return err
			}
			if err := u.joinRequestRepo.UpdateStatus(txCtx, req.ID, entities.JoinRequestStatusPending, entities.JoinRequestStatusAccepted); err != nil {
				return err
			}
			if siblings, err = u.joinRequestRepo.RejectPendingByCandidate(txCtx, candidate.ID, req.ID); err != nil {
				return err
			}
			if err := u.candidateRepo.BumpVersion(txCtx, candidate.ID, candidate.Version); err != nil {
				return err
			}
			if err := u.teamRepo.BumpVersion(txCtx, team.ID, team.Version); err != nil {
				return err
			}

			req.Status = entities.JoinRequestStatusAccepted
			out = req
			return nil
		})
	})
	if err == nil && staleJoin {
		err = domainerrors.ErrAlreadyMember
	}
	u.metrics.Observe("accept_request", err)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "join request accepted",
		zap.String("request_id", requestID.String()),
		zap.String("team_id", out.TeamID.String()),
		zap.String("candidate_id", out.CandidateID.String()),
		zap.Int64("siblings_rejected", siblings),
	)
	return out, nil
}

// RejectRequest is leader-only and a no-op on terminal requests.
func (u *MembershipUsecase) RejectRequest(ctx context.Context, actorID, requestID uuid.UUID) (*entities.JoinRequest, error) {
	out, err := u.closeRequest(ctx, requestID, func(ctx context.Context, req *entities.JoinRequest) error {
		team, err := u.teamRepo.GetByID(ctx, req.TeamID)
		if err != nil {
			return err
		}
		if team.LeaderID != actorID {
			return domainerrors.LeaderOnly()
		}
		return nil
	})
	u.metrics.Observe("reject_request", err)
	return out, err
}

// CancelRequest lets the applicant withdraw their own pending request.
func (u *MembershipUsecase) CancelRequest(ctx context.Context, actorID, requestID uuid.UUID) (*entities.JoinRequest, error) {
	out, err := u.closeRequest(ctx, requestID, func(_ context.Context, req *entities.JoinRequest) error {
		if req.CandidateID != actorID {
			return domainerrors.ApplicantOnly()
		}
		return nil
	})
	u.metrics.Observe("cancel_request", err)
	return out, err
}

func (u *MembershipUsecase) closeRequest(ctx context.Context, requestID uuid.UUID, authorize func(context.Context, *entities.JoinRequest) error) (*entities.JoinRequest, error) {
	var out *entities.JoinRequest
	err := retryOnConflict(ctx, u.policy.ConflictRetries, u.metrics, "close_request", func(ctx context.Context) error {
		return u.uow.Do(ctx, func(txCtx context.Context) error {
			req, err := u.joinRequestRepo.GetByID(u.uow.WithLock(txCtx), requestID)
			if err != nil {
				return err
			}
			if err := authorize(txCtx, req); err != nil {
				return err
			}
			out = req
			if req.Status.Terminal() {
				return nil
			}
			if err := u.joinRequestRepo.UpdateStatus(txCtx, req.ID, entities.JoinRequestStatusPending, entities.JoinRequestStatusRejected); err != nil {
				return err
			}
			req.Status = entities.JoinRequestStatusRejected
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListTeamRequests returns the pending applications of a team, leader-only.
func (u *MembershipUsecase) ListTeamRequests(ctx context.Context, actorID, teamID uuid.UUID) ([]*entities.JoinRequestDetail, error) {
	team, err := u.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.LeaderID != actorID {
		return nil, domainerrors.LeaderOnly()
	}
	reqs, err := u.joinRequestRepo.ListPendingByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	out := make([]*entities.JoinRequestDetail, 0, len(reqs))
	for _, r := range reqs {
		candidate, err := u.candidateRepo.GetByID(ctx, r.CandidateID)
		if err != nil {
			return nil, err
		}
		out = append(out, &entities.JoinRequestDetail{JoinRequest: *r, Candidate: candidate})
	}
	return out, nil
}

// ListMyRequests returns every request the actor has made, with its team.
func (u *MembershipUsecase) ListMyRequests(ctx context.Context, actorID uuid.UUID) ([]*entities.JoinRequestDetail, error) {
	reqs, err := u.joinRequestRepo.ListByCandidate(ctx, actorID)
	if err != nil {
		return nil, err
	}
	out := make([]*entities.JoinRequestDetail, 0, len(reqs))
	for _, r := range reqs {
		detail := &entities.JoinRequestDetail{JoinRequest: *r}
		team, err := u.teamRepo.GetByID(ctx, r.TeamID)
		switch {
		case err == nil:
			detail.Team = team
		case !errors.Is(err, domainerrors.ErrNotFound):
			return nil, err
		}
		out = append(out, detail)
	}
	return out, nil
}

// RemoveMember lets the leader drop a member while the team is a draft.
func (u *MembershipUsecase) RemoveMember(ctx context.Context, actorID, teamID, candidateID uuid.UUID) error {
	err := retryOnConflict(ctx, u.policy.ConflictRetries, u.metrics, "remove_member", func(ctx context.Context) error {
		return u.uow.Do(ctx, func(txCtx context.Context) error {
			lockCtx := u.uow.WithLock(txCtx)
			team, err := u.teamRepo.GetByID(lockCtx, teamID)
			if err != nil {
				return err
			}
			if team.LeaderID != actorID {
				return domainerrors.LeaderOnly()
			}
			if !team.Status.Editable() {
				return domainerrors.ErrTeamLocked
			}
			if candidateID == team.LeaderID {
				return domainerrors.ErrLeaderRemoval
			}
			return u.dropMember(txCtx, team, candidateID)
		})
	})
	u.metrics.Observe("remove_member", err)
	return err
}

// LeaveTeam removes the actor from teamID. A leader may only leave alone,
// which disbands the team.
func (u *MembershipUsecase) LeaveTeam(ctx context.Context, actorID, teamID uuid.UUID) error {
	disbanded := false
	err := retryOnConflict(ctx, u.policy.ConflictRetries, u.metrics, "leave_team", func(ctx context.Context) error {
		disbanded = false
		return u.uow.Do(ctx, func(txCtx context.Context) error {
			lockCtx := u.uow.WithLock(txCtx)
			team, err := u.teamRepo.GetByID(lockCtx, teamID)
			if err != nil {
				return err
			}
			if !team.Status.Editable() {
				return domainerrors.ErrTeamLocked
			}
			if actorID != team.LeaderID {
				return u.dropMember(txCtx, team, actorID)
			}

			count, err := u.membershipRepo.CountByTeam(txCtx, team.ID)
			if err != nil {
				return err
			}
			if count > 1 {
				return domainerrors.ErrLeaderRemoval
			}
			leader, err := u.candidateRepo.GetByID(lockCtx, actorID)
			if err != nil {
				return err
			}
			if _, err := u.joinRequestRepo.RejectPendingByTeam(txCtx, team.ID); err != nil {
				return err
			}
			if err := u.membershipRepo.DeleteByTeam(txCtx, team.ID); err != nil {
				return err
			}
			if err := u.teamRepo.Delete(txCtx, team.ID); err != nil {
				return err
			}
			disbanded = true
			return u.candidateRepo.BumpVersion(txCtx, leader.ID, leader.Version)
		})
	})
	u.metrics.Observe("leave_team", err)
	if err == nil && disbanded {
		logger.Info(ctx, "team disbanded", zap.String("team_id", teamID.String()))
	}
	return err
}

func (u *MembershipUsecase) dropMember(ctx context.Context, team *entities.Team, candidateID uuid.UUID) error {
	candidate, err := u.candidateRepo.GetByID(u.uow.WithLock(ctx), candidateID)
	if err != nil {
		return err
	}
	membership, err := u.membershipRepo.GetByCandidate(ctx, candidateID)
	if err != nil {
		return err
	}
	if membership.TeamID != team.ID {
		return domainerrors.ErrNotFound
	}
	if err := u.membershipRepo.Delete(ctx, team.ID, candidateID); err != nil {
		return err
	}
	if err := u.teamRepo.BumpVersion(ctx, team.ID, team.Version); err != nil {
		return err
	}
	return u.candidateRepo.BumpVersion(ctx, candidateID, candidate.Version)
}

func (u *MembershipUsecase) ensureNoMembership(ctx context.Context, candidateID uuid.UUID) error {
	_, err := u.membershipRepo.GetByCandidate(ctx, candidateID)
	if err == nil {
		return domainerrors.ErrAlreadyMember
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil
	}
	return err
}

func (u *MembershipUsecase) ensureCapacity(ctx context.Context, teamID uuid.UUID) error {
	count, err := u.membershipRepo.CountByTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if count >= int64(u.policy.TeamSize) {
		return domainerrors.ErrTeamFull
	}
	return nil
}
