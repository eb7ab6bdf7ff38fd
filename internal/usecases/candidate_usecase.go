package usecases

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/domain/repositories"
	"fnct-hackathon.backend/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// CandidateUsecase handles registration and profile edits.
type CandidateUsecase struct {
	candidateRepo  repositories.CandidateRepository
	membershipRepo repositories.MembershipRepository
	teamRepo       repositories.TeamRepository
	uow            repositories.UnitOfWork
	policy         Policy
	metrics        *metrics.Metrics
}

func NewCandidateUsecase(
	candidateRepo repositories.CandidateRepository,
	membershipRepo repositories.MembershipRepository,
	teamRepo repositories.TeamRepository,
	uow repositories.UnitOfWork,
	policy Policy,
	m *metrics.Metrics,
) *CandidateUsecase {
	return &CandidateUsecase{
		candidateRepo:  candidateRepo,
		membershipRepo: membershipRepo,
		teamRepo:       teamRepo,
		uow:            uow,
		policy:         policy,
		metrics:        m,
	}
}

// Register creates the candidate profile for the authenticated actor.
func (u *CandidateUsecase) Register(ctx context.Context, actorID uuid.UUID, input *entities.CandidateInput) (*entities.Candidate, error) {
	candidate := &entities.Candidate{ID: actorID}
	if err := applyCandidateInput(candidate, input); err != nil {
		return nil, err
	}
	candidate.Email = strings.ToLower(strings.TrimSpace(input.Email))

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.candidateRepo.GetByID(txCtx, actorID); err == nil {
			return domainerrors.NewAppError(http.StatusConflict, "ALREADY_REGISTERED", "This account already has a candidate profile.", domainerrors.ErrInvalidInput)
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		if _, err := u.candidateRepo.GetByEmail(txCtx, candidate.Email); err == nil {
			return domainerrors.NewAppError(http.StatusConflict, "EMAIL_TAKEN", "This e-mail address is already registered.", domainerrors.ErrInvalidInput)
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		return u.candidateRepo.Create(txCtx, candidate)
	})
	u.metrics.Observe("register_candidate", err)
	if err != nil {
		return nil, err
	}
	return candidate, nil
}

// GetProfile returns the candidate with their membership and team, if any.
func (u *CandidateUsecase) GetProfile(ctx context.Context, actorID uuid.UUID) (*entities.CandidateProfile, error) {
	candidate, err := u.candidateRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	profile := &entities.CandidateProfile{Candidate: candidate}

	membership, err := u.membershipRepo.GetByCandidate(ctx, actorID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return profile, nil
	}
	if err != nil {
		return nil, err
	}
	profile.Membership = membership

	team, err := u.teamRepo.GetByID(ctx, membership.TeamID)
	if err != nil {
		return nil, err
	}
	profile.Team = team
	return profile, nil
}

// UpdateProfile edits candidate-owned fields. Once the candidate belongs to
// a team the profile is frozen.
func (u *CandidateUsecase) UpdateProfile(ctx context.Context, actorID uuid.UUID, input *entities.CandidateInput) (*entities.Candidate, error) {
	var out *entities.Candidate
	err := retryOnConflict(ctx, u.policy.ConflictRetries, u.metrics, "update_profile", func(ctx context.Context) error {
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
			if err := applyCandidateInput(candidate, input); err != nil {
				return err
			}
			if err := u.candidateRepo.Update(txCtx, candidate); err != nil {
				return err
			}
			out = candidate
			return nil
		})
	})
	u.metrics.Observe("update_profile", err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyCandidateInput copies everything but the e-mail, which is the
// account identity and never changes after registration.
func applyCandidateInput(c *entities.Candidate, input *entities.CandidateInput) error {
	if input == nil {
		return domainerrors.BadRequest("missing candidate payload")
	}
	gender, err := entities.ParseGender(string(input.Gender))
	if err != nil {
		return domainerrors.BadRequest("gender must be one of M, F, O")
	}
	first, last := strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName)
	if first == "" || last == "" {
		return domainerrors.BadRequest("first and last name are required")
	}

	c.FirstName = first
	c.LastName = last
	c.Phone = strings.TrimSpace(input.Phone)
	c.Gender = gender
	c.University = strings.TrimSpace(input.University)
	c.Level = strings.TrimSpace(input.Level)
	c.Major = strings.TrimSpace(input.Major)
	c.TechSkills = DistinctSkills(input.TechSkills)
	c.DomainSkills = DistinctSkills(input.DomainSkills)

	c.Region = null.String{}
	if r := strings.TrimSpace(input.Region); r != "" {
		region, err := entities.ParseRegionCode(r)
		if err != nil {
			return domainerrors.BadRequest("unknown region")
		}
		c.Region = null.StringFrom(string(region))
	}

	c.CVURL = null.String{}
	if cv := strings.TrimSpace(input.CVURL); cv != "" {
		if !IsDeliverableURL(cv) {
			return domainerrors.BadRequest("cvUrl must be an absolute http(s) URL")
		}
		c.CVURL = null.StringFrom(cv)
	}
	return nil
}
