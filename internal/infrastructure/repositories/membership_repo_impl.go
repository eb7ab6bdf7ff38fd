package repositories

import (
	"context"
	"fmt"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	db         *gorm.DB
	candidates *CandidateRepository
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db, candidates: NewCandidateRepository(db)}
}

func (r *MembershipRepository) Create(ctx context.Context, membership *entities.Membership) error {
	m := &models.Membership{
		ID:          membership.ID,
		TeamID:      membership.TeamID,
		CandidateID: membership.CandidateID,
		Role:        string(membership.Role),
		CreatedAt:   membership.CreatedAt,
	}
	if err := GetDB(ctx, r.db).Omit("Candidate").Create(m).Error; err != nil {
		if isDuplicate(err) {
			return domainerrors.ErrAlreadyMember
		}
		return storageErr(err)
	}
	membership.CreatedAt = m.CreatedAt
	return nil
}

func (r *MembershipRepository) GetByCandidate(ctx context.Context, candidateID uuid.UUID) (*entities.Membership, error) {
	var m models.Membership
	if err := GetDB(ctx, r.db).Where("candidate_id = ?", candidateID).First(&m).Error; err != nil {
		return nil, storageErr(err)
	}
	return toMembershipEntity(&m)
}

func (r *MembershipRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error) {
	grouped, err := r.ListByTeams(ctx, []uuid.UUID{teamID})
	if err != nil {
		return nil, err
	}
	return grouped[teamID], nil
}

// ListByTeams loads members of several teams in one round trip, leader first.
func (r *MembershipRepository) ListByTeams(ctx context.Context, teamIDs []uuid.UUID) (map[uuid.UUID][]*entities.TeamMember, error) {
	out := make(map[uuid.UUID][]*entities.TeamMember, len(teamIDs))
	for _, id := range teamIDs {
		out[id] = []*entities.TeamMember{}
	}
	if len(teamIDs) == 0 {
		return out, nil
	}

	var ms []models.Membership
	err := GetDB(ctx, r.db).
		Preload("Candidate").
		Where("team_id IN ?", teamIDs).
		Order("CASE WHEN role = 'leader' THEN 0 ELSE 1 END, created_at ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, storageErr(err)
	}

	for i := range ms {
		membership, err := toMembershipEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		if ms[i].Candidate == nil {
			return nil, corruptRow(fmt.Errorf("membership %s has no candidate", ms[i].ID))
		}
		candidate, err := r.candidates.toEntity(ms[i].Candidate)
		if err != nil {
			return nil, err
		}
		out[membership.TeamID] = append(out[membership.TeamID], &entities.TeamMember{
			Membership: *membership,
			Candidate:  candidate,
		})
	}
	return out, nil
}

func (r *MembershipRepository) CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var n int64
	if err := GetDB(ctx, r.db).Model(&models.Membership{}).Where("team_id = ?", teamID).Count(&n).Error; err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

func (r *MembershipRepository) Delete(ctx context.Context, teamID, candidateID uuid.UUID) error {
	res := GetDB(ctx, r.db).Delete(&models.Membership{}, "team_id = ? AND candidate_id = ?", teamID, candidateID)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MembershipRepository) DeleteByTeam(ctx context.Context, teamID uuid.UUID) error {
	if err := GetDB(ctx, r.db).Delete(&models.Membership{}, "team_id = ?", teamID).Error; err != nil {
		return storageErr(err)
	}
	return nil
}

// CountByRegion counts candidates holding a membership, grouped by team region.
func (r *MembershipRepository) CountByRegion(ctx context.Context) (map[entities.RegionCode]int64, error) {
	var rows []struct {
		Region string
		Count  int64
	}
	err := GetDB(ctx, r.db).
		Table("memberships").
		Select("teams.region AS region, COUNT(*) AS count").
		Joins("JOIN teams ON teams.id = memberships.team_id").
		Group("teams.region").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr(err)
	}

	out := make(map[entities.RegionCode]int64, len(rows))
	for _, row := range rows {
		region, err := entities.ParseRegionCode(row.Region)
		if err != nil {
			return nil, corruptRow(err)
		}
		out[region] = row.Count
	}
	return out, nil
}

func toMembershipEntity(m *models.Membership) (*entities.Membership, error) {
	role, err := entities.ParseMemberRole(m.Role)
	if err != nil {
		return nil, corruptRow(err)
	}
	return &entities.Membership{
		ID:          m.ID,
		TeamID:      m.TeamID,
		CandidateID: m.CandidateID,
		Role:        role,
		CreatedAt:   m.CreatedAt,
	}, nil
}
