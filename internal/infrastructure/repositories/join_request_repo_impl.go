package repositories

import (
	"context"
	"time"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JoinRequestRepository struct {
	db *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

func (r *JoinRequestRepository) Create(ctx context.Context, req *entities.JoinRequest) error {
	m := &models.JoinRequest{
		ID:          req.ID,
		CandidateID: req.CandidateID,
		TeamID:      req.TeamID,
		Status:      string(req.Status),
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isDuplicate(err) {
			return domainerrors.ErrDuplicateRequest
		}
		return storageErr(err)
	}
	req.CreatedAt = m.CreatedAt
	req.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *JoinRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.JoinRequest, error) {
	var m models.JoinRequest
	if err := lockedDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, storageErr(err)
	}
	return toJoinRequestEntity(&m)
}

func (r *JoinRequestRepository) FindPending(ctx context.Context, candidateID, teamID uuid.UUID) (*entities.JoinRequest, error) {
	var m models.JoinRequest
	err := GetDB(ctx, r.db).
		Where("candidate_id = ? AND team_id = ? AND status = ?", candidateID, teamID, string(entities.JoinRequestStatusPending)).
		First(&m).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return toJoinRequestEntity(&m)
}

func (r *JoinRequestRepository) ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.JoinRequest, error) {
	return r.list(ctx, "team_id = ? AND status = ?", teamID, string(entities.JoinRequestStatusPending))
}

func (r *JoinRequestRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entities.JoinRequest, error) {
	return r.list(ctx, "candidate_id = ?", candidateID)
}

func (r *JoinRequestRepository) list(ctx context.Context, where string, args ...interface{}) ([]*entities.JoinRequest, error) {
	var ms []models.JoinRequest
	if err := GetDB(ctx, r.db).Where(where, args...).Order("created_at ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, storageErr(err)
	}
	items := make([]*entities.JoinRequest, 0, len(ms))
	for i := range ms {
		req, err := toJoinRequestEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		items = append(items, req)
	}
	return items, nil
}

func (r *JoinRequestRepository) CountPendingByCandidate(ctx context.Context, candidateID uuid.UUID) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).
		Model(&models.JoinRequest{}).
		Where("candidate_id = ? AND status = ?", candidateID, string(entities.JoinRequestStatusPending)).
		Count(&n).Error
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

func (r *JoinRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.JoinRequestStatus) error {
	res := GetDB(ctx, r.db).
		Model(&models.JoinRequest{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{"status": string(to), "updated_at": time.Now()})
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrConcurrencyConflict
	}
	return nil
}

func (r *JoinRequestRepository) RejectPendingByCandidate(ctx context.Context, candidateID, exceptID uuid.UUID) (int64, error) {
	return r.rejectPending(ctx, "candidate_id = ? AND id <> ?", candidateID, exceptID)
}

func (r *JoinRequestRepository) RejectPendingByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	return r.rejectPending(ctx, "team_id = ?", teamID)
}

func (r *JoinRequestRepository) rejectPending(ctx context.Context, where string, args ...interface{}) (int64, error) {
	res := GetDB(ctx, r.db).
		Model(&models.JoinRequest{}).
		Where("status = ?", string(entities.JoinRequestStatusPending)).
		Where(where, args...).
		Updates(map[string]interface{}{
			"status":     string(entities.JoinRequestStatusRejected),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, storageErr(res.Error)
	}
	return res.RowsAffected, nil
}

func toJoinRequestEntity(m *models.JoinRequest) (*entities.JoinRequest, error) {
	status, err := entities.ParseJoinRequestStatus(m.Status)
	if err != nil {
		return nil, corruptRow(err)
	}
	return &entities.JoinRequest{
		ID:          m.ID,
		CandidateID: m.CandidateID,
		TeamID:      m.TeamID,
		Status:      status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}
