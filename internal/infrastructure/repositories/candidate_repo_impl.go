package repositories

import (
	"context"
	"strings"
	"time"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) Create(ctx context.Context, candidate *entities.Candidate) error {
	m, err := r.toModel(candidate)
	if err != nil {
		return err
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isDuplicate(err) {
			return domainerrors.ErrInvalidInput
		}
		return storageErr(err)
	}
	candidate.CreatedAt = m.CreatedAt
	candidate.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Candidate, error) {
	var m models.Candidate
	if err := lockedDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, storageErr(err)
	}
	return r.toEntity(&m)
}

func (r *CandidateRepository) GetByEmail(ctx context.Context, email string) (*entities.Candidate, error) {
	var m models.Candidate
	if err := GetDB(ctx, r.db).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&m).Error; err != nil {
		return nil, storageErr(err)
	}
	return r.toEntity(&m)
}

func (r *CandidateRepository) Update(ctx context.Context, candidate *entities.Candidate) error {
	m, err := r.toModel(candidate)
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"first_name":    m.FirstName,
		"last_name":     m.LastName,
		"phone":         m.Phone,
		"gender":        m.Gender,
		"university":    m.University,
		"level":         m.Level,
		"major":         m.Major,
		"region":        m.Region,
		"tech_skills":   m.TechSkills,
		"domain_skills": m.DomainSkills,
		"cv_url":        m.CVURL,
		"version":       gorm.Expr("version + 1"),
		"updated_at":    time.Now(),
	}

	res := GetDB(ctx, r.db).
		Model(&models.Candidate{}).
		Where("id = ? AND version = ?", candidate.ID, candidate.Version).
		Updates(updates)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrConcurrencyConflict
	}
	candidate.Version++
	return nil
}

func (r *CandidateRepository) BumpVersion(ctx context.Context, id uuid.UUID, expected int64) error {
	return bumpVersion(ctx, r.db, &models.Candidate{}, "id", id, expected)
}

func (r *CandidateRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := GetDB(ctx, r.db).Model(&models.Candidate{}).Count(&n).Error; err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

func (r *CandidateRepository) toEntity(m *models.Candidate) (*entities.Candidate, error) {
	gender, err := entities.ParseGender(m.Gender)
	if err != nil {
		return nil, corruptRow(err)
	}
	tech, err := decodeList(m.TechSkills)
	if err != nil {
		return nil, corruptRow(err)
	}
	domain, err := decodeList(m.DomainSkills)
	if err != nil {
		return nil, corruptRow(err)
	}
	return &entities.Candidate{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		Gender:       gender,
		University:   m.University,
		Level:        m.Level,
		Major:        m.Major,
		Region:       m.Region,
		TechSkills:   tech,
		DomainSkills: domain,
		CVURL:        m.CVURL,
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func (r *CandidateRepository) toModel(e *entities.Candidate) (*models.Candidate, error) {
	tech, err := encodeList(e.TechSkills)
	if err != nil {
		return nil, err
	}
	domain, err := encodeList(e.DomainSkills)
	if err != nil {
		return nil, err
	}
	return &models.Candidate{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        strings.ToLower(strings.TrimSpace(e.Email)),
		Phone:        e.Phone,
		Gender:       string(e.Gender),
		University:   e.University,
		Level:        e.Level,
		Major:        e.Major,
		Region:       e.Region,
		TechSkills:   tech,
		DomainSkills: domain,
		CVURL:        e.CVURL,
		Version:      e.Version,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}, nil
}
