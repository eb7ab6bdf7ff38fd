package repositories

import (
	"context"
	"strings"
	"time"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	m, err := r.toModel(team)
	if err != nil {
		return err
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return storageErr(err)
	}
	team.CreatedAt = m.CreatedAt
	team.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	var m models.Team
	if err := lockedDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, storageErr(err)
	}
	return r.toEntity(&m)
}

func (r *TeamRepository) Update(ctx context.Context, team *entities.Team, expected entities.TeamStatus) error {
	m, err := r.toModel(team)
	if err != nil {
		return err
	}
	now := time.Now()
	updates := map[string]interface{}{
		"description":                 m.Description,
		"request_profile":             m.RequestProfile,
		"requested_skills":            m.RequestedSkills,
		"secondary_theme":             m.SecondaryTheme,
		"secondary_theme_description": m.SecondaryThemeDescription,
		"status":                      m.Status,
		"qualitative_score":           m.QualitativeScore,
		"motivation_url":              m.MotivationURL,
		"video_url":                   m.VideoURL,
		"prototype_url":               m.PrototypeURL,
		"submitted_at":                m.SubmittedAt,
		"version":                     gorm.Expr("version + 1"),
		"updated_at":                  now,
	}

	res := GetDB(ctx, r.db).
		Model(&models.Team{}).
		Where("id = ? AND version = ? AND status = ?", team.ID, team.Version, string(expected)).
		Updates(updates)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrConcurrencyConflict
	}
	team.Version++
	team.UpdatedAt = now
	return nil
}

func (r *TeamRepository) BumpVersion(ctx context.Context, id uuid.UUID, expected int64) error {
	return bumpVersion(ctx, r.db, &models.Team{}, "id", id, expected)
}

func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Delete(&models.Team{}, "id = ?", id)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) List(ctx context.Context, filter entities.TeamFilter) ([]*entities.Team, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Team{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if filter.Region != "" {
		query = query.Where("region = ?", string(filter.Region))
	}
	if filter.Theme != "" {
		query = query.Where("theme = ?", string(filter.Theme))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where("status IN ?", statuses)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storageErr(err)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var ms []models.Team
	if err := query.Order("created_at ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, 0, storageErr(err)
	}

	items := make([]*entities.Team, 0, len(ms))
	for i := range ms {
		team, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, team)
	}
	return items, total, nil
}

func (r *TeamRepository) CountByRegionAndStatus(ctx context.Context, region entities.RegionCode, status entities.TeamStatus) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).
		Model(&models.Team{}).
		Where("region = ? AND status = ?", string(region), string(status)).
		Count(&n).Error
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

func (r *TeamRepository) CountByStatus(ctx context.Context) (map[entities.TeamStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := GetDB(ctx, r.db).
		Model(&models.Team{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr(err)
	}

	out := make(map[entities.TeamStatus]int64, len(entities.AllTeamStatuses))
	for _, s := range entities.AllTeamStatuses {
		out[s] = 0
	}
	for _, row := range rows {
		status, err := entities.ParseTeamStatus(row.Status)
		if err != nil {
			return nil, corruptRow(err)
		}
		out[status] = row.Count
	}
	return out, nil
}

func (r *TeamRepository) CountByRegionAndTheme(ctx context.Context) ([]entities.RegionThemeCount, error) {
	var rows []struct {
		Region string
		Theme  string
		Count  int64
	}
	err := GetDB(ctx, r.db).
		Model(&models.Team{}).
		Select("region, theme, COUNT(*) AS count").
		Group("region, theme").
		Order("region, theme").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr(err)
	}

	out := make([]entities.RegionThemeCount, 0, len(rows))
	for _, row := range rows {
		region, err := entities.ParseRegionCode(row.Region)
		if err != nil {
			return nil, corruptRow(err)
		}
		theme, err := entities.ParseTheme(row.Theme)
		if err != nil {
			return nil, corruptRow(err)
		}
		out = append(out, entities.RegionThemeCount{Region: region, Theme: theme, Count: row.Count})
	}
	return out, nil
}

func (r *TeamRepository) toEntity(m *models.Team) (*entities.Team, error) {
	status, err := entities.ParseTeamStatus(m.Status)
	if err != nil {
		return nil, corruptRow(err)
	}
	region, err := entities.ParseRegionCode(m.Region)
	if err != nil {
		return nil, corruptRow(err)
	}
	theme, err := entities.ParseTheme(m.Theme)
	if err != nil {
		return nil, corruptRow(err)
	}
	var secondary entities.Theme
	if m.SecondaryTheme.Valid && m.SecondaryTheme.String != "" {
		if secondary, err = entities.ParseTheme(m.SecondaryTheme.String); err != nil {
			return nil, corruptRow(err)
		}
	}
	skills, err := decodeList(m.RequestedSkills)
	if err != nil {
		return nil, corruptRow(err)
	}

	return &entities.Team{
		ID:                        m.ID,
		Name:                      m.Name,
		Description:               m.Description,
		RequestProfile:            m.RequestProfile,
		RequestedSkills:           skills,
		Theme:                     theme,
		SecondaryTheme:            secondary,
		SecondaryThemeDescription: m.SecondaryThemeDescription,
		Region:                    region,
		LeaderID:                  m.LeaderID,
		Status:                    status,
		QualitativeScore:          m.QualitativeScore,
		MotivationURL:             m.MotivationURL,
		VideoURL:                  m.VideoURL,
		PrototypeURL:              m.PrototypeURL,
		SubmittedAt:               m.SubmittedAt,
		Version:                   m.Version,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}, nil
}

func (r *TeamRepository) toModel(e *entities.Team) (*models.Team, error) {
	skills, err := encodeList(e.RequestedSkills)
	if err != nil {
		return nil, err
	}
	return &models.Team{
		ID:                        e.ID,
		Name:                      e.Name,
		Description:               e.Description,
		RequestProfile:            e.RequestProfile,
		RequestedSkills:           skills,
		Theme:                     string(e.Theme),
		SecondaryTheme:            null.NewString(string(e.SecondaryTheme), e.SecondaryTheme != ""),
		SecondaryThemeDescription: e.SecondaryThemeDescription,
		Region:                    string(e.Region),
		LeaderID:                  e.LeaderID,
		Status:                    string(e.Status),
		QualitativeScore:          e.QualitativeScore,
		MotivationURL:             e.MotivationURL,
		VideoURL:                  e.VideoURL,
		PrototypeURL:              e.PrototypeURL,
		SubmittedAt:               e.SubmittedAt,
		Version:                   e.Version,
		CreatedAt:                 e.CreatedAt,
		UpdatedAt:                 e.UpdatedAt,
	}, nil
}
