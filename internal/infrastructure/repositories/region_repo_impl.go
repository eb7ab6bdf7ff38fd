package repositories

import (
	"context"

	"fnct-hackathon.backend/internal/domain/entities"
	"fnct-hackathon.backend/internal/infrastructure/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegionRepository struct {
	db *gorm.DB
}

func NewRegionRepository(db *gorm.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

func (r *RegionRepository) List(ctx context.Context) ([]*entities.Region, error) {
	var ms []models.Region
	if err := GetDB(ctx, r.db).Order("hackathon_date ASC, code ASC").Find(&ms).Error; err != nil {
		return nil, storageErr(err)
	}
	items := make([]*entities.Region, 0, len(ms))
	for i := range ms {
		region, err := toRegionEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		items = append(items, region)
	}
	return items, nil
}

func (r *RegionRepository) GetByCode(ctx context.Context, code entities.RegionCode) (*entities.Region, error) {
	var m models.Region
	if err := lockedDB(ctx, r.db).Where("code = ?", string(code)).First(&m).Error; err != nil {
		return nil, storageErr(err)
	}
	return toRegionEntity(&m)
}

func (r *RegionRepository) BumpVersion(ctx context.Context, code entities.RegionCode, expected int64) error {
	return bumpVersion(ctx, r.db, &models.Region{}, "code", string(code), expected)
}

// Seed inserts the default catalogue, leaving existing rows untouched.
func (r *RegionRepository) Seed(ctx context.Context, regions []entities.Region) error {
	rows := make([]models.Region, 0, len(regions))
	for _, reg := range regions {
		rows = append(rows, models.Region{
			Code:          string(reg.Code),
			Name:          reg.Name,
			HackathonDate: reg.HackathonDate,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	err := GetDB(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&rows).Error
	return storageErr(err)
}

func toRegionEntity(m *models.Region) (*entities.Region, error) {
	code, err := entities.ParseRegionCode(m.Code)
	if err != nil {
		return nil, corruptRow(err)
	}
	return &entities.Region{
		Code:          code,
		Name:          m.Name,
		HackathonDate: m.HackathonDate,
		Version:       m.Version,
	}, nil
}
