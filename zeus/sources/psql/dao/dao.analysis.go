// zeus/sources/psql/dao/dao.analysis.go
package dao

import (
	"context"
	"errors"

	"zeus/zeus/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalysisDAO struct {
	DB *gorm.DB
}

func NewAnalysisDAO(db *gorm.DB) *AnalysisDAO {
	return &AnalysisDAO{DB: db}
}

func (dao *AnalysisDAO) CreateAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	return dao.DB.WithContext(ctx).Create(rec).Error
}

func (dao *AnalysisDAO) GetAnalysisByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	var rec models.AnalysisRecord
	err := dao.DB.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRecentAnalyses returns up to limit records, newest first.
func (dao *AnalysisDAO) ListRecentAnalyses(ctx context.Context, limit int) ([]models.AnalysisRecord, error) {
	var recs []models.AnalysisRecord
	err := dao.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (dao *AnalysisDAO) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	return dao.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.AnalysisRecord{}).Error
}
