package repository

import (
	"time"

	"insurisk/internal/models"

	"gorm.io/gorm"
)

type PredictionLogRepository interface {
	SaveLog(entry *models.PredictionLog) error
	GetByUserID(userID uint, limit int) ([]models.PredictionLog, error)
	CountCacheHits(userID uint) (int64, error)
	CleanupOlderThan(cutoff time.Time) error
}

type predictionLogRepository struct {
	db *gorm.DB
}

func NewPredictionLogRepository(db *gorm.DB) PredictionLogRepository {
	return &predictionLogRepository{db}
}

func (r *predictionLogRepository) SaveLog(entry *models.PredictionLog) error {
	return r.db.Create(entry).Error
}

func (r *predictionLogRepository) GetByUserID(userID uint, limit int) ([]models.PredictionLog, error) {
	var logs []models.PredictionLog
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&logs).Error
	return logs, err
}

func (r *predictionLogRepository) CountCacheHits(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PredictionLog{}).
		Where("user_id = ? AND cache_hit = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *predictionLogRepository) CleanupOlderThan(cutoff time.Time) error {
	return r.db.Where("created_at < ?", cutoff).Delete(&models.PredictionLog{}).Error
}
