package repository

import (
	"time"

	"insurisk/internal/models"

	"gorm.io/gorm"
)

type RiskHistoryRepository interface {
	SaveAssessment(h *models.RiskHistory) error
	GetByUserID(userID uint, limit int) ([]models.RiskHistory, error)
	GetByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]models.RiskHistory, error)
	GetByID(id uint) (*models.RiskHistory, error)
	GetLatestByUserID(userID uint) (*models.RiskHistory, error)
	GetScoresByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]RiskScorePoint, error)
	Delete(id uint) error
}

type riskHistoryRepository struct {
	db *gorm.DB
}

func NewRiskHistoryRepository(db *gorm.DB) RiskHistoryRepository {
	return &riskHistoryRepository{db}
}

func (r *riskHistoryRepository) SaveAssessment(h *models.RiskHistory) error {
	return r.db.Create(h).Error
}

func (r *riskHistoryRepository) GetByUserID(userID uint, limit int) ([]models.RiskHistory, error) {
	var history []models.RiskHistory
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&history).Error
	return history, err
}

func (r *riskHistoryRepository) GetByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]models.RiskHistory, error) {
	var history []models.RiskHistory
	err := r.db.Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, startDate, endDate).
		Order("created_at DESC").
		Find(&history).Error
	return history, err
}

func (r *riskHistoryRepository) GetByID(id uint) (*models.RiskHistory, error) {
	var h models.RiskHistory
	err := r.db.First(&h, id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *riskHistoryRepository) GetLatestByUserID(userID uint) (*models.RiskHistory, error) {
	var h models.RiskHistory
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// RiskScorePoint is one dated score for trend charts.
type RiskScorePoint struct {
	RiskScore int       `json:"risk_score"`
	RiskLevel string    `json:"risk_level"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *riskHistoryRepository) GetScoresByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]RiskScorePoint, error) {
	var scores []RiskScorePoint
	err := r.db.Model(&models.RiskHistory{}).
		Select("risk_score, risk_level, created_at").
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, startDate, endDate).
		Order("created_at ASC").
		Find(&scores).Error
	return scores, err
}

func (r *riskHistoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.RiskHistory{}, id).Error
}
