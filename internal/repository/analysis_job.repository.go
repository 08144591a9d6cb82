package repository

import (
	"fmt"
	"time"

	"insurisk/internal/models"

	"gorm.io/gorm"
)

type AnalysisJobRepository interface {
	SaveJob(job *models.AnalysisJob) error
	GetJobByID(id string) (*models.AnalysisJob, error)
	UpdateJobStatus(jobID, status string, errorMessage *string) error
	UpdateJobStatusWithResult(jobID, status string, riskHistoryID uint) error
	GetJobsByUserID(userID uint, limit int) ([]*models.AnalysisJob, error)
	GetPendingJobs(limit int) ([]*models.AnalysisJob, error)
	CancelJob(jobID string) error
	GetActiveJobsCount(userID uint) (int64, error)
	CleanupOldJobs(olderThan time.Time) error
	IsJobOwnedByUser(jobID string, userID uint) (bool, error)
}

type analysisJobRepository struct {
	db *gorm.DB
}

func NewAnalysisJobRepository(db *gorm.DB) AnalysisJobRepository {
	return &analysisJobRepository{db}
}

func (r *analysisJobRepository) SaveJob(job *models.AnalysisJob) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	job.UpdatedAt = time.Now()
	return r.db.Create(job).Error
}

func (r *analysisJobRepository) GetJobByID(id string) (*models.AnalysisJob, error) {
	var job models.AnalysisJob
	err := r.db.Preload("RiskHistory").Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *analysisJobRepository) UpdateJobStatus(jobID, status string, errorMessage *string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if errorMessage != nil {
		updates["error_message"] = *errorMessage
	}
	if status == models.JobStatusCompleted || status == models.JobStatusFailed || status == models.JobStatusCancelled {
		now := time.Now()
		updates["completed_at"] = &now
	}

	result := r.db.Model(&models.AnalysisJob{}).Where("id = ?", jobID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job with ID %s not found", jobID)
	}
	return nil
}

func (r *analysisJobRepository) UpdateJobStatusWithResult(jobID, status string, riskHistoryID uint) error {
	updates := map[string]interface{}{
		"status":          status,
		"risk_history_id": riskHistoryID,
		"updated_at":      time.Now(),
	}
	if status == models.JobStatusCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}

	result := r.db.Model(&models.AnalysisJob{}).Where("id = ?", jobID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job with ID %s not found", jobID)
	}
	return nil
}

func (r *analysisJobRepository) GetJobsByUserID(userID uint, limit int) ([]*models.AnalysisJob, error) {
	var jobs []*models.AnalysisJob
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Preload("RiskHistory").Find(&jobs).Error
	return jobs, err
}

func (r *analysisJobRepository) GetPendingJobs(limit int) ([]*models.AnalysisJob, error) {
	var jobs []*models.AnalysisJob
	query := r.db.Where("status = ?", models.JobStatusPending).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&jobs).Error
	return jobs, err
}

func (r *analysisJobRepository) CancelJob(jobID string) error {
	// Only pending or processing jobs can be cancelled.
	result := r.db.Model(&models.AnalysisJob{}).
		Where("id = ? AND status IN (?)", jobID, []string{models.JobStatusPending, models.JobStatusProcessing}).
		Updates(map[string]interface{}{
			"status":       models.JobStatusCancelled,
			"updated_at":   time.Now(),
			"completed_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found or cannot be cancelled")
	}
	return nil
}

func (r *analysisJobRepository) GetActiveJobsCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.AnalysisJob{}).
		Where("user_id = ? AND status IN (?)", userID, []string{models.JobStatusPending, models.JobStatusProcessing}).
		Count(&count).Error
	return count, err
}

func (r *analysisJobRepository) CleanupOldJobs(olderThan time.Time) error {
	return r.db.Where("completed_at < ? AND status IN (?)",
		olderThan,
		[]string{models.JobStatusCompleted, models.JobStatusFailed, models.JobStatusCancelled},
	).Delete(&models.AnalysisJob{}).Error
}

func (r *analysisJobRepository) IsJobOwnedByUser(jobID string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.AnalysisJob{}).
		Where("id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error
	return count > 0, err
}
