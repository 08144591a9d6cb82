package models

import (
	"time"

	"gorm.io/gorm"
)

// AnalysisJob tracks an asynchronous hybrid analysis request.
type AnalysisJob struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	Status        string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RiskHistoryID *uint          `gorm:"index" json:"risk_history_id,omitempty"`
	ErrorMessage  *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User        User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RiskHistory *RiskHistory `gorm:"foreignKey:RiskHistoryID" json:"risk_history,omitempty"`
}

// Job status constants
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
	JobStatusCancelled  = "cancelled"
)

func (j *AnalysisJob) TableName() string {
	return "analysis_jobs"
}

// AnalysisJobRequest is what gets queued for the worker pool.
type AnalysisJobRequest struct {
	JobID        string `json:"job_id"`
	UserID       uint   `json:"user_id"`
	UseMLModel   bool   `json:"use_ml_model"`
	UseGemini    bool   `json:"use_gemini"`
	PolicyYears  int    `json:"policy_years"`
	SessionToken string `json:"-"`
}
