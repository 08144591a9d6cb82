package mocks

import (
	"context"
	"time"

	"insurisk/internal/ml"
	"insurisk/internal/models"
	"insurisk/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Shared MockQuestionnaireRepository
type MockQuestionnaireRepository struct {
	mock.Mock
}

func (m *MockQuestionnaireRepository) Save(q *models.Questionnaire) error {
	args := m.Called(q)
	return args.Error(0)
}

func (m *MockQuestionnaireRepository) FindByUserID(userID uint) (*models.Questionnaire, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Questionnaire), args.Error(1)
}

func (m *MockQuestionnaireRepository) UpsertSection(userID uint, section string, q *models.Questionnaire) error {
	args := m.Called(userID, section, q)
	return args.Error(0)
}

func (m *MockQuestionnaireRepository) Delete(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// Shared MockRiskHistoryRepository
type MockRiskHistoryRepository struct {
	mock.Mock
}

func (m *MockRiskHistoryRepository) SaveAssessment(h *models.RiskHistory) error {
	args := m.Called(h)
	return args.Error(0)
}

func (m *MockRiskHistoryRepository) GetByUserID(userID uint, limit int) ([]models.RiskHistory, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]models.RiskHistory), args.Error(1)
}

func (m *MockRiskHistoryRepository) GetByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]models.RiskHistory, error) {
	args := m.Called(userID, startDate, endDate)
	return args.Get(0).([]models.RiskHistory), args.Error(1)
}

func (m *MockRiskHistoryRepository) GetByID(id uint) (*models.RiskHistory, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskHistory), args.Error(1)
}

func (m *MockRiskHistoryRepository) GetLatestByUserID(userID uint) (*models.RiskHistory, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskHistory), args.Error(1)
}

func (m *MockRiskHistoryRepository) GetScoresByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]repository.RiskScorePoint, error) {
	args := m.Called(userID, startDate, endDate)
	return args.Get(0).([]repository.RiskScorePoint), args.Error(1)
}

func (m *MockRiskHistoryRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// Shared MockPredictionLogRepository
type MockPredictionLogRepository struct {
	mock.Mock
}

func (m *MockPredictionLogRepository) SaveLog(entry *models.PredictionLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockPredictionLogRepository) GetByUserID(userID uint, limit int) ([]models.PredictionLog, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]models.PredictionLog), args.Error(1)
}

func (m *MockPredictionLogRepository) CountCacheHits(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPredictionLogRepository) CleanupOlderThan(cutoff time.Time) error {
	args := m.Called(cutoff)
	return args.Error(0)
}

// Shared MockAnalysisJobRepository
type MockAnalysisJobRepository struct {
	mock.Mock
}

func (m *MockAnalysisJobRepository) SaveJob(job *models.AnalysisJob) error {
	args := m.Called(job)
	return args.Error(0)
}

func (m *MockAnalysisJobRepository) GetJobByID(id string) (*models.AnalysisJob, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisJob), args.Error(1)
}

func (m *MockAnalysisJobRepository) UpdateJobStatus(jobID, status string, errorMessage *string) error {
	args := m.Called(jobID, status, errorMessage)
	return args.Error(0)
}

func (m *MockAnalysisJobRepository) UpdateJobStatusWithResult(jobID, status string, riskHistoryID uint) error {
	args := m.Called(jobID, status, riskHistoryID)
	return args.Error(0)
}

func (m *MockAnalysisJobRepository) GetJobsByUserID(userID uint, limit int) ([]*models.AnalysisJob, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]*models.AnalysisJob), args.Error(1)
}

func (m *MockAnalysisJobRepository) GetPendingJobs(limit int) ([]*models.AnalysisJob, error) {
	args := m.Called(limit)
	return args.Get(0).([]*models.AnalysisJob), args.Error(1)
}

func (m *MockAnalysisJobRepository) CancelJob(jobID string) error {
	args := m.Called(jobID)
	return args.Error(0)
}

func (m *MockAnalysisJobRepository) GetActiveJobsCount(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalysisJobRepository) CleanupOldJobs(olderThan time.Time) error {
	args := m.Called(olderThan)
	return args.Error(0)
}

func (m *MockAnalysisJobRepository) IsJobOwnedByUser(jobID string, userID uint) (bool, error) {
	args := m.Called(jobID, userID)
	return args.Bool(0), args.Error(1)
}

// Shared MockPredictor
type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(ctx context.Context, in *models.MLModelInput, sessionToken string) (*ml.Result, error) {
	args := m.Called(ctx, in, sessionToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ml.Result), args.Error(1)
}

func (m *MockPredictor) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
