package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"insurisk/internal/controllers"
	"insurisk/internal/models"
	"insurisk/internal/repository"
	"insurisk/tests/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAssessmentTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func setupAssessmentControllerWithMocks() (*controllers.AssessmentController, *mocks.MockQuestionnaireRepository, *mocks.MockRiskHistoryRepository, *mocks.MockPredictionLogRepository, *mocks.MockAnalysisJobRepository, *mocks.MockPredictor) {
	mockQuestionnaireRepo := new(mocks.MockQuestionnaireRepository)
	mockHistoryRepo := new(mocks.MockRiskHistoryRepository)
	mockLogRepo := new(mocks.MockPredictionLogRepository)
	mockJobRepo := new(mocks.MockAnalysisJobRepository)
	mockPredictor := new(mocks.MockPredictor)

	controller := controllers.NewAssessmentController(
		mockQuestionnaireRepo,
		mockHistoryRepo,
		mockLogRepo,
		mockJobRepo,
		nil, // user repository is not exercised by these handlers
		nil, // combiner
		mockPredictor,
		nil, // job worker
		nil, // redis
	)

	return controller, mockQuestionnaireRepo, mockHistoryRepo, mockLogRepo, mockJobRepo, mockPredictor
}

func addAssessmentAuthMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func TestNewAssessmentController(t *testing.T) {
	controller, _, _, _, _, _ := setupAssessmentControllerWithMocks()
	assert.NotNil(t, controller)
}

func TestGetJobStatus(t *testing.T) {
	completedAt := time.Now()
	historyID := uint(7)

	tests := []struct {
		name           string
		userID         uint
		jobID          string
		setupMocks     func(*mocks.MockAnalysisJobRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "completed job status",
			userID: 1,
			jobID:  "job-123",
			setupMocks: func(jobRepo *mocks.MockAnalysisJobRepository) {
				jobRepo.On("IsJobOwnedByUser", "job-123", uint(1)).Return(true, nil)
				jobRepo.On("GetJobByID", "job-123").Return(&models.AnalysisJob{
					ID:            "job-123",
					UserID:        1,
					Status:        models.JobStatusCompleted,
					RiskHistoryID: &historyID,
					CompletedAt:   &completedAt,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Job status retrieved successfully",
		},
		{
			name:   "job owned by someone else",
			userID: 2,
			jobID:  "job-123",
			setupMocks: func(jobRepo *mocks.MockAnalysisJobRepository) {
				jobRepo.On("IsJobOwnedByUser", "job-123", uint(2)).Return(false, nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Access denied",
		},
		{
			name:   "job not found",
			userID: 1,
			jobID:  "missing-job",
			setupMocks: func(jobRepo *mocks.MockAnalysisJobRepository) {
				jobRepo.On("IsJobOwnedByUser", "missing-job", uint(1)).Return(true, nil)
				jobRepo.On("GetJobByID", "missing-job").Return(nil, errors.New("record not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Job not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, _, _, _, jobRepo, _ := setupAssessmentControllerWithMocks()
			tt.setupMocks(jobRepo)

			router := setupAssessmentTestRouter()
			router.Use(addAssessmentAuthMiddleware(tt.userID))
			router.GET("/assessment/jobs/:job_id", controller.GetJobStatus)

			req := httptest.NewRequest("GET", "/assessment/jobs/"+tt.jobID, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Contains(t, response["message"], tt.expectedMsg)

			jobRepo.AssertExpectations(t)
		})
	}
}

func TestGetJobResult(t *testing.T) {
	historyID := uint(7)
	history := &models.RiskHistory{
		ID:        historyID,
		UserID:    1,
		RiskScore: 30,
		RiskLevel: "Low",
	}

	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockAnalysisJobRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "completed job returns history",
			setupMocks: func(jobRepo *mocks.MockAnalysisJobRepository) {
				jobRepo.On("IsJobOwnedByUser", "job-123", uint(1)).Return(true, nil)
				jobRepo.On("GetJobByID", "job-123").Return(&models.AnalysisJob{
					ID:            "job-123",
					UserID:        1,
					Status:        models.JobStatusCompleted,
					RiskHistoryID: &historyID,
					RiskHistory:   history,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Job result retrieved successfully",
		},
		{
			name: "pending job conflicts",
			setupMocks: func(jobRepo *mocks.MockAnalysisJobRepository) {
				jobRepo.On("IsJobOwnedByUser", "job-123", uint(1)).Return(true, nil)
				jobRepo.On("GetJobByID", "job-123").Return(&models.AnalysisJob{
					ID:     "job-123",
					UserID: 1,
					Status: models.JobStatusProcessing,
				}, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Job has not completed yet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, _, _, _, jobRepo, _ := setupAssessmentControllerWithMocks()
			tt.setupMocks(jobRepo)

			router := setupAssessmentTestRouter()
			router.Use(addAssessmentAuthMiddleware(1))
			router.GET("/assessment/jobs/:job_id/result", controller.GetJobResult)

			req := httptest.NewRequest("GET", "/assessment/jobs/job-123/result", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Contains(t, response["message"], tt.expectedMsg)

			jobRepo.AssertExpectations(t)
		})
	}
}

func TestCancelJob(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockAnalysisJobRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "pending job cancelled",
			setupMocks: func(jobRepo *mocks.MockAnalysisJobRepository) {
				jobRepo.On("IsJobOwnedByUser", "job-123", uint(1)).Return(true, nil)
				jobRepo.On("CancelJob", "job-123").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Job cancelled successfully",
		},
		{
			name: "terminal job cannot be cancelled",
			setupMocks: func(jobRepo *mocks.MockAnalysisJobRepository) {
				jobRepo.On("IsJobOwnedByUser", "job-123", uint(1)).Return(true, nil)
				jobRepo.On("CancelJob", "job-123").Return(errors.New("job not found or cannot be cancelled"))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Job cannot be cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, _, _, _, jobRepo, _ := setupAssessmentControllerWithMocks()
			tt.setupMocks(jobRepo)

			router := setupAssessmentTestRouter()
			router.Use(addAssessmentAuthMiddleware(1))
			router.DELETE("/assessment/jobs/:job_id", controller.CancelJob)

			req := httptest.NewRequest("DELETE", "/assessment/jobs/job-123", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Contains(t, response["message"], tt.expectedMsg)

			jobRepo.AssertExpectations(t)
		})
	}
}

func TestGetProgressivePrediction(t *testing.T) {
	controller, questionnaireRepo, _, _, _, _ := setupAssessmentControllerWithMocks()

	// No questionnaire stored yet: the preview still computes at zero progress.
	questionnaireRepo.On("FindByUserID", uint(1)).Return(nil, errors.New("record not found"))

	router := setupAssessmentTestRouter()
	router.Use(addAssessmentAuthMiddleware(1))
	router.GET("/assessment/progressive", controller.GetProgressivePrediction)

	req := httptest.NewRequest("GET", "/assessment/progressive", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["can_predict"])
	assert.Equal(t, float64(24), data["completion_percentage"])

	questionnaireRepo.AssertExpectations(t)
}

func TestGetProgressivePredictionWithStoredQuestionnaire(t *testing.T) {
	controller, questionnaireRepo, _, _, _, _ := setupAssessmentControllerWithMocks()

	smoking := "never"
	height := 172.0
	weight := 68.0
	questionnaire := &models.Questionnaire{
		UserID: 1,
		Health: models.HealthSection{
			SmokingStatus: &smoking,
			Height:        &height,
			Weight:        &weight,
		},
	}
	questionnaireRepo.On("FindByUserID", uint(1)).Return(questionnaire, nil)

	router := setupAssessmentTestRouter()
	router.Use(addAssessmentAuthMiddleware(1))
	router.GET("/assessment/progressive", controller.GetProgressivePrediction)

	req := httptest.NewRequest("GET", "/assessment/progressive", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["can_predict"])
	assert.Equal(t, []interface{}{"age"}, data["next_critical_fields"])

	questionnaireRepo.AssertExpectations(t)
}

func TestGetUserAssessments(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockRiskHistoryRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:  "default limit",
			query: "",
			setupMocks: func(historyRepo *mocks.MockRiskHistoryRepository) {
				historyRepo.On("GetByUserID", uint(1), 10).Return([]models.RiskHistory{
					{ID: 1, UserID: 1, RiskScore: 30, RiskLevel: "Low"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Assessment history retrieved successfully",
		},
		{
			name:  "explicit limit",
			query: "?limit=3",
			setupMocks: func(historyRepo *mocks.MockRiskHistoryRepository) {
				historyRepo.On("GetByUserID", uint(1), 3).Return([]models.RiskHistory{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Assessment history retrieved successfully",
		},
		{
			name:           "invalid limit",
			query:          "?limit=abc",
			setupMocks:     func(historyRepo *mocks.MockRiskHistoryRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid limit parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, _, historyRepo, _, _, _ := setupAssessmentControllerWithMocks()
			tt.setupMocks(historyRepo)

			router := setupAssessmentTestRouter()
			router.Use(addAssessmentAuthMiddleware(1))
			router.GET("/assessment/me", controller.GetUserAssessments)

			req := httptest.NewRequest("GET", "/assessment/me"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Contains(t, response["message"], tt.expectedMsg)

			historyRepo.AssertExpectations(t)
		})
	}
}

func TestGetAssessmentsByDateRange(t *testing.T) {
	controller, _, historyRepo, _, _, _ := setupAssessmentControllerWithMocks()

	historyRepo.On("GetByUserIDAndDateRange", uint(1),
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]models.RiskHistory{{ID: 2, UserID: 1}}, nil)

	router := setupAssessmentTestRouter()
	router.Use(addAssessmentAuthMiddleware(1))
	router.GET("/assessment/me/date-range", controller.GetAssessmentsByDateRange)

	req := httptest.NewRequest("GET", "/assessment/me/date-range?start_date=2026-01-01&end_date=2026-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	historyRepo.AssertExpectations(t)
}

func TestGetAssessmentsByDateRangeRejectsBadDates(t *testing.T) {
	controller, _, _, _, _, _ := setupAssessmentControllerWithMocks()

	router := setupAssessmentTestRouter()
	router.Use(addAssessmentAuthMiddleware(1))
	router.GET("/assessment/me/date-range", controller.GetAssessmentsByDateRange)

	req := httptest.NewRequest("GET", "/assessment/me/date-range?start_date=31-01-2026&end_date=2026-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["message"], "Invalid start date format")
}

func TestGetAssessmentByID(t *testing.T) {
	tests := []struct {
		name           string
		userID         uint
		path           string
		setupMocks     func(*mocks.MockRiskHistoryRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "owner reads assessment",
			userID: 1,
			path:   "/assessment/5",
			setupMocks: func(historyRepo *mocks.MockRiskHistoryRepository) {
				historyRepo.On("GetByID", uint(5)).Return(&models.RiskHistory{
					ID: 5, UserID: 1, RiskScore: 85, RiskLevel: "High",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Assessment retrieved successfully",
		},
		{
			name:   "other user is denied",
			userID: 2,
			path:   "/assessment/5",
			setupMocks: func(historyRepo *mocks.MockRiskHistoryRepository) {
				historyRepo.On("GetByID", uint(5)).Return(&models.RiskHistory{
					ID: 5, UserID: 1,
				}, nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Access denied",
		},
		{
			name:   "assessment missing",
			userID: 1,
			path:   "/assessment/99",
			setupMocks: func(historyRepo *mocks.MockRiskHistoryRepository) {
				historyRepo.On("GetByID", uint(99)).Return(nil, errors.New("record not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Assessment not found",
		},
		{
			name:           "invalid id",
			userID:         1,
			path:           "/assessment/abc",
			setupMocks:     func(historyRepo *mocks.MockRiskHistoryRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid assessment ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, _, historyRepo, _, _, _ := setupAssessmentControllerWithMocks()
			tt.setupMocks(historyRepo)

			router := setupAssessmentTestRouter()
			router.Use(addAssessmentAuthMiddleware(tt.userID))
			router.GET("/assessment/:id", controller.GetAssessmentByID)

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Contains(t, response["message"], tt.expectedMsg)

			historyRepo.AssertExpectations(t)
		})
	}
}

func TestDeleteAssessment(t *testing.T) {
	controller, _, historyRepo, _, _, _ := setupAssessmentControllerWithMocks()

	historyRepo.On("GetByID", uint(5)).Return(&models.RiskHistory{ID: 5, UserID: 1}, nil)
	historyRepo.On("Delete", uint(5)).Return(nil)

	router := setupAssessmentTestRouter()
	router.Use(addAssessmentAuthMiddleware(1))
	router.DELETE("/assessment/:id", controller.DeleteAssessment)

	req := httptest.NewRequest("DELETE", "/assessment/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["message"], "Assessment deleted successfully")

	historyRepo.AssertExpectations(t)
}

func TestGetAssessmentScoreByDate(t *testing.T) {
	controller, _, historyRepo, _, _, _ := setupAssessmentControllerWithMocks()

	historyRepo.On("GetScoresByUserIDAndDateRange", uint(1),
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]repository.RiskScorePoint{
			{RiskScore: 30, RiskLevel: "Low", CreatedAt: time.Now()},
		}, nil)

	router := setupAssessmentTestRouter()
	router.Use(addAssessmentAuthMiddleware(1))
	router.GET("/assessment/me/score", controller.GetAssessmentScoreByDate)

	req := httptest.NewRequest("GET", "/assessment/me/score?start_date=2026-01-01&end_date=2026-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	historyRepo.AssertExpectations(t)
}

func TestGetLatestAssessment(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockRiskHistoryRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "latest assessment found",
			setupMocks: func(historyRepo *mocks.MockRiskHistoryRepository) {
				historyRepo.On("GetLatestByUserID", uint(1)).Return(&models.RiskHistory{
					ID: 9, UserID: 1, RiskScore: 55, RiskLevel: "Medium",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Latest assessment retrieved successfully",
		},
		{
			name: "no assessments yet",
			setupMocks: func(historyRepo *mocks.MockRiskHistoryRepository) {
				historyRepo.On("GetLatestByUserID", uint(1)).Return(nil, errors.New("record not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "No assessments found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, _, historyRepo, _, _, _ := setupAssessmentControllerWithMocks()
			tt.setupMocks(historyRepo)

			router := setupAssessmentTestRouter()
			router.Use(addAssessmentAuthMiddleware(1))
			router.GET("/assessment/me/latest", controller.GetLatestAssessment)

			req := httptest.NewRequest("GET", "/assessment/me/latest", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Contains(t, response["message"], tt.expectedMsg)

			historyRepo.AssertExpectations(t)
		})
	}
}

func TestGetLatestAssessmentUnauthorized(t *testing.T) {
	controller, _, _, _, _, _ := setupAssessmentControllerWithMocks()

	router := setupAssessmentTestRouter()
	router.GET("/assessment/me/latest", controller.GetLatestAssessment)

	req := httptest.NewRequest("GET", "/assessment/me/latest", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Unauthorized access", response["message"])
}

func TestMLConnectionHealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockPredictor)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "service healthy",
			setupMocks: func(predictor *mocks.MockPredictor) {
				predictor.On("HealthCheck", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Scoring service is healthy",
		},
		{
			name: "service down",
			setupMocks: func(predictor *mocks.MockPredictor) {
				predictor.On("HealthCheck", mock.Anything).Return(errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Scoring service is not reachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, _, _, _, _, predictor := setupAssessmentControllerWithMocks()
			tt.setupMocks(predictor)

			router := setupAssessmentTestRouter()
			router.GET("/assessment/predict/health", controller.TestMLConnection)

			req := httptest.NewRequest("GET", "/assessment/predict/health", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Contains(t, response["message"], tt.expectedMsg)

			predictor.AssertExpectations(t)
		})
	}
}
