package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"insurisk/internal/cache"
	"insurisk/internal/hybrid"
	"insurisk/internal/ml"
	"insurisk/internal/models"
	"insurisk/internal/repository"
	"insurisk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssessmentController struct {
	questionnaireRepo repository.QuestionnaireRepository
	historyRepo       repository.RiskHistoryRepository
	logRepo           repository.PredictionLogRepository
	jobRepo           repository.AnalysisJobRepository
	userRepo          *repository.UserRepository
	combiner          *hybrid.Combiner
	predictor         ml.Predictor
	worker            *services.AnalysisJobWorker
	redis             *cache.RedisClient
}

func NewAssessmentController(
	questionnaireRepo repository.QuestionnaireRepository,
	historyRepo repository.RiskHistoryRepository,
	logRepo repository.PredictionLogRepository,
	jobRepo repository.AnalysisJobRepository,
	userRepo *repository.UserRepository,
	combiner *hybrid.Combiner,
	predictor ml.Predictor,
	worker *services.AnalysisJobWorker,
	redis *cache.RedisClient,
) *AssessmentController {
	return &AssessmentController{
		questionnaireRepo: questionnaireRepo,
		historyRepo:       historyRepo,
		logRepo:           logRepo,
		jobRepo:           jobRepo,
		userRepo:          userRepo,
		combiner:          combiner,
		predictor:         predictor,
		worker:            worker,
		redis:             redis,
	}
}

// AnalysisRequest is the optional request body of an assessment run.
type AnalysisRequest struct {
	UseMLModel  *bool `json:"use_ml_model"`
	UseGemini   bool  `json:"use_gemini"`
	PolicyYears int   `json:"policy_years"`
}

func (r *AnalysisRequest) toOptions(sessionToken string) hybrid.Options {
	useML := true
	if r.UseMLModel != nil {
		useML = *r.UseMLModel
	}
	return hybrid.Options{
		UseMLModel:   useML,
		UseGemini:    r.UseGemini,
		PolicyYears:  r.PolicyYears,
		SessionToken: sessionToken,
	}
}

func sessionTokenFromContext(c *gin.Context) string {
	if token, exists := c.Get("session_token"); exists {
		if s, ok := token.(string); ok {
			return s
		}
	}
	return ""
}

// RunAssessment godoc
// @Summary Run a hybrid risk assessment using the stored questionnaire
// @Description Map the questionnaire to model input, run the fallback estimator and, when data completeness allows, the external risk model (requires authentication)
// @Tags assessment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body AnalysisRequest false "Analysis options"
// @Success 200 {object} map[string]interface{} "Assessment result"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Questionnaire not found"
// @Failure 500 {object} map[string]interface{} "Assessment failed"
// @Router /assessment [post]
func (ac *AssessmentController) RunAssessment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	var req AnalysisRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid request body",
				"error":   err.Error(),
			})
			return
		}
	}

	questionnaire, err := ac.questionnaireRepo.FindByUserID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Questionnaire not found. Please fill in the questionnaire first.",
			"error":   err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	analysis, err := ac.combiner.Analyze(ctx, questionnaire.Data(), req.toOptions(sessionTokenFromContext(c)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Assessment failed",
			"error":   err.Error(),
		})
		return
	}

	history := ac.buildHistory(userID.(uint), analysis)
	if err := ac.historyRepo.SaveAssessment(history); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to save assessment",
			"error":   err.Error(),
		})
		return
	}

	ac.logMLCall(userID.(uint), analysis)

	now := time.Now()
	if err := ac.userRepo.UpdateLastAssessmentTime(userID.(uint), &now); err != nil {
		log.Printf("Error updating last assessment time for user ID %d: %v", userID.(uint), err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Assessment completed successfully",
		"data": gin.H{
			"assessment_id": history.ID,
			"analysis":      analysis,
		},
	})
}

// StartAsyncAssessment godoc
// @Summary Start a hybrid risk assessment in the background
// @Description Queue an assessment job and return its ID for polling (requires authentication)
// @Tags assessment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body AnalysisRequest false "Analysis options"
// @Success 202 {object} map[string]interface{} "Job accepted"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 429 {object} map[string]interface{} "Too many active jobs"
// @Failure 500 {object} map[string]interface{} "Failed to create job"
// @Router /assessment/async [post]
func (ac *AssessmentController) StartAsyncAssessment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	var req AnalysisRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid request body",
				"error":   err.Error(),
			})
			return
		}
	}

	// Fail early if there is nothing to analyze
	if _, err := ac.questionnaireRepo.FindByUserID(userID.(uint)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Questionnaire not found. Please fill in the questionnaire first.",
			"error":   err.Error(),
		})
		return
	}

	job := &models.AnalysisJob{
		ID:     uuid.New().String(),
		UserID: userID.(uint),
		Status: models.JobStatusPending,
	}

	if err := ac.jobRepo.SaveJob(job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create job",
			"error":   err.Error(),
		})
		return
	}

	opts := req.toOptions(sessionTokenFromContext(c))
	jobRequest := models.AnalysisJobRequest{
		JobID:        job.ID,
		UserID:       userID.(uint),
		UseMLModel:   opts.UseMLModel,
		UseGemini:    opts.UseGemini,
		PolicyYears:  opts.PolicyYears,
		SessionToken: opts.SessionToken,
	}

	if err := ac.worker.SubmitJob(jobRequest); err != nil {
		errMsg := err.Error()
		_ = ac.jobRepo.UpdateJobStatus(job.ID, models.JobStatusFailed, &errMsg)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"status":  "error",
			"message": "Failed to queue job",
			"error":   errMsg,
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "success",
		"message": "Assessment job queued",
		"data": gin.H{
			"job_id":     job.ID,
			"job_status": job.Status,
			"poll_url":   "/assessment/jobs/" + job.ID,
		},
	})
}

// GetJobStatus godoc
// @Summary Get the status of an assessment job
// @Description Poll a queued assessment job (requires authentication)
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Param job_id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job status"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Router /assessment/jobs/{job_id} [get]
func (ac *AssessmentController) GetJobStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	jobID := c.Param("job_id")

	owned, err := ac.jobRepo.IsJobOwnedByUser(jobID, userID.(uint))
	if err != nil || !owned {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Access denied: job belongs to a different user",
		})
		return
	}

	job, err := ac.jobRepo.GetJobByID(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Job not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Job status retrieved successfully",
		"data": gin.H{
			"job_id":          job.ID,
			"job_status":      job.Status,
			"risk_history_id": job.RiskHistoryID,
			"error_message":   job.ErrorMessage,
			"created_at":      job.CreatedAt,
			"completed_at":    job.CompletedAt,
		},
	})
}

// GetJobResult godoc
// @Summary Get the result of a completed assessment job
// @Description Retrieve the full analysis of a completed job (requires authentication)
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Param job_id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job result"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Failure 409 {object} map[string]interface{} "Job not completed yet"
// @Router /assessment/jobs/{job_id}/result [get]
func (ac *AssessmentController) GetJobResult(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	jobID := c.Param("job_id")

	owned, err := ac.jobRepo.IsJobOwnedByUser(jobID, userID.(uint))
	if err != nil || !owned {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Access denied: job belongs to a different user",
		})
		return
	}

	job, err := ac.jobRepo.GetJobByID(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Job not found",
		})
		return
	}

	if job.Status != models.JobStatusCompleted || job.RiskHistory == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Job has not completed yet",
			"data": gin.H{
				"job_status":    job.Status,
				"error_message": job.ErrorMessage,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Job result retrieved successfully",
		"data":    job.RiskHistory,
	})
}

// CancelJob godoc
// @Summary Cancel a pending or processing assessment job
// @Description Cancel a queued assessment job (requires authentication)
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Param job_id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job cancelled"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 409 {object} map[string]interface{} "Job cannot be cancelled"
// @Router /assessment/jobs/{job_id} [delete]
func (ac *AssessmentController) CancelJob(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	jobID := c.Param("job_id")

	owned, err := ac.jobRepo.IsJobOwnedByUser(jobID, userID.(uint))
	if err != nil || !owned {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Access denied: job belongs to a different user",
		})
		return
	}

	if err := ac.jobRepo.CancelJob(jobID); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Job cannot be cancelled",
			"error":   err.Error(),
		})
		return
	}

	if ac.redis != nil {
		_ = ac.redis.DeleteAnalysisResult(jobID)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Job cancelled successfully",
	})
}

// GetProgressivePrediction godoc
// @Summary Get a progressive prediction preview
// @Description Tell the questionnaire wizard whether a full prediction is possible and give a preliminary read past 60% completeness (requires authentication)
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Progressive prediction"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /assessment/progressive [get]
func (ac *AssessmentController) GetProgressivePrediction(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	var data *models.QuestionnaireData
	questionnaire, err := ac.questionnaireRepo.FindByUserID(userID.(uint))
	if err == nil {
		data = questionnaire.Data()
	}

	// An empty questionnaire still yields a valid zero-progress preview
	prediction := hybrid.ProgressivePrediction(data)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Progressive prediction computed successfully",
		"data":    prediction,
	})
}

// TestMLConnection godoc
// @Summary Test the external risk model connection
// @Description Ping the risk scoring service health endpoint
// @Tags assessment
// @Produce json
// @Success 200 {object} map[string]interface{} "Scoring service is healthy"
// @Failure 500 {object} map[string]interface{} "Scoring service is not reachable"
// @Router /assessment/predict/health [get]
func (ac *AssessmentController) TestMLConnection(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := ac.predictor.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Scoring service is not reachable",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Scoring service is healthy",
		"timestamp": time.Now(),
	})
}

// GetUserAssessments godoc
// @Summary Get user's assessment history
// @Description Retrieve assessment history for the authenticated user
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum number of records (default 10)"
// @Success 200 {object} map[string]interface{} "Assessment history retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve assessment history"
// @Router /assessment/me [get]
func (ac *AssessmentController) GetUserAssessments(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return
	}

	// Get Limit Params
	limitStr := c.Query("limit")
	limit := 10 // Default limit
	if limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid limit parameter",
				"error":   "Limit must be a positive integer",
			})
			return
		}
	}

	history, err := ac.historyRepo.GetByUserID(userID.(uint), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve assessment history",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Assessment history retrieved successfully",
		"data":    history,
	})
}

// GetAssessmentsByDateRange godoc
// @Summary Get user's assessment history by date range
// @Description Retrieve assessment history for the authenticated user within a date range
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Assessment history retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid date format"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve assessment history"
// @Router /assessment/me/date-range [get]
func (ac *AssessmentController) GetAssessmentsByDateRange(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return
	}

	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid start date format",
			"error":   "Date must be in YYYY-MM-DD format",
		})
		return
	}

	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid end date format",
			"error":   "Date must be in YYYY-MM-DD format",
		})
		return
	}

	endDate = endDate.Add(24 * time.Hour).Add(-time.Second)

	history, err := ac.historyRepo.GetByUserIDAndDateRange(userID.(uint), startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve assessment history",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Assessment history retrieved successfully",
		"data":    history,
	})
}

// GetAssessmentByID godoc
// @Summary Get assessment by ID
// @Description Retrieve a specific assessment by ID
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} map[string]interface{} "Assessment retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid assessment ID"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Assessment not found"
// @Router /assessment/{id} [get]
func (ac *AssessmentController) GetAssessmentByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid assessment ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	assessment, err := ac.historyRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Assessment not found",
		})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	if assessment.UserID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Access denied: assessment belongs to a different user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Assessment retrieved successfully",
		"data":    assessment,
	})
}

// DeleteAssessment godoc
// @Summary Delete an assessment
// @Description Delete a specific assessment by ID
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} map[string]interface{} "Assessment deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid assessment ID"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Assessment not found"
// @Router /assessment/{id} [delete]
func (ac *AssessmentController) DeleteAssessment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid assessment ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	assessment, err := ac.historyRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Assessment not found",
		})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	if assessment.UserID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Access denied: assessment belongs to a different user",
		})
		return
	}

	if err := ac.historyRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete assessment",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Assessment deleted successfully",
	})
}

// GetAssessmentScoreByDate godoc
// @Summary Get risk score points by date range
// @Description Retrieve score/level/date triples for charting (requires authentication)
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Score points retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid date format"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /assessment/me/score [get]
func (ac *AssessmentController) GetAssessmentScoreByDate(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid start date format",
			"error":   "Date must be in YYYY-MM-DD format",
		})
		return
	}

	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid end date format",
			"error":   "Date must be in YYYY-MM-DD format",
		})
		return
	}

	endDate = endDate.Add(24 * time.Hour).Add(-time.Second)

	scores, err := ac.historyRepo.GetScoresByUserIDAndDateRange(userID.(uint), startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve score points",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Score points retrieved successfully",
		"data":    scores,
	})
}

// GetLatestAssessment godoc
// @Summary Get the latest assessment
// @Description Retrieve the most recent assessment for the authenticated user
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Latest assessment retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "No assessments found"
// @Router /assessment/me/latest [get]
func (ac *AssessmentController) GetLatestAssessment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	assessment, err := ac.historyRepo.GetLatestByUserID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "No assessments found",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Latest assessment retrieved successfully",
		"data":    assessment,
	})
}

// ========== HELPERS ==========

func (ac *AssessmentController) buildHistory(userID uint, analysis *models.HybridAnalysis) *models.RiskHistory {
	return &models.RiskHistory{
		UserID:          userID,
		RiskScore:       analysis.CombinedInsights.FinalRiskScore,
		RiskLevel:       analysis.CombinedInsights.FinalRiskLevel,
		MonthlyPremium:  analysis.CombinedInsights.FinalPremium,
		ConfidenceScore: analysis.CombinedInsights.ConfidenceScore,
		ModelAgreement:  analysis.CombinedInsights.ModelAgreement,
		UsedMLModel:     analysis.CombinedInsights.UsedMLModel,
		Completeness:    analysis.DataCompleteness.CompletionPercentage,
		Recommendation:  analysis.CombinedInsights.Recommendation,
		Analysis:        *analysis,
	}
}

func (ac *AssessmentController) logMLCall(userID uint, analysis *models.HybridAnalysis) {
	if analysis.MLCall == nil || !analysis.MLCall.Attempted {
		return
	}

	entry := &models.PredictionLog{
		UserID:    userID,
		CacheHit:  analysis.MLCall.CacheHit,
		Attempts:  analysis.MLCall.Attempts,
		Success:   analysis.MLCall.Error == "",
		ElapsedMs: analysis.MLCall.ElapsedMs,
	}
	if analysis.MLCall.Error != "" {
		msg := analysis.MLCall.Error
		entry.ErrorMessage = &msg
	}
	if analysis.MLPrediction != nil {
		entry.RiskCategory = analysis.MLPrediction.RiskCategory
		entry.Confidence = analysis.MLPrediction.RiskConfidence
	}
	if err := ac.logRepo.SaveLog(entry); err != nil {
		log.Printf("Error logging ML call for user ID %d: %v", userID, err)
	}
}
