package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"insurisk/internal/cache"
	"insurisk/internal/hybrid"
	"insurisk/internal/models"
	"insurisk/internal/repository"
)

type AnalysisJobWorker struct {
	// Repositories
	jobRepo           repository.AnalysisJobRepository
	questionnaireRepo repository.QuestionnaireRepository
	historyRepo       repository.RiskHistoryRepository
	logRepo           repository.PredictionLogRepository
	userRepo          *repository.UserRepository

	// Analysis pipeline
	combiner *hybrid.Combiner

	// Optional result cache
	redis *cache.RedisClient

	// Job processing
	jobQueue    chan models.AnalysisJobRequest
	workerCount int
	stopChan    chan struct{}
	wg          sync.WaitGroup
	running     bool
	mu          sync.RWMutex

	// Configuration
	maxJobTimeout   time.Duration
	maxConcurrency  int
	recoveryDelay   time.Duration
	cleanupInterval time.Duration
	resultTTL       time.Duration
}

func NewAnalysisJobWorker(
	jobRepo repository.AnalysisJobRepository,
	questionnaireRepo repository.QuestionnaireRepository,
	historyRepo repository.RiskHistoryRepository,
	logRepo repository.PredictionLogRepository,
	userRepo *repository.UserRepository,
	combiner *hybrid.Combiner,
	redis *cache.RedisClient,
	workerCount int,
) *AnalysisJobWorker {
	if workerCount <= 0 {
		workerCount = 3 // Default worker count
	}

	return &AnalysisJobWorker{
		jobRepo:           jobRepo,
		questionnaireRepo: questionnaireRepo,
		historyRepo:       historyRepo,
		logRepo:           logRepo,
		userRepo:          userRepo,
		combiner:          combiner,
		redis:             redis,
		jobQueue:          make(chan models.AnalysisJobRequest, 100),
		workerCount:       workerCount,
		stopChan:          make(chan struct{}),
		maxJobTimeout:     5 * time.Minute,
		maxConcurrency:    10,
		recoveryDelay:     5 * time.Second,
		cleanupInterval:   30 * time.Minute,
		resultTTL:         1 * time.Hour,
	}
}

// ========== WORKER LIFECYCLE ==========

func (w *AnalysisJobWorker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	// Start worker goroutines
	for i := 0; i < w.workerCount; i++ {
		w.wg.Add(1)
		go w.worker(i)
	}

	// Start job recovery routine (process any pending jobs from database)
	w.wg.Add(1)
	go w.recoverPendingJobs()

	// Start cleanup routine
	w.wg.Add(1)
	go w.cleanupRoutine()
}

func (w *AnalysisJobWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	w.wg.Wait()
}

func (w *AnalysisJobWorker) SubmitJob(jobRequest models.AnalysisJobRequest) error {
	w.mu.RLock()
	if !w.running {
		w.mu.RUnlock()
		return fmt.Errorf("job worker is not running")
	}
	w.mu.RUnlock()

	activeJobs, err := w.jobRepo.GetActiveJobsCount(jobRequest.UserID)
	if err != nil {
		return fmt.Errorf("failed to check active jobs: %w", err)
	}

	if activeJobs >= int64(w.maxConcurrency) {
		return fmt.Errorf("user has too many active jobs (%d/%d)", activeJobs, w.maxConcurrency)
	}

	select {
	case w.jobQueue <- jobRequest:
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("job queue is full, try again later")
	}
}

// ========== WORKER IMPLEMENTATION ==========

func (w *AnalysisJobWorker) worker(workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case jobRequest := <-w.jobQueue:
			w.processJob(jobRequest)
		}
	}
}

func (w *AnalysisJobWorker) processJob(jobRequest models.AnalysisJobRequest) {
	jobID := jobRequest.JobID
	userID := jobRequest.UserID

	ctx, cancel := context.WithTimeout(context.Background(), w.maxJobTimeout)
	defer cancel()

	// A cancelled job may still be sitting in the queue
	job, err := w.jobRepo.GetJobByID(jobID)
	if err != nil || job.Status == models.JobStatusCancelled {
		return
	}

	if err := w.jobRepo.UpdateJobStatus(jobID, models.JobStatusProcessing, nil); err != nil {
		return
	}

	questionnaire, err := w.questionnaireRepo.FindByUserID(userID)
	if err != nil {
		errMsg := fmt.Sprintf("Questionnaire not found: %v", err)
		w.jobRepo.UpdateJobStatus(jobID, models.JobStatusFailed, &errMsg)
		return
	}

	data := questionnaire.Data()

	analysis, err := w.combiner.Analyze(ctx, data, hybrid.Options{
		UseMLModel:   jobRequest.UseMLModel,
		UseGemini:    jobRequest.UseGemini,
		PolicyYears:  jobRequest.PolicyYears,
		SessionToken: jobRequest.SessionToken,
	})
	if err != nil {
		errMsg := fmt.Sprintf("Analysis failed: %v", err)
		w.jobRepo.UpdateJobStatus(jobID, models.JobStatusFailed, &errMsg)
		return
	}

	history := &models.RiskHistory{
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

	if err := w.historyRepo.SaveAssessment(history); err != nil {
		errMsg := fmt.Sprintf("Failed to save assessment: %v", err)
		w.jobRepo.UpdateJobStatus(jobID, models.JobStatusFailed, &errMsg)
		return
	}

	if analysis.MLCall != nil && analysis.MLCall.Attempted {
		w.logMLCall(userID, analysis)
	}

	now := time.Now()
	_ = w.userRepo.UpdateLastAssessmentTime(userID, &now)

	if err := w.jobRepo.UpdateJobStatusWithResult(jobID, models.JobStatusCompleted, history.ID); err != nil {
		return
	}

	w.storeResultInCache(jobID, history.ID, analysis)
}

func (w *AnalysisJobWorker) logMLCall(userID uint, analysis *models.HybridAnalysis) {
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
	if err := w.logRepo.SaveLog(entry); err != nil {
		log.Printf("failed to log ML call for user %d: %v", userID, err)
	}
}

func (w *AnalysisJobWorker) storeResultInCache(jobID string, historyID uint, analysis *models.HybridAnalysis) {
	if w.redis == nil {
		return
	}

	result := map[string]interface{}{
		"job_id":          jobID,
		"risk_history_id": historyID,
		"risk_score":      analysis.CombinedInsights.FinalRiskScore,
		"risk_level":      analysis.CombinedInsights.FinalRiskLevel,
		"premium":         analysis.CombinedInsights.FinalPremium,
		"used_ml_model":   analysis.CombinedInsights.UsedMLModel,
	}

	if err := w.redis.StoreAnalysisResult(jobID, result, w.resultTTL); err != nil {
		log.Printf("failed to cache result for job %s: %v", jobID, err)
	}
}

// ========== BACKGROUND ROUTINES ==========

func (w *AnalysisJobWorker) recoverPendingJobs() {
	defer w.wg.Done()

	// Let the HTTP layer come up before replaying interrupted work.
	time.Sleep(w.recoveryDelay)

	pendingJobs, err := w.jobRepo.GetPendingJobs(50)
	if err != nil {
		return
	}

	for _, job := range pendingJobs {
		// The session token is not persisted, so recovered jobs run
		// on the fallback estimator only.
		jobRequest := models.AnalysisJobRequest{
			JobID:      job.ID,
			UserID:     job.UserID,
			UseMLModel: false,
			UseGemini:  false,
		}

		select {
		case w.jobQueue <- jobRequest:
		case <-w.stopChan:
			return
		default:
			log.Printf("job queue full, skipping recovery of job %s", job.ID)
		}
	}
}

func (w *AnalysisJobWorker) cleanupRoutine() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoffTime := time.Now().AddDate(0, 0, -7)
			_ = w.jobRepo.CleanupOldJobs(cutoffTime)
		case <-w.stopChan:
			return
		}
	}
}

// ========== HELPER UTILITIES ==========

func (w *AnalysisJobWorker) GetStatus() map[string]interface{} {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return map[string]interface{}{
		"running":          w.running,
		"worker_count":     w.workerCount,
		"queue_size":       len(w.jobQueue),
		"queue_capacity":   cap(w.jobQueue),
		"max_job_timeout":  w.maxJobTimeout.String(),
		"max_concurrency":  w.maxConcurrency,
		"cleanup_interval": w.cleanupInterval.String(),
		"redis_connected":  w.redis != nil,
	}
}
