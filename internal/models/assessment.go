package models

import (
	"time"

	"gorm.io/gorm"
)

// RiskAssessment is the output of the rule-based fallback estimator. Computed
// fresh on every call, never cached.
type RiskAssessment struct {
	RiskScore       int     `json:"risk_score" example:"42"`
	RiskCategory    string  `json:"risk_category" example:"Medium"`
	MonthlyPremium  float64 `json:"monthly_premium" example:"100"`
	BMI             float64 `json:"bmi" example:"22.9"`
	BMICategory     string  `json:"bmi_category" example:"Normal"`
	HasDiabetes     bool    `json:"has_diabetes" example:"false"`
	HasHypertension bool    `json:"has_hypertension" example:"false"`
}

// RiskProbabilities is the per-class distribution returned by the external
// model. The three values sum to approximately 1.
type RiskProbabilities struct {
	Low    float64 `json:"Low"`
	Medium float64 `json:"Medium"`
	High   float64 `json:"High"`
}

// DerivedFeatures is the block of health/financial features the external
// model derives from the submitted input.
type DerivedFeatures struct {
	BMI                    float64 `json:"bmi"`
	BMICategory            string  `json:"bmi_category"`
	HasDiabetes            bool    `json:"has_diabetes"`
	HasHypertension        bool    `json:"has_hypertension"`
	OverallHealthRiskScore float64 `json:"overall_health_risk_score"`
	FinancialRiskScore     float64 `json:"financial_risk_score"`
	AnnualIncomeMidpoint   float64 `json:"annual_income_midpoint"`
}

// MLPredictionResponse is the external risk model's response contract.
type MLPredictionResponse struct {
	RiskCategory          string            `json:"risk_category"`
	RiskConfidence        float64           `json:"risk_confidence"`
	RiskProbabilities     RiskProbabilities `json:"risk_probabilities"`
	CustomerLifetimeValue float64           `json:"customer_lifetime_value"`
	DerivedFeatures       DerivedFeatures   `json:"derived_features"`
}

// AdvisoryPolicy is one policy suggestion in an advisory enhancement.
type AdvisoryPolicy struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	CoverageAmount float64 `json:"coverage_amount"`
	MonthlyPremium float64 `json:"monthly_premium"`
	Reason         string  `json:"reason"`
}

// AdvisoryEnhancement is the advisory collaborator's contribution to a hybrid
// analysis: a narrative plus suggested policies. When the generative service
// is disabled or fails, a rule-based enhancement is substituted.
type AdvisoryEnhancement struct {
	EligiblePolicies    []AdvisoryPolicy `json:"eligible_policies"`
	RiskAssessment      string           `json:"risk_assessment"`
	PremiumOptimization string           `json:"premium_optimization"`
	PersonalizedAdvice  string           `json:"personalized_advice"`
	ConfidenceScore     float64          `json:"confidence_score"`
	Generated           bool             `json:"generated"`
}

// CombinedInsights carries the final figures of a hybrid analysis.
type CombinedInsights struct {
	FinalRiskScore      int     `json:"final_risk_score"`
	FinalRiskLevel      string  `json:"final_risk_level"`
	FinalPremium        float64 `json:"final_premium"`
	ConfidenceScore     int     `json:"confidence_score"`
	ModelAgreement      int     `json:"model_agreement"`
	Recommendation      string  `json:"recommendation"`
	UsedMLModel         bool    `json:"used_ml_model"`
	UsedFallback        bool    `json:"used_fallback"`
	EstimatedSavingsPct int     `json:"estimated_savings_pct"`
}

// MLCallStats records what happened on the prediction-client call of one
// analysis, for the outbound call log.
type MLCallStats struct {
	Attempted bool   `json:"attempted"`
	CacheHit  bool   `json:"cache_hit"`
	Attempts  int    `json:"attempts"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// HybridAnalysis is the final output entity returned to the caller.
type HybridAnalysis struct {
	MLPrediction     *MLPredictionResponse `json:"ml_prediction,omitempty"`
	Fallback         *RiskAssessment       `json:"fallback"`
	Enhancement      *AdvisoryEnhancement  `json:"gemini_enhancement"`
	CombinedInsights CombinedInsights      `json:"combined_insights"`
	DataCompleteness CompletionStatus      `json:"data_completeness"`
	MLCall           *MLCallStats          `json:"ml_call,omitempty"`
	GeneratedAt      time.Time             `json:"generated_at"`
}

// PremiumRange is the ±20% band around a preliminary premium estimate.
type PremiumRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProgressivePrediction tells the wizard whether a full prediction is
// currently possible and, past 60% completeness, gives a preliminary read.
type ProgressivePrediction struct {
	CanPredict           bool             `json:"can_predict"`
	CompletionPercentage int              `json:"completion_percentage"`
	PreliminaryCategory  string           `json:"preliminary_category,omitempty"`
	PremiumRange         *PremiumRange    `json:"premium_range,omitempty"`
	NextCriticalFields   []string         `json:"next_critical_fields"`
	Completion           CompletionStatus `json:"completion"`
}

// RiskHistory is a persisted hybrid analysis outcome, one row per analysis
// request.
type RiskHistory struct {
	ID              uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt       time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	UserID          uint           `gorm:"index" json:"user_id" example:"1"`
	User            User           `gorm:"foreignKey:UserID" json:"-"`
	RiskScore       int            `json:"risk_score" example:"42"`
	RiskLevel       string         `gorm:"type:varchar(10)" json:"risk_level" example:"Medium"`
	MonthlyPremium  float64        `json:"monthly_premium" example:"100"`
	ConfidenceScore int            `json:"confidence_score" example:"75"`
	ModelAgreement  int            `json:"model_agreement" example:"80"`
	UsedMLModel     bool           `json:"used_ml_model" example:"false"`
	Completeness    int            `json:"completeness" example:"79"`
	Recommendation  string         `gorm:"type:text" json:"recommendation"`
	Analysis        HybridAnalysis `gorm:"serializer:json;type:jsonb" json:"analysis"`
}

func (h *RiskHistory) TableName() string {
	return "risk_history"
}

// PredictionLog records each outbound call to the external risk model, cache
// hits included.
type PredictionLog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	UserID       uint           `gorm:"index" json:"user_id"`
	CacheHit     bool           `json:"cache_hit"`
	Success      bool           `json:"success"`
	Attempts     int            `json:"attempts"`
	RiskCategory string         `gorm:"type:varchar(10)" json:"risk_category"`
	Confidence   float64        `json:"confidence"`
	ErrorMessage *string        `gorm:"type:text" json:"error_message,omitempty"`
	ElapsedMs    int64          `json:"elapsed_ms"`
}

func (p *PredictionLog) TableName() string {
	return "prediction_logs"
}
