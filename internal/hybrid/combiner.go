// Package hybrid merges the external model's prediction with the rule-based
// fallback estimate into one final assessment. The top-level analysis call
// never fails as long as questionnaire data exists: every ML or advisory
// failure is absorbed and downgraded to a fallback path.
package hybrid

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"insurisk/internal/advisory"
	"insurisk/internal/mapper"
	"insurisk/internal/ml"
	"insurisk/internal/models"
	"insurisk/internal/risk"
)

// MinMLCompleteness is the completeness gate for the ML path; below it the
// fallback estimator is used without attempting a prediction call.
const MinMLCompleteness = 85

const (
	fallbackConfidence    = 75
	agreementWithML       = 94
	agreementFallbackOnly = 80
	defaultPolicyYears    = 20
)

// Options control one analysis request.
type Options struct {
	UseMLModel   bool
	UseGemini    bool
	PolicyYears  int
	SessionToken string
}

// Combiner orchestrates the mapping, estimation and external calls of a
// hybrid analysis.
type Combiner struct {
	predictor ml.Predictor
	enhancer  advisory.Enhancer
}

// New builds a combiner. The enhancer may be nil; the rule-based
// enhancement is then always used.
func New(predictor ml.Predictor, enhancer advisory.Enhancer) *Combiner {
	return &Combiner{predictor: predictor, enhancer: enhancer}
}

// Analyze runs the full pipeline: map, evaluate completeness, attempt the ML
// path when eligible, always compute the fallback, attach an advisory
// enhancement, and combine everything into the final assessment.
func (c *Combiner) Analyze(ctx context.Context, q *models.QuestionnaireData, opts Options) (*models.HybridAnalysis, error) {
	if q == nil {
		return nil, errors.New("questionnaire data is required")
	}

	input := mapper.Map(q)
	completion := mapper.EvaluateCompleteness(input)
	fallback := risk.Estimate(q)

	analysis := &models.HybridAnalysis{
		Fallback:         fallback,
		DataCompleteness: completion,
		GeneratedAt:      time.Now(),
	}

	var prediction *models.MLPredictionResponse
	if opts.UseMLModel && completion.CompletionPercentage >= MinMLCompleteness && c.predictor != nil {
		prediction = c.attemptPrediction(ctx, input, opts.SessionToken, analysis)
	}
	analysis.MLPrediction = prediction

	analysis.Enhancement = c.enhance(ctx, q, fallback, opts.UseGemini)
	analysis.CombinedInsights = combine(prediction, fallback, opts.PolicyYears)

	return analysis, nil
}

func (c *Combiner) attemptPrediction(ctx context.Context, input *models.MLModelInput, token string, analysis *models.HybridAnalysis) *models.MLPredictionResponse {
	start := time.Now()
	result, err := c.predictor.Predict(ctx, input, token)

	stats := &models.MLCallStats{
		Attempted: true,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
	analysis.MLCall = stats

	if err != nil {
		// Any prediction failure is absorbed here; the fallback result
		// already computed carries the analysis.
		log.Printf("ML prediction failed, using fallback estimator: %v", err)
		stats.Error = err.Error()
		return nil
	}

	stats.CacheHit = result.CacheHit
	stats.Attempts = result.Attempts
	return result.Response
}

func (c *Combiner) enhance(ctx context.Context, q *models.QuestionnaireData, fallback *models.RiskAssessment, useGemini bool) *models.AdvisoryEnhancement {
	if useGemini && c.enhancer != nil {
		enhancement, err := c.enhancer.Enhance(ctx, q, fallback)
		if err == nil {
			return enhancement
		}
		log.Printf("advisory enhancement failed, using rule-based: %v", err)
	}
	return advisory.RuleBasedEnhancement(q, fallback)
}

// categoryScore is the representative numeric score for a model-returned
// risk category; the external model reports a category, not a score.
var categoryScore = map[string]int{
	"Low":    25,
	"Medium": 55,
	"High":   85,
}

func combine(prediction *models.MLPredictionResponse, fallback *models.RiskAssessment, policyYears int) models.CombinedInsights {
	if policyYears <= 0 {
		policyYears = defaultPolicyYears
	}

	insights := models.CombinedInsights{
		FinalRiskScore:  fallback.RiskScore,
		FinalRiskLevel:  fallback.RiskCategory,
		FinalPremium:    fallback.MonthlyPremium,
		ConfidenceScore: fallbackConfidence,
		ModelAgreement:  agreementFallbackOnly,
		UsedFallback:    true,
	}

	if prediction != nil {
		if category, known := normalizeCategory(prediction.RiskCategory); known {
			insights.UsedMLModel = true
			insights.UsedFallback = false
			insights.FinalRiskLevel = category
			insights.FinalRiskScore = categoryScore[category]
			insights.FinalPremium = math.Round(prediction.CustomerLifetimeValue / float64(policyYears*12))
			insights.ConfidenceScore = int(math.Round(prediction.RiskConfidence * 100))
			insights.ModelAgreement = agreementWithML
		} else {
			log.Printf("ML prediction returned unknown risk category %q, keeping fallback estimate", prediction.RiskCategory)
		}
	}

	insights.EstimatedSavingsPct = savingsPct(insights.FinalRiskLevel)
	insights.Recommendation = recommendation(insights.FinalRiskLevel, insights.ConfidenceScore, insights.EstimatedSavingsPct)
	return insights
}

// normalizeCategory resolves the model's category string against the known
// bands, tolerating casing drift. An unrecognized category is rejected so a
// malformed response cannot mix model labels with fallback figures.
func normalizeCategory(raw string) (string, bool) {
	for category := range categoryScore {
		if strings.EqualFold(strings.TrimSpace(raw), category) {
			return category, true
		}
	}
	return "", false
}

func savingsPct(level string) int {
	switch level {
	case "Low":
		return 15
	case "Medium":
		return 10
	default:
		return 5
	}
}

func recommendation(level string, confidence, savings int) string {
	switch level {
	case "Low":
		return fmt.Sprintf("Your profile places you in the low risk band with %d%% confidence. You qualify for preferred rates; locking a policy in now could save around %d%% against standard pricing.", confidence, savings)
	case "Medium":
		return fmt.Sprintf("Your profile places you in the medium risk band with %d%% confidence. A standard plan fits; improving the flagged health and lifestyle factors could save up to %d%% at your next review.", confidence, savings)
	default:
		return fmt.Sprintf("Your profile places you in the high risk band with %d%% confidence. We recommend a guaranteed-issue plan and a medical review; addressing the flagged factors could still save about %d%% over time.", confidence, savings)
	}
}
