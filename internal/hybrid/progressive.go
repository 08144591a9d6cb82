package hybrid

import (
	"insurisk/internal/mapper"
	"insurisk/internal/models"
	"insurisk/internal/risk"
)

// minPreliminaryCompleteness is the threshold past which a preliminary
// category and premium band are worth showing.
const minPreliminaryCompleteness = 60

// CriticalFields is the fixed priority list the wizard surfaces as "answer
// these next" while data is still incomplete.
var CriticalFields = []string{
	"age",
	"smoking_status",
	"height_cm",
	"weight_kg",
	"coverage_amount",
}

// ProgressivePrediction reports whether a full prediction is currently
// possible and, past 60% completeness, a preliminary risk category with a
// ±20% premium band around the fallback estimate.
func ProgressivePrediction(q *models.QuestionnaireData) *models.ProgressivePrediction {
	input := mapper.Map(q)
	completion := mapper.EvaluateCompleteness(input)

	missing := make(map[string]bool, len(completion.MissingFields))
	for _, name := range completion.MissingFields {
		missing[name] = true
	}

	nextCritical := make([]string, 0, len(CriticalFields))
	for _, name := range CriticalFields {
		if missing[name] {
			nextCritical = append(nextCritical, name)
		}
	}

	result := &models.ProgressivePrediction{
		CanPredict:           completion.CompletionPercentage >= MinMLCompleteness,
		CompletionPercentage: completion.CompletionPercentage,
		NextCriticalFields:   nextCritical,
		Completion:           completion,
	}

	if completion.CompletionPercentage >= minPreliminaryCompleteness {
		estimate := risk.Estimate(q)
		result.PreliminaryCategory = estimate.RiskCategory
		result.PremiumRange = &models.PremiumRange{
			Min: estimate.MonthlyPremium * 0.8,
			Max: estimate.MonthlyPremium * 1.2,
		}
	}

	return result
}
