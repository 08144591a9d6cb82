package advisory

import (
	"fmt"

	"insurisk/internal/models"
)

// RuleBasedEnhancement synthesizes a minimal advisory block from the risk
// result alone. Used when the generative service is disabled, unreachable,
// or returns unparseable content.
func RuleBasedEnhancement(q *models.QuestionnaireData, assessment *models.RiskAssessment) *models.AdvisoryEnhancement {
	coverage := 500000.0
	if q != nil && q.Financial.CoverageAmount != nil {
		coverage = *q.Financial.CoverageAmount
	}

	policies := []models.AdvisoryPolicy{
		{
			Name:           "Essential Term Cover",
			Type:           "Term Life",
			CoverageAmount: coverage,
			MonthlyPremium: assessment.MonthlyPremium,
			Reason:         "Baseline protection sized to the requested coverage amount.",
		},
	}
	if assessment.RiskCategory == "Low" {
		policies = append(policies, models.AdvisoryPolicy{
			Name:           "Term Plus Savings",
			Type:           "Endowment",
			CoverageAmount: coverage,
			MonthlyPremium: assessment.MonthlyPremium * 1.6,
			Reason:         "Low risk profile qualifies for bundled savings riders.",
		})
	}
	if assessment.HasDiabetes || assessment.HasHypertension {
		policies = append(policies, models.AdvisoryPolicy{
			Name:           "Critical Illness Rider",
			Type:           "Health",
			CoverageAmount: coverage / 2,
			MonthlyPremium: assessment.MonthlyPremium * 0.4,
			Reason:         "Pre-existing condition indicators suggest critical illness protection.",
		})
	}

	var optimization string
	switch assessment.RiskCategory {
	case "Low":
		optimization = "Your risk profile already qualifies for preferred rates; opting for annual payment typically saves a further 3-5%."
	case "Medium":
		optimization = "Improving exercise frequency and stress management before renewal can move you into a lower premium band."
	default:
		optimization = "Address the flagged health factors and re-run the assessment; high-risk premiums drop substantially after 12 months of improved indicators."
	}

	return &models.AdvisoryEnhancement{
		EligiblePolicies:    policies,
		RiskAssessment:      fmt.Sprintf("Rule-based assessment places you in the %s risk band with a score of %d out of 100.", assessment.RiskCategory, assessment.RiskScore),
		PremiumOptimization: optimization,
		PersonalizedAdvice:  fmt.Sprintf("Based on the available profile, an estimated monthly premium of %.0f fits the %s risk band. Completing the remaining questionnaire sections will sharpen this estimate.", assessment.MonthlyPremium, assessment.RiskCategory),
		ConfidenceScore:     0.7,
		Generated:           false,
	}
}
